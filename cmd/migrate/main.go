package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/migrations"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	if *dryRun {
		all, err := migrations.List()
		if err != nil {
			log.Fatalf("Failed to read migrations: %v", err)
		}
		for _, m := range all {
			fmt.Printf("-- %s\n%s\n", m.Version, m.SQL)
		}
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")

	applied, err := migrations.Apply(ctx, db.DB, logger)
	if err != nil {
		logger.Fatalw("Failed to apply migrations", "error", err, "applied", applied)
	}

	logger.Infow("Migration completed successfully", "applied", applied)
}
