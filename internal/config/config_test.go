package config

import (
	"testing"

	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Configuration {
	cfg := *GetDefaultConfig()
	cfg.Postgres = PostgresConfig{
		Host:   "localhost",
		Port:   5432,
		User:   "biznes",
		DBName: "biznes",
	}
	cfg.Auth = AuthConfig{Secret: "secret"}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr bool
	}{
		{
			name:   "defaults with postgres and auth",
			mutate: func(c *Configuration) {},
		},
		{
			name:    "missing auth secret",
			mutate:  func(c *Configuration) { c.Auth.Secret = "" },
			wantErr: true,
		},
		{
			name:    "unknown bucket mode",
			mutate:  func(c *Configuration) { c.KPI.TrendBucketMode = "weeks" },
			wantErr: true,
		},
		{
			name: "kafka without brokers",
			mutate: func(c *Configuration) {
				c.Event.PublishDestination = types.PublishToKafka
			},
			wantErr: true,
		},
		{
			name: "kafka with brokers",
			mutate: func(c *Configuration) {
				c.Event.PublishDestination = types.PublishToKafka
				c.Kafka.Brokers = []string{"localhost:9092"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     5433,
		User:     "u",
		Password: "p",
		DBName:   "biznes",
		SSLMode:  "disable",
	}
	assert.Equal(t, "user=u password=p dbname=biznes host=db port=5433 sslmode=disable", cfg.GetDSN())
}
