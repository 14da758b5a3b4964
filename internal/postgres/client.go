package postgres

import (
	"context"

	"go.uber.org/fx"
)

// IClient is what services depend on for transactional work.
// Repositories pick the transaction up from the context passed into fn.
type IClient interface {
	// WithTx runs fn inside a transaction, reusing one already in ctx via a savepoint
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

var _ IClient = (*DB)(nil)

// Module provides the database handle and its transactional client
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			NewClient,
		),
		fx.Invoke(registerHooks),
	)
}

// NewClient exposes the DB through the narrow transactional interface
func NewClient(db *DB) IClient {
	return db
}

func registerHooks(lc fx.Lifecycle, db *DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.PingContext(ctx)
		},
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}
