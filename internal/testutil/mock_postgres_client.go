package testutil

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient runs transactional work against in-memory stores.
// Registered stores are snapshotted when a transaction starts and restored
// when fn fails, so rollback behaves like the real client.
type MockPostgresClient struct {
	logger *logger.Logger
	stores []Snapshotter

	// Begun counts transactions started, nested ones included
	Begun int
	// RolledBack counts transactions that were restored after an error
	RolledBack int
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger, stores ...Snapshotter) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
		stores: stores,
	}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.Begun++

	restores := make([]func(), 0, len(c.stores))
	for _, s := range c.stores {
		restores = append(restores, s.Snapshot())
	}

	txCtx := ctx
	if ctx.Value(types.CtxDBTransaction) == nil {
		txCtx = context.WithValue(ctx, types.CtxDBTransaction, true)
	}

	if err := fn(txCtx); err != nil {
		for _, restore := range restores {
			restore()
		}
		c.RolledBack++
		c.logger.Debugw("mock transaction rolled back", "error", err)
		return err
	}
	return nil
}
