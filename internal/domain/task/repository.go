package task

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

// Repository defines the interface for task operations
type Repository interface {
	Create(ctx context.Context, task *Task) error
	Count(ctx context.Context, filter *types.CountFilter) (int, error)
}
