package lead

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

type Repository interface {
	Create(ctx context.Context, l *Lead) error
	Count(ctx context.Context, filter *types.CountFilter) (int, error)
}
