package deal

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

type Repository interface {
	Create(ctx context.Context, d *Deal) error
	Count(ctx context.Context, filter *types.CountFilter) (int, error)
}
