package invoice

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Count(ctx context.Context, filter *types.CountFilter) (int, error)
}
