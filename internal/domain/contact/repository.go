package contact

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	Count(ctx context.Context, filter *types.CountFilter) (int, error)
}
