package auth

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

// Provider issues and verifies access tokens
type Provider interface {
	GenerateToken(principal types.Principal) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.Principal, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewJWTAuth(cfg)
}
