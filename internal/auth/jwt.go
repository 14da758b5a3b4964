package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/config"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/golang-jwt/jwt/v4"
)

const (
	claimUserID    = "user_id"
	claimTenantID  = "tenant_id"
	claimCompanyID = "company_id"
)

type jwtAuth struct {
	AuthConfig config.AuthConfig
	now        func() time.Time
}

func NewJWTAuth(cfg *config.Configuration) *jwtAuth {
	return &jwtAuth{
		AuthConfig: cfg.Auth,
		now:        time.Now,
	}
}

// GenerateToken signs an HS256 token carrying the principal.
// Tenant and company claims are omitted when empty.
func (a *jwtAuth) GenerateToken(principal types.Principal) (string, error) {
	if principal.UserID == "" {
		return "", ierr.NewError("user id is required").
			WithHint("Token subject is required").
			Mark(ierr.ErrValidation)
	}

	ttl := time.Duration(a.AuthConfig.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := a.now()
	claims := jwt.MapClaims{
		claimUserID: principal.UserID,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	if principal.TenantID != "" {
		claims[claimTenantID] = principal.TenantID
	}
	if principal.CompanyID != "" {
		claims[claimCompanyID] = principal.CompanyID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.AuthConfig.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}

func (a *jwtAuth) ValidateToken(ctx context.Context, token string) (*types.Principal, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrUnauthorized)
		}
		return []byte(a.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrUnauthorized)
	}

	userID, ok := claims[claimUserID].(string)
	if !ok || userID == "" {
		return nil, ierr.NewError("token missing user id").
			WithHint("Invalid token claims").
			Mark(ierr.ErrUnauthorized)
	}

	// tenant and company are optional; tenant resolution falls back to the company
	tenantID, _ := claims[claimTenantID].(string)
	companyID, _ := claims[claimCompanyID].(string)

	return &types.Principal{
		UserID:    userID,
		TenantID:  tenantID,
		CompanyID: companyID,
	}, nil
}
