package middleware

import (
	"strings"

	"github.com/biznesassistant/biznesassistant/internal/auth"
	"github.com/biznesassistant/biznesassistant/internal/config"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/service"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/gin-gonic/gin"
)

// AuthenticateMiddleware validates the bearer token and binds the request to a tenant.
// The tenant comes from the token, or from the company the token names. Inactive
// tenants are rejected. A company, when the token or X-Company-ID header names one,
// must belong to the resolved tenant.
func AuthenticateMiddleware(cfg *config.Configuration, logger *logger.Logger, tenantService service.TenantService) gin.HandlerFunc {
	authProvider := auth.NewProvider(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortWithError(c, ierr.NewError("missing authorization header").
				WithHint("Unauthorized").
				Mark(ierr.ErrUnauthorized))
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, ierr.NewError("malformed authorization header").
				WithHint("Invalid authorization header format").
				Mark(ierr.ErrUnauthorized))
			return
		}

		ctx := c.Request.Context()
		principal, err := authProvider.ValidateToken(ctx, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			abortWithError(c, err)
			return
		}

		tenantID, err := tenantService.ResolveTenant(ctx, principal)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if _, err := tenantService.ValidateTenantActive(ctx, tenantID); err != nil {
			abortWithError(c, err)
			return
		}

		ctx = types.SetUserID(ctx, principal.UserID)
		ctx = types.SetTenantID(ctx, tenantID)

		companyID := principal.CompanyID
		if companyID == "" && cfg.Auth.AllowCompanyHeader {
			companyID = c.GetHeader(types.HeaderCompanyID)
		}
		if companyID != "" {
			if _, err := tenantService.AuthorizeCompany(ctx, companyID); err != nil {
				abortWithError(c, err)
				return
			}
			ctx = types.SetCompanyID(ctx, companyID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireCompany rejects requests that were not bound to a company
func RequireCompany(c *gin.Context) {
	if types.GetCompanyID(c.Request.Context()) == "" {
		abortWithError(c, ierr.NewError("no company bound to request").
			WithHint("A company is required. Use a company scoped token or the X-Company-ID header.").
			Mark(ierr.ErrValidation))
		return
	}
	c.Next()
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
