package middleware

import (
	"sync"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/cache"
	"github.com/biznesassistant/biznesassistant/internal/config"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/gin-gonic/gin"
	goCache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// idle limiters are dropped after this long; a fresh one starts with a full burst
const limiterIdleTTL = 10 * time.Minute

// TenantRateLimiter throttles expensive endpoints per tenant with a token bucket
type TenantRateLimiter struct {
	limit  rate.Limit
	burst  int
	mu     sync.Mutex
	store  *goCache.Cache
	logger *logger.Logger
}

// NewTenantRateLimiter allows ratePerMinute requests per tenant with the given burst.
// A non-positive rate disables limiting.
func NewTenantRateLimiter(ratePerMinute, burst int, logger *logger.Logger) *TenantRateLimiter {
	limit := rate.Inf
	if ratePerMinute > 0 {
		limit = rate.Limit(float64(ratePerMinute) / 60)
	}
	if burst <= 0 {
		burst = 1
	}

	return &TenantRateLimiter{
		limit:  limit,
		burst:  burst,
		store:  goCache.New(limiterIdleTTL, 2*limiterIdleTTL),
		logger: logger,
	}
}

// NewPopulateRateLimiter reads the population limits from the server config
func NewPopulateRateLimiter(cfg *config.Configuration, logger *logger.Logger) *TenantRateLimiter {
	return NewTenantRateLimiter(cfg.Server.PopulateRatePerMinute, cfg.Server.PopulateBurst, logger)
}

func (l *TenantRateLimiter) limiter(tenantID string) *rate.Limiter {
	key := cache.GenerateKey(cache.PrefixRateLimit, tenantID)

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.store.Get(key); ok {
		l.store.Set(key, v, limiterIdleTTL)
		return v.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(l.limit, l.burst)
	l.store.Set(key, limiter, limiterIdleTTL)
	return limiter
}

// Middleware must run after authentication so the tenant is known
func (l *TenantRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := types.GetTenantID(c.Request.Context())
		if tenantID == "" || l.limit == rate.Inf {
			c.Next()
			return
		}

		if !l.limiter(tenantID).Allow() {
			l.logger.Infow("rate limit exceeded",
				"tenant_id", tenantID,
				"path", c.FullPath())
			abortWithError(c, ierr.NewError("rate limit exceeded").
				WithHint("Too many requests, please retry later").
				WithReportableDetails(map[string]any{
					"limit_per_minute": float64(l.limit) * 60,
					"burst":            l.burst,
				}).
				Mark(ierr.ErrTooManyRequests))
			return
		}
		c.Next()
	}
}
