package router

import (
	"context"
	"errors"
	"net"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/logger"
)

// shouldRetry reports whether a failed message is worth redelivering
func shouldRetry(logger *logger.Logger, err error) bool {
	if err == nil {
		return false
	}

	// Business logic errors (don't retry)
	if ierr.IsValidation(err) ||
		ierr.IsNotFound(err) ||
		ierr.IsUnauthorized(err) ||
		ierr.IsPermissionDenied(err) {
		logger.Debugw("non-retryable handler error", "error", err)
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		logger.Debugw("retrying due to network timeout", "error", netErr)
		return true
	}

	// storage and unknown errors are assumed transient
	return true
}
