package v1

import (
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse documents the error envelope rendered by the error middleware
type ErrorResponse = ierr.ErrorResponse

func invalidRequest(c *gin.Context, err error) {
	_ = c.Error(ierr.WithError(err).
		WithHint("Invalid request format").
		Mark(ierr.ErrValidation))
}
