package router

import (
	"context"
	"errors"
	"testing"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	log := logger.NewNopLogger()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"validation", ierr.NewError("bad").Mark(ierr.ErrValidation), false},
		{"not found", ierr.NewError("missing").Mark(ierr.ErrNotFound), false},
		{"unauthorized", ierr.NewError("who").Mark(ierr.ErrUnauthorized), false},
		{"cancelled", context.Canceled, false},
		{"database", ierr.NewError("conn reset").Mark(ierr.ErrDatabase), true},
		{"unknown", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRetry(log, tt.err))
		})
	}
}
