package main

import (
	"context"
	"testing"
	"time"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(retries uint64) retryPolicy {
	return retryPolicy{
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestRetryTransient(t *testing.T) {
	dbErr := ierr.NewError("connection reset").Mark(ierr.ErrDatabase)
	validationErr := ierr.NewError("bad period").Mark(ierr.ErrValidation)

	tests := []struct {
		name      string
		failures  int
		err       error
		retries   uint64
		wantCalls int
		wantErr   error
	}{
		{"succeeds_first_time", 0, nil, 3, 1, nil},
		{"recovers_from_database_errors", 2, dbErr, 3, 3, nil},
		{"gives_up_after_max_retries", 10, dbErr, 2, 3, ierr.ErrDatabase},
		{"does_not_retry_validation", 10, validationErr, 3, 1, ierr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retryTransient(context.Background(), fastPolicy(tt.retries), logger.NewNopLogger(), func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, ierr.Is(err, tt.wantErr))
		})
	}
}

func TestRetryTransientStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retryTransient(ctx, fastPolicy(5), logger.NewNopLogger(), func(context.Context) error {
		calls++
		return ierr.NewError("down").Mark(ierr.ErrDatabase)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
