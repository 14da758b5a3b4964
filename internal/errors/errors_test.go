package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewError("tenant missing").Mark(ErrNotFound), http.StatusNotFound},
		{"unauthorized", NewError("no principal").Mark(ErrUnauthorized), http.StatusUnauthorized},
		{"insufficient data", NewError("need 3 points").Mark(ErrInsufficientData), http.StatusUnprocessableEntity},
		{"not supported", NewError("weekly trend").Mark(ErrNotSupported), http.StatusBadRequest},
		{"usage limit", NewError("quota").Mark(ErrUsageLimitExceeded), http.StatusPaymentRequired},
		{"database", WithError(fmt.Errorf("conn reset")).Mark(ErrDatabase), http.StatusInternalServerError},
		{"unmarked", fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestBuilderKeepsHintAndMark(t *testing.T) {
	err := NewError("company not in tenant").
		WithHint("Company not found").
		WithReportableDetails(map[string]any{"company_id": "comp_1"}).
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, errors.GetAllHints(err), "Company not found")

	wrapped := errors.Wrap(err, "loading company")
	assert.True(t, IsNotFound(wrapped))
}

func TestIsDatabase(t *testing.T) {
	err := WithError(fmt.Errorf("deadlock detected")).
		WithHint("Failed to store KPIs").
		Mark(ErrDatabase)

	assert.True(t, IsDatabase(err))
	assert.False(t, IsDatabase(NewError("x").Mark(ErrValidation)))
}
