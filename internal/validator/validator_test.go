package validator

import (
	"testing"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=1,max=12"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	assert.NoError(t, ValidateRequest(sampleRequest{Name: "acme", Count: 3}))

	err := ValidateRequest(sampleRequest{Count: 13})
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestValidateRequestWithoutInit(t *testing.T) {
	validate = nil
	err := ValidateRequest(sampleRequest{Name: "acme", Count: 1})
	assert.Error(t, err)
	assert.False(t, ierr.IsValidation(err))
	NewValidator()
}
