package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", NewNotFoundError("Product"))

	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Product not found", appErr.Message)
}

func TestGetAppErrorDefaultsToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "connection refused", appErr.Message)
}

func TestUnavailableErrorKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.9:9100: i/o timeout")
	err := NewUnavailableError("Failed to print receipt", cause)

	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.Equal(t, "Failed to print receipt: dial tcp 10.0.0.9:9100: i/o timeout", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestValidationHelpers(t *testing.T) {
	err := NewValidationError([]FieldError{Required("name")})
	require.Len(t, err.Errors, 1)
	assert.Equal(t, "name is required", err.Errors[0].Message)
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(NewBadRequestError("bad")))
}
