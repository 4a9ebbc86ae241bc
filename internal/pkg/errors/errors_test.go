package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("level", "must be between 1 and 5")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "validation failed: level: must be between 1 and 5", err.Error())

	wrapped := fmt.Errorf("submit: %w", err)
	var vErr *ValidationError
	assert.True(t, errors.As(wrapped, &vErr))
	assert.Equal(t, []FieldError{{Field: "level", Reason: "must be between 1 and 5"}}, vErr.Fields)
}

func TestParamError_Is(t *testing.T) {
	err := &ParamError{Param: "limit", Reason: "must be between 1 and 100"}

	assert.True(t, errors.Is(err, ErrInvalidParams))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "invalid parameter limit: must be between 1 and 100", err.Error())
}

func TestStorageError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewStorageError("create", cause)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, cause), "исходная ошибка доступна через Unwrap")
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "storage create: database is locked", err.Error())

	assert.Nil(t, NewStorageError("create", nil))
}
