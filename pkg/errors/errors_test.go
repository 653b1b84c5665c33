package errors

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		typ    ErrorType
		status int
	}{
		{NewValidationError("bad input"), ErrorTypeValidation, http.StatusBadRequest},
		{NewNotFoundError("product"), ErrorTypeNotFound, http.StatusNotFound},
		{NewInsufficientStockError(2, 5), ErrorTypeInsufficientStock, http.StatusConflict},
		{NewStorageError("write record", os.ErrPermission), ErrorTypeStorage, http.StatusInternalServerError},
		{NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.typ, tt.err.Type)
		assert.Equal(t, tt.status, tt.err.HTTPStatus)
	}
}

func TestInsufficientStockMessage(t *testing.T) {
	err := NewInsufficientStockError(2, 5)
	assert.Equal(t, "insufficient stock: 2 available, 5 requested", err.Message)
	assert.True(t, IsInsufficientStock(err))
}

func TestTypeChecksThroughWrapping(t *testing.T) {
	base := NewNotFoundError("category")
	wrapped := fmt.Errorf("loading aggregate: %w", base)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	require.NotNil(t, GetAppError(wrapped))
	assert.Equal(t, base, GetAppError(wrapped))
}

func TestWrapKeepsAppErrorType(t *testing.T) {
	err := Wrap(NewStorageError("write record", os.ErrPermission), "persisting product 1000")
	assert.True(t, IsStorage(err))
	assert.Contains(t, err.Error(), "persisting product 1000")

	err = Wrapf(os.ErrClosed, "flushing %s", "category partition")
	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeInternal, appErr.Type)
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
	assert.NoError(t, Wrapf(nil, "context %d", 1))
}

func TestStorageErrorUnwrap(t *testing.T) {
	err := NewStorageError("read record", os.ErrNotExist)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "read record")
}
