package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskman/internal/errors"
	"taskman/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	handler := NewErrorHandler()

	t.Run("validation error uses the friendly message", func(t *testing.T) {
		validationErr := validation.NewValidationError()
		validationErr.AddRequiredError("title")

		err := handler.Handle("add task", validationErr)

		require.Error(t, err)
		assert.Equal(t, "failed to add task: title is required", err.Error())
	})

	t.Run("typed error uses the user message", func(t *testing.T) {
		err := handler.Handle("save tasks", apperrors.NewUnavailableError("save"))

		require.Error(t, err)
		assert.Equal(t, "failed to save tasks: Storage is not available. Your changes were not saved.", err.Error())
	})

	t.Run("unknown error is wrapped", func(t *testing.T) {
		cause := errors.New("boom")

		err := handler.Handle("do thing", cause)

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})
}

func TestErrorHandler_Classifiers(t *testing.T) {
	handler := NewErrorHandler()

	validationErr := validation.NewValidationError()
	validationErr.AddRequiredError("title")

	assert.True(t, handler.IsValidationError(validationErr))
	assert.True(t, handler.IsValidationError(apperrors.NewValidationError("bad", nil)))
	assert.False(t, handler.IsValidationError(errors.New("plain")))

	assert.True(t, handler.IsNotFoundError(apperrors.NewNotFoundError("task", "1")))
	assert.False(t, handler.IsNotFoundError(validationErr))

	assert.True(t, handler.IsStorageError(apperrors.NewStorageError("set", nil)))
	assert.True(t, handler.IsStorageError(apperrors.NewUnavailableError("save")))
	assert.True(t, handler.IsStorageError(apperrors.NewCorruptDataError("key", nil)))
	assert.True(t, handler.IsStorageError(apperrors.NewCapacityError("key", 2, 1)))
	assert.False(t, handler.IsStorageError(apperrors.NewNotFoundError("task", "1")))

	assert.Equal(t, "NOT_FOUND", handler.GetErrorCode(apperrors.NewNotFoundError("task", "1")))
}
