package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewStorageError creates a new storage error
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Code:    "STORAGE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewUnavailableError creates an error for an unreachable storage substrate
func NewUnavailableError(operation string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnavailable,
		Message: fmt.Sprintf("storage is not available: %s", operation),
		Code:    "STORAGE_UNAVAILABLE",
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewCorruptDataError creates an error for undecodable stored data
func NewCorruptDataError(key string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeCorrupt,
		Message: fmt.Sprintf("stored data is corrupt: %s", key),
		Code:    "CORRUPT_DATA",
		Cause:   cause,
		Context: map[string]interface{}{
			"key": key,
		},
	}
}

// NewCapacityError creates an error for a write that exceeds the storage capacity
func NewCapacityError(key string, size int, capacity int) *AppError {
	return &AppError{
		Type:    ErrorTypeCapacity,
		Message: fmt.Sprintf("write of %d bytes exceeds storage capacity of %d bytes", size, capacity),
		Code:    "CAPACITY_EXCEEDED",
		Context: map[string]interface{}{
			"key":      key,
			"size":     size,
			"capacity": capacity,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			return appErr.Message
		case ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeStorage:
			return "A storage error occurred. Please try again."
		case ErrorTypeUnavailable:
			return "Storage is not available. Your changes were not saved."
		case ErrorTypeCorrupt:
			return "Stored data could not be read. It may be corrupt."
		case ErrorTypeCapacity:
			return "Storage is full. Delete some tasks or export your data."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // These are user errors, not system errors
		case ErrorTypeStorage, ErrorTypeUnavailable, ErrorTypeCorrupt, ErrorTypeCapacity:
			return true // These are system errors that should be logged
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
