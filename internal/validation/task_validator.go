package validation

import (
	"strings"
)

const (
	// TitleMaxLength bounds the trimmed title. The persisted snapshot is a
	// single blob, so unbounded titles eat into the storage capacity.
	TitleMaxLength = 255
)

// TaskValidator provides validation for task creation input.
type TaskValidator struct{}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{}
}

// ValidateTitle validates a task title. The title is trimmed before the
// empty check; whitespace-only titles fail the same way empty ones do.
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		validationError.AddRequiredError("title")
		return validationError
	}

	if len(trimmed) > TitleMaxLength {
		validationError.AddInvalidLengthError("title", trimmed, 1, TitleMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTaskID validates a task id
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if id <= 0 {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// CleanTitle returns the trimmed title if it is valid.
func (tv *TaskValidator) CleanTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}

// CleanDescription trims a description. Descriptions may be empty.
func (tv *TaskValidator) CleanDescription(description string) string {
	return strings.TrimSpace(description)
}
