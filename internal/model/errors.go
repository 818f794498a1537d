package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPastDate          = errors.New("date is in the past")
	ErrUnavailable       = errors.New("item is not available")
	ErrNoImages          = errors.New("archive contains no valid images")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrAIDisabled        = errors.New("ai features are disabled")
)

// ValidationError describes an invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidateItem checks the fields required to save a clothing item.
func ValidateItem(item *ClothingItem, categories []string) error {
	if item.Name == "" {
		return NewValidationError("name", "required")
	}
	if item.ImageURL == "" {
		return NewValidationError("image", "required")
	}
	if !HasCategory(categories, item.Category) {
		return NewValidationError("category", fmt.Sprintf("unknown category %q", item.Category))
	}
	for _, o := range item.Occasions {
		if !o.Valid() {
			return NewValidationError("occasions", fmt.Sprintf("unknown occasion %q", o))
		}
	}
	if !item.Status.Valid() {
		return NewValidationError("status", fmt.Sprintf("unknown status %q", item.Status))
	}
	if !item.IroningStatus.Valid() {
		return NewValidationError("ironingStatus", fmt.Sprintf("unknown ironing status %q", item.IroningStatus))
	}
	if (item.Status == StatusInLaundry) != (item.AddedToLaundryAt != nil) {
		return NewValidationError("addedToLaundryAt", "must be set exactly when the item is in the laundry")
	}
	return nil
}
