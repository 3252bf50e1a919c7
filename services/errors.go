package services

import (
	"errors"
	"fmt"

	"inspiration-notes/validator"
)

// Common service-level errors
var (
	// Validation errors
	ErrInvalidName    = errors.New("invalid theme name")
	ErrInvalidContent = errors.New("invalid inspiration content")

	// Theme errors
	ErrThemeExists    = errors.New("theme already exists")
	ErrThemeNotFound  = errors.New("theme not found")
	ErrProtectedTheme = errors.New("default theme cannot be deleted")
	ErrSameTheme      = errors.New("move target must differ from the theme being deleted")

	// Inspiration errors
	ErrInspirationNotFound = errors.New("inspiration not found")
)

// NameError carries the precise validation outcome for a rejected theme name,
// so callers can render a specific message instead of a generic one.
// errors.Is(err, ErrInvalidName) holds for every NameError.
type NameError struct {
	Check validator.NameCheck
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid theme name: %s", e.Check)
}

func (e *NameError) Unwrap() error {
	return ErrInvalidName
}
