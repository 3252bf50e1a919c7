package validator

import (
	"strings"

	"inspiration-notes/models"
)

const (
	MaxThemeNameLength = 50
	MaxContentLength   = 500
)

// NameCheck is the outcome of validating a theme name, precise enough for
// callers to render a specific message rather than a generic failure.
type NameCheck int

const (
	NameOK NameCheck = iota
	NameEmpty
	NameTooLong
	NameReserved
)

func (c NameCheck) String() string {
	switch c {
	case NameOK:
		return "ok"
	case NameEmpty:
		return "empty"
	case NameTooLong:
		return "too long"
	case NameReserved:
		return "reserved"
	default:
		return "invalid"
	}
}

// CheckThemeName applies the theme naming rules: non-blank, at most 50
// characters, never the reserved migration sentinel.
func CheckThemeName(name string) NameCheck {
	if strings.TrimSpace(name) == "" {
		return NameEmpty
	}
	if len([]rune(name)) > MaxThemeNameLength {
		return NameTooLong
	}
	if name == models.ThemeMarkerSentinel {
		return NameReserved
	}
	return NameOK
}

// ContentValid applies the inspiration content rules: non-blank, at most
// 500 characters.
func ContentValid(content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}
	return len([]rune(content)) <= MaxContentLength
}
