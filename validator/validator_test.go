package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspiration-notes/models"
)

func TestCheckThemeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  NameCheck
	}{
		{"simple name", "Work", NameOK},
		{"unicode name", "设计", NameOK},
		{"fifty characters", strings.Repeat("a", 50), NameOK},
		{"fifty runes of cjk", strings.Repeat("设", 50), NameOK},
		{"empty", "", NameEmpty},
		{"whitespace only", "   \t", NameEmpty},
		{"fifty-one characters", strings.Repeat("a", 51), NameTooLong},
		{"reserved sentinel", models.ThemeMarkerSentinel, NameReserved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckThemeName(tt.input))
		})
	}
}

func TestContentValid(t *testing.T) {
	assert.True(t, ContentValid("a"))
	assert.True(t, ContentValid(strings.Repeat("x", 500)))
	assert.True(t, ContentValid(strings.Repeat("想", 500)))
	assert.False(t, ContentValid(""))
	assert.False(t, ContentValid("   "))
	assert.False(t, ContentValid(strings.Repeat("x", 501)))
}

func TestValidateCreateThemeRequest(t *testing.T) {
	v := New()

	t.Run("valid request", func(t *testing.T) {
		err := v.Validate(&models.CreateThemeRequest{Name: "Reading", Color: "#123456"})
		assert.NoError(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		err := v.Validate(&models.CreateThemeRequest{})
		require.Error(t, err)

		verrs, ok := err.(ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, "name", verrs[0].Field)
		assert.Contains(t, verrs[0].Message, "required")
	})

	t.Run("sentinel name rejected by tag", func(t *testing.T) {
		err := v.Validate(&models.CreateThemeRequest{Name: models.ThemeMarkerSentinel})
		require.Error(t, err)

		verrs, ok := err.(ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, "themename", verrs[0].Tag)
	})

	t.Run("name over fifty characters", func(t *testing.T) {
		err := v.Validate(&models.CreateThemeRequest{Name: strings.Repeat("z", 51)})
		assert.Error(t, err)
	})
}

func TestValidateCreateInspirationRequest(t *testing.T) {
	v := New()

	t.Run("valid request", func(t *testing.T) {
		err := v.Validate(&models.CreateInspirationRequest{
			Content:   "write it down before it fades",
			ThemeName: "Ideas",
			WordCount: 6,
		})
		assert.NoError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		err := v.Validate(&models.CreateInspirationRequest{
			Content:   strings.Repeat("x", 501),
			ThemeName: "Ideas",
		})
		assert.Error(t, err)
	})

	t.Run("negative word count", func(t *testing.T) {
		err := v.Validate(&models.CreateInspirationRequest{
			Content:   "fine",
			ThemeName: "Ideas",
			WordCount: -1,
		})
		assert.Error(t, err)
	})
}
