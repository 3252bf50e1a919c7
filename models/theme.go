package models

// Timestamps are integer milliseconds since the Unix epoch throughout.

// ThemeMarkerSentinel is the reserved content value an earlier schema used for
// theme-tracking placeholder rows. It is never a valid theme name and rows
// carrying it as content do not survive migration.
const ThemeMarkerSentinel = "__THEME_MARKER__"

type Theme struct {
	Name             string `json:"name"`
	Icon             string `json:"icon"`
	Color            string `json:"color"`
	Description      string `json:"description"`
	CreatedAt        int64  `json:"created_at"`
	LastUsed         int64  `json:"last_used"`
	InspirationCount int    `json:"inspiration_count"`
}

type Inspiration struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	ThemeName string `json:"theme_name"`
	CreatedAt int64  `json:"created_at"`
	WordCount int    `json:"word_count"`
}

// ThemeOrder selects the sort order for theme listings.
type ThemeOrder string

const (
	ThemeOrderName     ThemeOrder = "name"
	ThemeOrderLastUsed ThemeOrder = "last_used"
	ThemeOrderCount    ThemeOrder = "count"
)

type CreateThemeRequest struct {
	Name        string `json:"name" validate:"required,max=50,themename"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description" validate:"max=200"`
}

type RenameThemeRequest struct {
	NewName string `json:"new_name" validate:"required,max=50,themename"`
}

type DeleteThemeRequest struct {
	MoveTo string `json:"move_to"`
}

type CreateInspirationRequest struct {
	Content   string `json:"content" validate:"required,max=500"`
	ThemeName string `json:"theme_name" validate:"required,max=50"`
	WordCount int    `json:"word_count" validate:"gte=0"`
}

type UpdateInspirationRequest struct {
	Content   string `json:"content" validate:"required,max=500"`
	ThemeName string `json:"theme_name" validate:"required,max=50"`
	WordCount int    `json:"word_count" validate:"gte=0"`
}
