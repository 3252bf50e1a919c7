package services

import (
	"context"

	"inspiration-notes/models"
)

// InspirationRepository defines the interface for inspiration data access
type InspirationRepository interface {
	InsertInspiration(insp *models.Inspiration) (int64, error)
	GetInspiration(id int64) (*models.Inspiration, error)
	GetAllInspirations() ([]models.Inspiration, error)
	GetInspirationsByTheme(themeName string) ([]models.Inspiration, error)
	SearchInspirations(keyword string) ([]models.Inspiration, error)
	CountInspirations() (int, error)
	CountInspirationsByTheme(themeName string) (int, error)
	UpdateInspiration(insp *models.Inspiration) error
	DeleteInspiration(id int64) error
	DeleteInspirationsByTheme(themeName string) error
	ThemeExists(name string) (bool, error)
	WatchInspirations(ctx context.Context) (<-chan []models.Inspiration, error)
}

// UsageRecorder refreshes a theme's cached aggregates after a note mutation.
// Best-effort: implementations log failures instead of returning them.
type UsageRecorder interface {
	RecordUsage(themeName string)
}
