package app

import (
	"log/slog"

	"inspiration-notes/database"
	"inspiration-notes/services"
	"inspiration-notes/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo               *database.Repository
	ThemeService       *services.ThemeService
	InspirationService *services.InspirationService
	IntegrityService   *services.IntegrityService
	Validator          *validator.Validator
	Logger             *slog.Logger
}

// New creates a new App instance with all dependencies
func New(repo *database.Repository, defaultTheme string, logger *slog.Logger) *App {
	themeService := services.NewThemeService(repo, defaultTheme)

	return &App{
		Repo:               repo,
		ThemeService:       themeService,
		InspirationService: services.NewInspirationService(repo, themeService),
		IntegrityService:   services.NewIntegrityService(repo, themeService),
		Validator:          validator.New(),
		Logger:             logger,
	}
}
