package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"inspiration-notes/database"
	"inspiration-notes/models"
	"inspiration-notes/validator"
)

// ThemeService is the transactional coordinator for theme mutations. Renames
// and deletes touch both tables, so they run through the repository's WithTx:
// observers see either the fully-before or the fully-after state.
type ThemeService struct {
	repo         *database.Repository
	defaultTheme string
}

// NewThemeService creates a new theme service
func NewThemeService(repo *database.Repository, defaultTheme string) *ThemeService {
	return &ThemeService{
		repo:         repo,
		defaultTheme: defaultTheme,
	}
}

// DefaultTheme returns the name of the protected fallback theme.
func (ts *ThemeService) DefaultTheme() string {
	return ts.defaultTheme
}

// List retrieves all themes in the requested order
func (ts *ThemeService) List(order models.ThemeOrder) ([]models.Theme, error) {
	return ts.repo.ListThemes(order)
}

// Get retrieves a theme by name
func (ts *ThemeService) Get(name string) (*models.Theme, error) {
	theme, err := ts.repo.GetTheme(name)
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return nil, ErrThemeNotFound
	}
	return theme, nil
}

// Exists reports whether a theme with the given name exists
func (ts *ThemeService) Exists(name string) (bool, error) {
	return ts.repo.ThemeExists(name)
}

// Watch returns a live view of the theme list
func (ts *ThemeService) Watch(ctx context.Context, order models.ThemeOrder) (<-chan []models.Theme, error) {
	return ts.repo.WatchThemes(ctx, order)
}

// Create creates a new theme
func (ts *ThemeService) Create(req models.CreateThemeRequest) (*models.Theme, error) {
	name := strings.TrimSpace(req.Name)

	if check := validator.CheckThemeName(name); check != validator.NameOK {
		return nil, &NameError{Check: check}
	}

	exists, err := ts.repo.ThemeExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrThemeExists
	}

	now := time.Now().UnixMilli()
	theme := &models.Theme{
		Name:        name,
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
		CreatedAt:   now,
		LastUsed:    now,
	}

	if err := ts.repo.CreateTheme(theme); err != nil {
		// A racing create can slip past the exists check above and hit the
		// primary key instead.
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, ErrThemeExists
		}
		return nil, err
	}

	return theme, nil
}

// Rename changes a theme's primary key and cascades the change to every
// inspiration referencing it, as one atomic unit. The rename is never
// considered complete unless the cascade also completed.
func (ts *ThemeService) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)

	if check := validator.CheckThemeName(newName); check != validator.NameOK {
		return &NameError{Check: check}
	}

	old, err := ts.repo.GetTheme(oldName)
	if err != nil {
		return err
	}
	if old == nil {
		return ErrThemeNotFound
	}
	if newName == oldName {
		return nil
	}

	exists, err := ts.repo.ThemeExists(newName)
	if err != nil {
		return err
	}
	if exists {
		return ErrThemeExists
	}

	err = ts.repo.WithTx(func(tx *database.Repository) error {
		if err := tx.RenameTheme(oldName, newName); err != nil {
			return err
		}
		return tx.UpdateThemeNameForAll(oldName, newName)
	})
	if errors.Is(err, database.ErrDuplicateKey) {
		return ErrThemeExists
	}
	return err
}

// Delete removes a theme after reassigning its inspirations to moveTo
// (the default theme when moveTo is empty). Notes are never silently
// destroyed: reassignment is durable before the theme row goes away, so no
// window exists where an inspiration references a nonexistent theme and the
// physical delete cascade never finds children to remove.
func (ts *ThemeService) Delete(name, moveTo string) error {
	if moveTo == "" {
		moveTo = ts.defaultTheme
	}

	if name == ts.defaultTheme {
		return ErrProtectedTheme
	}

	// Reassigning to the theme being deleted is a no-op rewrite; the delete
	// would then cascade onto the children and destroy them. Refuse it.
	if moveTo == name {
		return ErrSameTheme
	}

	exists, err := ts.repo.ThemeExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrThemeNotFound
	}

	// A missing move target is an error, not an invitation to create it.
	targetExists, err := ts.repo.ThemeExists(moveTo)
	if err != nil {
		return err
	}
	if !targetExists {
		return ErrThemeNotFound
	}

	err = ts.repo.WithTx(func(tx *database.Repository) error {
		if err := tx.UpdateThemeNameForAll(name, moveTo); err != nil {
			return err
		}
		return tx.DeleteTheme(name)
	})
	if err != nil {
		return err
	}

	ts.RecordUsage(moveTo)
	return nil
}

// RecordUsage refreshes a theme's cached aggregates: last_used to now and
// inspiration_count to a recount. The cache is not the source of truth, so a
// failure here is logged and swallowed rather than failing the mutation that
// triggered it; the integrity audit can always recompute.
func (ts *ThemeService) RecordUsage(themeName string) {
	count, err := ts.repo.CountInspirationsByTheme(themeName)
	if err != nil {
		slog.Warn("aggregate refresh failed", "theme", themeName, "error", err)
		return
	}

	if err := ts.repo.SetLastUsed(themeName, time.Now().UnixMilli()); err != nil {
		slog.Warn("aggregate refresh failed", "theme", themeName, "error", err)
		return
	}
	if err := ts.repo.SetInspirationCount(themeName, count); err != nil {
		slog.Warn("aggregate refresh failed", "theme", themeName, "error", err)
	}
}
