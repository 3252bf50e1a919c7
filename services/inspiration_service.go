package services

import (
	"context"
	"time"

	"inspiration-notes/models"
	"inspiration-notes/validator"
)

// InspirationService handles business logic for inspiration notes
type InspirationService struct {
	repo  InspirationRepository
	usage UsageRecorder
}

// NewInspirationService creates a new inspiration service
func NewInspirationService(repo InspirationRepository, usage UsageRecorder) *InspirationService {
	return &InspirationService{
		repo:  repo,
		usage: usage,
	}
}

// Save validates and stores a new inspiration, returning it with the
// assigned id. The word count is caller-supplied, not recomputed here.
func (is *InspirationService) Save(req models.CreateInspirationRequest) (*models.Inspiration, error) {
	if !validator.ContentValid(req.Content) {
		return nil, ErrInvalidContent
	}

	exists, err := is.repo.ThemeExists(req.ThemeName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrThemeNotFound
	}

	insp := &models.Inspiration{
		Content:   req.Content,
		ThemeName: req.ThemeName,
		CreatedAt: time.Now().UnixMilli(),
		WordCount: req.WordCount,
	}

	if _, err := is.repo.InsertInspiration(insp); err != nil {
		return nil, err
	}

	is.usage.RecordUsage(insp.ThemeName)
	return insp, nil
}

// Get retrieves an inspiration by id
func (is *InspirationService) Get(id int64) (*models.Inspiration, error) {
	insp, err := is.repo.GetInspiration(id)
	if err != nil {
		return nil, err
	}
	if insp == nil {
		return nil, ErrInspirationNotFound
	}
	return insp, nil
}

// List retrieves all inspirations, newest first
func (is *InspirationService) List() ([]models.Inspiration, error) {
	return is.repo.GetAllInspirations()
}

// ListByTheme retrieves all inspirations for a theme
func (is *InspirationService) ListByTheme(themeName string) ([]models.Inspiration, error) {
	return is.repo.GetInspirationsByTheme(themeName)
}

// Search matches a case-insensitive substring over content and theme name
func (is *InspirationService) Search(keyword string) ([]models.Inspiration, error) {
	return is.repo.SearchInspirations(keyword)
}

// Count returns the total number of inspirations
func (is *InspirationService) Count() (int, error) {
	return is.repo.CountInspirations()
}

// CountByTheme returns the number of inspirations referencing a theme
func (is *InspirationService) CountByTheme(themeName string) (int, error) {
	return is.repo.CountInspirationsByTheme(themeName)
}

// Watch returns a live view over all inspirations
func (is *InspirationService) Watch(ctx context.Context) (<-chan []models.Inspiration, error) {
	return is.repo.WatchInspirations(ctx)
}

// Update replaces an inspiration's content, theme and word count by id.
// The creation timestamp is preserved.
func (is *InspirationService) Update(id int64, req models.UpdateInspirationRequest) (*models.Inspiration, error) {
	if !validator.ContentValid(req.Content) {
		return nil, ErrInvalidContent
	}

	existing, err := is.repo.GetInspiration(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrInspirationNotFound
	}

	exists, err := is.repo.ThemeExists(req.ThemeName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrThemeNotFound
	}

	insp := &models.Inspiration{
		ID:        id,
		Content:   req.Content,
		ThemeName: req.ThemeName,
		CreatedAt: existing.CreatedAt,
		WordCount: req.WordCount,
	}

	if err := is.repo.UpdateInspiration(insp); err != nil {
		return nil, err
	}

	is.usage.RecordUsage(insp.ThemeName)
	if existing.ThemeName != insp.ThemeName {
		is.usage.RecordUsage(existing.ThemeName)
	}

	return insp, nil
}

// Delete removes an inspiration by id
func (is *InspirationService) Delete(id int64) error {
	existing, err := is.repo.GetInspiration(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrInspirationNotFound
	}

	if err := is.repo.DeleteInspiration(id); err != nil {
		return err
	}

	is.usage.RecordUsage(existing.ThemeName)
	return nil
}

// DeleteByTheme discards every note under a theme. This is the intentional
// bulk-discard path; theme deletion itself goes through reassignment instead.
func (is *InspirationService) DeleteByTheme(themeName string) error {
	exists, err := is.repo.ThemeExists(themeName)
	if err != nil {
		return err
	}
	if !exists {
		return ErrThemeNotFound
	}

	if err := is.repo.DeleteInspirationsByTheme(themeName); err != nil {
		return err
	}

	is.usage.RecordUsage(themeName)
	return nil
}
