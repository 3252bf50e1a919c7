package services

import (
	"fmt"

	"inspiration-notes/database"
	"inspiration-notes/models"
)

// IntegrityService audits the store without mutating it. Repair is a
// separate, explicitly invoked operation built on the coordinator primitives.
type IntegrityService struct {
	repo  *database.Repository
	usage UsageRecorder
}

// NewIntegrityService creates a new integrity service
func NewIntegrityService(repo *database.Repository, usage UsageRecorder) *IntegrityService {
	return &IntegrityService{
		repo:  repo,
		usage: usage,
	}
}

// Check computes an integrity report: orphaned inspirations, duplicate theme
// names (defensive, against imported data that bypassed the store), blank
// content, and unused themes as informational warnings.
func (s *IntegrityService) Check() (*models.IntegrityReport, error) {
	report := &models.IntegrityReport{
		Issues:   make([]models.IntegrityIssue, 0),
		Warnings: make([]string, 0),
	}

	var err error
	if report.ThemeCount, err = s.repo.CountThemes(); err != nil {
		return nil, fmt.Errorf("counting themes: %w", err)
	}
	if report.InspirationCount, err = s.repo.CountInspirations(); err != nil {
		return nil, fmt.Errorf("counting inspirations: %w", err)
	}

	orphans, err := s.repo.GetOrphanedInspirations()
	if err != nil {
		return nil, fmt.Errorf("finding orphans: %w", err)
	}
	report.OrphanedInspirations = len(orphans)
	for _, insp := range orphans {
		report.Issues = append(report.Issues, models.IntegrityIssue{
			Type:    models.IssueOrphanedInspiration,
			Detail:  fmt.Sprintf("inspiration %d references nonexistent theme", insp.ID),
			Subject: insp.ThemeName,
		})
	}

	duplicates, err := s.repo.GetDuplicateThemeNames()
	if err != nil {
		return nil, fmt.Errorf("finding duplicate names: %w", err)
	}
	for _, name := range duplicates {
		report.Issues = append(report.Issues, models.IntegrityIssue{
			Type:    models.IssueDuplicateThemeName,
			Detail:  "theme name appears more than once",
			Subject: name,
		})
	}

	blanks, err := s.repo.GetBlankInspirations()
	if err != nil {
		return nil, fmt.Errorf("finding blank content: %w", err)
	}
	for _, insp := range blanks {
		report.Issues = append(report.Issues, models.IntegrityIssue{
			Type:    models.IssueBlankContent,
			Detail:  fmt.Sprintf("inspiration %d has blank content", insp.ID),
			Subject: insp.ThemeName,
		})
	}

	unused, err := s.repo.GetUnusedThemes()
	if err != nil {
		return nil, fmt.Errorf("finding unused themes: %w", err)
	}
	for _, name := range unused {
		report.Warnings = append(report.Warnings, fmt.Sprintf("theme %q has no inspirations", name))
	}

	report.Valid = len(report.Issues) == 0
	return report, nil
}

// RepairOrphans reassigns every orphaned inspiration to moveTo and returns
// how many rows were rewritten. Each distinct dangling theme label is
// rewritten atomically with the bulk cascade primitive.
func (s *IntegrityService) RepairOrphans(moveTo string) (int, error) {
	exists, err := s.repo.ThemeExists(moveTo)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrThemeNotFound
	}

	orphans, err := s.repo.GetOrphanedInspirations()
	if err != nil {
		return 0, err
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	dangling := make(map[string]bool)
	for _, insp := range orphans {
		dangling[insp.ThemeName] = true
	}

	err = s.repo.WithTx(func(tx *database.Repository) error {
		for label := range dangling {
			if err := tx.UpdateThemeNameForAll(label, moveTo); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.usage.RecordUsage(moveTo)
	return len(orphans), nil
}
