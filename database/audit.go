package database

import "inspiration-notes/models"

// Read-only queries backing the integrity audit. None of these mutate state;
// repair is a separate explicit operation at the service layer.

// GetOrphanedInspirations returns notes whose theme_name matches no theme.
// Structurally impossible under the foreign key, but imported data can bypass
// the store's constraints.
func (r *Repository) GetOrphanedInspirations() ([]models.Inspiration, error) {
	return r.queryInspirations(`
		SELECT i.id, i.content, i.theme_name, i.created_at, i.word_count
		FROM inspirations i
		LEFT JOIN themes t ON t.name = i.theme_name
		WHERE t.name IS NULL
		ORDER BY i.created_at DESC
	`)
}

// GetDuplicateThemeNames is a defensive check against the same import paths;
// the primary key makes duplicates impossible for rows written by the store.
func (r *Repository) GetDuplicateThemeNames() ([]string, error) {
	rows, err := r.q.Query(`
		SELECT name FROM themes GROUP BY name HAVING COUNT(*) > 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *Repository) GetBlankInspirations() ([]models.Inspiration, error) {
	return r.queryInspirations(`
		SELECT id, content, theme_name, created_at, word_count
		FROM inspirations
		WHERE TRIM(content) = ''
		ORDER BY created_at DESC
	`)
}

// GetUnusedThemes returns themes with no associated inspirations.
// Informational only, never an integrity violation.
func (r *Repository) GetUnusedThemes() ([]string, error) {
	rows, err := r.q.Query(`
		SELECT t.name
		FROM themes t
		LEFT JOIN inspirations i ON i.theme_name = t.name
		WHERE i.id IS NULL
		ORDER BY t.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *Repository) CountThemes() (int, error) {
	var count int
	err := r.q.QueryRow(`SELECT COUNT(*) FROM themes`).Scan(&count)
	return count, err
}
