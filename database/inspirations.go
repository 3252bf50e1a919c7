package database

import (
	"context"
	"database/sql"

	"inspiration-notes/models"
)

// InsertInspiration stores a new note and returns the assigned id.
// Content validation happens at the service layer before this is reached.
func (r *Repository) InsertInspiration(insp *models.Inspiration) (int64, error) {
	result, err := r.q.Exec(`
		INSERT INTO inspirations (content, theme_name, created_at, word_count)
		VALUES (?, ?, ?, ?)
	`, insp.Content, insp.ThemeName, insp.CreatedAt, insp.WordCount)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	insp.ID = id

	r.notify(tableInspirations)
	return id, nil
}

func (r *Repository) GetInspiration(id int64) (*models.Inspiration, error) {
	var insp models.Inspiration
	err := r.q.QueryRow(`
		SELECT id, content, theme_name, created_at, word_count
		FROM inspirations WHERE id = ?
	`, id).Scan(&insp.ID, &insp.Content, &insp.ThemeName, &insp.CreatedAt, &insp.WordCount)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &insp, nil
}

func (r *Repository) GetAllInspirations() ([]models.Inspiration, error) {
	return r.queryInspirations(`
		SELECT id, content, theme_name, created_at, word_count
		FROM inspirations
		ORDER BY created_at DESC
	`)
}

func (r *Repository) GetInspirationsByTheme(themeName string) ([]models.Inspiration, error) {
	return r.queryInspirations(`
		SELECT id, content, theme_name, created_at, word_count
		FROM inspirations
		WHERE theme_name = ?
		ORDER BY created_at DESC
	`, themeName)
}

// SearchInspirations matches a case-insensitive substring against both the
// note content and the theme name.
func (r *Repository) SearchInspirations(keyword string) ([]models.Inspiration, error) {
	pattern := "%" + keyword + "%"
	return r.queryInspirations(`
		SELECT id, content, theme_name, created_at, word_count
		FROM inspirations
		WHERE LOWER(content) LIKE LOWER(?) OR LOWER(theme_name) LIKE LOWER(?)
		ORDER BY created_at DESC
	`, pattern, pattern)
}

func (r *Repository) queryInspirations(query string, args ...any) ([]models.Inspiration, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inspirations := make([]models.Inspiration, 0)
	for rows.Next() {
		var insp models.Inspiration
		if err := rows.Scan(
			&insp.ID, &insp.Content, &insp.ThemeName, &insp.CreatedAt, &insp.WordCount,
		); err != nil {
			return nil, err
		}
		inspirations = append(inspirations, insp)
	}

	return inspirations, rows.Err()
}

func (r *Repository) CountInspirations() (int, error) {
	var count int
	err := r.q.QueryRow(`SELECT COUNT(*) FROM inspirations`).Scan(&count)
	return count, err
}

func (r *Repository) CountInspirationsByTheme(themeName string) (int, error) {
	var count int
	err := r.q.QueryRow(
		`SELECT COUNT(*) FROM inspirations WHERE theme_name = ?`, themeName,
	).Scan(&count)
	return count, err
}

// UpdateInspiration replaces the full row by id.
func (r *Repository) UpdateInspiration(insp *models.Inspiration) error {
	_, err := r.q.Exec(`
		UPDATE inspirations SET
			content = ?,
			theme_name = ?,
			created_at = ?,
			word_count = ?
		WHERE id = ?
	`, insp.Content, insp.ThemeName, insp.CreatedAt, insp.WordCount, insp.ID)
	if err != nil {
		return err
	}

	r.notify(tableInspirations)
	return nil
}

func (r *Repository) DeleteInspiration(id int64) error {
	_, err := r.q.Exec(`DELETE FROM inspirations WHERE id = ?`, id)
	if err != nil {
		return err
	}

	r.notify(tableInspirations)
	return nil
}

// DeleteInspirationsByTheme discards a theme's notes wholesale. This is the
// intentional bulk-discard path, distinct from delete-with-reassignment.
func (r *Repository) DeleteInspirationsByTheme(themeName string) error {
	_, err := r.q.Exec(`DELETE FROM inspirations WHERE theme_name = ?`, themeName)
	if err != nil {
		return err
	}

	r.notify(tableInspirations)
	return nil
}

// UpdateThemeNameForAll rewrites the foreign-key column in bulk. It exists
// solely as the cascade step of a theme rename and runs in the same
// transaction as the themes-table update.
func (r *Repository) UpdateThemeNameForAll(oldName, newName string) error {
	_, err := r.q.Exec(
		`UPDATE inspirations SET theme_name = ? WHERE theme_name = ?`, newName, oldName,
	)
	if err != nil {
		return err
	}

	r.notify(tableInspirations)
	return nil
}

// WatchInspirations returns a live view over all notes, newest first.
// Same contract as WatchThemes.
func (r *Repository) WatchInspirations(ctx context.Context) (<-chan []models.Inspiration, error) {
	initial, err := r.GetAllInspirations()
	if err != nil {
		return nil, err
	}

	id, signal := r.notifier.Subscribe(tableInspirations)
	out := make(chan []models.Inspiration, 1)
	out <- initial

	go func() {
		defer r.notifier.Unsubscribe(tableInspirations, id)
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				inspirations, err := r.GetAllInspirations()
				if err != nil {
					continue
				}
				select {
				case <-out:
				default:
				}
				out <- inspirations
			}
		}
	}()

	return out, nil
}
