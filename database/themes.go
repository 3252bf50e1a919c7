package database

import (
	"context"
	"database/sql"

	"inspiration-notes/models"
)

func (r *Repository) CreateTheme(theme *models.Theme) error {
	_, err := r.q.Exec(`
		INSERT INTO themes (name, icon, color, description, created_at, last_used, inspiration_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		theme.Name, theme.Icon, theme.Color, theme.Description,
		theme.CreatedAt, theme.LastUsed, theme.InspirationCount,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return err
	}

	r.notify(tableThemes)
	return nil
}

func (r *Repository) GetTheme(name string) (*models.Theme, error) {
	var theme models.Theme
	err := r.q.QueryRow(`
		SELECT name, icon, color, description, created_at, last_used, inspiration_count
		FROM themes WHERE name = ?
	`, name).Scan(
		&theme.Name, &theme.Icon, &theme.Color, &theme.Description,
		&theme.CreatedAt, &theme.LastUsed, &theme.InspirationCount,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &theme, nil
}

func (r *Repository) ThemeExists(name string) (bool, error) {
	var count int
	err := r.q.QueryRow(`SELECT COUNT(*) FROM themes WHERE name = ?`, name).Scan(&count)
	return count > 0, err
}

func (r *Repository) ListThemes(order models.ThemeOrder) ([]models.Theme, error) {
	orderClause := "name ASC"
	switch order {
	case models.ThemeOrderLastUsed:
		orderClause = "last_used DESC"
	case models.ThemeOrderCount:
		orderClause = "inspiration_count DESC"
	}

	rows, err := r.q.Query(`
		SELECT name, icon, color, description, created_at, last_used, inspiration_count
		FROM themes
		ORDER BY ` + orderClause)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	themes := make([]models.Theme, 0)
	for rows.Next() {
		var theme models.Theme
		if err := rows.Scan(
			&theme.Name, &theme.Icon, &theme.Color, &theme.Description,
			&theme.CreatedAt, &theme.LastUsed, &theme.InspirationCount,
		); err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}

	return themes, rows.Err()
}

// RenameTheme updates the primary key. The declared ON UPDATE CASCADE rewrites
// children at the physical layer too; the service still issues the explicit
// bulk update in the same transaction and does not rely on it.
func (r *Repository) RenameTheme(oldName, newName string) error {
	_, err := r.q.Exec(`UPDATE themes SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return err
	}

	r.notify(tableThemes)
	return nil
}

// DeleteTheme is the low-level primitive. Callers above the repository must
// reassign referencing inspirations first; deleting with children still
// attached lets the physical cascade destroy them.
func (r *Repository) DeleteTheme(name string) error {
	_, err := r.q.Exec(`DELETE FROM themes WHERE name = ?`, name)
	if err != nil {
		return err
	}

	r.notify(tableThemes)
	return nil
}

func (r *Repository) SetLastUsed(name string, timestamp int64) error {
	_, err := r.q.Exec(`UPDATE themes SET last_used = ? WHERE name = ?`, timestamp, name)
	if err != nil {
		return err
	}

	r.notify(tableThemes)
	return nil
}

func (r *Repository) SetInspirationCount(name string, count int) error {
	_, err := r.q.Exec(`UPDATE themes SET inspiration_count = ? WHERE name = ?`, count, name)
	if err != nil {
		return err
	}

	r.notify(tableThemes)
	return nil
}

// WatchThemes returns a live view over the theme list: a snapshot now and a
// fresh one after every commit that touches the themes table. The channel
// closes when ctx is cancelled.
func (r *Repository) WatchThemes(ctx context.Context, order models.ThemeOrder) (<-chan []models.Theme, error) {
	initial, err := r.ListThemes(order)
	if err != nil {
		return nil, err
	}

	id, signal := r.notifier.Subscribe(tableThemes)
	out := make(chan []models.Theme, 1)
	out <- initial

	go func() {
		defer r.notifier.Unsubscribe(tableThemes, id)
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				themes, err := r.ListThemes(order)
				if err != nil {
					continue
				}
				// Drop a stale snapshot the subscriber never read.
				select {
				case <-out:
				default:
				}
				out <- themes
			}
		}
	}()

	return out, nil
}
