package database

import (
	"fmt"
	"time"

	"inspiration-notes/models"
)

// schemaVersionNormalized is the two-table schema with the themes catalog and
// a foreign key from inspirations to it. Anything below that is the legacy
// flat layout where inspirations carried a bare theme label.
const schemaVersionNormalized = 2

const createThemesTable = `
	CREATE TABLE IF NOT EXISTS themes (
		name TEXT PRIMARY KEY CHECK(length(name) > 0),
		icon TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		last_used INTEGER NOT NULL,
		inspiration_count INTEGER NOT NULL DEFAULT 0 CHECK(inspiration_count >= 0)
	)`

// The physical cascades exist as a safety net against logic bugs. Renames and
// deletes still cascade explicitly at the service layer so that reassignment,
// not child deletion, is what actually happens.
const createInspirationsTable = `
	CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		theme_name TEXT NOT NULL REFERENCES themes(name) ON UPDATE CASCADE ON DELETE CASCADE,
		created_at INTEGER NOT NULL,
		word_count INTEGER NOT NULL DEFAULT 0
	)`

var createIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_inspirations_content ON inspirations(content)`,
	`CREATE INDEX IF NOT EXISTS idx_inspirations_theme ON inspirations(theme_name)`,
}

// Migrate brings the store to the normalized schema. It runs exactly once:
// once the target version is recorded it only re-ensures the default theme.
// A failure here is fatal for the caller; the store must not be used with a
// partially migrated schema.
func (db *DB) Migrate(defaultTheme string) error {
	version, err := db.schemaVersion()
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	if version < schemaVersionNormalized {
		legacy, err := db.hasLegacyStore()
		if err != nil {
			return fmt.Errorf("inspecting schema: %w", err)
		}

		if legacy {
			if err := db.migrateLegacyStore(); err != nil {
				return fmt.Errorf("migrating legacy store: %w", err)
			}
		} else {
			if err := db.createSchema(); err != nil {
				return fmt.Errorf("creating schema: %w", err)
			}
		}
	}

	if err := db.ensureDefaultTheme(defaultTheme); err != nil {
		return fmt.Errorf("ensuring default theme: %w", err)
	}

	return nil
}

// hasLegacyStore reports whether the database holds the old flat layout:
// an inspirations table but no themes catalog next to it.
func (db *DB) hasLegacyStore() (bool, error) {
	hasInspirations, err := db.tableExists("inspirations")
	if err != nil {
		return false, err
	}
	hasThemes, err := db.tableExists("themes")
	if err != nil {
		return false, err
	}
	return hasInspirations && !hasThemes, nil
}

func (db *DB) tableExists(name string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
	).Scan(&count)
	return count > 0, err
}

func (db *DB) schemaVersion() (int, error) {
	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`,
	); err != nil {
		return 0, err
	}

	var version int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	return version, err
}

// createSchema builds the normalized schema directly for a fresh store.
func (db *DB) createSchema() error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		createThemesTable,
		fmt.Sprintf(createInspirationsTable, "inspirations"),
	}
	statements = append(statements, createIndexes...)

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO schema_version (version) VALUES (?)`, schemaVersionNormalized,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// migrateLegacyStore converts the flat single-table layout into the
// normalized schema inside one transaction. The old table is replaced by
// drop-and-rename rather than mutated row by row, so a crash leaves either
// the old or the new schema fully intact, never a mix.
func (db *DB) migrateLegacyStore() error {
	now := time.Now().UnixMilli()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(createThemesTable); err != nil {
		return err
	}

	// Distinct theme labels with their counts, skipping the placeholder rows
	// left over from the old theme-tracking scheme.
	rows, err := tx.Query(`
		SELECT theme_name, COUNT(*)
		FROM inspirations
		WHERE content != ?
		GROUP BY theme_name
	`, models.ThemeMarkerSentinel)
	if err != nil {
		return err
	}

	type themeCount struct {
		name  string
		count int
	}
	var themes []themeCount
	for rows.Next() {
		var tc themeCount
		if err := rows.Scan(&tc.name, &tc.count); err != nil {
			rows.Close()
			return err
		}
		themes = append(themes, tc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, tc := range themes {
		if _, err := tx.Exec(`
			INSERT INTO themes (name, icon, color, description, created_at, last_used, inspiration_count)
			VALUES (?, '', '', '', ?, ?, ?)
		`, tc.name, now, now, tc.count); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(fmt.Sprintf(createInspirationsTable, "inspirations_new")); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO inspirations_new (id, content, theme_name, created_at, word_count)
		SELECT id, content, theme_name, created_at, word_count
		FROM inspirations
		WHERE content != ?
	`, models.ThemeMarkerSentinel); err != nil {
		return err
	}

	if _, err := tx.Exec(`DROP TABLE inspirations`); err != nil {
		return err
	}
	if _, err := tx.Exec(`ALTER TABLE inspirations_new RENAME TO inspirations`); err != nil {
		return err
	}

	for _, stmt := range createIndexes {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO schema_version (version) VALUES (?)`, schemaVersionNormalized,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// ensureDefaultTheme guarantees the fallback theme exists on every open.
// It is the reassignment target for theme deletion and can never be deleted
// itself, so the store is unusable without it.
func (db *DB) ensureDefaultTheme(name string) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO themes (name, icon, color, description, created_at, last_used, inspiration_count)
		VALUES (?, '', '', '', ?, ?, 0)
		ON CONFLICT(name) DO NOTHING
	`, name, now, now)
	return err
}
