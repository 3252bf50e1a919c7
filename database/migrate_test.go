package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspiration-notes/models"
)

const testDefaultTheme = "Uncategorized"

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "inspiration-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	db, cleanup := setupTestDB(t)

	err := db.Migrate(testDefaultTheme)
	require.NoError(t, err)

	return NewRepository(db), cleanup
}

func TestMigrateFreshStore(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.Migrate(testDefaultTheme)
	require.NoError(t, err)

	for _, table := range []string{"themes", "inspirations", "schema_version"} {
		exists, err := db.tableExists(table)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	repo := NewRepository(db)

	t.Run("default theme exists", func(t *testing.T) {
		theme, err := repo.GetTheme(testDefaultTheme)
		require.NoError(t, err)
		require.NotNil(t, theme)
		assert.Equal(t, 0, theme.InspirationCount)
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		err := db.Migrate(testDefaultTheme)
		require.NoError(t, err)

		themes, err := repo.ListThemes(models.ThemeOrderName)
		require.NoError(t, err)
		assert.Len(t, themes, 1)
	})
}

// seedLegacyStore builds the old flat layout: one table, theme as a bare
// label column, no catalog.
func seedLegacyStore(t *testing.T, db *DB, rows [][2]string) {
	t.Helper()

	_, err := db.Exec(`
		CREATE TABLE inspirations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL,
			theme_name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			word_count INTEGER NOT NULL DEFAULT 0
		)`)
	require.NoError(t, err)

	for i, row := range rows {
		_, err := db.Exec(`
			INSERT INTO inspirations (content, theme_name, created_at, word_count)
			VALUES (?, ?, ?, ?)
		`, row[0], row[1], int64(1000+i), len(row[0]))
		require.NoError(t, err)
	}
}

func TestMigrateLegacyStore(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	seedLegacyStore(t, db, [][2]string{
		{"a", "设计"},
		{models.ThemeMarkerSentinel, "设计"},
		{"b", "开发"},
	})

	err := db.Migrate(testDefaultTheme)
	require.NoError(t, err)

	repo := NewRepository(db)

	t.Run("themes created from distinct labels", func(t *testing.T) {
		design, err := repo.GetTheme("设计")
		require.NoError(t, err)
		require.NotNil(t, design)
		assert.Equal(t, 1, design.InspirationCount, "sentinel rows excluded from the count")

		dev, err := repo.GetTheme("开发")
		require.NoError(t, err)
		require.NotNil(t, dev)
		assert.Equal(t, 1, dev.InspirationCount)
	})

	t.Run("sentinel rows do not survive", func(t *testing.T) {
		all, err := repo.GetAllInspirations()
		require.NoError(t, err)
		assert.Len(t, all, 2)
		for _, insp := range all {
			assert.NotEqual(t, models.ThemeMarkerSentinel, insp.Content)
		}
	})

	t.Run("row ids and columns preserved", func(t *testing.T) {
		insp, err := repo.GetInspiration(1)
		require.NoError(t, err)
		require.NotNil(t, insp)
		assert.Equal(t, "a", insp.Content)
		assert.Equal(t, "设计", insp.ThemeName)
		assert.Equal(t, int64(1000), insp.CreatedAt)
	})

	t.Run("default theme added alongside migrated themes", func(t *testing.T) {
		themes, err := repo.ListThemes(models.ThemeOrderName)
		require.NoError(t, err)
		assert.Len(t, themes, 3)
	})

	t.Run("foreign key enforced on new table", func(t *testing.T) {
		_, err := db.Exec(`
			INSERT INTO inspirations (content, theme_name, created_at, word_count)
			VALUES ('ghost note', 'no-such-theme', 0, 1)
		`)
		assert.Error(t, err)
	})

	t.Run("second migrate does not rerun the transform", func(t *testing.T) {
		err := db.Migrate(testDefaultTheme)
		require.NoError(t, err)

		all, err := repo.GetAllInspirations()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestMigrateLegacyStoreOnlySentinels(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	seedLegacyStore(t, db, [][2]string{
		{models.ThemeMarkerSentinel, "placeholder-only"},
	})

	err := db.Migrate(testDefaultTheme)
	require.NoError(t, err)

	repo := NewRepository(db)

	// A label seen only on sentinel rows gets no theme and no surviving rows.
	theme, err := repo.GetTheme("placeholder-only")
	require.NoError(t, err)
	assert.Nil(t, theme)

	count, err := repo.CountInspirations()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
