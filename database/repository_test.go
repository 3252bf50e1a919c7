package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspiration-notes/models"
)

func mustCreateTheme(t *testing.T, repo *Repository, name string, lastUsed int64, count int) {
	t.Helper()
	err := repo.CreateTheme(&models.Theme{
		Name:             name,
		CreatedAt:        lastUsed,
		LastUsed:         lastUsed,
		InspirationCount: count,
	})
	require.NoError(t, err)
}

func mustInsertInspiration(t *testing.T, repo *Repository, content, theme string) int64 {
	t.Helper()
	id, err := repo.InsertInspiration(&models.Inspiration{
		Content:   content,
		ThemeName: theme,
		CreatedAt: time.Now().UnixMilli(),
		WordCount: len(content),
	})
	require.NoError(t, err)
	return id
}

func TestThemeCatalog(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("create and read back", func(t *testing.T) {
		theme := &models.Theme{
			Name:        "Reading",
			Icon:        "book",
			Color:       "#1976d2",
			Description: "books and papers",
			CreatedAt:   100,
			LastUsed:    200,
		}
		require.NoError(t, repo.CreateTheme(theme))

		got, err := repo.GetTheme("Reading")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, theme, got)
		assert.Equal(t, 0, got.InspirationCount)
	})

	t.Run("get missing theme returns nil", func(t *testing.T) {
		got, err := repo.GetTheme("missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate name rejected by primary key", func(t *testing.T) {
		err := repo.CreateTheme(&models.Theme{Name: "Reading", CreatedAt: 1, LastUsed: 1})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("rename onto an existing name reports duplicate key", func(t *testing.T) {
		mustCreateTheme(t, repo, "Colliding", 1, 0)

		err := repo.RenameTheme("Colliding", "Reading")
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("exists", func(t *testing.T) {
		exists, err := repo.ThemeExists("Reading")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ThemeExists("missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("aggregate primitives", func(t *testing.T) {
		require.NoError(t, repo.SetLastUsed("Reading", 5000))
		require.NoError(t, repo.SetInspirationCount("Reading", 7))

		got, err := repo.GetTheme("Reading")
		require.NoError(t, err)
		assert.Equal(t, int64(5000), got.LastUsed)
		assert.Equal(t, 7, got.InspirationCount)
	})
}

func TestListThemesOrdering(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	// default theme exists already with last_used = open time
	mustCreateTheme(t, repo, "banana", 300, 2)
	mustCreateTheme(t, repo, "apple", 100, 9)
	mustCreateTheme(t, repo, "cherry", 200, 5)

	names := func(themes []models.Theme) []string {
		out := make([]string, len(themes))
		for i, th := range themes {
			out[i] = th.Name
		}
		return out
	}

	t.Run("by name ascending", func(t *testing.T) {
		themes, err := repo.ListThemes(models.ThemeOrderName)
		require.NoError(t, err)
		assert.Equal(t, []string{testDefaultTheme, "apple", "banana", "cherry"}, names(themes))
	})

	t.Run("by last used descending", func(t *testing.T) {
		themes, err := repo.ListThemes(models.ThemeOrderLastUsed)
		require.NoError(t, err)
		// default theme was stamped with the open time, newest of all
		assert.Equal(t, []string{testDefaultTheme, "banana", "cherry", "apple"}, names(themes))
	})

	t.Run("by inspiration count descending", func(t *testing.T) {
		themes, err := repo.ListThemes(models.ThemeOrderCount)
		require.NoError(t, err)
		assert.Equal(t, []string{"apple", "cherry", "banana", testDefaultTheme}, names(themes))
	})
}

func TestInspirationStore(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	mustCreateTheme(t, repo, "Work", 1, 0)
	mustCreateTheme(t, repo, "Travel", 1, 0)

	t.Run("insert assigns increasing ids", func(t *testing.T) {
		first := mustInsertInspiration(t, repo, "ship the release", "Work")
		second := mustInsertInspiration(t, repo, "visit Kyoto", "Travel")
		assert.Greater(t, second, first)
	})

	t.Run("get by id", func(t *testing.T) {
		insp, err := repo.GetInspiration(1)
		require.NoError(t, err)
		require.NotNil(t, insp)
		assert.Equal(t, "ship the release", insp.Content)
		assert.Equal(t, "Work", insp.ThemeName)

		missing, err := repo.GetInspiration(9999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("get by theme", func(t *testing.T) {
		work, err := repo.GetInspirationsByTheme("Work")
		require.NoError(t, err)
		assert.Len(t, work, 1)

		none, err := repo.GetInspirationsByTheme("missing")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("search is case-insensitive over content and theme", func(t *testing.T) {
		byContent, err := repo.SearchInspirations("KYOTO")
		require.NoError(t, err)
		require.Len(t, byContent, 1)
		assert.Equal(t, "visit Kyoto", byContent[0].Content)

		byTheme, err := repo.SearchInspirations("trav")
		require.NoError(t, err)
		assert.Len(t, byTheme, 1)

		nothing, err := repo.SearchInspirations("zebra")
		require.NoError(t, err)
		assert.Empty(t, nothing)
	})

	t.Run("counts", func(t *testing.T) {
		total, err := repo.CountInspirations()
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		work, err := repo.CountInspirationsByTheme("Work")
		require.NoError(t, err)
		assert.Equal(t, 1, work)
	})

	t.Run("full row update", func(t *testing.T) {
		insp, err := repo.GetInspiration(1)
		require.NoError(t, err)

		insp.Content = "ship the hotfix"
		insp.ThemeName = "Travel"
		require.NoError(t, repo.UpdateInspiration(insp))

		got, err := repo.GetInspiration(1)
		require.NoError(t, err)
		assert.Equal(t, "ship the hotfix", got.Content)
		assert.Equal(t, "Travel", got.ThemeName)
	})

	t.Run("delete by id", func(t *testing.T) {
		require.NoError(t, repo.DeleteInspiration(1))

		got, err := repo.GetInspiration(1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete by theme", func(t *testing.T) {
		mustInsertInspiration(t, repo, "pack bags", "Travel")
		require.NoError(t, repo.DeleteInspirationsByTheme("Travel"))

		count, err := repo.CountInspirationsByTheme("Travel")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestCascadePrimitives(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	mustCreateTheme(t, repo, "Old", 1, 0)
	mustInsertInspiration(t, repo, "one", "Old")
	mustInsertInspiration(t, repo, "two", "Old")

	t.Run("rename plus bulk update inside one transaction", func(t *testing.T) {
		err := repo.WithTx(func(tx *Repository) error {
			if err := tx.RenameTheme("Old", "New"); err != nil {
				return err
			}
			return tx.UpdateThemeNameForAll("Old", "New")
		})
		require.NoError(t, err)

		renamed, err := repo.GetInspirationsByTheme("New")
		require.NoError(t, err)
		assert.Len(t, renamed, 2)

		stale, err := repo.GetInspirationsByTheme("Old")
		require.NoError(t, err)
		assert.Empty(t, stale)
	})

	t.Run("transaction rolls back wholesale", func(t *testing.T) {
		boom := errors.New("boom")
		err := repo.WithTx(func(tx *Repository) error {
			if err := tx.RenameTheme("New", "Broken"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		theme, err := repo.GetTheme("New")
		require.NoError(t, err)
		assert.NotNil(t, theme, "rename must not be visible after rollback")
	})

	t.Run("nested transactions rejected", func(t *testing.T) {
		err := repo.WithTx(func(tx *Repository) error {
			return tx.WithTx(func(*Repository) error { return nil })
		})
		assert.Error(t, err)
	})
}

func TestWatchViews(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	mustCreateTheme(t, repo, "Watchable", 1, 0)

	recv := func(t *testing.T, ch <-chan []models.Inspiration) []models.Inspiration {
		t.Helper()
		select {
		case snapshot := <-ch:
			return snapshot
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for snapshot")
			return nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := repo.WatchInspirations(ctx)
	require.NoError(t, err)

	assert.Empty(t, recv(t, ch), "initial snapshot")

	mustInsertInspiration(t, repo, "first", "Watchable")
	assert.Len(t, recv(t, ch), 1, "snapshot after insert commit")

	// A multi-step transaction produces one notification, after commit.
	err = repo.WithTx(func(tx *Repository) error {
		if _, err := tx.InsertInspiration(&models.Inspiration{
			Content: "second", ThemeName: "Watchable", CreatedAt: 2,
		}); err != nil {
			return err
		}
		_, err := tx.InsertInspiration(&models.Inspiration{
			Content: "third", ThemeName: "Watchable", CreatedAt: 3,
		})
		return err
	})
	require.NoError(t, err)
	assert.Len(t, recv(t, ch), 3, "snapshot after transaction commit")

	cancel()
	for {
		if _, open := <-ch; !open {
			break
		}
	}
}

func TestWatchThemeCatalog(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	recv := func(t *testing.T, ch <-chan []models.Theme) []models.Theme {
		t.Helper()
		select {
		case snapshot := <-ch:
			return snapshot
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for snapshot")
			return nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := repo.WatchThemes(ctx, models.ThemeOrderName)
	require.NoError(t, err)

	initial := recv(t, ch)
	require.Len(t, initial, 1, "initial snapshot")
	assert.Equal(t, testDefaultTheme, initial[0].Name)

	mustCreateTheme(t, repo, "Fresh", 1, 0)
	assert.Len(t, recv(t, ch), 2, "snapshot after create commit")

	// A multi-step transaction produces one notification, after commit.
	err = repo.WithTx(func(tx *Repository) error {
		if err := tx.RenameTheme("Fresh", "Renamed"); err != nil {
			return err
		}
		return tx.SetLastUsed("Renamed", 9)
	})
	require.NoError(t, err)

	snapshot := recv(t, ch)
	require.Len(t, snapshot, 2, "snapshot after transaction commit")
	assert.Equal(t, "Renamed", snapshot[0].Name)
	assert.Equal(t, int64(9), snapshot[0].LastUsed)

	cancel()
	for {
		if _, open := <-ch; !open {
			break
		}
	}
}

func TestAuditQueries(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	mustCreateTheme(t, repo, "Kept", 1, 0)
	mustCreateTheme(t, repo, "Empty", 1, 0)
	mustInsertInspiration(t, repo, "fine note", "Kept")

	// Orphans can only come from data written around the store's
	// constraints, so plant one with the foreign keys off.
	_, err := repo.db.Exec(`PRAGMA foreign_keys=OFF`)
	require.NoError(t, err)
	_, err = repo.db.Exec(`
		INSERT INTO inspirations (content, theme_name, created_at, word_count)
		VALUES ('lost note', 'ghost', 10, 2), ('   ', 'Kept', 11, 0)
	`)
	require.NoError(t, err)
	_, err = repo.db.Exec(`PRAGMA foreign_keys=ON`)
	require.NoError(t, err)

	t.Run("orphans", func(t *testing.T) {
		orphans, err := repo.GetOrphanedInspirations()
		require.NoError(t, err)
		require.Len(t, orphans, 1)
		assert.Equal(t, "ghost", orphans[0].ThemeName)
	})

	t.Run("blank content", func(t *testing.T) {
		blanks, err := repo.GetBlankInspirations()
		require.NoError(t, err)
		assert.Len(t, blanks, 1)
	})

	t.Run("duplicate names impossible through the store", func(t *testing.T) {
		dups, err := repo.GetDuplicateThemeNames()
		require.NoError(t, err)
		assert.Empty(t, dups)
	})

	t.Run("unused themes", func(t *testing.T) {
		unused, err := repo.GetUnusedThemes()
		require.NoError(t, err)
		assert.Equal(t, []string{"Empty", testDefaultTheme}, unused)
	})

	t.Run("theme count", func(t *testing.T) {
		count, err := repo.CountThemes()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}
