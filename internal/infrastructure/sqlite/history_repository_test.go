package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/promptline/internal/history"
)

func setupTestRepo(t *testing.T, limit int) *HistoryRepository {
	t.Helper()
	db := openTestDB(t)
	repo, err := db.HistoryRepository(uuid.NewString(), limit)
	require.NoError(t, err)
	return repo
}

func TestHistoryRepository_AppendAndEntries(t *testing.T) {
	repo := setupTestRepo(t, 0)

	for _, e := range []string{"ls", "cd src", "make"} {
		require.NoError(t, repo.Append(e))
	}
	require.Equal(t, []string{"ls", "cd src", "make"}, repo.Entries())
}

func TestHistoryRepository_EntriesIsACopy(t *testing.T) {
	repo := setupTestRepo(t, 0)
	require.NoError(t, repo.Append("a"))

	got := repo.Entries()
	got[0] = "mutated"
	require.Equal(t, []string{"a"}, repo.Entries())
}

func TestHistoryRepository_LimitPrunes(t *testing.T) {
	repo := setupTestRepo(t, 2)

	for _, e := range []string{"one", "two", "three"} {
		require.NoError(t, repo.Append(e))
	}
	require.Equal(t, []string{"two", "three"}, repo.Entries())

	all, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, all, 2, "pruned rows are gone from the table too")
}

func TestHistoryRepository_ReloadSeesOtherWriters(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shared.db")

	dbA, err := NewDB(dbPath)
	require.NoError(t, err)
	defer dbA.Close()
	dbB, err := NewDB(dbPath)
	require.NoError(t, err)
	defer dbB.Close()

	a, err := dbA.HistoryRepository("session-a", 0)
	require.NoError(t, err)
	b, err := dbB.HistoryRepository("session-b", 0)
	require.NoError(t, err)

	require.NoError(t, a.Append("from a"))
	require.Empty(t, b.Entries(), "cache is not refreshed until Reload")

	require.NoError(t, b.Reload())
	require.Equal(t, []string{"from a"}, b.Entries())

	list, err := b.List(0)
	require.NoError(t, err)
	require.Equal(t, "session-a", list[0].SessionID)
}

func TestHistoryRepository_List(t *testing.T) {
	repo := setupTestRepo(t, 0)
	fixed := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	for _, e := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(e))
	}

	got, err := repo.List(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].Text)
	require.Equal(t, "c", got[1].Text)
	require.Equal(t, repo.SessionID(), got[1].SessionID)
	require.True(t, fixed.Equal(got[1].CreatedAt))
	require.Less(t, got[0].ID, got[1].ID)
}

func TestHistoryRepository_Clear(t *testing.T) {
	repo := setupTestRepo(t, 0)
	require.NoError(t, repo.Append("secret"))

	require.NoError(t, repo.Clear())
	require.Empty(t, repo.Entries())

	list, err := repo.List(0)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestHistoryRepository_PreservesText(t *testing.T) {
	repo := setupTestRepo(t, 0)
	text := "echo \"日本\" 😀\nsecond line"
	require.NoError(t, repo.Append(text))
	require.NoError(t, repo.Reload())
	require.Equal(t, []string{text}, repo.Entries())
}

// The repository drives a Navigator exactly like the in-memory store.
func TestHistoryRepository_WithNavigator(t *testing.T) {
	repo := setupTestRepo(t, 0)
	nav := history.NewNavigator(repo)

	nav.Add("first")
	nav.Add("second")
	nav.SetOriginalInput("draft")

	text, ok := nav.Navigate(history.Up)
	require.True(t, ok)
	require.Equal(t, "second", text)
	text, _ = nav.Navigate(history.Down)
	require.Equal(t, "draft", text)
}

// TestProperty_CacheMatchesTable checks that after any sequence of appends
// the cache equals a fresh read of the table.
func TestProperty_CacheMatchesTable(t *testing.T) {
	db := openTestDB(t)

	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(0, 5).Draw(rt, "limit")
		_, err := db.conn.Exec("DELETE FROM history")
		require.NoError(rt, err)

		repo, err := db.HistoryRepository("prop", limit)
		require.NoError(rt, err)

		entries := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{1,6}`), 0, 10).Draw(rt, "entries")
		for _, e := range entries {
			require.NoError(rt, repo.Append(e))
		}

		cached := repo.Entries()
		require.NoError(rt, repo.Reload())
		require.Equal(rt, cached, repo.Entries())
	})
}
