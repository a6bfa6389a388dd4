package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"linkedin-scraper/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "scraper.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraper.db")
	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, NewRunRepository(db).CreateRun("run-1", "urls.txt", "out.json"))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()

	run, err := NewRunRepository(db).GetRun("run-1")
	require.NoError(t, err)
	require.Equal(t, "urls.txt", run.Source)
	require.Equal(t, "out.json", run.OutputPath)
	require.Equal(t, models.RunStatusRunning, run.Status)
}

func TestRunRepository(t *testing.T) {
	db := openTestDB(t)
	runs := NewRunRepository(db)

	require.NoError(t, runs.CreateRun("a", "", ""))
	require.NoError(t, runs.CreateRun("b", "", ""))
	require.Error(t, runs.CreateRun("a", "", ""))

	require.NoError(t, runs.UpdateRunStatus("a", models.RunStatusCompleted))
	run, err := runs.GetRun("a")
	require.NoError(t, err)
	require.Equal(t, models.RunStatusCompleted, run.Status)

	_, err = runs.GetRun("missing")
	require.ErrorIs(t, err, ErrRunNotFound)
	require.ErrorIs(t, runs.UpdateRunStatus("missing", models.RunStatusCompleted), ErrRunNotFound)

	list, err := runs.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "b", list[0].ID)
}

func TestProfileRepositoryTracksOutcomes(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewRunRepository(db).CreateRun("run", "", ""))
	repo := NewProfileRepository(db)

	urls := []string{"https://x/in/a", "https://x/in/b", " ", "https://x/in/c", "https://x/in/a"}
	require.NoError(t, repo.ImportURLs("run", urls))

	remaining, err := repo.GetRemainingURLs("run")
	require.NoError(t, err)
	require.Equal(t, []string{"https://x/in/a", "https://x/in/b", "https://x/in/c"}, remaining)

	require.NoError(t, repo.MarkSuccess("run", "https://x/in/a", "A", `{"url":"https://x/in/a"}`))
	require.NoError(t, repo.MarkFailed("run", "https://x/in/b", "timeout"))

	remaining, err = repo.GetRemainingURLs("run")
	require.NoError(t, err)
	require.Equal(t, []string{"https://x/in/b", "https://x/in/c"}, remaining)

	stats, err := repo.GetRunStats("run")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"success": 1, "failed": 1, "pending": 1, "total": 3}, stats)

	records, err := repo.GetRecordsJSON("run")
	require.NoError(t, err)
	require.Equal(t, []string{`{"url":"https://x/in/a"}`}, records)
}

func TestCookieRepositoryReplacesPerKey(t *testing.T) {
	db := openTestDB(t)
	repo := NewCookieRepository(db)

	first := []models.Cookie{
		{Name: "li_at", Value: "1", Domain: ".linkedin.com", Path: "/", Expires: 1.7e9, HTTPOnly: true, Secure: true, SameSite: "None"},
		{Name: "JSESSIONID", Value: "2", Domain: ".www.linkedin.com", Path: "/"},
	}
	require.NoError(t, repo.SaveCookies("default", first))
	require.NoError(t, repo.SaveCookies("other", first[:1]))

	got, err := repo.GetCookies("default")
	require.NoError(t, err)
	require.Equal(t, first, got)

	require.NoError(t, repo.SaveCookies("default", first[1:]))
	n, err := repo.CountCookies("default")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, repo.ClearCookies("default"))
	got, err = repo.GetCookies("default")
	require.NoError(t, err)
	require.Empty(t, got)

	n, err = repo.CountCookies("other")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
