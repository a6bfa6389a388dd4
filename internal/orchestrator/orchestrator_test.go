package orchestrator

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkedin-scraper/internal/config"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/navigator"
	"linkedin-scraper/internal/record"
	"linkedin-scraper/internal/scraper"
	"linkedin-scraper/internal/storage"
)

type fakeScraper struct {
	fail     map[string]error
	calls    []string
	closes   int
	onScrape func(url string)
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (models.ProfileRecord, error) {
	f.calls = append(f.calls, url)
	if f.onScrape != nil {
		f.onScrape(url)
	}
	if err := f.fail[url]; err != nil {
		return models.ProfileRecord{}, err
	}
	return models.ProfileRecord{URL: url, Name: "Name of " + url, Experience: []models.ExperienceEntry{}}, nil
}

func (f *fakeScraper) Close() error {
	f.closes++
	return nil
}

var testURLs = []string{
	"https://www.linkedin.com/in/a/",
	"https://www.linkedin.com/in/b/",
	"https://www.linkedin.com/in/c/",
}

func unreachable(url string) error {
	return &navigator.LoadError{URL: url, Reason: "navigate", Err: errors.New("net::ERR_NAME_NOT_RESOLVED")}
}

func TestBatchContinuesPastFailures(t *testing.T) {
	fs := &fakeScraper{fail: map[string]error{testURLs[1]: unreachable(testURLs[1])}}
	bp := NewBatchProcessor(fs, nil, 0)
	bp.SetOutput(io.Discard)

	res := bp.Run(context.Background(), testURLs)

	require.Equal(t, testURLs, fs.calls)
	require.Len(t, res.Records, 2)
	require.Len(t, res.Failures, 1)
	require.Equal(t, testURLs[1], res.Failures[0].URL)
	var loadErr *navigator.LoadError
	require.True(t, errors.As(res.Failures[0].Err, &loadErr))
	assert.Equal(t, int32(3), res.Stats.Processed)
	assert.Equal(t, int32(2), res.Stats.Success)
	assert.Equal(t, int32(1), res.Stats.Failed)
	assert.False(t, res.Interrupted)
}

func TestBatchStopsOnShutdownFlag(t *testing.T) {
	var flag int32
	fs := &fakeScraper{onScrape: func(string) { atomic.StoreInt32(&flag, 1) }}
	bp := NewBatchProcessor(fs, nil, 0)
	bp.SetOutput(io.Discard)
	bp.SetShutdownFlag(&flag)

	res := bp.Run(context.Background(), testURLs)

	require.Len(t, fs.calls, 1)
	require.Len(t, res.Records, 1)
	require.True(t, res.Interrupted)
}

func TestBatchCancelledScrapeIsNotAFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fs := &fakeScraper{
		fail:     map[string]error{testURLs[0]: context.Canceled},
		onScrape: func(string) { cancel() },
	}
	bp := NewBatchProcessor(fs, nil, 0)
	bp.SetOutput(io.Discard)

	res := bp.Run(ctx, testURLs)

	require.True(t, res.Interrupted)
	require.Empty(t, res.Failures)
	require.Empty(t, res.Records)
}

func newTestAutoScraper(t *testing.T, fs *fakeScraper) *AutoScraper {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "scraper.db")
	cfg.OutputDir = t.TempDir()
	cfg.ProfileDelay = 0

	as, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { as.Close() })
	as.SetOutput(io.Discard)
	as.SetOpenFunc(func(ctx context.Context, cfg models.Config, login scraper.LoginOptions) (Scraper, error) {
		require.NotNil(t, login.Cookies)
		return fs, nil
	})
	return as
}

func writeURLs(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("# batch\n"+strings.Join(testURLs, "\n")+"\n"), 0644))
	return path
}

func TestAutoScraperRunAndResume(t *testing.T) {
	fs := &fakeScraper{fail: map[string]error{testURLs[2]: unreachable(testURLs[2])}}
	as := newTestAutoScraper(t, fs)

	res, err := as.Run(context.Background(), BatchOptions{URLsFile: writeURLs(t)})
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)
	require.Len(t, res.Records, 2)
	require.Len(t, res.Failures, 1)
	require.Equal(t, 1, fs.closes)

	run, err := as.GetDBStorage().RunRepo.GetRun(res.RunID)
	require.NoError(t, err)
	require.Equal(t, models.RunStatusCompleted, run.Status)
	require.NotEmpty(t, run.OutputPath)

	written, err := record.ReadJSONList(run.OutputPath)
	require.NoError(t, err)
	require.Len(t, written, 2)

	// the failing profile recovers on resume
	delete(fs.fail, testURLs[2])
	fs.calls = nil
	res2, err := as.Run(context.Background(), BatchOptions{ResumeRunID: res.RunID})
	require.NoError(t, err)
	require.Equal(t, []string{testURLs[2]}, fs.calls)
	require.Len(t, res2.Records, 1)

	written, err = record.ReadJSONList(run.OutputPath)
	require.NoError(t, err)
	require.Len(t, written, 3)
	require.Equal(t, testURLs[0], written[0].URL)
	require.Equal(t, testURLs[2], written[2].URL)
}

func TestAutoScraperRequiresInput(t *testing.T) {
	as := newTestAutoScraper(t, &fakeScraper{})
	_, err := as.Run(context.Background(), BatchOptions{})
	require.Error(t, err)

	_, err = as.Run(context.Background(), BatchOptions{ResumeRunID: "does-not-exist"})
	require.Error(t, err)
}

func TestAutoScraperReturnsOpenFailure(t *testing.T) {
	as := newTestAutoScraper(t, &fakeScraper{})
	loginErr := errors.New("login blocked")
	as.SetOpenFunc(func(ctx context.Context, cfg models.Config, login scraper.LoginOptions) (Scraper, error) {
		return nil, loginErr
	})

	_, err := as.Run(context.Background(), BatchOptions{URLsFile: writeURLs(t)})
	require.ErrorIs(t, err, loginErr)
}

func TestAutoScraperWritesCSV(t *testing.T) {
	as := newTestAutoScraper(t, &fakeScraper{})

	res, err := as.Run(context.Background(), BatchOptions{URLsFile: writeURLs(t), Format: record.FormatCSV})
	require.NoError(t, err)

	run, err := as.GetDBStorage().RunRepo.GetRun(res.RunID)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(run.OutputPath, ".csv"), run.OutputPath)

	data, err := os.ReadFile(run.OutputPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1+len(testURLs))
	assert.Contains(t, lines[1], testURLs[0])
}

func TestAutoScraperRejectsEmptyURLList(t *testing.T) {
	as := newTestAutoScraper(t, &fakeScraper{})
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("# none\n"), 0644))

	_, err := as.Run(context.Background(), BatchOptions{URLsFile: path})
	require.ErrorIs(t, err, storage.ErrNoURLs)
}
