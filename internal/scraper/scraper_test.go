package scraper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"linkedin-scraper/internal/auth"
	"linkedin-scraper/internal/browser"
	"linkedin-scraper/internal/browser/browsertest"
	"linkedin-scraper/internal/config"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/navigator"
	"linkedin-scraper/internal/session"
)

const janeURL = "https://www.linkedin.com/in/jane-doe/"

func testConfig(t *testing.T) models.Config {
	cfg := config.DefaultConfig()
	cfg.PageLoadTimeout = 200 * time.Millisecond
	cfg.PollInterval = 2 * time.Millisecond
	cfg.ScrollPause = 5 * time.Millisecond
	cfg.MaxScrolls = 2
	cfg.OutputDir = t.TempDir()
	return cfg
}

func fixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "extractor", "testdata", "profile.html"))
	require.NoError(t, err)
	return string(data)
}

func newTestScraper(t *testing.T, d *browsertest.Driver, cfg models.Config) *Scraper {
	s := NewWithSession(session.New(d, nil), cfg)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { s.Close() })
	return s
}

func TestScrapeProfile(t *testing.T) {
	d := browsertest.New()
	d.AddPage(janeURL, fixture(t))
	s := newTestScraper(t, d, testConfig(t))

	rec, err := s.Scrape(context.Background(), janeURL)
	require.NoError(t, err)
	require.Equal(t, janeURL, rec.URL)
	require.Equal(t, "Jane Doe", rec.Name)
	require.Equal(t, "Acme Corp", rec.CurrentCompany)
	require.Len(t, rec.Experience, 4)
	require.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), rec.ScrapedAt)
}

func TestScrapeSparsePageIsNotAnError(t *testing.T) {
	url := "https://www.linkedin.com/in/sparse"
	d := browsertest.New()
	d.AddPage(url, "<html><body><main><p>nothing to see</p></main></body></html>")
	s := newTestScraper(t, d, testConfig(t))

	rec, err := s.Scrape(context.Background(), url)
	require.NoError(t, err)
	require.Equal(t, url, rec.URL)
	require.Empty(t, rec.Name)
	require.NotNil(t, rec.Experience)
	require.Empty(t, rec.Experience)
}

func TestScrapeUnreachableReturnsLoadError(t *testing.T) {
	d := browsertest.New()
	d.NavigateErrs[janeURL] = errors.New("net::ERR_CONNECTION_RESET")
	s := newTestScraper(t, d, testConfig(t))

	_, err := s.Scrape(context.Background(), janeURL)
	var loadErr *navigator.LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestScrapeReadFailureIsLoadError(t *testing.T) {
	d := browsertest.New()
	d.AddPage(janeURL, fixture(t))
	d.HTMLErr = errors.New("target closed")
	s := newTestScraper(t, d, testConfig(t))

	_, err := s.Scrape(context.Background(), janeURL)
	var loadErr *navigator.LoadError
	require.True(t, errors.As(err, &loadErr))
	require.Equal(t, "read page", loadErr.Reason)
}

func TestScrapeSavesHTML(t *testing.T) {
	cfg := testConfig(t)
	cfg.SaveHTML = true
	d := browsertest.New()
	d.AddPage(janeURL, fixture(t))
	s := newTestScraper(t, d, cfg)

	_, err := s.Scrape(context.Background(), janeURL)
	require.NoError(t, err)

	saved, err := os.ReadFile(filepath.Join(cfg.OutputDir, "jane-doe.html"))
	require.NoError(t, err)
	require.Contains(t, string(saved), "Jane Doe")
}

func TestCloseReleasesBrowserAfterFailure(t *testing.T) {
	d := browsertest.New()
	d.HTMLErr = errors.New("boom")
	d.AddPage(janeURL, fixture(t))
	s := NewWithSession(session.New(d, nil), testConfig(t))

	_, err := s.Scrape(context.Background(), janeURL)
	require.Error(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.Equal(t, 1, d.Closes())
}

type failingAuth struct{}

func (failingAuth) Login(ctx context.Context, d browser.Driver, mode models.LoginMode, creds *models.Credentials) error {
	return &auth.AuthError{Mode: mode, Reason: "blocked", Err: auth.ErrInvalidCredentials}
}

func TestLoginFailureHandling(t *testing.T) {
	d := browsertest.New()
	s := NewWithSession(session.New(d, failingAuth{}), testConfig(t))
	defer s.Close()

	err := s.Login(context.Background(), LoginOptions{Mode: models.LoginCredentials})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	err = s.Login(context.Background(), LoginOptions{Mode: models.LoginCredentials, ContinueOnFailure: true})
	require.NoError(t, err)
	require.False(t, s.Session().Authenticated())
}

func TestParseHTMLFile(t *testing.T) {
	rec, err := ParseHTMLFile(janeURL, filepath.Join("..", "extractor", "testdata", "profile.html"))
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", rec.Name)
	require.Equal(t, janeURL, rec.URL)
}

func TestProfileSlug(t *testing.T) {
	require.Equal(t, "jane-doe", ProfileSlug("https://www.linkedin.com/in/jane-doe/"))
	require.Equal(t, "jane-doe", ProfileSlug("https://www.linkedin.com/in/jane-doe?trk=abc"))
	require.Equal(t, "j_rg", ProfileSlug("https://www.linkedin.com/in/j%C3%B6rg/"))
	require.Equal(t, "company", ProfileSlug("https://example.com/company"))
	require.Empty(t, ProfileSlug("https://example.com/"))
	require.Regexp(t, `^profile_[0-9a-f]{8}\.json$`, OutputName("https://example.com/", ".json"))
}
