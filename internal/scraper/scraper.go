// Package scraper ties the session, navigator, extractors and record
// assembly into the library entry points.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"linkedin-scraper/internal/auth"
	"linkedin-scraper/internal/browser"
	"linkedin-scraper/internal/config"
	"linkedin-scraper/internal/extractor"
	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/navigator"
	"linkedin-scraper/internal/record"
	"linkedin-scraper/internal/session"
)

// LoginOptions says how the scraper's session should authenticate
type LoginOptions struct {
	Mode        models.LoginMode
	Credentials *models.Credentials
	// ContinueOnFailure keeps scraping anonymously when login fails
	ContinueOnFailure bool
	// Cookies enables session reuse across runs; nil disables it
	Cookies auth.CookieStore
	// Out receives operator instructions, stdout when nil
	Out io.Writer
}

// Scraper scrapes profiles through one browser session
type Scraper struct {
	cfg  models.Config
	sess *session.Session
	nav  *navigator.Navigator
	now  func() time.Time
}

// Open launches a browser, logs in and returns a ready Scraper. The caller
// must Close it.
func Open(ctx context.Context, cfg models.Config, login LoginOptions) (*Scraper, error) {
	d, err := browser.New(ctx, cfg.Driver, browser.OptionsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	ls := auth.NewLoginService(login.Cookies, auth.OptionsFromConfig(cfg), login.Out)
	s := NewWithSession(session.New(d, ls), cfg)
	if err := s.Login(ctx, login); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// NewWithSession wraps an existing session
func NewWithSession(sess *session.Session, cfg models.Config) *Scraper {
	return &Scraper{
		cfg:  cfg,
		sess: sess,
		nav:  navigator.FromConfig(cfg),
		now:  time.Now,
	}
}

// Login authenticates the session. With ContinueOnFailure an AuthError is
// logged and the session stays anonymous.
func (s *Scraper) Login(ctx context.Context, login LoginOptions) error {
	creds := login.Credentials
	if creds == nil {
		creds = &s.cfg.Credentials
	}
	err := s.sess.Login(ctx, login.Mode, creds)
	if err == nil {
		return nil
	}
	var authErr *auth.AuthError
	if login.ContinueOnFailure && errors.As(err, &authErr) {
		logging.WithField("mode", login.Mode).Warnf("continuing without login: %v", err)
		return nil
	}
	return err
}

// Session exposes the underlying session
func (s *Scraper) Session() *session.Session {
	return s.sess
}

// Scrape loads url and extracts a record from it. Load failures are
// returned as *navigator.LoadError; missing fields are not errors.
func (s *Scraper) Scrape(ctx context.Context, url string) (models.ProfileRecord, error) {
	var html string
	err := s.sess.Do(ctx, func(ctx context.Context, d browser.Driver) error {
		if err := s.nav.Open(ctx, d, url); err != nil {
			return err
		}
		h, err := d.HTML(ctx)
		if err != nil {
			return &navigator.LoadError{URL: url, Reason: "read page", Err: err}
		}
		html = h
		return nil
	})
	if err != nil {
		return models.ProfileRecord{}, err
	}

	if s.cfg.SaveHTML {
		if err := s.saveHTML(url, html); err != nil {
			logging.WithField("url", url).Warnf("failed to save html: %v", err)
		}
	}

	return s.fromHTML(url, html)
}

func (s *Scraper) saveHTML(url, html string) error {
	dir := s.cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, OutputName(url, ".html")), []byte(html), 0644)
}

func (s *Scraper) fromHTML(url, html string) (models.ProfileRecord, error) {
	page, err := extractor.Parse(html)
	if err != nil {
		return models.ProfileRecord{}, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	fields := extractor.ExtractAll(page, logging.WithField("url", url))
	return record.Assemble(url, fields, s.now()), nil
}

// Close releases the browser. Safe to call more than once.
func (s *Scraper) Close() error {
	return s.sess.Close()
}

// ParseHTML builds a record from a saved page without a browser
func ParseHTML(url, html string) (models.ProfileRecord, error) {
	s := &Scraper{now: time.Now}
	return s.fromHTML(url, html)
}

// ParseHTMLFile is ParseHTML over a file on disk
func ParseHTMLFile(url, path string) (models.ProfileRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ProfileRecord{}, err
	}
	return ParseHTML(url, string(data))
}

// ScrapeProfile is the one-call entry point: open a browser, log in,
// scrape url and always release the browser.
func ScrapeProfile(ctx context.Context, url string, login LoginOptions, headless bool) (models.ProfileRecord, error) {
	cfg, err := config.Load("")
	if err != nil {
		return models.ProfileRecord{}, err
	}
	cfg.Headless = headless

	s, err := Open(ctx, cfg, login)
	if err != nil {
		return models.ProfileRecord{}, err
	}
	defer s.Close()

	return s.Scrape(ctx, url)
}
