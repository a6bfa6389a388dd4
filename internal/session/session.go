// Package session owns the browser handle shared by every scrape.
package session

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"linkedin-scraper/internal/browser"
	"linkedin-scraper/internal/models"
)

// Authenticator signs a driver in
type Authenticator interface {
	Login(ctx context.Context, d browser.Driver, mode models.LoginMode, creds *models.Credentials) error
}

// Session is one browser plus its login state. Only one operation may
// use the browser at a time.
type Session struct {
	driver browser.Driver
	auth   Authenticator
	sem    *semaphore.Weighted

	mu            sync.Mutex
	mode          models.LoginMode
	authenticated bool

	closeOnce sync.Once
	closeErr  error
	closed    chan struct{}
}

// New wraps an already launched driver. auth may be nil when only
// anonymous scraping is needed.
func New(driver browser.Driver, auth Authenticator) *Session {
	return &Session{
		driver: driver,
		auth:   auth,
		sem:    semaphore.NewWeighted(1),
		mode:   models.LoginNone,
		closed: make(chan struct{}),
	}
}

// Login authenticates the session. On failure the session stays usable
// anonymously and the AuthError is returned.
func (s *Session) Login(ctx context.Context, mode models.LoginMode, creds *models.Credentials) error {
	if mode == models.LoginNone || mode == "" {
		return nil
	}
	if s.auth == nil {
		return fmt.Errorf("session has no authenticator for %s login", mode)
	}
	return s.Do(ctx, func(ctx context.Context, d browser.Driver) error {
		if err := s.auth.Login(ctx, d, mode, creds); err != nil {
			return err
		}
		s.mu.Lock()
		s.mode = mode
		s.authenticated = true
		s.mu.Unlock()
		return nil
	})
}

// Do runs fn with exclusive use of the browser
func (s *Session) Do(ctx context.Context, fn func(ctx context.Context, d browser.Driver) error) error {
	select {
	case <-s.closed:
		return ErrClosed
	default:
	}
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	select {
	case <-s.closed:
		return ErrClosed
	default:
	}
	return fn(ctx, s.driver)
}

// Authenticated reports whether a login succeeded
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Mode returns the login mode that succeeded, or LoginNone
func (s *Session) Mode() models.LoginMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Close releases the browser process. It is safe to call more than once
// and does not wait for an in-flight operation.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.closeErr = s.driver.Close()
	})
	return s.closeErr
}
