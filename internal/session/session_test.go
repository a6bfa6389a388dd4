package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"linkedin-scraper/internal/browser"
	"linkedin-scraper/internal/browser/browsertest"
	"linkedin-scraper/internal/models"
)

type stubAuth struct {
	err   error
	calls int
}

func (a *stubAuth) Login(ctx context.Context, d browser.Driver, mode models.LoginMode, creds *models.Credentials) error {
	a.calls++
	return a.err
}

func TestLoginNoneSkipsAuthenticator(t *testing.T) {
	auth := &stubAuth{}
	s := New(browsertest.New(), auth)

	require.NoError(t, s.Login(context.Background(), models.LoginNone, nil))
	require.Zero(t, auth.calls)
	require.False(t, s.Authenticated())
}

func TestLoginSuccessMarksAuthenticated(t *testing.T) {
	s := New(browsertest.New(), &stubAuth{})

	require.NoError(t, s.Login(context.Background(), models.LoginManual, nil))
	require.True(t, s.Authenticated())
	require.Equal(t, models.LoginManual, s.Mode())
}

func TestLoginFailureLeavesSessionAnonymous(t *testing.T) {
	failure := errors.New("blocked")
	s := New(browsertest.New(), &stubAuth{err: failure})

	err := s.Login(context.Background(), models.LoginCredentials, &models.Credentials{})
	require.ErrorIs(t, err, failure)
	require.False(t, s.Authenticated())

	require.NoError(t, s.Do(context.Background(), func(ctx context.Context, d browser.Driver) error {
		return d.Navigate(ctx, "https://www.linkedin.com/in/x")
	}))
}

func TestCloseAlwaysReleasesBrowser(t *testing.T) {
	d := browsertest.New()
	s := New(d, nil)

	extractErr := errors.New("extraction blew up")
	err := s.Do(context.Background(), func(ctx context.Context, d browser.Driver) error {
		return extractErr
	})
	require.ErrorIs(t, err, extractErr)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.Equal(t, 1, d.Closes())

	err = s.Do(context.Background(), func(ctx context.Context, d browser.Driver) error { return nil })
	require.ErrorIs(t, err, ErrClosed)
}

func TestDoSerializesAccess(t *testing.T) {
	s := New(browsertest.New(), nil)
	defer s.Close()

	var active, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(context.Background(), func(ctx context.Context, d browser.Driver) error {
				n := atomic.AddInt32(&active, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestDoHonoursContextWhileWaiting(t *testing.T) {
	s := New(browsertest.New(), nil)
	defer s.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.Do(context.Background(), func(ctx context.Context, d browser.Driver) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.Do(ctx, func(ctx context.Context, d browser.Driver) error { return nil })
	require.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}
