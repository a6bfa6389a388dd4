package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"linkedin-scraper/internal/browser"
	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/utils"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("credentials were rejected")
	ErrLoginTimeout       = errors.New("login did not complete in time")
	ErrProviderButton     = errors.New("sign in button not found")
	ErrLoginForm          = errors.New("login form not found")
	ErrUnknownMode        = errors.New("unknown login mode")
)

// AuthError reports a failed or blocked login
type AuthError struct {
	Mode   models.LoginMode
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("login (%s) failed: %s", e.Mode, e.Reason)
	}
	return fmt.Sprintf("login (%s) failed: %s: %v", e.Mode, e.Reason, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// CookieStore persists session cookies between runs
type CookieStore interface {
	LoadCookies() ([]models.Cookie, error)
	SaveCookies(cookies []models.Cookie) error
	ClearCookies() error
}

// Options tunes how long login steps may take
type Options struct {
	PageLoadTimeout    time.Duration
	ManualLoginTimeout time.Duration
	PollInterval       time.Duration
}

// OptionsFromConfig picks the login timings out of the app config
func OptionsFromConfig(cfg models.Config) Options {
	return Options{
		PageLoadTimeout:    cfg.PageLoadTimeout,
		ManualLoginTimeout: cfg.ManualLoginTimeout,
		PollInterval:       cfg.PollInterval,
	}
}

// LoginService signs a browser into LinkedIn
type LoginService struct {
	cookies CookieStore
	opts    Options
	out     io.Writer
}

// NewLoginService creates a new LoginService instance. cookies may be nil
// to disable session reuse; out receives the operator instructions.
func NewLoginService(cookies CookieStore, opts Options, out io.Writer) *LoginService {
	if out == nil {
		out = os.Stdout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	return &LoginService{cookies: cookies, opts: opts, out: out}
}

// Login authenticates d using mode. LoginNone does nothing.
func (ls *LoginService) Login(ctx context.Context, d browser.Driver, mode models.LoginMode, creds *models.Credentials) error {
	if mode == models.LoginNone || mode == "" {
		return nil
	}

	if ls.restoreSession(ctx, d) {
		fmt.Fprintln(ls.out, "✅ Reused saved session")
		return nil
	}

	var err error
	switch mode {
	case models.LoginManual:
		err = ls.loginManual(ctx, d)
	case models.LoginCredentials:
		err = ls.loginCredentials(ctx, d, creds)
	case models.LoginGoogle, models.LoginMicrosoft:
		err = ls.loginProvider(ctx, d, mode)
	default:
		return &AuthError{Mode: mode, Reason: "unsupported", Err: ErrUnknownMode}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(ls.out, "✅ Logged in")
	ls.saveSession(ctx, d)
	return nil
}

func (ls *LoginService) restoreSession(ctx context.Context, d browser.Driver) bool {
	if ls.cookies == nil {
		return false
	}
	saved, err := ls.cookies.LoadCookies()
	if err != nil {
		logging.Warnf("failed to load saved cookies: %v", err)
		return false
	}
	if len(saved) == 0 {
		return false
	}

	if err := d.SetCookies(ctx, saved); err != nil {
		logging.Warnf("failed to restore cookies: %v", err)
		return false
	}
	if err := d.Navigate(ctx, FeedURL); err != nil {
		logging.Warnf("failed to open feed with saved cookies: %v", err)
		return false
	}
	u, err := d.CurrentURL(ctx)
	if err == nil && IsLoggedInURL(u) {
		return true
	}

	logging.Info("saved session expired, clearing cookies")
	if err := ls.cookies.ClearCookies(); err != nil {
		logging.Warnf("failed to clear cookies: %v", err)
	}
	return false
}

func (ls *LoginService) saveSession(ctx context.Context, d browser.Driver) {
	if ls.cookies == nil {
		return
	}
	cookies, err := d.Cookies(ctx)
	if err != nil {
		logging.Warnf("failed to read session cookies: %v", err)
		return
	}
	if err := ls.cookies.SaveCookies(cookies); err != nil {
		logging.Warnf("failed to save session cookies: %v", err)
	}
}

// waitForLogin polls the current URL until it looks like a member page
func (ls *LoginService) waitForLogin(ctx context.Context, d browser.Driver, timeout time.Duration) error {
	return utils.PollUntil(ctx, ls.opts.PollInterval, timeout, func(ctx context.Context) (bool, error) {
		u, err := d.CurrentURL(ctx)
		if err != nil {
			return false, err
		}
		return IsLoggedInURL(u), nil
	})
}

func (ls *LoginService) waitForHuman(ctx context.Context, d browser.Driver, mode models.LoginMode) error {
	if err := ls.waitForLogin(ctx, d, ls.opts.ManualLoginTimeout); err != nil {
		if errors.Is(err, utils.ErrTimeout) {
			return &AuthError{Mode: mode, Reason: "waited " + utils.FormatDuration(ls.opts.ManualLoginTimeout), Err: ErrLoginTimeout}
		}
		return &AuthError{Mode: mode, Reason: "waiting for login", Err: err}
	}
	return nil
}

func (ls *LoginService) loginManual(ctx context.Context, d browser.Driver) error {
	if err := d.Navigate(ctx, LoginURL); err != nil {
		return &AuthError{Mode: models.LoginManual, Reason: "open login page", Err: err}
	}
	fmt.Fprintln(ls.out, "🔑 Complete the login in the browser window (any method: password, Google, Microsoft, Apple).")
	fmt.Fprintf(ls.out, "⏳ Waiting up to %s...\n", utils.FormatDuration(ls.opts.ManualLoginTimeout))
	return ls.waitForHuman(ctx, d, models.LoginManual)
}

func (ls *LoginService) loginProvider(ctx context.Context, d browser.Driver, mode models.LoginMode) error {
	if err := d.Navigate(ctx, LoginURL); err != nil {
		return &AuthError{Mode: mode, Reason: "open login page", Err: err}
	}

	selectors := providerSelectors[string(mode)]
	var clicked string
	err := utils.PollUntil(ctx, ls.opts.PollInterval, ls.opts.PageLoadTimeout, func(ctx context.Context) (bool, error) {
		sel, err := clickFirst(ctx, d, selectors)
		if err != nil {
			return false, nil
		}
		clicked = sel
		return true, nil
	})
	if err != nil {
		return &AuthError{Mode: mode, Reason: string(mode), Err: ErrProviderButton}
	}
	logging.WithField("selector", clicked).Debug("clicked provider button")

	fmt.Fprintf(ls.out, "🔑 Finish the %s sign in in the browser window.\n", mode)
	return ls.waitForHuman(ctx, d, mode)
}

type loginState int

const (
	statePending loginState = iota
	stateLoggedIn
	stateChallenge
	stateRejected
)

func (ls *LoginService) currentState(ctx context.Context, d browser.Driver) (loginState, error) {
	u, err := d.CurrentURL(ctx)
	if err != nil {
		return statePending, err
	}
	switch {
	case IsLoggedInURL(u):
		return stateLoggedIn, nil
	case IsChallengeURL(u):
		return stateChallenge, nil
	}
	if _, ok := browser.FirstExisting(ctx, d, loginErrorSelectors); ok {
		return stateRejected, nil
	}
	return statePending, nil
}

func (ls *LoginService) loginCredentials(ctx context.Context, d browser.Driver, creds *models.Credentials) error {
	mode := models.LoginCredentials
	if creds.Empty() {
		return &AuthError{Mode: mode, Reason: "set LINKEDIN_EMAIL and LINKEDIN_PASSWORD", Err: ErrMissingCredentials}
	}

	fmt.Fprintf(ls.out, "🔑 Signing in as %s\n", creds.Email)
	if err := d.Navigate(ctx, LoginURL); err != nil {
		return &AuthError{Mode: mode, Reason: "open login page", Err: err}
	}

	err := utils.PollUntil(ctx, ls.opts.PollInterval, ls.opts.PageLoadTimeout, func(ctx context.Context) (bool, error) {
		return d.Exists(ctx, usernameSelector)
	})
	if err != nil {
		return &AuthError{Mode: mode, Reason: "waiting for form", Err: ErrLoginForm}
	}

	if err := d.SendKeys(ctx, usernameSelector, creds.Email); err != nil {
		return &AuthError{Mode: mode, Reason: "type email", Err: err}
	}
	if err := d.SendKeys(ctx, passwordSelector, creds.Password); err != nil {
		return &AuthError{Mode: mode, Reason: "type password", Err: err}
	}
	if err := d.Click(ctx, submitSelector); err != nil {
		return &AuthError{Mode: mode, Reason: "submit form", Err: err}
	}

	state := statePending
	err = utils.PollUntil(ctx, ls.opts.PollInterval, ls.opts.PageLoadTimeout, func(ctx context.Context) (bool, error) {
		s, err := ls.currentState(ctx, d)
		state = s
		return s != statePending, err
	})
	if err != nil && !errors.Is(err, utils.ErrTimeout) {
		return &AuthError{Mode: mode, Reason: "waiting after submit", Err: err}
	}

	switch state {
	case stateLoggedIn:
		return nil
	case stateRejected:
		return &AuthError{Mode: mode, Reason: "login page reported an error", Err: ErrInvalidCredentials}
	case stateChallenge:
		if dismissInterstitial(ctx, d) {
			if s, _ := ls.currentState(ctx, d); s == stateLoggedIn {
				return nil
			}
		}
		fmt.Fprintln(ls.out, "⚠️ Security check detected, complete it in the browser window.")
		return ls.waitForHuman(ctx, d, mode)
	default:
		return &AuthError{Mode: mode, Reason: "no response after submit", Err: ErrLoginTimeout}
	}
}
