package browser

import (
	"context"
	"fmt"
	"strings"

	"linkedin-scraper/internal/models"
)

// Driver is the subset of browser automation the scraper needs.
// Selectors starting with "//" are XPath, everything else is CSS.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
	Exists(ctx context.Context, selector string) (bool, error)
	SendKeys(ctx context.Context, selector, text string) error
	Click(ctx context.Context, selector string) error
	Evaluate(ctx context.Context, script string, out interface{}) error
	Cookies(ctx context.Context) ([]models.Cookie, error)
	SetCookies(ctx context.Context, cookies []models.Cookie) error
	// Close releases the browser process. Safe to call more than once.
	Close() error
}

// Options configures a browser launch
type Options struct {
	Headless    bool
	NoSandbox   bool
	UserAgent   string
	ChromePath  string
	UserDataDir string
}

// OptionsFromConfig picks the browser settings out of the app config
func OptionsFromConfig(cfg models.Config) Options {
	return Options{
		Headless:    cfg.Headless,
		NoSandbox:   cfg.NoSandbox,
		UserAgent:   cfg.UserAgent,
		ChromePath:  cfg.ChromePath,
		UserDataDir: cfg.UserDataDir,
	}
}

// New launches a browser with the named backend ("chromedp" or "rod")
func New(ctx context.Context, kind string, opts Options) (Driver, error) {
	switch kind {
	case "", "chromedp":
		return NewChromedp(ctx, opts)
	case "rod":
		return NewRod(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown browser driver %q", kind)
	}
}

// IsXPath reports whether selector is an XPath expression
func IsXPath(selector string) bool {
	return strings.HasPrefix(selector, "//") || strings.HasPrefix(selector, "(//")
}

// FirstExisting returns the first selector present on the page
func FirstExisting(ctx context.Context, d Driver, selectors []string) (string, bool) {
	for _, sel := range selectors {
		ok, err := d.Exists(ctx, sel)
		if err == nil && ok {
			return sel, true
		}
	}
	return "", false
}
