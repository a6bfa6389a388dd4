// Package navigator loads a profile page and waits until it can be scraped.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"linkedin-scraper/internal/auth"
	"linkedin-scraper/internal/browser"
	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/utils"
)

var (
	readySelectors    = []string{"main", "h1", "section"}
	authwallSelectors = []string{"#authwall", ".authwall-join-form"}
	expandLabels      = []string{"show more", "see more", "show all", "…see more", "...see more"}
)

// Options controls page readiness and lazy loading
type Options struct {
	PageLoadTimeout time.Duration
	PollInterval    time.Duration
	ScrollPause     time.Duration
	MaxScrolls      int
	ExpandSections  bool
}

// Navigator opens profile pages
type Navigator struct {
	opts Options
}

// New creates a Navigator
func New(opts Options) *Navigator {
	if opts.PageLoadTimeout <= 0 {
		opts.PageLoadTimeout = 30 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	if opts.ScrollPause <= 0 {
		opts.ScrollPause = 2 * time.Second
	}
	return &Navigator{opts: opts}
}

// FromConfig builds a Navigator from the app config
func FromConfig(cfg models.Config) *Navigator {
	return New(Options{
		PageLoadTimeout: cfg.PageLoadTimeout,
		PollInterval:    cfg.PollInterval,
		ScrollPause:     cfg.ScrollPause,
		MaxScrolls:      cfg.MaxScrolls,
		ExpandSections:  cfg.ExpandSections,
	})
}

// ValidateURL checks that raw is an absolute http(s) URL
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}

// Open navigates d to target and waits for a rendered, fully scrolled
// profile. Any failure is a *LoadError.
func (n *Navigator) Open(ctx context.Context, d browser.Driver, target string) error {
	if err := ValidateURL(target); err != nil {
		return &LoadError{URL: target, Reason: "validate", Err: err}
	}

	log := logging.WithField("url", target)
	navCtx, cancel := context.WithTimeout(ctx, n.opts.PageLoadTimeout)
	err := d.Navigate(navCtx, strings.TrimSpace(target))
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %w", ErrNotReady, err)
		}
		return &LoadError{URL: target, Reason: "navigate", Err: err}
	}

	err = utils.PollUntil(ctx, n.opts.PollInterval, n.opts.PageLoadTimeout, func(ctx context.Context) (bool, error) {
		_, ok := browser.FirstExisting(ctx, d, readySelectors)
		return ok, nil
	})
	if err != nil {
		if errors.Is(err, utils.ErrTimeout) {
			err = fmt.Errorf("%w: %w", ErrNotReady, err)
		}
		return &LoadError{URL: target, Reason: "wait for content", Err: err}
	}

	if err := n.checkLanding(ctx, d); err != nil {
		return &LoadError{URL: target, Reason: "landing page", Err: err}
	}

	if err := n.scroll(ctx, d); err != nil {
		if ctx.Err() != nil {
			return &LoadError{URL: target, Reason: "scroll", Err: ctx.Err()}
		}
		log.Warnf("lazy loading incomplete: %v", err)
	}
	log.Debug("page ready")
	return nil
}

func (n *Navigator) checkLanding(ctx context.Context, d browser.Driver) error {
	current, err := d.CurrentURL(ctx)
	if err != nil {
		return err
	}
	if auth.IsLoginURL(current) {
		return fmt.Errorf("%w (%s)", ErrAuthwall, current)
	}
	if isNotFoundURL(current) {
		return fmt.Errorf("%w (%s)", ErrNotFound, current)
	}
	if sel, ok := browser.FirstExisting(ctx, d, authwallSelectors); ok {
		return fmt.Errorf("%w (%s)", ErrAuthwall, sel)
	}
	return nil
}

func isNotFoundURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	p := strings.TrimSuffix(strings.ToLower(u.Path), "/")
	return p == "/404" || p == "/in/unavailable"
}

// scroll keeps scrolling to the bottom until the height stops growing,
// expanding collapsed sections whenever it settles.
func (n *Navigator) scroll(ctx context.Context, d browser.Driver) error {
	var height float64
	if err := d.Evaluate(ctx, browser.ScrollHeightScript, &height); err != nil {
		return err
	}

	for i := 0; i < n.opts.MaxScrolls; i++ {
		var h float64
		if err := d.Evaluate(ctx, browser.ScrollToBottomScript, &h); err != nil {
			return err
		}

		err := utils.PollUntil(ctx, n.opts.PollInterval, n.opts.ScrollPause, func(ctx context.Context) (bool, error) {
			var cur float64
			if err := d.Evaluate(ctx, browser.ScrollHeightScript, &cur); err != nil {
				return false, err
			}
			if cur > height {
				height = cur
				return true, nil
			}
			return false, nil
		})
		if err == nil {
			continue
		}
		if !errors.Is(err, utils.ErrTimeout) {
			return err
		}

		if !n.opts.ExpandSections {
			break
		}
		var clicked int
		if err := d.Evaluate(ctx, browser.ExpandScript(expandLabels), &clicked); err != nil {
			return err
		}
		if clicked == 0 {
			break
		}
		logging.Debugf("expanded %d sections", clicked)
	}

	var top int
	return d.Evaluate(ctx, browser.ScrollToTopScript, &top)
}
