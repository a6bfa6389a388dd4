package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"linkedin-scraper/internal/models"
)

// RodDriver drives Chrome through go-rod with the stealth page patches
type RodDriver struct {
	launcher  *launcher.Launcher
	browser   *rod.Browser
	page      *rod.Page
	closeOnce sync.Once
	closeErr  error
}

// NewRod launches Chrome and opens one stealth page
func NewRod(ctx context.Context, opts Options) (*RodDriver, error) {
	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(opts.NoSandbox).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("window-size", "1366,900")
	if opts.ChromePath != "" {
		l = l.Bin(opts.ChromePath)
	}
	if opts.UserDataDir != "" {
		l = l.UserDataDir(opts.UserDataDir)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	if opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent}); err != nil {
			browser.Close()
			l.Kill()
			return nil, fmt.Errorf("failed to set user agent: %w", err)
		}
	}

	return &RodDriver{launcher: l, browser: browser, page: page}, nil
}

func (d *RodDriver) Navigate(ctx context.Context, url string) error {
	return d.page.Context(ctx).Navigate(url)
}

func (d *RodDriver) CurrentURL(ctx context.Context) (string, error) {
	info, err := d.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (d *RodDriver) HTML(ctx context.Context) (string, error) {
	return d.page.Context(ctx).HTML()
}

func (d *RodDriver) Exists(ctx context.Context, selector string) (bool, error) {
	p := d.page.Context(ctx)
	var has bool
	var err error
	if IsXPath(selector) {
		has, _, err = p.HasX(selector)
	} else {
		has, _, err = p.Has(selector)
	}
	return has, err
}

func (d *RodDriver) element(ctx context.Context, selector string) (*rod.Element, error) {
	p := d.page.Context(ctx)
	if IsXPath(selector) {
		return p.ElementX(selector)
	}
	return p.Element(selector)
}

func (d *RodDriver) SendKeys(ctx context.Context, selector, text string) error {
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(text)
}

func (d *RodDriver) Click(ctx context.Context, selector string) error {
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// Evaluate runs a JavaScript expression and decodes its value into out
func (d *RodDriver) Evaluate(ctx context.Context, script string, out interface{}) error {
	res, err := d.page.Context(ctx).Eval(fmt.Sprintf("() => (%s)", script))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return res.Value.Unmarshal(out)
}

func (d *RodDriver) Cookies(ctx context.Context) ([]models.Cookie, error) {
	cookies, err := d.page.Context(ctx).Cookies(nil)
	if err != nil {
		return nil, err
	}

	out := make([]models.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, models.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  float64(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}
	return out, nil
}

func (d *RodDriver) SetCookies(ctx context.Context, cookies []models.Cookie) error {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		params = append(params, &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  proto.TimeSinceEpoch(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: proto.NetworkCookieSameSite(c.SameSite),
		})
	}
	return d.page.Context(ctx).SetCookies(params)
}

// Close closes the browser and kills the launched process
func (d *RodDriver) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = d.browser.Close()
		d.launcher.Kill()
	})
	return d.closeErr
}
