package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"linkedin-scraper/internal/models"
)

// ChromedpDriver drives Chrome through chromedp
type ChromedpDriver struct {
	ctx         context.Context
	cancelAlloc context.CancelFunc
	cancelTab   context.CancelFunc
	closeOnce   sync.Once
	closeErr    error
}

// NewChromedp launches Chrome and opens one tab
func NewChromedp(ctx context.Context, opts Options) (*ChromedpDriver, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-sandbox", opts.NoSandbox),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1366, 900),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// The first Run starts the browser process and binds it to tabCtx, so it
	// must not run on a context that can be cancelled early.
	if err := ctx.Err(); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, err
	}
	if err := chromedp.Run(tabCtx, network.Enable()); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	return &ChromedpDriver{
		ctx:         tabCtx,
		cancelAlloc: cancelAlloc,
		cancelTab:   cancelTab,
	}, nil
}

// withCaller derives a context from the tab context that also ends when the
// caller's context does. Cancelling it does not close the tab.
func withCaller(tab, caller context.Context) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if deadline, ok := caller.Deadline(); ok {
		ctx, cancel = context.WithDeadline(tab, deadline)
	} else {
		ctx, cancel = context.WithCancel(tab)
	}
	stop := context.AfterFunc(caller, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (d *ChromedpDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, stop := withCaller(d.ctx, ctx)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func queryOption(selector string) chromedp.QueryOption {
	if IsXPath(selector) {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

func (d *ChromedpDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url))
}

func (d *ChromedpDriver) CurrentURL(ctx context.Context) (string, error) {
	var url string
	err := d.run(ctx, chromedp.Location(&url))
	return url, err
}

func (d *ChromedpDriver) HTML(ctx context.Context) (string, error) {
	var html string
	err := d.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (d *ChromedpDriver) Exists(ctx context.Context, selector string) (bool, error) {
	var exists bool
	err := d.run(ctx, chromedp.Evaluate(ExistsScript(selector), &exists))
	return exists, err
}

func (d *ChromedpDriver) SendKeys(ctx context.Context, selector, text string) error {
	by := queryOption(selector)
	return d.run(ctx,
		chromedp.WaitVisible(selector, by),
		chromedp.Clear(selector, by),
		chromedp.SendKeys(selector, text, by),
	)
}

func (d *ChromedpDriver) Click(ctx context.Context, selector string) error {
	by := queryOption(selector)
	return d.run(ctx,
		chromedp.WaitVisible(selector, by),
		chromedp.Click(selector, by),
	)
}

func (d *ChromedpDriver) Evaluate(ctx context.Context, script string, out interface{}) error {
	return d.run(ctx, chromedp.Evaluate(script, out))
}

func (d *ChromedpDriver) Cookies(ctx context.Context) ([]models.Cookie, error) {
	var cookies []*network.Cookie
	err := d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = network.GetCookies().Do(ctx)
		return err
	}))
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
			Expires:  c.Expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}
	return out, nil
}

func (d *ChromedpDriver) SetCookies(ctx context.Context, cookies []models.Cookie) error {
	return d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range cookies {
			params := network.SetCookie(c.Name, c.Value).
				WithDomain(c.Domain).
				WithPath(c.Path).
				WithHTTPOnly(c.HTTPOnly).
				WithSecure(c.Secure)
			if c.Expires > 0 {
				expires := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
				params = params.WithExpires(&expires)
			}
			if c.SameSite != "" {
				params = params.WithSameSite(network.CookieSameSite(c.SameSite))
			}
			if err := params.Do(ctx); err != nil {
				return fmt.Errorf("failed to set cookie %s: %w", c.Name, err)
			}
		}
		return nil
	}))
}

// Close shuts the browser down and kills the process if it lingers
func (d *ChromedpDriver) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = chromedp.Cancel(d.ctx)
		d.cancelTab()
		d.cancelAlloc()
	})
	return d.closeErr
}
