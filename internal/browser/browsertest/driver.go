// Package browsertest provides an in-memory browser.Driver for tests.
package browsertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"linkedin-scraper/internal/browser"
	"linkedin-scraper/internal/models"
)

const blankPage = "<html><head></head><body></body></html>"

// Page is one canned document served by the fake driver
type Page struct {
	HTML string
	// ReadyAfter is how many Exists calls fail before the page counts as rendered
	ReadyAfter int
	// RedirectTo sends navigation on to another URL
	RedirectTo string
}

// Driver serves canned pages and records what the caller did
type Driver struct {
	mu sync.Mutex

	Pages        map[string]*Page
	NavigateErrs map[string]error
	HTMLErr      error
	OnClick      func(d *Driver, selector string) error
	EvalFunc     func(script string, out interface{}) error
	Jar          []models.Cookie

	// StallLoads makes Navigate block until its context ends
	StallLoads bool

	url         string
	polls       int
	navigations []string
	typed       map[string]string
	clicks      []string
	closes      int
}

var _ browser.Driver = (*Driver)(nil)

// New returns an empty fake driver
func New() *Driver {
	return &Driver{
		Pages:        map[string]*Page{},
		NavigateErrs: map[string]error{},
		typed:        map[string]string{},
	}
}

// AddPage registers html under url
func (d *Driver) AddPage(url, html string) *Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := &Page{HTML: html}
	d.Pages[url] = p
	return p
}

// SetURL moves the fake to url without recording a navigation
func (d *Driver) SetURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
	d.polls = 0
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.navigations = append(d.navigations, url)
	if d.StallLoads {
		d.mu.Unlock()
		<-ctx.Done()
		d.mu.Lock()
		return ctx.Err()
	}
	if err, ok := d.NavigateErrs[url]; ok {
		return err
	}
	for hops := 0; hops < 5; hops++ {
		p, ok := d.Pages[url]
		if !ok || p.RedirectTo == "" {
			break
		}
		url = p.RedirectTo
	}
	d.url = url
	d.polls = 0
	return nil
}

func (d *Driver) CurrentURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url, nil
}

func (d *Driver) html() string {
	if p, ok := d.Pages[d.url]; ok {
		return p.HTML
	}
	return blankPage
}

func (d *Driver) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.HTMLErr != nil {
		return "", d.HTMLErr
	}
	return d.html(), nil
}

func (d *Driver) matches(selector string) bool {
	if browser.IsXPath(selector) {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(d.html()))
	if err != nil {
		return false
	}
	return doc.Find(selector).Length() > 0
}

func (d *Driver) Exists(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.Pages[d.url]; ok && d.polls < p.ReadyAfter {
		d.polls++
		return false, nil
	}
	return d.matches(selector), nil
}

func (d *Driver) SendKeys(ctx context.Context, selector, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.matches(selector) {
		return fmt.Errorf("no element matches %s", selector)
	}
	d.typed[selector] = text
	return nil
}

func (d *Driver) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	if !d.matches(selector) {
		d.mu.Unlock()
		return fmt.Errorf("no element matches %s", selector)
	}
	d.clicks = append(d.clicks, selector)
	onClick := d.OnClick
	d.mu.Unlock()

	if onClick != nil {
		return onClick(d, selector)
	}
	return nil
}

func (d *Driver) Evaluate(ctx context.Context, script string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.EvalFunc != nil {
		return d.EvalFunc(script, out)
	}
	switch v := out.(type) {
	case *int:
		*v = 0
	case *float64:
		*v = 0
	case *bool:
		*v = false
	case *string:
		*v = ""
	}
	return nil
}

func (d *Driver) Cookies(ctx context.Context) ([]models.Cookie, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Cookie(nil), d.Jar...), nil
}

func (d *Driver) SetCookies(ctx context.Context, cookies []models.Cookie) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Jar = append(d.Jar, cookies...)
	return nil
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

// Navigations lists every URL passed to Navigate
func (d *Driver) Navigations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.navigations...)
}

// Typed returns the text sent to selector
func (d *Driver) Typed(selector string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.typed[selector]
}

// Clicks lists clicked selectors in order
func (d *Driver) Clicks() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.clicks...)
}

// Closes counts Close calls
func (d *Driver) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}
