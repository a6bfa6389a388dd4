package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"linkedin-scraper/internal/browser"
)

const (
	LoginURL = "https://www.linkedin.com/login"
	FeedURL  = "https://www.linkedin.com/feed/"
)

var (
	// path prefixes seen only once a member is signed in
	loggedInPrefixes  = []string{"/feed", "/mynetwork", "/in", "/messaging", "/jobs", "/notifications"}
	loginPrefixes     = []string{"/login", "/authwall", "/checkpoint", "/uas", "/signup"}
	challengePrefixes = []string{"/checkpoint", "/challenge"}

	usernameSelector = "#username"
	passwordSelector = "#password"
	submitSelector   = "button[type='submit']"

	loginErrorSelectors = []string{
		"#error-for-password",
		"#error-for-username",
		".form__label--error",
		"div[role='alert']",
	}

	providerSelectors = map[string][]string{
		"google": {
			"button[data-provider='google']",
			"button[aria-label*='Google']",
			"a[href*='accounts.google.com']",
			"//button[contains(., 'Google')]",
		},
		"microsoft": {
			"button[data-provider='microsoft']",
			"button[aria-label*='Microsoft']",
			"a[href*='login.microsoftonline.com']",
			"//button[contains(., 'Microsoft')]",
		},
	}

	// "Add a phone number", "Remember me" and similar prompts
	interstitialSelectors = []string{
		"button[data-test-id='skip-button']",
		"button.secondary-action",
		"//button[contains(., 'Skip')]",
		"//button[contains(., 'Not now')]",
	}
)

// hasAnyPrefix matches whole path segments, so /in/loginov is not /login
func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// urlPath returns the lower cased path of raw, empty when raw does not parse
func urlPath(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Path)
}

// IsLoginURL reports whether u is a sign in, signup or authwall page
func IsLoginURL(u string) bool {
	return hasAnyPrefix(urlPath(u), loginPrefixes)
}

// IsLoggedInURL reports whether u is a page only members can reach
func IsLoggedInURL(u string) bool {
	p := urlPath(u)
	return !hasAnyPrefix(p, loginPrefixes) && hasAnyPrefix(p, loggedInPrefixes)
}

// IsChallengeURL reports whether u is a security checkpoint
func IsChallengeURL(u string) bool {
	return hasAnyPrefix(urlPath(u), challengePrefixes)
}

// clickFirst clicks the first selector present on the page
func clickFirst(ctx context.Context, d browser.Driver, selectors []string) (string, error) {
	sel, ok := browser.FirstExisting(ctx, d, selectors)
	if !ok {
		return "", fmt.Errorf("none of %d selectors matched", len(selectors))
	}
	if err := d.Click(ctx, sel); err != nil {
		return sel, fmt.Errorf("click %s: %w", sel, err)
	}
	return sel, nil
}

// dismissInterstitial skips an optional post-login prompt if one is showing
func dismissInterstitial(ctx context.Context, d browser.Driver) bool {
	sel, err := clickFirst(ctx, d, interstitialSelectors)
	if err != nil {
		return false
	}
	fmt.Printf("✅ Dismissed prompt (%s)\n", sel)
	return true
}
