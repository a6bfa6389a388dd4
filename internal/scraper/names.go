package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ProfileSlug returns the public identifier in a profile URL, e.g.
// "jane-doe" for https://www.linkedin.com/in/jane-doe/
func ProfileSlug(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "in" && i+1 < len(parts) {
			return unsafeName.ReplaceAllString(parts[i+1], "_")
		}
	}
	if n := len(parts); n > 0 && parts[n-1] != "" {
		return unsafeName.ReplaceAllString(parts[n-1], "_")
	}
	return ""
}

// OutputName builds a file name for url with the given extension
func OutputName(raw, ext string) string {
	slug := ProfileSlug(raw)
	if slug == "" {
		slug = "profile_" + uuid.NewString()[:8]
	}
	return slug + ext
}
