package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Name returns the profile owner's display name
func (p *Page) Name() (string, bool) {
	return p.firstText(nameSelectors, 2, 100, nil)
}

// Headline returns the one-line tagline under the name
func (p *Page) Headline() (string, bool) {
	name, _ := p.Name()
	notName := func(s string) bool { return s != name }
	if h, ok := p.firstText(headlineSelectors, 2, 300, notName); ok {
		return h, true
	}

	// Fall back to the first sentence-sized line in the top card.
	for _, text := range p.topCardTexts() {
		n := textLen(text)
		if n < 10 || n > 200 || text == name || looksLikeLocation(text) || isCountLine(text) {
			continue
		}
		return text, true
	}
	return "", false
}

// Location returns the "City, Region, Country" line of the top card
func (p *Page) Location() (string, bool) {
	if loc, ok := p.firstText(locationSelectors, 2, 100, looksLikeLocation); ok {
		return loc, true
	}
	for _, text := range p.topCardTexts() {
		if looksLikeLocation(text) && !isCountLine(text) {
			return text, true
		}
	}
	return "", false
}

// topCard is the block holding the name heading
func (p *Page) topCard() *goquery.Selection {
	h1 := p.doc.Find("h1").First()
	if h1.Length() == 0 {
		return nil
	}
	if sec := h1.Closest("section"); sec.Length() > 0 {
		return sec
	}
	return h1.Parent().Parent()
}

func (p *Page) topCardTexts() []string {
	card := p.topCard()
	if card == nil {
		return nil
	}
	return leafTexts(card)
}

var (
	connectionsPattern = regexp.MustCompile(`(?i)^([\d,.]+[km]?\+?)\s+connections?$`)
	followersPattern   = regexp.MustCompile(`(?i)^([\d,.]+[km]?\+?)\s+followers?$`)
)

func isCountLine(s string) bool {
	return connectionsPattern.MatchString(s) || followersPattern.MatchString(s)
}

func (p *Page) count(pattern *regexp.Regexp) (string, bool) {
	var found string
	p.doc.Find("li, span, a, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := normalize(s.Text())
		if textLen(text) > 40 {
			return true
		}
		if m := pattern.FindStringSubmatch(text); m != nil {
			found = m[1]
			return false
		}
		return true
	})
	return found, found != ""
}

// Connections returns the connection count as displayed, e.g. "500+"
func (p *Page) Connections() (string, bool) {
	return p.count(connectionsPattern)
}

// Followers returns the follower count as displayed, e.g. "1,234"
func (p *Page) Followers() (string, bool) {
	return p.count(followersPattern)
}

// ProfileImageURL returns the avatar source
func (p *Page) ProfileImageURL() (string, bool) {
	for _, sel := range imageSelectors {
		var src string
		p.doc.Find(sel).EachWithBreak(func(_ int, img *goquery.Selection) bool {
			for _, attr := range []string{"src", "data-delayed-url", "data-ghost-url"} {
				v := strings.TrimSpace(img.AttrOr(attr, ""))
				if v != "" && !strings.HasPrefix(v, "data:") {
					src = v
					return false
				}
			}
			return true
		})
		if src != "" {
			return src, true
		}
	}
	return "", false
}
