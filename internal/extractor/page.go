// Package extractor pulls profile fields out of a rendered HTML snapshot.
//
// Every extractor is a pure function of the snapshot: it returns the value
// and whether it was found, and never fails because an element is missing.
package extractor

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a parsed profile snapshot
type Page struct {
	doc *goquery.Document
}

// Parse builds a Page from rendered HTML
func Parse(html string) (*Page, error) {
	return ParseReader(strings.NewReader(html))
}

// ParseReader builds a Page from a reader
func ParseReader(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return &Page{doc: doc}, nil
}

// ParseFile builds a Page from a saved snapshot
func ParseFile(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseReader(f)
}

// Document exposes the parsed tree for diagnostics
func (p *Page) Document() *goquery.Document {
	return p.doc
}

// Title returns the <title> text
func (p *Page) Title() string {
	return normalize(p.doc.Find("title").First().Text())
}

// Normalize collapses runs of whitespace and trims the ends
func Normalize(s string) string {
	return normalize(s)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func textLen(s string) int {
	return len([]rune(s))
}

// firstText returns the first selector match whose text length is in [min, max]
func (p *Page) firstText(selectors []string, min, max int, accept func(string) bool) (string, bool) {
	for _, sel := range selectors {
		var found string
		p.doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := visibleText(s)
			if n := textLen(text); n < min || n > max {
				return true
			}
			if accept != nil && !accept(text) {
				return true
			}
			found = text
			return false
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

// visibleText prefers the aria-hidden copy the site renders for sighted users,
// which avoids doubled text from the screen reader copy.
func visibleText(s *goquery.Selection) string {
	if hidden := s.Find(`span[aria-hidden="true"]`); hidden.Length() > 0 {
		return normalize(hidden.First().Text())
	}
	clone := s.Clone()
	clone.Find(".visually-hidden, script, style").Remove()
	return normalize(clone.Text())
}

// headerText is the visible label of a section heading
func headerText(h *goquery.Selection) string {
	return strings.ToLower(visibleText(h))
}

// section finds a profile section by anchor id, then by heading label
func (p *Page) section(spec sectionSpec) *goquery.Selection {
	for _, id := range spec.ids {
		anchor := p.doc.Find("#" + id).First()
		if anchor.Length() == 0 {
			continue
		}
		if sec := anchor.Closest("section"); sec.Length() > 0 {
			return sec
		}
	}

	var found *goquery.Selection
	p.doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		label := headerText(h)
		for _, want := range spec.headers {
			if label != want {
				continue
			}
			if sec := h.Closest("section"); sec.Length() > 0 {
				found = sec
			} else {
				found = h.Parent()
			}
			return false
		}
		return true
	})
	return found
}

// sectionItems returns the top-level entries of a section: its outermost
// li elements, or failing that the div children of the first container
// holding at least two of them.
func sectionItems(sec *goquery.Selection) []*goquery.Selection {
	var items []*goquery.Selection
	sec.Find("li").Each(func(_ int, li *goquery.Selection) {
		if li.ParentsUntilSelection(sec).Filter("li").Length() == 0 {
			items = append(items, li)
		}
	})
	if len(items) > 0 {
		return items
	}

	sec.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		kids := div.ChildrenFiltered("div")
		if kids.Length() < 2 {
			return true
		}
		kids.Each(func(_ int, k *goquery.Selection) {
			items = append(items, k)
		})
		return false
	})
	return items
}

// itemTexts flattens an element into its distinct visible text lines
func itemTexts(item *goquery.Selection) []string {
	var out []string
	add := func(s string) {
		s = normalize(s)
		if s == "" || (len(out) > 0 && out[len(out)-1] == s) {
			return
		}
		out = append(out, s)
	}

	spans := item.Find(`span[aria-hidden="true"]`)
	if spans.Length() > 0 {
		spans.Each(func(_ int, s *goquery.Selection) {
			if s.ParentsFiltered(`span[aria-hidden="true"]`).Length() > 0 {
				return
			}
			add(s.Text())
		})
		return out
	}

	out = leafTexts(item)
	if len(out) == 0 {
		add(item.Text())
	}
	return out
}

// leafTexts collects the text of elements without element children. An
// element whose whole text is a date range is taken as one line, since
// layouts split ranges across <time> and <span> children.
func leafTexts(sel *goquery.Selection) []string {
	var out []string
	var ranges []*goquery.Selection
	sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		if s.Is("script, style, button, .visually-hidden") {
			return
		}
		for _, r := range ranges {
			if r.Contains(s.Get(0)) {
				return
			}
		}
		text := normalize(s.Text())
		if s.Children().Length() > 0 {
			if _, ok := SplitDuration(text); !ok {
				return
			}
			ranges = append(ranges, s)
		}
		if text == "" || (len(out) > 0 && out[len(out)-1] == text) {
			return
		}
		out = append(out, text)
	})
	return out
}

var noisePrefixes = []string{"show all", "see all", "show more", "see more", "…see more", "...see more", "see less", "show less"}

func isNoise(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range noisePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return lower == "--" || lower == "·"
}

var locationPattern = regexp.MustCompile(`^[\p{L}\s.'-]+(,\s*[\p{L}\s.'-]+)+$`)

var locationWords = []string{"area", "region", "country", "metropolitan", "greater"}

func looksLikeLocation(s string) bool {
	if textLen(s) > 100 {
		return false
	}
	lower := strings.ToLower(s)
	for _, w := range locationWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return locationPattern.MatchString(s)
}

func isWorkplace(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "remote") || strings.Contains(lower, "hybrid") || strings.Contains(lower, "on-site")
}

func isEmploymentType(s string) bool {
	for _, t := range employmentTypes {
		if strings.EqualFold(s, t) {
			return true
		}
	}
	return false
}

func hasDegreeKeyword(s string) bool {
	for _, word := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '(' || r == ')'
	}) {
		for _, k := range degreeKeywords {
			if word == k || (len(k) > 3 && strings.HasPrefix(word, k)) {
				return true
			}
		}
	}
	return false
}

// longest returns the longest candidate with at least min runes
func longest(candidates []string, min int) (string, bool) {
	best := ""
	for _, c := range candidates {
		if textLen(c) >= min && textLen(c) > textLen(best) {
			best = c
		}
	}
	return best, best != ""
}

// dedupe keeps first occurrences, comparing case-insensitively
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
