// Package diagnose explains what the extractors can and cannot see in a
// saved profile page.
package diagnose

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jedib0t/go-pretty/v6/table"

	"linkedin-scraper/internal/extractor"
)

const maxPreview = 60

// FieldStatus is one extractor result
type FieldStatus struct {
	Name  string
	Found bool
	Value string
}

// Report summarises a page snapshot
type Report struct {
	Title      string
	TextLength int
	Authwall   bool
	Headings   []string
	Anchors    []string
	Fields     []FieldStatus
}

// Missing lists the fields that were not found
func (r Report) Missing() []string {
	var out []string
	for _, f := range r.Fields {
		if !f.Found {
			out = append(out, f.Name)
		}
	}
	return out
}

// Inspect runs every extractor over p and collects page landmarks
func Inspect(p *extractor.Page) Report {
	doc := p.Document()
	r := Report{
		Title:      p.Title(),
		TextLength: len(extractor.Normalize(doc.Find("body").Text())),
	}

	r.Authwall = doc.Find("#authwall, .authwall-join-form").Length() > 0 ||
		strings.Contains(strings.ToLower(r.Title), "sign up") ||
		strings.Contains(strings.ToLower(r.Title), "log in")

	doc.Find("h1, h2, h3").Each(func(_ int, h *goquery.Selection) {
		if len(r.Headings) >= 25 {
			return
		}
		if t := extractor.Normalize(h.Text()); t != "" {
			r.Headings = append(r.Headings, t)
		}
	})
	doc.Find("section > div[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		r.Anchors = append(r.Anchors, id)
	})

	f := extractor.ExtractAll(p, nil)
	missing := make(map[string]bool, len(f.Missing))
	for _, m := range f.Missing {
		missing[m] = true
	}
	add := func(name, value string) {
		r.Fields = append(r.Fields, FieldStatus{Name: name, Found: !missing[name], Value: preview(value)})
	}
	items := func(n int) string {
		if n == 0 {
			return ""
		}
		return fmt.Sprintf("%d items", n)
	}

	add("name", f.Name)
	add("headline", f.Headline)
	add("location", f.Location)
	add("about", f.About)
	add("connections", f.Connections)
	add("followers", f.Followers)
	add("profile_image_url", f.ProfileImageURL)
	add("experience", items(len(f.Experience)))
	add("education", items(len(f.Education)))
	add("certifications", items(len(f.Certifications)))
	add("skills", items(len(f.Skills)))
	add("languages", items(len(f.Languages)))
	add("projects", items(len(f.Projects)))
	add("volunteering", items(len(f.Volunteering)))
	add("honors", items(len(f.Honors)))
	return r
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= maxPreview {
		return s
	}
	return string(r[:maxPreview-1]) + "…"
}

// Render writes the report as tables
func (r Report) Render(w io.Writer) {
	fmt.Fprintf(w, "📄 %s (%d chars of text)\n", r.Title, r.TextLength)
	if r.Authwall {
		fmt.Fprintln(w, "⚠️ Page looks like a login wall, extraction will be mostly empty")
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Found", "Value"})
	for _, f := range r.Fields {
		mark := "✅"
		if !f.Found {
			mark = "❌"
		}
		t.AppendRow(table.Row{f.Name, mark, f.Value})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	if len(r.Anchors) > 0 {
		fmt.Fprintf(w, "Section anchors: %s\n", strings.Join(r.Anchors, ", "))
	}
	if len(r.Headings) > 0 {
		fmt.Fprintf(w, "Headings: %s\n", strings.Join(r.Headings, " | "))
	}
}
