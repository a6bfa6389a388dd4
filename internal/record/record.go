// Package record assembles extractor output into a ProfileRecord and
// persists records as JSON, CSV or Excel.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"linkedin-scraper/internal/extractor"
	"linkedin-scraper/internal/models"
)

// Assemble merges extracted fields into a new record for url. The URL is
// stored exactly as given and list fields are never nil.
func Assemble(url string, f extractor.Fields, scrapedAt time.Time) models.ProfileRecord {
	rec := models.ProfileRecord{
		URL:             url,
		Name:            f.Name,
		Headline:        f.Headline,
		Location:        f.Location,
		About:           f.About,
		CurrentCompany:  CurrentCompany(f.Experience),
		Connections:     f.Connections,
		Followers:       f.Followers,
		ProfileImageURL: f.ProfileImageURL,
		Experience:      orEmpty(f.Experience),
		Education:       orEmpty(f.Education),
		Certifications:  orEmpty(f.Certifications),
		Skills:          orEmpty(f.Skills),
		Languages:       orEmpty(f.Languages),
		Projects:        f.Projects,
		Volunteering:    f.Volunteering,
		Honors:          f.Honors,
		ScrapedAt:       scrapedAt.UTC().Truncate(time.Second),
	}
	return rec
}

// CurrentCompany picks the company of the first open-ended position, or of
// the first position when none is open.
func CurrentCompany(experience []models.ExperienceEntry) string {
	for _, e := range experience {
		if e.EndDate == "Present" && e.Company != "" {
			return e.Company
		}
	}
	if len(experience) > 0 {
		return experience[0].Company
	}
	return ""
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(path string, v interface{}) error {
	data, err := marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes rec as indented UTF-8 JSON, replacing any existing file
func WriteJSON(path string, rec models.ProfileRecord) error {
	return writeFile(path, rec)
}

// WriteJSONList writes several records as one JSON array
func WriteJSONList(path string, recs []models.ProfileRecord) error {
	return writeFile(path, orEmpty(recs))
}

// ReadJSON loads a record written by WriteJSON
func ReadJSON(path string) (models.ProfileRecord, error) {
	var rec models.ProfileRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return rec, nil
}

// ReadJSONList loads records written by WriteJSONList
func ReadJSONList(path string) ([]models.ProfileRecord, error) {
	var recs []models.ProfileRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return recs, nil
}

// Marshal renders rec the same way WriteJSON does
func Marshal(rec models.ProfileRecord) ([]byte, error) {
	return marshal(rec)
}
