package record

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"linkedin-scraper/internal/models"
)

// Format is an output file format for a batch of records
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
)

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatJSON, FormatCSV, FormatExcel:
		return f, nil
	case "excel":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("unknown output format %q (json, csv, xlsx)", s)
}

// FormatForPath picks the format from the file extension, JSON when unknown
func FormatForPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatJSON
}

// Columns is the header row of tabular exports
var Columns = []string{
	"url", "name", "headline", "location", "current_company", "about",
	"connections", "followers", "experience", "education", "certifications",
	"skills", "languages", "profile_image_url", "scraped_at",
}

const listSep = "; "

// Row flattens rec into one line of Columns. Nested sections become
// "; " separated summaries.
func Row(rec models.ProfileRecord) []string {
	experience := make([]string, 0, len(rec.Experience))
	for _, e := range rec.Experience {
		experience = append(experience, summarize(e.Title, e.Company, e.Duration))
	}
	education := make([]string, 0, len(rec.Education))
	for _, e := range rec.Education {
		education = append(education, summarize(e.School, e.Degree, e.Duration))
	}
	certs := make([]string, 0, len(rec.Certifications))
	for _, c := range rec.Certifications {
		certs = append(certs, summarize(c.Name, c.Issuer, c.Date))
	}

	scrapedAt := ""
	if !rec.ScrapedAt.IsZero() {
		scrapedAt = rec.ScrapedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		rec.URL, rec.Name, rec.Headline, rec.Location, rec.CurrentCompany, rec.About,
		rec.Connections, rec.Followers,
		strings.Join(experience, listSep),
		strings.Join(education, listSep),
		strings.Join(certs, listSep),
		strings.Join(rec.Skills, listSep),
		strings.Join(rec.Languages, listSep),
		rec.ProfileImageURL, scrapedAt,
	}
}

// summarize renders "Title @ Company (Duration)" leaving out empty parts
func summarize(what, where, when string) string {
	s := what
	if where != "" {
		if s != "" {
			s += " @ "
		}
		s += where
	}
	if when != "" {
		s += " (" + when + ")"
	}
	return strings.TrimSpace(s)
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	return os.Create(path)
}

// WriteCSV writes one header row plus one row per record. A UTF-8 BOM
// leads the file so spreadsheet apps detect the encoding.
func WriteCSV(path string, recs []models.ProfileRecord) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := w.Write(Row(rec)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

const sheetName = "Profiles"

// WriteExcel writes the same table as WriteCSV into a single sheet workbook
func WriteExcel(path string, recs []models.ProfileRecord) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	sw, err := book.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", cells(Columns)); err != nil {
		return err
	}
	for i, rec := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells(Row(rec))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func cells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// WriteList writes recs to path in the given format
func WriteList(path string, format Format, recs []models.ProfileRecord) error {
	switch format {
	case FormatCSV:
		return WriteCSV(path, recs)
	case FormatExcel:
		return WriteExcel(path, recs)
	default:
		return WriteJSONList(path, recs)
	}
}
