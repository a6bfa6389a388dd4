package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/record"
)

// printRecord shows a summary table followed by the full JSON
func printRecord(w io.Writer, rec models.ProfileRecord) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Name", rec.Name})
	t.AppendRow(table.Row{"Headline", rec.Headline})
	t.AppendRow(table.Row{"Location", rec.Location})
	t.AppendRow(table.Row{"Current company", rec.CurrentCompany})
	t.AppendRow(table.Row{"Connections", rec.Connections})
	t.AppendRow(table.Row{"Experience", len(rec.Experience)})
	t.AppendRow(table.Row{"Education", len(rec.Education)})
	t.AppendRow(table.Row{"Certifications", len(rec.Certifications)})
	t.AppendRow(table.Row{"Skills", strings.Join(firstN(rec.Skills, 8), ", ")})
	t.AppendRow(table.Row{"Languages", strings.Join(rec.Languages, ", ")})
	t.SetStyle(table.StyleRounded)
	t.Render()

	data, err := record.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return append(append([]string(nil), s[:n]...), fmt.Sprintf("+%d more", len(s)-n))
}
