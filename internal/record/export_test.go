package record

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"linkedin-scraper/internal/extractor"
	"linkedin-scraper/internal/models"
)

func exportRecords() []models.ProfileRecord {
	scraped := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []models.ProfileRecord{
		Assemble("https://www.linkedin.com/in/zoe/", sampleFields(), scraped),
		Assemble("https://www.linkedin.com/in/empty/", extractor.Fields{}, scraped),
	}
}

func TestRowFlattensSections(t *testing.T) {
	row := Row(exportRecords()[0])
	require.Len(t, row, len(Columns))

	byName := map[string]string{}
	for i, c := range Columns {
		byName[c] = row[i]
	}
	require.Equal(t, "https://www.linkedin.com/in/zoe/", byName["url"])
	require.Equal(t, "Acme Corp", byName["current_company"])
	require.Equal(t, "Engineer @ Globex (2010 - 2014); Lead @ Acme Corp (Jan 2020 - Present · 4 yrs)", byName["experience"])
	require.Equal(t, "KTH @ MSc", byName["education"])
	require.Equal(t, "Go; SQL", byName["skills"])
	require.Equal(t, "2024-05-01T12:00:00Z", byName["scraped_at"])
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "batch.csv")
	recs := exportRecords()
	require.NoError(t, WriteCSV(path, recs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	rows, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, Columns, rows[0])
	require.Equal(t, "Zoë Åström", rows[1][1])
	require.Equal(t, "Engineer <platform> & data", rows[1][2])
	require.Equal(t, "https://www.linkedin.com/in/empty/", rows[2][0])
	require.Equal(t, "", rows[2][1])
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, WriteExcel(path, exportRecords()))

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, Columns, rows[0])
	require.Equal(t, "Zoë Åström", rows[1][1])
	require.Equal(t, "Malmö, Sweden", rows[1][3])
}

func TestWriteListPicksFormat(t *testing.T) {
	dir := t.TempDir()
	recs := exportRecords()

	jsonPath := filepath.Join(dir, "batch.json")
	require.NoError(t, WriteList(jsonPath, FormatForPath(jsonPath), recs))
	back, err := ReadJSONList(jsonPath)
	require.NoError(t, err)
	require.Len(t, back, 2)

	csvPath := filepath.Join(dir, "batch.csv")
	require.NoError(t, WriteList(csvPath, FormatForPath(csvPath), recs))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "current_company")
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in       string
		expected Format
	}{
		{in: "json", expected: FormatJSON},
		{in: "CSV", expected: FormatCSV},
		{in: ".xlsx", expected: FormatExcel},
		{in: "excel", expected: FormatExcel},
	}
	for _, test := range testCases {
		got, err := ParseFormat(test.in)
		require.NoError(t, err, test.in)
		require.Equal(t, test.expected, got, test.in)
	}

	_, err := ParseFormat("yaml")
	require.Error(t, err)
	require.Equal(t, FormatJSON, FormatForPath("out/batch"))
	require.Equal(t, FormatExcel, FormatForPath("out/batch.XLSX"))
}
