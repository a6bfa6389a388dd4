package diagnose

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"linkedin-scraper/internal/extractor"
)

func TestInspectFullProfile(t *testing.T) {
	p, err := extractor.ParseFile(filepath.Join("..", "extractor", "testdata", "profile.html"))
	require.NoError(t, err)

	r := Inspect(p)
	require.Equal(t, "Jane Doe | LinkedIn", r.Title)
	require.False(t, r.Authwall)
	require.Empty(t, r.Missing())
	require.Contains(t, r.Anchors, "experience")
	require.Greater(t, r.TextLength, 100)

	var buf bytes.Buffer
	r.Render(&buf)
	out := buf.String()
	require.Contains(t, out, "experience")
	require.Contains(t, out, "4 items")
	require.NotContains(t, out, "login wall")
}

func TestInspectAuthwall(t *testing.T) {
	p, err := extractor.Parse(`<html><head><title>Sign Up | LinkedIn</title></head>
<body><main><h1>Join LinkedIn</h1><form class="authwall-join-form"></form></main></body></html>`)
	require.NoError(t, err)

	r := Inspect(p)
	require.True(t, r.Authwall)
	require.Contains(t, r.Missing(), "experience")
	require.Contains(t, r.Headings, "Join LinkedIn")

	var buf bytes.Buffer
	r.Render(&buf)
	require.Contains(t, buf.String(), "login wall")
}

func TestPreviewTruncatesRunes(t *testing.T) {
	long := ""
	for i := 0; i < 100; i++ {
		long += "é"
	}
	got := []rune(preview(long))
	require.Len(t, got, maxPreview)
	require.Equal(t, '…', got[len(got)-1])
}
