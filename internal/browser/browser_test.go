package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsXPath(t *testing.T) {
	require.True(t, IsXPath(`//button[contains(., "Sign in")]`))
	require.True(t, IsXPath(`(//h1)[1]`))
	require.False(t, IsXPath(`button[type="submit"]`))
	require.False(t, IsXPath(`#username`))
}

func TestExistsScriptQuotesSelector(t *testing.T) {
	css := ExistsScript(`input[type="submit"]`)
	require.Contains(t, css, `document.querySelector("input[type=\"submit\"]")`)

	xpath := ExistsScript(`//a[@href='x']`)
	require.Contains(t, xpath, `document.evaluate("//a[@href='x']"`)
}

func TestExpandScriptEmbedsLabels(t *testing.T) {
	script := ExpandScript([]string{"show more", "see more"})
	require.Contains(t, script, `["show more","see more"]`)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), "selenium", Options{})
	require.Error(t, err)
}
