package utils

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "42s", FormatDuration(42*time.Second))
	require.Equal(t, "3m5s", FormatDuration(3*time.Minute+5*time.Second))
	require.Equal(t, "2h10m", FormatDuration(2*time.Hour+10*time.Minute))
}

func TestPollUntilSucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := PollUntil(context.Background(), time.Millisecond, time.Second, func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestPollUntilTimesOut(t *testing.T) {
	err := PollUntil(context.Background(), time.Millisecond, 20*time.Millisecond, func(context.Context) (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestPollUntilStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	err := PollUntil(context.Background(), time.Millisecond, time.Second, func(context.Context) (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestPollUntilHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := PollUntil(ctx, time.Millisecond, time.Second, func(context.Context) (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseURLList(t *testing.T) {
	input := `
# profiles to scrape
https://www.linkedin.com/in/alice/
jdoe,https://www.linkedin.com/in/bob

https://www.linkedin.com/in/alice/
`
	urls, err := ParseURLList(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://www.linkedin.com/in/alice/",
		"https://www.linkedin.com/in/bob",
	}, urls)
}
