package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, csv string) *Config {
	t.Helper()
	cfg, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	return cfg
}

func TestResolver_AlwaysAllowedIgnoresInstant(t *testing.T) {
	// Given an app marked permanently unrestricted
	cfg := mustParse(t, "App,Max Duration,Days,Time Ranges\nBrowser,,,\n")

	// Then it resolves to always allowed at any instant
	for _, instant := range []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 1, 7, 12, 30, 0, 0, time.UTC),
	} {
		expected := ExpectedAt(cfg, instant)
		assert.Equal(t, Allow, expected["Browser"])
	}
}

func TestResolver_CapAppliesOnScheduledDay(t *testing.T) {
	// Given a 1:30 cap on Mon-Wed with no time restriction
	cfg := mustParse(t, "App,Max Duration,Days,Time Ranges\nGames,1:30,Mon-Wed,\n")

	// When resolving on a Tuesday
	tuesday := time.Date(2024, 1, 2, 3, 15, 0, 0, time.UTC)
	expected := ExpectedAt(cfg, tuesday)

	// Then the 90 minute cap applies at any time of day
	assert.Equal(t, Limit(90), expected["Games"])
}

func TestResolver_NoExpectationOutsideScheduledDays(t *testing.T) {
	cfg := mustParse(t, "App,Max Duration,Days,Time Ranges\nGames,1:30,Mon-Wed,\n")

	// When resolving on a Thursday
	thursday := time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)
	expected := ExpectedAt(cfg, thursday)

	// Then no expectation is produced for the app
	_, ok := expected["Games"]
	assert.False(t, ok)
}

func TestResolver_WindowGatesTheCap(t *testing.T) {
	// Given a cap restricted to an afternoon window
	cfg := mustParse(t, "App,Max Duration,Days,Time Ranges\nGames,1:00,Mon,16:00-18:00\n")
	monday := func(hour, minute int) time.Time {
		return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
	}

	// Then the cap applies inside the window, endpoints included
	assert.Equal(t, Limit(60), ExpectedAt(cfg, monday(16, 0))["Games"])
	assert.Equal(t, Limit(60), ExpectedAt(cfg, monday(17, 30))["Games"])
	assert.Equal(t, Limit(60), ExpectedAt(cfg, monday(18, 0))["Games"])

	// And no expectation is produced outside it
	_, ok := ExpectedAt(cfg, monday(15, 59))["Games"]
	assert.False(t, ok)
	_, ok = ExpectedAt(cfg, monday(18, 1))["Games"]
	assert.False(t, ok)
}

func TestResolver_FirstMatchingWindowWins(t *testing.T) {
	// Given two windows for the same day
	cfg := mustParse(t, "App,Max Duration,Days,Time Ranges\nGames,0:45,Sun,08:00-09:00;20:00-21:00\n")
	sunday := time.Date(2024, 1, 7, 20, 30, 0, 0, time.UTC)

	expected := ExpectedAt(cfg, sunday)

	assert.Equal(t, Limit(45), expected["Games"])
}

func TestResolver_ZeroMinuteCapIsAnExpectation(t *testing.T) {
	// Given the default-template cap of 0:00
	cfg := mustParse(t, "App,Max Duration,Days,Time Ranges\nChat,0:00,,\n")

	expected := ExpectedAt(cfg, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC))

	// Then a zero-minute cap is still a managed expectation
	assert.Equal(t, Limit(0), expected["Chat"])
}

func TestResolver_WindowsWithoutDurationProduceNothing(t *testing.T) {
	// Given a degenerate row with time windows but no duration
	cfg := mustParse(t, "App,Max Duration,Days,Time Ranges\nDrawing,,Sat,10:00-12:00\n")

	expected := ExpectedAt(cfg, time.Date(2024, 1, 6, 11, 0, 0, 0, time.UTC))

	// Then resolution tolerates it and asserts nothing
	assert.Empty(t, expected)
}

func TestResolver_UsesInjectedClock(t *testing.T) {
	// Given a resolver pinned to a fake clock on a Tuesday afternoon
	instant := time.Date(2024, 1, 2, 16, 30, 0, 0, time.UTC)
	resolver := NewResolver(clockwork.NewFakeClockAt(instant))
	cfg := mustParse(t, "App,Max Duration,Days,Time Ranges\nGames,1:30,Tue,16:00-18:00\n")

	// When resolving through the resolver
	expected := resolver.Expected(cfg)

	// Then the fake instant decides the outcome
	assert.Equal(t, Limit(90), expected["Games"])
}
