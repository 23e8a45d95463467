package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeWindow_Parse(t *testing.T) {
	w, err := ParseTimeWindow("08:30-17:45")

	require.NoError(t, err)
	assert.Equal(t, "08:30", w.Start)
	assert.Equal(t, "17:45", w.End)
}

func TestTimeWindow_ParseRejectsBadClock(t *testing.T) {
	// When a bound is not a zero-padded 24-hour clock string
	_, err := ParseTimeWindow("8:30-17:45")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad start time")
}

func TestTimeWindow_ParseRejectsStartAfterEnd(t *testing.T) {
	_, err := ParseTimeWindow("18:00-09:00")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "start after end")
}

func TestTimeWindow_ContainsIsInclusive(t *testing.T) {
	// Given a window
	w := TimeWindow{Start: "09:00", End: "12:00"}

	// Then both endpoints are inside it
	assert.True(t, w.Contains("09:00"))
	assert.True(t, w.Contains("12:00"))
	assert.True(t, w.Contains("10:30"))
	assert.False(t, w.Contains("08:59"))
	assert.False(t, w.Contains("12:01"))
}

func TestParseTimeWindows_SemicolonSeparated(t *testing.T) {
	// When parsing multiple windows
	windows, err := ParseTimeWindows("07:00-08:30;16:00-19:00")

	// Then order is preserved
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, "07:00-08:30", windows[0].String())
	assert.Equal(t, "16:00-19:00", windows[1].String())
}

func TestParseTimeWindows_EmptyMeansFullDay(t *testing.T) {
	windows, err := ParseTimeWindows("")

	require.NoError(t, err)
	assert.Equal(t, []TimeWindow{FullDay}, windows)
}

func TestClock_Format(t *testing.T) {
	instant := time.Date(2024, 1, 2, 7, 5, 59, 0, time.UTC)

	assert.Equal(t, "07:05", Clock(instant))
}
