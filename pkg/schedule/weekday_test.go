package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekday_ParseFullName(t *testing.T) {
	// When parsing a full weekday name in mixed case
	day, err := ParseWeekday("Wednesday")

	// Then it should resolve to the canonical weekday
	require.NoError(t, err)
	assert.Equal(t, Wednesday, day)
}

func TestWeekday_ParseAbbreviation(t *testing.T) {
	// When parsing a three-letter abbreviation
	day, err := ParseWeekday("sat")

	require.NoError(t, err)
	assert.Equal(t, Saturday, day)
}

func TestWeekday_ParseUnknown(t *testing.T) {
	// When parsing an unrecognized day token
	_, err := ParseWeekday("funday")

	// Then it should return an error
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown weekday")
}

func TestParseDays_SingleDay(t *testing.T) {
	days, err := ParseDays("Fri")

	require.NoError(t, err)
	assert.Equal(t, []Weekday{Friday}, days)
}

func TestParseDays_Range(t *testing.T) {
	// When parsing a day range
	days, err := ParseDays("Mon-Wed")

	// Then it should expand to the inclusive Monday-first sequence
	require.NoError(t, err)
	assert.Equal(t, []Weekday{Monday, Tuesday, Wednesday}, days)
}

func TestParseDays_EmptyMeansFullWeek(t *testing.T) {
	days, err := ParseDays("")

	require.NoError(t, err)
	assert.Equal(t, AllWeekdays(), days)
	assert.Len(t, days, 7)
}

func TestParseDays_ReversedRange(t *testing.T) {
	// When the range end precedes its start
	_, err := ParseDays("fri-mon")

	// Then it should be rejected as a configuration error
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "end before start")
}

func TestParseDays_MalformedRange(t *testing.T) {
	_, err := ParseDays("mon-noday")

	assert.Error(t, err)
}

func TestWeekdayOf_MondayFirstMapping(t *testing.T) {
	// Given known calendar dates
	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

	// Then they should map onto the Monday-first weekday
	assert.Equal(t, Monday, WeekdayOf(monday))
	assert.Equal(t, Sunday, WeekdayOf(sunday))
}
