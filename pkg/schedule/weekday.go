package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a day of the week in Monday-first order.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// AllWeekdays returns every weekday in Monday-first order.
func AllWeekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// ParseWeekday parses a full weekday name or its three-letter abbreviation.
// Matching is case-insensitive.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, full := range weekdayNames {
		if name == full || name == full[:3] {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", s)
}

// ParseDays expands a day specifier into weekdays. A single day name expands
// to itself, a "X-Y" token expands to the inclusive range from X to Y in
// Monday-to-Sunday order, and an empty specifier expands to the full week.
// A range whose end precedes its start is a configuration error.
func ParseDays(spec string) ([]Weekday, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return AllWeekdays(), nil
	}

	if start, end, ok := strings.Cut(spec, "-"); ok {
		from, err := ParseWeekday(start)
		if err != nil {
			return nil, fmt.Errorf("invalid day range %q: %w", spec, err)
		}
		to, err := ParseWeekday(end)
		if err != nil {
			return nil, fmt.Errorf("invalid day range %q: %w", spec, err)
		}
		if to < from {
			return nil, fmt.Errorf("invalid day range %q: end before start", spec)
		}
		var days []Weekday
		for d := from; d <= to; d++ {
			days = append(days, d)
		}
		return days, nil
	}

	day, err := ParseWeekday(spec)
	if err != nil {
		return nil, err
	}
	return []Weekday{day}, nil
}

// WeekdayOf converts a time.Time into the Monday-first weekday.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday is Sunday-first.
	return Weekday((int(t.Weekday()) + 6) % 7)
}
