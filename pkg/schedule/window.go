package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// clockPattern matches a zero-padded 24-hour HH:MM clock string.
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeWindow is an inclusive time-of-day range. Both bounds are zero-padded
// HH:MM strings, which compare correctly as plain strings.
type TimeWindow struct {
	Start string
	End   string
}

// FullDay is the window covering the whole day.
var FullDay = TimeWindow{Start: "00:00", End: "23:59"}

// ParseTimeWindow parses a single "HH:MM-HH:MM" window.
func ParseTimeWindow(s string) (TimeWindow, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return TimeWindow{}, fmt.Errorf("invalid time range %q: expected HH:MM-HH:MM", s)
	}
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if !clockPattern.MatchString(start) {
		return TimeWindow{}, fmt.Errorf("invalid time range %q: bad start time %q", s, start)
	}
	if !clockPattern.MatchString(end) {
		return TimeWindow{}, fmt.Errorf("invalid time range %q: bad end time %q", s, end)
	}
	if start > end {
		return TimeWindow{}, fmt.Errorf("invalid time range %q: start after end", s)
	}
	return TimeWindow{Start: start, End: end}, nil
}

// ParseTimeWindows parses a semicolon-separated list of windows, preserving
// order. An empty specifier yields the full day.
func ParseTimeWindows(spec string) ([]TimeWindow, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return []TimeWindow{FullDay}, nil
	}
	var windows []TimeWindow
	for _, part := range strings.Split(spec, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		w, err := ParseTimeWindow(part)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	if len(windows) == 0 {
		return []TimeWindow{FullDay}, nil
	}
	return windows, nil
}

// Contains reports whether the HH:MM clock string falls inside the window.
// Both endpoints are inclusive.
func (w TimeWindow) Contains(clock string) bool {
	return w.Start <= clock && clock <= w.End
}

func (w TimeWindow) String() string {
	return w.Start + "-" + w.End
}

// Clock formats an instant as the zero-padded HH:MM string used for window
// containment checks.
func Clock(t time.Time) string {
	return t.Format("15:04")
}
