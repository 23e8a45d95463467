package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// AppSchedule is the desired weekly schedule for one app. It is either
// permanently unrestricted (AlwaysAllowed) or scheduled, with per-day time
// windows and per-day daily minute caps. A day may carry windows without a
// cap; no expectation is produced for such days.
type AppSchedule struct {
	AlwaysAllowed bool
	Windows       map[Weekday][]TimeWindow
	Limits        map[Weekday]int
}

// Config is the full desired-state configuration, keyed by app display name.
type Config struct {
	Apps map[string]*AppSchedule
}

// NewConfig returns an empty configuration.
func NewConfig() *Config {
	return &Config{Apps: make(map[string]*AppSchedule)}
}

// newScheduled returns an empty scheduled (not always-allowed) app entry.
func newScheduled() *AppSchedule {
	return &AppSchedule{
		Windows: make(map[Weekday][]TimeWindow),
		Limits:  make(map[Weekday]int),
	}
}

// ParseDuration converts an "H:MM" duration string into minutes.
// The minute count must be non-negative and below 60.
func ParseDuration(s string) (int, error) {
	hoursStr, minutesStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid duration %q: expected H:MM", s)
	}
	hours, err := strconv.Atoi(hoursStr)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid duration %q: bad hours %q", s, hoursStr)
	}
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid duration %q: bad minutes %q", s, minutesStr)
	}
	return hours*60 + minutes, nil
}
