package schedule

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Expectation is the managed allowance an app should have at an instant:
// either always allowed, or capped at a number of minutes for the day.
type Expectation struct {
	AlwaysAllowed bool
	LimitMinutes  int
}

// Allow is the expectation for a permanently unrestricted app.
var Allow = Expectation{AlwaysAllowed: true}

// Limit returns the expectation for a daily cap of the given minutes.
func Limit(minutes int) Expectation {
	return Expectation{LimitMinutes: minutes}
}

func (e Expectation) String() string {
	if e.AlwaysAllowed {
		return "unlimited"
	}
	return fmt.Sprintf("%d min", e.LimitMinutes)
}

// Resolver derives the expected per-app state for the current instant.
// The clock is injected so that resolution is testable at fixed instants.
type Resolver struct {
	clock clockwork.Clock
}

// NewResolver creates a resolver evaluating against the given clock.
func NewResolver(clock clockwork.Clock) *Resolver {
	return &Resolver{clock: clock}
}

// Expected resolves the configuration at the resolver's current instant.
func (r *Resolver) Expected(cfg *Config) map[string]Expectation {
	return ExpectedAt(cfg, r.clock.Now())
}

// ExpectedAt resolves the configuration at a specific instant. Apps without
// a managed expectation for the instant are omitted from the result; omission
// means no constraint is asserted, not that the app should be blocked.
func ExpectedAt(cfg *Config, t time.Time) map[string]Expectation {
	today := WeekdayOf(t)
	clock := Clock(t)

	expected := make(map[string]Expectation)
	for app, entry := range cfg.Apps {
		if entry.AlwaysAllowed {
			expected[app] = Allow
			continue
		}

		limit, ok := entry.Limits[today]
		if !ok {
			continue
		}

		windows := entry.Windows[today]
		if len(windows) == 0 {
			// A cap with no window restriction applies all day.
			expected[app] = Limit(limit)
			continue
		}
		for _, w := range windows {
			if w.Contains(clock) {
				expected[app] = Limit(limit)
				break
			}
		}
	}
	return expected
}
