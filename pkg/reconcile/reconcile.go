package reconcile

import (
	"fmt"
	"sort"

	"famlink/pkg/schedule"
)

// ActionKind identifies the intended mutation for one app.
type ActionKind int

const (
	// ActionNoOp means the app is already in its desired state.
	ActionNoOp ActionKind = iota
	// ActionSetLimit means a numeric daily cap should be set.
	ActionSetLimit
	// ActionAlwaysAllow means the app should be exempted from limits.
	ActionAlwaysAllow
	// ActionBlock means the app should be hidden.
	ActionBlock
)

// Action is one intended mutation produced by reconciliation. Minutes is
// meaningful only for ActionSetLimit. Previous records the allowance the app
// had when the action was computed, for reporting.
type Action struct {
	Kind     ActionKind
	App      string
	Minutes  int
	Previous Allowance
}

func (a Action) String() string {
	switch a.Kind {
	case ActionSetLimit:
		return fmt.Sprintf("set limit for %q to %d min", a.App, a.Minutes)
	case ActionAlwaysAllow:
		return fmt.Sprintf("always allow %q", a.App)
	case ActionBlock:
		return fmt.Sprintf("block %q", a.App)
	default:
		return fmt.Sprintf("no change for %q", a.App)
	}
}

// Reconcile compares the expected state against the current state and
// returns one action per app present in the current state, sorted by app
// name. Apps with no current-state entry are never acted upon; the service
// is the source of truth for which apps exist.
//
// Reconcile is a pure function: it issues no calls and mutates neither map.
func Reconcile(expected map[string]schedule.Expectation, current map[string]Allowance) []Action {
	apps := make([]string, 0, len(current))
	for app := range current {
		apps = append(apps, app)
	}
	sort.Strings(apps)

	actions := make([]Action, 0, len(apps))
	for _, app := range apps {
		actions = append(actions, decide(app, current[app], expected))
	}
	return actions
}

// decide applies the per-app priority rules.
func decide(app string, current Allowance, expected map[string]schedule.Expectation) Action {
	want, managed := expected[app]
	if !managed {
		// An app with no config entry is only ever driven to blocked;
		// already-blocked apps are left alone.
		if current.Kind == Blocked {
			return Action{Kind: ActionNoOp, App: app, Previous: current}
		}
		return Action{Kind: ActionBlock, App: app, Previous: current}
	}

	if matches(want, current) {
		return Action{Kind: ActionNoOp, App: app, Previous: current}
	}
	if want.AlwaysAllowed {
		return Action{Kind: ActionAlwaysAllow, App: app, Previous: current}
	}
	return Action{Kind: ActionSetLimit, App: app, Minutes: want.LimitMinutes, Previous: current}
}

// matches reports whether the current allowance already satisfies the
// expectation. Always-allowed only matches always-allowed, never a cap.
func matches(want schedule.Expectation, current Allowance) bool {
	if want.AlwaysAllowed {
		return current.Kind == AlwaysAllowed
	}
	return current.Kind == Limited && current.Minutes == want.LimitMinutes
}

// ApplyHypothetically returns the current state as it would look after the
// given actions succeeded. It exists to state the idempotency property in
// tests; the real applier goes through the service.
func ApplyHypothetically(current map[string]Allowance, actions []Action) map[string]Allowance {
	next := make(map[string]Allowance, len(current))
	for app, allowance := range current {
		next[app] = allowance
	}
	for _, action := range actions {
		switch action.Kind {
		case ActionSetLimit:
			next[action.App] = Capped(action.Minutes)
		case ActionAlwaysAllow:
			next[action.App] = Always
		case ActionBlock:
			next[action.App] = Hidden
		}
	}
	return next
}
