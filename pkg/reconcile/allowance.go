package reconcile

import "fmt"

// AllowanceKind identifies which variant an Allowance holds.
type AllowanceKind int

const (
	// Unsupervised means the service asserts no restriction for the app yet.
	Unsupervised AllowanceKind = iota
	// AlwaysAllowed means the app is exempt from limits.
	AlwaysAllowed
	// Limited means a numeric daily minute cap is active.
	Limited
	// Blocked means the app is hidden/disabled.
	Blocked
)

// Allowance is the effective restriction state the service enforces for one
// app. Minutes is meaningful only for the Limited variant.
type Allowance struct {
	Kind    AllowanceKind
	Minutes int
}

// Always is the always-allowed allowance.
var Always = Allowance{Kind: AlwaysAllowed}

// Hidden is the blocked allowance.
var Hidden = Allowance{Kind: Blocked}

// None is the unsupervised allowance.
var None = Allowance{Kind: Unsupervised}

// Capped returns a Limited allowance of the given minutes.
func Capped(minutes int) Allowance {
	return Allowance{Kind: Limited, Minutes: minutes}
}

func (a Allowance) String() string {
	switch a.Kind {
	case AlwaysAllowed:
		return "unlimited"
	case Limited:
		return fmt.Sprintf("%d min", a.Minutes)
	case Blocked:
		return "blocked"
	default:
		return "unsupervised"
	}
}
