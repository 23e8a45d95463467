package apply

import (
	"context"
	"errors"
	"fmt"

	"famlink/pkg/reconcile"
	"famlink/pkg/ui"
)

// Service is the subset of the Family Link client the applier needs. Each
// method is one blocking mutation round trip keyed by app display name.
type Service interface {
	SetAppLimit(ctx context.Context, app string, minutes int) error
	AlwaysAllowApp(ctx context.Context, app string) error
	BlockApp(ctx context.Context, app string) error
}

// Applier executes reconciliation actions against the service, or only
// renders them in dry-run mode.
type Applier struct {
	service  Service
	reporter *ui.Reporter
	dryRun   bool
}

// NewApplier creates an applier. In dry-run mode no mutation is issued.
func NewApplier(service Service, reporter *ui.Reporter, dryRun bool) *Applier {
	return &Applier{
		service:  service,
		reporter: reporter,
		dryRun:   dryRun,
	}
}

// Apply executes each action in order. A failed action is reported
// immediately; remaining actions still run, and every failure is carried in
// the combined returned error.
func (a *Applier) Apply(ctx context.Context, actions []reconcile.Action) (*ui.RunStats, error) {
	stats := &ui.RunStats{Checked: len(actions), DryRun: a.dryRun}

	var failures []error
	for _, action := range actions {
		if action.Kind == reconcile.ActionNoOp {
			stats.InSync++
			a.reporter.NoChange(action.App)
			continue
		}

		a.report(action)
		if a.dryRun {
			stats.Applied++
			continue
		}

		if err := a.execute(ctx, action); err != nil {
			stats.Failed++
			a.reporter.ActionFailed(action.App, err)
			failures = append(failures, fmt.Errorf("%s: %w", action.String(), err))
			continue
		}
		stats.Applied++
	}

	return stats, errors.Join(failures...)
}

func (a *Applier) report(action reconcile.Action) {
	switch action.Kind {
	case reconcile.ActionSetLimit:
		a.reporter.SetLimit(action.App, action.Minutes, action.Previous.String())
	case reconcile.ActionAlwaysAllow:
		a.reporter.AlwaysAllow(action.App)
	case reconcile.ActionBlock:
		a.reporter.Block(action.App, action.Previous.String())
	}
}

func (a *Applier) execute(ctx context.Context, action reconcile.Action) error {
	switch action.Kind {
	case reconcile.ActionSetLimit:
		return a.service.SetAppLimit(ctx, action.App, action.Minutes)
	case reconcile.ActionAlwaysAllow:
		return a.service.AlwaysAllowApp(ctx, action.App)
	case reconcile.ActionBlock:
		return a.service.BlockApp(ctx, action.App)
	default:
		return nil
	}
}
