package apply

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famlink/pkg/reconcile"
	"famlink/pkg/ui"
)

// fakeService records mutation calls and can be told to fail per app.
type fakeService struct {
	calls   []string
	failFor map[string]error
}

func (f *fakeService) call(name, app string) error {
	f.calls = append(f.calls, name+":"+app)
	if err := f.failFor[app]; err != nil {
		return err
	}
	return nil
}

func (f *fakeService) SetAppLimit(_ context.Context, app string, minutes int) error {
	return f.call(fmt.Sprintf("limit=%d", minutes), app)
}

func (f *fakeService) AlwaysAllowApp(_ context.Context, app string) error {
	return f.call("allow", app)
}

func (f *fakeService) BlockApp(_ context.Context, app string) error {
	return f.call("block", app)
}

func TestApplier_ExecutesEachActionKind(t *testing.T) {
	// Given one action of each mutating kind
	service := &fakeService{}
	var buf bytes.Buffer
	applier := NewApplier(service, ui.NewReporter(&buf), false)

	actions := []reconcile.Action{
		{Kind: reconcile.ActionSetLimit, App: "Games", Minutes: 90, Previous: reconcile.Capped(30)},
		{Kind: reconcile.ActionAlwaysAllow, App: "Browser", Previous: reconcile.Hidden},
		{Kind: reconcile.ActionBlock, App: "Chat", Previous: reconcile.None},
	}

	stats, err := applier.Apply(context.Background(), actions)

	require.NoError(t, err)
	assert.Equal(t, []string{"limit=90:Games", "allow:Browser", "block:Chat"}, service.calls)
	assert.Equal(t, 3, stats.Applied)
	assert.Equal(t, 0, stats.InSync)
}

func TestApplier_NoOpIssuesNoCall(t *testing.T) {
	service := &fakeService{}
	var buf bytes.Buffer
	applier := NewApplier(service, ui.NewReporter(&buf), false)

	stats, err := applier.Apply(context.Background(), []reconcile.Action{
		{Kind: reconcile.ActionNoOp, App: "Games", Previous: reconcile.Capped(90)},
	})

	require.NoError(t, err)
	assert.Empty(t, service.calls)
	assert.Equal(t, 1, stats.InSync)
}

func TestApplier_DryRunIssuesNoCalls(t *testing.T) {
	// Given dry-run mode
	service := &fakeService{}
	var buf bytes.Buffer
	applier := NewApplier(service, ui.NewReporter(&buf), true)

	stats, err := applier.Apply(context.Background(), []reconcile.Action{
		{Kind: reconcile.ActionBlock, App: "Chat", Previous: reconcile.None},
		{Kind: reconcile.ActionSetLimit, App: "Games", Minutes: 60, Previous: reconcile.None},
	})

	// Then actions are only rendered, never executed
	require.NoError(t, err)
	assert.Empty(t, service.calls)
	assert.Equal(t, 2, stats.Applied)
	assert.Contains(t, buf.String(), `Blocking "Chat"`)
	assert.Contains(t, buf.String(), `Setting "Games" to 60 min`)
}

func TestApplier_ContinuesThroughFailuresAndReportsThemAll(t *testing.T) {
	// Given a service that fails for the first two apps
	service := &fakeService{failFor: map[string]error{
		"Alpha": errors.New("alpha down"),
		"Beta":  errors.New("beta down"),
	}}
	var buf bytes.Buffer
	applier := NewApplier(service, ui.NewReporter(&buf), false)

	actions := []reconcile.Action{
		{Kind: reconcile.ActionBlock, App: "Alpha", Previous: reconcile.None},
		{Kind: reconcile.ActionBlock, App: "Beta", Previous: reconcile.None},
		{Kind: reconcile.ActionBlock, App: "Gamma", Previous: reconcile.None},
	}

	stats, err := applier.Apply(context.Background(), actions)

	// Then later actions still ran and every failure is surfaced
	assert.Equal(t, []string{"block:Alpha", "block:Beta", "block:Gamma"}, service.calls)
	assert.Equal(t, 1, stats.Applied)
	assert.Equal(t, 2, stats.Failed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha down")
	assert.Contains(t, err.Error(), "beta down")
	assert.Contains(t, buf.String(), `Failed to update "Alpha"`)
	assert.Contains(t, buf.String(), `Failed to update "Beta"`)
}
