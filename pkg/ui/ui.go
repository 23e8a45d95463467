package ui

import (
	"fmt"
	"io"
)

// Reporter handles status reporting and terminal output. It is injected into
// the apply boundary so the core logic carries no process-wide output state.
type Reporter struct {
	writer io.Writer
	quiet  bool
}

// RunStats tracks statistics for one reconciliation run.
type RunStats struct {
	Checked int
	Applied int
	InSync  int
	Failed  int
	DryRun  bool
}

// NewReporter creates a new status reporter.
func NewReporter(writer io.Writer) *Reporter {
	return &Reporter{
		writer: writer,
		quiet:  false,
	}
}

// SetQuiet enables or disables quiet mode (suppresses per-app messages).
func (r *Reporter) SetQuiet(quiet bool) {
	r.quiet = quiet
}

// DryRunBanner announces that no changes will be applied.
func (r *Reporter) DryRunBanner() {
	fmt.Fprintf(r.writer, "--- DRY RUN MODE ---\n")
	fmt.Fprintf(r.writer, "No changes will be applied\n")
	fmt.Fprintf(r.writer, "--------------------\n")
}

// NoChange reports an app already in its desired state.
func (r *Reporter) NoChange(app string) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.writer, "• %q is already set to the expected limit\n", app)
}

// AlwaysAllow reports that an app is being set to unlimited.
func (r *Reporter) AlwaysAllow(app string) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.writer, "• Setting %q to unlimited\n", app)
}

// SetLimit reports that an app's daily cap is being changed.
func (r *Reporter) SetLimit(app string, minutes int, previous string) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.writer, "• Setting %q to %d min (previously %s)\n", app, minutes, previous)
}

// Block reports that an app is being blocked.
func (r *Reporter) Block(app string, previous string) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.writer, "• Blocking %q (previously %s)\n", app, previous)
}

// ActionFailed reports a failed mutation. Failures are never suppressed.
func (r *Reporter) ActionFailed(app string, err error) {
	fmt.Fprintf(r.writer, "✗ Failed to update %q: %v\n", app, err)
}

// ConfigCreated reports that a default template configuration was written.
func (r *Reporter) ConfigCreated(path string) {
	fmt.Fprintf(r.writer, "Created default config file at %s\n", path)
}

// Summary reports the final outcome of a run.
func (r *Reporter) Summary(stats *RunStats) {
	if stats.Failed > 0 {
		fmt.Fprintf(r.writer, "❌ %d of %d changes failed.\n", stats.Failed, stats.Applied+stats.Failed)
	} else if stats.DryRun {
		fmt.Fprintf(r.writer, "✅ Dry run: %d changes planned, %d apps already in sync.\n", stats.Applied, stats.InSync)
	} else {
		fmt.Fprintf(r.writer, "✅ %d changes applied, %d apps already in sync.\n", stats.Applied, stats.InSync)
	}

	fmt.Fprintf(r.writer, "\nRun Statistics:\n")
	fmt.Fprintf(r.writer, "  Apps Checked: %d\n", stats.Checked)
	if stats.DryRun {
		fmt.Fprintf(r.writer, "  Changes Planned: %d\n", stats.Applied)
	} else {
		fmt.Fprintf(r.writer, "  Changes Applied: %d\n", stats.Applied)
	}
	fmt.Fprintf(r.writer, "  Already In Sync: %d\n", stats.InSync)
	fmt.Fprintf(r.writer, "  Failures: %d\n", stats.Failed)
}
