package familylink

import (
	"strings"

	"famlink/pkg/reconcile"
)

// Google-bundled package prefixes. Bundled apps with no explicit setting are
// left out of the current state entirely so reconciliation never auto-blocks
// them.
var bundledPrefixes = []string{"com.google", "com.android"}

// CurrentAllowances derives the per-app current state from a snapshot,
// keyed by display title. An active usage limit wins over the hidden flag,
// which wins over the always-allowed marker; everything else is an
// unsupervised app (a recent install, for example).
func CurrentAllowances(usage *AppUsage) map[string]reconcile.Allowance {
	current := make(map[string]reconcile.Allowance, len(usage.Apps))
	for _, app := range usage.Apps {
		setting := app.SupervisionSetting
		switch {
		case setting.UsageLimit != nil:
			current[app.Title] = reconcile.Capped(setting.UsageLimit.DailyUsageLimitMins)
		case setting.Hidden:
			current[app.Title] = reconcile.Hidden
		case setting.AlwaysAllowedAppInfo.Enabled():
			current[app.Title] = reconcile.Always
		case !bundled(app.PackageName):
			current[app.Title] = reconcile.None
		}
	}
	return current
}

func bundled(packageName string) bool {
	for _, prefix := range bundledPrefixes {
		if strings.HasPrefix(packageName, prefix) {
			return true
		}
	}
	return false
}
