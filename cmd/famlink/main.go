package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"famlink/pkg/apply"
	"famlink/pkg/config"
	"famlink/pkg/familylink"
	"famlink/pkg/reconcile"
	"famlink/pkg/schedule"
	"famlink/pkg/ui"
)

var (
	flagConfig  config.Config
	configFile  string
	debugConfig bool
)

var rootCmd = &cobra.Command{
	Use:   "famlink [flags] [config.csv]",
	Short: "Reconcile Family Link app limits against a CSV schedule",
	Long: `famlink reads a weekly per-app schedule from a CSV file, resolves what
each app's limit should be right now, fetches the child's current app
restrictions from Family Link, and applies the minimal set of changes
needed to bring them in line.

Apps present on the device but absent from the schedule are blocked.
If the CSV file does not exist, a template listing every app on the
device is written there instead and no changes are made.

Run settings can be loaded from a TOML file. The tool looks for
configuration files in the following order:
1. File specified by --config flag
2. .famlink.toml or famlink.toml in current directory
3. .famlink.toml or famlink.toml in home directory

Environment variables (FAMLINK_*) override the file; CLI flags override both.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runApply,
	SilenceUsage: true,
}

func init() {
	// Configuration file flag
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debugConfig, "debug-config", false, "Show configuration resolution details")

	// CLI flags (these override config file and environment values)
	rootCmd.PersistentFlags().StringVar(&flagConfig.CookieFile, "cookie-file", "", "Netscape cookies.txt file with Google session cookies")
	rootCmd.PersistentFlags().StringVar(&flagConfig.AccountID, "account-id", "", "Supervised child account ID (default: first supervised family member)")
	rootCmd.PersistentFlags().DurationVarP(&flagConfig.Timeout, "timeout", "t", 0, "HTTP timeout per request")
	rootCmd.PersistentFlags().BoolVarP(&flagConfig.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagConfig.Quiet, "quiet", "q", false, "Suppress per-app output (failures still shown)")
	rootCmd.Flags().BoolVarP(&flagConfig.DryRun, "dry-run", "n", false, "Report planned changes without applying them")

	rootCmd.AddCommand(
		createUsageCommand(),
		createMembersCommand(),
		createDevicesCommand(),
		createLockCommand(),
		createUnlockCommand(),
	)
}

// flagKeys maps CLI flag names to their config keys for explicit-set tracking.
var flagKeys = map[string]string{
	"cookie-file": "cookie_file",
	"account-id":  "account_id",
	"timeout":     "timeout",
	"dry-run":     "dry_run",
	"verbose":     "verbose",
	"quiet":       "quiet",
}

// explicitFields reports which config keys were explicitly set via CLI flags.
// Boolean flags need this since false is a valid override.
func explicitFields(cmd *cobra.Command) map[string]bool {
	explicit := make(map[string]bool)
	for flagName, configKey := range flagKeys {
		if cmd.Flags().Changed(flagName) {
			explicit[configKey] = true
		}
	}
	return explicit
}

// loadConfiguration loads run settings with full precedence support
func loadConfiguration(cmd *cobra.Command) (*config.Config, error) {
	// Determine config file to use
	var configPath string
	if configFile != "" {
		// Use explicitly specified config file
		configPath = configFile
	} else {
		// Search for config file in standard locations
		cwd, _ := os.Getwd()
		if found := config.FindConfigFile(cwd); found != "" {
			configPath = found
		} else {
			// Check home directory
			if homeDir, err := os.UserHomeDir(); err == nil {
				if found := config.FindConfigFile(homeDir); found != "" {
					configPath = found
				}
			}
		}
	}

	cfg, debugInfo, err := config.LoadWithPrecedence(configPath, &flagConfig, explicitFields(cmd), debugConfig)
	if debugConfig && debugInfo != nil {
		debugInfo.PrintDebugInfo()
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the run logger. Diagnostics go to stderr so they never
// mix with the reconciliation report on stdout.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newClient builds an authenticated Family Link client from the run settings
func newClient(cfg *config.Config, logger *slog.Logger) (*familylink.Client, error) {
	cookies, err := familylink.LoadCookieFile(cfg.CookieFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load cookies from %s: %w", cfg.CookieFile, err)
	}

	opts := []familylink.Option{
		familylink.WithLogger(logger),
		familylink.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, familylink.WithBaseURL(cfg.BaseURL))
	}
	if cfg.AccountID != "" {
		opts = append(opts, familylink.WithAccountID(cfg.AccountID))
	}

	return familylink.NewClient(cookies, opts...)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}

	csvPath := "config.csv"
	if len(args) > 0 {
		csvPath = args[0]
	}

	logger := newLogger(cfg)
	reporter := ui.NewReporter(os.Stdout)
	reporter.SetQuiet(cfg.Quiet)

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	return runReconciliation(cmd.Context(), client, reporter, csvPath, cfg.DryRun)
}

// runReconciliation drives one reconcile-and-apply pass. The schedule is
// parsed before anything goes over the network: a malformed config aborts
// without a fetch. Only a missing config reaches for the live app list, to
// generate the template.
func runReconciliation(ctx context.Context, client *familylink.Client, reporter *ui.Reporter, csvPath string, dryRun bool) error {
	// No schedule yet: write a template listing every app and stop.
	if _, statErr := os.Stat(csvPath); os.IsNotExist(statErr) {
		usage, err := client.AppsAndUsage(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch current state: %w", err)
		}
		titles := make([]string, 0, len(usage.Apps))
		for _, app := range usage.Apps {
			titles = append(titles, app.Title)
		}
		if err := schedule.WriteDefaultFile(csvPath, titles); err != nil {
			return fmt.Errorf("failed to write schedule template: %w", err)
		}
		reporter.ConfigCreated(csvPath)
		return nil
	}

	scheduleCfg, err := schedule.Load(csvPath)
	if err != nil {
		return fmt.Errorf("failed to load schedule %s: %w", csvPath, err)
	}

	usage, err := client.AppsAndUsage(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch current state: %w", err)
	}

	expected := schedule.NewResolver(clockwork.NewRealClock()).Expected(scheduleCfg)
	current := familylink.CurrentAllowances(usage)
	actions := reconcile.Reconcile(expected, current)

	if dryRun {
		reporter.DryRunBanner()
	}
	applier := apply.NewApplier(client, reporter, dryRun)
	stats, applyErr := applier.Apply(ctx, actions)
	reporter.Summary(stats)

	return applyErr
}

func main() {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
