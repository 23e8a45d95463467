package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"famlink/pkg/familylink"
)

// withClient loads configuration and runs fn with an authenticated client.
// Shared by every subcommand that talks to the service.
func withClient(cmd *cobra.Command, fn func(*familylink.Client, *slog.Logger) error) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	return fn(client, logger)
}

// createUsageCommand reports the account's restriction state and today's
// screen time per app.
func createUsageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show app limits and today's screen time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(client *familylink.Client, _ *slog.Logger) error {
				usage, err := client.AppsAndUsage(cmd.Context())
				if err != nil {
					return err
				}
				printUsageReport(cmd.OutOrStdout(), usage, time.Now())
				return nil
			})
		},
	}
}

// printUsageReport writes the usage report: limited, blocked and
// always-allowed apps, then today's per-app screen time sorted descending.
func printUsageReport(w io.Writer, usage *familylink.AppUsage, now time.Time) {
	apps := make([]familylink.App, len(usage.Apps))
	copy(apps, usage.Apps)
	sort.Slice(apps, func(i, j int) bool { return apps[i].Title < apps[j].Title })

	section(w, "Limited apps")
	for _, app := range apps {
		if limit := app.SupervisionSetting.UsageLimit; limit != nil {
			fmt.Fprintf(w, "%s: %d minutes\n", app.Title, limit.DailyUsageLimitMins)
		}
	}

	section(w, "Blocked apps")
	for _, app := range apps {
		if app.SupervisionSetting.Hidden {
			fmt.Fprintln(w, app.Title)
		}
	}

	section(w, "Always allowed apps")
	for _, app := range apps {
		if app.SupervisionSetting.AlwaysAllowedAppInfo.Enabled() {
			fmt.Fprintln(w, app.Title)
		}
	}

	section(w, "Usage per app (today)")
	var today []familylink.AppUsageSession
	for _, session := range usage.AppUsageSessions {
		if session.Date.On(now) {
			today = append(today, session)
		}
	}
	sort.Slice(today, func(i, j int) bool { return today[i].Seconds() > today[j].Seconds() })

	for _, session := range today {
		total := int(session.Seconds())
		title := usage.AppTitle(session.AppID.AndroidAppPackageName)
		fmt.Fprintf(w, "%s: %02d:%02d:%02d\n", title, total/3600, (total%3600)/60, total%60)
	}
}

func section(w io.Writer, title string) {
	rule := strings.Repeat("-", 30)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

// createMembersCommand lists family members, flagging supervised accounts
func createMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List family members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(client *familylink.Client, _ *slog.Logger) error {
				resp, err := client.Members(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, member := range resp.Members {
					marker := ""
					if member.Supervised() {
						marker = " (supervised)"
					}
					name := member.Profile.DisplayName
					if name == "" {
						name = member.Profile.Email
					}
					fmt.Fprintf(w, "%s  %s  %s%s\n", member.UserID, member.Role, name, marker)
				}
				return nil
			})
		},
	}
}

// createDevicesCommand lists devices linked to the supervised account
func createDevicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the supervised account's devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(client *familylink.Client, _ *slog.Logger) error {
				usage, err := client.AppsAndUsage(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, device := range usage.DeviceInfo {
					fmt.Fprintf(w, "%s  %s (%s)  last active %s\n",
						device.DeviceID,
						device.DisplayInfo.FriendlyName,
						device.DisplayInfo.Model,
						formatMillis(device.DisplayInfo.LastActivityTimeMillis))
				}
				return nil
			})
		},
	}
}

// formatMillis renders a unix-millisecond timestamp string, or "unknown".
func formatMillis(millis string) string {
	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil || ms <= 0 {
		return "unknown"
	}
	return time.UnixMilli(ms).Format(time.RFC3339)
}

func createLockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lock <device>",
		Short: "Lock a device by id or friendly name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(client *familylink.Client, _ *slog.Logger) error {
				if err := client.LockDevice(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Locked %q\n", args[0])
				return nil
			})
		},
	}
}

func createUnlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <device>",
		Short: "Unlock a device by id or friendly name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(client *familylink.Client, _ *slog.Logger) error {
				if err := client.UnlockDevice(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %q\n", args[0])
				return nil
			})
		},
	}
}
