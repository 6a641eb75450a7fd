package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dallionking/goldsim/internal/config"
	"github.com/Dallionking/goldsim/internal/format"
	"github.com/Dallionking/goldsim/internal/health"
	"github.com/Dallionking/goldsim/internal/logger"
)

var (
	healthCheck    string
	healthCategory string
	healthJSON     bool
	healthTimeout  time.Duration
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the config, the simulation server and local files",
	Long: `Run diagnostic health checks.

Checks are grouped into categories:
  config   - config file and validation
  server   - quotes and trade endpoints, session cookie
  files    - log file and control file locations

Use --category to run only a specific group, or --check to run a single
named check. Invalid configuration is reported as a failed check rather
than aborting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_ = format.SetLocale(cfg.Dashboard.Locale)

		log, err := logger.NewLogger(cfg.Logger, verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		client := newClient(cfg, log)
		checker := health.NewChecker(cfg, client)
		ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
		defer cancel()

		var report *health.Report
		switch {
		case healthCheck != "":
			report = checker.RunNamed(ctx, healthCheck)
			if report.Total == 0 {
				return fmt.Errorf("unknown check %q (available: %v)", healthCheck, checker.Names())
			}
		case healthCategory != "":
			report = checker.RunCategory(ctx, healthCategory)
		default:
			report = checker.RunAll(ctx)
		}

		if healthJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			target := health.Target{Server: client.BaseURL(), ConfigFile: config.File()}
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report, target))
		}

		if !report.Healthy {
			return fmt.Errorf("%d check(s) failed", report.Failed)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().StringVar(&healthCheck, "check", "", "run a specific named check")
	healthCmd.Flags().StringVar(&healthCategory, "category", "", "run checks in a category: config, server, or files")
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "output the report as JSON")
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 30*time.Second, "overall time limit")
	rootCmd.AddCommand(healthCmd)
}
