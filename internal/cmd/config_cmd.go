package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dallionking/goldsim/internal/config"
	"github.com/Dallionking/goldsim/internal/tui/styles"
)

// --- config (parent) ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `View and manage goldsim configuration.

When run without subcommands, displays the effective configuration after
defaults, the config file and GOLDSIM_* environment variables are merged.

Subcommands:
  validate   Check the configuration and list every problem
  init       Write a config file with the defaults`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), cfg, config.File())
		return nil
	},
}

func printConfig(w io.Writer, cfg *config.Config, file string) {
	if file == "" {
		file = "(defaults)"
	}
	line := func(label, value string) {
		fmt.Fprintln(w, styles.Label.Render(fmt.Sprintf("  %-14s", label))+styles.Value.Render(value))
	}

	fmt.Fprintln(w, styles.Title.Render("Configuration"))
	fmt.Fprintln(w)
	line("FILE", file)
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Gold("API"))
	line("BASE URL", cfg.API.BaseURL)
	line("SESSION", sessionSummary(cfg.API))
	line("RATE LIMIT", fmt.Sprintf("%.1f/s burst %d", cfg.API.RateLimit, cfg.API.RateLimitBurst))
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Gold("Dashboard"))
	line("END DATE", cfg.Dashboard.EndDate)
	line("UNIT", cfg.Dashboard.Unit)
	line("LOCALE", cfg.Dashboard.Locale)
	line("CHART HEIGHT", fmt.Sprintf("%d", cfg.Dashboard.ChartHeight))
	line("CONTROL FILE", orNone(cfg.Dashboard.ControlFile))
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Gold("Trade form"))
	line("BUY DATE", cfg.Trade.BuyDate)
	line("SELL DATE", cfg.Trade.SellDate)
	line("AMOUNT", cfg.Trade.BuyAmount)
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Gold("Logger"))
	line("LEVEL", cfg.Logger.Level)
	line("FORMAT", cfg.Logger.Format)
	line("FILE", orNone(cfg.Logger.File))
}

// sessionSummary never prints the session value itself.
func sessionSummary(c config.APIConfig) string {
	if c.SessionValue == "" {
		return "none"
	}
	return c.SessionCookie + "=" + strings.Repeat("*", 8)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// --- config validate ---

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		errs := config.Validate(cfg)
		if len(errs) == 0 {
			fmt.Fprintln(w, styles.ProfitText.Render("Configuration is valid"))
			return nil
		}

		for _, e := range errs {
			fmt.Fprintln(w, "  "+styles.ErrorText.Render(e.Field)+"  "+e.Message)
		}
		return fmt.Errorf("%d configuration problem(s)", len(errs))
	},
}

// --- config init ---

var (
	configInitPath  string
	configInitForce bool
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Defaults()
		if err := config.Save(&cfg, configInitPath, configInitForce); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.ProfitText.Render("Wrote")+" "+styles.Value.Render(configInitPath))
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", config.ConfigNames[0], "file to write")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
