package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dallionking/goldsim/internal/api"
	"github.com/Dallionking/goldsim/internal/config"
	"github.com/Dallionking/goldsim/internal/control"
	"github.com/Dallionking/goldsim/internal/dashboard"
	"github.com/Dallionking/goldsim/internal/market"
	"github.com/Dallionking/goldsim/internal/tui/models"
	"github.com/Dallionking/goldsim/internal/tui/views"
)

var (
	dashTo          string
	dashUnit        string
	dashOnce        bool
	dashJSON        bool
	dashWidth       int
	dashControlFile string
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Open the quote and trade simulation dashboard",
	Long: `Launch the interactive dashboard TUI.

Shows the won/dollar rate, VIX and gold ETF volume on a shared 0-500
scale, the gold price against its forecast, and the trade simulation form.

The end date is clamped to the data window (2015-01-01 .. 2024-12-31).
With a control file configured, writing a date to it moves the dashboard.

Flags:
  --once   print a single frame and exit (no TUI)
  --json   print the fetched and scaled rows as JSON (implies --once)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// JSON implies once.
		if dashJSON {
			dashOnce = true
		}

		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		endDate, unit, err := windowFlags(cfg, dashTo, dashUnit)
		if err != nil {
			return err
		}
		client := newClient(cfg, log)

		if dashJSON {
			return printQuotesJSON(cmd, client, endDate, unit)
		}

		opts := models.DashboardOptions{
			Fetcher:   client,
			Simulator: client,
			Logger:    log,
			Host:      client.BaseURL(),
			EndDate:   endDate,
			Unit:      unit,
			Form: dashboard.TradeForm{
				BuyDate:   cfg.Trade.BuyDate,
				SellDate:  cfg.Trade.SellDate,
				BuyAmount: cfg.Trade.BuyAmount,
			},
			ChartHeight: cfg.Dashboard.ChartHeight,
		}

		if dashOnce {
			frame, err := views.RenderOnce(cmd.Context(), opts, dashWidth)
			fmt.Fprintln(cmd.OutOrStdout(), frame)
			return err
		}

		controlFile := cfg.Dashboard.ControlFile
		if dashControlFile != "" {
			controlFile = dashControlFile
		}
		log.Info("Starting dashboard",
			zap.String("server", client.BaseURL()),
			zap.String("end_date", endDate),
			zap.String("unit", string(unit)),
		)
		return views.RunDashboard(cmd.Context(), views.RunOptions{
			Model:       opts,
			Handle:      control.NewHandle(),
			ControlFile: controlFile,
			Logger:      log,
		})
	},
}

// windowFlags resolves the end date and unit from flags, falling back to
// the configured defaults.
func windowFlags(cfg *config.Config, to, unit string) (string, market.Unit, error) {
	if to == "" {
		to = cfg.Dashboard.EndDate
	}
	if unit == "" {
		unit = cfg.Dashboard.Unit
	}
	u, err := market.ParseUnit(unit)
	if err != nil {
		return "", "", err
	}
	return to, u, nil
}

// fetchWindow loads one quote window through a QuoteLoader so the CLI
// clamps and queries exactly like the dashboard does.
func fetchWindow(ctx context.Context, f dashboard.Fetcher, endDate string, unit market.Unit) (*dashboard.QuoteLoader, error) {
	loader := dashboard.NewQuoteLoader(endDate, unit)
	req := loader.Begin()
	rows, err := f.FetchQuotes(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("fetching quotes: %w", err)
	}
	loader.Finish(req.ID, rows, nil)
	return loader, nil
}

// quotesSnapshot is the --json output of the dashboard command.
type quotesSnapshot struct {
	Server string             `json:"server"`
	To     string             `json:"to"`
	Unit   market.Unit        `json:"unit"`
	Range  string             `json:"range"`
	Rows   []market.Row       `json:"rows"`
	Scaled []market.ScaledRow `json:"scaled"`
}

func printQuotesJSON(cmd *cobra.Command, client *api.Client, endDate string, unit market.Unit) error {
	loader, err := fetchWindow(cmd.Context(), client, endDate, unit)
	if err != nil {
		return err
	}

	s := quotesSnapshot{
		Server: client.BaseURL(),
		To:     market.ClampEndDate(endDate),
		Unit:   unit,
		Range:  market.RangeText(loader.Rows),
		Rows:   loader.Rows,
		Scaled: loader.Scaled(),
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func init() {
	dashboardCmd.Flags().StringVar(&dashTo, "to", "", "end date YYYY-MM-DD (default from config)")
	dashboardCmd.Flags().StringVar(&dashUnit, "unit", "", "time unit: 10y, 5y, 1y, 3m, 1m, 1w (default from config)")
	dashboardCmd.Flags().BoolVar(&dashOnce, "once", false, "print a single frame and exit")
	dashboardCmd.Flags().BoolVar(&dashJSON, "json", false, "print rows as JSON (implies --once)")
	dashboardCmd.Flags().IntVar(&dashWidth, "width", 120, "frame width for --once")
	dashboardCmd.Flags().StringVar(&dashControlFile, "control-file", "", "file whose first line sets the end date")
	rootCmd.AddCommand(dashboardCmd)
}
