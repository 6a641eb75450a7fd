package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dallionking/goldsim/internal/chart"
)

var (
	chartOut    string
	chartTo     string
	chartUnit   string
	chartWidth  int
	chartHeight int
)

var chartCmd = &cobra.Command{
	Use:       "chart [overlay|gold|portfolio]",
	Short:     "Export a dashboard chart as PNG",
	ValidArgs: []string{"overlay", "gold", "portfolio"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Render one of the dashboard charts to a PNG file.

  overlay     FX rate, VIX and ETF volume on the shared 0-500 scale
  gold        gold close against the forecast close
  portfolio   portfolio value of a trade simulation (uses the trade flags)`,
	Example: `  goldsim chart overlay --unit 1y --out overlay.png
  goldsim chart portfolio --buy 2024-01-02 --sell 2024-06-28 --out trade.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]

		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		client := newClient(cfg, log)
		size := chart.Size{Width: chartWidth, Height: chartHeight}

		var png []byte
		switch kind {
		case "portfolio":
			_, res, err := simulate(cmd.Context(), client, tradeForm(cmd, cfg))
			if err != nil {
				return err
			}
			png, err = chart.Portfolio(res.PortfolioHistory, size)
			if err != nil {
				return chartError(kind, err)
			}
		default:
			endDate, unit, err := windowFlags(cfg, chartTo, chartUnit)
			if err != nil {
				return err
			}
			loader, err := fetchWindow(cmd.Context(), client, endDate, unit)
			if err != nil {
				return err
			}
			if kind == "gold" {
				png, err = chart.Gold(loader.Rows, unit, size)
			} else {
				png, err = chart.Overlay(loader.Rows, unit, size)
			}
			if err != nil {
				return chartError(kind, err)
			}
		}

		out := chartOut
		if out == "" {
			out = kind + ".png"
		}
		if err := os.WriteFile(out, png, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		log.Info("Chart written", zap.String("chart", kind), zap.String("path", out), zap.Int("bytes", len(png)))
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func chartError(kind string, err error) error {
	if errors.Is(err, chart.ErrNoData) {
		return fmt.Errorf("%s chart: nothing to plot for this window", kind)
	}
	return fmt.Errorf("rendering %s chart: %w", kind, err)
}

func init() {
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "", "output file (default <chart>.png)")
	chartCmd.Flags().StringVar(&chartTo, "to", "", "end date YYYY-MM-DD (default from config)")
	chartCmd.Flags().StringVar(&chartUnit, "unit", "", "time unit: 10y, 5y, 1y, 3m, 1m, 1w (default from config)")
	chartCmd.Flags().IntVar(&chartWidth, "width", chart.DefaultSize.Width, "image width in pixels")
	chartCmd.Flags().IntVar(&chartHeight, "height", chart.DefaultSize.Height, "image height in pixels")
	chartCmd.Flags().StringVar(&tradeBuy, "buy", "", "buy date for the portfolio chart")
	chartCmd.Flags().StringVar(&tradeSell, "sell", "", "sell date for the portfolio chart")
	chartCmd.Flags().StringVar(&tradeAmount, "amount", "", "buy amount for the portfolio chart")
	rootCmd.AddCommand(chartCmd)
}
