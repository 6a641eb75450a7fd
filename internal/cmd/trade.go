package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dallionking/goldsim/internal/api"
	"github.com/Dallionking/goldsim/internal/config"
	"github.com/Dallionking/goldsim/internal/dashboard"
	"github.com/Dallionking/goldsim/internal/format"
	"github.com/Dallionking/goldsim/internal/market"
	"github.com/Dallionking/goldsim/internal/tui/styles"
)

var (
	tradeBuy    string
	tradeSell   string
	tradeAmount string
	tradeJSON   bool
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Simulate buying gold on one day and selling on another",
	Long: `Submit a trade simulation to the server and print the result.

Unset flags fall back to the trade defaults in the config. The amount is
sent as typed: blank means 0 and a non-number is sent as null, leaving
the server to reject it.`,
	Example: `  goldsim trade --buy 2024-01-02 --sell 2024-06-28 --amount 1000000
  goldsim trade --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		client := newClient(cfg, log)
		req, res, err := simulate(cmd.Context(), client, tradeForm(cmd, cfg))
		if err != nil {
			log.Warn("Trade simulation failed", zap.Error(err))
			return err
		}

		if tradeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		out, err := renderMarkdown(tradeReport(req, res))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// tradeForm merges the trade flags set on cmd over the configured form
// defaults. An explicitly empty --amount is kept, so it is sent as 0.
func tradeForm(cmd *cobra.Command, cfg *config.Config) dashboard.TradeForm {
	form := dashboard.TradeForm{
		BuyDate:   cfg.Trade.BuyDate,
		SellDate:  cfg.Trade.SellDate,
		BuyAmount: cfg.Trade.BuyAmount,
	}
	flags := cmd.Flags()
	if flags.Changed("buy") {
		form.BuyDate = tradeBuy
	}
	if flags.Changed("sell") {
		form.SellDate = tradeSell
	}
	if flags.Changed("amount") {
		form.BuyAmount = tradeAmount
	}
	return form
}

// simulate runs one submit cycle through a TradeRunner so the CLI reports
// errors with the same messages as the dashboard.
func simulate(ctx context.Context, sim dashboard.Simulator, form dashboard.TradeForm) (api.TradeRequest, *market.SimResult, error) {
	runner := dashboard.NewTradeRunner(form)
	sub := runner.Begin()
	res, err := sim.RunTrade(ctx, sub.Request)
	runner.Finish(sub.ID, res, err)

	if runner.Err != "" {
		return sub.Request, nil, errors.New(runner.Err)
	}
	return sub.Request, runner.Result, nil
}

// tradeReport renders a simulation result as markdown.
func tradeReport(req api.TradeRequest, res *market.SimResult) string {
	var b strings.Builder

	b.WriteString("# 시뮬레이션 결과\n\n")
	b.WriteString("| 항목 | 값 |\n|---|---:|\n")
	row := func(k, v string) { fmt.Fprintf(&b, "| %s | %s |\n", k, v) }
	row("매수일", req.BuyDate)
	row("매도일", req.SellDate)
	row("매수금액", format.Int(res.BuyAmount)+"원")
	row("매수가", format.OneDecimal(res.BuyPrice)+" 원/g")
	row("매도가", format.OneDecimal(res.SellPrice)+" 원/g")
	row("매입량", format.TwoDecimal(res.PurchasedGrams)+" g")
	row("최종 금액", format.Int(res.FinalValue)+"원")
	row("총 손익", format.Signed(res.TotalProfitLoss)+"원")
	row("수익률", format.Signed(res.YieldRate)+"%")

	if h := res.PortfolioHistory; len(h) > 0 {
		lo, hi := h[0].Value, h[0].Value
		values := make([]*float64, len(h))
		for i, p := range h {
			values[i] = market.Float(p.Value)
			lo, hi = min(lo, p.Value), max(hi, p.Value)
		}
		b.WriteString("\n## 포트폴리오 가치\n\n")
		fmt.Fprintf(&b, "%s ~ %s, %d일\n\n", h[0].Date, h[len(h)-1].Date, len(h))
		fmt.Fprintf(&b, "- 최저: %s\n- 최고: %s\n\n", format.Manwon(lo), format.Manwon(hi))
		fmt.Fprintf(&b, "`%s`\n", styles.SparkGlyphs(values, 40))
	}
	return b.String()
}

// renderMarkdown renders md for the terminal, or as plain text when color
// is disabled.
func renderMarkdown(md string) (string, error) {
	style := glamour.WithAutoStyle()
	if noColor {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

func init() {
	tradeCmd.Flags().StringVar(&tradeBuy, "buy", "", "buy date YYYY-MM-DD")
	tradeCmd.Flags().StringVar(&tradeSell, "sell", "", "sell date YYYY-MM-DD")
	tradeCmd.Flags().StringVar(&tradeAmount, "amount", "", "buy amount in won")
	tradeCmd.Flags().BoolVar(&tradeJSON, "json", false, "print the raw result as JSON")
	rootCmd.AddCommand(tradeCmd)
}
