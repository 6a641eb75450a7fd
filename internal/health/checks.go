package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Dallionking/goldsim/internal/api"
	"github.com/Dallionking/goldsim/internal/config"
	"github.com/Dallionking/goldsim/internal/dashboard"
	"github.com/Dallionking/goldsim/internal/market"
)

// registerChecks registers the checks in display order.
func (c *Checker) registerChecks() {
	c.add("config-valid", CategoryConfig, c.checkConfigValid)
	c.add("config-file", CategoryConfig, c.checkConfigFile)

	c.add("quotes-endpoint", CategoryServer, c.checkQuotes)
	c.add("trade-endpoint", CategoryServer, c.checkTrade)
	c.add("session-cookie", CategoryServer, c.checkSession)

	c.add("log-file", CategoryFiles, c.checkLogFile)
	c.add("control-file", CategoryFiles, c.checkControlFile)
}

// ---------------------------------------------------------------------------
// Config checks
// ---------------------------------------------------------------------------

func (c *Checker) checkConfigValid(_ context.Context) CheckResult {
	errs := config.Validate(c.cfg)
	if len(errs) == 0 {
		return CheckResult{Status: StatusPass, Message: "no problems"}
	}
	msg := errs[0].Error()
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (+%d more)", msg, len(errs)-1)
	}
	return CheckResult{Status: StatusFail, Message: msg}
}

func (c *Checker) checkConfigFile(_ context.Context) CheckResult {
	file := config.File()
	if file == "" {
		return CheckResult{Status: StatusWarn, Message: "no config file, running on defaults"}
	}
	return CheckResult{Status: StatusPass, Message: file}
}

// ---------------------------------------------------------------------------
// Server checks
// ---------------------------------------------------------------------------

// checkQuotes requests the narrowest window at the configured end date.
func (c *Checker) checkQuotes(ctx context.Context) CheckResult {
	if c.server == nil {
		return CheckResult{Status: StatusWarn, Message: "skipped, no client"}
	}
	q := api.QuoteQuery{To: market.ClampEndDate(c.cfg.Dashboard.EndDate), Unit: market.Unit1W}
	rows, err := c.server.FetchQuotes(ctx, q)
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	if len(rows) == 0 {
		return CheckResult{Status: StatusWarn, Message: "reachable, but no rows up to " + q.To}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d rows, %s", len(rows), market.RangeText(rows))}
}

// checkTrade submits the configured form defaults. A server-side rejection
// still proves the endpoint is there, so only transport and HTTP failures
// without a message fail the check.
func (c *Checker) checkTrade(ctx context.Context) CheckResult {
	if c.server == nil {
		return CheckResult{Status: StatusWarn, Message: "skipped, no client"}
	}
	req := api.TradeRequest{
		BuyDate:   c.cfg.Trade.BuyDate,
		SellDate:  c.cfg.Trade.SellDate,
		BuyAmount: dashboard.ParseAmount(c.cfg.Trade.BuyAmount),
	}
	res, err := c.server.RunTrade(ctx, req)

	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != api.TradeFallbackMessage:
		return CheckResult{Status: StatusWarn, Message: "rejected defaults: " + apiErr.Message}
	case err != nil:
		return CheckResult{Status: StatusFail, Message: err.Error()}
	case res == nil:
		return CheckResult{Status: StatusFail, Message: "empty response"}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("yield %.2f%% on defaults", res.YieldRate)}
}

func (c *Checker) checkSession(_ context.Context) CheckResult {
	if c.cfg.API.SessionValue == "" {
		return CheckResult{Status: StatusWarn, Message: "no session cookie configured"}
	}
	return CheckResult{Status: StatusPass, Message: "sending " + c.cfg.API.SessionCookie}
}

// ---------------------------------------------------------------------------
// File checks
// ---------------------------------------------------------------------------

func (c *Checker) checkLogFile(_ context.Context) CheckResult {
	path := c.cfg.Logger.File
	if path == "" {
		return CheckResult{Status: StatusWarn, Message: "logging to stderr, the TUI will draw over it"}
	}
	if err := writableDir(filepath.Dir(path)); err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	return CheckResult{Status: StatusPass, Message: path}
}

func (c *Checker) checkControlFile(_ context.Context) CheckResult {
	path := c.cfg.Dashboard.ControlFile
	if path == "" {
		return CheckResult{Status: StatusPass, Message: "not configured"}
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return CheckResult{Status: StatusFail, Message: "directory missing: " + dir}
	}
	if !info.IsDir() {
		return CheckResult{Status: StatusFail, Message: dir + " is not a directory"}
	}
	return CheckResult{Status: StatusPass, Message: path}
}

// writableDir reports whether files can be created in dir, creating it if
// needed.
func writableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create %s", dir)
	}
	f, err := os.CreateTemp(dir, ".goldsim-health-*")
	if err != nil {
		return fmt.Errorf("%s is not writable", dir)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
