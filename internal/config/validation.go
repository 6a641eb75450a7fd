package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/Dallionking/goldsim/internal/market"
)

// ValidationError describes a single config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Validate checks the Config for completeness and consistency. It returns a
// slice of all discovered issues rather than stopping at the first one.
//
// Trade dates and amount are deliberately not cross-checked: the server is
// the authority on what a valid simulation is.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	// --- API ---
	if cfg.API.BaseURL == "" {
		errs = append(errs, ValidationError{Field: "api.baseUrl", Message: "required field is empty"})
	} else if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.baseUrl",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", cfg.API.BaseURL),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{
			Field:   "api.baseUrl",
			Message: fmt.Sprintf("unsupported scheme %q", u.Scheme),
		})
	}
	if cfg.API.SessionValue != "" && cfg.API.SessionCookie == "" {
		errs = append(errs, ValidationError{
			Field:   "api.sessionCookie",
			Message: "cookie name is required when sessionValue is set",
		})
	}
	if cfg.API.RateLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.rateLimit",
			Message: fmt.Sprintf("must be >= 0, got %.2f", cfg.API.RateLimit),
		})
	}
	if cfg.API.RateLimit > 0 && cfg.API.RateLimitBurst <= 0 {
		errs = append(errs, ValidationError{
			Field:   "api.rateLimitBurst",
			Message: fmt.Sprintf("must be > 0 when rateLimit is set, got %d", cfg.API.RateLimitBurst),
		})
	}

	// --- Dashboard ---
	if _, err := market.ParseUnit(cfg.Dashboard.Unit); err != nil {
		errs = append(errs, ValidationError{Field: "dashboard.unit", Message: err.Error()})
	}
	if !market.ValidDate(cfg.Dashboard.EndDate) {
		errs = append(errs, ValidationError{
			Field:   "dashboard.endDate",
			Message: fmt.Sprintf("must be YYYY-MM-DD, got %q", cfg.Dashboard.EndDate),
		})
	}
	if _, err := language.Parse(cfg.Dashboard.Locale); err != nil {
		errs = append(errs, ValidationError{
			Field:   "dashboard.locale",
			Message: fmt.Sprintf("invalid locale %q", cfg.Dashboard.Locale),
		})
	}
	if cfg.Dashboard.ChartHeight < 4 {
		errs = append(errs, ValidationError{
			Field:   "dashboard.chartHeight",
			Message: fmt.Sprintf("must be >= 4, got %d", cfg.Dashboard.ChartHeight),
		})
	}

	// --- Trade form defaults ---
	dates := []struct{ field, value string }{
		{"trade.buyDate", cfg.Trade.BuyDate},
		{"trade.sellDate", cfg.Trade.SellDate},
	}
	for _, d := range dates {
		if d.value != "" && !market.ValidDate(d.value) {
			errs = append(errs, ValidationError{Field: d.field, Message: fmt.Sprintf("must be YYYY-MM-DD, got %q", d.value)})
		}
	}
	if amt := strings.TrimSpace(cfg.Trade.BuyAmount); amt != "" {
		if _, err := strconv.ParseFloat(amt, 64); err != nil {
			errs = append(errs, ValidationError{
				Field:   "trade.buyAmount",
				Message: fmt.Sprintf("must be numeric, got %q", cfg.Trade.BuyAmount),
			})
		}
	}

	// --- Logger ---
	if _, err := zapcore.ParseLevel(cfg.Logger.Level); err != nil {
		errs = append(errs, ValidationError{Field: "logger.level", Message: err.Error()})
	}
	switch cfg.Logger.Format {
	case "json", "console":
	default:
		errs = append(errs, ValidationError{
			Field:   "logger.format",
			Message: fmt.Sprintf("must be \"json\" or \"console\", got %q", cfg.Logger.Format),
		})
	}

	return errs
}
