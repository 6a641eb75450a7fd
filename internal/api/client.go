// Package api is the HTTP client for the simulation server's quotes and
// trade endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Dallionking/goldsim/internal/config"
	"github.com/Dallionking/goldsim/internal/market"
)

const (
	QuotesPath = "/api/simulation/quotes"
	TradePath  = "/api/simulation/trade"

	// TradeFallbackMessage is shown when a failed trade response carries no
	// usable message.
	TradeFallbackMessage = "시뮬레이션 요청에 실패했습니다."
)

// QuoteQuery selects the quote window. From is optional; when empty the
// server derives it from Unit.
type QuoteQuery struct {
	To   string
	Unit market.Unit
	From string
}

// TradeRequest is the POST body for a simulation. BuyAmount is nil when the
// form value was not a number, which encodes as JSON null.
type TradeRequest struct {
	BuyDate   string   `json:"buyDate"`
	SellDate  string   `json:"sellDate"`
	BuyAmount *float64 `json:"buyAmount"`
}

// HTTPError is returned for a non-2xx quotes response.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string { return fmt.Sprintf("HTTP %d", e.Status) }

// APIError is returned for a non-2xx trade response. Message is the
// server's own message when one was sent, verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client talks to the simulation server. Every request carries the session
// cookie and any cookies the server has set.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewClient creates a Client for cfg.BaseURL. A zero RateLimit disables
// throttling. resty's own warnings go to logger.
func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetJSONUnmarshaler(unmarshalJSON).
		SetLogger(logger.Sugar())

	if jar, err := cookiejar.New(nil); err == nil {
		client.SetCookieJar(jar)
	}
	if cfg.SessionCookie != "" && cfg.SessionValue != "" {
		client.SetCookie(&http.Cookie{Name: cfg.SessionCookie, Value: cfg.SessionValue})
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		client:  client,
		logger:  logger,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// BaseURL returns the server the client is pointed at.
func (c *Client) BaseURL() string { return c.client.BaseURL }

// FetchQuotes loads the rows for q. A null or empty payload yields an empty
// slice.
func (c *Client) FetchQuotes(ctx context.Context, q QuoteQuery) ([]market.Row, error) {
	params := map[string]string{
		"to":   q.To,
		"unit": string(q.Unit),
	}
	if q.From != "" {
		params["from"] = q.From
	}

	var rows []market.Row
	req := c.client.R().
		SetQueryParams(params).
		SetResult(&rows)

	resp, err := c.do(ctx, resty.MethodGet, QuotesPath, req)
	if err != nil {
		if received(resp) {
			return nil, fmt.Errorf("decoding quotes: %w", err)
		}
		return nil, fmt.Errorf("fetching quotes: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("Quotes request rejected", zap.Int("status", resp.StatusCode()))
		return nil, &HTTPError{Status: resp.StatusCode()}
	}
	if rows == nil {
		rows = []market.Row{}
	}

	c.logger.Debug("Quotes loaded",
		zap.String("to", q.To),
		zap.String("unit", string(q.Unit)),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

// RunTrade submits a trade simulation and returns the server's result.
func (c *Client) RunTrade(ctx context.Context, tr TradeRequest) (*market.SimResult, error) {
	var result market.SimResult
	var failure errorBody
	req := c.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(tr).
		SetResult(&result).
		SetError(&failure)

	resp, err := c.do(ctx, resty.MethodPost, TradePath, req)
	if err != nil {
		if received(resp) {
			return nil, fmt.Errorf("decoding trade result: %w", err)
		}
		return nil, fmt.Errorf("running trade simulation: %w", err)
	}
	if resp.IsError() {
		msg := failure.Message
		if msg == "" {
			msg = TradeFallbackMessage
		}
		c.logger.Warn("Trade simulation rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", msg),
		)
		return nil, &APIError{Status: resp.StatusCode(), Message: msg}
	}
	if len(resp.Body()) == 0 {
		return nil, fmt.Errorf("decoding trade result: empty body")
	}

	c.logger.Debug("Trade simulation complete",
		zap.String("buy_date", tr.BuyDate),
		zap.String("sell_date", tr.SellDate),
		zap.Float64("yield_rate", result.YieldRate),
	)
	return &result, nil
}

// errorBody is the JSON shape of a rejected trade.
type errorBody struct {
	Message string `json:"message"`
}

// do waits for the limiter and executes req once. Bodies are parsed as JSON
// whatever Content-Type the server sends. There is no retry: the user
// re-triggers the action instead.
func (c *Client) do(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
	return req.
		SetContext(ctx).
		ForceContentType("application/json").
		Execute(method, url)
}

// received reports whether resp carries a server response, which makes an
// accompanying error a body parse failure rather than a transport one.
func received(resp *resty.Response) bool {
	return resp != nil && resp.RawResponse != nil
}

// unmarshalJSON treats an empty body like JSON null.
func unmarshalJSON(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
