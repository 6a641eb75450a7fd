package dashboard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Dallionking/goldsim/internal/api"
	"github.com/Dallionking/goldsim/internal/config"
	"github.com/Dallionking/goldsim/internal/market"
)

type emptyErr struct{}

func (emptyErr) Error() string { return "" }

func rowsFor(dates ...string) []market.Row {
	rows := make([]market.Row, 0, len(dates))
	for i, d := range dates {
		rows = append(rows, market.Row{Date: d, GoldClose: market.Float(float64(100 + i))})
	}
	return rows
}

func TestQuoteLoader_BeginClampsEndDate(t *testing.T) {
	l := NewQuoteLoader("2030-05-01", market.Unit1Y)
	req := l.Begin()

	assert.True(t, l.Loading)
	assert.Equal(t, "2024-12-31", req.Query.To)
	assert.Equal(t, market.Unit1Y, req.Query.Unit)
	assert.Equal(t, "2030-05-01", l.EndDate, "displayed end date is left as entered")
}

func TestQuoteLoader_Success(t *testing.T) {
	l := NewQuoteLoader("2024-12-31", market.Unit1M)
	assert.NotNil(t, l.Rows)

	req := l.Begin()
	ok := l.Finish(req.ID, rowsFor("2024-12-30", "2024-12-31"), nil)

	require.True(t, ok)
	assert.False(t, l.Loading)
	assert.Empty(t, l.Err)
	assert.Len(t, l.Rows, 2)
	assert.Len(t, l.Scaled(), 2)
}

func TestQuoteLoader_NilRowsBecomeEmpty(t *testing.T) {
	l := NewQuoteLoader("2024-12-31", market.Unit1M)
	req := l.Begin()
	l.Finish(req.ID, nil, nil)

	assert.NotNil(t, l.Rows)
	assert.Empty(t, l.Rows)
}

func TestQuoteLoader_ErrorKeepsRows(t *testing.T) {
	l := NewQuoteLoader("2024-12-31", market.Unit1M)
	first := l.Begin()
	l.Finish(first.ID, rowsFor("2024-12-31"), nil)

	second := l.Begin()
	assert.Empty(t, l.Err, "begin clears the previous error")
	l.Finish(second.ID, nil, errors.New("HTTP 500"))

	assert.False(t, l.Loading)
	assert.Equal(t, "HTTP 500", l.Err)
	assert.Len(t, l.Rows, 1)
}

func TestQuoteLoader_ErrorFallbackMessage(t *testing.T) {
	l := NewQuoteLoader("2024-12-31", market.Unit1M)
	req := l.Begin()
	l.Finish(req.ID, nil, emptyErr{})

	assert.Equal(t, LoadFallbackMessage, l.Err)
}

func TestQuoteLoader_LastRequestWins(t *testing.T) {
	l := NewQuoteLoader("2024-12-31", market.Unit1M)

	first := l.Begin()
	require.True(t, l.SetUnit(market.Unit1W))
	second := l.Begin()

	// The newer response arrives first, then the stale one.
	assert.True(t, l.Finish(second.ID, rowsFor("a", "b", "c"), nil))
	assert.False(t, l.Finish(first.ID, rowsFor("x"), nil))

	assert.Len(t, l.Rows, 3)
	assert.False(t, l.Loading)
	assert.True(t, l.Latest(second.ID))
	assert.False(t, l.Latest(first.ID))
}

func TestQuoteLoader_StaleDoesNotClearLoading(t *testing.T) {
	l := NewQuoteLoader("2024-12-31", market.Unit1M)
	first := l.Begin()
	l.Begin()

	assert.False(t, l.Finish(first.ID, rowsFor("x"), nil))
	assert.True(t, l.Loading)
	assert.Empty(t, l.Rows)
}

func TestQuoteLoader_Setters(t *testing.T) {
	l := NewQuoteLoader("2024-12-31", market.Unit1M)

	assert.False(t, l.SetEndDate("2024-12-31"))
	assert.True(t, l.SetEndDate("2023-06-30"))
	assert.False(t, l.SetUnit(market.Unit1M))
	assert.True(t, l.SetUnit(market.Unit10Y))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", market.Float(0)},
		{"   ", market.Float(0)},
		{"1000000", market.Float(1000000)},
		{" 2500.5 ", market.Float(2500.5)},
		{"-10", market.Float(-10)},
		{"1e3", market.Float(1000)},
		{"0x10", market.Float(16)},
		{"0b101", market.Float(5)},
		{"0o17", market.Float(15)},
		{"0x1p4", nil},
		{"abc", nil},
		{"1,000", nil},
		{"1_000", nil},
		{"NaN", nil},
		{"Infinity", nil},
		{"-Inf", nil},
		{"inf", nil},
		{"1e400", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseAmount(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestTradeRunner_NonFiniteAmountReachesServerAsNull(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(raw))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"매수금액을 입력하세요."}`))
	}))
	t.Cleanup(srv.Close)
	client := api.NewClient(config.APIConfig{BaseURL: srv.URL}, zap.NewNop())

	for _, amount := range []string{"NaN", "Infinity", "inf"} {
		r := NewTradeRunner(TradeForm{BuyDate: "2024-01-02", SellDate: "2024-01-31", BuyAmount: amount})
		sub := r.Begin()
		res, err := client.RunTrade(context.Background(), sub.Request)
		require.True(t, r.Finish(sub.ID, res, err))
		assert.Equal(t, "매수금액을 입력하세요.", r.Err, amount)
	}

	require.Len(t, bodies, 3)
	for _, b := range bodies {
		assert.JSONEq(t, `{"buyDate":"2024-01-02","sellDate":"2024-01-31","buyAmount":null}`, b)
	}
}

func TestTradeRunner_BeginBuildsRequest(t *testing.T) {
	r := NewTradeRunner(TradeForm{BuyDate: "2024-01-02", SellDate: "2024-01-31", BuyAmount: "1000000"})
	r.Err = "old"
	r.Result = &market.SimResult{YieldRate: 1}

	sub := r.Begin()

	assert.True(t, r.Submitting)
	assert.Empty(t, r.Err)
	assert.Nil(t, r.Result)
	assert.Equal(t, "2024-01-02", sub.Request.BuyDate)
	assert.Equal(t, "2024-01-31", sub.Request.SellDate)
	require.NotNil(t, sub.Request.BuyAmount)
	assert.Equal(t, 1000000.0, *sub.Request.BuyAmount)
}

func TestTradeRunner_NoOrderingChecks(t *testing.T) {
	r := NewTradeRunner(TradeForm{BuyDate: "2024-02-01", SellDate: "2024-01-01", BuyAmount: "x"})
	sub := r.Begin()

	assert.Equal(t, api.TradeRequest{BuyDate: "2024-02-01", SellDate: "2024-01-01"}, sub.Request)
}

func TestTradeRunner_Success(t *testing.T) {
	r := NewTradeRunner(TradeForm{})
	sub := r.Begin()
	res := &market.SimResult{YieldRate: 3, TotalProfitLoss: 30000, FinalValue: 1030000}

	require.True(t, r.Finish(sub.ID, res, nil))
	assert.False(t, r.Submitting)
	assert.Empty(t, r.Err)
	assert.Same(t, res, r.Result)
}

func TestTradeRunner_Error(t *testing.T) {
	r := NewTradeRunner(TradeForm{})
	sub := r.Begin()

	r.Finish(sub.ID, nil, &api.APIError{Status: 400, Message: "잘못된 요청"})
	assert.Equal(t, "잘못된 요청", r.Err)
	assert.Nil(t, r.Result)

	sub = r.Begin()
	r.Finish(sub.ID, nil, emptyErr{})
	assert.Equal(t, api.TradeFallbackMessage, r.Err)
}

func TestTradeRunner_LatestSubmissionWins(t *testing.T) {
	r := NewTradeRunner(TradeForm{})
	first := r.Begin()
	second := r.Begin()

	assert.False(t, r.Finish(first.ID, &market.SimResult{YieldRate: 1}, nil))
	assert.True(t, r.Submitting)

	assert.True(t, r.Finish(second.ID, nil, errors.New("boom")))
	assert.Nil(t, r.Result)
	assert.Equal(t, "boom", r.Err)
}
