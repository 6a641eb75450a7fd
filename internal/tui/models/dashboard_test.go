package models

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/goldsim/internal/api"
	"github.com/Dallionking/goldsim/internal/dashboard"
	"github.com/Dallionking/goldsim/internal/market"
)

// stubServer implements both dashboard.Fetcher and dashboard.Simulator.
type stubServer struct {
	rows     map[market.Unit][]market.Row
	fetchErr error
	queries  []api.QuoteQuery

	result   *market.SimResult
	tradeErr error
	trades   []api.TradeRequest
}

func (s *stubServer) FetchQuotes(_ context.Context, q api.QuoteQuery) ([]market.Row, error) {
	s.queries = append(s.queries, q)
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.rows[q.Unit], nil
}

func (s *stubServer) RunTrade(_ context.Context, tr api.TradeRequest) (*market.SimResult, error) {
	s.trades = append(s.trades, tr)
	return s.result, s.tradeErr
}

func sampleRows() []market.Row {
	return []market.Row{
		{Date: "2024-12-30", FXRate: market.Float(1472.5), VIX: market.Float(17.4), ETFVolume: market.Float(120345), GoldClose: market.Float(125000), PredClose: market.Float(124800)},
		{Date: "2024-12-31", FXRate: market.Float(1470), VIX: market.Float(16.9), ETFVolume: market.Float(110000), GoldClose: market.Float(125800)},
	}
}

func newTestModel(srv *stubServer) DashboardModel {
	m := NewDashboardModel(DashboardOptions{
		Fetcher:   srv,
		Simulator: srv,
		Host:      "http://localhost:8080",
		EndDate:   "2024-12-31",
		Unit:      market.Unit1M,
		Form: dashboard.TradeForm{
			BuyDate:   "2024-01-02",
			SellDate:  "2024-01-31",
			BuyAmount: "1000000",
		},
		ChartHeight: 6,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	return next.(DashboardModel)
}

// collect runs cmd and any batched commands, returning the messages of
// interest to the dashboard. Spinner ticks are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
	case quotesLoadedMsg, tradeDoneMsg, fetchMsg:
		out = append(out, msg)
	}
	return out
}

// drive feeds msg to m and then every resulting dashboard message.
func drive(t *testing.T, m DashboardModel, msg tea.Msg) DashboardModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(DashboardModel)
	for _, follow := range collect(cmd) {
		m = drive(t, m, follow)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m DashboardModel, msgs ...tea.KeyMsg) DashboardModel {
	for _, k := range msgs {
		next, _ := m.Update(k)
		m = next.(DashboardModel)
	}
	return m
}

func TestDashboard_InitialFetch(t *testing.T) {
	srv := &stubServer{rows: map[market.Unit][]market.Row{market.Unit1M: sampleRows()}}
	m := newTestModel(srv)

	next, cmd := m.Update(m.Init()())
	m = next.(DashboardModel)
	assert.True(t, m.Loader().Loading)
	assert.Contains(t, m.View(), LoadingText)

	for _, msg := range collect(cmd) {
		m = drive(t, m, msg)
	}

	require.Len(t, srv.queries, 1)
	assert.Equal(t, api.QuoteQuery{To: "2024-12-31", Unit: market.Unit1M}, srv.queries[0])
	assert.False(t, m.Loader().Loading)
	assert.Len(t, m.Loader().Rows, 2)

	view := m.View()
	assert.NotContains(t, view, LoadingText)
	assert.Contains(t, view, "2024-12-30 ~ 2024-12-31")
	assert.Contains(t, view, "관련 뉴스")
	assert.Contains(t, view, "뉴스 없음")
}

func TestDashboard_EmptyRows(t *testing.T) {
	srv := &stubServer{rows: map[market.Unit][]market.Row{}}
	m := drive(t, newTestModel(srv), fetchMsg{})

	view := m.View()
	assert.Equal(t, 2, strings.Count(view, EmptyText), "both charts show the empty state")
	assert.NotNil(t, m.Loader().Rows)
	assert.Empty(t, m.Loader().Rows)
}

func TestDashboard_FetchErrorKeepsRows(t *testing.T) {
	srv := &stubServer{rows: map[market.Unit][]market.Row{market.Unit1M: sampleRows()}}
	m := drive(t, newTestModel(srv), fetchMsg{})

	srv.fetchErr = &api.HTTPError{Status: 500}
	m = drive(t, m, keyRunes("r"))

	assert.Equal(t, "HTTP 500", m.Loader().Err)
	assert.Len(t, m.Loader().Rows, 2)
	assert.Contains(t, m.View(), "HTTP 500")
}

func TestDashboard_UnitSelection(t *testing.T) {
	srv := &stubServer{rows: map[market.Unit][]market.Row{}}
	m := drive(t, newTestModel(srv), fetchMsg{})

	m = drive(t, m, keyRunes("3"))
	assert.Equal(t, market.Unit1Y, m.Loader().Unit)
	assert.Equal(t, market.Unit1Y, srv.queries[len(srv.queries)-1].Unit)

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, market.Unit3M, m.Loader().Unit)

	m = drive(t, m, keyRunes("1"))
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, market.Unit1W, m.Loader().Unit, "left from the first unit wraps")

	before := len(srv.queries)
	_, cmd := m.Update(keyRunes("6"))
	assert.Nil(t, cmd, "re-selecting the active unit does not refetch")
	assert.Len(t, srv.queries, before)
}

func TestDashboard_LastRequestWins(t *testing.T) {
	srv := &stubServer{rows: map[market.Unit][]market.Row{
		market.Unit1M: sampleRows()[:1],
		market.Unit1W: sampleRows(),
	}}
	m := newTestModel(srv)

	next, first := m.Update(fetchMsg{})
	m = next.(DashboardModel)
	next, second := m.Update(keyRunes("6"))
	m = next.(DashboardModel)

	firstMsgs, secondMsgs := collect(first), collect(second)
	require.Len(t, firstMsgs, 1)
	require.Len(t, secondMsgs, 1)

	// Responses arrive out of order.
	m = drive(t, m, secondMsgs[0])
	m = drive(t, m, firstMsgs[0])

	assert.Equal(t, market.Unit1W, m.Loader().Unit)
	assert.Len(t, m.Loader().Rows, 2)
	assert.False(t, m.Loader().Loading)
}

func TestDashboard_SetEndDateMsg(t *testing.T) {
	srv := &stubServer{rows: map[market.Unit][]market.Row{}}
	m := drive(t, newTestModel(srv), fetchMsg{})

	m = drive(t, m, SetEndDateMsg{Date: "2030-01-01"})
	assert.Equal(t, "2030-01-01", m.Loader().EndDate)
	assert.Equal(t, "2030-01-01", m.endDate.Value())
	assert.Equal(t, "2024-12-31", srv.queries[len(srv.queries)-1].To, "sent end date is clamped")

	before := len(srv.queries)
	m = drive(t, m, SetEndDateMsg{Date: "2030-01-01"})
	assert.Len(t, srv.queries, before, "unchanged end date does not refetch")

	m = drive(t, m, SetEndDateMsg{Date: "2010-05-05"})
	assert.Equal(t, "2015-01-01", srv.queries[len(srv.queries)-1].To)
}

func TestDashboard_EndDateInput(t *testing.T) {
	srv := &stubServer{rows: map[market.Unit][]market.Row{}}
	m := drive(t, newTestModel(srv), fetchMsg{})

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusEndDate, m.focus)

	m.endDate.SetValue("")
	m = press(m, keyRunes("2023-06-30"))
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "2023-06-30", m.Loader().EndDate)
	assert.Equal(t, "2023-06-30", srv.queries[len(srv.queries)-1].To)
}

func TestDashboard_QuitKeys(t *testing.T) {
	srv := &stubServer{}
	m := newTestModel(srv)

	// q types into a focused input instead of quitting.
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m.endDate.SetValue("")
	m = press(m, keyRunes("q"))
	assert.False(t, m.quitting)
	assert.Equal(t, "q", m.endDate.Value())

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc}, keyRunes("q"))
	assert.True(t, m.quitting)

	m2 := press(newTestModel(srv), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m2.quitting)
	assert.Empty(t, m2.View())
}

func TestDashboard_FocusRing(t *testing.T) {
	m := newTestModel(&stubServer{})
	order := []focusArea{focusEndDate, focusBuyDate, focusSellDate, focusAmount, focusSubmit, focusCharts}
	for _, want := range order {
		m = press(m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, want, m.focus)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusSubmit, m.focus)
}

func TestDashboard_Cursor(t *testing.T) {
	srv := &stubServer{rows: map[market.Unit][]market.Row{market.Unit1M: sampleRows()}}
	m := drive(t, newTestModel(srv), fetchMsg{})
	assert.NotContains(t, m.View(), "1,472.5 원/USD")

	m = press(m, keyRunes("l"))
	assert.Equal(t, 0, m.cursor)
	view := m.View()
	assert.Contains(t, view, "1,472.5 원/USD")
	assert.Contains(t, view, "17.4 pt")
	assert.Contains(t, view, "120,345 주")
	assert.Contains(t, view, "125,000 원/g")

	m = press(m, keyRunes("l"), keyRunes("l"))
	assert.Equal(t, 1, m.cursor, "cursor stops at the last point")
	assert.NotContains(t, m.View(), "예측 금 시세 ", "missing predicted close is left out")

	m = drive(t, m, keyRunes("r"))
	assert.Equal(t, -1, m.cursor, "new data resets the cursor")
}

func TestDashboard_TradeSuccess(t *testing.T) {
	srv := &stubServer{result: &market.SimResult{
		YieldRate:       3,
		TotalProfitLoss: 30000,
		FinalValue:      1030000,
		PortfolioHistory: []market.PortfolioPoint{
			{Date: "2024-01-02", Value: 1000000},
			{Date: "2024-01-31", Value: 1030000},
		},
	}}
	m := newTestModel(srv)
	for range 5 {
		m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, focusSubmit, m.focus)
	assert.Contains(t, m.View(), SubmitLabel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(DashboardModel)
	assert.True(t, m.Trade().Submitting)
	assert.Contains(t, m.View(), SubmittingLabel)

	_, again := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again, "submit is disabled while a submission is running")

	for _, msg := range collect(cmd) {
		m = drive(t, m, msg)
	}

	require.Len(t, srv.trades, 1)
	assert.Equal(t, "2024-01-02", srv.trades[0].BuyDate)
	require.NotNil(t, srv.trades[0].BuyAmount)
	assert.Equal(t, 1000000.0, *srv.trades[0].BuyAmount)

	view := m.View()
	assert.Contains(t, view, "+3%")
	assert.Contains(t, view, "+30,000원")
	assert.Contains(t, view, "1,030,000원")
	assert.Contains(t, view, "103만")
	assert.Contains(t, view, SubmitLabel)
}

func TestDashboard_TradeError(t *testing.T) {
	srv := &stubServer{tradeErr: &api.APIError{Status: 400, Message: "매도일이 매수일보다 빠릅니다"}}
	m := newTestModel(srv)
	m.trade.Result = &market.SimResult{YieldRate: 1}

	// Typing into the amount field and submitting from there.
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusAmount, m.focus)
	m.inputs[inputAmount].SetValue("")
	m = press(m, keyRunes("abc"))
	assert.Equal(t, "abc", m.Trade().Form.BuyAmount)

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, srv.trades, 1)
	assert.Nil(t, srv.trades[0].BuyAmount, "unparseable amount is sent as null")
	assert.Nil(t, m.Trade().Result)
	assert.Contains(t, m.View(), "매도일이 매수일보다 빠릅니다")
	assert.NotContains(t, m.View(), "시뮬레이션 결과")
}

func TestDashboard_Refresh(t *testing.T) {
	srv := &stubServer{fetchErr: errors.New("connection refused")}
	m := newTestModel(srv).Refresh()

	assert.False(t, m.Loader().Loading)
	assert.Equal(t, "connection refused", m.Loader().Err)
	assert.Contains(t, m.View(), "connection refused")
}
