package models

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Dallionking/goldsim/internal/dashboard"
	"github.com/Dallionking/goldsim/internal/market"
	"github.com/Dallionking/goldsim/internal/tui/styles"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// SetEndDateMsg replaces the end date from outside the program, as if the
// user had typed it and pressed enter.
type SetEndDateMsg struct {
	Date string
}

// fetchMsg asks the model to start a quote fetch. Init cannot mutate the
// model, so the first fetch goes through Update.
type fetchMsg struct{}

type quotesLoadedMsg struct {
	id   uint64
	rows []market.Row
	err  error
}

type tradeDoneMsg struct {
	id     uint64
	result *market.SimResult
	err    error
}

// ---------------------------------------------------------------------------
// Focus ring
// ---------------------------------------------------------------------------

type focusArea int

const (
	focusCharts focusArea = iota
	focusEndDate
	focusBuyDate
	focusSellDate
	focusAmount
	focusSubmit
	focusCount
)

// Trade form input slots.
const (
	inputBuy = iota
	inputSell
	inputAmount
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// DashboardOptions wires the model to its data sources and initial state.
type DashboardOptions struct {
	Context   context.Context // cancels in-flight requests; Background if nil
	Fetcher   dashboard.Fetcher
	Simulator dashboard.Simulator
	Logger    *zap.Logger

	Host        string
	EndDate     string
	Unit        market.Unit
	Form        dashboard.TradeForm
	ChartHeight int
}

// DashboardModel is the full-screen gold simulation dashboard: two quote
// charts with a unit selector and end-date input, the trade form and its
// result, and the news panel.
type DashboardModel struct {
	ctx    context.Context
	fetch  dashboard.Fetcher
	sim    dashboard.Simulator
	logger *zap.Logger
	host   string

	loader dashboard.QuoteLoader
	trade  dashboard.TradeRunner

	endDate textinput.Model
	inputs  [3]textinput.Model
	spin    spinner.Model
	keys    keyMap

	focus       focusArea
	cursor      int
	chartHeight int
	width       int
	height      int
	quitting    bool
}

// NewDashboardModel creates a DashboardModel. Nothing is fetched until Init
// or Refresh runs.
func NewDashboardModel(opts DashboardOptions) DashboardModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	chartHeight := opts.ChartHeight
	if chartHeight < 4 {
		chartHeight = 12
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)

	endDate := newInput(opts.EndDate, "YYYY-MM-DD", 10)
	inputs := [3]textinput.Model{
		inputBuy:    newInput(opts.Form.BuyDate, "YYYY-MM-DD", 10),
		inputSell:   newInput(opts.Form.SellDate, "YYYY-MM-DD", 10),
		inputAmount: newInput(opts.Form.BuyAmount, "1000000", 16),
	}

	return DashboardModel{
		ctx:         ctx,
		fetch:       opts.Fetcher,
		sim:         opts.Simulator,
		logger:      logger,
		host:        opts.Host,
		loader:      *dashboard.NewQuoteLoader(opts.EndDate, opts.Unit),
		trade:       *dashboard.NewTradeRunner(opts.Form),
		endDate:     endDate,
		inputs:      inputs,
		spin:        s,
		keys:        newKeyMap(),
		focus:       focusCharts,
		cursor:      -1,
		chartHeight: chartHeight,
		width:       100,
		height:      40,
	}
}

func newInput(value, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = limit + 1
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	ti.SetValue(value)
	return ti
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Loader exposes the quote loader state.
func (m DashboardModel) Loader() dashboard.QuoteLoader { return m.loader }

// Trade exposes the trade runner state.
func (m DashboardModel) Trade() dashboard.TradeRunner { return m.trade }

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

// startFetch begins a quote fetch for the loader's current window.
func (m *DashboardModel) startFetch() tea.Cmd {
	req := m.loader.Begin()
	fetcher, ctx := m.fetch, m.ctx

	m.logger.Debug("Fetching quotes", zap.Uint64("request", req.ID),
		zap.String("to", req.Query.To), zap.String("unit", string(req.Query.Unit)))

	load := func() tea.Msg {
		rows, err := fetcher.FetchQuotes(ctx, req.Query)
		return quotesLoadedMsg{id: req.ID, rows: rows, err: err}
	}
	return tea.Batch(load, m.spin.Tick)
}

// submitTrade sends the form unless a submission is already running.
func (m *DashboardModel) submitTrade() tea.Cmd {
	if m.trade.Submitting {
		return nil
	}
	m.syncForm()
	sub := m.trade.Begin()
	sim, ctx := m.sim, m.ctx

	m.logger.Debug("Submitting trade", zap.Uint64("request", sub.ID),
		zap.String("buy_date", sub.Request.BuyDate), zap.String("sell_date", sub.Request.SellDate))

	run := func() tea.Msg {
		res, err := sim.RunTrade(ctx, sub.Request)
		return tradeDoneMsg{id: sub.ID, result: res, err: err}
	}
	return tea.Batch(run, m.spin.Tick)
}

// Refresh fetches synchronously and applies the result. It backs the
// non-interactive snapshot, where no program loop is running.
func (m DashboardModel) Refresh() DashboardModel {
	req := m.loader.Begin()
	rows, err := m.fetch.FetchQuotes(m.ctx, req.Query)
	m.applyQuotes(quotesLoadedMsg{id: req.ID, rows: rows, err: err})
	return m
}

func (m *DashboardModel) applyQuotes(msg quotesLoadedMsg) {
	if !m.loader.Finish(msg.id, msg.rows, msg.err) {
		m.logger.Debug("Dropping stale quotes", zap.Uint64("request", msg.id))
		return
	}
	if msg.err != nil {
		m.logger.Warn("Quote fetch failed", zap.Error(msg.err))
		return
	}
	m.cursor = -1
}

func (m *DashboardModel) syncForm() {
	m.trade.Form = dashboard.TradeForm{
		BuyDate:   strings.TrimSpace(m.inputs[inputBuy].Value()),
		SellDate:  strings.TrimSpace(m.inputs[inputSell].Value()),
		BuyAmount: m.inputs[inputAmount].Value(),
	}
}

func (m DashboardModel) busy() bool {
	return m.loader.Loading || m.trade.Submitting
}

// ---------------------------------------------------------------------------
// Bubble Tea interface
// ---------------------------------------------------------------------------

// Init fetches the initial window.
func (m DashboardModel) Init() tea.Cmd {
	return func() tea.Msg { return fetchMsg{} }
}

// Update handles window resizes, keys, request results and external
// end-date updates.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchMsg:
		return m, m.startFetch()

	case SetEndDateMsg:
		m.endDate.SetValue(msg.Date)
		if m.loader.SetEndDate(msg.Date) {
			return m, m.startFetch()
		}
		return m, nil

	case quotesLoadedMsg:
		m.applyQuotes(msg)
		return m, nil

	case tradeDoneMsg:
		if m.trade.Finish(msg.id, msg.result, msg.err) && msg.err != nil {
			m.logger.Warn("Trade simulation failed", zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input-internal messages.
	return m.updateFocusedInput(msg)
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	switch m.focus {
	case focusCharts:
		return m.handleChartKey(msg)

	case focusSubmit:
		switch {
		case key.Matches(msg, m.keys.Apply), msg.String() == " ":
			return m, m.submitTrade()
		case key.Matches(msg, m.keys.Back):
			return m, m.setFocus(focusCharts)
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	default:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, m.setFocus(focusCharts)
		case key.Matches(msg, m.keys.Apply):
			if m.focus == focusEndDate {
				return m, m.applyEndDate()
			}
			return m, m.submitTrade()
		}
		return m.updateFocusedInput(msg)
	}
}

func (m DashboardModel) handleChartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	units := market.Units()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Unit):
		idx := int(msg.String()[0] - '1')
		return m, m.selectUnit(units[idx].Key)

	case key.Matches(msg, m.keys.UnitPrev):
		idx := (m.loader.Unit.Index() - 1 + len(units)) % len(units)
		return m, m.selectUnit(units[idx].Key)

	case key.Matches(msg, m.keys.UnitNext):
		idx := (m.loader.Unit.Index() + 1) % len(units)
		return m, m.selectUnit(units[idx].Key)

	case key.Matches(msg, m.keys.CursorLeft):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.CursorRight):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Reload):
		return m, m.startFetch()
	}
	return m, nil
}

// selectUnit switches the active unit and refetches when it changed.
func (m *DashboardModel) selectUnit(u market.Unit) tea.Cmd {
	if !m.loader.SetUnit(u) {
		return nil
	}
	return m.startFetch()
}

// applyEndDate takes the end-date input as the new end date. The value is
// clamped only when it is sent.
func (m *DashboardModel) applyEndDate() tea.Cmd {
	if !m.loader.SetEndDate(strings.TrimSpace(m.endDate.Value())) {
		return nil
	}
	return m.startFetch()
}

// moveCursor steps the tooltip cursor. From no cursor, moving right starts
// at the first point and moving left at the last.
func (m *DashboardModel) moveCursor(delta int) {
	n := len(m.loader.Rows)
	if n == 0 {
		m.cursor = -1
		return
	}
	switch {
	case m.cursor < 0 && delta > 0:
		m.cursor = 0
	case m.cursor < 0:
		m.cursor = n - 1
	default:
		m.cursor = max(0, min(m.cursor+delta, n-1))
	}
}

// setFocus moves focus and focuses the matching text input, if any.
func (m *DashboardModel) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.endDate.Blur()
	for i := range m.inputs {
		m.inputs[i].Blur()
	}

	switch f {
	case focusEndDate:
		return m.endDate.Focus()
	case focusBuyDate:
		return m.inputs[inputBuy].Focus()
	case focusSellDate:
		return m.inputs[inputSell].Focus()
	case focusAmount:
		return m.inputs[inputAmount].Focus()
	}
	return nil
}

func (m DashboardModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusEndDate:
		m.endDate, cmd = m.endDate.Update(msg)
	case focusBuyDate:
		m.inputs[inputBuy], cmd = m.inputs[inputBuy].Update(msg)
	case focusSellDate:
		m.inputs[inputSell], cmd = m.inputs[inputSell].Update(msg)
	case focusAmount:
		m.inputs[inputAmount], cmd = m.inputs[inputAmount].Update(msg)
	default:
		return m, nil
	}
	m.syncForm()
	return m, cmd
}
