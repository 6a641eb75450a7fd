package models

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/goldsim/internal/format"
	"github.com/Dallionking/goldsim/internal/market"
	"github.com/Dallionking/goldsim/internal/tui/components"
	"github.com/Dallionking/goldsim/internal/tui/styles"
)

const (
	LoadingText = "불러오는 중"
	EmptyText   = "데이터 없음"

	SubmitLabel     = "수익률 계산"
	SubmittingLabel = "계산 중..."

	overlayTitle = "환율 / VIX / ETF 거래량 · 스케일(0~500)"
	goldTitle    = "금 시세 vs LSTM 예측"
	tradeTitle   = "거래 시뮬레이션"
	resultTitle  = "시뮬레이션 결과"

	newsWidth    = 28
	yAxisReserve = 16 // y labels, axis and panel chrome
)

// View renders the dashboard:
//
//	[header                                   ]
//	[overlay chart                  | news    ]
//	[gold chart                     |         ]
//	[trade form                     |         ]
//	[result                         |         ]
//	[fetch error                              ]
//	[footer                                   ]
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	width := max(m.width, 60)
	leftW := width
	showNews := width >= 100
	if showNews {
		leftW = width - newsWidth
	}

	left := []string{
		m.renderOverlayPanel(leftW),
		m.renderGoldPanel(leftW),
		m.renderTradePanel(leftW),
	}
	if result := m.renderResultPanel(leftW); result != "" {
		left = append(left, result)
	}
	body := lipgloss.JoinVertical(lipgloss.Left, left...)

	news := components.NewsPanel{Width: newsWidth, Height: 3}
	if showNews {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, news.Render())
	} else {
		news.Width = width
		body = lipgloss.JoinVertical(lipgloss.Left, body, news.Render())
	}

	sections := []string{m.renderHeader(width), body}
	if m.loader.Err != "" {
		sections = append(sections, styles.ErrorText.PaddingLeft(1).Render(m.loader.Err))
	}
	sections = append(sections, m.renderFooter(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderHeader(width int) string {
	h := components.Header{
		Host:    m.host,
		EndDate: m.loader.EndDate,
		Unit:    m.loader.Unit.Label(),
		Trend:   styles.Sparkline(market.Column(m.loader.Rows, market.GoldClose), 16),
		Width:   width,
	}
	if m.busy() {
		h.Busy = m.spin.View()
	}
	return h.Render()
}

func (m DashboardModel) renderFooter(width int) string {
	f := components.Footer{Width: width}
	switch m.focus {
	case focusCharts:
		f.Bindings = m.keys.chartHints()
	case focusEndDate:
		f.Bindings = m.keys.inputHints("적용")
	default:
		f.Bindings = m.keys.inputHints("계산")
	}
	return f.Render()
}

// ---------------------------------------------------------------------------
// Charts
// ---------------------------------------------------------------------------

func plotWidth(panelWidth int) int {
	return max(panelWidth-yAxisReserve, 10)
}

// chartBody swaps the chart for the loading or empty placeholder.
func (m DashboardModel) chartBody(panelWidth int, render func() string) string {
	inner := max(panelWidth-4, 10)
	bodyHeight := m.chartHeight + 3
	switch {
	case m.loader.Loading:
		return components.Placeholder(LoadingText, inner, bodyHeight)
	case len(m.loader.Rows) == 0:
		return components.Placeholder(EmptyText, inner, bodyHeight)
	default:
		return render()
	}
}

func (m DashboardModel) xLabels(rows []market.Row) []string {
	_, f := m.loader.Unit.TickConfig()
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = market.FormatDateStr(r.Date, f)
	}
	return labels
}

func (m DashboardModel) renderOverlayPanel(width int) string {
	selector := components.UnitSelector{Active: m.loader.Unit, Focused: m.focus == focusCharts}

	endLabel := styles.Label.Render("종료일 ")
	endDate := endLabel + m.endDate.View()

	body := m.chartBody(width, func() string {
		scaled := m.loader.Scaled()
		fx := make([]*float64, len(scaled))
		vix := make([]*float64, len(scaled))
		etf := make([]*float64, len(scaled))
		for i, r := range scaled {
			fx[i], vix[i], etf[i] = r.FXScaled, r.VIXScaled, r.ETFScaled
		}

		ticks, _ := m.loader.Unit.TickConfig()
		chart := components.LineChart{
			Series: []components.Series{
				{Name: "환율(원/USD)", Color: styles.SeriesFX, Values: fx},
				{Name: "VIX(pt)", Color: styles.SeriesVIX, Values: vix},
				{Name: "ETF 거래량(주)", Color: styles.SeriesETF, Values: etf},
			},
			Labels:    m.xLabels(m.loader.Rows),
			Min:       0,
			Max:       market.ScaleCeiling,
			Width:     plotWidth(width),
			Height:    m.chartHeight,
			TickCount: ticks,
			Cursor:    m.cursor,
			YFormat:   format.Int,
		}
		return joinNonEmpty(chart.Render(), m.overlayTooltip().Render())
	})

	content := joinNonEmpty(
		selector.Render(),
		endDate,
		body,
		styles.Dim(market.RangeText(m.loader.Rows)),
	)
	focused := m.focus == focusCharts || m.focus == focusEndDate
	return components.Panel(overlayTitle, content, width, focused)
}

func (m DashboardModel) renderGoldPanel(width int) string {
	body := m.chartBody(width, func() string {
		rows := m.loader.Rows
		lo, hi, ok := market.GoldDomain(rows)
		if !ok {
			lo, hi = 0, 1
		}

		ticks, _ := m.loader.Unit.TickConfig()
		chart := components.LineChart{
			Series: []components.Series{
				{Name: "실제 금 시세(원/g)", Color: styles.SeriesGold, Values: market.Column(rows, market.GoldClose)},
				{Name: "예측 금 시세(원/g)", Color: styles.SeriesPred, Values: market.Column(rows, market.PredClose)},
			},
			Labels:    m.xLabels(rows),
			Min:       lo,
			Max:       hi,
			Width:     plotWidth(width),
			Height:    m.chartHeight,
			TickCount: ticks,
			Cursor:    m.cursor,
			YFormat:   format.Int,
		}
		return joinNonEmpty(chart.Render(), m.goldTooltip().Render())
	})

	content := joinNonEmpty(body, styles.Dim(market.RangeText(m.loader.Rows)))
	return components.Panel(goldTitle, content, width, m.focus == focusCharts)
}

// overlayTooltip shows the raw, unscaled values under the cursor. Missing
// values read as zero.
func (m DashboardModel) overlayTooltip() components.Tooltip {
	if m.cursor < 0 || m.cursor >= len(m.loader.Rows) {
		return components.Tooltip{}
	}
	r := m.loader.Rows[m.cursor]
	return components.Tooltip{
		Date: r.Date,
		Entries: []components.TooltipEntry{
			{Name: "환율(원값)", Value: format.Ptr(r.FXRate, format.TwoDecimal) + " 원/USD", Color: styles.SeriesFX},
			{Name: "VIX(원값)", Value: format.Ptr(r.VIX, format.OneDecimal) + " pt", Color: styles.SeriesVIX},
			{Name: "ETF 거래량(원값)", Value: format.Ptr(r.ETFVolume, format.Int) + " 주", Color: styles.SeriesETF},
		},
	}
}

// goldTooltip shows the closes under the cursor. A missing close is left
// out rather than shown as zero.
func (m DashboardModel) goldTooltip() components.Tooltip {
	if m.cursor < 0 || m.cursor >= len(m.loader.Rows) {
		return components.Tooltip{}
	}
	r := m.loader.Rows[m.cursor]
	t := components.Tooltip{Date: r.Date}
	if r.GoldClose != nil {
		t.Entries = append(t.Entries, components.TooltipEntry{
			Name: "실제 금 시세", Value: format.OneDecimal(*r.GoldClose) + " 원/g", Color: styles.SeriesGold,
		})
	}
	if r.PredClose != nil {
		t.Entries = append(t.Entries, components.TooltipEntry{
			Name: "예측 금 시세", Value: format.OneDecimal(*r.PredClose) + " 원/g", Color: styles.SeriesPred,
		})
	}
	return t
}

// ---------------------------------------------------------------------------
// Trade form and result
// ---------------------------------------------------------------------------

func (m DashboardModel) renderTradePanel(width int) string {
	field := func(label string, ti string) string {
		return styles.Label.Render(label) + "\n" + ti
	}

	label := SubmitLabel
	if m.trade.Submitting {
		label = SubmittingLabel
	}
	button := styles.Button(label, m.focus == focusSubmit, m.trade.Submitting)

	gap := "   "
	row := lipgloss.JoinHorizontal(lipgloss.Bottom,
		field("매수일", m.inputs[inputBuy].View()), gap,
		field("매도일", m.inputs[inputSell].View()), gap,
		field("매수금액(원)", m.inputs[inputAmount].View()), gap,
		button,
	)

	focused := m.focus >= focusBuyDate && m.focus <= focusSubmit
	return components.Panel(tradeTitle, row, width, focused)
}

// renderResultPanel shows the trade error or the result, never both. It
// renders nothing before the first submission.
func (m DashboardModel) renderResultPanel(width int) string {
	if m.trade.Err != "" {
		return styles.ErrorText.PaddingLeft(1).Render(m.trade.Err)
	}
	res := m.trade.Result
	if res == nil {
		return ""
	}

	inner := max(width-4, 10)
	metrics := components.MetricRow([]components.Metric{
		{Label: "수익률", Value: format.Signed(res.YieldRate) + "%", Sign: res.YieldRate, Signed: true},
		{Label: "총 손익", Value: format.Signed(res.TotalProfitLoss) + "원", Sign: res.TotalProfitLoss, Signed: true},
		{Label: "최종 금액", Value: format.Int(res.FinalValue) + "원"},
	}, inner)

	content := metrics
	if chart := m.portfolioChart(res.PortfolioHistory, width); chart != "" {
		content = metrics + "\n\n" + chart
	}
	return components.Panel(resultTitle, content, width, false)
}

// portfolioChart plots the portfolio value as an area over its own data
// range with the y axis in units of 10,000 won.
func (m DashboardModel) portfolioChart(history []market.PortfolioPoint, width int) string {
	if len(history) == 0 {
		return ""
	}

	ticks, f := m.loader.Unit.TickConfig()
	values := make([]*float64, len(history))
	labels := make([]string, len(history))
	lo, hi := history[0].Value, history[0].Value
	for i, p := range history {
		values[i] = market.Float(p.Value)
		labels[i] = market.FormatDateStr(p.Date, f)
		lo, hi = min(lo, p.Value), max(hi, p.Value)
	}

	chart := components.LineChart{
		Series:    []components.Series{{Name: "포트폴리오 가치", Color: styles.SeriesPortfolio, Values: values}},
		Labels:    labels,
		Min:       lo,
		Max:       hi,
		Width:     plotWidth(width),
		Height:    max(m.chartHeight/2, 4),
		TickCount: ticks,
		Cursor:    -1,
		Area:      true,
		YFormat:   format.Manwon,
	}
	return chart.Render()
}

// joinNonEmpty stacks the non-empty parts line by line.
func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
