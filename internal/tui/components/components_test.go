package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/goldsim/internal/market"
	"github.com/Dallionking/goldsim/internal/tui/styles"
)

func rampChart(n int) LineChart {
	values := make([]*float64, n)
	labels := make([]string, n)
	for i := range n {
		values[i] = market.Float(float64(i * 10))
		labels[i] = fmt.Sprintf("12-%02d", i+1)
	}
	return LineChart{
		Series:    []Series{{Name: "ramp", Color: styles.SeriesGold, Values: values}},
		Labels:    labels,
		Min:       0,
		Max:       float64((n - 1) * 10),
		Width:     40,
		Height:    6,
		TickCount: 4,
		Cursor:    -1,
		YFormat:   func(v float64) string { return fmt.Sprintf("%.0f", v) },
	}
}

func TestLineChart_Empty(t *testing.T) {
	assert.Empty(t, LineChart{Width: 40, Height: 6, Cursor: -1}.Render())
}

func TestLineChart_Layout(t *testing.T) {
	c := rampChart(10)
	out := c.Render()
	lines := strings.Split(out, "\n")

	// legend + plot rows + axis + labels
	require.Len(t, lines, 1+c.Height+2)
	assert.Contains(t, lines[0], "ramp")
	assert.Contains(t, lines[1], "90", "top row carries the max label")
	assert.Contains(t, lines[c.Height], "0", "bottom row carries the min label")

	labels := lines[len(lines)-1]
	assert.Contains(t, labels, "12-01", "first label is kept")
	assert.Contains(t, labels, "12-10", "last label is kept")
	assert.Equal(t, c.Width, strings.Count(out, styles.GlyphPoint), "one point per column")
}

func TestLineChart_GapsForMissingValues(t *testing.T) {
	c := rampChart(3)
	c.Width = 3
	c.Series[0].Values[1] = nil

	out := c.Render()
	assert.Equal(t, 2, strings.Count(out, styles.GlyphPoint))
}

func TestLineChart_Cursor(t *testing.T) {
	c := rampChart(5)
	assert.NotContains(t, c.Render(), styles.GlyphCursor)

	c.Cursor = 2
	assert.Contains(t, c.Render(), styles.GlyphCursor)

	c.Cursor = 99
	assert.NotContains(t, c.Render(), styles.GlyphCursor)
}

func TestLineChart_Area(t *testing.T) {
	c := rampChart(5)
	assert.NotContains(t, c.Render(), styles.GlyphArea)

	c.Area = true
	assert.Contains(t, c.Render(), styles.GlyphArea)
}

func TestLineChart_Column(t *testing.T) {
	c := rampChart(11)
	c.Width = 21
	assert.Equal(t, 0, c.Column(0))
	assert.Equal(t, 10, c.Column(5))
	assert.Equal(t, 20, c.Column(10))
}

func TestUnitSelector(t *testing.T) {
	out := UnitSelector{Active: market.Unit3M}.Render()
	for _, spec := range market.Units() {
		assert.Contains(t, out, spec.Label)
	}
	assert.Equal(t, 1, strings.Count(out, "●"), "exactly one unit is active")
	assert.Contains(t, out, "● 4 3개월")
}

func TestMetric(t *testing.T) {
	out := Metric{Label: "수익률", Value: "+3.5%", Sign: 3.5, Signed: true}.Render()
	assert.Contains(t, out, "+3.5%")
	assert.Contains(t, out, "수익률")

	row := MetricRow([]Metric{{Label: "a", Value: "1"}, {Label: "b", Value: "2"}}, 40)
	assert.Contains(t, row, "a")
	assert.Contains(t, row, "b")
	assert.Empty(t, MetricRow(nil, 40))
}

func TestFooter_SkipsDisabled(t *testing.T) {
	quit := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "종료"))
	hidden := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "숨김"))
	hidden.SetEnabled(false)

	out := Footer{Bindings: []key.Binding{quit, hidden}, Width: 60}.Render()
	assert.Contains(t, out, "종료")
	assert.NotContains(t, out, "숨김")
}

func TestHeader(t *testing.T) {
	out := Header{Host: "http://localhost:8080", EndDate: "2024-12-31", Unit: "1개월", Width: 120}.Render()
	assert.Contains(t, out, styles.Logo)
	assert.Contains(t, out, "2024-12-31")
	assert.Contains(t, out, "1개월")
}

func TestNewsPanel(t *testing.T) {
	out := NewsPanel{Width: 30, Height: 3}.Render()
	assert.Contains(t, out, NewsTitle)
	assert.Contains(t, out, NewsEmpty)
}

func TestTooltip(t *testing.T) {
	assert.Empty(t, Tooltip{}.Render())

	out := Tooltip{Date: "2024-12-30", Entries: []TooltipEntry{{Name: "VIX", Value: "17.4 pt"}}}.Render()
	assert.Contains(t, out, "2024-12-30")
	assert.Contains(t, out, "17.4 pt")
}
