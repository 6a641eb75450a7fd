package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/goldsim/internal/market"
	"github.com/Dallionking/goldsim/internal/tui/styles"
)

// Series is one line on a LineChart. Values are index-aligned with the
// chart's Labels; nil values leave a gap.
type Series struct {
	Name   string
	Color  lipgloss.Color
	Values []*float64
}

// LineChart draws one or more series on a character grid with a y axis on
// the left and thinned date labels underneath.
type LineChart struct {
	Series []Series
	Labels []string // one per point, already formatted

	Min, Max float64
	Width    int // plot columns, excluding the y axis
	Height   int // plot rows

	TickCount int  // target number of x labels
	Cursor    int  // highlighted point index; -1 for none
	Area      bool // shade below the first series
	YFormat   func(float64) string
}

// Points returns the number of x positions on the chart.
func (c LineChart) Points() int {
	n := len(c.Labels)
	for _, s := range c.Series {
		n = max(n, len(s.Values))
	}
	return n
}

// Column maps point index i to its plot column.
func (c LineChart) Column(i int) int {
	n := c.Points()
	if n <= 1 || c.Width <= 1 {
		return 0
	}
	return i * (c.Width - 1) / (n - 1)
}

// index maps plot column x back to the nearest point index.
func (c LineChart) index(x int) int {
	n := c.Points()
	if n <= 1 || c.Width <= 1 {
		return 0
	}
	return int(math.Round(float64(x) * float64(n-1) / float64(c.Width-1)))
}

func (c LineChart) row(v float64) int {
	span := c.Max - c.Min
	if span <= 0 {
		span = 1
	}
	r := c.Height - 1 - int(math.Round((v-c.Min)/span*float64(c.Height-1)))
	return max(0, min(r, c.Height-1))
}

// Render returns the legend, plot, x axis and x labels. An empty chart
// renders as an empty string.
func (c LineChart) Render() string {
	n := c.Points()
	if n == 0 || c.Width <= 0 || c.Height <= 0 {
		return ""
	}
	yFormat := c.YFormat
	if yFormat == nil {
		yFormat = func(float64) string { return "" }
	}

	grid := make([][]string, c.Height)
	for r := range grid {
		grid[r] = make([]string, c.Width)
		for x := range grid[r] {
			grid[r][x] = " "
		}
	}

	for si, s := range c.Series {
		point := styles.Colored(styles.GlyphPoint, s.Color)
		rise := styles.Colored(styles.GlyphRise, s.Color)
		area := styles.Colored(styles.GlyphArea, s.Color)

		prev := -1
		for x := range c.Width {
			i := c.index(x)
			if i >= len(s.Values) || !finite(s.Values[i]) {
				prev = -1
				continue
			}
			r := c.row(*s.Values[i])

			if c.Area && si == 0 {
				for fill := r + 1; fill < c.Height; fill++ {
					grid[fill][x] = area
				}
			}
			if prev >= 0 {
				lo, hi := min(prev, r), max(prev, r)
				for between := lo + 1; between < hi; between++ {
					grid[between][x] = rise
				}
			}
			grid[r][x] = point
			prev = r
		}
	}

	if c.Cursor >= 0 && c.Cursor < n {
		cx := c.Column(c.Cursor)
		marker := styles.Colored(styles.GlyphCursor, styles.TextSecondary)
		for r := range grid {
			if grid[r][cx] == " " {
				grid[r][cx] = marker
			}
		}
	}

	// Y axis labels on the top, middle and bottom rows.
	yLabels := make(map[int]string, 3)
	yLabels[(c.Height-1)/2] = yFormat((c.Max + c.Min) / 2)
	yLabels[c.Height-1] = yFormat(c.Min)
	yLabels[0] = yFormat(c.Max)
	yw := 0
	for _, l := range yLabels {
		yw = max(yw, lipgloss.Width(l))
	}

	axis := styles.Dim(styles.GlyphAxisY)
	lines := make([]string, 0, c.Height+3)
	if legend := c.legend(); legend != "" {
		lines = append(lines, legend)
	}
	for r := range grid {
		label := padLeft(yLabels[r], yw)
		lines = append(lines, styles.Dim(label)+" "+axis+strings.Join(grid[r], ""))
	}

	ticks := market.TickIndices(n, c.TickCount)
	lines = append(lines, c.xAxis(yw, ticks), c.xLabels(yw, ticks))
	return joinLines(lines)
}

func (c LineChart) legend() string {
	var parts []string
	for _, s := range c.Series {
		if s.Name == "" {
			continue
		}
		parts = append(parts, styles.Colored("━", s.Color)+" "+styles.Dim(s.Name))
	}
	return strings.Join(parts, "  ")
}

func (c LineChart) xAxis(yw int, ticks []int) string {
	cells := []rune(strings.Repeat(styles.GlyphAxisX, c.Width))
	for _, i := range ticks {
		cells[c.Column(i)] = []rune(styles.GlyphTick)[0]
	}
	return strings.Repeat(" ", yw+1) + styles.Dim(styles.GlyphOrigin+string(cells))
}

// xLabels centres each tick label under its column, dropping labels that
// would overlap the previous one. The first and last labels are pinned to
// the plot edges.
func (c LineChart) xLabels(yw int, ticks []int) string {
	line := []rune(strings.Repeat(" ", c.Width+1))
	next := 0
	for k, i := range ticks {
		if i >= len(c.Labels) {
			continue
		}
		label := []rune(c.Labels[i])
		start := c.Column(i) + 1 - len(label)/2
		switch k {
		case 0:
			start = 0
		case len(ticks) - 1:
			start = len(line) - len(label)
		}
		start = max(start, 0)
		if start < next || start+len(label) > len(line) {
			continue
		}
		copy(line[start:], label)
		next = start + len(label) + 1
	}
	return strings.Repeat(" ", yw+1) + styles.Dim(strings.TrimRight(string(line), " "))
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
