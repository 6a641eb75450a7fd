package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/goldsim/internal/tui/styles"
)

// Metric displays a single result value over its label, colored by Sign
// when Signed is set.
type Metric struct {
	Label  string
	Value  string
	Sign   float64
	Signed bool
}

// Render returns the styled metric.
func (m Metric) Render() string {
	valueStyle := styles.Value
	if m.Signed {
		valueStyle = styles.SignedStyle(m.Sign)
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		valueStyle.Render(m.Value),
		styles.Label.Render(m.Label),
	)
}

// MetricRow lays metrics out side by side with equal spacing.
func MetricRow(metrics []Metric, width int) string {
	if len(metrics) == 0 {
		return ""
	}
	cell := lipgloss.NewStyle().Width(max(width/len(metrics), 1)).Align(lipgloss.Center)

	cells := make([]string, 0, len(metrics))
	for _, m := range metrics {
		cells = append(cells, cell.Render(m.Render()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
