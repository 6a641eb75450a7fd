package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/goldsim/internal/tui/styles"
)

// Header renders the app header bar.
type Header struct {
	Host    string // API server
	EndDate string // end date as entered
	Unit    string // active unit label, e.g. "1개월"
	Trend   string // pre-rendered sparkline, may be empty
	Busy    string // spinner frame while a request is in flight
	Width   int
}

// Render returns the styled header string.
func (h Header) Render() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	logo := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Render(styles.Logo)

	sep := styles.Dim("  │  ")

	host := styles.Label.Render("서버 ") +
		styles.Value.Render(styles.TruncateWithEllipsis(h.Host, 32))
	end := styles.Label.Render("종료일 ") +
		lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true).Render(h.EndDate)
	unit := styles.Label.Render("기간 ") + styles.Value.Render(h.Unit)

	content := logo + sep + host + sep + end + sep + unit
	if h.Trend != "" {
		content += sep + h.Trend
	}
	if h.Busy != "" {
		content += "  " + h.Busy
	}

	headerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextPrimary).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)

	return headerStyle.Render(content)
}
