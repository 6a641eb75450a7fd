package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/goldsim/internal/tui/styles"
)

// joinLines joins lines back with newlines.
func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Panel wraps content in a titled, bordered panel of the given outer width.
// The border turns gold when focused.
func Panel(title, content string, width int, focused bool) string {
	innerWidth := width - 4 // border (2) + padding (2)
	if innerWidth < 10 {
		innerWidth = 10
	}

	body := content
	if title != "" {
		body = styles.Title.Render(title) + "\n" + content
	}
	return styles.PanelStyle(focused).Width(innerWidth).Render(body)
}

// Placeholder centres a muted message in a box of the given size. It stands
// in for a chart body while loading or when there is nothing to show.
func Placeholder(msg string, width, height int) string {
	return lipgloss.Place(width, max(height, 1), lipgloss.Center, lipgloss.Center, styles.Dim(msg))
}
