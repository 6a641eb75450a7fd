package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/goldsim/internal/tui/styles"
)

// TooltipEntry is one raw value shown for the point under the cursor.
type TooltipEntry struct {
	Name  string
	Value string
	Color lipgloss.Color
}

// Tooltip is the single-line readout for the cursor position.
type Tooltip struct {
	Date    string
	Entries []TooltipEntry
}

// Render returns the readout, or "" when there is no date.
func (t Tooltip) Render() string {
	if t.Date == "" {
		return ""
	}
	parts := []string{styles.Value.Render(t.Date)}
	for _, e := range t.Entries {
		parts = append(parts, styles.Colored("━", e.Color)+" "+styles.Label.Render(e.Name)+" "+styles.Value.Render(e.Value))
	}
	return strings.Join(parts, "  ")
}
