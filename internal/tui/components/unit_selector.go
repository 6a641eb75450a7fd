package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/goldsim/internal/market"
	"github.com/Dallionking/goldsim/internal/tui/styles"
)

// UnitSelector renders the time-unit radio group. Exactly one unit is
// active; each option shows its number key.
type UnitSelector struct {
	Active  market.Unit
	Focused bool
}

// Render returns the styled selector string.
func (u UnitSelector) Render() string {
	activeColor := styles.TextPrimary
	if u.Focused {
		activeColor = styles.AccentPrimary
	}
	activeStyle := lipgloss.NewStyle().
		Foreground(activeColor).
		Bold(true).
		Underline(true).
		PaddingLeft(1).
		PaddingRight(1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		PaddingLeft(1).
		PaddingRight(1)

	var opts []string
	for i, spec := range market.Units() {
		mark := "○"
		style := inactiveStyle
		if spec.Key == u.Active {
			mark = "●"
			style = activeStyle
		}
		opts = append(opts, style.Render(fmt.Sprintf("%s %d %s", mark, i+1, spec.Label)))
	}

	return strings.Join(opts, styles.Dim("│"))
}
