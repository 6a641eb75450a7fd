package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Logo is the compact app mark shown in the header.
const Logo = "◆ GOLDSIM"

// ---------------------------------------------------------------------------
// Panel styles
// ---------------------------------------------------------------------------

// Panel is the default panel style: rounded border in BorderNormal with
// horizontal padding.
var Panel = lipgloss.NewStyle().
	Background(BgPanel).
	Border(RoundedBorder).
	BorderForeground(BorderNormal).
	Padding(0, 1)

// PanelFocused is identical to Panel but uses the gold focus border.
var PanelFocused = Panel.BorderForeground(BorderFocused)

// PanelStyle picks Panel or PanelFocused.
func PanelStyle(focused bool) lipgloss.Style {
	if focused {
		return PanelFocused
	}
	return Panel
}

// ---------------------------------------------------------------------------
// Typography styles
// ---------------------------------------------------------------------------

// Title is bold AccentPrimary text for panel headings.
var Title = lipgloss.NewStyle().
	Foreground(AccentPrimary).
	Bold(true)

// Label is TextMuted text for field labels.
var Label = lipgloss.NewStyle().
	Foreground(TextMuted)

// Value is bold TextPrimary text for data values.
var Value = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// ProfitText is bold green for positive P&L.
var ProfitText = lipgloss.NewStyle().
	Foreground(StatusOK).
	Bold(true)

// LossText is bold red for negative P&L.
var LossText = lipgloss.NewStyle().
	Foreground(StatusError).
	Bold(true)

// ErrorText is used for request failures.
var ErrorText = lipgloss.NewStyle().
	Foreground(StatusError)

// SignedStyle colors a value by sign: green above zero, red below, plain at
// zero.
func SignedStyle(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return ProfitText
	case v < 0:
		return LossText
	default:
		return Value
	}
}

// ---------------------------------------------------------------------------
// Buttons
// ---------------------------------------------------------------------------

// Button renders a bracketed button label. A disabled button is dimmed and
// a focused one is highlighted.
func Button(label string, focused, disabled bool) string {
	s := lipgloss.NewStyle().Padding(0, 1)
	switch {
	case disabled:
		s = s.Foreground(TextMuted).Background(BgSurface)
	case focused:
		s = s.Foreground(BgDeep).Background(AccentPrimary).Bold(true)
	default:
		s = s.Foreground(TextPrimary).Background(BgSurface)
	}
	return s.Render(label)
}

// ---------------------------------------------------------------------------
// Divider
// ---------------------------------------------------------------------------

// Divider returns a horizontal rule of the given width using the ─ character
// rendered in BorderNormal color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	line := strings.Repeat("─", width)
	return lipgloss.NewStyle().Foreground(BorderNormal).Render(line)
}
