package styles

import "github.com/charmbracelet/lipgloss"

// RoundedBorder is used for every dashboard panel.
var RoundedBorder = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "╰",
	BottomRight: "╯",
}

// Chart glyphs.
const (
	GlyphPoint  = "•"
	GlyphRise   = "│"
	GlyphArea   = "░"
	GlyphCursor = "┊"
	GlyphAxisY  = "┤"
	GlyphAxisX  = "─"
	GlyphOrigin = "└"
	GlyphTick   = "┬"
)
