package styles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Convenience color helpers
// ---------------------------------------------------------------------------

// Gold renders s in AccentPrimary.
func Gold(s string) string {
	return lipgloss.NewStyle().Foreground(AccentPrimary).Render(s)
}

// Dim renders s in TextMuted.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(TextMuted).Render(s)
}

// Colored renders s in c.
func Colored(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// ---------------------------------------------------------------------------
// Sparkline
// ---------------------------------------------------------------------------

// brailleRamp maps normalized 0..7 buckets to braille bar characters.
var brailleRamp = []rune{'⡀', '⡄', '⡆', '⡇', '⣇', '⣧', '⣷', '⣿'}

// Sparkline produces a compact braille bar chart that fits in width columns,
// colored with the accent color.
func Sparkline(values []*float64, width int) string {
	s := SparkGlyphs(values, width)
	if s == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(AccentPrimary).Render(s)
}

// SparkGlyphs is Sparkline without styling. Missing values are skipped. If
// nothing is left or width is <= 0 an empty string is returned.
func SparkGlyphs(values []*float64, width int) string {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) {
			present = append(present, *v)
		}
	}
	if len(present) == 0 || width <= 0 {
		return ""
	}

	// Resample to the requested width using nearest-neighbour.
	sampled := make([]float64, width)
	for i := range width {
		idx := i * len(present) / width
		sampled[i] = present[idx]
	}

	lo, hi := sampled[0], sampled[0]
	for _, v := range sampled {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	b.Grow(width * 3)
	for _, v := range sampled {
		bucket := int(math.Round((v - lo) / span * float64(len(brailleRamp)-1)))
		bucket = max(0, min(bucket, len(brailleRamp)-1))
		b.WriteRune(brailleRamp[bucket])
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Text utilities
// ---------------------------------------------------------------------------

// TruncateWithEllipsis shortens s to max runes, appending "..." when
// truncation occurs. If max is less than 4 the string is simply cut.
func TruncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 4 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
