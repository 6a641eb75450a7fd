package styles

import "github.com/charmbracelet/lipgloss"

// Night Market -- dark palette with a warm gold accent.

var (
	// Backgrounds (darkest to lightest)
	BgDeep    = lipgloss.Color("#0b0d12") // Main background
	BgPanel   = lipgloss.Color("#12151d") // Panel background
	BgSurface = lipgloss.Color("#1b2030") // Inputs, elevated surface

	// Accents
	AccentPrimary   = lipgloss.Color("#f5b82e") // Gold -- titles, focus ring
	AccentSecondary = lipgloss.Color("#4fc1ff") // Cyan -- secondary info

	// Status
	StatusOK    = lipgloss.Color("#22c55e") // Profit
	StatusWarn  = lipgloss.Color("#f59e0b")
	StatusError = lipgloss.Color("#ef4444") // Loss, errors

	// Text
	TextPrimary   = lipgloss.Color("#e2e8f0")
	TextSecondary = lipgloss.Color("#94a3b8")
	TextMuted     = lipgloss.Color("#64748b")

	// Borders
	BorderNormal  = lipgloss.Color("#2d3748")
	BorderFocused = lipgloss.Color("#f5b82e")
)

// Series colors. Each chart line keeps the same color everywhere it appears.
var (
	SeriesFX        = lipgloss.Color("#4fc1ff") // USD/KRW
	SeriesVIX       = lipgloss.Color("#ef4444") // VIX
	SeriesETF       = lipgloss.Color("#a78bfa") // ETF volume
	SeriesGold      = lipgloss.Color("#f5b82e") // Actual close
	SeriesPred      = lipgloss.Color("#22c55e") // Predicted close
	SeriesPortfolio = lipgloss.Color("#39c5bb") // Portfolio value
)
