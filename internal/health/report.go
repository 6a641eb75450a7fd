package health

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Dallionking/goldsim/internal/tui/styles"
)

// Target names what a report was run against.
type Target struct {
	Server     string
	ConfigFile string
}

var categoryRank = map[string]int{CategoryConfig: 0, CategoryServer: 1, CategoryFiles: 2}

var categoryTitle = map[string]string{
	CategoryConfig: "config",
	CategoryServer: "server",
	CategoryFiles:  "files",
}

var stateColor = map[string]lipgloss.TerminalColor{
	StatusPass.String(): styles.StatusOK,
	StatusWarn.String(): styles.StatusWarn,
	StatusFail.String(): styles.StatusError,
}

const (
	colCategory = iota
	colCheck
	colState
	colMessage
	colTime
)

// FormatReport renders r as one table row per check, ordered config,
// server, files, under a header naming the server and config file.
func FormatReport(r *Report, target Target) string {
	label := lipgloss.NewStyle().Foreground(styles.TextMuted).Width(8)
	value := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	configFile := target.ConfigFile
	if configFile == "" {
		configFile = "(defaults)"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true).Render("goldsim health"))
	b.WriteString("\n")
	b.WriteString(label.Render("server") + value.Render(target.Server) + "\n")
	b.WriteString(label.Render("config") + value.Render(configFile) + "\n\n")

	results := slices.Clone(r.Results)
	slices.SortStableFunc(results, func(a, b CheckResult) int {
		return cmp.Compare(rank(a.Category), rank(b.Category))
	})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderNormal)).
		Headers("GROUP", "CHECK", "STATUS", "MESSAGE", "TIME")
	for _, res := range results {
		group := categoryTitle[res.Category]
		if group == "" {
			group = res.Category
		}
		t.Row(group, res.Name, res.Status.Symbol()+" "+res.State, styles.TruncateWithEllipsis(res.Message, 44), elapsed(res.Duration))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		s := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return s.Foreground(styles.AccentSecondary).Bold(true)
		}
		switch col {
		case colState:
			if c, ok := stateColor[results[row].State]; ok {
				return s.Foreground(c).Bold(true)
			}
			return s.Foreground(styles.TextMuted)
		case colTime:
			return s.Foreground(styles.TextMuted).Align(lipgloss.Right)
		case colCategory, colMessage:
			return s.Foreground(styles.TextSecondary)
		}
		return s.Foreground(styles.TextPrimary)
	})
	b.WriteString(t.Render())
	b.WriteString("\n")

	b.WriteString(verdict(r))
	fmt.Fprintf(&b, "  %d of %d passed", r.Passed, r.Total)
	if r.Warned > 0 {
		fmt.Fprintf(&b, ", %d warned", r.Warned)
	}
	if r.Failed > 0 {
		fmt.Fprintf(&b, ", %d failed", r.Failed)
	}
	fmt.Fprintf(&b, " in %s\n", elapsed(r.Duration))
	return b.String()
}

func rank(category string) int {
	if n, ok := categoryRank[category]; ok {
		return n
	}
	return len(categoryRank)
}

// verdict is healthy with no failures or warnings, degraded with only
// warnings and unhealthy otherwise.
func verdict(r *Report) string {
	word, color := "healthy", styles.StatusOK
	switch {
	case !r.Healthy:
		word, color = "unhealthy", styles.StatusError
	case r.Warned > 0:
		word, color = "degraded", styles.StatusWarn
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(word))
}

func elapsed(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return d.Round(time.Millisecond).String()
}
