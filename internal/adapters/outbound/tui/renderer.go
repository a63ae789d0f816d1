package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/typeguard/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	dimStyle       = lipgloss.NewStyle().Foreground(dim)
	faintStyle     = lipgloss.NewStyle().Foreground(faint)
	passStyle      = lipgloss.NewStyle().Foreground(success)
	failStyle      = lipgloss.NewStyle().Foreground(danger)
	warnStyle      = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle   = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle   = lipgloss.NewStyle().Foreground(info)
	fieldStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	reportRuleLine = faintStyle.Render(strings.Repeat("━", 24))
)

// RenderSession formats session stats as a scorecard.
func RenderSession(stats *domain.SessionStats) string {
	var b strings.Builder

	score := stats.SafetyScore()
	b.WriteString(headerStyle.Render("📊 Type Safety Report") + "\n")
	b.WriteString(reportRuleLine + "\n\n")

	fmt.Fprintf(&b, "%s %d\n", dimStyle.Render("MCP Calls Made:    "), stats.TotalCalls)
	fmt.Fprintf(&b, "%s %d\n", dimStyle.Render("Type Issues Found: "), stats.WarningsIssued)
	fmt.Fprintf(&b, "%s %d\n", dimStyle.Render("Auto-Fixes Applied:"), stats.AutoFixesApplied)
	fmt.Fprintf(&b, "%s %d\n", dimStyle.Render("Errors Prevented:  "), stats.ErrorsPrevented)
	b.WriteString("\n")

	scoreText := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(score)).
		Render(fmt.Sprintf("Safety Score: %.0f%%", score))
	fmt.Fprintf(&b, "%s %s\n", scoreText, scoreGlyph(score))
	b.WriteString(coloredBar(score, 24) + "\n")

	if top := topPatterns(stats, 3); len(top) > 0 {
		b.WriteString("\n" + titleStyle.Render("Most Common Issues:") + "\n")
		for i, pc := range top {
			fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, titleCase(pc.Pattern.String()), occurrences(pc.Count))
		}
	}

	if stats.SessionID != "" {
		b.WriteString("\n" + faintStyle.Render("session "+stats.SessionID) + "\n")
	}
	return b.String()
}

// scoreGlyph marks a safety score as healthy, degraded or poor.
func scoreGlyph(score float64) string {
	switch {
	case score >= 80:
		return "✅"
	case score >= 50:
		return "⚠️"
	default:
		return "❌"
	}
}

// topPatterns returns up to n non-zero pattern counters by count, highest
// first. Ties keep reporting order.
func topPatterns(stats *domain.SessionStats, n int) []domain.PatternCount {
	var out []domain.PatternCount
	for _, pc := range stats.PatternCounts() {
		if pc.Count > 0 {
			out = append(out, pc)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.PatternCount) int { return b.Count - a.Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func occurrences(n int) string {
	if n == 1 {
		return "1 occurrence"
	}
	return fmt.Sprintf("%d occurrences", n)
}

// titleCase turns boolean_variant into Boolean Variant.
func titleCase(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func coloredBar(score float64, width int) string {
	filled := max(0, min(int(score)*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 50:
		return warning
	default:
		return danger
	}
}

// RenderHistory formats scorecard history for terminal output.
func RenderHistory(entries []domain.ScorecardEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No scorecard history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Safety Score History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.SafetyScore)).
			Render(fmt.Sprintf("%3.0f%%", e.SafetyScore))

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(e.Timestamp.Format("2006-01-02")),
			faintStyle.Render(hash),
			scoreStyled,
			dimStyle.Render(fmt.Sprintf("%d calls", e.TotalCalls)),
		)

		if i > 0 {
			diff := e.SafetyScore - entries[i-1].SafetyScore
			if diff >= 0.5 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%.0f", diff))
			} else if diff <= -0.5 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%.0f", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
