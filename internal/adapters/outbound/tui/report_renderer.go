package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openkraft/typeguard/internal/domain"
)

// RenderReport renders a validation report for one tool call.
func RenderReport(report domain.ValidationReport, tool string) string {
	return renderFindings(report, fmt.Sprintf("Validating %s arguments...", tool))
}

// RenderResponseReport renders the advisory check of a tool response.
func RenderResponseReport(report domain.ValidationReport, tool string) string {
	return renderFindings(report, fmt.Sprintf("Checking %s response...", tool))
}

func renderFindings(report domain.ValidationReport, header string) string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(titleStyle.Render(header)))
	b.WriteString("\n\n")

	if report.Clean() {
		b.WriteString(passStyle.Render("✅ All types valid!") + "\n")
		return b.String()
	}

	if len(report.Errors) > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("❌ Found %d error(s):", len(report.Errors))) + "\n")
		for _, e := range report.Errors {
			fmt.Fprintf(&b, "   %s: %s\n", fieldStyle.Render(e.Field), e.Message)
		}
		b.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("⚠️ Found %d warning(s):", len(report.Warnings))) + "\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "   %s: %s → %s\n", fieldStyle.Render(w.Field), w.ActualType, w.ExpectedType)
			if w.HasAutoFix() {
				fmt.Fprintf(&b, "      %s %s → %s\n",
					dimStyle.Render("Auto-fix:"), domain.Render(w.Value), warnStyle.Render(domain.Render(w.AutoFix)))
			}
		}
		b.WriteString("\n")
	}

	if len(report.Suggestions) > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("💡 %d suggestion(s):", len(report.Suggestions))) + "\n")
		for _, s := range report.Suggestions {
			text := s.Suggestion
			if text == "" {
				text = s.Message
			}
			fmt.Fprintf(&b, "   %s: %s\n", fieldStyle.Render(s.Field), dimStyle.Render(text))
		}
	}

	if report.AutoFixes != nil && report.AutoFixes.Len() > 0 {
		data, err := json.MarshalIndent(report.AutoFixes, "", "  ")
		if err == nil {
			b.WriteString("\n" + titleStyle.Render("Corrected arguments:") + "\n")
			b.Write(data)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderCoercion renders the outcome of a single coercion attempt.
func RenderCoercion(value domain.Value, target domain.Tag, ok bool, result domain.Value, message string) string {
	if !ok {
		return fmt.Sprintf("%s %s → %s: %s\n", failStyle.Render("✗"), domain.Render(value), target, message)
	}
	return fmt.Sprintf("%s %s → %s  %s\n", passStyle.Render("✓"), domain.Render(value), domain.Render(result), dimStyle.Render(message))
}
