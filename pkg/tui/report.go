package tui

import (
	"fmt"
	"strings"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// RenderDiagnostics formats the diagnostics report as a styled console
// summary: counts per kind, then the warning and error entries.
func RenderDiagnostics(diags []model.Diagnostic) string {
	if len(diags) == 0 {
		return successStyle.Render("✨ No diagnostics — clean extraction.")
	}

	counts := make(map[model.DiagnosticKind]int)
	order := []model.DiagnosticKind{}
	worst := model.SeverityInfo
	for _, d := range diags {
		if counts[d.Kind] == 0 {
			order = append(order, d.Kind)
		}
		counts[d.Kind]++
		if severityRank(d.Severity) > severityRank(worst) {
			worst = d.Severity
		}
	}

	var sb strings.Builder
	header := fmt.Sprintf("--- Diagnostics (%d) ---", len(diags))
	switch worst {
	case model.SeverityError:
		sb.WriteString(errorStyle.Render(header))
	case model.SeverityWarning:
		sb.WriteString(warnStyle.Render(header))
	default:
		sb.WriteString(accentStyle.Render(header))
	}
	sb.WriteByte('\n')

	for _, kind := range order {
		sb.WriteString(fmt.Sprintf("  %s %d\n", dimStyle.Render(string(kind)+":"), counts[kind]))
	}

	for _, d := range diags {
		if d.Severity == model.SeverityInfo {
			continue
		}
		line := fmt.Sprintf("  • [%s] %s", d.Kind, d.Message)
		if d.Severity == model.SeverityError {
			line = errorStyle.Render(line)
		} else {
			line = warnStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return sb.String()
}

func severityRank(s model.Severity) int {
	switch s {
	case model.SeverityError:
		return 2
	case model.SeverityWarning:
		return 1
	}
	return 0
}
