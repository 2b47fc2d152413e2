package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"heic2jpg/internal/processor"
)

// RenderSummary draws rows as a two-column table.
func RenderSummary(rows []processor.SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderFailures lists every failed file with its reason, followed by
// soft warnings on files that did convert. It returns "" when both are empty.
func RenderFailures(failures, warnings []processor.FileFailure) string {
	var lines []string
	if len(failures) > 0 {
		lines = append(lines, failStyle.Render(fmt.Sprintf("Failed files (%d):", len(failures))))
		for _, f := range failures {
			lines = append(lines, fmt.Sprintf("  %s %s %s",
				bulletStyle.Render("-"),
				pathStyle.Render(f.Path),
				dimStyle.Render(f.Kind+": "+f.Message),
			))
		}
	}
	if len(warnings) > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("Warnings (%d):", len(warnings))))
		for _, w := range warnings {
			lines = append(lines, fmt.Sprintf("  %s %s %s",
				bulletStyle.Render("-"),
				pathStyle.Render(w.Path),
				dimStyle.Render(w.Kind+": "+w.Message),
			))
		}
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	valueStyle  = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorFail)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
	pathStyle   = lipgloss.NewStyle().Foreground(ColorAccent)
	bulletStyle = lipgloss.NewStyle().Foreground(ColorDim)
)
