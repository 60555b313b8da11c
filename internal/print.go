package internal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	tt "github.com/jsxgrep/jsxgrep/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warnStyle    = color.New(color.FgYellow, color.Bold)
	infoStyle    = color.New(color.FgBlue, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// FormatMatchesWithArrows renders matches with the offending source line and
// a caret marking the match column.
func FormatMatchesWithArrows(matches []tt.Match, source *SourceCode) string {
	var builder strings.Builder
	for _, m := range matches {
		builder.WriteString(formatMatchHeader(m))
		builder.WriteString(formatMatchBody(m, source))
	}
	return builder.String()
}

func formatMatchHeader(m tt.Match) string {
	return severityStyle(m.Severity).Sprint(m.Severity+": ") + ruleStyle.Sprint(m.Rule) + "\n" +
		lineStyle.Sprint(" --> ") + fileStyle.Sprintf("%s:%d:%d", m.Filename, m.Line, m.Column) + "\n"
}

func severityStyle(severity string) *color.Color {
	switch severity {
	case "error":
		return errorStyle
	case "info":
		return infoStyle
	default:
		return warnStyle
	}
}

func formatMatchBody(m tt.Match, source *SourceCode) string {
	if source == nil || m.Line < 1 || m.Line > len(source.Lines) {
		return messageStyle.Sprintf("  %s\n\n", m.Message)
	}

	var result strings.Builder

	lineNumberStr := fmt.Sprintf("%d", m.Line)
	padding := strings.Repeat(" ", len(lineNumberStr)-1)
	result.WriteString(lineStyle.Sprintf("  %s|\n", padding))

	line := expandTabs(source.Lines[m.Line-1])
	result.WriteString(lineStyle.Sprintf("%d | ", m.Line))
	result.WriteString(line + "\n")

	visualColumn := calculateVisualColumn(line, m.Column)
	result.WriteString(lineStyle.Sprintf("  %s| ", padding))
	result.WriteString(strings.Repeat(" ", visualColumn))
	result.WriteString(messageStyle.Sprintf("^ %s\n\n", m.Message))

	return result.String()
}

func expandTabs(line string) string {
	var expanded strings.Builder
	for i, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (i % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
		} else {
			expanded.WriteRune(ch)
		}
	}
	return expanded.String()
}

func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}
