// Package diag formats diagnostics — parse errors and analyzer
// findings — with source context, grounded on the
// teacher's internal/errors package: a file:line:col header, the
// offending source line, a caret pointing at the column, and an
// optional ANSI-colored rendering for terminal output.
package diag

import (
	"fmt"
	"strings"

	"github.com/iziteam/izi/internal/token"
)

// Severity classifies a Diagnostic (spec §4.3: analyzer findings come
// in more than one severity, unlike a parser's always-fatal errors).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem with its source position.
type Diagnostic struct {
	Severity Severity
	Message  string
	File     string
	Pos      token.Position
}

// Format renders d against source (the full file text d.Pos indexes
// into) with a header, the offending line, and a caret, following the
// teacher's CompilerError.Format shape.
func (d Diagnostic) Format(source string, color bool) string {
	var sb strings.Builder

	label := capitalize(d.Severity.String())
	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", label, d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d\n", label, d.Pos.Line, d.Pos.Column)
	}

	if line := sourceLine(source, d.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+d.Pos.Column-1))
		if color {
			sb.WriteString(caretColor(d.Severity))
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func caretColor(sev Severity) string {
	switch sev {
	case SeverityError:
		return "\033[1;31m"
	case SeverityWarning:
		return "\033[1;33m"
	default:
		return "\033[1;34m"
	}
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders every diagnostic in order, grouped under a summary
// header when there is more than one (spec §4.3 "the analyzer reports
// every diagnostic it finds, not just the first").
func FormatAll(diags []Diagnostic, source string, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(source, color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d diagnostic(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(source, color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// HasErrors reports whether diags contains at least one SeverityError
// entry (warnings/info alone do not fail a run).
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
