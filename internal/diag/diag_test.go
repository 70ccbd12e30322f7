package diag

import (
	"strings"
	"testing"

	"github.com/iziteam/izi/internal/token"
)

func TestFormatIncludesFileAndPosition(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Message: "undefined name 'x'", File: "main.izi", Pos: token.Position{Line: 2, Column: 5}}
	out := d.Format("var y = 1\nprint(x)\n", false)
	if !strings.Contains(out, "Error in main.izi:2:5") {
		t.Errorf("Format output missing header:\n%s", out)
	}
	if !strings.Contains(out, "print(x)") {
		t.Errorf("Format output missing source line:\n%s", out)
	}
	if !strings.Contains(out, "undefined name 'x'") {
		t.Errorf("Format output missing message:\n%s", out)
	}
}

func TestFormatWithoutFileUsesAtForm(t *testing.T) {
	d := Diagnostic{Severity: SeverityWarning, Message: "unused local 'n'", Pos: token.Position{Line: 1, Column: 1}}
	out := d.Format("var n = 1\n", false)
	if !strings.Contains(out, "Warning at 1:1") {
		t.Errorf("Format output = %q, want 'Warning at 1:1' header", out)
	}
}

func TestFormatCaretAlignsToColumn(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Message: "boom", File: "f.izi", Pos: token.Position{Line: 1, Column: 3}}
	out := d.Format("ab+\n", false)
	lines := strings.Split(out, "\n")
	// lines[1] is "<lineNumPrefix>ab+", lines[2] is the caret line.
	caretLine := lines[2]
	if !strings.HasSuffix(caretLine, "  ^") {
		t.Errorf("caret line = %q, want caret under column 3", caretLine)
	}
}

func TestFormatColorWrapsCaretAndMessage(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Message: "boom", Pos: token.Position{Line: 1, Column: 1}}
	out := d.Format("x\n", true)
	if !strings.Contains(out, "\033[") {
		t.Error("color=true should emit ANSI escape codes")
	}
}

func TestFormatNoSourceLineOmitsCaret(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Message: "boom", Pos: token.Position{Line: 99, Column: 1}}
	out := d.Format("only one line\n", false)
	if strings.Contains(out, "^") {
		t.Error("should not emit a caret when the line number is out of range")
	}
}

func TestFormatAllEmpty(t *testing.T) {
	if out := FormatAll(nil, "", false); out != "" {
		t.Errorf("FormatAll(nil) = %q, want empty", out)
	}
}

func TestFormatAllSingleHasNoSummaryHeader(t *testing.T) {
	diags := []Diagnostic{{Severity: SeverityError, Message: "boom", Pos: token.Position{Line: 1, Column: 1}}}
	out := FormatAll(diags, "x\n", false)
	if strings.Contains(out, "diagnostic(s)") {
		t.Error("a single diagnostic should not get a summary header")
	}
}

func TestFormatAllMultipleHasSummaryHeaderAndOrder(t *testing.T) {
	diags := []Diagnostic{
		{Severity: SeverityError, Message: "first", Pos: token.Position{Line: 1, Column: 1}},
		{Severity: SeverityWarning, Message: "second", Pos: token.Position{Line: 2, Column: 1}},
	}
	out := FormatAll(diags, "a\nb\n", false)
	if !strings.Contains(out, "2 diagnostic(s)") {
		t.Errorf("missing summary header: %s", out)
	}
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Error("diagnostics should be rendered in order")
	}
}

func TestHasErrors(t *testing.T) {
	onlyWarning := []Diagnostic{{Severity: SeverityWarning}}
	if HasErrors(onlyWarning) {
		t.Error("a warning-only set should not HasErrors")
	}
	withError := []Diagnostic{{Severity: SeverityWarning}, {Severity: SeverityError}}
	if !HasErrors(withError) {
		t.Error("a set containing an error should HasErrors")
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{SeverityError: "error", SeverityWarning: "warning", SeverityInfo: "info"}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}
