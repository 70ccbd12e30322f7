package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iziteam/izi/internal/config"
	"github.com/iziteam/izi/internal/evaluator"
)

func TestEvalLinePrintsExpressionResult(t *testing.T) {
	var buf bytes.Buffer
	ev := evaluator.New(evaluator.WithStdout(&buf), evaluator.WithFile("<repl>"))
	evalLine(ev, "1 + 2;", config.Default())
	if strings.TrimSpace(buf.String()) != "3" {
		t.Errorf("evalLine(1+2) printed %q, want 3", buf.String())
	}
}

func TestEvalLineDeclarationPersistsAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	ev := evaluator.New(evaluator.WithStdout(&buf), evaluator.WithFile("<repl>"))
	evalLine(ev, "var counter = 41;", config.Default())
	buf.Reset()
	evalLine(ev, "counter + 1;", config.Default())
	if strings.TrimSpace(buf.String()) != "42" {
		t.Errorf("second evalLine call = %q, want 42 (counter should persist)", buf.String())
	}
}

func TestEvalLineOptimizeConfigFoldsConstants(t *testing.T) {
	var buf bytes.Buffer
	ev := evaluator.New(evaluator.WithStdout(&buf), evaluator.WithFile("<repl>"))
	cfg := config.Default()
	cfg.Optimize = true
	evalLine(ev, "1 + 2;", cfg)
	if strings.TrimSpace(buf.String()) != "3" {
		t.Errorf("evalLine with Optimize=true printed %q, want 3", buf.String())
	}
}

func TestGlobalsNamesIncludeREPLDeclarations(t *testing.T) {
	var buf bytes.Buffer
	ev := evaluator.New(evaluator.WithStdout(&buf), evaluator.WithFile("<repl>"))
	evalLine(ev, "var z = 1;", config.Default())
	evalLine(ev, "var a = 2;", config.Default())

	names := ev.Globals().Names()
	if len(names) < 2 {
		t.Fatalf("Globals().Names() = %v, want at least z and a", names)
	}
}
