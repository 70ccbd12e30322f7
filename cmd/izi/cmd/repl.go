package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/iziteam/izi/internal/analyzer"
	"github.com/iziteam/izi/internal/config"
	"github.com/iziteam/izi/internal/diag"
	"github.com/iziteam/izi/internal/evaluator"
	"github.com/iziteam/izi/internal/lexer"
	"github.com/iziteam/izi/internal/optimizer"
	"github.com/iziteam/izi/internal/parser"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive izi REPL",
	Long: `Read one line at a time, parse and evaluate it against a single
Evaluator/Environment shared across the whole session, so variables and
functions declared on one line are visible on the next.

Reads .izirc.yaml from the current directory if present (prompt string,
whether to auto-optimize each line, and color output).`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("failed to load .izirc.yaml: %w", err)
	}

	ev := evaluator.New(evaluator.WithStdout(os.Stdout), evaluator.WithCwd(cwd), evaluator.WithFile("<repl>"))

	var historyFile *os.File
	if cfg.HistoryFile != "" {
		historyFile, _ = os.OpenFile(cfg.HistoryFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if historyFile != nil {
			defer historyFile.Close()
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(cfg.Prompt)
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line == ":vars" {
			printVars(ev)
			continue
		}
		if historyFile != nil {
			fmt.Fprintln(historyFile, line)
		}

		evalLine(ev, line, cfg)
	}
}

func evalLine(ev *evaluator.Evaluator, line string, cfg *config.Config) {
	l := lexer.New(line)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			d := diag.Diagnostic{Severity: diag.SeverityError, Message: e.Message, File: "<repl>", Pos: e.Pos}
			fmt.Fprint(os.Stderr, d.Format(line, cfg.Color))
			fmt.Fprintln(os.Stderr)
		}
		return
	}

	diags := analyzer.New("<repl>").Analyze(program)
	if len(diags) > 0 {
		fmt.Fprint(os.Stderr, diag.FormatAll(diags, line, cfg.Color))
		fmt.Fprintln(os.Stderr)
	}

	if cfg.Optimize {
		program = optimizer.Optimize(program)
	}

	result, runtimeErr := ev.Run(program)
	if runtimeErr != nil {
		fmt.Fprintln(os.Stderr, runtimeErr.FullMessage())
		return
	}
	if result != nil {
		fmt.Fprintln(ev.Stdout(), result.String())
	}
}

// printVars lists the names defined directly in the global scope, for
// the REPL's ":vars" inspection command.
func printVars(ev *evaluator.Evaluator) {
	names := ev.Globals().Names()
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}
