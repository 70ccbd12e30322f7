package cmd

import (
	"fmt"
	"os"

	"github.com/iziteam/izi/internal/analyzer"
	"github.com/iziteam/izi/internal/diag"
	"github.com/iziteam/izi/internal/evaluator"
	"github.com/iziteam/izi/internal/lexer"
	"github.com/iziteam/izi/internal/optimizer"
	"github.com/iziteam/izi/internal/parser"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr string
	runDumpAST  bool
	runOptimize bool
	runNoAnalyze bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an izi script",
	Long: `Execute an izi program from a file or inline expression.

Examples:
  izi run script.izi
  izi run -e "print(1 + 2);"
  izi run --optimize script.izi`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().BoolVar(&runOptimize, "optimize", false, "run the constant-folding optimizer before evaluation")
	runCmd.Flags().BoolVar(&runNoAnalyze, "no-analyze", false, "skip the advisory semantic analyzer pass")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(runEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			d := diag.Diagnostic{Severity: diag.SeverityError, Message: e.Message, File: filename, Pos: e.Pos}
			fmt.Fprint(os.Stderr, d.Format(input, true))
			fmt.Fprintln(os.Stderr)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	if !runNoAnalyze {
		diags := analyzer.New(filename).Analyze(program)
		if len(diags) > 0 {
			fmt.Fprint(os.Stderr, diag.FormatAll(diags, input, true))
			fmt.Fprintln(os.Stderr)
			// Analyzer findings are advisory (spec §4.3): execution
			// proceeds even when diagnostics -- including errors -- are
			// present, since the analyzer never blocks the evaluator.
		}
	}

	if runOptimize {
		program = optimizer.Optimize(program)
	}

	if runDumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	ev := evaluator.New(
		evaluator.WithStdout(os.Stdout),
		evaluator.WithArgs(args),
		evaluator.WithFile(filename),
	)

	_, runtimeErr := ev.Run(program)
	if runtimeErr != nil {
		fmt.Fprintln(os.Stderr, runtimeErr.FullMessage())
		return fmt.Errorf("execution failed")
	}

	return nil
}
