package cmd

import (
	"fmt"
	"os"

	"github.com/iziteam/izi/internal/analyzer"
	"github.com/iziteam/izi/internal/diag"
	"github.com/iziteam/izi/internal/lexer"
	"github.com/iziteam/izi/internal/parser"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	analyzeEvalExpr string
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run only the semantic analyzer and print its diagnostics",
	Long: `Parse izi source and run the advisory semantic analyzer pass,
printing every diagnostic it finds (undefined names, duplicate
declarations, unreachable code, unused locals, and more).

With --json, diagnostics are emitted as a JSON array suitable for an
LSP front-end or CI lint step to consume.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeEvalExpr, "eval", "e", "", "analyze inline code instead of reading from file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit diagnostics as JSON")
}

func runAnalyze(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(analyzeEvalExpr, args)
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

	diags := analyzer.New(filename).Analyze(program)

	if analyzeJSON {
		out, err := diagnosticsJSON(diags)
		if err != nil {
			return err
		}
		fmt.Println(out)
	} else {
		if len(diags) == 0 {
			fmt.Println("no diagnostics")
		} else {
			fmt.Print(diag.FormatAll(diags, input, false))
		}
	}

	if diag.HasErrors(diags) {
		return fmt.Errorf("analysis found %d error(s)", countErrors(diags))
	}
	return nil
}

func countErrors(diags []diag.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			n++
		}
	}
	return n
}

// diagnosticsJSON builds a JSON array of diagnostics by incrementally
// setting fields with sjson and reading them back with gjson, rather
// than hand-rolling string concatenation -- the same set-then-query
// idiom the teacher's go-snaps stack already pulls in these libraries
// for (see DESIGN.md).
func diagnosticsJSON(diags []diag.Diagnostic) (string, error) {
	doc := "[]"
	var err error
	for i, d := range diags {
		base := fmt.Sprintf("%d", i)
		doc, err = sjson.Set(doc, base+".severity", d.Severity.String())
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, base+".message", d.Message)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, base+".file", d.File)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, base+".line", d.Pos.Line)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, base+".column", d.Pos.Column)
		if err != nil {
			return "", err
		}
	}
	// Round-trip through gjson to produce stable indentation via
	// @pretty, confirming the document is well-formed JSON.
	return gjson.Parse(doc).Get("@pretty").String(), nil
}
