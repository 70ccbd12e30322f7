package cmd

import (
	"fmt"
	"os"

	"github.com/iziteam/izi/internal/diag"
	"github.com/iziteam/izi/internal/lexer"
	"github.com/iziteam/izi/internal/parser"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	parseDumpAST  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an izi file and display the AST",
	Long: `Parse izi source and display its Abstract Syntax Tree.

By default prints the AST's source-like String() rendering. With
--dump-ast, prints the full Go struct tree via kr/pretty instead, which
is useful for seeing exact node shapes (literal kinds, pattern types)
that String() collapses back into source syntax.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST struct tree")
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(parseEvalExpr, args)
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

	if parseDumpAST {
		pretty.Println(program)
	} else {
		fmt.Println(program.String())
	}
	return nil
}
