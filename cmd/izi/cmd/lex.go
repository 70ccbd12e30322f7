package cmd

import (
	"fmt"

	"github.com/iziteam/izi/internal/lexer"
	"github.com/iziteam/izi/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr   string
	lexShowPos    bool
	lexOnlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an izi file or expression",
	Long: `Tokenize (lex) an izi program and print the resulting tokens.

Examples:
  izi lex script.izi
  izi lex -e "var x = 42"
  izi lex --show-pos script.izi`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "show only illegal/error tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, _, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)

	tokenCount := 0
	errorCount := 0
	for {
		tok := l.Next()

		if lexOnlyErrors && tok.Kind != token.Error {
			if tok.Kind == token.EndOfFile {
				break
			}
			continue
		}

		tokenCount++
		if tok.Kind == token.Error {
			errorCount++
		}

		printToken(tok)

		if tok.Kind == token.EndOfFile {
			break
		}
	}

	if lexOnlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	if tok.Kind == token.EndOfFile {
		output = "EOF"
	} else if tok.Lexeme == "" {
		output = fmt.Sprintf("[%-12s]", tok.Kind)
	} else {
		output = fmt.Sprintf("[%-12s] %q", tok.Kind, tok.Lexeme)
	}
	if lexShowPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(output)
}
