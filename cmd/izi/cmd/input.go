package cmd

import (
	"fmt"
	"os"
)

// readInput resolves the source text for a run/lex/parse/analyze
// subcommand: either the -e/--eval inline string, the given file path,
// or an error if neither was supplied (mirrors the teacher's
// run.go/lex.go input-resolution shape).
func readInput(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
