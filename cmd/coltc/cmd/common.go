package cmd

import (
	"fmt"
	"io"
	"os"
)

// readSource resolves the source text for a lex/parse invocation: an
// inline -e expression wins, then a file argument, then stdin. The
// returned path is used for WarnFor.When path-scoped overrides and
// diagnostic labeling.
func readSource(eval string, args []string) (input, path string, err error) {
	switch {
	case eval != "":
		return eval, "<eval>", nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}
