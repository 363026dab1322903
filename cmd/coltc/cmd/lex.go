package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/colt-lang/coltc/internal/diag"
	"github.com/colt-lang/coltc/internal/lexer"
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/pkg/token"
)

var (
	lexEval     string
	lexShowPos  bool
	lexOnlyErrs bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Colt file or expression",
	Long: `Tokenize (lex) a Colt program and print the resulting tokens.

Examples:
  # Tokenize a script file
  coltc lex script.colt

  # Tokenize an inline expression
  coltc lex -e "let x: i32 = 42;"

  # Show token positions (line:column)
  coltc lex --show-pos script.colt

  # Show only illegal tokens
  coltc lex --only-errors script.colt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "show only illegal tokens")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	rep := diag.NewConsole(os.Stderr, cli.Color)

	buf := lexer.Lex(input, rep)

	illegal := 0
	for i := 0; i < buf.Len(); i++ {
		h := source.TokenHandle{Index: i}
		kind := buf.Kind(h)
		if kind == token.EOF {
			break
		}
		if kind == token.ILLEGAL {
			illegal++
		}
		if lexOnlyErrs && kind != token.ILLEGAL {
			continue
		}
		printToken(buf, h, kind)
	}

	if verbose {
		fmt.Printf("---\ntotal tokens: %d\n", buf.Len())
		if illegal > 0 {
			fmt.Printf("illegal tokens: %d\n", illegal)
		}
	}

	if lexOnlyErrs && illegal > 0 {
		return fmt.Errorf("found %d illegal token(s)", illegal)
	}
	return nil
}

func printToken(buf *source.Buffer, h source.TokenHandle, kind token.Type) {
	output := fmt.Sprintf("[%-10s]", kind)
	switch {
	case kind.IsLiteral():
		output += fmt.Sprintf(" %d", buf.Literal(h))
	case kind == token.IDENT:
		output += fmt.Sprintf(" %q", buf.Identifier(h))
	default:
		output += ""
	}
	if lexShowPos {
		pos := buf.At(h).Pos
		output += fmt.Sprintf(" @%d:%d", pos.Line, pos.Column)
	}
	fmt.Println(output)
}
