// Command coltc is the command-line driver for the Colt compiler
// front end: tokenizing, parsing and an interactive REPL over the same
// lexer/builder pipeline pkg/frontend exposes as a library.
package main

import (
	"fmt"
	"os"

	"github.com/colt-lang/coltc/cmd/coltc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
