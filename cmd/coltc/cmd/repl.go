package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/colt-lang/coltc/internal/diag"
	"github.com/colt-lang/coltc/internal/module"
	"github.com/colt-lang/coltc/internal/types"
	"github.com/colt-lang/coltc/pkg/frontend"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Long: `Start an interactive session: each line is parsed through the same
pipeline coltc parse uses, with declarations accumulating into a shared
module table across lines so later lines can reference earlier ones.

Type '.exit' or press Ctrl+D to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

var (
	replErrColor  = color.New(color.FgRed)
	replWarnColor = color.New(color.FgYellow)
	replDimColor  = color.New(color.Faint)
)

func runRepl(cmd *cobra.Command, args []string) error {
	rl, err := readline.New("colt> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "coltc repl — type '.exit' or Ctrl+D to quit")

	tbl := types.NewTable()
	mods := module.NewTable()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(rl.Stdout(), "bye")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(rl.Stdout(), "bye")
			return nil
		}
		rl.SaveHistory(line)

		evalLine(rl.Stdout(), line, tbl, mods)
	}
}

// evalLine parses one REPL line through the shared type/module tables so
// declarations from earlier lines stay visible to later ones, reporting
// whatever diagnostics it produced without ever exiting the loop.
func evalLine(w io.Writer, line string, tbl *types.Table, mods *module.Table) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(w, "%s\n", replErrColor.Sprintf("panic: %v", r))
		}
	}()

	collector := diag.NewCollector()
	if !strings.HasSuffix(strings.TrimSpace(line), ";") {
		line += ";"
	}
	frontend.Compile(line, collector, frontend.Options{
		Path:    "<repl>",
		WarnFor: cli.WarnFor,
		Types:   tbl,
		Mods:    mods,
	})

	for _, d := range collector.Diagnostics {
		switch d.Severity {
		case diag.Error:
			fmt.Fprintln(w, replErrColor.Sprintf("%s", d.Text))
		case diag.Warning:
			fmt.Fprintln(w, replWarnColor.Sprintf("%s", d.Text))
		default:
			fmt.Fprintln(w, replDimColor.Sprintf("%s", d.Text))
		}
	}
}
