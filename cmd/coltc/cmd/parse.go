package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colt-lang/coltc/internal/diag"
	"github.com/colt-lang/coltc/internal/expr"
	"github.com/colt-lang/coltc/internal/source"
	"github.com/colt-lang/coltc/pkg/frontend"
)

var (
	parseEval    bool
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Colt source and report diagnostics",
	Long: `Parse Colt source code, printing every diagnostic the lexer and
AST builder produce.

If no file is provided, reads from stdin. Use -e to parse an inline
expression instead. Diagnostics render as colored text by default;
pass --diagnostics-format json (or set it in a .coltc.yaml) to emit a
JSON array instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseEval, "expression", "e", false, "parse an inline expression from the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the parsed statement tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	var input, path string
	var err error
	if parseEval {
		if len(args) == 0 {
			return fmt.Errorf("no expression provided, use -e \"...\"")
		}
		input, path = args[0], "<eval>"
	} else {
		input, path, err = readSource("", args)
		if err != nil {
			return err
		}
	}

	collector := diag.NewCollector()
	unit := frontend.Compile(input, collector, frontend.Options{
		Path:    path,
		WarnFor: cli.WarnFor,
	})

	if err := renderDiagnostics(collector, cli.DiagnosticsFormat); err != nil {
		return err
	}

	if parseDumpAST {
		fmt.Println("Statements:")
		for _, stmt := range unit.Stmts {
			dumpStmt(unit, stmt, 1)
		}
	}

	counts := collector.Counts()
	if counts.Errors > 0 {
		return fmt.Errorf("parsing failed with %d error(s)", counts.Errors)
	}
	return nil
}

// renderDiagnostics prints every diagnostic the collector gathered,
// either as colored text through a Console or as a JSON array.
func renderDiagnostics(collector *diag.Collector, format string) error {
	if format == "json" {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		return enc.Encode(collector.Diagnostics)
	}

	console := diag.NewConsole(os.Stderr, cli.Color)
	for _, d := range collector.Diagnostics {
		reportOne(console, d)
	}
	return nil
}

func reportOne(console *diag.Console, d diag.Diagnostic) {
	var info *source.SourceInfo
	if d.HasInfo {
		copied := d.Info
		info = &copied
	}
	switch d.Severity {
	case diag.Message:
		console.Message(d.Text, info, d.ID)
	case diag.Warning:
		console.Warn(d.Text, info, d.ID)
	case diag.Error:
		console.Error(d.Text, info, d.ID)
	}
}

func dumpStmt(u *frontend.Unit, h expr.Stmt, indent int) {
	pad := strings.Repeat("  ", indent)
	s := u.Arena.Stmt(h)
	switch s.Kind {
	case expr.StmtVarDeclKind:
		fmt.Printf("%sVarDecl %s\n", pad, s.Name)
	case expr.StmtGlobalDeclKind:
		fmt.Printf("%sGlobalDecl %s\n", pad, s.Name)
	case expr.StmtScopeKind:
		fmt.Printf("%sScope (%d statements)\n", pad, len(s.Children))
		for _, c := range s.Children {
			dumpStmt(u, c, indent+1)
		}
	case expr.StmtConditionKind:
		fmt.Printf("%sCondition\n", pad)
		dumpStmt(u, s.Then, indent+1)
		if s.Else.Valid() {
			dumpStmt(u, s.Else, indent+1)
		}
	case expr.StmtExprKind:
		fmt.Printf("%sExprStmt\n", pad)
	default:
		fmt.Printf("%sError\n", pad)
	}
}
