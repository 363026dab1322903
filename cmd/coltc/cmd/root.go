package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/colt-lang/coltc/internal/config"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configPath  string
	diagFormat  string
	noColor     bool
	cli         config.CLI
)

var rootCmd = &cobra.Command{
	Use:   "coltc",
	Short: "Colt front-end compiler driver",
	Long: `coltc drives the Colt compiler front end: lexing, AST building and
diagnostic reporting for the Colt systems language.

Subcommands:
  lex    tokenize a source file or inline expression
  parse  build and print the AST, with full diagnostics
  repl   an interactive read-eval-print loop over the same pipeline`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadFile(configPath, config.DefaultCLI())
		if err != nil {
			return err
		}
		if diagFormat != "" {
			loaded.DiagnosticsFormat = diagFormat
		}
		if noColor {
			loaded.Color = false
		}
		if loaded.DiagnosticsFormat != "text" && loaded.DiagnosticsFormat != "json" {
			return fmt.Errorf("--diagnostics-format must be %q or %q, got %q", "text", "json", loaded.DiagnosticsFormat)
		}
		cli = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".coltc.yaml", "path to a coltc config file")
	rootCmd.PersistentFlags().StringVar(&diagFormat, "diagnostics-format", "", "diagnostics output format: text or json (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostic output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
