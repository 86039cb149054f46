// Command dqcheck validates one DSL query against a DuckDB database and prints
// the report, exiting non-zero when the report holds an error.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:           "dqcheck [flags] [query]",
	Short:         "Validate and dry-run a dataquery DSL query",
	Long:          `dqcheck compiles a query, dry-runs it limited to one row and prints the diagnostics. The query is read from stdin when no argument is given or the argument is "-".`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Flags().String("db", "", "DuckDB database file (empty for in-memory)")
	rootCmd.Flags().String("init-sql", "", "SQL file executed before validation to seed the database")
	rootCmd.Flags().String("lang", "en", "message language")
	rootCmd.Flags().String("catalog", "", "TOML file with message overrides")
	rootCmd.Flags().String("format", "pretty", "output format (pretty|json|html)")
	rootCmd.Flags().Bool("no-mutations", false, "compile INSERT, UPDATE and DELETE without dry-running them")
	rootCmd.Flags().Bool("verbose", false, "log pipeline stages to stderr")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
