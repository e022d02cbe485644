package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sysmltool/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sysmltool",
	Short: "SysML v2 batch validator and structure explorer",
	Long: `sysmltool loads interdependent SysML v2 documents in dependency order,
resolves cross-references against a shared symbol universe and reports
reconciled diagnostics`,
}

// main wires the subcommands and persistent flags, then executes the
// root command. A command error exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(structureCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("libdir", "", "standard library directory (overrides $SYSML_LIBRARY and auto-detection)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per document")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
