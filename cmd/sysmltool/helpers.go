package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sysmltool/internal/driver"
	"sysmltool/internal/observ"
	"sysmltool/internal/stdlib"
)

// resolveRunnerOptions builds driver options from the persistent flags,
// the project manifest and the environment. The standard library
// directory wins in the order: --libdir, manifest [library].dir,
// $SYSML_LIBRARY, conventional install locations.
func resolveRunnerOptions(cmd *cobra.Command, manifest *projectManifest, jobs int) (driver.Options, error) {
	libFlag, err := cmd.Root().PersistentFlags().GetString("libdir")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get libdir flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}

	// An explicit directory is handed to the runner as given: if it is
	// unusable, the batch reports that uniformly on every document
	// instead of silently validating without a library.
	libDir := libFlag
	if libDir == "" {
		libDir = manifest.manifestLibraryDir()
	}
	if libDir == "" {
		libDir, _ = stdlib.Locate("")
	}

	// Cache failures only cost a rebuild on the next run.
	var cache *stdlib.Cache
	if c, err := stdlib.OpenCache("sysmltool"); err == nil {
		cache = c
	}

	wd, _ := os.Getwd()
	return driver.Options{
		LibraryDir:     libDir,
		Cache:          cache,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Timings:        showTimings,
		BaseDir:        wd,
	}, nil
}

func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}

func printTimings(w io.Writer, report *observ.Report) {
	if report == nil {
		return
	}
	fmt.Fprintln(w, "timings:")
	for _, p := range report.Phases {
		fmt.Fprintf(w, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(w, "  // %s", p.Note)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %-20s %7.2f ms\n", "total", report.TotalMS)
}

// silentExit suppresses cobra's usage output when diagnostics were
// already printed and only the exit code matters.
func silentExit(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
