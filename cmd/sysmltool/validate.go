package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sysmltool/internal/diagfmt"
	"sysmltool/internal/driver"
	"sysmltool/internal/model"
	"sysmltool/internal/version"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <file.sysml|directory>...",
	Short: "Validate SysML v2 documents",
	Long:  `Validate one or more SysML v2 textual documents or directories, loading them in dependency order and reporting syntax, reference and semantic issues`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runValidate,
}

// init registers CLI flags for the validate command used by runValidate.
// It configures output format, warning handling, concurrency, note
// inclusion, path rendering, the progress UI and the verbose tree dump.
func init() {
	validateCmd.Flags().StringP("format", "f", "pretty", "output format (pretty|json|junit)")
	validateCmd.Flags().Int("jobs", 0, "max parallel workers for semantic validation (0=auto)")
	validateCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	validateCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	validateCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	validateCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	validateCmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	validateCmd.Flags().BoolP("verbose", "v", false, "print the element tree of each valid document")
}

// runValidate executes the "validate" command: it resolves the input set
// from arguments or the project manifest, runs the batch pipeline, formats
// the results in the chosen output format, and exits with a non-zero
// status when any document carries error diagnostics.
func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}

	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	manifest, _, err := loadProjectManifest(wd)
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = manifest.manifestValidatePaths()
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files (pass paths or set [validate].paths in sysml.toml)")
	}

	files, err := collectModelFiles(inputs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .sysml files to validate")
	}

	opts, err := resolveRunnerOptions(cmd, manifest, jobs)
	if err != nil {
		return err
	}

	color, err := useColor(cmd)
	if err != nil {
		return err
	}

	// The progress view owns the terminal while the batch runs, so it is
	// only offered for the human-readable format.
	useTUI := format == "pretty" && !quiet && shouldUseTUI(mode)

	var batch *driver.Batch
	if useTUI {
		batch, err = runValidateWithUI(cmd.Context(), "validate", files, opts)
		if err != nil {
			return fmt.Errorf("progress UI failed: %w", err)
		}
	} else {
		batch = driver.NewRunner(opts).ValidateAll(cmd.Context(), files)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:      color,
			PathMode:   pathMode,
			ShowNotes:  withNotes,
			NoWarnings: noWarnings,
			Quiet:      quiet,
		}
		diagfmt.Pretty(os.Stdout, batch, prettyOpts)
		if verbose {
			for i := range batch.Results {
				r := &batch.Results[i]
				if !r.HasErrors() && r.Tree != nil {
					fmt.Fprintf(os.Stdout, "\nElement tree of %s:\n", r.Path)
					printElementTree(os.Stdout, r.Tree)
				}
			}
		}
		if !quiet {
			diagfmt.Summary(os.Stdout, batch, color)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		}
		if err := diagfmt.JSON(os.Stdout, batch, jsonOpts); err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}
	case "junit":
		meta := diagfmt.JUnitMeta{
			SuiteName:   "validate",
			ToolVersion: version.Version,
		}
		if err := diagfmt.JUnit(os.Stdout, batch, meta); err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if batch.Timing != nil {
		printTimings(os.Stdout, batch.Timing)
	}

	failed := batch.HasErrors()
	if warningsAsErrors && !failed {
		_, warnings := batch.Counts()
		failed = warnings > 0
	}
	if failed {
		return silentExit(cmd)
	}
	return nil
}

// printElementTree dumps the element hierarchy of one document, one line
// per element. Content nodes never appear; an anonymous root is
// transparent and its children print at the top level.
func printElementTree(w io.Writer, ns *model.Namespace) {
	var print func(n *model.Node, depth int)
	print = func(n *model.Node, depth int) {
		if model.ContentOnly(n.Kind) {
			return
		}
		fmt.Fprintf(w, "%s* [%s] %s\n", strings.Repeat("  ", depth), n.Kind, n.Name)
		for _, c := range n.Children {
			print(c, depth+1)
		}
	}
	root := ns.Root
	if root == nil {
		return
	}
	if !root.HasName() {
		for _, c := range root.Children {
			print(c, 0)
		}
		return
	}
	print(root, 0)
}
