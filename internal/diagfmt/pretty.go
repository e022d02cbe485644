// Package diagfmt renders aggregated batch results as a human-readable
// report, as JSON, or as a JUnit-style XML document for CI.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"sysmltool/internal/diag"
	"sysmltool/internal/driver"
	"sysmltool/internal/source"
)

const bannerWidth = 60

var (
	errMark  = color.New(color.FgRed, color.Bold)
	warnMark = color.New(color.FgYellow)
	okMark   = color.New(color.FgGreen)
)

func mark(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

// Pretty writes the per-document report. Each document gets a banner,
// one line per diagnostic and a FAILED/OK summary in the order the
// documents were requested; batch-wide warnings come first.
func Pretty(w io.Writer, batch *driver.Batch, opts PrettyOpts) {
	for i := range batch.Warnings {
		d := &batch.Warnings[i]
		if opts.NoWarnings && d.Severity == diag.SevWarning {
			continue
		}
		fmt.Fprintf(w, "%s  %s\n", mark(warnMark, opts.Color, "[!]"), d.Message)
	}

	for i := range batch.Results {
		prettyResult(w, batch, &batch.Results[i], opts)
	}
}

func prettyResult(w io.Writer, batch *driver.Batch, res *driver.Result, opts PrettyOpts) {
	if !opts.Quiet {
		rule := strings.Repeat("-", bannerWidth)
		fmt.Fprintf(w, "\n%s\n  Validating: %s\n%s\n", rule, res.Path, rule)
	}

	errors, warnings := res.Counts()
	for _, d := range res.Diagnostics {
		if opts.NoWarnings && d.Severity != diag.SevError {
			continue
		}
		m := mark(warnMark, opts.Color, "[!]")
		if d.Severity == diag.SevError {
			m = mark(errMark, opts.Color, "[x]")
		}
		fmt.Fprintf(w, "  %s  %s\n", m, diagLine(batch.Files, d, opts.PathMode))
		if opts.ShowNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(w, "       note: %s\n", note.Msg)
			}
		}
	}

	if opts.Quiet {
		return
	}
	if errors > 0 {
		fmt.Fprintf(w, "\n  %s  FAILED: %d error(s), %d warning(s)\n",
			mark(errMark, opts.Color, "[x]"), errors, warnings)
		return
	}
	if warnings > 0 && !opts.NoWarnings {
		fmt.Fprintf(w, "  %s  %d warning(s)\n", mark(warnMark, opts.Color, "[!]"), warnings)
	}
	fmt.Fprintf(w, "  %s OK - no errors.\n", mark(okMark, opts.Color, "[ok]"))
}

// diagLine renders one diagnostic as
// <path>:<line>:<col>: <severity> <CODE>: <message>; the location is
// omitted for diagnostics without a source span.
func diagLine(fs *source.FileSet, d diag.Diagnostic, mode PathMode) string {
	loc := ""
	if fs != nil && !d.Primary.Empty() {
		start, _ := fs.Resolve(d.Primary)
		loc = fmt.Sprintf("%s:%d:%d: ", formatPath(fs, d.Primary.File, mode), start.Line, start.Col)
	}
	return fmt.Sprintf("%s%s %s: %s", loc, severityLabel(d.Severity), d.Code.ID(), d.Message)
}

// severityLabel is the lowercase report form of a severity.
func severityLabel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// Summary prints the closing batch line in the original tool's shape.
func Summary(w io.Writer, batch *driver.Batch, useColor bool) {
	errors, warnings := batch.Counts()
	if errors > 0 {
		fmt.Fprintf(w, "\n%s  %d file(s), %d error(s), %d warning(s)\n",
			mark(errMark, useColor, "[x]"), len(batch.Results), errors, warnings)
		return
	}
	fmt.Fprintf(w, "\n%s %d file(s), %d warning(s), no errors\n",
		mark(okMark, useColor, "[ok]"), len(batch.Results), warnings)
}
