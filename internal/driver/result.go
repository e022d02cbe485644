package driver

import (
	"sysmltool/internal/diag"
	"sysmltool/internal/model"
	"sysmltool/internal/observ"
	"sysmltool/internal/project"
	"sysmltool/internal/source"
)

// Result is the reconciled outcome for one document. It is created
// once during aggregation and never mutated afterwards.
type Result struct {
	Path      string
	FileID    source.FileID
	Namespace string
	Tree      *model.Namespace
	State     project.DocState
	// Diagnostics are ordered io/parse, then link, then semantic;
	// within a stream first-seen order is kept.
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity == diag.SevError {
			return true
		}
	}
	return false
}

// Counts returns the number of error and warning diagnostics.
func (r *Result) Counts() (errors, warnings int) {
	for i := range r.Diagnostics {
		switch r.Diagnostics[i].Severity {
		case diag.SevError:
			errors++
		case diag.SevWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Batch is the aggregated outcome of one run. Results holds exactly one
// entry per requested document, in the caller's original input order.
type Batch struct {
	Results []Result
	Files   *source.FileSet
	// Warnings carries batch-wide findings not attached to a document,
	// such as the dependency-cycle fallback notice.
	Warnings []diag.Diagnostic
	// Timing is set when phase timing was requested.
	Timing *observ.Report
}

// HasErrors reports whether any document carries an error diagnostic.
func (b *Batch) HasErrors() bool {
	for i := range b.Results {
		if b.Results[i].HasErrors() {
			return true
		}
	}
	return false
}

// Counts sums error and warning diagnostics across all documents and
// the batch-wide warnings.
func (b *Batch) Counts() (errors, warnings int) {
	for i := range b.Results {
		e, w := b.Results[i].Counts()
		errors += e
		warnings += w
	}
	for i := range b.Warnings {
		switch b.Warnings[i].Severity {
		case diag.SevError:
			errors++
		case diag.SevWarning:
			warnings++
		}
	}
	return errors, warnings
}
