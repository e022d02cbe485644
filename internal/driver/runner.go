// Package driver orchestrates one batch run: metadata scan, dependency
// scheduling, document loading, cross-reference resolution, semantic
// validation, stream reconciliation and aggregation back to the
// caller's input order.
package driver

import (
	"fmt"

	"sysmltool/internal/diag"
	"sysmltool/internal/model"
	"sysmltool/internal/parser"
	"sysmltool/internal/project"
	"sysmltool/internal/sema"
	"sysmltool/internal/source"
	"sysmltool/internal/stdlib"
	"sysmltool/internal/universe"
)

// Parser turns one document's raw text into a partial element tree.
// The in-tree parser is the default implementation; the interface pins
// the exact shape any external parser has to be adapted to.
type Parser interface {
	Parse(file source.FileID, identity string, content []byte) (*model.Namespace, []diag.Diagnostic)
}

type pinnedParser struct{}

func (pinnedParser) Parse(file source.FileID, identity string, content []byte) (*model.Namespace, []diag.Diagnostic) {
	return parser.Parse(file, identity, content)
}

// Options configures a Runner. Zero values select the in-tree parser,
// the default rule checker and an empty standard library.
type Options struct {
	Parser    Parser
	Validator sema.Validator

	// Library seeds every batch universe directly. When nil and
	// LibraryDir is set, the index is built (through Cache, if any)
	// during construction.
	Library    []universe.IndexEntry
	LibraryDir string
	Cache      *stdlib.Cache

	// Jobs caps concurrent semantic validation. Values below 2 keep
	// validation sequential, as does a validator without the
	// ConcurrentValidator marker.
	Jobs int

	// MaxDiagnostics truncates each document's reconciled list; zero
	// means unlimited.
	MaxDiagnostics int

	Timings  bool
	Observer PhaseObserver
	BaseDir  string
}

// Runner executes batch validation runs. All collaborators are fixed
// at construction; per-run state (file set, universe, graph) is built
// fresh inside every ValidateAll call and never reused.
type Runner struct {
	parser    Parser
	validator sema.Validator
	library   []universe.IndexEntry
	jobs      int
	maxDiags  int
	timings   bool
	observer  PhaseObserver
	baseDir   string

	// err poisons the runner: every run reports it uniformly on each
	// requested document instead of producing a partial result.
	err error
}

// NewRunner wires a Runner from explicit collaborators. A failure to
// build the standard library index is remembered rather than returned,
// so callers still get a total (degraded) result per document.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		parser:    opts.Parser,
		validator: opts.Validator,
		library:   opts.Library,
		jobs:      opts.Jobs,
		maxDiags:  opts.MaxDiagnostics,
		timings:   opts.Timings,
		observer:  opts.Observer,
		baseDir:   opts.BaseDir,
	}
	if r.parser == nil {
		r.parser = pinnedParser{}
	}
	if r.validator == nil {
		r.validator = sema.NewRuleChecker()
	}
	if r.library == nil && opts.LibraryDir != "" {
		idx, err := stdlib.Load(opts.LibraryDir, opts.Cache)
		if err != nil {
			r.err = fmt.Errorf("standard library %q: %w", opts.LibraryDir, err)
		} else {
			r.library = idx.Entries()
		}
	}
	return r
}

// failedBatch reports cause uniformly across every requested document.
func (r *Runner) failedBatch(paths []string, cause error) *Batch {
	files := source.NewFileSetWithBase(r.baseDir)
	batch := &Batch{Files: files, Results: make([]Result, len(paths))}
	for i, path := range paths {
		id := files.Add(path, nil, 0)
		batch.Results[i] = Result{
			Path:   path,
			FileID: id,
			State:  project.DocFailed,
			Diagnostics: []diag.Diagnostic{{
				Severity: diag.SevError,
				Code:     diag.PrjRuntimeUnavailable,
				Origin:   diag.OriginProject,
				Message:  fmt.Sprintf("validation runtime unavailable: %v", cause),
				Primary:  source.Span{File: id},
			}},
		}
	}
	return batch
}

func (r *Runner) emit(ev PhaseEvent) {
	if r.observer != nil {
		r.observer(ev)
	}
}
