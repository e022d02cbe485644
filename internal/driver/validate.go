package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sysmltool/internal/diag"
	"sysmltool/internal/model"
	"sysmltool/internal/observ"
	"sysmltool/internal/parser"
	"sysmltool/internal/project"
	"sysmltool/internal/project/dag"
	"sysmltool/internal/sema"
	"sysmltool/internal/source"
	"sysmltool/internal/universe"
)

// docRun carries one document's per-phase state. The four diagnostic
// slices stay separate until reconciliation.
type docRun struct {
	path   string
	fileID source.FileID
	tree   *model.Namespace
	failed bool // unreadable, excluded from resolution and validation

	ioDiags    []diag.Diagnostic
	parseDiags []diag.Diagnostic
	linkDiags  []diag.Diagnostic
	semaDiags  []diag.Diagnostic
}

// ValidateAll runs the whole pipeline over paths and aggregates the
// outcome back to the original input order: exactly one Result per
// requested document, whatever order scheduling processed them in.
func (r *Runner) ValidateAll(ctx context.Context, paths []string) *Batch {
	if r.err != nil {
		return r.failedBatch(paths, r.err)
	}

	timer := observ.NewTimer()
	files := source.NewFileSetWithBase(r.baseDir)
	batch := &Batch{Files: files}

	// Repeated inputs collapse onto their first occurrence; the owner
	// index does the work once and aliases share its outcome.
	alias := make([]int, len(paths))
	owner := make(map[string]int, len(paths))
	for i, path := range paths {
		key := filepath.Clean(path)
		if j, ok := owner[key]; ok {
			alias[i] = j
		} else {
			owner[key] = i
			alias[i] = i
		}
	}

	// Phase 1: raw-text metadata scan.
	scanIdx := timer.Begin("scan")
	r.emit(PhaseEvent{Phase: "scan", Status: PhaseStart, Total: len(paths)})
	metas := make([]project.DocMeta, len(paths))
	for i, path := range paths {
		if alias[i] != i {
			metas[i] = metas[alias[i]]
			continue
		}
		metas[i] = project.ScanMeta(path)
	}
	timer.End(scanIdx, fmt.Sprintf("%d documents", len(paths)))
	r.emit(PhaseEvent{Phase: "scan", Status: PhaseEnd, Total: len(paths)})

	// Phase 2: dependency graph and provider-first schedule.
	schedIdx := timer.Begin("schedule")
	nsIdx := dag.BuildIndex(metas)
	topo := dag.Schedule(dag.BuildGraph(metas, nsIdx))
	if topo.Cyclic {
		members := make([]string, 0, len(topo.Cycles))
		for _, id := range topo.Cycles {
			members = append(members, metas[id].Path)
		}
		batch.Warnings = append(batch.Warnings, diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.PrjImportCycle,
			Origin:   diag.OriginProject,
			Message: fmt.Sprintf("import cycle between %s; validating in input order",
				strings.Join(members, ", ")),
		})
	}
	timer.End(schedIdx, "")

	// Phase 3: fresh universe, standard library first.
	uni := universe.New()
	uni.Install(r.library)

	// Phase 4: load and parse in scheduled order, providers first.
	loadIdx := timer.Begin("load")
	r.emit(PhaseEvent{Phase: "load", Status: PhaseStart, Total: len(owner)})
	runs := make([]*docRun, len(paths))
	done := 0
	for _, id := range topo.Order {
		i := int(id)
		if alias[i] != i {
			continue
		}
		done++
		runs[i] = r.loadOne(files, uni, &metas[i])
		r.emit(PhaseEvent{Phase: "load", Status: PhaseEnd, Path: metas[i].Path, Done: done, Total: len(owner)})
	}
	timer.End(loadIdx, fmt.Sprintf("%d symbols", uni.Len()))

	// Phase 5: cross-reference resolution, sequential in scheduled
	// order. The universe is complete by now; order only affects
	// diagnostic discovery order inside cycles.
	resolveIdx := timer.Begin("resolve")
	r.emit(PhaseEvent{Phase: "resolve", Status: PhaseStart, Total: len(owner)})
	done = 0
	for _, id := range topo.Order {
		i := int(id)
		if alias[i] != i || runs[i].failed {
			continue
		}
		done++
		runs[i].linkDiags = parser.ResolveAll(runs[i].tree, uni)
		r.emit(PhaseEvent{Phase: "resolve", Status: PhaseEnd, Path: runs[i].path, Done: done, Total: len(owner)})
	}
	timer.End(resolveIdx, "")

	// Phase 6: semantic validation, parallel only when the validator
	// is marked goroutine-safe.
	validateIdx := timer.Begin("validate")
	r.emit(PhaseEvent{Phase: "validate", Status: PhaseStart, Total: len(owner)})
	r.validateRuns(ctx, runs, alias)
	timer.End(validateIdx, "")
	r.emit(PhaseEvent{Phase: "validate", Status: PhaseEnd, Total: len(owner)})

	// Phase 7: reconcile streams and aggregate to input order.
	aggIdx := timer.Begin("aggregate")
	batch.Results = make([]Result, len(paths))
	for i := range paths {
		run := runs[alias[i]]
		state := project.DocLoaded
		if run.failed {
			state = project.DocFailed
		}
		batch.Results[i] = Result{
			Path:        run.path,
			FileID:      run.fileID,
			Namespace:   metas[alias[i]].Namespace,
			Tree:        run.tree,
			State:       state,
			Diagnostics: reconcile(run, r.maxDiags),
		}
	}
	timer.End(aggIdx, "")

	if r.timings {
		report := timer.Report()
		batch.Timing = &report
	}
	return batch
}

// ValidateOne is the single-document path on top of the same phases.
func (r *Runner) ValidateOne(ctx context.Context, path string) *Result {
	batch := r.ValidateAll(ctx, []string{path})
	return &batch.Results[0]
}

// loadOne registers one document with the file set, parses it and
// publishes its symbols. Unreadable documents get a single error
// diagnostic and never touch the universe.
func (r *Runner) loadOne(files *source.FileSet, uni *universe.Universe, meta *project.DocMeta) *docRun {
	run := &docRun{path: meta.Path}
	if meta.IOFailed {
		run.fileID = files.AddUnreadable(meta.Path)
		run.failed = true
		meta.State = project.DocFailed
		run.ioDiags = append(run.ioDiags, diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOReadFailed,
			Origin:   diag.OriginIO,
			Message:  fmt.Sprintf("Couldn't read '%s'", meta.Path),
			Primary:  source.Span{File: run.fileID},
		})
		return run
	}

	run.fileID = files.AddContent(meta.Path, meta.Text)
	content := files.Get(run.fileID).Content
	run.tree, run.parseDiags = r.parser.Parse(run.fileID, meta.Path, content)
	uni.DefineTree(run.tree)
	meta.State = project.DocLoaded
	return run
}

// validateRuns applies the validator to every loaded document. A
// validator invocation failure degrades to one warning on that
// document; the batch keeps going.
func (r *Runner) validateRuns(ctx context.Context, runs []*docRun, alias []int) {
	var active []*docRun
	for i, run := range runs {
		if run == nil || alias[i] != i || run.failed {
			continue
		}
		active = append(active, run)
	}
	if len(active) == 0 {
		return
	}

	jobs := r.jobs
	if jobs > 1 && !concurrentSafe(r.validator) {
		jobs = 1
	}

	if jobs <= 1 {
		for _, run := range active {
			r.validateOneRun(run)
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(active)))
	for _, run := range active {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r.validateOneRun(run)
			return nil
		})
	}
	// Cancellation leaves the skipped documents without semantic
	// diagnostics; the result set stays total either way.
	_ = g.Wait()
}

func (r *Runner) validateOneRun(run *docRun) {
	start := time.Now()
	diags, err := r.validator.Validate(run.tree)
	if err != nil {
		run.semaDiags = []diag.Diagnostic{{
			Severity: diag.SevWarning,
			Code:     diag.SemCheckIncomplete,
			Origin:   diag.OriginSemantic,
			Message:  "semantic validation could not complete",
			Primary:  source.Span{File: run.fileID},
			Notes:    []diag.Note{{Msg: err.Error()}},
		}}
	} else {
		run.semaDiags = diags
	}
	r.emit(PhaseEvent{Phase: "validate", Status: PhaseEnd, Path: run.path, Elapsed: time.Since(start)})
}

func concurrentSafe(v sema.Validator) bool {
	cv, ok := v.(sema.ConcurrentValidator)
	return ok && cv.Concurrent()
}
