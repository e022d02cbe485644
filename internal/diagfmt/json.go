package diagfmt

import (
	"encoding/json"
	"io"

	"sysmltool/internal/diag"
	"sysmltool/internal/driver"
	"sysmltool/internal/source"
)

// LocationJSON is a span rendered for JSON output.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary note attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one reconciled diagnostic.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Origin   string       `json:"origin"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DocumentJSON is the outcome for one requested document.
type DocumentJSON struct {
	File        string           `json:"file"`
	Namespace   string           `json:"namespace,omitempty"`
	State       string           `json:"state"`
	HasErrors   bool             `json:"has_errors"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// BatchJSON is the root structure of the JSON report.
type BatchJSON struct {
	Documents []DocumentJSON   `json:"documents"`
	Warnings  []DiagnosticJSON `json:"batch_warnings,omitempty"`
	Errors    int              `json:"errors"`
	Warning   int              `json:"warnings"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if fs == nil {
		return loc
	}
	loc.File = formatPath(fs, span.File, opts.PathMode)
	if opts.IncludePositions && !span.Empty() {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

func makeDiagnostic(d diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: severityLabel(d.Severity),
		Code:     d.Code.ID(),
		Origin:   d.Origin.String(),
		Message:  d.Message,
		Location: makeLocation(d.Primary, fs, opts),
	}
	if opts.IncludeNotes && len(d.Notes) > 0 {
		out.Notes = make([]NoteJSON, len(d.Notes))
		for i, note := range d.Notes {
			out.Notes[i] = NoteJSON{
				Message:  note.Msg,
				Location: makeLocation(note.Span, fs, opts),
			}
		}
	}
	return out
}

// BuildBatchOutput assembles the JSON report structure without
// serializing it.
func BuildBatchOutput(batch *driver.Batch, opts JSONOpts) BatchJSON {
	out := BatchJSON{Documents: make([]DocumentJSON, 0, len(batch.Results))}
	for i := range batch.Results {
		res := &batch.Results[i]
		doc := DocumentJSON{
			File:        res.Path,
			Namespace:   res.Namespace,
			State:       res.State.String(),
			HasErrors:   res.HasErrors(),
			Diagnostics: make([]DiagnosticJSON, 0, len(res.Diagnostics)),
		}
		for _, d := range res.Diagnostics {
			doc.Diagnostics = append(doc.Diagnostics, makeDiagnostic(d, batch.Files, opts))
		}
		out.Documents = append(out.Documents, doc)
	}
	for _, d := range batch.Warnings {
		out.Warnings = append(out.Warnings, makeDiagnostic(d, batch.Files, opts))
	}
	out.Errors, out.Warning = batch.Counts()
	return out
}

// JSON writes the whole batch report as indented JSON.
func JSON(w io.Writer, batch *driver.Batch, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildBatchOutput(batch, opts))
}
