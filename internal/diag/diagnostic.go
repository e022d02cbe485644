package diag

import (
	"strings"

	"sysmltool/internal/source"
)

// Note adds secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is an immutable finding produced by one pipeline phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Origin   Origin
	Message  string
	Primary  source.Span
	Notes    []Note
}

// NormalizedMessage is the reconciliation key: trimmed, case-preserved
// message text. Two diagnostics with equal normalized messages report
// the same underlying problem regardless of origin or location.
func (d Diagnostic) NormalizedMessage() string {
	return strings.TrimSpace(d.Message)
}

// WithNote returns a copy carrying an extra note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, 0, len(d.Notes)+1)
	notes = append(notes, d.Notes...)
	notes = append(notes, Note{Span: sp, Msg: msg})
	d.Notes = notes
	return d
}
