package diag

import "sysmltool/internal/source"

// Reporter is the minimal sink contract for phases emitting diagnostics.
// Implementations: BagReporter (collects into a Bag), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, origin Origin, primary source.Span, msg string, notes []Note)
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, origin Origin, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevError, origin, primary, msg, nil)
	}
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, origin Origin, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevWarning, origin, primary, msg, nil)
	}
}

// BagReporter writes every reported diagnostic into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, origin Origin, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Origin: origin, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Origin, source.Span, string, []Note) {}
