package driver

import "sysmltool/internal/diag"

// reconcile merges one document's diagnostic streams into the final
// ordered list: io and parse findings first, then link, then semantic,
// first-seen order within each stream.
//
// Semantic findings are authoritative. A parse or link diagnostic
// whose trimmed message equals a semantic message is a duplicate
// report of the same problem and is dropped; semantic duplicates
// collapse onto their first occurrence. Matching is by message text
// alone, so distinct problems that happen to phrase identically merge.
func reconcile(run *docRun, maxDiagnostics int) []diag.Diagnostic {
	semSeen := make(map[string]struct{}, len(run.semaDiags))
	sem := make([]diag.Diagnostic, 0, len(run.semaDiags))
	for _, d := range run.semaDiags {
		key := d.NormalizedMessage()
		if _, dup := semSeen[key]; dup {
			continue
		}
		semSeen[key] = struct{}{}
		sem = append(sem, d)
	}

	out := make([]diag.Diagnostic, 0,
		len(run.ioDiags)+len(run.parseDiags)+len(run.linkDiags)+len(sem))
	out = append(out, run.ioDiags...)
	for _, d := range run.parseDiags {
		if _, dup := semSeen[d.NormalizedMessage()]; !dup {
			out = append(out, d)
		}
	}
	for _, d := range run.linkDiags {
		if _, dup := semSeen[d.NormalizedMessage()]; !dup {
			out = append(out, d)
		}
	}
	out = append(out, sem...)

	if maxDiagnostics > 0 && len(out) > maxDiagnostics {
		out = out[:maxDiagnostics]
	}
	return out
}
