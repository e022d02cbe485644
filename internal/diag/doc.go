// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: severity, stable numeric code, the
// origin stream that produced it (I/O, parser, linker, semantic checker,
// project-level analysis), a human message and a primary source span with
// optional notes. Diagnostics are immutable values; for reconciliation
// across the link and semantic streams two diagnostics count as the same
// problem when their trimmed message text is identical, irrespective of
// origin or location.
//
// Producers emit through a Reporter so they stay decoupled from storage;
// BagReporter collects into a Bag, which supports sorting, limits and
// merge. Rendering lives in internal/diagfmt, orchestration in
// internal/driver.
package diag
