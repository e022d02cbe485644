// Package parser turns document text into a model.Namespace tree and
// force-resolves references against the symbol universe.
//
// This is the pinned adapter for the Parser/Linker capability: the
// driver talks to the Loader interface only, so a different engine can
// be swapped in without touching the pipeline. The built-in
// implementation parses the textual modeling subset (namespaces,
// definitions, usages, imports, relations, doc/comment bodies) with a
// tolerant recursive descent: syntax problems are reported as
// diagnostics and a partial tree is still produced, so the document
// can proceed to resolution.
package parser
