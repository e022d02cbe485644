// Package project holds per-document batch metadata: the declared
// namespace and import roots extracted from raw text, without running
// the full parser.
package project

import (
	"os"

	"sysmltool/internal/model"
	"sysmltool/internal/source"
)

// DocState tracks a document's lifecycle inside one batch run.
type DocState uint8

const (
	DocPending DocState = iota
	DocLoaded
	DocFailed // I/O or loader failure, excluded from later phases
)

func (s DocState) String() string {
	switch s {
	case DocPending:
		return "pending"
	case DocLoaded:
		return "loaded"
	case DocFailed:
		return "failed"
	}
	return "unknown"
}

// ImportMeta is one import declaration found in raw text.
type ImportMeta struct {
	Target string // qualified target as written, wildcard kept
	Root   string // first segment, used to match declaring documents
	Span   source.Span
}

// DocMeta is the lightweight per-document record the graph builder and
// scheduler work with. Identity is the normalized path.
type DocMeta struct {
	Path      string
	Namespace string // declared namespace name, "" when none found
	NSSpan    source.Span
	Imports   []ImportMeta
	IOFailed  bool
	State     DocState
	Text      []byte // raw content, nil when IOFailed
}

// ScanMeta reads path and extracts namespace and import roots from the
// raw text. Unreadable files are recorded with IOFailed set, no
// namespace and no imports; the batch keeps going.
func ScanMeta(path string) DocMeta {
	content, err := os.ReadFile(path) // #nosec G304 -- caller-provided input
	if err != nil {
		return DocMeta{Path: path, IOFailed: true}
	}
	return ScanMetaBytes(path, content)
}

// ScanMetaBytes extracts metadata from in-memory content.
func ScanMetaBytes(path string, content []byte) DocMeta {
	meta := DocMeta{Path: path, Text: content}

	if loc := namespacePattern.FindSubmatchIndex(content); loc != nil {
		name := firstGroup(content, loc)
		meta.Namespace = model.NormalizeName(name)
		meta.NSSpan = source.Span{Start: uint32(loc[0]), End: uint32(loc[1])}
	}

	for _, loc := range importPattern.FindAllSubmatchIndex(content, -1) {
		target := firstGroup(content, loc)
		if target == "" {
			continue
		}
		meta.Imports = append(meta.Imports, ImportMeta{
			Target: target,
			Root:   model.RootSegment(model.TrimWildcard(target)),
			Span:   source.Span{Start: uint32(loc[0]), End: uint32(loc[1])},
		})
	}
	return meta
}
