// Package universe maintains the batch-scoped symbol index: qualified
// name to defining node, seeded once from the standard library and
// extended as each document loads. Mutation is append-only for the
// lifetime of one batch run; the universe is discarded afterwards.
package universe

import (
	"sort"

	"sysmltool/internal/model"
)

// IndexEntry is a pre-built library symbol installed without re-parsing
// library sources.
type IndexEntry struct {
	Name string // qualified, '::'-separated
	Kind model.Kind
}

// Universe is the shared symbol space for one batch run.
// It is not safe for concurrent mutation; the loading pipeline is
// strictly sequential by design.
type Universe struct {
	symbols map[string]*model.Node
	library int // count of installed library symbols
}

// New creates an empty universe.
func New() *Universe {
	return &Universe{symbols: make(map[string]*model.Node, 1024)}
}

// Install seeds the universe with the pre-built library index. Library
// entries materialize as synthetic nodes so lookups behave uniformly.
// Returns the number of entries installed.
func (u *Universe) Install(entries []IndexEntry) int {
	installed := 0
	for _, e := range entries {
		name := model.NormalizeName(e.Name)
		if name == "" {
			continue
		}
		if _, exists := u.symbols[name]; exists {
			continue
		}
		u.symbols[name] = &model.Node{Kind: e.Kind, Name: name}
		installed++
	}
	u.library += installed
	return installed
}

// Define registers a qualified name. First definition wins; the
// universe is never rolled back during a batch.
func (u *Universe) Define(qualified string, n *model.Node) bool {
	name := model.NormalizeName(qualified)
	if name == "" || n == nil {
		return false
	}
	if _, exists := u.symbols[name]; exists {
		return false
	}
	u.symbols[name] = n
	return true
}

// DefineTree registers a loaded document tree: every named element is
// defined under the qualified path of its named ancestors. The document
// root is an anonymous container, so top-level packages enter under
// their own name. Imports and exposes carry a target name, not a member
// declaration, and never enter the universe. Returns the number of new
// definitions.
func (u *Universe) DefineTree(ns *model.Namespace) int {
	if ns == nil || ns.Root == nil {
		return 0
	}
	defined := 0
	var walk func(n *model.Node, prefix string)
	walk = func(n *model.Node, prefix string) {
		for _, c := range n.Children {
			if model.ContentOnly(c.Kind) || model.TargetOnly(c.Kind) {
				continue
			}
			if !c.HasName() {
				walk(c, prefix)
				continue
			}
			qualified := model.JoinQualified(prefix, c.Name)
			if u.Define(qualified, c) {
				defined++
			}
			walk(c, qualified)
		}
	}
	walk(ns.Root, "")
	return defined
}

// Lookup resolves a qualified name. Resolution never mutates the
// universe.
func (u *Universe) Lookup(qualified string) (*model.Node, bool) {
	n, ok := u.symbols[model.NormalizeName(qualified)]
	return n, ok
}

// Contains reports whether a qualified name is defined.
func (u *Universe) Contains(qualified string) bool {
	_, ok := u.Lookup(qualified)
	return ok
}

// Len returns the total number of defined symbols.
func (u *Universe) Len() int {
	return len(u.symbols)
}

// LibraryLen returns how many symbols came from the installed library
// index.
func (u *Universe) LibraryLen() int {
	return u.library
}

// Entries dumps every defined symbol as index entries, sorted by name
// for deterministic serialization. Used when pre-building the library
// index.
func (u *Universe) Entries() []IndexEntry {
	out := make([]IndexEntry, 0, len(u.symbols))
	for name, n := range u.symbols {
		out = append(out, IndexEntry{Name: name, Kind: n.Kind})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
