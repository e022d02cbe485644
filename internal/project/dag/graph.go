// Package dag builds the batch dependency graph from document metadata
// and computes a provider-before-consumer schedule.
package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"sysmltool/internal/project"
)

// DocID indexes a document by its position in the original input order.
type DocID uint32

// Index maps declared namespace names to the declaring document.
// When two documents declare the same namespace, the first in input
// order wins.
type Index struct {
	NameToDoc map[string]DocID
}

// BuildIndex builds the reverse namespace index over the batch.
func BuildIndex(metas []project.DocMeta) Index {
	idx := Index{NameToDoc: make(map[string]DocID, len(metas))}
	for i, meta := range metas {
		if meta.Namespace == "" {
			continue
		}
		if _, taken := idx.NameToDoc[meta.Namespace]; taken {
			continue
		}
		id, err := safecast.Conv[DocID](i)
		if err != nil {
			panic(fmt.Errorf("document id overflow: %w", err))
		}
		idx.NameToDoc[meta.Namespace] = id
	}
	return idx
}

// Graph is the batch dependency graph. An edge (consumer, provider)
// exists only when the consumer imports a namespace root declared by a
// different document of the same batch. Imports satisfied by the
// standard library or by nothing produce no edge.
type Graph struct {
	// Consumers[provider] lists documents that import the provider,
	// sorted ascending (input order).
	Consumers [][]DocID
	// Indeg[consumer] counts distinct providers the consumer waits for.
	Indeg []int
}

// BuildGraph wires consumers to providers. Self-imports and imports of
// namespaces absent from the batch are skipped: they are either
// satisfied by the standard library or reported later by resolution.
func BuildGraph(metas []project.DocMeta, idx Index) Graph {
	n := len(metas)
	g := Graph{
		Consumers: make([][]DocID, n),
		Indeg:     make([]int, n),
	}

	for i, meta := range metas {
		if len(meta.Imports) == 0 {
			continue
		}
		consumer, err := safecast.Conv[DocID](i)
		if err != nil {
			panic(fmt.Errorf("document id overflow: %w", err))
		}
		seen := make(map[DocID]struct{}, len(meta.Imports))
		for _, imp := range meta.Imports {
			provider, ok := idx.NameToDoc[imp.Root]
			if !ok || provider == consumer {
				continue
			}
			if _, dup := seen[provider]; dup {
				continue
			}
			seen[provider] = struct{}{}
			g.Consumers[provider] = append(g.Consumers[provider], consumer)
			g.Indeg[i]++
		}
	}

	for p := range g.Consumers {
		if len(g.Consumers[p]) > 1 {
			slices.Sort(g.Consumers[p])
		}
	}
	return g
}
