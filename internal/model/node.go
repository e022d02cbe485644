// Package model defines the typed node tree produced by the parser and
// consumed by reference resolution and the semantic checker.
//
// Node behaviour is expressed through small capabilities (name, children,
// content-only, relation kind) instead of dispatching on type-tag strings,
// so consumers never match on metatype names.
package model

import (
	"sysmltool/internal/source"
)

// Kind is the metatype of a node.
type Kind uint8

const (
	KindNamespace Kind = iota
	KindPartDef
	KindPartUsage
	KindAttributeDef
	KindAttributeUsage
	KindRequirementDef
	KindRequirementUsage
	KindPortDef
	KindViewDef
	KindViewUsage
	KindViewpointDef
	KindViewpointUsage

	// Target-carrying elements: their name is a reference to an element
	// declared elsewhere, not a member declaration of their own.
	KindImport
	KindExpose

	// Relation elements
	KindDependency
	KindSatisfy
	KindVerify
	KindDerive
	KindAllocate
	KindSubset
	KindRedefine
	KindSpecialize

	// Content-only elements, excluded from structural views
	KindDoc
	KindComment
)

var kindNames = [...]string{
	KindNamespace:        "Namespace",
	KindPartDef:          "PartDef",
	KindPartUsage:        "PartUsage",
	KindAttributeDef:     "AttributeDef",
	KindAttributeUsage:   "AttributeUsage",
	KindRequirementDef:   "RequirementDef",
	KindRequirementUsage: "RequirementUsage",
	KindPortDef:          "PortDef",
	KindViewDef:          "ViewDef",
	KindViewUsage:        "ViewUsage",
	KindViewpointDef:     "ViewpointDef",
	KindViewpointUsage:   "ViewpointUsage",
	KindImport:           "Import",
	KindExpose:           "Expose",
	KindDependency:       "Dependency",
	KindSatisfy:          "Satisfy",
	KindVerify:           "Verify",
	KindDerive:           "Derive",
	KindAllocate:         "Allocate",
	KindSubset:           "Subset",
	KindRedefine:         "Redefine",
	KindSpecialize:       "Specialize",
	KindDoc:              "Doc",
	KindComment:          "Comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// relationKinds maps relation metatypes to their human-readable label.
// Specialize is intentionally excluded from relation listings: it would
// produce one entry per typed usage and make the output very verbose.
var relationKinds = map[Kind]string{
	KindDependency: "dependency",
	KindSatisfy:    "satisfy",
	KindVerify:     "verify",
	KindDerive:     "derive",
	KindAllocate:   "allocate",
	KindSubset:     "subset",
	KindRedefine:   "redefine",
}

// RelationKind returns the relation label for k and whether k is a
// relation element at all.
func RelationKind(k Kind) (string, bool) {
	label, ok := relationKinds[k]
	return label, ok
}

// ContentOnly reports whether k carries only content (documentation,
// comments) and must not appear in structural trees.
func ContentOnly(k Kind) bool {
	return k == KindDoc || k == KindComment
}

// TargetOnly reports whether k names a target declared elsewhere rather
// than declaring a member: imports and exposes never define a symbol and
// never open a scope.
func TargetOnly(k Kind) bool {
	return k == KindImport || k == KindExpose
}

// Node is one element of a document tree.
type Node struct {
	Kind     Kind
	Name     string // may be empty for anonymous and content nodes
	Span     source.Span
	Children []*Node
	Refs     []*Ref // references owned directly by this node
	Text     string // content payload for doc/comment nodes
}

// HasName reports whether the node carries a declared name.
func (n *Node) HasName() bool {
	return n != nil && n.Name != ""
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Ref is a by-name reference to another element, resolved against the
// symbol universe after loading.
type Ref struct {
	Target   string // qualified name as written, '::'-separated
	Span     source.Span
	Resolved *Node // nil until resolution succeeds
}

// Namespace is the root node of a parsed document.
type Namespace struct {
	Root     *Node  // root element, Kind == KindNamespace
	Name     string // declared namespace name, "" when anonymous
	Identity string // stable path identity of the owning document
}
