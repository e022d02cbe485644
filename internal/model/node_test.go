package model

import (
	"testing"
)

func TestRelationKind(t *testing.T) {
	if label, ok := RelationKind(KindSatisfy); !ok || label != "satisfy" {
		t.Fatalf("KindSatisfy = %q, %v", label, ok)
	}
	if label, ok := RelationKind(KindSpecialize); ok {
		t.Fatalf("KindSpecialize should not be a listed relation, got %q", label)
	}
	if _, ok := RelationKind(KindPartDef); ok {
		t.Fatalf("KindPartDef must not be a relation")
	}
}

func TestContentOnly(t *testing.T) {
	if !ContentOnly(KindDoc) || !ContentOnly(KindComment) {
		t.Fatalf("doc and comment nodes are content-only")
	}
	if ContentOnly(KindNamespace) {
		t.Fatalf("namespace is structural")
	}
}

func TestKindString(t *testing.T) {
	for k := KindNamespace; k <= KindComment; k++ {
		if k.String() == "" {
			t.Fatalf("kind %d has no name", k)
		}
	}
	if got := KindViewpointUsage.String(); got != "ViewpointUsage" {
		t.Fatalf("KindViewpointUsage = %q", got)
	}
	if got := Kind(200).String(); got != "Unknown" {
		t.Fatalf("out-of-range kind = %q", got)
	}
}

func TestTargetOnly(t *testing.T) {
	if !TargetOnly(KindImport) || !TargetOnly(KindExpose) {
		t.Fatalf("imports and exposes carry targets, not declarations")
	}
	if TargetOnly(KindViewUsage) || TargetOnly(KindPartDef) {
		t.Fatalf("declarations must not be target-only")
	}
}

func TestWalkVisitsInDocumentOrder(t *testing.T) {
	root := &Node{Kind: KindNamespace, Name: "Root", Children: []*Node{
		{Kind: KindPartDef, Name: "A", Children: []*Node{
			{Kind: KindAttributeUsage, Name: "x"},
		}},
		{Kind: KindPartDef, Name: "B"},
	}}

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})

	want := []string{"Root", "A", "x", "B"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("visited %v, want %v", names, want)
		}
	}
}

func TestQualifiedHelpers(t *testing.T) {
	if got := RootSegment("ScalarValues::Boolean"); got != "ScalarValues" {
		t.Fatalf("RootSegment = %q", got)
	}
	if got := RootSegment("Plain"); got != "Plain" {
		t.Fatalf("RootSegment plain = %q", got)
	}
	if got := JoinQualified("Core", "Widget"); got != "Core::Widget" {
		t.Fatalf("JoinQualified = %q", got)
	}
	if !IsWildcard("Core::*") || IsWildcard("Core::Widget") {
		t.Fatalf("wildcard detection broken")
	}
	if got := TrimWildcard("Core::*"); got != "Core" {
		t.Fatalf("TrimWildcard = %q", got)
	}
}
