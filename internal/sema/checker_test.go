package sema

import (
	"strings"
	"testing"

	"sysmltool/internal/diag"
	"sysmltool/internal/model"
)

func validate(t *testing.T, ns *model.Namespace) []diag.Diagnostic {
	t.Helper()
	diags, err := NewRuleChecker().Validate(ns)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return diags
}

func docRoot(children ...*model.Node) *model.Namespace {
	return &model.Namespace{
		Root:     &model.Node{Kind: model.KindNamespace, Children: children},
		Identity: "test.sysml",
	}
}

func TestUnresolvedReferenceRule(t *testing.T) {
	ns := docRoot(&model.Node{Kind: model.KindNamespace, Name: "P", Children: []*model.Node{
		{Kind: model.KindPartUsage, Name: "g", Refs: []*model.Ref{{Target: "Gadget"}}},
	}})

	diags := validate(t, ns)

	found := false
	for _, d := range diags {
		if d.Code == diag.SemUnresolvedReference {
			found = true
			if d.Message != "Couldn't resolve reference to 'Gadget'" {
				t.Fatalf("message = %q", d.Message)
			}
			if d.Severity != diag.SevError || d.Origin != diag.OriginSemantic {
				t.Fatalf("unexpected severity/origin: %+v", d)
			}
		}
	}
	if !found {
		t.Fatalf("missing unresolved-reference diagnostic: %v", diags)
	}
}

func TestResolvedReferenceIsQuiet(t *testing.T) {
	target := &model.Node{Kind: model.KindPartDef, Name: "Gadget"}
	ns := docRoot(&model.Node{Kind: model.KindNamespace, Name: "P", Children: []*model.Node{
		target,
		{Kind: model.KindPartUsage, Name: "g", Refs: []*model.Ref{{Target: "Gadget", Resolved: target}}},
	}})

	for _, d := range validate(t, ns) {
		if d.Code == diag.SemUnresolvedReference {
			t.Fatalf("resolved reference must not be reported: %+v", d)
		}
	}
}

func TestDuplicateMemberRule(t *testing.T) {
	ns := docRoot(&model.Node{Kind: model.KindNamespace, Name: "P", Children: []*model.Node{
		{Kind: model.KindPartDef, Name: "Wheel"},
		{Kind: model.KindPartDef, Name: "Wheel"},
	}})

	diags := validate(t, ns)
	count := 0
	for _, d := range diags {
		if d.Code == diag.SemDuplicateMember {
			count++
			if !strings.Contains(d.Message, "'Wheel'") || !strings.Contains(d.Message, "'P'") {
				t.Fatalf("message = %q", d.Message)
			}
		}
	}
	if count != 1 {
		t.Fatalf("duplicate reported %d times, want once", count)
	}
}

func TestRepeatedImportsAreNotDuplicateMembers(t *testing.T) {
	ns := docRoot(&model.Node{Kind: model.KindNamespace, Name: "P", Children: []*model.Node{
		{Kind: model.KindImport, Name: "Core::*"},
		{Kind: model.KindImport, Name: "Core::*"},
		{Kind: model.KindPartDef, Name: "Wheel"},
	}})

	for _, d := range validate(t, ns) {
		if d.Code == diag.SemDuplicateMember {
			t.Fatalf("import targets must not count as members: %+v", d)
		}
	}
}

func TestDanglingRelationRule(t *testing.T) {
	ns := docRoot(&model.Node{Kind: model.KindNamespace, Name: "P", Children: []*model.Node{
		{Kind: model.KindSatisfy, Refs: []*model.Ref{{Target: "R"}}},
	}})

	diags := validate(t, ns)
	found := false
	for _, d := range diags {
		if d.Code == diag.SemDanglingRelation && d.Severity == diag.SevWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected dangling relation warning: %v", diags)
	}
}

func TestEmptyNamespaceRule(t *testing.T) {
	ns := docRoot(&model.Node{Kind: model.KindNamespace, Name: "Empty", Children: []*model.Node{
		{Kind: model.KindDoc, Text: "only docs"},
	}})

	diags := validate(t, ns)
	found := false
	for _, d := range diags {
		if d.Code == diag.SemEmptyNamespace {
			found = true
			if d.Severity != diag.SevWarning {
				t.Fatalf("empty namespace must be a warning")
			}
		}
	}
	if !found {
		t.Fatalf("expected empty namespace warning: %v", diags)
	}
}

func TestVerifyNeedsOneEndpointOnly(t *testing.T) {
	ns := docRoot(&model.Node{Kind: model.KindNamespace, Name: "P", Children: []*model.Node{
		{Kind: model.KindVerify, Refs: []*model.Ref{{Target: "R"}}},
	}})

	for _, d := range validate(t, ns) {
		if d.Code == diag.SemDanglingRelation {
			t.Fatalf("verify with one endpoint is complete: %+v", d)
		}
	}
}
