package universe

import (
	"testing"

	"sysmltool/internal/model"
)

func TestInstallSeedsLibrarySymbols(t *testing.T) {
	u := New()
	n := u.Install([]IndexEntry{
		{Name: "ScalarValues", Kind: model.KindNamespace},
		{Name: "ScalarValues::Boolean", Kind: model.KindAttributeDef},
		{Name: "ScalarValues::Boolean", Kind: model.KindAttributeDef}, // dup
	})

	if n != 2 {
		t.Fatalf("installed = %d, want 2", n)
	}
	if !u.Contains("ScalarValues::Boolean") {
		t.Fatalf("library symbol missing")
	}
	if u.LibraryLen() != 2 {
		t.Fatalf("library len = %d", u.LibraryLen())
	}
}

func TestDefineIsAppendOnlyFirstWins(t *testing.T) {
	u := New()
	first := &model.Node{Kind: model.KindPartDef, Name: "Widget"}
	second := &model.Node{Kind: model.KindPartDef, Name: "Widget"}

	if !u.Define("Core::Widget", first) {
		t.Fatalf("first define must succeed")
	}
	if u.Define("Core::Widget", second) {
		t.Fatalf("redefinition must be rejected")
	}
	got, _ := u.Lookup("Core::Widget")
	if got != first {
		t.Fatalf("lookup must return the first definition")
	}
}

func TestDefineTreeQualifiesNestedNames(t *testing.T) {
	// anonymous document root holding one package
	root := &model.Node{Kind: model.KindNamespace, Children: []*model.Node{
		{Kind: model.KindNamespace, Name: "Core", Children: []*model.Node{
			{Kind: model.KindPartDef, Name: "Engine", Children: []*model.Node{
				{Kind: model.KindAttributeUsage, Name: "power"},
				{Kind: model.KindDoc, Text: "engine docs"},
			}},
			{Kind: model.KindComment, Text: "stray comment"},
		}},
	}}
	ns := &model.Namespace{Root: root, Name: "Core", Identity: "core.sysml"}

	u := New()
	defined := u.DefineTree(ns)

	for _, want := range []string{"Core", "Core::Engine", "Core::Engine::power"} {
		if !u.Contains(want) {
			t.Fatalf("missing %q after DefineTree", want)
		}
	}
	if defined != 3 {
		t.Fatalf("defined = %d, want 3", defined)
	}
}

func TestDefineTreeSkipsImportTargets(t *testing.T) {
	root := &model.Node{Kind: model.KindNamespace, Children: []*model.Node{
		{Kind: model.KindNamespace, Name: "App", Children: []*model.Node{
			{Kind: model.KindImport, Name: "Missing::Thing"},
			{Kind: model.KindExpose, Name: "Camera"},
			{Kind: model.KindPartDef, Name: "Rig"},
		}},
	}}
	u := New()
	defined := u.DefineTree(&model.Namespace{Root: root, Name: "App", Identity: "app.sysml"})

	if defined != 2 {
		t.Fatalf("defined = %d, want App and App::Rig only", defined)
	}
	if u.Contains("App::Missing::Thing") {
		t.Fatalf("import target must not become a symbol")
	}
	if u.Contains("App::Camera") {
		t.Fatalf("expose target must not become a symbol")
	}
	if !u.Contains("App::Rig") {
		t.Fatalf("declared member missing")
	}
}

func TestDefineTreeAnonymousNamespace(t *testing.T) {
	root := &model.Node{Kind: model.KindNamespace, Children: []*model.Node{
		{Kind: model.KindPartDef, Name: "Loose"},
	}}
	u := New()
	u.DefineTree(&model.Namespace{Root: root, Identity: "frag.sysml"})

	if !u.Contains("Loose") {
		t.Fatalf("top-level element of anonymous namespace must use its bare name")
	}
}

func TestLookupNormalizesNFC(t *testing.T) {
	u := New()
	u.Define("Köln::Dom", &model.Node{Kind: model.KindPartDef, Name: "Dom"})

	// decomposed "o" + combining diaeresis
	if !u.Contains("Köln::Dom") {
		t.Fatalf("NFC-equivalent names must resolve")
	}
}
