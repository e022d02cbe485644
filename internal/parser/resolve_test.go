package parser

import (
	"strings"
	"testing"

	"sysmltool/internal/model"
	"sysmltool/internal/universe"
)

func loadInto(t *testing.T, u *universe.Universe, identity, text string) *model.Namespace {
	t.Helper()
	ns, diags := parseText(t, text)
	if len(diags) != 0 {
		t.Fatalf("parse %s: %v", identity, diags)
	}
	ns.Identity = identity
	u.DefineTree(ns)
	return ns
}

func TestResolveAllWithinDocument(t *testing.T) {
	u := universe.New()
	ns := loadInto(t, u, "car.sysml", `package Cars {
	part def Wheel;
	part def Car {
		part wheels : Wheel;
	}
}
`)
	diags := ResolveAll(ns, u)
	if len(diags) != 0 {
		t.Fatalf("expected clean resolution, got %v", diags)
	}

	wheels := findChild(ns.Root, "wheels")
	if wheels.Refs[0].Resolved == nil {
		t.Fatalf("in-document reference must resolve")
	}
}

func TestResolveAcrossDocuments(t *testing.T) {
	u := universe.New()
	loadInto(t, u, "core.sysml", `package Core {
	part def Widget;
}
`)
	app := loadInto(t, u, "app.sysml", `package App {
	import Core::*;
	part w : Widget;
	part w2 : Core::Widget;
}
`)
	diags := ResolveAll(app, u)
	if len(diags) != 0 {
		t.Fatalf("expected clean resolution, got %v", diags)
	}
}

func TestResolveThroughNamedImport(t *testing.T) {
	u := universe.New()
	loadInto(t, u, "core.sysml", `package Core {
	part def Widget {
		attribute def Size;
	}
}
`)
	app := loadInto(t, u, "app.sysml", `package App {
	import Core::Widget;
	part w : Widget;
	part s : Widget::Size;
}
`)
	diags := ResolveAll(app, u)
	if len(diags) != 0 {
		t.Fatalf("expected clean resolution, got %v", diags)
	}
}

func TestResolveAgainstInstalledLibrary(t *testing.T) {
	u := universe.New()
	u.Install([]universe.IndexEntry{
		{Name: "ScalarValues", Kind: model.KindNamespace},
		{Name: "ScalarValues::Real", Kind: model.KindAttributeDef},
	})
	app := loadInto(t, u, "app.sysml", `package App {
	import ScalarValues::*;
	attribute mass : Real;
}
`)
	diags := ResolveAll(app, u)
	if len(diags) != 0 {
		t.Fatalf("library symbols must resolve, got %v", diags)
	}
}

func TestResolveUnresolvedReference(t *testing.T) {
	u := universe.New()
	app := loadInto(t, u, "app.sysml", `package App {
	part g : Gadget;
}
`)
	diags := ResolveAll(app, u)
	if len(diags) != 1 {
		t.Fatalf("diags = %v, want one", diags)
	}
	if got := diags[0].Message; got != "Couldn't resolve reference to 'Gadget'" {
		t.Fatalf("message = %q", got)
	}
	if diags[0].Primary.Len() == 0 {
		t.Fatalf("diagnostic must carry a span")
	}
}

func TestResolveUnresolvedImportReported(t *testing.T) {
	u := universe.New()
	app := loadInto(t, u, "app.sysml", `package App {
	import Missing::Thing;
}
`)
	diags := ResolveAll(app, u)
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "Missing::Thing") {
		t.Fatalf("unresolved named import must be reported, got %v", diags)
	}
}

func TestImportTargetIsNotASymbol(t *testing.T) {
	u := universe.New()
	app := loadInto(t, u, "app.sysml", `package App {
	import Missing::Thing;
}
`)
	other := loadInto(t, u, "other.sysml", `package Other {
	part x : App::Missing::Thing;
}
`)

	if len(ResolveAll(app, u)) != 1 {
		t.Fatalf("importing document must report its unresolved import")
	}
	diags := ResolveAll(other, u)
	if len(diags) != 1 {
		t.Fatalf("phantom import symbol satisfied a foreign reference: %v", diags)
	}
	if !strings.Contains(diags[0].Message, "App::Missing::Thing") {
		t.Fatalf("message = %q", diags[0].Message)
	}
}

func TestResolveExposedElement(t *testing.T) {
	u := universe.New()
	app := loadInto(t, u, "dash.sysml", `package Dash {
	part def Camera;
	view def StructureView;
	view softwareView : StructureView {
		expose Camera;
	}
}
`)
	diags := ResolveAll(app, u)
	if len(diags) != 0 {
		t.Fatalf("expose of an in-scope element must resolve, got %v", diags)
	}
}
