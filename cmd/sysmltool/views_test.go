package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sysmltool/internal/driver"
)

func writeModelFile(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCollectViewListing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dash.sysml")
	writeModelFile(t, path, `package Dash {
	part def Camera;
	view def StructureView;
	viewpoint def SafetyViewpoint;
	view softwareView : StructureView {
		expose Camera;
	}
	view hardwareView : StructureView;
}
`)

	batch := driver.NewRunner(driver.Options{}).ValidateAll(context.Background(), []string{path})
	if batch.HasErrors() {
		t.Fatalf("document did not validate: %v", batch.Results[0].Diagnostics)
	}

	listing := collectViewListing(batch)

	if len(listing.Defs) != 2 {
		t.Fatalf("definitions = %+v, want 2", listing.Defs)
	}
	if listing.Defs[0].QualifiedName != "Dash::StructureView" ||
		listing.Defs[1].QualifiedName != "Dash::SafetyViewpoint" {
		t.Fatalf("definitions = %+v", listing.Defs)
	}

	if len(listing.Usages) != 2 {
		t.Fatalf("usages = %+v, want 2", listing.Usages)
	}
	software := listing.Usages[0]
	if software.QualifiedName != "Dash::softwareView" {
		t.Fatalf("first usage = %+v", software)
	}
	if len(software.Types) != 1 || software.Types[0] != "StructureView" {
		t.Fatalf("software types = %v", software.Types)
	}
	if len(software.Exposed) != 1 || software.Exposed[0] != "Camera" {
		t.Fatalf("software exposes = %v", software.Exposed)
	}
	if listing.Usages[1].QualifiedName != "Dash::hardwareView" {
		t.Fatalf("second usage = %+v", listing.Usages[1])
	}
}

func TestCollectViewListingDeduplicatesAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.sysml")
	writeModelFile(t, path, "package V { view def Main; }\n")

	batch := driver.NewRunner(driver.Options{}).ValidateAll(context.Background(), []string{path, path})
	listing := collectViewListing(batch)

	if len(listing.Defs) != 1 || listing.Defs[0].QualifiedName != "V::Main" {
		t.Fatalf("definitions = %+v, want one V::Main", listing.Defs)
	}
}

func TestPrintViewsRendering(t *testing.T) {
	var sb strings.Builder
	printViews(&sb, viewListing{
		Defs: []viewEntry{{QualifiedName: "Dash::StructureView"}},
		Usages: []viewEntry{{
			QualifiedName: "Dash::softwareView",
			Types:         []string{"StructureView"},
			Exposed:       []string{"Camera"},
		}},
	})
	out := sb.String()

	for _, want := range []string{
		"Found 1 view definition(s), 1 view usage(s)",
		"View definitions:",
		"    Dash::StructureView",
		"View usages:",
		"    Dash::softwareView : StructureView",
		"        expose: Camera",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintViewsEmptyListing(t *testing.T) {
	var sb strings.Builder
	printViews(&sb, viewListing{})
	if !strings.Contains(sb.String(), "No views defined in any loaded file.") {
		t.Fatalf("missing empty notice:\n%s", sb.String())
	}
}
