package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "sysml.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestLoadProjectManifestFromParentDirectory(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[library]\ndir = \"lib\"\n")
	nested := filepath.Join(root, "models", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	manifest, ok, err := loadProjectManifest(nested)
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	if !ok || manifest == nil {
		t.Fatal("expected manifest to be found")
	}
	if manifest.Config.Package.Name != "demo" {
		t.Errorf("package name = %q, want %q", manifest.Config.Package.Name, "demo")
	}
	if got, want := manifest.manifestLibraryDir(), filepath.Join(manifest.Root, "lib"); got != want {
		t.Errorf("library dir = %q, want %q", got, want)
	}
}

func TestLoadProjectManifestMissingIsNotAnError(t *testing.T) {
	manifest, ok, err := loadProjectManifest(t.TempDir())
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	if ok || manifest != nil {
		t.Fatal("expected no manifest")
	}
}

func TestLoadProjectConfigRequiresPackageName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[library]\ndir = \"lib\"\n")

	if _, _, err := loadProjectManifest(dir); err == nil {
		t.Fatal("expected error for manifest without [package].name")
	}
}

func TestManifestValidatePathsResolveAgainstRoot(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[validate]\npaths = [\"models\", \"\"]\n")

	manifest, _, err := loadProjectManifest(root)
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	paths := manifest.manifestValidatePaths()
	if len(paths) != 1 {
		t.Fatalf("paths = %v, want one entry", paths)
	}
	if want := filepath.Join(manifest.Root, "models"); paths[0] != want {
		t.Errorf("paths[0] = %q, want %q", paths[0], want)
	}
}
