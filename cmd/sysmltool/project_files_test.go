package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("package P;\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestListModelFilesParentsBeforeSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "deep.sysml"))
	writeFile(t, filepath.Join(dir, "b.sysml"))
	writeFile(t, filepath.Join(dir, "a.sysml"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	files, err := listModelFiles(dir)
	if err != nil {
		t.Fatalf("listModelFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.sysml"),
		filepath.Join(dir, "b.sysml"),
		filepath.Join(dir, "sub", "deep.sysml"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestListModelFilesSkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".cache", "hidden.sysml"))
	writeFile(t, filepath.Join(dir, "visible.sysml"))

	files, err := listModelFiles(dir)
	if err != nil {
		t.Fatalf("listModelFiles: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "visible.sysml" {
		t.Fatalf("files = %v, want only visible.sysml", files)
	}
}

func TestCollectModelFilesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.sysml")
	writeFile(t, doc)

	files, err := collectModelFiles([]string{doc, dir, doc})
	if err != nil {
		t.Fatalf("collectModelFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %v, want a single entry", files)
	}
}

func TestCollectModelFilesMissingPath(t *testing.T) {
	_, err := collectModelFiles([]string{filepath.Join(t.TempDir(), "nope.sysml")})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}
