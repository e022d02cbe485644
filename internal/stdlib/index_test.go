package stdlib

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLibrary(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func TestBuildIndexesLibrarySymbols(t *testing.T) {
	dir := writeLibrary(t, map[string]string{
		"ScalarValues.sysml": `standard library package ScalarValues {
	attribute def Boolean;
	attribute def Real;
}
`,
	})

	idx, err := Build(dir)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	names := make(map[string]bool, idx.Len())
	for _, s := range idx.Symbols {
		names[s.Name] = true
	}
	for _, want := range []string{"ScalarValues", "ScalarValues::Boolean", "ScalarValues::Real"} {
		if !names[want] {
			t.Fatalf("missing %q in %v", want, names)
		}
	}
}

func TestBuildSkipsBrokenLibraryFiles(t *testing.T) {
	dir := writeLibrary(t, map[string]string{
		"Good.sysml":   "package Good { part def Fine; }\n",
		"Broken.sysml": "package Broken { part def ;;;\n",
	})

	idx, err := Build(dir)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	found := false
	for _, s := range idx.Symbols {
		if s.Name == "Good::Fine" {
			found = true
		}
	}
	if !found {
		t.Fatalf("partial library must still index intact files")
	}
}

func TestLoadUsesCacheAcrossRuns(t *testing.T) {
	dir := writeLibrary(t, map[string]string{
		"Lib.sysml": "package Lib { part def Thing; }\n",
	})
	cache, err := OpenCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	first, err := Load(dir, cache)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := Load(dir, cache)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first.Len() != second.Len() {
		t.Fatalf("cached index differs: %d vs %d", first.Len(), second.Len())
	}

	key, err := digest(dir)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	var cached Index
	ok, err := cache.Get(key, &cached)
	if err != nil || !ok {
		t.Fatalf("expected cache hit, ok=%v err=%v", ok, err)
	}
	if cached.Schema != indexSchemaVersion {
		t.Fatalf("schema = %d", cached.Schema)
	}
}

func TestCacheMissIsClean(t *testing.T) {
	cache, err := OpenCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	var out Index
	ok, err := cache.Get([32]byte{1, 2, 3}, &out)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok {
		t.Fatalf("unexpected hit")
	}
}
