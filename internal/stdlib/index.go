// Package stdlib builds and caches the pre-parsed standard library
// symbol index. The library is parsed at most once per content digest;
// later runs install the cached index into the universe without
// touching library sources again.
package stdlib

import (
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sysmltool/internal/model"
	"sysmltool/internal/parser"
	"sysmltool/internal/source"
	"sysmltool/internal/universe"
)

// Current schema version, bumped when the payload format changes.
// Schema 2 renumbered the element kinds for view and viewpoint support.
const indexSchemaVersion uint16 = 2

// Symbol is one cached library symbol.
type Symbol struct {
	Name string
	Kind uint8
}

// Index is the pre-built, read-only library symbol index.
type Index struct {
	Schema  uint16
	Root    string // library directory the index was built from
	Symbols []Symbol
}

// Entries converts the index into universe install entries.
func (idx *Index) Entries() []universe.IndexEntry {
	if idx == nil {
		return nil
	}
	out := make([]universe.IndexEntry, 0, len(idx.Symbols))
	for _, s := range idx.Symbols {
		out = append(out, universe.IndexEntry{Name: s.Name, Kind: model.Kind(s.Kind)})
	}
	return out
}

// Len returns the number of indexed symbols.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.Symbols)
}

// listLibraryFiles returns every *.sysml file under dir, sorted.
func listLibraryFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sysml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Build parses every library file once and collects the qualified
// symbols into a fresh index. Unreadable or broken library files are
// skipped: a partial library still lets user documents resolve what it
// does declare.
func Build(dir string) (*Index, error) {
	files, err := listLibraryFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scan library %q: %w", dir, err)
	}

	fileSet := source.NewFileSetWithBase(dir)
	u := universe.New()
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			continue
		}
		file := fileSet.Get(id)
		ns, _ := parser.Parse(id, file.Path, file.Content)
		u.DefineTree(ns)
	}

	entries := u.Entries()
	idx := &Index{
		Schema:  indexSchemaVersion,
		Root:    dir,
		Symbols: make([]Symbol, 0, len(entries)),
	}
	for _, e := range entries {
		idx.Symbols = append(idx.Symbols, Symbol{Name: e.Name, Kind: uint8(e.Kind)})
	}
	return idx, nil
}

// digest fingerprints the library contents: paths and file payloads.
// Any change to any library file invalidates the cached index.
func digest(dir string) ([32]byte, error) {
	files, err := listLibraryFiles(dir)
	if err != nil {
		return [32]byte{}, err
	}
	h := sha256.New()
	for _, path := range files {
		content, err := os.ReadFile(path) // #nosec G304 -- library dir is operator-controlled
		if err != nil {
			continue
		}
		fmt.Fprintf(h, "%s\x00%d\x00", filepath.ToSlash(path), len(content))
		h.Write(content)
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// Load returns the library index for dir, going through the disk cache
// when one is provided. Cache misses and corrupt payloads fall back to
// a full Build followed by a best-effort Put.
func Load(dir string, cache *Cache) (*Index, error) {
	if cache == nil {
		return Build(dir)
	}
	key, err := digest(dir)
	if err != nil {
		return nil, fmt.Errorf("fingerprint library %q: %w", dir, err)
	}

	var cached Index
	if ok, err := cache.Get(key, &cached); err == nil && ok && cached.Schema == indexSchemaVersion {
		return &cached, nil
	}

	idx, err := Build(dir)
	if err != nil {
		return nil, err
	}
	// cache write failures are not fatal; next run rebuilds
	_ = cache.Put(key, idx)
	return idx, nil
}
