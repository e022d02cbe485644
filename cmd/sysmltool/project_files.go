package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// collectModelFiles expands the command-line inputs into a
// de-duplicated list of .sysml documents. Directories are scanned
// recursively; explicit files are taken as given even without the
// extension.
func collectModelFiles(inputs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		key := filepath.Clean(path)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		files = append(files, key)
	}

	for _, input := range inputs {
		st, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("path not found: %s", input)
		}
		if !st.IsDir() {
			add(input)
			continue
		}
		found, err := listModelFiles(input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %q: %w", input, err)
		}
		if len(found) == 0 {
			fmt.Fprintf(os.Stderr, "[WARN]  No .sysml files found under: %s\n", input)
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

// listModelFiles returns every *.sysml file under dir. Files in parent
// directories sort before files in subdirectories, a reasonable
// heuristic for dependency ordering when the import graph alone cannot
// decide.
func listModelFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if len(name) > 1 && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".sysml" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(files, func(i, j int) bool {
		di, dj := pathDepth(files[i]), pathDepth(files[j])
		if di != dj {
			return di < dj
		}
		return files[i] < files[j]
	})
	return files, nil
}

func pathDepth(path string) int {
	return strings.Count(filepath.ToSlash(filepath.Clean(path)), "/")
}
