package stdlib

import (
	"os"
	"path/filepath"
)

// Locate finds the standard library directory: an explicit flag value
// wins, then $SYSML_LIBRARY, then a short list of conventional
// locations relative to the working directory.
func Locate(explicit string) (string, bool) {
	if explicit != "" {
		if isLibraryDir(explicit) {
			return explicit, true
		}
		return "", false
	}

	if env := os.Getenv("SYSML_LIBRARY"); env != "" && isLibraryDir(env) {
		return env, true
	}

	candidates := []string{
		"sysml.library",
		filepath.Join("..", "sysml.library"),
		filepath.Join("submodules", "SysML-v2-Release", "sysml.library"),
		filepath.Join("..", "submodules", "SysML-v2-Release", "sysml.library"),
	}
	for _, c := range candidates {
		if isLibraryDir(c) {
			return c, true
		}
	}
	return "", false
}

func isLibraryDir(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
