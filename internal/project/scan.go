package project

import (
	"regexp"
)

// Lightweight structural patterns, deliberately not a full parse.
// Only the first namespace declaration counts; every import line
// contributes one import root.
var (
	// package Name, package 'Quoted Name', optionally prefixed by
	// standard/library modifiers as in library sources.
	namespacePattern = regexp.MustCompile(`(?m)^\s*(?:standard\s+)?(?:library\s+)?package\s+(?:'([^']+)'|([\pL_][\pL\pN_]*))`)

	// import Target with optional visibility modifier, anchored at a line
	// start or after a '{' or ';' statement boundary so inline imports on
	// the package header line are seen; the target may be qualified and
	// may end in ::*.
	importPattern = regexp.MustCompile(`(?m)(?:^|[{;])\s*(?:private\s+|public\s+)?import\s+(?:'([^']+)'|([\pL_][\pL\pN_]*(?:::[\pL\pN_*']+)*))`)
)

// firstGroup returns the first non-empty capture group of a
// FindSubmatchIndex result.
func firstGroup(content []byte, loc []int) string {
	for g := 1; g*2+1 < len(loc); g++ {
		s, e := loc[g*2], loc[g*2+1]
		if s >= 0 && e > s {
			return string(content[s:e])
		}
	}
	return ""
}
