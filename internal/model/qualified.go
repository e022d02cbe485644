package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// QualifiedSep separates segments of a qualified name.
const QualifiedSep = "::"

// NormalizeName puts a name segment into NFC so that visually identical
// identifiers compare equal in the symbol universe.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// JoinQualified builds a normalized qualified name from segments.
func JoinQualified(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		parts = append(parts, NormalizeName(seg))
	}
	return strings.Join(parts, QualifiedSep)
}

// SplitQualified splits a qualified name into normalized segments.
func SplitQualified(name string) []string {
	raw := strings.Split(name, QualifiedSep)
	out := make([]string, 0, len(raw))
	for _, seg := range raw {
		out = append(out, NormalizeName(seg))
	}
	return out
}

// RootSegment returns the first segment of a qualified name: the
// namespace root used to match imports against declaring documents.
func RootSegment(name string) string {
	if i := strings.Index(name, QualifiedSep); i >= 0 {
		return NormalizeName(name[:i])
	}
	return NormalizeName(name)
}

// IsWildcard reports whether an import target ends with ::*.
func IsWildcard(target string) bool {
	return strings.HasSuffix(target, QualifiedSep+"*") || target == "*"
}

// TrimWildcard removes a trailing ::* from an import target.
func TrimWildcard(target string) string {
	if target == "*" {
		return ""
	}
	return strings.TrimSuffix(target, QualifiedSep+"*")
}
