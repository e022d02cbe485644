package parser

import (
	"fmt"

	"sysmltool/internal/diag"
	"sysmltool/internal/model"
	"sysmltool/internal/universe"
)

// ResolveAll force-resolves every reference reachable from the document
// root against the universe. Unresolved references come back as
// link-origin error diagnostics carrying the best available span.
// Resolution never mutates the universe.
func ResolveAll(ns *model.Namespace, u *universe.Universe) []diag.Diagnostic {
	if ns == nil || ns.Root == nil {
		return nil
	}

	// Imports apply document-wide: wildcard imports open a namespace,
	// named imports bring one qualified element into scope.
	var wildcards, named []string
	ns.Root.Walk(func(n *model.Node) bool {
		if n.Kind == model.KindImport && n.Name != "" {
			if model.IsWildcard(n.Name) {
				wildcards = append(wildcards, model.TrimWildcard(n.Name))
			} else {
				named = append(named, n.Name)
			}
		}
		return true
	})

	var diags []diag.Diagnostic
	var scope []string // qualified path of named ancestors, outermost first

	var walk func(n *model.Node)
	walk = func(n *model.Node) {
		for _, ref := range n.Refs {
			if ref.Resolved != nil {
				continue
			}
			if target := resolveRef(ref.Target, scope, wildcards, named, u); target != nil {
				ref.Resolved = target
				continue
			}
			diags = append(diags, diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.LnkUnresolvedReference,
				Origin:   diag.OriginLink,
				Message:  fmt.Sprintf("Couldn't resolve reference to '%s'", ref.Target),
				Primary:  ref.Span,
			})
		}
		for _, c := range n.Children {
			// An import or expose name is a target, not a scope: its own
			// ref still resolves above, against the surrounding scopes.
			if c.HasName() && !model.TargetOnly(c.Kind) {
				scope = append(scope, c.Name)
				walk(c)
				scope = scope[:len(scope)-1]
			} else {
				walk(c)
			}
		}
	}
	walk(ns.Root)
	return diags
}

// resolveRef tries candidate qualified names in deterministic order:
// the target as written, then relative to each enclosing scope from
// innermost outward, then through wildcard imports, then through named
// imports whose final segment matches the target's root.
func resolveRef(target string, scope, wildcards, named []string, u *universe.Universe) *model.Node {
	if n, ok := u.Lookup(target); ok {
		return n
	}

	for i := len(scope); i > 0; i-- {
		prefix := model.JoinQualified(scope[:i]...)
		if n, ok := u.Lookup(prefix + model.QualifiedSep + target); ok {
			return n
		}
	}

	for _, w := range wildcards {
		if w == "" {
			continue
		}
		if n, ok := u.Lookup(w + model.QualifiedSep + target); ok {
			return n
		}
	}

	root := model.RootSegment(target)
	for _, imp := range named {
		segs := model.SplitQualified(imp)
		if len(segs) < 2 || segs[len(segs)-1] != root {
			continue
		}
		prefix := model.JoinQualified(segs[:len(segs)-1]...)
		if n, ok := u.Lookup(prefix + model.QualifiedSep + target); ok {
			return n
		}
	}
	return nil
}
