// Package sema runs the semantic rule set over one resolved document
// tree. Each document is checked against the fully populated universe,
// so check order across documents does not matter.
package sema

import (
	"fmt"

	"sysmltool/internal/diag"
	"sysmltool/internal/model"
)

// RuleChecker is the built-in semantic validator. It is stateless and
// safe for concurrent use across documents.
type RuleChecker struct{}

// NewRuleChecker returns the default rule set.
func NewRuleChecker() *RuleChecker {
	return &RuleChecker{}
}

// semaDiagLimit caps rule diagnostics per document.
const semaDiagLimit = 512

// Validate inspects a resolved document tree and returns rule
// diagnostics in positional order. The tree is read-only for the
// checker.
func (c *RuleChecker) Validate(ns *model.Namespace) ([]diag.Diagnostic, error) {
	if ns == nil || ns.Root == nil {
		return nil, fmt.Errorf("no document tree to validate")
	}

	bag := diag.NewBag(semaDiagLimit)
	report := func(sev diag.Severity, code diag.Code, n *model.Node, format string, args ...any) {
		bag.Add(diag.Diagnostic{
			Severity: sev,
			Code:     code,
			Origin:   diag.OriginSemantic,
			Message:  fmt.Sprintf(format, args...),
			Primary:  n.Span,
		})
	}

	ns.Root.Walk(func(n *model.Node) bool {
		c.checkUnresolved(n, report)
		c.checkDuplicateMembers(n, report)
		c.checkRelationEndpoints(n, report)
		c.checkEmptyNamespace(n, report)
		return true
	})
	bag.Sort()
	return bag.Items(), nil
}

type reportFn func(sev diag.Severity, code diag.Code, n *model.Node, format string, args ...any)

// checkUnresolved re-detects unresolved references: the rule checker is
// authoritative for reference problems, the reconciler later drops the
// matching link diagnostic.
func (c *RuleChecker) checkUnresolved(n *model.Node, report reportFn) {
	for _, ref := range n.Refs {
		if ref.Resolved == nil {
			report(diag.SevError, diag.SemUnresolvedReference, n,
				"Couldn't resolve reference to '%s'", ref.Target)
		}
	}
}

func (c *RuleChecker) checkDuplicateMembers(n *model.Node, report reportFn) {
	if len(n.Children) < 2 {
		return
	}
	seen := make(map[string]bool, len(n.Children))
	for _, child := range n.Children {
		if !child.HasName() || model.ContentOnly(child.Kind) || model.TargetOnly(child.Kind) {
			continue
		}
		name := model.NormalizeName(child.Name)
		if seen[name] {
			owner := n.Name
			if owner == "" {
				owner = "document"
			}
			report(diag.SevError, diag.SemDuplicateMember, child,
				"Duplicate member name '%s' in '%s'", child.Name, owner)
			continue
		}
		seen[name] = true
	}
}

func (c *RuleChecker) checkRelationEndpoints(n *model.Node, report reportFn) {
	label, ok := model.RelationKind(n.Kind)
	if !ok {
		return
	}
	min := 2
	if n.Kind == model.KindVerify {
		min = 1
	}
	if len(n.Refs) < min {
		report(diag.SevWarning, diag.SemDanglingRelation, n,
			"%s relation is missing an endpoint", label)
	}
}

func (c *RuleChecker) checkEmptyNamespace(n *model.Node, report reportFn) {
	if n.Kind != model.KindNamespace || !n.HasName() {
		return
	}
	for _, child := range n.Children {
		if !model.ContentOnly(child.Kind) {
			return
		}
	}
	report(diag.SevWarning, diag.SemEmptyNamespace, n,
		"Namespace '%s' declares no elements", n.Name)
}
