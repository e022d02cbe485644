package sema

import (
	"sysmltool/internal/diag"
	"sysmltool/internal/model"
)

// Validator is the rule-checking capability the batch driver consumes.
// Implementations receive one resolved document tree at a time and
// report findings as diagnostics; an error means the check itself could
// not run, not that the document is invalid.
type Validator interface {
	Validate(ns *model.Namespace) ([]diag.Diagnostic, error)
}

// ConcurrentValidator marks a Validator as safe to call from multiple
// goroutines at once. Validators without this marker are treated as
// single-threaded and run document by document.
type ConcurrentValidator interface {
	Validator
	Concurrent() bool
}

// Concurrent reports that RuleChecker holds no per-call state and may
// validate documents in parallel.
func (c *RuleChecker) Concurrent() bool { return true }
