package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a batch phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary or a per-document progress
// step. Document steps carry Path and Done/Total; batch-level events
// leave them zero.
type PhaseEvent struct {
	Phase   string
	Status  PhaseStatus
	Path    string
	Done    int
	Total   int
	Elapsed time.Duration
}

// PhaseObserver receives events emitted during ValidateAll.
type PhaseObserver func(PhaseEvent)
