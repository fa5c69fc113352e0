package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// Phase names reported to observers, in pipeline order.
const (
	PhaseParse   = "parse"
	PhaseRequire = "require"
	PhaseAnalyze = "analyze"
	PhaseInline  = "inline"
	PhaseEmit    = "emit"
)

// PhaseEvent describes a timing phase boundary of one unit.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Compile. With
// CompileFiles it is called from several goroutines.
type PhaseObserver func(PhaseEvent)
