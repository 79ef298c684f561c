package game

import "time"

// RunPhase is the lifecycle of a single run. Completed and Failed are
// terminal; a terminal run can only be replaced by reconstructing the
// engine, never resumed in place.
type RunPhase int

const (
	NotStarted RunPhase = iota
	Running
	Completed
	Failed
)

// String returns the phase name used in telemetry.
func (p RunPhase) String() string {
	switch p {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "not-started"
	}
}

// RunState sequences start/running/terminal outcomes. The tick loop is its
// single writer; exactly one terminal transition happens per run.
type RunState struct {
	Phase     RunPhase
	StartTime time.Time
	Elapsed   float64
}

// Start is the only NotStarted -> Running transition and records the start
// time. Starting from any other phase is a no-op.
func (r *RunState) Start() bool {
	if r.Phase != NotStarted {
		return false
	}
	r.Phase = Running
	r.StartTime = time.Now()
	return true
}

// Terminal reports whether the run has finished either way.
func (r *RunState) Terminal() bool {
	return r.Phase == Completed || r.Phase == Failed
}

// finish moves a running run to a terminal phase. Returns false if the run
// was not running, so a terminal phase can never be overwritten.
func (r *RunState) finish(phase RunPhase) bool {
	if r.Phase != Running {
		return false
	}
	r.Phase = phase
	return true
}
