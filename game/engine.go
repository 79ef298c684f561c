package game

import (
	"github.com/voxrunner/voxrunner/dsp"
	"github.com/voxrunner/voxrunner/stage"
)

// Engine drives one run: it reads the current smoothed voice signal once
// per tick, maps it to a motion command, advances the player, tests
// collisions against the obstacle field and sequences the run state.
//
// The signal cell is written by the audio callback and read by the render
// tick. Both run cooperatively on the browser's single thread, so the cell
// is a plain field; a genuinely multi-threaded port would need to publish
// it atomically.
type Engine struct {
	Stage  *stage.Config
	Field  *stage.Field
	Mode   ControlMode
	Mapper ControlMapper
	Player PlayerState
	Run    RunState

	signal dsp.SmoothedSignal
	hit    bool // one-shot collision latch, checked before the predicate

	// Events surfaced to the presentation layer. Nil callbacks are skipped.
	OnStarted   func()
	OnCollision func()
	OnCompleted func()
}

// NewEngine builds a fresh engine for one run over a stage. Restarting a
// terminal run means constructing a new engine; nothing is reused.
func NewEngine(cfg *stage.Config, mode ControlMode) (*Engine, error) {
	if cfg == nil {
		return nil, stage.ErrMissingConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	field, err := stage.BuildField(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Stage:  cfg,
		Field:  field,
		Mode:   mode,
		Mapper: NewMapper(mode, cfg),
		Player: NewPlayerState(),
	}, nil
}

// PublishSignal stores the latest smoothed control signal. Called once per
// audio callback; the tick reads it once per frame.
func (e *Engine) PublishSignal(sig dsp.SmoothedSignal) {
	e.signal = sig
}

// Start transitions the run to Running and fires the start event.
func (e *Engine) Start() bool {
	if !e.Run.Start() {
		return false
	}
	if e.OnStarted != nil {
		e.OnStarted()
	}
	return true
}

// Tick advances the simulation by dt seconds. Ticks outside Running are
// no-ops. The terminal outcomes are mutually exclusive: a collision this
// tick fails the run before track completion is considered.
func (e *Engine) Tick(dt float64) {
	if e.Run.Phase != Running {
		return
	}
	if dt <= 0 {
		return
	}
	if dt > MaxTickDelta {
		dt = MaxTickDelta
	}
	e.Run.Elapsed += dt

	cmd := e.Mapper.Map(e.signal)
	e.Player = advance(e.Player, cmd, e.Mode, dt)

	if !e.hit && findCollision(e.Player, e.Field, e.Mode) {
		e.hit = true
		if e.Run.finish(Failed) && e.OnCollision != nil {
			e.OnCollision()
		}
		return
	}

	if e.Player.X >= e.Field.Length {
		if e.Run.finish(Completed) && e.OnCompleted != nil {
			e.OnCompleted()
		}
	}
}

// advance is the pure kinematics step: previous state in, next state out.
// Keeping it free of engine state makes runs deterministic and testable
// without a live audio device or renderer.
func advance(p PlayerState, cmd MotionCommand, mode ControlMode, dt float64) PlayerState {
	switch mode {
	case ModeForceLane, ModeNoteLane:
		return stepLane(p, cmd, dt)
	default:
		return stepFlight(p, cmd, dt)
	}
}

// Progress returns the percentage of the track covered, capped at 100.
func (e *Engine) Progress() float64 {
	if e.Field == nil || e.Field.Length <= 0 {
		return 0
	}
	progress := e.Player.X / e.Field.Length * 100
	if progress > 100 {
		progress = 100
	}
	return progress
}

// Telemetry is the continuous read-only view exposed to the presentation
// layer alongside the start/collision/completion events.
type Telemetry struct {
	Phase    string
	Pitch    float64
	RawPitch float64
	Force    float64
	Lane     int
	Progress float64
	Elapsed  float64
}

// Telemetry snapshots the current run for the HUD and the JS API.
func (e *Engine) Telemetry() Telemetry {
	return Telemetry{
		Phase:    e.Run.Phase.String(),
		Pitch:    e.signal.Pitch,
		RawPitch: e.signal.RawPitch,
		Force:    e.signal.Force,
		Lane:     e.Player.Lane,
		Progress: e.Progress(),
		Elapsed:  e.Run.Elapsed,
	}
}
