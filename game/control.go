package game

import (
	"math"

	"github.com/voxrunner/voxrunner/dsp"
	"github.com/voxrunner/voxrunner/stage"
)

// ControlMode selects how the smoothed voice signal drives motion.
type ControlMode int

const (
	// ModeFlight maps pitch to continuous upward velocity and loudness to
	// forward boost.
	ModeFlight ControlMode = iota
	// ModeForceLane maps loudness to a discrete lane via a threshold table.
	ModeForceLane
	// ModeNoteLane maps sung notes to lanes.
	ModeNoteLane
)

// String returns the mode name used in the JS API and stage selection.
func (m ControlMode) String() string {
	switch m {
	case ModeForceLane:
		return "force-lane"
	case ModeNoteLane:
		return "note-lane"
	default:
		return "flight"
	}
}

// ParseControlMode maps a mode name to a ControlMode, defaulting to flight.
func ParseControlMode(name string) ControlMode {
	switch name {
	case "force-lane":
		return ModeForceLane
	case "note-lane":
		return ModeNoteLane
	default:
		return ModeFlight
	}
}

// MotionCommand is one tick's worth of control output.
// When SetVelY is true, VelY replaces the gravity-integrated vertical
// velocity for this tick (it does not add to it). When HasLane is true,
// TargetLane is the commanded lane.
type MotionCommand struct {
	SetVelY    bool
	VelY       float64
	Boost      float64
	HasLane    bool
	TargetLane int
}

// ControlMapper converts the smoothed signal into a motion command.
// One strategy is picked per stage/mode.
type ControlMapper interface {
	Map(sig dsp.SmoothedSignal) MotionCommand
}

// Compile-time strategy checks.
var (
	_ ControlMapper = (*FlightMapper)(nil)
	_ ControlMapper = (*ForceLaneMapper)(nil)
	_ ControlMapper = (*NoteLaneMapper)(nil)
)

// FlightMapper implements continuous pitch/volume flight: pitch position in
// the valid band commands an absolute upward velocity, loudness commands a
// forward boost with a perceptual exponent so the top of the loudness range
// yields disproportionately larger boosts.
type FlightMapper struct {
	Range dsp.PitchRange
}

// NewFlightMapper builds the flight strategy over the default voice band.
func NewFlightMapper() *FlightMapper {
	return &FlightMapper{Range: dsp.DefaultPitchRange}
}

// Map converts pitch to climb velocity and force to boost.
func (m *FlightMapper) Map(sig dsp.SmoothedSignal) MotionCommand {
	cmd := MotionCommand{Boost: VolumeBoost(sig.Force)}
	if sig.Pitch >= m.Range.Min && m.Range.Max > m.Range.Min {
		normalized := (sig.Pitch - m.Range.Min) / (m.Range.Max - m.Range.Min)
		normalized = clamp(normalized, 0, 1)
		cmd.SetVelY = true
		cmd.VelY = -normalized * MaxUpwardVelocity // up is negative Y
	}
	return cmd
}

// VolumeBoost maps a loudness value to additional forward speed.
// The input is amplified then compressed with a 1.5 exponent, matching how
// perceived loudness grows.
func VolumeBoost(volume float64) float64 {
	if volume <= 0 || math.IsNaN(volume) {
		return 0
	}
	amplified := volume * 3
	if amplified > 1 {
		amplified = 1
	}
	return math.Pow(amplified, 1.5) * MaxBoost
}

// ForceLaneMapper implements discrete force-to-lane control over a
// monotonic threshold table scaled by the stage's force multiplier.
type ForceLaneMapper struct {
	Thresholds [stage.NumLanes]float64
	Multiplier float64
}

// NewForceLaneMapper builds the force strategy for a stage multiplier.
func NewForceLaneMapper(multiplier float64) *ForceLaneMapper {
	if multiplier <= 0 {
		multiplier = 1
	}
	return &ForceLaneMapper{
		Thresholds: laneForceThresholds,
		Multiplier: multiplier,
	}
}

// Map selects the lane whose scaled threshold interval contains the force.
// The top lane's upper bound is +Inf; anything below the table maps to
// lane 0.
func (m *ForceLaneMapper) Map(sig dsp.SmoothedSignal) MotionCommand {
	lane := 0
	for i := 0; i < stage.NumLanes; i++ {
		lower := m.Thresholds[i] * m.Multiplier
		upper := math.Inf(1)
		if i+1 < stage.NumLanes {
			upper = m.Thresholds[i+1] * m.Multiplier
		}
		if sig.Force >= lower && sig.Force < upper {
			lane = i
			break
		}
	}
	return MotionCommand{HasLane: true, TargetLane: lane, Boost: 0}
}

// NoteLaneMapper implements discrete note-to-lane control: the gated pitch
// is classified against a note table and the note's lane becomes the
// target. With no note, the previous lane is held (no command).
type NoteLaneMapper struct {
	Table *NoteTable

	// InvertLanes flips the lane index when the visual lane order runs
	// top-to-bottom while the note order runs low-to-high.
	InvertLanes bool
}

// NewNoteLaneMapper builds the note strategy over the wide two-octave table.
func NewNoteLaneMapper() *NoteLaneMapper {
	return &NoteLaneMapper{Table: WideNoteTable()}
}

// Map classifies the pitch into a lane command.
func (m *NoteLaneMapper) Map(sig dsp.SmoothedSignal) MotionCommand {
	index := m.Table.Classify(sig.Pitch)
	if index < 0 {
		return MotionCommand{}
	}
	lane := m.Table.Lane(index)
	if m.InvertLanes {
		lane = stage.NumLanes - 1 - lane
	}
	return MotionCommand{HasLane: true, TargetLane: lane}
}

// NewMapper builds the control strategy for a mode and stage.
func NewMapper(mode ControlMode, cfg *stage.Config) ControlMapper {
	switch mode {
	case ModeForceLane:
		mult := 1.0
		if cfg != nil {
			mult = cfg.ForceMultiplier
		}
		return NewForceLaneMapper(mult)
	case ModeNoteLane:
		return NewNoteLaneMapper()
	default:
		return NewFlightMapper()
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
