package dsp

import "math"

// Smoothing constants.
const (
	// SmoothingAlpha is the EMA weight kept from the previous value when a
	// new pitch candidate arrives. Raw per-frame estimates jitter by tens of
	// Hz; unsmoothed values cause lane-flapping and jittery flight.
	SmoothingAlpha = 0.72

	// DropoutDecay shrinks the smoothed pitch on every callback that has no
	// pitch candidate, so a released note fades instead of sticking.
	DropoutDecay = 0.95

	// pitchSnapFloor is the level below which a decayed pitch snaps to zero.
	pitchSnapFloor = 1.0
)

// PitchRange is a closed frequency band in Hz.
type PitchRange struct {
	Min float64
	Max float64
}

// Contains reports whether f lies within the band.
func (r PitchRange) Contains(f float64) bool {
	return f >= r.Min && f <= r.Max
}

// DefaultPitchRange covers the typical singing voice for flight and
// force-to-lane control.
var DefaultPitchRange = PitchRange{Min: 100, Max: 600}

// NotePitchRange is the narrower two-octave band (C3..C5) used by
// note-to-lane control.
var NotePitchRange = PitchRange{Min: 130.8, Max: 523.3}

// SmoothedSignal is the stable per-callback control signal.
// RawPitch is the smoothed estimate regardless of validity (shown on the
// HUD); Pitch is the same value gated to the valid range and is the only
// field control strategies may act on. Zero Pitch means "no note".
type SmoothedSignal struct {
	Pitch    float64
	RawPitch float64
	Force    float64
}

// Smoother turns jittery per-frame estimates into a stable control signal
// via exponential smoothing with dropout decay and validity gating.
// It is the exclusive owner of its EMA state and is updated exactly once
// per audio callback.
type Smoother struct {
	ValidRange PitchRange

	smoothedPitch float64
	force         float64
}

// NewSmoother creates a smoother gating control pitch to the given range.
func NewSmoother(valid PitchRange) *Smoother {
	return &Smoother{ValidRange: valid}
}

// Update blends one raw estimate into the smoothed state. Invalid estimates
// (glitch frames the estimator could not analyze) are skipped entirely so the
// prior smoothed state carries across them; only a valid unvoiced frame
// starts the dropout decay.
func (s *Smoother) Update(est RawEstimate) {
	if !est.Valid {
		return
	}
	if est.Voiced && est.PitchHz > 0 {
		s.smoothedPitch = s.smoothedPitch*SmoothingAlpha + est.PitchHz*(1-SmoothingAlpha)
	} else {
		s.smoothedPitch *= DropoutDecay
		if s.smoothedPitch < pitchSnapFloor {
			s.smoothedPitch = 0
		}
	}

	s.force = est.Force

	// Numeric edge cases are coerced to zero before any downstream use.
	if math.IsNaN(s.smoothedPitch) || math.IsInf(s.smoothedPitch, 0) {
		s.smoothedPitch = 0
	}
	if math.IsNaN(s.force) || math.IsInf(s.force, 0) || s.force < 0 {
		s.force = 0
	}
}

// Signal returns the current control signal. Pitch is zero whenever the
// smoothed value falls outside the valid range.
func (s *Smoother) Signal() SmoothedSignal {
	sig := SmoothedSignal{
		RawPitch: s.smoothedPitch,
		Force:    s.force,
	}
	if s.ValidRange.Contains(s.smoothedPitch) {
		sig.Pitch = s.smoothedPitch
	}
	return sig
}

// Reset clears the smoothed state for a fresh run.
func (s *Smoother) Reset() {
	s.smoothedPitch = 0
	s.force = 0
}
