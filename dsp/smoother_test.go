package dsp

import (
	"math"
	"testing"
)

func voiced(pitch, force float64) RawEstimate {
	return RawEstimate{PitchHz: pitch, Force: force, Voiced: true, Valid: true}
}

func TestSmoother_StepConvergence(t *testing.T) {
	s := NewSmoother(DefaultPitchRange)

	prev := 0.0
	for i := 0; i < 40; i++ {
		s.Update(voiced(300, 0.2))
		sig := s.Signal()
		if sig.RawPitch < prev {
			t.Fatalf("Smoothed pitch regressed at step %d: %f -> %f", i, prev, sig.RawPitch)
		}
		if sig.RawPitch > 300 {
			t.Fatalf("Smoothed pitch overshot target at step %d: %f", i, sig.RawPitch)
		}
		prev = sig.RawPitch
	}

	if !floatNear(prev, 300, 1) {
		t.Errorf("Expected convergence to ~300 Hz, got %f", prev)
	}
}

func TestSmoother_ConvergesWithinHandfulOfCallbacks(t *testing.T) {
	s := NewSmoother(DefaultPitchRange)
	for i := 0; i < 15; i++ {
		s.Update(voiced(300, 0.2))
	}
	if sig := s.Signal(); !floatNear(sig.Pitch, 300, 5) {
		t.Errorf("Expected ~300 Hz after 15 callbacks, got %f", sig.Pitch)
	}
}

func TestSmoother_DropoutDecaySnapsToZero(t *testing.T) {
	s := NewSmoother(DefaultPitchRange)
	for i := 0; i < 20; i++ {
		s.Update(voiced(200, 0.2))
	}

	prev := s.Signal().RawPitch
	steps := 0
	for s.Signal().RawPitch != 0 {
		s.Update(RawEstimate{Force: 0.01, Valid: true})
		sig := s.Signal()
		if sig.RawPitch >= prev && sig.RawPitch != 0 {
			t.Fatalf("Decay should be strictly decreasing, got %f after %f", sig.RawPitch, prev)
		}
		prev = sig.RawPitch
		steps++
		if steps > 200 {
			t.Fatal("Pitch never snapped to zero")
		}
	}

	// 200 * 0.95^n < 1 requires n > 103
	if steps < 50 {
		t.Errorf("Decay reached zero suspiciously fast: %d steps", steps)
	}
}

func TestSmoother_ValidityGating(t *testing.T) {
	testCases := []struct {
		name    string
		pitch   float64
		gated   bool
		rangeIn PitchRange
	}{
		{"In range", 300, false, DefaultPitchRange},
		{"Below range", 60, true, DefaultPitchRange},
		{"Above range", 900, true, DefaultPitchRange},
		{"Note band accepts C4", 261, false, NotePitchRange},
		{"Note band rejects A5", 880, true, NotePitchRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSmoother(tc.rangeIn)
			for i := 0; i < 50; i++ {
				s.Update(voiced(tc.pitch, 0.1))
			}
			sig := s.Signal()
			if !floatNear(sig.RawPitch, tc.pitch, tc.pitch*0.01) {
				t.Fatalf("RawPitch should track input, got %f", sig.RawPitch)
			}
			if tc.gated && sig.Pitch != 0 {
				t.Errorf("Expected gated pitch 0, got %f", sig.Pitch)
			}
			if !tc.gated && sig.Pitch == 0 {
				t.Error("Expected pitch to pass the gate, got 0")
			}
		})
	}
}

func TestSmoother_GlitchFrameKeepsState(t *testing.T) {
	e := NewEstimator(44100)
	s := NewSmoother(DefaultPitchRange)
	for i := 0; i < 30; i++ {
		s.Update(e.Estimate(makeSine(300, 44100, 0.5, 4096)))
	}
	before := s.Signal()
	if !floatNear(before.Pitch, 300, 1) {
		t.Fatalf("Expected convergence to ~300 Hz, got %f", before.Pitch)
	}

	// One corrupted sample must not read as silence: the smoothed pitch
	// would start decaying and the force would drop to zero mid-note.
	glitch := makeSine(300, 44100, 0.5, 4096)
	glitch[512] = math.NaN()
	s.Update(e.Estimate(glitch))

	if after := s.Signal(); after != before {
		t.Errorf("NaN frame disturbed smoothed state: %+v -> %+v", before, after)
	}

	s.Update(e.Estimate(nil))
	if after := s.Signal(); after != before {
		t.Errorf("Empty frame disturbed smoothed state: %+v -> %+v", before, after)
	}
}

func TestSmoother_DegenerateInputCoercedToZero(t *testing.T) {
	s := NewSmoother(DefaultPitchRange)
	s.Update(RawEstimate{PitchHz: math.NaN(), Force: math.Inf(1), Voiced: true, Valid: true})

	sig := s.Signal()
	if sig.RawPitch != 0 || sig.Pitch != 0 {
		t.Errorf("NaN pitch should coerce to 0, got raw=%f pitch=%f", sig.RawPitch, sig.Pitch)
	}
	if sig.Force != 0 {
		t.Errorf("Inf force should coerce to 0, got %f", sig.Force)
	}
}

func TestSmoother_Reset(t *testing.T) {
	s := NewSmoother(DefaultPitchRange)
	for i := 0; i < 10; i++ {
		s.Update(voiced(250, 0.3))
	}
	s.Reset()
	sig := s.Signal()
	if sig.RawPitch != 0 || sig.Force != 0 {
		t.Errorf("Expected zeroed signal after reset, got %+v", sig)
	}
}
