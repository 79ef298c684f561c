package dsp

import "math"

// Estimator tuning constants.
const (
	// NoiseFloor is the minimum RMS/peak amplitude treated as signal.
	// Frames where both fall below it are classified as silence.
	NoiseFloor = 0.005

	// FlatnessThreshold is the minimum instantaneous dynamic range
	// (max - min sample) for a frame to count as a live signal.
	// Filters DC offset and constant electrical noise.
	FlatnessThreshold = 0.01

	// CorrelationThreshold is the single acceptance bound for a periodicity
	// candidate: a lag only registers while its correlation exceeds this
	// value on a rise following a trough, and the final estimate is accepted
	// under the same bound.
	CorrelationThreshold = 0.9

	// Force weighting between sustained energy and transient peaks.
	forceRMSWeight  = 0.9
	forcePeakWeight = 0.1
)

// RawEstimate is the output of one autocorrelation pass over a single frame.
// Voiced is false when no periodic signal was detected; PitchHz is then zero.
// Force is always computed for valid frames, independent of pitch validity.
// Valid is false for unusable frames (empty or containing NaN/Inf samples);
// such frames carry no information and must not disturb smoothed state,
// unlike genuine silence, which is a valid unvoiced measurement.
type RawEstimate struct {
	PitchHz float64
	Force   float64
	Voiced  bool
	Valid   bool
}

// Estimator extracts pitch and loudness from raw time-domain audio frames
// using normalized-difference autocorrelation. It holds no state between
// frames; smoothing happens downstream in Smoother.
type Estimator struct {
	SampleRate float64
}

// NewEstimator creates an estimator for the given device sample rate.
func NewEstimator(sampleRate float64) *Estimator {
	return &Estimator{SampleRate: sampleRate}
}

// Estimate runs one pass over a frame of samples in [-1,1].
// Zero-length or non-finite frames yield an estimate with Valid false,
// distinguishing them from silence; callers skip smoothing for those so
// the prior smoothed state is kept.
func (e *Estimator) Estimate(samples []float64) RawEstimate {
	n := len(samples)
	if n < 2 || e.SampleRate <= 0 {
		return RawEstimate{}
	}

	var sumSquares, peak float64
	minS, maxS := samples[0], samples[0]
	for _, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return RawEstimate{}
		}
		sumSquares += s * s
		if a := math.Abs(s); a > peak {
			peak = a
		}
		if s < minS {
			minS = s
		}
		if s > maxS {
			maxS = s
		}
	}

	rms := math.Sqrt(sumSquares / float64(n))
	force := rms*forceRMSWeight + peak*forcePeakWeight

	// Silence / flatness gate. Force is still reported; pitch is not.
	if (rms < NoiseFloor && peak < NoiseFloor) || maxS-minS < FlatnessThreshold {
		return RawEstimate{Force: force, Valid: true}
	}

	offset, ok := e.bestOffset(samples)
	if !ok {
		return RawEstimate{Force: force, Valid: true}
	}

	pitch := e.SampleRate / float64(offset)
	if math.IsNaN(pitch) || math.IsInf(pitch, 0) {
		pitch = 0
	}
	return RawEstimate{PitchHz: pitch, Force: force, Voiced: pitch > 0, Valid: true}
}

// bestOffset scans lags [1, N/2] for the first strong periodicity peak.
// A candidate only registers while the correlation exceeds
// CorrelationThreshold AND is rising; once a registered peak stops rising the
// scan ends, so the fundamental period wins over distant harmonics. The
// initial descent from lag zero never registers because it is falling.
//
// This is the O(N^2) hot path: it must finish within one audio callback
// period for the configured frame size.
func (e *Estimator) bestOffset(samples []float64) (int, bool) {
	window := len(samples) / 2
	if window < 1 {
		return 0, false
	}

	bestOffset := -1
	bestCorrelation := 0.0
	lastCorrelation := 1.0
	found := false

	for offset := 1; offset <= window; offset++ {
		var diff float64
		for i := 0; i < window; i++ {
			diff += math.Abs(samples[i] - samples[i+offset])
		}
		correlation := 1 - diff/float64(window)

		if correlation > CorrelationThreshold && correlation > lastCorrelation {
			found = true
			if correlation > bestCorrelation {
				bestCorrelation = correlation
				bestOffset = offset
			}
		} else if found {
			// Past the peak of the first strong rise.
			break
		}
		lastCorrelation = correlation
	}

	if !found || bestOffset < 1 || bestCorrelation <= CorrelationThreshold {
		return 0, false
	}
	return bestOffset, true
}
