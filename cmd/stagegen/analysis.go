package main

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Analysis frame geometry. One hop at 44.1 kHz is ~11.6 ms, fine enough to
// localize beats without blowing up the envelope arrays.
const (
	frameSize = 2048
	hopSize   = 512
)

// Tempo search band in BPM.
const (
	minTempo = 60.0
	maxTempo = 180.0
)

// Analysis is everything the pillar generator needs from a song: the beat
// grid for placement, the loudness envelope for difficulty and the spectral
// centroid for top/bottom placement. Envelope values are min-max normalized
// to [0, 1].
type Analysis struct {
	Duration   float64
	SampleRate float64
	Tempo      float64

	BeatTimes  []float64
	OnsetTimes []float64

	RMS      []float64
	RMSTimes []float64
	Centroid []float64
}

// Analyze runs the full offline analysis over mono samples.
func Analyze(samples []float64, sampleRate float64) *Analysis {
	a := &Analysis{
		Duration:   float64(len(samples)) / sampleRate,
		SampleRate: sampleRate,
	}

	a.RMS, a.RMSTimes = rmsEnvelope(samples, sampleRate)
	a.Centroid = spectralCentroid(samples, sampleRate)
	normalize(a.RMS)
	normalize(a.Centroid)

	flux := onsetEnvelope(samples)
	a.OnsetTimes = detectOnsets(flux, sampleRate)
	a.Tempo = estimateTempo(flux, sampleRate)
	a.BeatTimes = beatGrid(flux, a.Tempo, a.Duration, sampleRate)

	return a
}

// hopTime is the duration of one envelope frame step.
func hopTime(sampleRate float64) float64 {
	return hopSize / sampleRate
}

// rmsEnvelope computes the framewise RMS amplitude and frame center times.
func rmsEnvelope(samples []float64, sampleRate float64) (rms, times []float64) {
	for start := 0; start+frameSize <= len(samples); start += hopSize {
		var sum float64
		for _, s := range samples[start : start+frameSize] {
			sum += s * s
		}
		rms = append(rms, math.Sqrt(sum/frameSize))
		times = append(times, (float64(start)+frameSize/2)/sampleRate)
	}
	return rms, times
}

// spectralCentroid computes the framewise spectral centroid in Hz: the
// magnitude-weighted mean frequency, a proxy for brightness.
func spectralCentroid(samples []float64, sampleRate float64) []float64 {
	win := window.Hann(frameSize)
	frame := make([]float64, frameSize)

	var centroids []float64
	for start := 0; start+frameSize <= len(samples); start += hopSize {
		for i := range frame {
			frame[i] = samples[start+i] * win[i]
		}
		spectrum := fft.FFTReal(frame)

		var weighted, total float64
		for bin := 0; bin <= frameSize/2; bin++ {
			mag := cmplx.Abs(spectrum[bin])
			weighted += float64(bin) * mag
			total += mag
		}
		if total == 0 {
			centroids = append(centroids, 0)
			continue
		}
		binHz := sampleRate / frameSize
		centroids = append(centroids, weighted/total*binHz)
	}
	return centroids
}

// onsetEnvelope computes the half-wave rectified energy flux per hop: the
// increase in frame energy over the previous frame. Attacks spike it,
// sustained tones keep it near zero.
func onsetEnvelope(samples []float64) []float64 {
	var flux []float64
	prev := 0.0
	for start := 0; start+frameSize <= len(samples); start += hopSize {
		var energy float64
		for _, s := range samples[start : start+frameSize] {
			energy += s * s
		}
		d := energy - prev
		if d < 0 {
			d = 0
		}
		flux = append(flux, d)
		prev = energy
	}
	return flux
}

// detectOnsets picks local maxima of the flux envelope that rise above the
// mean by one standard deviation, with a short refractory gap so one attack
// yields one onset.
func detectOnsets(flux []float64, sampleRate float64) []float64 {
	if len(flux) < 3 {
		return nil
	}

	var mean float64
	for _, f := range flux {
		mean += f
	}
	mean /= float64(len(flux))
	var variance float64
	for _, f := range flux {
		variance += (f - mean) * (f - mean)
	}
	threshold := mean + math.Sqrt(variance/float64(len(flux)))

	// Refractory gap of ~50 ms between reported onsets.
	minGap := int(0.05/hopTime(sampleRate)) + 1

	var onsets []float64
	last := -minGap
	for i := 1; i < len(flux)-1; i++ {
		if flux[i] < threshold || flux[i] < flux[i-1] || flux[i] < flux[i+1] {
			continue
		}
		if i-last < minGap {
			continue
		}
		onsets = append(onsets, float64(i)*hopTime(sampleRate))
		last = i
	}
	return onsets
}

// estimateTempo autocorrelates the flux envelope over the lag band
// corresponding to 60-180 BPM and returns the strongest periodicity.
func estimateTempo(flux []float64, sampleRate float64) float64 {
	ht := hopTime(sampleRate)
	minLag := int(60 / maxTempo / ht)
	maxLag := int(60 / minTempo / ht)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(flux) {
		maxLag = len(flux) - 1
	}
	if maxLag < minLag {
		return 120 // too little signal to estimate; a neutral default
	}

	bestLag, bestScore := minLag, math.Inf(-1)
	for lag := minLag; lag <= maxLag; lag++ {
		var score float64
		for i := 0; i+lag < len(flux); i++ {
			score += flux[i] * flux[i+lag]
		}
		// Normalize by overlap so long lags are not penalized.
		score /= float64(len(flux) - lag)
		if score > bestScore {
			bestScore = score
			bestLag = lag
		}
	}
	return 60 / (float64(bestLag) * ht)
}

// beatGrid lays a fixed grid at the estimated tempo, phase-aligned to where
// the flux envelope peaks.
func beatGrid(flux []float64, tempo, duration float64, sampleRate float64) []float64 {
	if tempo <= 0 || duration <= 0 {
		return nil
	}
	period := 60 / tempo
	ht := hopTime(sampleRate)
	periodFrames := int(period / ht)
	if periodFrames < 1 {
		periodFrames = 1
	}

	// Best phase: the offset whose comb over the envelope collects the
	// most flux.
	bestOffset, bestScore := 0, math.Inf(-1)
	for offset := 0; offset < periodFrames; offset++ {
		var score float64
		for i := offset; i < len(flux); i += periodFrames {
			score += flux[i]
		}
		if score > bestScore {
			bestScore = score
			bestOffset = offset
		}
	}

	var beats []float64
	for t := float64(bestOffset) * ht; t < duration; t += period {
		beats = append(beats, t)
	}
	return beats
}

// normalize rescales values to [0, 1] in place. A flat envelope maps to
// all zeros.
func normalize(values []float64) {
	if len(values) == 0 {
		return
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		for i := range values {
			values[i] = 0
		}
		return
	}
	for i := range values {
		values[i] = (values[i] - lo) / (hi - lo)
	}
}
