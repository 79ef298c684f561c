package main

import (
	"math"

	"github.com/voxrunner/voxrunner/stage"
)

// Generator turns an audio analysis into a playable stage: pillars placed
// on the beat grid, sized by loudness, flipped top/bottom by brightness.
type Generator struct {
	ScrollSpeed float64 // px/s, must match the game's base speed
	MinSpacing  float64 // px between consecutive pillars
}

// Pillars places one pillar on every other beat, subject to the minimum
// spacing. Loud beats block more lanes; bright beats block the top lanes,
// dark ones the bottom.
func (g *Generator) Pillars(a *Analysis) []stage.PillarConfig {
	var pillars []stage.PillarConfig
	lastX := -g.MinSpacing

	for i, beat := range a.BeatTimes {
		// Every other beat keeps the stage sight-readable.
		if i%2 != 0 {
			continue
		}
		x := math.Trunc(beat * g.ScrollSpeed)
		if x-lastX < g.MinSpacing {
			continue
		}

		idx := nearestIndex(a.RMSTimes, beat)
		amplitude := 0.0
		if idx >= 0 && idx < len(a.RMS) {
			amplitude = a.RMS[idx]
		}
		brightness := 0.0
		if idx >= 0 && idx < len(a.Centroid) {
			brightness = a.Centroid[idx]
		}

		blocked, width := pillarDifficulty(amplitude)
		pillars = append(pillars, stage.PillarConfig{
			X:            x,
			Width:        width,
			BlockedLanes: blockedLanes(blocked, brightness > 0.5),
		})
		lastX = x
	}
	return pillars
}

// pillarDifficulty maps normalized loudness to lane count and width.
func pillarDifficulty(amplitude float64) (lanes int, width float64) {
	switch {
	case amplitude < 0.3:
		return 2, 50
	case amplitude < 0.6:
		return 3, 70
	default:
		return 4, 90
	}
}

// blockedLanes builds a contiguous lane block at the top or bottom.
func blockedLanes(count int, top bool) []int {
	lanes := make([]int, 0, count)
	if top {
		for lane := stage.NumLanes - count; lane < stage.NumLanes; lane++ {
			lanes = append(lanes, lane)
		}
		return lanes
	}
	for lane := 0; lane < count; lane++ {
		lanes = append(lanes, lane)
	}
	return lanes
}

// Config assembles the full stage file for a song.
func (g *Generator) Config(a *Analysis, name, audioFile string) *stage.Config {
	pillars := g.Pillars(a)
	return &stage.Config{
		Name:            name,
		AudioFile:       audioFile,
		Duration:        round2(a.Duration),
		BPM:             round1(a.Tempo),
		Length:          math.Trunc(a.Duration * g.ScrollSpeed),
		ForceMultiplier: 1,
		Pillars:         pillars,
		Metadata: &stage.Metadata{
			GeneratedFrom:    "stagegen",
			Tempo:            round1(a.Tempo),
			Beats:            len(a.BeatTimes),
			Onsets:           len(a.OnsetTimes),
			PillarsGenerated: len(pillars),
		},
	}
}

// nearestIndex returns the index of the time closest to t. Times are
// ascending, so the scan can stop once the distance grows.
func nearestIndex(times []float64, t float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, v := range times {
		d := math.Abs(v - t)
		if d > bestDist {
			break
		}
		best, bestDist = i, d
	}
	return best
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
