package game

import (
	"math"

	"github.com/voxrunner/voxrunner/stage"
)

// Note is a symbolic pitch label with its canonical frequency and the
// frequency band it claims. Tables are immutable once built.
type Note struct {
	Name      string
	Frequency float64
	Min       float64
	Max       float64
}

// NoteTable maps a sung frequency to a note and its lane.
type NoteTable struct {
	Notes []Note
}

// noteMatchTolerance is the widest distance, in Hz, at which an
// out-of-band frequency still snaps to the nearest note.
const noteMatchTolerance = 25.0

// Major-scale frequencies, C3..C5 boundary neighbors included for band edges.
var scaleNames = [7]string{"C", "D", "E", "F", "G", "A", "B"}

// scaleFreqs4 is the C4 major scale (do..si).
var scaleFreqs4 = [7]float64{261.63, 293.66, 329.63, 349.23, 392.00, 440.00, 493.88}

// scaleFreqs3 is the C3 major scale, one octave below.
var scaleFreqs3 = [7]float64{130.81, 146.83, 164.81, 174.61, 196.00, 220.00, 246.94}

// StandardNoteTable returns the seven-note single-octave table (C4..B4).
// Band edges sit at the midpoints between neighboring scale notes, with the
// outer bands extended half a scale step past the edge notes.
func StandardNoteTable() *NoteTable {
	return buildTable(scaleNames[:], scaleFreqs4[:], 246.94, 523.25)
}

// WideNoteTable returns the fourteen-note two-octave table (C3..B4).
// Both octaves of a scale degree share a lane, so singers can use whichever
// octave is comfortable.
func WideNoteTable() *NoteTable {
	names := make([]string, 0, 14)
	freqs := make([]float64, 0, 14)
	for i := range scaleNames {
		names = append(names, scaleNames[i]+"3")
		freqs = append(freqs, scaleFreqs3[i])
	}
	for i := range scaleNames {
		names = append(names, scaleNames[i]+"4")
		freqs = append(freqs, scaleFreqs4[i])
	}
	return buildTable(names, freqs, 123.47, 523.25)
}

// buildTable computes each note's band from the midpoints with its
// neighbors; below/above are the frequencies flanking the first and last
// scale notes.
func buildTable(names []string, freqs []float64, below, above float64) *NoteTable {
	notes := make([]Note, len(freqs))
	for i, f := range freqs {
		lower := below
		if i > 0 {
			lower = freqs[i-1]
		}
		upper := above
		if i < len(freqs)-1 {
			upper = freqs[i+1]
		}
		notes[i] = Note{
			Name:      names[i],
			Frequency: f,
			Min:       (lower + f) / 2,
			Max:       (f + upper) / 2,
		}
	}
	return &NoteTable{Notes: notes}
}

// Classify matches a frequency to a note index. It first checks each
// note's band; failing that, it falls back to the nearest note by absolute
// distance within the match tolerance. Returns -1 when nothing matches.
func (t *NoteTable) Classify(freq float64) int {
	if freq <= 0 {
		return -1
	}
	for i, n := range t.Notes {
		if freq >= n.Min && freq < n.Max {
			return i
		}
	}

	best := -1
	bestDist := math.MaxFloat64
	for i, n := range t.Notes {
		if d := math.Abs(freq - n.Frequency); d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best >= 0 && bestDist <= noteMatchTolerance {
		return best
	}
	return -1
}

// Lane folds a note index onto the lane grid, so both octaves of a scale
// degree land on the same lane.
func (t *NoteTable) Lane(index int) int {
	if index < 0 {
		return 0
	}
	return stage.ClampLane(index % stage.NumLanes)
}
