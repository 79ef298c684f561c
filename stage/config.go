package stage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// World geometry shared by the engine and the obstacle field.
const (
	// NumLanes is the number of discrete vertical control positions.
	NumLanes = 7

	// WorldHeight is the playable height in pixels; lane 0 sits at the
	// bottom, lane NumLanes-1 at the top.
	WorldHeight = 600.0

	// LaneHeight is the vertical extent of one lane.
	LaneHeight = WorldHeight / NumLanes
)

// Load-time errors. Everything after a successful load is clamped, not
// rejected: a started run is never interrupted by bad data.
var (
	ErrMissingConfig = errors.New("stage: missing stage configuration")
	ErrNoGeometry    = errors.New("stage: no track length or obstacle geometry")
)

// PillarConfig is one obstacle entry as produced by the offline generator.
// Either BlockedLanes or an explicit MinY/MaxY vertical extent is given.
type PillarConfig struct {
	X            float64  `json:"x"`
	Width        float64  `json:"width"`
	BlockedLanes []int    `json:"blockedLanes,omitempty"`
	MinY         *float64 `json:"minY,omitempty"`
	MaxY         *float64 `json:"maxY,omitempty"`
}

// Metadata carries provenance from the generator. Informational only.
type Metadata struct {
	GeneratedFrom    string  `json:"generatedFrom,omitempty"`
	Tempo            float64 `json:"tempo,omitempty"`
	Beats            int     `json:"beats,omitempty"`
	Onsets           int     `json:"onsets,omitempty"`
	PillarsGenerated int     `json:"pillarsGenerated,omitempty"`
}

// Config is a full stage description: a track's obstacle layout, length and
// difficulty scaling, derived from a song. Read-only to the engine.
type Config struct {
	Name            string         `json:"name"`
	AudioFile       string         `json:"audioFile,omitempty"`
	Duration        float64        `json:"duration,omitempty"`
	BPM             float64        `json:"bpm,omitempty"`
	Length          float64        `json:"length"`
	ForceMultiplier float64        `json:"forceMultiplier"`
	Pillars         []PillarConfig `json:"pillars"`
	Metadata        *Metadata      `json:"metadata,omitempty"`
}

// Parse decodes and validates a stage configuration. A stage without a
// positive track length is unusable and refused; individual malformed pillar
// entries are tolerated and clamped later at field-build time.
func Parse(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, ErrMissingConfig
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("stage: decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the load-time invariants and fills defaults.
func (c *Config) Validate() error {
	if c == nil {
		return ErrMissingConfig
	}
	if c.Length <= 0 {
		return ErrNoGeometry
	}
	if c.ForceMultiplier <= 0 {
		c.ForceMultiplier = 1
	}
	return nil
}

// LaneY returns the vertical screen position (center) of a lane index.
// Out-of-range indices are clamped.
func LaneY(lane int) float64 {
	lane = ClampLane(lane)
	return WorldHeight - LaneHeight*(float64(lane)+0.5)
}

// ClampLane clamps a lane index to [0, NumLanes-1].
func ClampLane(lane int) int {
	if lane < 0 {
		return 0
	}
	if lane >= NumLanes {
		return NumLanes - 1
	}
	return lane
}
