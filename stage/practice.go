package stage

import "github.com/voxrunner/voxrunner/common"

// Practice stage tuning. Matches the pacing of generated stages so practice
// carries over: pillars roughly every 400-700 px at 80 px/s scroll.
const (
	practiceLength     = 16000.0
	practiceFirstX     = 800.0
	practiceMinSpacing = 400.0
	practiceMaxSpacing = 700.0
)

// Practice builds a deterministic procedural stage keyed by name, so the
// game is playable without a generated song stage. The same name always
// yields the same layout.
func Practice(name string) *Config {
	rng := common.NewSeededRNG(common.StageSeed(name))

	cfg := &Config{
		Name:            name,
		Length:          practiceLength,
		ForceMultiplier: 1,
	}

	x := practiceFirstX
	for x < practiceLength-practiceMinSpacing {
		blocked := rng.RandomInt(2, 5) // 2..4 lanes, like generated stages
		width := 50.0 + float64(blocked-2)*20

		var lanes []int
		if rng.Random() > 0.5 {
			// Block top lanes; the player must stay low.
			for lane := NumLanes - blocked; lane < NumLanes; lane++ {
				lanes = append(lanes, lane)
			}
		} else {
			// Block bottom lanes; the player must climb.
			for lane := 0; lane < blocked; lane++ {
				lanes = append(lanes, lane)
			}
		}

		cfg.Pillars = append(cfg.Pillars, PillarConfig{
			X:            x,
			Width:        width,
			BlockedLanes: lanes,
		})
		x += rng.RandomFloat(practiceMinSpacing, practiceMaxSpacing)
	}

	return cfg
}
