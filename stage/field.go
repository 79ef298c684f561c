package stage

import "sort"

// LaneSet is a bitmask over lane indices.
type LaneSet uint8

// Add marks a lane (clamped) as blocked.
func (s *LaneSet) Add(lane int) {
	*s |= 1 << uint(ClampLane(lane))
}

// Contains reports whether a lane is in the set.
func (s LaneSet) Contains(lane int) bool {
	if lane < 0 || lane >= NumLanes {
		return false
	}
	return s&(1<<uint(lane)) != 0
}

// Empty reports whether no lane is blocked.
func (s LaneSet) Empty() bool { return s == 0 }

// Obstacle is a static region in the scrolling world that ends a run on
// overlap. Both representations are populated at build time: the Y extent
// for pixel-AABB collision, the lane set for lane-membership collision.
// Obstacles are immutable once built.
type Obstacle struct {
	X      float64
	Width  float64
	MinY   float64
	MaxY   float64
	Lanes  LaneSet
	Ceiled bool // anchored to the ceiling rather than the floor
}

// Field is the immutable per-stage obstacle geometry with range queries.
// Obstacles are sorted by X at build time so queries can binary-search.
type Field struct {
	Length    float64
	obstacles []Obstacle
	maxWidth  float64
}

// BuildField constructs the obstacle field from a stage configuration.
// Malformed pillar entries are clamped into validity rather than rejected.
func BuildField(cfg *Config) (*Field, error) {
	if cfg == nil {
		return nil, ErrMissingConfig
	}
	if cfg.Length <= 0 {
		return nil, ErrNoGeometry
	}

	f := &Field{
		Length:    cfg.Length,
		obstacles: make([]Obstacle, 0, len(cfg.Pillars)),
	}
	for _, p := range cfg.Pillars {
		ob, ok := buildObstacle(p)
		if !ok {
			continue
		}
		f.obstacles = append(f.obstacles, ob)
		if ob.Width > f.maxWidth {
			f.maxWidth = ob.Width
		}
	}
	sort.Slice(f.obstacles, func(i, j int) bool {
		return f.obstacles[i].X < f.obstacles[j].X
	})
	return f, nil
}

// buildObstacle normalizes one pillar entry. Entries with neither blocked
// lanes nor a vertical extent carry no geometry and are dropped.
func buildObstacle(p PillarConfig) (Obstacle, bool) {
	ob := Obstacle{X: p.X, Width: p.Width}
	if ob.Width <= 0 {
		ob.Width = 50
	}
	if ob.X < 0 {
		ob.X = 0
	}

	switch {
	case len(p.BlockedLanes) > 0:
		for _, lane := range p.BlockedLanes {
			ob.Lanes.Add(lane)
		}
		ob.MinY, ob.MaxY, ob.Ceiled = lanesToExtent(ob.Lanes)
	case p.MinY != nil && p.MaxY != nil:
		ob.MinY, ob.MaxY = *p.MinY, *p.MaxY
		if ob.MinY > ob.MaxY {
			ob.MinY, ob.MaxY = ob.MaxY, ob.MinY
		}
		if ob.MinY < 0 {
			ob.MinY = 0
		}
		if ob.MaxY > WorldHeight {
			ob.MaxY = WorldHeight
		}
		ob.Lanes = extentToLanes(ob.MinY, ob.MaxY)
		ob.Ceiled = ob.MinY <= 0
	default:
		return Obstacle{}, false
	}
	return ob, true
}

// lanesToExtent converts a blocked-lane set to a vertical extent.
// The pillar is anchored to the floor when the bottom lane is blocked and
// to the ceiling otherwise, spanning from the anchor across every blocked
// lane including the full height of the outermost one.
func lanesToExtent(lanes LaneSet) (minY, maxY float64, ceiled bool) {
	lowest, highest := NumLanes, -1
	for lane := 0; lane < NumLanes; lane++ {
		if lanes.Contains(lane) {
			if lane < lowest {
				lowest = lane
			}
			if lane > highest {
				highest = lane
			}
		}
	}

	if lanes.Contains(0) {
		// Floor-anchored: from the bottom up through the highest blocked lane.
		return WorldHeight - LaneHeight*float64(highest+1), WorldHeight, false
	}
	// Ceiling-anchored: from the top down through the lowest blocked lane.
	return 0, WorldHeight - LaneHeight*float64(lowest), true
}

// extentToLanes marks every lane whose vertical span overlaps [minY, maxY].
func extentToLanes(minY, maxY float64) LaneSet {
	var set LaneSet
	for lane := 0; lane < NumLanes; lane++ {
		laneTop := WorldHeight - LaneHeight*float64(lane+1)
		laneBottom := WorldHeight - LaneHeight*float64(lane)
		if maxY > laneTop && minY < laneBottom {
			set.Add(lane)
		}
	}
	return set
}

// InRange returns the obstacles whose anchor X falls in [x0, x1].
// The slice aliases internal storage and must not be mutated.
func (f *Field) InRange(x0, x1 float64) []Obstacle {
	if x1 < x0 || len(f.obstacles) == 0 {
		return nil
	}
	lo := sort.Search(len(f.obstacles), func(i int) bool {
		return f.obstacles[i].X >= x0
	})
	hi := sort.Search(len(f.obstacles), func(i int) bool {
		return f.obstacles[i].X > x1
	})
	if lo >= hi {
		return nil
	}
	return f.obstacles[lo:hi]
}

// Near returns the obstacles that could overlap a player whose leading edge
// spans [left, right], accounting for obstacle width.
func (f *Field) Near(left, right float64) []Obstacle {
	return f.InRange(left-f.maxWidth, right)
}

// Count returns the number of obstacles in the field.
func (f *Field) Count() int { return len(f.obstacles) }
