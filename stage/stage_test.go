package stage

import (
	"math"
	"testing"
)

func TestParse_GeneratedShape(t *testing.T) {
	data := []byte(`{
		"name": "A praireira",
		"audioFile": "04 - A praireira.mp3",
		"duration": 216.29,
		"bpm": 129.2,
		"length": 17303,
		"forceMultiplier": 1.0,
		"pillars": [
			{ "x": 500, "blockedLanes": [0, 1], "width": 50 },
			{ "x": 980, "blockedLanes": [4, 5, 6], "width": 70 }
		],
		"metadata": { "generatedFrom": "stagegen", "tempo": 129.2 }
	}`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Length != 17303 {
		t.Errorf("Expected length 17303, got %f", cfg.Length)
	}
	if len(cfg.Pillars) != 2 {
		t.Fatalf("Expected 2 pillars, got %d", len(cfg.Pillars))
	}
	if cfg.Metadata == nil || cfg.Metadata.GeneratedFrom != "stagegen" {
		t.Error("Metadata not decoded")
	}
}

func TestParse_Failures(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"Empty input", ""},
		{"Invalid JSON", "{nope"},
		{"Zero length", `{"name":"x","length":0,"pillars":[]}`},
		{"Negative length", `{"name":"x","length":-10,"pillars":[]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestParse_DefaultsForceMultiplier(t *testing.T) {
	cfg, err := Parse([]byte(`{"name":"x","length":1000,"pillars":[]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.ForceMultiplier != 1 {
		t.Errorf("Expected default force multiplier 1, got %f", cfg.ForceMultiplier)
	}
}

func TestBuildField_BlockedLaneExtents(t *testing.T) {
	testCases := []struct {
		name        string
		lanes       []int
		expectMinY  float64
		expectMaxY  float64
		expectCeild bool
	}{
		// Lane 0 blocked: anchored to the floor, spanning up through the
		// highest blocked lane.
		{"Bottom two lanes", []int{0, 1}, WorldHeight - 2*LaneHeight, WorldHeight, false},
		{"Bottom four lanes", []int{0, 1, 2, 3}, WorldHeight - 4*LaneHeight, WorldHeight, false},
		// Lane 0 free: anchored to the ceiling, spanning down through the
		// lowest blocked lane.
		{"Top three lanes", []int{4, 5, 6}, 0, WorldHeight - 4*LaneHeight, true},
		{"Top lane only", []int{6}, 0, WorldHeight - 6*LaneHeight, true},
		{"Middle lanes", []int{3, 4}, 0, WorldHeight - 3*LaneHeight, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Length: 1000, Pillars: []PillarConfig{
				{X: 100, Width: 50, BlockedLanes: tc.lanes},
			}}
			field, err := BuildField(cfg)
			if err != nil {
				t.Fatalf("BuildField failed: %v", err)
			}
			obs := field.InRange(0, 1000)
			if len(obs) != 1 {
				t.Fatalf("Expected 1 obstacle, got %d", len(obs))
			}
			ob := obs[0]
			if math.Abs(ob.MinY-tc.expectMinY) > 0.001 || math.Abs(ob.MaxY-tc.expectMaxY) > 0.001 {
				t.Errorf("Extent: expected [%f,%f], got [%f,%f]",
					tc.expectMinY, tc.expectMaxY, ob.MinY, ob.MaxY)
			}
			if ob.Ceiled != tc.expectCeild {
				t.Errorf("Ceiled: expected %v, got %v", tc.expectCeild, ob.Ceiled)
			}
			for _, lane := range tc.lanes {
				if !ob.Lanes.Contains(lane) {
					t.Errorf("Lane %d should be blocked", lane)
				}
			}
		})
	}
}

func TestBuildField_ExplicitExtentDerivesLanes(t *testing.T) {
	minY := WorldHeight - 2*LaneHeight
	maxY := WorldHeight
	cfg := &Config{Length: 1000, Pillars: []PillarConfig{
		{X: 100, Width: 40, MinY: &minY, MaxY: &maxY},
	}}

	field, err := BuildField(cfg)
	if err != nil {
		t.Fatalf("BuildField failed: %v", err)
	}
	ob := field.InRange(0, 1000)[0]
	for lane := 0; lane < NumLanes; lane++ {
		want := lane <= 1
		if ob.Lanes.Contains(lane) != want {
			t.Errorf("Lane %d blocked=%v, want %v", lane, ob.Lanes.Contains(lane), want)
		}
	}
}

func TestBuildField_ClampsMalformedEntries(t *testing.T) {
	cfg := &Config{Length: 1000, Pillars: []PillarConfig{
		{X: -50, Width: -10, BlockedLanes: []int{-3, 99}},  // everything out of range
		{X: 200},                                           // no geometry at all
		{X: 300, Width: 50, BlockedLanes: []int{0, 1, 2}},  // fine
	}}

	field, err := BuildField(cfg)
	if err != nil {
		t.Fatalf("BuildField failed: %v", err)
	}
	// The geometry-less pillar is dropped; the malformed one is clamped.
	if field.Count() != 2 {
		t.Fatalf("Expected 2 obstacles, got %d", field.Count())
	}
	clamped := field.InRange(0, 10)
	if len(clamped) != 1 {
		t.Fatalf("Expected clamped obstacle at x=0, got %d results", len(clamped))
	}
	if clamped[0].Width <= 0 {
		t.Error("Width should be defaulted positive")
	}
	if !clamped[0].Lanes.Contains(0) || !clamped[0].Lanes.Contains(NumLanes-1) {
		t.Error("Out-of-range lanes should clamp to the nearest valid lane")
	}
}

func TestField_InRange(t *testing.T) {
	cfg := &Config{Length: 5000, Pillars: []PillarConfig{
		{X: 900, Width: 50, BlockedLanes: []int{0}},
		{X: 100, Width: 50, BlockedLanes: []int{0}},
		{X: 500, Width: 50, BlockedLanes: []int{0}},
		{X: 2500, Width: 50, BlockedLanes: []int{0}},
	}}
	field, err := BuildField(cfg)
	if err != nil {
		t.Fatalf("BuildField failed: %v", err)
	}

	testCases := []struct {
		name   string
		x0, x1 float64
		want   int
	}{
		{"All", 0, 5000, 4},
		{"Window around middle", 400, 1000, 2},
		{"Exact anchor", 500, 500, 1},
		{"Empty window", 1000, 2000, 0},
		{"Inverted window", 600, 400, 0},
		{"Before first", 0, 50, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := field.InRange(tc.x0, tc.x1)
			if len(got) != tc.want {
				t.Errorf("InRange(%.0f,%.0f): expected %d, got %d", tc.x0, tc.x1, tc.want, len(got))
			}
			for i := 1; i < len(got); i++ {
				if got[i].X < got[i-1].X {
					t.Error("Results should be sorted by X")
				}
			}
		})
	}
}

func TestLaneY_OrderingAndClamp(t *testing.T) {
	for lane := 1; lane < NumLanes; lane++ {
		if LaneY(lane) >= LaneY(lane-1) {
			t.Errorf("Lane %d should sit above lane %d on screen", lane, lane-1)
		}
	}
	if LaneY(-5) != LaneY(0) {
		t.Error("Negative lane should clamp to 0")
	}
	if LaneY(100) != LaneY(NumLanes-1) {
		t.Error("Overflow lane should clamp to top lane")
	}
}

func TestPractice_DeterministicAndPlayable(t *testing.T) {
	a := Practice("practice")
	b := Practice("practice")

	if len(a.Pillars) == 0 {
		t.Fatal("Practice stage should contain pillars")
	}
	if len(a.Pillars) != len(b.Pillars) {
		t.Fatal("Practice stage should be deterministic")
	}
	for i := range a.Pillars {
		if a.Pillars[i].X != b.Pillars[i].X {
			t.Fatalf("Pillar %d differs between identical seeds", i)
		}
	}

	prev := 0.0
	for i, p := range a.Pillars {
		if p.X-prev < practiceMinSpacing {
			t.Errorf("Pillar %d too close to previous: %f", i, p.X-prev)
		}
		prev = p.X
		if len(p.BlockedLanes) < 2 || len(p.BlockedLanes) > 4 {
			t.Errorf("Pillar %d blocks %d lanes, want 2..4", i, len(p.BlockedLanes))
		}
		// Every pillar must leave at least one open lane.
		if len(p.BlockedLanes) >= NumLanes {
			t.Errorf("Pillar %d blocks all lanes", i)
		}
	}

	if _, err := BuildField(a); err != nil {
		t.Fatalf("Practice stage should build: %v", err)
	}
}
