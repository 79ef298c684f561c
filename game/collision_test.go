package game

import (
	"testing"

	"github.com/voxrunner/voxrunner/stage"
)

func buildTestField(t *testing.T, pillars ...stage.PillarConfig) *stage.Field {
	t.Helper()
	field, err := stage.BuildField(testStage(10000, pillars...))
	if err != nil {
		t.Fatal(err)
	}
	return field
}

func TestLaneCollision(t *testing.T) {
	field := buildTestField(t, stage.PillarConfig{
		X: 500, Width: 50, BlockedLanes: []int{0, 1},
	})

	cases := []struct {
		name string
		x    float64
		lane int
		want bool
	}{
		{"before pillar", 100, 0, false},
		{"inside pillar, blocked lane", 480, 0, true},
		{"inside pillar, blocked lane 1", 510, 1, true},
		{"inside pillar, clear lane", 510, 3, false},
		{"right edge touching", 500 - PlayerWidth, 0, false},
		{"just overlapping", 500 - PlayerWidth + 1, 0, true},
		{"past pillar", 560, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := PlayerState{X: c.x, Lane: c.lane, Y: stage.LaneY(c.lane)}
			if got := findCollision(p, field, ModeForceLane); got != c.want {
				t.Errorf("findCollision(x=%v lane=%d) = %v, want %v", c.x, c.lane, got, c.want)
			}
		})
	}
}

func TestFlightCollisionUsesExtent(t *testing.T) {
	// Floor pillar covering the bottom two lanes: extent
	// [WorldHeight - 2*LaneHeight, WorldHeight].
	field := buildTestField(t, stage.PillarConfig{
		X: 500, Width: 50, BlockedLanes: []int{0, 1},
	})
	pillarTop := stage.WorldHeight - 2*stage.LaneHeight

	cases := []struct {
		name string
		y    float64
		want bool
	}{
		{"flying above pillar", pillarTop - PlayerHeight, false},
		{"body grazing pillar top", pillarTop - PlayerHeight/2 + 1, true},
		{"inside pillar", stage.WorldHeight - stage.LaneHeight, true},
		{"well above", 100, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := PlayerState{X: 510, Y: c.y, Lane: laneForY(c.y)}
			if got := findCollision(p, field, ModeFlight); got != c.want {
				t.Errorf("flight collision at y=%v = %v, want %v", c.y, got, c.want)
			}
		})
	}
}

func TestFlightCollisionCeilingPillar(t *testing.T) {
	// Ceiling pillar over the top three lanes: extent
	// [0, WorldHeight - 4*LaneHeight].
	field := buildTestField(t, stage.PillarConfig{
		X: 300, Width: 60, BlockedLanes: []int{4, 5, 6},
	})
	pillarBottom := stage.WorldHeight - 4*stage.LaneHeight

	p := PlayerState{X: 310, Y: pillarBottom + PlayerHeight, Lane: laneForY(pillarBottom + PlayerHeight)}
	if findCollision(p, field, ModeFlight) {
		t.Error("player below ceiling pillar reported as hit")
	}
	p.Y = pillarBottom - 1
	p.Lane = laneForY(p.Y)
	if !findCollision(p, field, ModeFlight) {
		t.Error("player inside ceiling pillar not hit")
	}
}

func TestExplicitExtentCollision(t *testing.T) {
	minY, maxY := 200.0, 400.0
	field := buildTestField(t, stage.PillarConfig{
		X: 700, Width: 40, MinY: &minY, MaxY: &maxY,
	})

	p := PlayerState{X: 700, Y: 300}
	p.Lane = laneForY(p.Y)
	if !findCollision(p, field, ModeFlight) {
		t.Error("player inside explicit extent not hit")
	}
	p.Y = 100
	if findCollision(p, field, ModeFlight) {
		t.Error("player above explicit extent reported as hit")
	}
}

func TestNearWindowCoversWideObstacles(t *testing.T) {
	// A very wide pillar whose anchor X is far behind the player. The
	// query window must still find it through the max-width margin.
	field := buildTestField(t, stage.PillarConfig{
		X: 100, Width: 800, BlockedLanes: []int{3},
	})
	p := PlayerState{X: 850, Lane: 3, Y: stage.LaneY(3)}
	if !findCollision(p, field, ModeForceLane) {
		t.Error("wide obstacle missed by the query window")
	}
}

func TestEmptyFieldNeverCollides(t *testing.T) {
	field := buildTestField(t)
	for x := 0.0; x < 5000; x += 100 {
		p := PlayerState{X: x, Lane: 0, Y: stage.LaneY(0)}
		if findCollision(p, field, ModeForceLane) {
			t.Fatalf("empty field collided at x=%v", x)
		}
	}
}
