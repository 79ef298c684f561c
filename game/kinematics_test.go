package game

import (
	"testing"

	"github.com/voxrunner/voxrunner/stage"
)

func TestNewPlayerState(t *testing.T) {
	p := NewPlayerState()
	if p.Lane != stage.NumLanes/2 {
		t.Errorf("start lane = %d, want middle lane %d", p.Lane, stage.NumLanes/2)
	}
	if p.Y != stage.LaneY(p.Lane) {
		t.Errorf("start Y = %v, want lane center %v", p.Y, stage.LaneY(p.Lane))
	}
	if p.X != 0 || p.VelY != 0 {
		t.Errorf("start motion not at rest: %+v", p)
	}
}

func TestFlightGravity(t *testing.T) {
	p := NewPlayerState()
	const dt = 0.016

	// With no command, gravity accelerates the fall.
	next := stepFlight(p, MotionCommand{}, dt)
	if !floatNear(next.VelY, Gravity*dt, 1e-9) {
		t.Errorf("VelY after one tick = %v, want %v", next.VelY, Gravity*dt)
	}
	if next.Y <= p.Y {
		t.Errorf("player did not fall: Y %v -> %v", p.Y, next.Y)
	}

	// Long free fall clamps at terminal velocity.
	for i := 0; i < 100; i++ {
		next = stepFlight(next, MotionCommand{}, dt)
	}
	if next.VelY > MaxFallVelocity {
		t.Errorf("fall velocity %v exceeds clamp %v", next.VelY, MaxFallVelocity)
	}
}

func TestFlightVelocityReplacesNotAdds(t *testing.T) {
	p := NewPlayerState()
	p.VelY = MaxFallVelocity // falling fast

	cmd := MotionCommand{SetVelY: true, VelY: -200}
	next := stepFlight(p, cmd, 0.016)
	if !floatNear(next.VelY, -200, 1e-9) {
		t.Errorf("VelY = %v, want exactly -200 regardless of prior fall", next.VelY)
	}
}

func TestFlightClampsToWorld(t *testing.T) {
	top := PlayerHeight / 2
	bottom := stage.WorldHeight - PlayerHeight/2

	p := NewPlayerState()
	climb := MotionCommand{SetVelY: true, VelY: -MaxUpwardVelocity}
	for i := 0; i < 500; i++ {
		p = stepFlight(p, climb, 0.016)
	}
	if p.Y != top {
		t.Errorf("Y at ceiling = %v, want %v", p.Y, top)
	}
	if p.VelY != 0 {
		t.Errorf("velocity at ceiling = %v, want 0", p.VelY)
	}

	for i := 0; i < 500; i++ {
		p = stepFlight(p, MotionCommand{}, 0.016)
	}
	if p.Y != bottom {
		t.Errorf("Y at floor = %v, want %v", p.Y, bottom)
	}
}

// Forward progress is the accumulated (base + boost) * dt, independent of
// how the same total time is sliced into ticks.
func TestFlightHorizontalAccumulation(t *testing.T) {
	cmd := MotionCommand{Boost: 40}

	coarse := NewPlayerState()
	for i := 0; i < 10; i++ {
		coarse = stepFlight(coarse, cmd, 0.1)
	}
	fine := NewPlayerState()
	for i := 0; i < 1000; i++ {
		fine = stepFlight(fine, cmd, 0.001)
	}

	want := (BaseSpeed + 40) * 1.0
	if !floatNear(coarse.X, want, 1e-6) {
		t.Errorf("coarse X = %v, want %v", coarse.X, want)
	}
	if !floatNear(fine.X, want, 1e-6) {
		t.Errorf("fine X = %v, want %v", fine.X, want)
	}
}

func TestLaneStepImmediateLaneEasedY(t *testing.T) {
	p := NewPlayerState()
	startY := p.Y
	cmd := MotionCommand{HasLane: true, TargetLane: 6}

	p = stepLane(p, cmd, 0.016)
	if p.Lane != 6 {
		t.Fatalf("lane after command = %d, want 6 immediately", p.Lane)
	}
	target := stage.LaneY(6)
	if p.Y == target {
		t.Error("Y snapped to target in one tick, want eased approach")
	}

	// The easing converges monotonically with no overshoot.
	prev := startY
	for i := 0; i < 200; i++ {
		p = stepLane(p, cmd, 0.016)
		if p.Y > prev {
			t.Fatalf("eased Y moved away from target at step %d: %v after %v", i, p.Y, prev)
		}
		if p.Y < target {
			t.Fatalf("eased Y overshot target at step %d: %v < %v", i, p.Y, target)
		}
		prev = p.Y
	}
	if !floatNear(p.Y, target, 0.5) {
		t.Errorf("Y after convergence = %v, want near %v", p.Y, target)
	}
}

func TestLaneStepHoldsWithoutCommand(t *testing.T) {
	p := NewPlayerState()
	p.Lane = 5
	next := stepLane(p, MotionCommand{}, 0.016)
	if next.Lane != 5 {
		t.Errorf("lane without command = %d, want held 5", next.Lane)
	}
	if next.X <= p.X {
		t.Errorf("no forward progress: X %v -> %v", p.X, next.X)
	}
}

func TestLaneStepClampsTarget(t *testing.T) {
	p := NewPlayerState()
	next := stepLane(p, MotionCommand{HasLane: true, TargetLane: 99}, 0.016)
	if next.Lane != stage.NumLanes-1 {
		t.Errorf("overshot lane = %d, want clamped %d", next.Lane, stage.NumLanes-1)
	}
	next = stepLane(p, MotionCommand{HasLane: true, TargetLane: -3}, 0.016)
	if next.Lane != 0 {
		t.Errorf("negative lane = %d, want clamped 0", next.Lane)
	}
}

func TestLaneForY(t *testing.T) {
	for lane := 0; lane < stage.NumLanes; lane++ {
		if got := laneForY(stage.LaneY(lane)); got != lane {
			t.Errorf("laneForY(LaneY(%d)) = %d", lane, got)
		}
	}
	if got := laneForY(-50); got != stage.NumLanes-1 {
		t.Errorf("above world -> lane %d, want top lane", got)
	}
	if got := laneForY(stage.WorldHeight + 50); got != 0 {
		t.Errorf("below world -> lane %d, want bottom lane", got)
	}
}

func TestBounds(t *testing.T) {
	p := PlayerState{X: 100, Y: 300}
	left, right, top, bottom := p.Bounds()
	if left != 100 || right != 100+PlayerWidth {
		t.Errorf("horizontal bounds [%v, %v]", left, right)
	}
	if top != 300-PlayerHeight/2 || bottom != 300+PlayerHeight/2 {
		t.Errorf("vertical bounds [%v, %v]", top, bottom)
	}
}
