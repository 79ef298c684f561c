package game

import "github.com/voxrunner/voxrunner/stage"

// PlayerState is the complete kinematic state of the runner. It is owned
// exclusively by one Engine for one run and advanced only by the tick.
// X is world position and never decreases.
type PlayerState struct {
	X           float64
	Y           float64
	VelY        float64
	Lane        int
	VolumeBoost float64
}

// NewPlayerState positions a fresh player at the start of the track,
// centered on the middle lane.
func NewPlayerState() PlayerState {
	lane := stage.NumLanes / 2
	return PlayerState{
		Y:    stage.LaneY(lane),
		Lane: lane,
	}
}

// Bounds returns the player's world-space AABB.
func (p PlayerState) Bounds() (left, right, top, bottom float64) {
	return p.X, p.X + PlayerWidth, p.Y - PlayerHeight/2, p.Y + PlayerHeight/2
}

// stepFlight advances one tick of continuous-flight kinematics.
// Gravity integrates vertical velocity unless the command sets an absolute
// upward velocity, which replaces the integrated value for this tick.
// Horizontal advance accumulates (baseSpeed + boost) * dt, so forward
// progress is purely a function of accumulated time and speed and is robust
// to variable frame timing.
func stepFlight(p PlayerState, cmd MotionCommand, dt float64) PlayerState {
	if cmd.SetVelY {
		p.VelY = cmd.VelY
	} else {
		p.VelY += Gravity * dt
	}
	if p.VelY < -MaxUpwardVelocity {
		p.VelY = -MaxUpwardVelocity
	}
	if p.VelY > MaxFallVelocity {
		p.VelY = MaxFallVelocity
	}

	p.Y += p.VelY * dt
	top := PlayerHeight / 2
	bottom := stage.WorldHeight - PlayerHeight/2
	if p.Y < top {
		p.Y = top
		p.VelY = 0
	}
	if p.Y > bottom {
		p.Y = bottom
		p.VelY = 0
	}

	p.VolumeBoost = cmd.Boost
	p.X += (BaseSpeed + p.VolumeBoost) * dt
	p.Lane = laneForY(p.Y)
	return p
}

// stepLane advances one tick of lane-based kinematics. The commanded lane
// becomes current immediately for collision purposes; the drawn Y eases
// toward the lane's position with a single-pole filter, which cannot
// overshoot since the smoothing factor is below one. Horizontal advance is
// delta accumulated exactly like flight mode, so pause/resume and irregular
// frame delivery cannot desynchronize position from elapsed play time.
func stepLane(p PlayerState, cmd MotionCommand, dt float64) PlayerState {
	if cmd.HasLane {
		p.Lane = stage.ClampLane(cmd.TargetLane)
	}
	target := stage.LaneY(p.Lane)
	p.Y += (target - p.Y) * LaneSmoothing
	p.VelY = 0

	p.VolumeBoost = 0
	p.X += BaseSpeed * dt
	return p
}

// laneForY maps a vertical position to the lane containing it, for
// telemetry and lane-membership collision in flight mode.
func laneForY(y float64) int {
	lane := int((stage.WorldHeight - y) / stage.LaneHeight)
	return stage.ClampLane(lane)
}
