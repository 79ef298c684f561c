package game

import "github.com/voxrunner/voxrunner/stage"

// Viewport constants. The world scrolls horizontally past a fixed camera;
// vertical geometry matches the stage lane grid.
const (
	WIDTH  = 800
	HEIGHT = int(stage.WorldHeight)

	// FrameDuration caps the simulation rate (~60 FPS).
	FrameDuration = 16.0

	// MaxTickDelta bounds one simulation step so a background tab does not
	// teleport the player through obstacles on resume.
	MaxTickDelta = 0.1
)

// Player geometry.
const (
	// PlayerWidth / PlayerHeight are the sprite body extents used for
	// pixel-AABB collision.
	PlayerWidth  = 48.0
	PlayerHeight = 40.0

	// PlayerScreenX is where the player is drawn; the world moves, the
	// player does not.
	PlayerScreenX = 160.0
)

// Flight-mode physics.
const (
	// Gravity is the constant downward acceleration in px/s^2.
	Gravity = 1500.0

	// MaxUpwardVelocity is the full-pitch climb rate in px/s.
	MaxUpwardVelocity = 420.0

	// MaxFallVelocity clamps gravity integration in px/s.
	MaxFallVelocity = 640.0

	// BaseSpeed is the forward scroll in px/s with no volume boost.
	BaseSpeed = 80.0

	// MaxBoost is the additional forward speed at full loudness in px/s.
	MaxBoost = 160.0
)

// Lane-mode motion.
const (
	// LaneSmoothing is the single-pole easing factor toward the target
	// lane's Y per tick. Below 1, so the easing never overshoots.
	LaneSmoothing = 0.18
)

// laneForceThresholds is the monotonic force threshold table for
// force-to-lane control: lane i is selected when
// T[i]*mult <= force < T[i+1]*mult, with an implicit +Inf upper bound on
// the last lane (see control.go).
var laneForceThresholds = [stage.NumLanes]float64{
	0, 0.015, 0.04, 0.075, 0.12, 0.18, 0.26,
}
