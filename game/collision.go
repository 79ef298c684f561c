package game

import "github.com/voxrunner/voxrunner/stage"

// collides tests the player against one obstacle.
// Lane modes use lane membership: horizontal overlap plus the player's lane
// being blocked. Flight mode uses the full pixel AABB of the player body
// against the obstacle's vertical extent.
func collides(p PlayerState, ob stage.Obstacle, mode ControlMode) bool {
	left, right, top, bottom := p.Bounds()

	// Horizontal interval overlap is required in every mode.
	if right <= ob.X || left >= ob.X+ob.Width {
		return false
	}

	switch mode {
	case ModeForceLane, ModeNoteLane:
		return ob.Lanes.Contains(p.Lane)
	default:
		return bottom > ob.MinY && top < ob.MaxY
	}
}

// findCollision scans the obstacles near the player and reports the first
// hit. The window is bounded by the field's widest obstacle, so the check
// never scans the whole stage.
func findCollision(p PlayerState, field *stage.Field, mode ControlMode) bool {
	left, right, _, _ := p.Bounds()
	for _, ob := range field.Near(left, right) {
		if collides(p, ob, mode) {
			return true
		}
	}
	return false
}
