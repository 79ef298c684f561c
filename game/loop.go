package game

import (
	"github.com/gopherjs/gopherjs/js"
)

// GameLoopRAF is the main game loop using requestAnimationFrame.
func (g *Game) GameLoopRAF(currentTime float64) {
	// Schedule next frame
	g.AnimationFrameID = js.Global.Call("requestAnimationFrame", g.GameLoopRAF).Int()

	// Fixed timestep
	if currentTime-g.LastFrameTime < FrameDuration {
		return
	}

	dt := (currentTime - g.LastFrameTime) / 1000
	g.LastFrameTime = currentTime

	Debug("Frame time:", currentTime, "Delta:", dt)

	g.GameLoop(dt)
}

// GameLoop runs one simulation tick and redraws the frame.
func (g *Game) GameLoop(dt float64) {
	if g.Engine == nil {
		return
	}

	g.Engine.Tick(dt)

	g.RenderBackground()
	g.RenderLanes()
	g.RenderPillars()
	g.RenderFinish()
	g.RenderRunner()
	g.RenderHUD()

	switch g.Engine.Run.Phase {
	case NotStarted:
		g.RenderOverlay("SING TO START")
	case Completed:
		g.RenderOverlay("STAGE CLEAR")
	case Failed:
		g.RenderOverlay("CRASHED")
	}
}
