package game

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/voxrunner/voxrunner/stage"
)

// Game owns the canvas presentation of one run: the engine, the rendering
// context and the pre-rendered sprites. The world scrolls past a fixed
// camera; the runner stays at PlayerScreenX.
type Game struct {
	Engine *Engine

	Canvas *js.Object
	Ctx    *js.Object

	// Pre-rendered sprites, built once at startup.
	RunnerImage       *js.Object
	Background        *js.Object
	BackgroundPattern *js.Object

	LastFrameTime    float64
	AnimationFrameID int
	BackgroundX      float64
}

// NewGame binds a game to a canvas element and pre-renders its graphics.
func NewGame(canvas *js.Object) *Game {
	canvas.Set("width", WIDTH)
	canvas.Set("height", HEIGHT)
	g := &Game{
		Canvas: canvas,
		Ctx:    canvas.Call("getContext", "2d"),
	}
	g.InitializeGraphics()
	return g
}

// LoadStage replaces the current run with a fresh engine over a stage.
func (g *Game) LoadStage(cfg *stage.Config, mode ControlMode) error {
	engine, err := NewEngine(cfg, mode)
	if err != nil {
		return err
	}
	g.Engine = engine
	Debug("Stage loaded:", cfg.Name, "mode:", mode.String())
	return nil
}

// Stop cancels the scheduled animation frame.
func (g *Game) Stop() {
	if g.AnimationFrameID != 0 {
		js.Global.Call("cancelAnimationFrame", g.AnimationFrameID)
		g.AnimationFrameID = 0
	}
}
