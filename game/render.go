package game

import (
	"math"
	"strconv"

	"github.com/gopherjs/gopherjs/js"

	"github.com/voxrunner/voxrunner/stage"
)

// RenderToCanvas creates an off-screen canvas and renders to it.
func RenderToCanvas(width, height int, renderFn func(canvas, ctx *js.Object)) *js.Object {
	document := js.Global.Get("document")
	canvas := document.Call("createElement", "canvas")
	canvas.Set("width", width)
	canvas.Set("height", height)
	ctx := canvas.Call("getContext", "2d")
	renderFn(canvas, ctx)
	return canvas
}

// InitializeGraphics renders all static game graphics.
func (g *Game) InitializeGraphics() {
	// Background tile
	g.Background = RenderToCanvas(256, 256, func(canvas, ctx *js.Object) {
		ctx.Set("fillStyle", Theme.BackgroundColor)
		ctx.Call("fillRect", 0, 0, canvas.Get("width").Int(), canvas.Get("height").Int())
		ctx.Set("globalCompositeOperation", "lighter")

		ctx.Call("beginPath")
		w := canvas.Get("width").Float()
		h := canvas.Get("height").Float()
		for i := 5; i >= 0; i-- {
			fi := float64(i)
			ctx.Call("moveTo", w*(fi+1)/4, -h)
			ctx.Call("lineTo", w*(fi-2)/4, h*2)
		}
		ctx.Set("lineWidth", 3)
		ctx.Set("shadowBlur", Theme.DefaultShadowBlur)
		ctx.Set("strokeStyle", Theme.BackgroundLineColor)
		ctx.Set("shadowColor", Theme.BackgroundGlow)
		ctx.Call("stroke")
	})

	// Create repeating pattern from background tile
	g.BackgroundPattern = g.Ctx.Call("createPattern", g.Background, "repeat")

	// Runner sprite: a winged diamond with a white heart, drawn once.
	g.RunnerImage = RenderToCanvas(int(PlayerWidth), int(PlayerHeight), func(canvas, ctx *js.Object) {
		w := canvas.Get("width").Float()
		h := canvas.Get("height").Float()

		ctx.Call("beginPath")
		for i := 3; i >= 0; i-- {
			fi := float64(i)
			ctx.Call("moveTo", w*(1+fi)/10, h/2)
			ctx.Call("lineTo", w*(15-fi)/16, h*(2+fi)/16)
			ctx.Call("lineTo", w*(15-fi)/16, h*(14-fi)/16)
			ctx.Call("closePath")
		}
		lineWidth := Theme.RunnerLineWidth
		ctx.Set("lineWidth", lineWidth)
		ctx.Set("shadowBlur", Theme.RunnerShadowBlur)
		ctx.Set("strokeStyle", Theme.RunnerColor)
		ctx.Set("shadowColor", Theme.RunnerGlow)
		ctx.Call("stroke")
		ctx.Call("stroke")

		// Center diamond
		p := h / 6
		ctx.Call("beginPath")
		ctx.Call("moveTo", w/2-p, h/2)
		ctx.Call("lineTo", w/2, h/2+p)
		ctx.Call("lineTo", w/2+p, h/2)
		ctx.Call("lineTo", w/2, h/2-p)
		ctx.Call("closePath")
		ctx.Set("strokeStyle", Theme.RunnerCenterColor)
		ctx.Set("shadowColor", Theme.RunnerCenterColor)
		ctx.Call("stroke")
		ctx.Call("stroke")
	})

	Debug("Graphics ready...")
}

// cameraX is the world coordinate at the left edge of the screen.
func (g *Game) cameraX() float64 {
	return g.Engine.Player.X - PlayerScreenX
}

// RenderBackground renders the scrolling background.
func (g *Game) RenderBackground() {
	g.Ctx.Call("save")
	bgWidth := g.Background.Get("width").Float()
	g.Ctx.Call("translate", -math.Mod(g.cameraX(), bgWidth), 0)
	g.Ctx.Set("fillStyle", g.BackgroundPattern)
	g.Ctx.Call("fillRect", -bgWidth, 0, WIDTH+bgWidth*2, HEIGHT)
	g.Ctx.Call("restore")
}

// RenderLanes draws the horizontal lane separators.
func (g *Game) RenderLanes() {
	g.Ctx.Call("beginPath")
	for lane := 1; lane < stage.NumLanes; lane++ {
		y := stage.WorldHeight - stage.LaneHeight*float64(lane)
		g.Ctx.Call("moveTo", 0, y)
		g.Ctx.Call("lineTo", WIDTH, y)
	}
	g.Ctx.Set("lineWidth", Theme.LaneLineWidth)
	g.Ctx.Set("shadowBlur", 0)
	g.Ctx.Set("strokeStyle", Theme.LaneLineColor)
	g.Ctx.Call("stroke")
}

// RenderPillars draws the obstacles in the camera window. The range query
// keeps this proportional to what is on screen, not to the stage size.
func (g *Game) RenderPillars() {
	camera := g.cameraX()
	g.Ctx.Set("lineWidth", Theme.PillarLineWidth)
	g.Ctx.Set("shadowBlur", Theme.PillarShadowBlur)
	g.Ctx.Set("strokeStyle", Theme.PillarColor)
	g.Ctx.Set("shadowColor", Theme.PillarGlow)

	for _, ob := range g.Engine.Field.Near(camera, camera+WIDTH) {
		x := ob.X - camera
		g.Ctx.Call("strokeRect", x, ob.MinY, ob.Width, ob.MaxY-ob.MinY)

		// Hazard cross on the face of the pillar.
		g.Ctx.Call("beginPath")
		g.Ctx.Call("moveTo", x, ob.MinY)
		g.Ctx.Call("lineTo", x+ob.Width, ob.MaxY)
		g.Ctx.Call("moveTo", x+ob.Width, ob.MinY)
		g.Ctx.Call("lineTo", x, ob.MaxY)
		g.Ctx.Set("strokeStyle", Theme.PillarLineColor)
		g.Ctx.Set("lineWidth", 1)
		g.Ctx.Call("stroke")
		g.Ctx.Set("strokeStyle", Theme.PillarColor)
		g.Ctx.Set("lineWidth", Theme.PillarLineWidth)
	}
}

// RenderFinish draws the finish gate once it scrolls into view.
func (g *Game) RenderFinish() {
	x := g.Engine.Field.Length - g.cameraX()
	if x < 0 || x > WIDTH {
		return
	}
	g.Ctx.Call("beginPath")
	g.Ctx.Call("moveTo", x, 0)
	g.Ctx.Call("lineTo", x, HEIGHT)
	g.Ctx.Set("lineWidth", 4)
	g.Ctx.Set("shadowBlur", Theme.DefaultShadowBlur)
	g.Ctx.Set("strokeStyle", Theme.FinishColor)
	g.Ctx.Set("shadowColor", Theme.FinishGlow)
	g.Ctx.Call("stroke")
}

// RenderRunner draws the player sprite at the fixed screen column.
func (g *Game) RenderRunner() {
	y := g.Engine.Player.Y - PlayerHeight/2
	g.Ctx.Call("drawImage", g.RunnerImage, PlayerScreenX, y)
}

// RenderHUD draws the pitch/force meters and the progress readout.
func (g *Game) RenderHUD() {
	tel := g.Engine.Telemetry()

	// Meters along the left edge.
	g.renderMeter(8, meterFill(tel.Pitch, 100, 600), Theme.PitchMeterColor)
	g.renderMeter(20, meterFill(tel.Force, 0, 0.3), Theme.ForceMeterColor)

	g.Ctx.Set("shadowBlur", Theme.DefaultShadowBlur)
	g.Ctx.Set("font", "bold 14px "+Theme.HUDFont)
	g.Ctx.Set("textAlign", "right")
	g.Ctx.Set("textBaseline", "top")
	g.Ctx.Set("fillStyle", Theme.HUDTextColor)
	g.Ctx.Set("shadowColor", Theme.HUDGlow)
	g.Ctx.Call("fillText",
		strconv.FormatFloat(tel.Progress, 'f', 1, 64)+"%", WIDTH-8, 8)
	g.Ctx.Call("fillText",
		strconv.FormatFloat(tel.Elapsed, 'f', 1, 64)+"s", WIDTH-8, 26)
	if tel.Pitch > 0 {
		g.Ctx.Call("fillText",
			strconv.FormatFloat(tel.Pitch, 'f', 0, 64)+"Hz", WIDTH-8, 44)
	}
}

// renderMeter draws one horizontal HUD bar.
func (g *Game) renderMeter(y, fill float64, color string) {
	const width = 120.0
	g.Ctx.Set("shadowBlur", 0)
	g.Ctx.Set("fillStyle", Theme.MeterBackground)
	g.Ctx.Call("fillRect", 8, y, width, 8)
	g.Ctx.Set("fillStyle", color)
	g.Ctx.Call("fillRect", 8, y, width*fill, 8)
	g.Ctx.Set("lineWidth", Theme.MeterLineWidth)
	g.Ctx.Set("strokeStyle", Theme.MeterBorder)
	g.Ctx.Call("strokeRect", 8, y, width, 8)
}

// meterFill normalizes a value into [0, 1] for a HUD bar.
func meterFill(v, lo, hi float64) float64 {
	if hi <= lo || v <= lo {
		return 0
	}
	fill := (v - lo) / (hi - lo)
	if fill > 1 {
		return 1
	}
	return fill
}

// RenderOverlay draws a centered status banner.
func (g *Game) RenderOverlay(text string) {
	g.Ctx.Set("shadowBlur", float64(HEIGHT)/40)
	g.Ctx.Set("font", "bold 48px "+Theme.TextFont)
	g.Ctx.Set("textAlign", "center")
	g.Ctx.Set("textBaseline", "middle")

	g.Ctx.Set("fillStyle", Theme.TextPrimaryColor)
	g.Ctx.Set("shadowColor", Theme.TextGlow)
	g.Ctx.Call("fillText", text, WIDTH/2, HEIGHT/2)
	g.Ctx.Call("fillText", text, WIDTH/2, HEIGHT/2)

	g.Ctx.Set("fillStyle", Theme.TextSecondaryColor)
	g.Ctx.Set("shadowBlur", 2)
	g.Ctx.Call("strokeText", text, WIDTH/2, HEIGHT/2)
}
