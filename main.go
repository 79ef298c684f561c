//go:build js
// +build js

package main

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/voxrunner/voxrunner/audio"
	"github.com/voxrunner/voxrunner/dsp"
	"github.com/voxrunner/voxrunner/game"
	"github.com/voxrunner/voxrunner/stage"
)

// app ties the capture pipeline, the game and the JS API together.
type app struct {
	game    *game.Game
	capture *audio.Capture
	player  *audio.Player

	cfg  *stage.Config
	mode game.ControlMode
}

func (a *app) pitchRange() dsp.PitchRange {
	if a.mode == game.ModeNoteLane {
		return dsp.NotePitchRange
	}
	return dsp.DefaultPitchRange
}

// loadConfig swaps in a stage and rebuilds the engine for the current mode.
func (a *app) loadConfig(cfg *stage.Config) bool {
	if err := a.game.LoadStage(cfg, a.mode); err != nil {
		game.DebugError("stage load failed:", err.Error())
		return false
	}
	a.cfg = cfg
	a.capture.SetPitchRange(a.pitchRange())
	a.capture.Reset()
	if cfg.AudioFile != "" {
		a.player.Load(cfg.AudioFile)
	}
	return true
}

func main() {
	// Get the canvas element
	doc := js.Global.Get("document")
	canvas := doc.Call("getElementById", "c")
	if canvas == nil || canvas == js.Undefined {
		panic("canvas element not found")
	}

	a := &app{
		game:    game.NewGame(canvas),
		capture: audio.NewCapture(dsp.DefaultPitchRange),
		player:  audio.NewPlayer(),
		mode:    game.ModeFlight,
	}

	// The audio callback publishes into the engine; the first voiced signal
	// starts a pending run.
	a.capture.OnSignal = func(sig dsp.SmoothedSignal) {
		e := a.game.Engine
		if e == nil {
			return
		}
		e.PublishSignal(sig)
		if e.Run.Phase == game.NotStarted && (sig.Pitch > 0 || sig.Force > dsp.NoiseFloor) {
			if e.Start() {
				a.player.Play()
			}
		}
	}
	a.capture.OnDenied = func() {
		game.DebugWarn("microphone denied, running without voice control")
	}
	a.capture.OnStateChange = func(state string) {
		game.Debug("capture:", state)
	}
	a.player.OnError = func(msg string) {
		game.DebugWarn("song playback:", msg)
	}

	a.loadConfig(stage.Practice("warmup"))

	// JS-facing control surface.
	js.Global.Set("VoiceRunner", map[string]interface{}{
		"loadStage": func(data string) bool {
			cfg, err := stage.Parse([]byte(data))
			if err != nil {
				game.DebugError("stage parse failed:", err.Error())
				return false
			}
			return a.loadConfig(cfg)
		},
		"loadPractice": func(name string) bool {
			return a.loadConfig(stage.Practice(name))
		},
		"setMode": func(name string) bool {
			a.mode = game.ParseControlMode(name)
			return a.cfg == nil || a.loadConfig(a.cfg)
		},
		"start": func() {
			a.capture.Start()
			if e := a.game.Engine; e != nil && e.Start() {
				a.player.Play()
			}
		},
		"reset": func() bool {
			a.player.StopPlayback()
			if a.cfg == nil {
				return false
			}
			return a.loadConfig(a.cfg)
		},
		"startMic": func() { a.capture.Start() },
		"stopMic":  func() { a.capture.Stop() },
		"micActive": func() bool {
			return a.capture.Active()
		},
		"setVolume": func(v float64) { a.player.SetVolume(v) },
		"telemetry": func() map[string]interface{} {
			if a.game.Engine == nil {
				return nil
			}
			tel := a.game.Engine.Telemetry()
			return map[string]interface{}{
				"phase":    tel.Phase,
				"pitch":    tel.Pitch,
				"rawPitch": tel.RawPitch,
				"force":    tel.Force,
				"lane":     tel.Lane,
				"progress": tel.Progress,
				"elapsed":  tel.Elapsed,
			}
		},
	})

	// Release the microphone when the page goes away.
	js.Global.Call("addEventListener", "beforeunload", func() {
		a.capture.Stop()
		a.player.StopPlayback()
	})

	a.capture.Start()
	a.game.GameLoopRAF(0)

	select {}
}
