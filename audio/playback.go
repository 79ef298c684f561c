package audio

import "github.com/gopherjs/gopherjs/js"

// Player streams a stage's backing track through its own audio context,
// kept separate from the capture context so teardown of one never silences
// the other.
type Player struct {
	ctx    *js.Object
	gain   *js.Object
	buffer *js.Object
	source *js.Object

	// OnLoaded fires once the track is decoded and ready to start.
	OnLoaded func()
	// OnError fires when fetching or decoding fails. Playback is optional;
	// the run proceeds without music.
	OnError func(string)
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{}
}

// Load fetches and decodes an audio file.
func (p *Player) Load(url string) {
	if p.ctx == nil {
		audioCtx := js.Global.Get("AudioContext")
		if audioCtx == nil || audioCtx == js.Undefined {
			audioCtx = js.Global.Get("webkitAudioContext")
		}
		if audioCtx == nil || audioCtx == js.Undefined {
			p.fail("web audio unavailable")
			return
		}
		p.ctx = audioCtx.New()
		p.gain = p.ctx.Call("createGain")
		p.gain.Call("connect", p.ctx.Get("destination"))
	}

	js.Global.Call("fetch", url).Call("then", func(response *js.Object) {
		if !response.Get("ok").Bool() {
			p.fail("fetch failed: " + response.Get("status").String())
			return
		}
		response.Call("arrayBuffer").Call("then", func(data *js.Object) {
			p.ctx.Call("decodeAudioData", data).Call("then", func(buffer *js.Object) {
				p.buffer = buffer
				if p.OnLoaded != nil {
					p.OnLoaded()
				}
			}).Call("catch", func(err *js.Object) {
				p.fail("decode failed")
			})
		})
	}).Call("catch", func(err *js.Object) {
		p.fail("fetch failed")
	})
}

// Play starts the loaded track from the beginning.
func (p *Player) Play() {
	if p.buffer == nil || p.ctx == nil {
		return
	}
	p.StopPlayback()
	if p.ctx.Get("state").String() == "suspended" {
		p.ctx.Call("resume")
	}
	p.source = p.ctx.Call("createBufferSource")
	p.source.Set("buffer", p.buffer)
	p.source.Call("connect", p.gain)
	p.source.Call("start", 0)
}

// StopPlayback stops the current track without releasing the context, so
// the next Play starts instantly.
func (p *Player) StopPlayback() {
	if p.source != nil {
		p.source.Call("stop")
		p.source.Call("disconnect")
		p.source = nil
	}
}

// SetVolume sets playback gain in [0, 1].
func (p *Player) SetVolume(v float64) {
	if p.gain != nil {
		p.gain.Get("gain").Set("value", v)
	}
}

func (p *Player) fail(msg string) {
	if p.OnError != nil {
		p.OnError(msg)
	}
}
