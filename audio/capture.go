package audio

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/voxrunner/voxrunner/dsp"
)

// FrameSize is the ScriptProcessorNode buffer length. At 44.1 kHz one frame
// is ~93 ms, enough for two periods of the lowest valid pitch.
const FrameSize = 4096

// Capture owns the microphone capture graph: media stream, audio context,
// processor node and the DSP chain that turns raw frames into the smoothed
// control signal.
type Capture struct {
	lifecycle Lifecycle

	ctx       *js.Object
	stream    *js.Object
	source    *js.Object
	processor *js.Object

	estimator *dsp.Estimator
	smoother  *dsp.Smoother
	frame     []float64

	// OnSignal receives the smoothed control signal once per audio callback.
	OnSignal func(dsp.SmoothedSignal)
	// OnDenied fires when the user refuses the microphone. The game keeps
	// running on the zero signal.
	OnDenied func()
	// OnStateChange receives lifecycle phase names for the HUD.
	OnStateChange func(string)
}

// NewCapture builds a capture pipeline gating pitch to the given range.
func NewCapture(valid dsp.PitchRange) *Capture {
	return &Capture{
		smoother: dsp.NewSmoother(valid),
	}
}

// SetPitchRange swaps the validity band, e.g. when switching to note
// control. Takes effect on the next callback.
func (c *Capture) SetPitchRange(valid dsp.PitchRange) {
	c.smoother.ValidRange = valid
}

// Reset clears the smoothed state for a fresh run.
func (c *Capture) Reset() {
	c.smoother.Reset()
	c.publish()
}

// Start requests the microphone and wires the capture graph once granted.
// Safe to call repeatedly; a start during teardown is queued.
func (c *Capture) Start() {
	if !c.lifecycle.RequestStart() {
		return
	}
	c.notify()
	c.acquire()
}

func (c *Capture) acquire() {
	mediaDevices := js.Global.Get("navigator").Get("mediaDevices")
	ctor := audioContextCtor()
	if mediaDevices == nil || mediaDevices == js.Undefined || ctor == nil {
		// No getUserMedia or no Web Audio: degrade without prompting.
		c.lifecycle.Denied()
		c.notify()
		c.deny()
		return
	}

	constraints := js.M{"audio": js.M{
		"echoCancellation": false,
		"noiseSuppression": false,
		"autoGainControl":  false,
	}}
	promise := mediaDevices.Call("getUserMedia", constraints)
	promise.Call("then", func(stream *js.Object) {
		if !c.lifecycle.Granted() {
			stopTracks(stream)
			c.notify()
			return
		}
		c.wire(stream, ctor)
		c.notify()
	}).Call("catch", func(err *js.Object) {
		c.lifecycle.Denied()
		c.notify()
		c.deny()
	})
}

// wire builds the WebAudio graph: stream -> source -> processor -> (muted)
// destination. The processor must reach the destination or some engines
// never fire the callback.
func (c *Capture) wire(stream, ctor *js.Object) {
	c.stream = stream
	c.ctx = ctor.New()
	c.estimator = dsp.NewEstimator(c.ctx.Get("sampleRate").Float())
	c.frame = make([]float64, FrameSize)

	c.source = c.ctx.Call("createMediaStreamSource", stream)
	c.processor = c.ctx.Call("createScriptProcessor", FrameSize, 1, 1)
	c.processor.Set("onaudioprocess", c.onAudioProcess)

	silent := c.ctx.Call("createGain")
	silent.Get("gain").Set("value", 0)

	c.source.Call("connect", c.processor)
	c.processor.Call("connect", silent)
	silent.Call("connect", c.ctx.Get("destination"))
}

// onAudioProcess is the per-frame DSP hook: copy the input channel, run the
// estimator and smoother, publish the signal.
func (c *Capture) onAudioProcess(event *js.Object) {
	input := event.Get("inputBuffer").Call("getChannelData", 0)
	n := input.Get("length").Int()
	if n > len(c.frame) {
		n = len(c.frame)
	}
	for i := 0; i < n; i++ {
		c.frame[i] = input.Index(i).Float()
	}

	// Invalid frames (empty or non-finite) carry no information; skipping
	// the smoother keeps the prior state instead of decaying toward zero.
	if est := c.estimator.Estimate(c.frame[:n]); est.Valid {
		c.smoother.Update(est)
	}
	c.publish()
}

// Stop tears down the graph and closes the context. The close is async; a
// Start issued before it resolves is queued by the lifecycle.
func (c *Capture) Stop() {
	if !c.lifecycle.RequestStop() {
		c.notify()
		return
	}
	c.notify()

	if c.processor != nil {
		c.processor.Set("onaudioprocess", nil)
		c.processor.Call("disconnect")
		c.processor = nil
	}
	if c.source != nil {
		c.source.Call("disconnect")
		c.source = nil
	}
	if c.stream != nil {
		stopTracks(c.stream)
		c.stream = nil
	}
	c.smoother.Reset()
	c.publish()

	ctx := c.ctx
	c.ctx = nil
	if ctx == nil {
		c.closed()
		return
	}
	ctx.Call("close").Call("then", func() {
		c.closed()
	}).Call("catch", func(err *js.Object) {
		// A context that refuses to close is already unusable; treat it
		// as closed so a queued start can proceed on a fresh one.
		c.closed()
	})
}

func (c *Capture) closed() {
	if c.lifecycle.Closed() {
		c.notify()
		c.acquire()
		return
	}
	c.notify()
}

// Active reports whether the capture graph is producing callbacks.
func (c *Capture) Active() bool {
	return c.lifecycle.Phase() == Active
}

func (c *Capture) publish() {
	if c.OnSignal != nil {
		c.OnSignal(c.smoother.Signal())
	}
}

func (c *Capture) deny() {
	// Degrade to the zero signal: the run keeps ticking, the player just
	// has no control input.
	c.smoother.Reset()
	c.publish()
	if c.OnDenied != nil {
		c.OnDenied()
	}
}

func (c *Capture) notify() {
	if c.OnStateChange != nil {
		c.OnStateChange(c.lifecycle.Phase().String())
	}
}

// audioContextCtor returns the host's AudioContext constructor, falling back
// to the webkit-prefixed name, or nil when the host has no Web Audio.
func audioContextCtor() *js.Object {
	ctor := js.Global.Get("AudioContext")
	if ctor == nil || ctor == js.Undefined {
		ctor = js.Global.Get("webkitAudioContext")
	}
	if ctor == nil || ctor == js.Undefined {
		return nil
	}
	return ctor
}

func stopTracks(stream *js.Object) {
	tracks := stream.Call("getTracks")
	for i := 0; i < tracks.Get("length").Int(); i++ {
		tracks.Index(i).Call("stop")
	}
}
