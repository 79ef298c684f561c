package audio

// Phase is the state of the microphone acquisition lifecycle.
//
// The browser hands out the media stream and tears down the audio context
// asynchronously, so naive start/stop sequencing can leak a context or wire
// a stream that was cancelled while the permission prompt was open. The
// lifecycle serializes those transitions: every async completion is checked
// against the phase it was issued in, and a start requested mid-teardown is
// queued instead of racing the close.
type Phase int

const (
	// Idle: no stream, no context.
	Idle Phase = iota
	// Acquiring: getUserMedia is in flight.
	Acquiring
	// Active: the capture graph is wired and producing callbacks.
	Active
	// Closing: the context close is in flight.
	Closing
)

// String returns the phase name used in state-change notifications.
func (p Phase) String() string {
	switch p {
	case Acquiring:
		return "acquiring"
	case Active:
		return "active"
	case Closing:
		return "closing"
	default:
		return "idle"
	}
}

// Lifecycle sequences acquisition and teardown. All methods report what the
// caller must do next; the lifecycle itself never touches the browser.
type Lifecycle struct {
	phase Phase

	// pendingStart queues a start that arrived while closing.
	pendingStart bool
	// cancelled marks an acquisition whose result is no longer wanted.
	cancelled bool
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase { return l.phase }

// RequestStart asks for the microphone. Returns true when the caller should
// issue getUserMedia now. A start during teardown is queued and replayed by
// Closed; a start while already acquiring or active is a no-op.
func (l *Lifecycle) RequestStart() bool {
	switch l.phase {
	case Idle:
		l.phase = Acquiring
		l.cancelled = false
		return true
	case Closing:
		l.pendingStart = true
		return false
	default:
		return false
	}
}

// Granted resolves an in-flight acquisition. Returns true when the grant is
// current and the caller should wire the capture graph; false for a stale
// grant whose tracks must be stopped and discarded.
func (l *Lifecycle) Granted() bool {
	if l.phase != Acquiring || l.cancelled {
		l.cancelled = false
		if l.phase == Acquiring {
			l.phase = Idle
		}
		return false
	}
	l.phase = Active
	return true
}

// Denied resolves an in-flight acquisition that was refused.
func (l *Lifecycle) Denied() {
	if l.phase == Acquiring {
		l.phase = Idle
		l.cancelled = false
	}
}

// RequestStop releases the microphone. Returns true when the caller should
// tear down the graph and begin the async context close. A stop while still
// acquiring cancels the pending grant instead.
func (l *Lifecycle) RequestStop() bool {
	switch l.phase {
	case Active:
		l.phase = Closing
		return true
	case Acquiring:
		l.cancelled = true
		return false
	default:
		l.pendingStart = false
		return false
	}
}

// Closed resolves the async context close. Returns true when a queued start
// should be replayed, in which case the lifecycle is already Acquiring.
func (l *Lifecycle) Closed() bool {
	if l.phase != Closing {
		return false
	}
	if l.pendingStart {
		l.pendingStart = false
		l.phase = Acquiring
		l.cancelled = false
		return true
	}
	l.phase = Idle
	return false
}
