// Package session holds the capture state machine. The machine is pure
// with respect to the OS: it consumes events one at a time on the event
// loop goroutine and acts only through the injected hook manager and
// dispatcher, so every transition is testable with synthetic events.
package session

import (
	"log"

	"snapclip/events"
	"snapclip/geometry"
	"snapclip/hook"
)

// State is the capture session state.
type State int

const (
	Idle State = iota
	Armed
	Dragging
	Completing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Armed:
		return "Armed"
	case Dragging:
		return "Dragging"
	case Completing:
		return "Completing"
	}
	return "Unknown"
}

// Hooks is the slice of hook.Manager the machine needs.
type Hooks interface {
	Start(post func(events.Event)) (hook.Handle, error)
	Stop(h hook.Handle)
}

// Dispatcher runs the deferred capture+clipboard job for a finished
// selection. done is called exactly once, off the caller's goroutine.
// Submit returns false when a job is already in flight.
type Dispatcher interface {
	Submit(r geometry.Rect, done func(error)) bool
}

// Config wires a Machine. Post receives the hook's pointer/cancel events
// and the dispatcher's completion; it must deliver them back to the
// machine on the loop goroutine without blocking the producer.
type Config struct {
	Hooks      Hooks
	Dispatcher Dispatcher
	Post       func(events.Event)
	MinWidth   int
	MinHeight  int
}

// Machine is the single process-wide capture session. It is created once
// in Idle and reset, never destroyed, after every completed or cancelled
// capture. Not safe for concurrent use; the loop goroutine owns it.
type Machine struct {
	cfg     Config
	state   State
	origin  geometry.Point
	current geometry.Point
	tracked bool
	handle  hook.Handle
}

// New returns a Machine in Idle. Zero thresholds default to 3x3.
func New(cfg Config) *Machine {
	if cfg.MinWidth <= 0 {
		cfg.MinWidth = geometry.MinSelectionPx
	}
	if cfg.MinHeight <= 0 {
		cfg.MinHeight = geometry.MinSelectionPx
	}
	return &Machine{cfg: cfg}
}

// State returns the current session state.
func (m *Machine) State() State { return m.state }

// Origin returns the drag origin and whether one is set. The origin is
// set only on the Armed->Dragging transition and cleared on every return
// to Idle.
func (m *Machine) Origin() (geometry.Point, bool) { return m.origin, m.tracked }

// Handle applies one event to the session. Unknown or out-of-state events
// are benign no-ops (a hook teardown race can deliver a stray pointer
// event after the session reset).
func (m *Machine) Handle(ev events.Event) {
	switch ev := ev.(type) {
	case events.Activate:
		m.onActivate()
	case events.PointerDown:
		m.onPointerDown(ev.At)
	case events.PointerMove:
		m.onPointerMove(ev.At)
	case events.PointerUp:
		m.onPointerUp(ev.At)
	case events.CancelKey:
		m.onCancel()
	case events.DispatchDone:
		m.onDispatchDone(ev.Err)
	default:
		log.Printf("session: ignoring unknown event %s in %s", ev.Type(), m.state)
	}
}

func (m *Machine) onActivate() {
	if m.state != Idle {
		log.Printf("session: activate ignored in %s", m.state)
		return
	}
	handle, err := m.cfg.Hooks.Start(m.cfg.Post)
	if err != nil {
		log.Printf("session: arm failed: %v", err)
		return
	}
	m.handle = handle
	m.state = Armed
	log.Printf("session: armed")
}

func (m *Machine) onPointerDown(at geometry.Point) {
	if m.state != Armed {
		return
	}
	m.origin = at
	m.current = at
	m.tracked = true
	m.state = Dragging
	log.Printf("session: drag started at (%d,%d)", at.X, at.Y)
}

func (m *Machine) onPointerMove(at geometry.Point) {
	// Bookkeeping only; moves never produce visible feedback.
	if m.state == Dragging {
		m.current = at
	}
}

func (m *Machine) onPointerUp(at geometry.Point) {
	if m.state != Dragging {
		return
	}
	// Release interception before any geometry or capture work so a fault
	// past this point cannot leave the system hooked.
	m.stopHook()
	origin := m.origin
	m.state = Completing

	rect := geometry.Normalize(origin, at)
	if rect.TooSmall(m.cfg.MinWidth, m.cfg.MinHeight) {
		log.Printf("session: selection %dx%d below %dx%d minimum, discarded",
			rect.Width(), rect.Height(), m.cfg.MinWidth, m.cfg.MinHeight)
		m.reset()
		return
	}
	submitted := m.cfg.Dispatcher.Submit(rect, func(err error) {
		m.cfg.Post(events.DispatchDone{Err: err})
	})
	if !submitted {
		log.Printf("session: dispatcher busy, selection discarded")
		m.reset()
		return
	}
	log.Printf("session: dispatched capture left=%d top=%d width=%d height=%d",
		rect.Left, rect.Top, rect.Width(), rect.Height())
}

func (m *Machine) onCancel() {
	if m.state != Armed && m.state != Dragging {
		return
	}
	m.stopHook()
	log.Printf("session: cancelled in %s", m.state)
	m.reset()
}

func (m *Machine) onDispatchDone(err error) {
	if m.state != Completing {
		return
	}
	if err != nil {
		log.Printf("session: capture failed: %v", err)
	} else {
		log.Printf("session: capture copied to clipboard")
	}
	m.reset()
}

func (m *Machine) stopHook() {
	m.cfg.Hooks.Stop(m.handle)
	m.handle = hook.Handle{}
}

func (m *Machine) reset() {
	m.state = Idle
	m.origin = geometry.Point{}
	m.current = geometry.Point{}
	m.tracked = false
	m.handle = hook.Handle{}
}
