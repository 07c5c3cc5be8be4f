package events

import "snapclip/geometry"

// Event is the base interface for everything the capture loop consumes:
// hotkey activations, hook-delivered pointer and key input, and
// dispatcher completions. Events are handled one at a time on the loop
// goroutine; producers must never block on delivery.
type Event interface {
	Type() string
}

// Event type constants for logging and routing
const (
	TypeActivate     = "Activate"
	TypePointerDown  = "PointerDown"
	TypePointerMove  = "PointerMove"
	TypePointerUp    = "PointerUp"
	TypeCancelKey    = "CancelKey"
	TypeDispatchDone = "DispatchDone"
)

// Activate - sent by the hotkey listener on every physical press of the chord
type Activate struct{}

func (Activate) Type() string { return TypeActivate }

// PointerDown - left button pressed at a virtual-screen position
type PointerDown struct {
	At geometry.Point
}

func (PointerDown) Type() string { return TypePointerDown }

// PointerMove - pointer moved while the hook is active
type PointerMove struct {
	At geometry.Point
}

func (PointerMove) Type() string { return TypePointerMove }

// PointerUp - left button released; ends a drag
type PointerUp struct {
	At geometry.Point
}

func (PointerUp) Type() string { return TypePointerUp }

// CancelKey - the cancel key (Esc) was pressed while the hook is active
type CancelKey struct{}

func (CancelKey) Type() string { return TypeCancelKey }

// DispatchDone - sent by the capture dispatcher when the deferred
// capture+clipboard job finishes. Err is nil on success.
type DispatchDone struct {
	Err error
}

func (DispatchDone) Type() string { return TypeDispatchDone }
