// Package hotkey registers the single global activation chord and posts
// events.Activate on every physical press. Rate limiting is not its job:
// the capture state machine ignores redundant activations.
package hotkey

import (
	"errors"

	"snapclip/events"
)

// Chord is the fixed activation chord. It is deliberately not
// configurable: one well-known chord keeps registration conflicts
// diagnosable at startup instead of surfacing as mystery dead keys.
const Chord = "Alt+Shift+A"

// ErrUnavailable means the chord could not be registered, typically
// because another process owns it. This is fatal at startup; the tool
// has no function without its hotkey.
var ErrUnavailable = errors.New("hotkey chord unavailable")

// Binding is the live OS registration of the chord. Close releases the
// registration and is safe to call more than once.
type Binding interface {
	Close()
}

// Register claims the chord system-wide. post is invoked off the caller's
// goroutine and must not block.
func Register(post func(events.Event)) (Binding, error) {
	return registerPlatform(post)
}
