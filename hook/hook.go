// Package hook installs and removes the system-wide pointer and
// cancel-key interception used while a capture session is live. The hook
// exists only for the span of a session: installed when the session arms,
// removed the moment the terminating input is seen.
package hook

import (
	"errors"

	"snapclip/events"
)

// ErrInstallFailed means the OS refused the hook (privilege or driver
// issue). The caller aborts the arm attempt and returns to idle; the
// process keeps running.
var ErrInstallFailed = errors.New("input hook install failed")

// Handle identifies an installed hook chain. The zero Handle means no hook.
type Handle struct {
	id uint64
}

// Installed reports whether the handle refers to a started hook chain.
func (h Handle) Installed() bool { return h.id != 0 }

// Manager owns the single hook chain. At most one chain is installed at a
// time; Start fails while one is active. The post callback runs on the
// hook delivery path and must only map and forward the event - no
// capture, file, or clipboard work.
type Manager interface {
	// Start installs the pointer+cancel-key hook and begins forwarding
	// events.PointerDown/Move/Up and events.CancelKey to post.
	Start(post func(events.Event)) (Handle, error)

	// Stop removes the hook identified by h. It is idempotent and safe to
	// call with the zero Handle or after a failed Start.
	Stop(h Handle)
}

// NewManager returns the platform hook manager: a low-level mouse and
// keyboard hook pair on Windows, a shared raw-input tap elsewhere.
func NewManager() Manager { return newPlatformManager() }
