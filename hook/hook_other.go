//go:build !windows

package hook

import (
	"fmt"
	"sync"

	"snapclip/events"
	"snapclip/geometry"
	"snapclip/inputtap"
)

// Esc rawcodes as reported by the raw input stream: the Windows
// virtual-key value plus the X11 keysym.
var escapeRawcodes = map[uint16]bool{27: true, 0xFF1B: true}

// subscribe attaches to the shared raw input stream. Replaced in tests.
var subscribe = inputtap.Subscribe

// tapManager gates pointer/cancel-key forwarding from the shared raw
// input tap. Install subscribes, remove unsubscribes; the underlying
// stream is owned by inputtap for the process lifetime.
type tapManager struct {
	mu     sync.Mutex
	active uint64
	nextID uint64
	cancel func()
}

func newPlatformManager() Manager { return &tapManager{} }

func (m *tapManager) Start(post func(events.Event)) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != 0 {
		return Handle{}, fmt.Errorf("%w: hook chain already installed", ErrInstallFailed)
	}

	cancel, err := subscribe(func(raw inputtap.RawEvent) {
		at := geometry.Point{X: raw.X, Y: raw.Y}
		switch raw.Kind {
		case inputtap.PointerDown:
			post(events.PointerDown{At: at})
		case inputtap.PointerMove:
			post(events.PointerMove{At: at})
		case inputtap.PointerUp:
			post(events.PointerUp{At: at})
		case inputtap.KeyDown:
			if escapeRawcodes[raw.Rawcode] {
				post(events.CancelKey{})
			}
		}
	})
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}

	m.nextID++
	m.active = m.nextID
	m.cancel = cancel
	return Handle{id: m.active}, nil
}

func (m *tapManager) Stop(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !h.Installed() || h.id != m.active {
		return
	}
	m.cancel()
	m.cancel = nil
	m.active = 0
}
