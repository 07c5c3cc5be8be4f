// Package inputtap owns the process-wide raw input stream and fans it out
// to subscribers. The underlying OS hook (robotn/gohook) can only be
// started once per process, so the hotkey listener and the capture hook
// share this single pump instead of competing for it.
package inputtap

import (
	"errors"
	"log"
	"sync"

	gohook "github.com/robotn/gohook"
)

// Kind classifies a raw input event.
type Kind int

const (
	KeyDown Kind = iota
	KeyUp
	PointerDown
	PointerMove
	PointerUp
)

// RawEvent is the subset of hook data subscribers consume. X and Y are
// virtual-screen coordinates; Rawcode is the platform key code.
type RawEvent struct {
	Kind    Kind
	Rawcode uint16
	X       int
	Y       int
}

// ErrUnavailable means the OS input stream could not be started.
var ErrUnavailable = errors.New("raw input stream unavailable")

// startStream begins delivery of raw events to emit and returns a stop
// function. Replaced in tests to feed synthetic events.
var startStream = gohookStream

var (
	mu      sync.Mutex
	subs    = map[uint64]func(RawEvent){}
	nextID  uint64
	started bool
	failed  bool
)

// Subscribe attaches fn to the shared input stream, starting the stream on
// first use. fn runs on the pump goroutine and must not block. The
// returned cancel detaches fn and is safe to call more than once.
func Subscribe(fn func(RawEvent)) (cancel func(), err error) {
	mu.Lock()
	defer mu.Unlock()

	if failed {
		return nil, ErrUnavailable
	}
	if !started {
		if err := startStream(dispatch); err != nil {
			failed = true
			return nil, err
		}
		started = true
	}

	nextID++
	id := nextID
	subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			delete(subs, id)
			mu.Unlock()
		})
	}, nil
}

func dispatch(ev RawEvent) {
	mu.Lock()
	fns := make([]func(RawEvent), 0, len(subs))
	for _, fn := range subs {
		fns = append(fns, fn)
	}
	mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// gohookStream pumps gohook events for the process lifetime. The stream is
// never stopped once running: the hotkey listener depends on it in Idle,
// and per-session gating is done by subscribing and unsubscribing.
func gohookStream(emit func(RawEvent)) error {
	evChan := gohook.Start()
	if evChan == nil {
		return ErrUnavailable
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("inputtap: panic in pump goroutine: %v", r)
			}
		}()
		for ev := range evChan {
			if mapped, ok := mapEvent(ev); ok {
				emit(mapped)
			}
		}
		log.Printf("inputtap: raw event channel closed")
	}()
	return nil
}

func mapEvent(ev gohook.Event) (RawEvent, bool) {
	switch ev.Kind {
	case gohook.KeyDown:
		return RawEvent{Kind: KeyDown, Rawcode: ev.Rawcode}, true
	case gohook.KeyUp:
		return RawEvent{Kind: KeyUp, Rawcode: ev.Rawcode}, true
	case gohook.MouseDown:
		if ev.Button == 1 {
			return RawEvent{Kind: PointerDown, X: int(ev.X), Y: int(ev.Y)}, true
		}
	case gohook.MouseUp:
		if ev.Button == 1 {
			return RawEvent{Kind: PointerUp, X: int(ev.X), Y: int(ev.Y)}, true
		}
	case gohook.MouseMove, gohook.MouseDrag:
		return RawEvent{Kind: PointerMove, X: int(ev.X), Y: int(ev.Y)}, true
	}
	return RawEvent{}, false
}
