//go:build !windows

package hotkey

import (
	"fmt"
	"log"
	"sync"

	"snapclip/events"
	"snapclip/inputtap"
)

// subscribe attaches to the shared raw input stream. Replaced in tests.
var subscribe = inputtap.Subscribe

// tapBinding detects the chord on the shared raw input stream: every key
// of the chord must be held simultaneously. State resets on fire so a
// held chord activates once per press.
type tapBinding struct {
	cancel func()
	once   sync.Once
}

func (b *tapBinding) Close() {
	b.once.Do(b.cancel)
}

type chordKey struct {
	name     string
	rawcodes []uint16
	pressed  bool
}

func registerPlatform(post func(events.Event)) (Binding, error) {
	spec, err := parseChord(Chord)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	names := append(spec.modifierNames(), spec.key)
	keys := make([]chordKey, 0, len(names))
	for _, name := range names {
		codes := rawcodes(name)
		if len(codes) == 0 {
			return nil, fmt.Errorf("%w: no rawcodes for key %q", ErrUnavailable, name)
		}
		keys = append(keys, chordKey{name: name, rawcodes: codes})
	}

	var mu sync.Mutex
	cancel, err := subscribe(func(raw inputtap.RawEvent) {
		if raw.Kind != inputtap.KeyDown && raw.Kind != inputtap.KeyUp {
			return
		}
		mu.Lock()
		matched := false
		for i := range keys {
			for _, code := range keys[i].rawcodes {
				if raw.Rawcode == code {
					keys[i].pressed = raw.Kind == inputtap.KeyDown
					matched = true
					break
				}
			}
		}
		if !matched || raw.Kind != inputtap.KeyDown {
			mu.Unlock()
			return
		}
		all := true
		for i := range keys {
			if !keys[i].pressed {
				all = false
				break
			}
		}
		if all {
			for i := range keys {
				keys[i].pressed = false
			}
		}
		mu.Unlock()
		if all {
			post(events.Activate{})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	log.Printf("hotkey: listening for %s", Chord)
	return &tapBinding{cancel: cancel}, nil
}
