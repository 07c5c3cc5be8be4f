package inputtap

import (
	"errors"
	"testing"
)

func resetForTest(t *testing.T) {
	t.Helper()
	orig := startStream
	mu.Lock()
	subs = map[uint64]func(RawEvent){}
	nextID = 0
	started = false
	failed = false
	mu.Unlock()
	t.Cleanup(func() {
		startStream = orig
		mu.Lock()
		subs = map[uint64]func(RawEvent){}
		started = false
		failed = false
		mu.Unlock()
	})
}

func TestSubscribeFanOut(t *testing.T) {
	resetForTest(t)

	var emit func(RawEvent)
	starts := 0
	startStream = func(fn func(RawEvent)) error {
		starts++
		emit = fn
		return nil
	}

	var got1, got2 []RawEvent
	cancel1, err := Subscribe(func(ev RawEvent) { got1 = append(got1, ev) })
	if err != nil {
		t.Fatalf("first Subscribe failed: %v", err)
	}
	if _, err := Subscribe(func(ev RawEvent) { got2 = append(got2, ev) }); err != nil {
		t.Fatalf("second Subscribe failed: %v", err)
	}
	if starts != 1 {
		t.Fatalf("stream started %d times, want 1", starts)
	}

	emit(RawEvent{Kind: PointerDown, X: 10, Y: 20})
	if len(got1) != 1 || len(got2) != 1 {
		t.Fatalf("fan-out delivered %d/%d events, want 1/1", len(got1), len(got2))
	}

	cancel1()
	emit(RawEvent{Kind: PointerUp, X: 30, Y: 40})
	if len(got1) != 1 {
		t.Fatalf("cancelled subscriber still received events")
	}
	if len(got2) != 2 {
		t.Fatalf("remaining subscriber got %d events, want 2", len(got2))
	}

	// Cancel is idempotent.
	cancel1()
	cancel1()
}

func TestSubscribeStartFailureSticks(t *testing.T) {
	resetForTest(t)

	startErr := errors.New("no display")
	calls := 0
	startStream = func(fn func(RawEvent)) error {
		calls++
		return startErr
	}

	if _, err := Subscribe(func(RawEvent) {}); !errors.Is(err, startErr) {
		t.Fatalf("err = %v, want %v", err, startErr)
	}
	if _, err := Subscribe(func(RawEvent) {}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("second err = %v, want ErrUnavailable", err)
	}
	if calls != 1 {
		t.Fatalf("failed stream restarted %d times, want 1", calls)
	}
}
