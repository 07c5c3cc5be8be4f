package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"snapclip/geometry"
)

var testRect = geometry.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50}

func TestSuccessfulCapturePublishes(t *testing.T) {
	var published atomic.Value
	pool := New(
		func(r geometry.Rect) ([]byte, error) { return []byte("png-bytes"), nil },
		func(png []byte) error { published.Store(string(png)); return nil },
	)
	defer pool.Close()

	done := make(chan error, 1)
	if !pool.Submit(context.Background(), testRect, func(err error) { done <- err }) {
		t.Fatal("Submit returned false on idle pool")
	}
	if err := waitDone(t, done); err != nil {
		t.Fatalf("done callback got error: %v", err)
	}
	if got := published.Load(); got != "png-bytes" {
		t.Fatalf("published = %v, want png-bytes", got)
	}
}

func TestCaptureFailureSkipsPublish(t *testing.T) {
	var publishCalls atomic.Int32
	pool := New(
		func(r geometry.Rect) ([]byte, error) { return nil, errors.New("display gone") },
		func(png []byte) error { publishCalls.Add(1); return nil },
	)
	defer pool.Close()

	done := make(chan error, 1)
	pool.Submit(context.Background(), testRect, func(err error) { done <- err })

	err := waitDone(t, done)
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("err = %v, want ErrCaptureFailed", err)
	}
	if n := publishCalls.Load(); n != 0 {
		t.Fatalf("publish called %d times after capture failure, want 0", n)
	}
}

func TestPublishFailureReported(t *testing.T) {
	pool := New(
		func(r geometry.Rect) ([]byte, error) { return []byte("x"), nil },
		func(png []byte) error { return errors.New("clipboard locked") },
	)
	defer pool.Close()

	done := make(chan error, 1)
	pool.Submit(context.Background(), testRect, func(err error) { done <- err })

	if err := waitDone(t, done); !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("err = %v, want ErrCaptureFailed", err)
	}
}

func TestSubmitDropsWhenSaturated(t *testing.T) {
	block := make(chan struct{})
	pool := New(
		func(r geometry.Rect) ([]byte, error) { <-block; return []byte("x"), nil },
		func(png []byte) error { return nil },
	)
	defer pool.Close()

	done := make(chan error, 3)
	cb := func(err error) { done <- err }

	// First job occupies the worker, second fills the single queue slot.
	if !pool.Submit(context.Background(), testRect, cb) {
		t.Fatal("first Submit refused")
	}
	waitForWorkerPickup(t, pool)
	if !pool.Submit(context.Background(), testRect, cb) {
		t.Fatal("second Submit refused with empty queue slot")
	}
	if pool.Submit(context.Background(), testRect, cb) {
		t.Fatal("third Submit accepted with saturated pool")
	}

	close(block)
	for i := 0; i < 2; i++ {
		if err := waitDone(t, done); err != nil {
			t.Fatalf("job %d failed: %v", i, err)
		}
	}
}

func TestDeadlineAbandonsSlowCapture(t *testing.T) {
	release := make(chan struct{})
	var publishCalls atomic.Int32
	pool := New(
		func(r geometry.Rect) ([]byte, error) { <-release; return []byte("late"), nil },
		func(png []byte) error { publishCalls.Add(1); return nil },
	)
	defer pool.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	pool.Submit(ctx, testRect, func(err error) { done <- err })

	err := waitDone(t, done)
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("err = %v, want ErrCaptureFailed", err)
	}
	if n := publishCalls.Load(); n != 0 {
		t.Fatalf("publish called %d times after deadline, want 0", n)
	}
}

func TestCloseDrainsPendingWork(t *testing.T) {
	var published atomic.Int32
	pool := New(
		func(r geometry.Rect) ([]byte, error) { return []byte("x"), nil },
		func(png []byte) error { published.Add(1); return nil },
	)

	done := make(chan error, 1)
	pool.Submit(context.Background(), testRect, func(err error) { done <- err })
	pool.Close()

	if err := waitDone(t, done); err != nil {
		t.Fatalf("pending job failed: %v", err)
	}
	if published.Load() != 1 {
		t.Fatalf("pending job not published before Close returned")
	}
}

func waitDone(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for done callback")
		return nil
	}
}

// waitForWorkerPickup waits until the worker has taken the in-flight job
// off the queue so the single slot is observably free.
func waitForWorkerPickup(t *testing.T, p *Pool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(p.jobs) == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("worker never picked up the in-flight job")
}
