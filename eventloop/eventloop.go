// Package eventloop owns the single goroutine that drives the capture
// session machine. Hook callbacks, the hotkey binding, and the worker all
// post into the loop; only the loop goroutine touches the machine.
package eventloop

import (
	"context"
	"log"
	"time"

	"snapclip/events"
	"snapclip/geometry"
	"snapclip/hook"
	"snapclip/hotkey"
	"snapclip/session"
	"snapclip/worker"
)

const queueSize = 256

// Loop serializes all session events onto one goroutine.
type Loop struct {
	machine  *session.Machine
	pool     *worker.Pool
	events   chan events.Event
	binding  hotkey.Binding
	deadline time.Duration
}

// New creates a loop wired to the real hook manager and capture worker.
// deadline bounds each capture job; minPx is the minimum selection edge.
func New(deadline time.Duration, minPx int) *Loop {
	return newLoop(deadline, minPx, hook.NewManager(), worker.New(nil, nil))
}

func newLoop(deadline time.Duration, minPx int, hooks session.Hooks, pool *worker.Pool) *Loop {
	l := &Loop{
		pool:     pool,
		events:   make(chan events.Event, queueSize),
		deadline: deadline,
	}
	l.machine = session.New(session.Config{
		Hooks:      hooks,
		Dispatcher: l,
		Post:       l.Post,
		MinWidth:   minPx,
		MinHeight:  minPx,
	})
	return l
}

// Post enqueues an event without blocking. Called from hook callbacks and
// the worker goroutine; a full queue drops the event rather than stall the
// input pipeline.
func (l *Loop) Post(ev events.Event) {
	select {
	case l.events <- ev:
	default:
		log.Printf("eventloop: queue full, dropping %s", ev.Type())
	}
}

// Submit hands a finished selection to the worker under the capture
// deadline. Implements the machine's dispatcher seam.
func (l *Loop) Submit(rect geometry.Rect, done func(error)) bool {
	if l.deadline <= 0 {
		return l.pool.Submit(context.Background(), rect, worker.DoneCallback(done))
	}
	jobCtx, cancel := context.WithTimeout(context.Background(), l.deadline)
	ok := l.pool.Submit(jobCtx, rect, func(err error) {
		cancel()
		done(err)
	})
	if !ok {
		// Dropped job's done never runs; release the timer here.
		cancel()
	}
	return ok
}

// StartHotkey registers the global activation chord. A failure here is
// fatal to the caller: without the chord the program can never be reached.
func (l *Loop) StartHotkey() error {
	b, err := hotkey.Register(l.Post)
	if err != nil {
		return err
	}
	l.binding = b
	return nil
}

// Run processes events one at a time until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.pool.Close()
	defer func() {
		if l.binding != nil {
			l.binding.Close()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			l.machine.Handle(events.CancelKey{})
			return ctx.Err()
		case ev := <-l.events:
			l.machine.Handle(ev)
		}
	}
}
