// Package worker runs the deferred capture+clipboard job for a finished
// selection, decoupled from the hook delivery path: the hook callback
// returns before any pixel or clipboard I/O begins.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"snapclip/clipboard"
	"snapclip/geometry"
	"snapclip/screenshot"
)

// ErrCaptureFailed wraps any failure of the capture backend or clipboard
// publication. The session treats it like a cancel: reset, log, clipboard
// untouched.
var ErrCaptureFailed = errors.New("capture failed")

// CaptureFunc grabs a rectangle and returns it encoded for the clipboard.
type CaptureFunc func(r geometry.Rect) ([]byte, error)

// PublishFunc places the encoded image on the system clipboard.
type PublishFunc func(png []byte) error

// DoneCallback is invoked on job completion from the worker goroutine.
// The event loop passes a closure that posts back into the loop safely.
type DoneCallback func(err error)

// Pool is a single-worker dispatcher with a 1-slot queue: strict
// back-pressure, at most one capture in flight.
type Pool struct {
	jobs    chan job
	wg      sync.WaitGroup
	capture CaptureFunc
	publish PublishFunc
}

type job struct {
	ctx  context.Context
	rect geometry.Rect
	done DoneCallback
}

// New creates the dispatcher. Nil funcs select the real backend
// (screenshot capture + clipboard publication).
func New(capture CaptureFunc, publish PublishFunc) *Pool {
	if capture == nil {
		capture = captureEncoded
	}
	if publish == nil {
		publish = clipboard.WriteImage
	}
	p := &Pool{
		jobs:    make(chan job, 1),
		capture: capture,
		publish: publish,
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Submit enqueues a capture job if the single slot is free. Returns false
// if dropped; the caller discards the selection.
func (p *Pool) Submit(ctx context.Context, rect geometry.Rect, done DoneCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, rect: rect, done: done}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}

func (p *Pool) run() {
	defer p.wg.Done()
	for j := range p.jobs {
		j.done(p.process(j.ctx, j.rect))
	}
}

func (p *Pool) process(ctx context.Context, rect geometry.Rect) error {
	data, err := p.captureWithContext(ctx, rect)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	if err := p.publish(data); err != nil {
		return fmt.Errorf("%w: clipboard: %v", ErrCaptureFailed, err)
	}
	log.Printf("worker: published %dx%d capture (%d bytes)", rect.Width(), rect.Height(), len(data))
	return nil
}

// captureWithContext honors the job deadline. A capture that outlives the
// deadline keeps running in a goroutine but its result is discarded; the
// clipboard is only ever written from the successful path.
func (p *Pool) captureWithContext(ctx context.Context, rect geometry.Rect) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		return p.capture(rect)
	}
	type result struct {
		data []byte
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		data, err := p.capture(rect)
		resCh <- result{data: data, err: err}
	}()
	select {
	case r := <-resCh:
		return r.data, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func captureEncoded(rect geometry.Rect) ([]byte, error) {
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, err
	}
	return screenshot.EncodePNG(img)
}
