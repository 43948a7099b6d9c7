package sinks

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/selflog"
)

// OverflowStrategy defines what to do when the async buffer is full.
type OverflowStrategy int

const (
	// OverflowBlock blocks the caller until space is available.
	OverflowBlock OverflowStrategy = iota

	// OverflowDrop drops the newest events when the buffer is full.
	OverflowDrop
)

// AsyncOptions configures the async sink wrapper.
type AsyncOptions struct {
	// BufferSize is the size of the channel buffer for log events.
	BufferSize int

	OverflowStrategy OverflowStrategy

	// ShutdownTimeout is the maximum time Close waits for pending events.
	ShutdownTimeout time.Duration
}

// AsyncSink hands events to a background goroutine that emits them to the
// wrapped sink. Events are delivered after the logging call has returned,
// so captured values must not depend on later changes to the logged
// objects; mutable scalars are rendered at capture time for this reason.
type AsyncSink struct {
	wrapped core.LogEventSink
	options AsyncOptions
	events  chan *core.LogEvent
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once

	dropped   atomic.Uint64
	processed atomic.Uint64
}

// NewAsyncSink creates a new async sink wrapper.
func NewAsyncSink(wrapped core.LogEventSink, options AsyncOptions) *AsyncSink {
	if options.BufferSize <= 0 {
		options.BufferSize = 1000
	}
	if options.ShutdownTimeout <= 0 {
		options.ShutdownTimeout = 30 * time.Second
	}

	as := &AsyncSink{
		wrapped: wrapped,
		options: options,
		events:  make(chan *core.LogEvent, options.BufferSize),
		done:    make(chan struct{}),
	}
	as.wg.Add(1)
	go as.worker()
	return as
}

// Emit queues the event.
func (as *AsyncSink) Emit(event *core.LogEvent) {
	select {
	case <-as.done:
		as.dropped.Inc()
		return
	default:
	}

	select {
	case as.events <- event:
		return
	default:
	}

	if as.options.OverflowStrategy == OverflowBlock {
		select {
		case as.events <- event:
		case <-as.done:
			as.dropped.Inc()
		}
		return
	}

	if dropped := as.dropped.Inc(); selflog.IsEnabled() && (dropped == 1 || dropped%1000 == 0) {
		selflog.Printf("[async] buffer full, dropped %d events total", dropped)
	}
}

// Close drains pending events and closes the wrapped sink.
func (as *AsyncSink) Close() error {
	as.once.Do(func() { close(as.done) })

	finished := make(chan struct{})
	go func() {
		as.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(as.options.ShutdownTimeout):
		return errors.Newf("timeout after %s waiting for async sink to shut down", as.options.ShutdownTimeout)
	}
	return as.wrapped.Close()
}

// Dropped returns the number of events that were not delivered.
func (as *AsyncSink) Dropped() uint64 {
	return as.dropped.Load()
}

// Processed returns the number of events delivered to the wrapped sink.
func (as *AsyncSink) Processed() uint64 {
	return as.processed.Load()
}

func (as *AsyncSink) worker() {
	defer as.wg.Done()
	for {
		select {
		case event := <-as.events:
			as.emit(event)
		case <-as.done:
			for {
				select {
				case event := <-as.events:
					as.emit(event)
				default:
					return
				}
			}
		}
	}
}

func (as *AsyncSink) emit(event *core.LogEvent) {
	defer func() {
		if r := recover(); r != nil && selflog.IsEnabled() {
			selflog.Printf("[async] wrapped sink panic: %v", r)
		}
	}()
	as.wrapped.Emit(event)
	as.processed.Inc()
}
