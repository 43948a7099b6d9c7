package sinks

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/mtlog-attributed/core"
)

func TestAsyncSinkDeliversOnClose(t *testing.T) {
	memory := NewMemorySink()
	async := NewAsyncSink(memory, AsyncOptions{BufferSize: 10})

	for i := 0; i < 5; i++ {
		async.Emit(&core.LogEvent{MessageTemplate: fmt.Sprint(i)})
	}
	require.NoError(t, async.Close())

	assert.Equal(t, 5, memory.Count())
	assert.Equal(t, uint64(5), async.Processed())
	assert.Equal(t, uint64(0), async.Dropped())

	async.Emit(&core.LogEvent{MessageTemplate: "late"})
	assert.Equal(t, uint64(1), async.Dropped())
	assert.NoError(t, async.Close(), "close is idempotent")
}

// blockingSink holds every Emit until released.
type blockingSink struct {
	*MemorySink
	release chan struct{}
}

func (b *blockingSink) Emit(event *core.LogEvent) {
	<-b.release
	b.MemorySink.Emit(event)
}

func TestAsyncSinkOverflowDrop(t *testing.T) {
	target := &blockingSink{MemorySink: NewMemorySink(), release: make(chan struct{})}
	async := NewAsyncSink(target, AsyncOptions{BufferSize: 1, OverflowStrategy: OverflowDrop})

	for i := 0; i < 10; i++ {
		async.Emit(&core.LogEvent{MessageTemplate: fmt.Sprint(i)})
	}
	assert.Greater(t, async.Dropped(), uint64(0))

	close(target.release)
	require.NoError(t, async.Close())
	assert.Equal(t, 10, target.Count()+int(async.Dropped()))
}

func TestAsyncSinkShutdownTimeout(t *testing.T) {
	target := &blockingSink{MemorySink: NewMemorySink(), release: make(chan struct{})}
	defer close(target.release)
	async := NewAsyncSink(target, AsyncOptions{ShutdownTimeout: 10 * time.Millisecond})

	async.Emit(&core.LogEvent{})
	assert.ErrorContains(t, async.Close(), "timeout")
}
