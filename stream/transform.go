package stream

import (
	"iter"
	"time"
)

// Sink receives out-of-band copies of chunks from Tee and the push-mode side
// of a Stream. Delivery is synchronous and fire-and-forget: the pipeline does
// not wait on, retry, or observe anything the sink does with a chunk.
type Sink interface {
	OnChunk(Chunk)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Chunk)

func (f SinkFunc) OnChunk(c Chunk) { f(c) }

const defaultSinkSendTimeout = 100 * time.Millisecond

// ChannelSink adapts a channel to the Sink interface. A send that cannot
// complete within the configured wait is dropped, so an abandoned or slow
// receiver never stalls the stream it observes. A timeout of zero uses a
// 100ms default.
func ChannelSink(ch chan<- Chunk, timeout time.Duration) Sink {
	if timeout <= 0 {
		timeout = defaultSinkSendTimeout
	}
	return SinkFunc(func(c Chunk) {
		select {
		case ch <- c:
		case <-time.After(timeout):
		}
	})
}

// EachContent invokes fn with the content of every content-bearing chunk as
// a side effect and emits every chunk unchanged. Chunks without content pass
// through without invoking fn.
func EachContent(seq iter.Seq[Chunk], fn func(string)) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for c := range seq {
			if content, ok := c.Content(); ok {
				fn(content)
			}
			if !yield(c) {
				return
			}
		}
	}
}

// MapContent emits each content-bearing chunk with its content replaced by
// fn(content); chunks without content are emitted unchanged.
func MapContent(seq iter.Seq[Chunk], fn func(string) string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for c := range seq {
			if content, ok := c.Content(); ok {
				c = c.WithContent(fn(content))
			}
			if !yield(c) {
				return
			}
		}
	}
}

// FilterContent emits a content-bearing chunk only when fn(content) is true.
// Chunks without content always pass through regardless of fn: role markers,
// start/done markers and usage-only chunks are never dropped by a content
// predicate.
func FilterContent(seq iter.Seq[Chunk], fn func(string) bool) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for c := range seq {
			if content, ok := c.Content(); ok && !fn(content) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Tee delivers a copy of every chunk, content-bearing or not, to sink before
// emitting the original unchanged.
func Tee(seq iter.Seq[Chunk], sink Sink) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for c := range seq {
			if sink != nil {
				sink.OnChunk(c)
			}
			if !yield(c) {
				return
			}
		}
	}
}
