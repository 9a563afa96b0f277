package stream

import (
	"iter"
	"sync"
	"time"
)

// DefaultMergeTimeout bounds how long a merged sequence waits for the next
// chunk from any source before halting.
const DefaultMergeTimeout = 30 * time.Second

// Merge fans in the given sequences into one interleaved sequence. Each
// input is driven by its own goroutine feeding a single shared channel, so
// output order is arrival order across sources and is nondeterministic
// run-to-run; within one source, order is preserved. The merged sequence
// ends once every input has completed. An empty input list yields an
// immediately empty sequence.
func Merge(seqs ...iter.Seq[Chunk]) iter.Seq[Chunk] {
	return MergeWithTimeout(DefaultMergeTimeout, seqs...)
}

// MergeWithTimeout is Merge with an explicit liveness bound: if no chunk
// arrives from any source within timeout of the previous one, the merged
// sequence halts rather than blocking on a stalled producer.
func MergeWithTimeout(timeout time.Duration, seqs ...iter.Seq[Chunk]) iter.Seq[Chunk] {
	if timeout <= 0 {
		timeout = DefaultMergeTimeout
	}
	return func(yield func(Chunk) bool) {
		if len(seqs) == 0 {
			return
		}

		// Unbuffered so producers never run ahead of the consumer beyond
		// the single in-flight send needed to avoid a stall.
		out := make(chan Chunk)
		quit := make(chan struct{})
		defer close(quit)

		var wg sync.WaitGroup
		for _, seq := range seqs {
			wg.Add(1)
			go func(seq iter.Seq[Chunk]) {
				defer wg.Done()
				for c := range seq {
					select {
					case out <- c:
					case <-quit:
						return
					}
				}
			}(seq)
		}

		finished := make(chan struct{})
		go func() {
			wg.Wait()
			close(finished)
		}()

		timer := time.NewTimer(timeout)
		defer timer.Stop()
		for {
			select {
			case c := <-out:
				if !yield(c) {
					return
				}
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(timeout)
			case <-finished:
				return
			case <-timer.C:
				return
			}
		}
	}
}
