package stream

import (
	"iter"
	"strings"

	"github.com/tidwall/gjson"
)

// CollectContent consumes the sequence and concatenates every content
// fragment in arrival order. A sequence with no content yields "".
func CollectContent(seq iter.Seq[Chunk]) string {
	var b strings.Builder
	for c := range seq {
		if content, ok := c.Content(); ok {
			b.WriteString(content)
		}
	}
	return b.String()
}

// ReduceContent folds fn over the content fragments of the sequence in
// arrival order, starting from init. Chunks without content are skipped and
// do not affect the accumulator.
func ReduceContent[T any](seq iter.Seq[Chunk], init T, fn func(content string, acc T) T) T {
	acc := init
	for c := range seq {
		if content, ok := c.Content(); ok {
			acc = fn(content, acc)
		}
	}
	return acc
}

// LastUsage consumes the sequence and returns the usage of the last chunk
// that carries one; interim usage values are superseded. The second return
// is false when no chunk carried usage.
func LastUsage(seq iter.Seq[Chunk]) (gjson.Result, bool) {
	var (
		usage gjson.Result
		seen  bool
	)
	for c := range seq {
		if u, ok := c.Usage(); ok {
			usage = u
			seen = true
		}
	}
	return usage, seen
}

// Accumulate consumes the sequence, folding every chunk into an Accumulator,
// and projects the result into a complete response for the detected format.
func Accumulate(seq iter.Seq[Chunk]) *Response {
	acc := NewAccumulator()
	for c := range seq {
		acc.Add(c)
	}
	return acc.Response()
}
