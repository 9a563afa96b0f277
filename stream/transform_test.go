package stream

import (
	"iter"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkSeq(raws ...string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for _, raw := range raws {
			if !yield(ChunkFromJSON(raw)) {
				return
			}
		}
	}
}

func collectChunks(seq iter.Seq[Chunk]) []Chunk {
	return slices.Collect(seq)
}

func TestEachContent(t *testing.T) {
	var seen []string
	seq := EachContent(chunkSeq(chatRoleChunk, chatContentChunk, chatFinalChunk), func(content string) {
		seen = append(seen, content)
	})

	out := collectChunks(seq)
	require.Len(t, out, 3, "every chunk is emitted unchanged")
	assert.Equal(t, []string{"Hello", " world"}, seen, "fn runs only for content-bearing chunks")
}

func TestMapContent(t *testing.T) {
	seq := MapContent(chunkSeq(chatRoleChunk, chatContentChunk, convDeltaChunk), strings.ToUpper)
	out := collectChunks(seq)
	require.Len(t, out, 3)

	_, ok := out[0].Content()
	assert.False(t, ok, "role-only delta passes through untouched")

	content, _ := out[1].Content()
	assert.Equal(t, "HELLO", content)
	content, _ = out[2].Content()
	assert.Equal(t, "HI", content)
}

func TestFilterContent(t *testing.T) {
	seq := FilterContent(
		chunkSeq(chatRoleChunk, chatContentChunk, chatFinalChunk, convStartedChunk),
		func(content string) bool { return strings.Contains(content, "Hello") },
	)
	out := collectChunks(seq)
	require.Len(t, out, 3)

	content, ok := out[1].Content()
	require.True(t, ok)
	assert.Equal(t, "Hello", content)
}

func TestFilterContent_NeverDropsContentlessChunks(t *testing.T) {
	// even a reject-everything predicate keeps markers and usage chunks
	seq := FilterContent(
		chunkSeq(chatRoleChunk, chatContentChunk, convStartedChunk, convDoneChunk),
		func(string) bool { return false },
	)
	out := collectChunks(seq)
	require.Len(t, out, 3)
	for _, c := range out {
		_, ok := c.Content()
		assert.False(t, ok)
	}
}

func TestTee(t *testing.T) {
	var copies []Chunk
	var emitted []Chunk
	seq := Tee(chunkSeq(chatRoleChunk, chatContentChunk, convDoneChunk), SinkFunc(func(c Chunk) {
		// the sink must have seen the chunk no later than its emission
		assert.Len(t, emitted, len(copies))
		copies = append(copies, c)
	}))
	for c := range seq {
		emitted = append(emitted, c)
	}

	require.Len(t, copies, 3, "content-less chunks are delivered too")
	require.Len(t, emitted, 3)
	for i := range copies {
		assert.Equal(t, emitted[i].JSON(), copies[i].JSON())
	}
}

func TestTee_NilSink(t *testing.T) {
	out := collectChunks(Tee(chunkSeq(chatContentChunk), nil))
	assert.Len(t, out, 1)
}

func TestChannelSink_DropsWhenReceiverGone(t *testing.T) {
	ch := make(chan Chunk) // nobody ever receives
	sink := ChannelSink(ch, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		sink.OnChunk(ChunkFromJSON(chatContentChunk))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sink send to a dead receiver must not block forever")
	}
}

func TestChannelSink_Delivers(t *testing.T) {
	ch := make(chan Chunk, 1)
	ChannelSink(ch, 0).OnChunk(ChunkFromJSON(chatContentChunk))

	select {
	case c := <-ch:
		content, _ := c.Content()
		assert.Equal(t, "Hello", content)
	default:
		t.Fatal("expected a delivered chunk")
	}
}

func TestLazyComposition(t *testing.T) {
	// map then filter then tee, terminated by collect
	var observed int
	seq := Tee(
		FilterContent(
			MapContent(chunkSeq(chatRoleChunk, chatContentChunk, chatFinalChunk), strings.TrimSpace),
			func(content string) bool { return content != "" },
		),
		SinkFunc(func(Chunk) { observed++ }),
	)
	assert.Equal(t, "Helloworld", CollectContent(seq))
	assert.Equal(t, 3, observed)
}

func TestLazyOperatorsShortCircuit(t *testing.T) {
	var produced int
	src := func(yield func(Chunk) bool) {
		for {
			produced++
			if !yield(ChunkFromJSON(chatContentChunk)) {
				return
			}
		}
	}

	count := 0
	for range MapContent(src, strings.ToUpper) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, produced, "abandoning the sequence stops the producer")
}
