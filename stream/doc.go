// Package stream implements the streaming response pipeline: it turns the
// incremental server-sent-event feed of a completion request into a lazily
// consumable sequence of chunks, offers composable transforms over that
// sequence, and accumulates a full chunk sequence into a response shaped
// like its non-streaming counterpart.
//
// Design decisions:
//   - Dynamic chunks: a Chunk wraps the decoded JSON of one SSE event as a
//     gjson.Result rather than a fixed struct, because the wire carries two
//     different shapes (chat token deltas and conversation message deltas)
//     plus the occasional marker event with no content at all
//   - Format detection once: the wire shape is stable for the life of a
//     stream, so the Accumulator pins the format on first recognition and
//     every later chunk is read through that tag
//   - Lazy composition: operators are iter.Seq pass-through transforms, so
//     chains of arbitrary length compose without buffering more than one
//     element of lookahead
//   - Fan-in by message passing: Merge runs one goroutine per input sequence
//     feeding a single shared channel, with a bounded receive timeout so a
//     stalled producer halts the merged sequence instead of hanging it
//   - Lenient framing: an SSE event body that fails to decode is dropped,
//     never surfaced as an error; protocol noise must not abort a stream
//
// The two recognized wire shapes:
//
//	chat:         {"object":"chat.completion.chunk","choices":[{"delta":{"content":"..."}}]}
//	conversation: {"object":"message.output.delta","content":"...","conversation_id":"..."}
//
// Example usage:
//
//	strm, err := client.ChatCompletionStream(ctx, req)
//	if err != nil {
//	    return err
//	}
//	defer strm.Close()
//
//	upper := stream.MapContent(strm.Chunks(), strings.ToUpper)
//	resp := stream.Accumulate(upper)
//	fmt.Println(resp.Content())
package stream
