package stream

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Format identifies the wire shape a chunk (or a whole stream) was produced
// in. Detection never fails: anything that matches neither recognized shape
// is FormatUnknown and is treated as a contentless pass-through downstream.
type Format int

const (
	FormatUnknown Format = iota
	FormatChat
	FormatConversation
)

func (f Format) String() string {
	switch f {
	case FormatChat:
		return "chat"
	case FormatConversation:
		return "conversation"
	default:
		return "unknown"
	}
}

const (
	objectOutputDelta          = "message.output.delta"
	objectConversationResponse = "conversation.response"
)

// Chunk is one decoded unit of a streamed response, corresponding to one SSE
// event body. It imposes no schema beyond the two recognized shapes; all
// accessors are total and report absence instead of erroring.
type Chunk struct {
	raw gjson.Result
}

// ParseChunk decodes one SSE event body into a Chunk. The bytes are not
// retained; gjson parses into its own representation.
func ParseChunk(data []byte) Chunk {
	return Chunk{raw: gjson.ParseBytes(data)}
}

// ChunkFromJSON builds a Chunk from a JSON string. Convenient in tests and
// when re-injecting chunks that were serialized elsewhere.
func ChunkFromJSON(s string) Chunk {
	return Chunk{raw: gjson.Parse(s)}
}

// Raw exposes the underlying gjson document.
func (c Chunk) Raw() gjson.Result { return c.raw }

// JSON returns the chunk's JSON text.
func (c Chunk) JSON() string { return c.raw.Raw }

// DetectFormat recognizes the wire shape of a single chunk. Chat is tagged
// by the presence of a choices array; conversation by an object field equal
// to "message.output.delta" or prefixed "conversation.response". A chunk
// matching neither (including a completely empty one) is FormatUnknown.
func DetectFormat(c Chunk) Format {
	if c.raw.Get("choices").Exists() {
		return FormatChat
	}
	obj := c.raw.Get("object").String()
	if obj == objectOutputDelta || strings.HasPrefix(obj, objectConversationResponse) {
		return FormatConversation
	}
	return FormatUnknown
}

// Content returns the content fragment carried by the chunk, if any. For
// chat chunks this is choices[0].delta.content; for conversation chunks the
// top-level content field of a message.output.delta event. Role-only deltas,
// start/done markers and usage-only chunks report no content.
func (c Chunk) Content() (string, bool) {
	switch DetectFormat(c) {
	case FormatChat:
		v := c.raw.Get("choices.0.delta.content")
		if v.Type == gjson.String {
			return v.String(), true
		}
	case FormatConversation:
		if c.raw.Get("object").String() == objectOutputDelta {
			v := c.raw.Get("content")
			if v.Type == gjson.String {
				return v.String(), true
			}
		}
	}
	return "", false
}

// Usage returns the usage object carried by the chunk, if present. Usage may
// arrive on a chunk with no content, such as a terminal done event.
func (c Chunk) Usage() (gjson.Result, bool) {
	u := c.raw.Get("usage")
	if u.IsObject() {
		return u, true
	}
	return gjson.Result{}, false
}

// FinishReason returns choices[0].finish_reason for chat chunks when it is a
// non-empty string. Conversation chunks carry no finish reason.
func (c Chunk) FinishReason() (string, bool) {
	if DetectFormat(c) != FormatChat {
		return "", false
	}
	v := c.raw.Get("choices.0.finish_reason")
	if v.Type == gjson.String && v.String() != "" {
		return v.String(), true
	}
	return "", false
}

// Role returns choices[0].delta.role for chat chunks when present. The role
// typically arrives on the first delta of a stream, before any content.
func (c Chunk) Role() (string, bool) {
	if DetectFormat(c) != FormatChat {
		return "", false
	}
	v := c.raw.Get("choices.0.delta.role")
	if v.Type == gjson.String && v.String() != "" {
		return v.String(), true
	}
	return "", false
}

// WithContent returns a copy of the chunk with its content replaced at the
// same location Content reads from. A chunk that carries no content field is
// returned unchanged.
func (c Chunk) WithContent(content string) Chunk {
	if _, ok := c.Content(); !ok {
		return c
	}
	var path string
	switch DetectFormat(c) {
	case FormatChat:
		path = "choices.0.delta.content"
	case FormatConversation:
		path = "content"
	default:
		return c
	}
	out, err := sjson.Set(c.raw.Raw, path, content)
	if err != nil {
		return c
	}
	return Chunk{raw: gjson.Parse(out)}
}
