package stream

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Accumulator is the fold state built while eagerly consuming a chunk
// sequence into one logical response. It is purely sequential: one
// accumulator per stream, driven by one consumer.
//
// Update policies per field:
//   - format: fixed on the first chunk whose shape is recognized
//   - content: append-only, never truncated
//   - usage, finish reason, role: last non-absent value wins
//   - meta (id, model, created, conversation_id): first value wins; a later
//     chunk cannot override an already captured identity
type Accumulator struct {
	format         Format
	content        strings.Builder
	usageRaw       string
	finishReason   string
	role           string
	id             string
	model          string
	createdRaw     string
	conversationID string
}

// NewAccumulator returns an empty accumulator with an unresolved format.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Format reports the wire shape pinned so far, FormatUnknown until the first
// recognizable chunk arrives.
func (a *Accumulator) Format() Format { return a.format }

// Add folds one chunk into the accumulator.
func (a *Accumulator) Add(c Chunk) {
	if a.format == FormatUnknown {
		a.format = DetectFormat(c)
	}

	if content, ok := c.Content(); ok {
		a.content.WriteString(content)
	}
	if usage, ok := c.Usage(); ok {
		a.usageRaw = usage.Raw
	}
	if reason, ok := c.FinishReason(); ok {
		a.finishReason = reason
	}
	if role, ok := c.Role(); ok {
		a.role = role
	}

	raw := c.Raw()
	if a.id == "" {
		a.id = raw.Get("id").String()
	}
	if a.model == "" {
		a.model = raw.Get("model").String()
	}
	if a.createdRaw == "" {
		if v := raw.Get("created"); v.Exists() {
			a.createdRaw = v.Raw
		}
	}
	if a.conversationID == "" {
		a.conversationID = raw.Get("conversation_id").String()
	}
}

// Response projects the accumulated state into the shape of a complete
// non-streaming response for the detected format. The usage key is present
// only if at least one folded chunk carried usage; it is entirely absent
// otherwise. A sequence whose format never resolved yields a plain
// {content, usage} object instead of a chat or conversation shape.
func (a *Accumulator) Response() *Response {
	var out string
	switch a.format {
	case FormatChat:
		out = a.chatResponse()
	case FormatConversation:
		out = a.conversationResponse()
	default:
		out = a.fallbackResponse()
	}
	if a.usageRaw != "" {
		out, _ = sjson.SetRaw(out, "usage", a.usageRaw)
	}
	return &Response{raw: gjson.Parse(out)}
}

func (a *Accumulator) chatResponse() string {
	out := `{"object":"chat.completion"}`
	if a.id != "" {
		out, _ = sjson.Set(out, "id", a.id)
	}
	if a.model != "" {
		out, _ = sjson.Set(out, "model", a.model)
	}
	if a.createdRaw != "" {
		out, _ = sjson.SetRaw(out, "created", a.createdRaw)
	}
	role := a.role
	if role == "" {
		role = "assistant"
	}
	out, _ = sjson.Set(out, "choices.0.index", 0)
	out, _ = sjson.Set(out, "choices.0.message.role", role)
	out, _ = sjson.Set(out, "choices.0.message.content", a.content.String())
	if a.finishReason != "" {
		out, _ = sjson.Set(out, "choices.0.finish_reason", a.finishReason)
	}
	return out
}

func (a *Accumulator) conversationResponse() string {
	out := `{"object":"conversation.response"}`
	if a.conversationID != "" {
		out, _ = sjson.Set(out, "conversation_id", a.conversationID)
	}
	out, _ = sjson.Set(out, "outputs.0.type", "message.output")
	out, _ = sjson.Set(out, "outputs.0.role", "assistant")
	out, _ = sjson.Set(out, "outputs.0.content", a.content.String())
	return out
}

func (a *Accumulator) fallbackResponse() string {
	out, _ := sjson.Set(`{}`, "content", a.content.String())
	return out
}

// Response is the result of eagerly accumulating a full chunk sequence. It
// mirrors the JSON shape of the equivalent non-streaming API response and,
// like Chunk, exposes the document dynamically.
type Response struct {
	raw gjson.Result
}

// ResponseFromJSON wraps an already materialized response body, such as the
// outcome of a non-streaming request, in the same type Accumulate produces.
func ResponseFromJSON(data []byte) *Response {
	return &Response{raw: gjson.ParseBytes(data)}
}

// Raw exposes the underlying gjson document.
func (r *Response) Raw() gjson.Result { return r.raw }

// JSON returns the response's JSON text.
func (r *Response) JSON() string { return r.raw.Raw }

// Content returns the assistant text of the response regardless of shape:
// choices[0].message.content for chat, the first message.output's content
// for conversation, and the top-level content field for the degraded
// unknown-format shape. Absence yields the empty string.
func (r *Response) Content() string {
	if v := r.raw.Get("choices.0.message.content"); v.Type == gjson.String {
		return v.String()
	}
	for _, output := range r.raw.Get("outputs").Array() {
		if output.Get("type").String() == "message.output" {
			return output.Get("content").String()
		}
	}
	return r.raw.Get("content").String()
}

// Usage returns the usage object when the response carries one.
func (r *Response) Usage() (gjson.Result, bool) {
	u := r.raw.Get("usage")
	if u.IsObject() {
		return u, true
	}
	return gjson.Result{}, false
}

// FinishReason returns choices[0].finish_reason when present.
func (r *Response) FinishReason() string {
	return r.raw.Get("choices.0.finish_reason").String()
}
