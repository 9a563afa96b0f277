package conversations

import (
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// ExtractContent returns the assistant text of a conversation response: the
// content of the first message.output in its outputs list, or "" when the
// response has none.
func ExtractContent(response gjson.Result) string {
	for _, output := range response.Get("outputs").Array() {
		if output.Get("type").String() == EntryTypeMessageOutput {
			return output.Get("content").String()
		}
	}
	return ""
}

// ExtractOutputs decodes the outputs list of a conversation response. A
// missing or malformed list yields an empty slice.
func ExtractOutputs(response gjson.Result) []Entry {
	return decodeEntries(response.Get("outputs"))
}

// ExtractConversationID returns the conversation_id field, or "".
func ExtractConversationID(response gjson.Result) string {
	return response.Get("conversation_id").String()
}

// ExtractUsage returns the usage object of a response when present.
func ExtractUsage(response gjson.Result) (gjson.Result, bool) {
	u := response.Get("usage")
	if u.IsObject() {
		return u, true
	}
	return gjson.Result{}, false
}

// ExtractEntries decodes the entries list of a conversation history
// response. A missing or malformed list yields an empty slice.
func ExtractEntries(history gjson.Result) []Entry {
	return decodeEntries(history.Get("entries"))
}

// ExtractMessages decodes the messages list of a response into {role,
// content} records. A missing or malformed list yields an empty slice.
func ExtractMessages(response gjson.Result) []Message {
	raw := response.Get("messages")
	if !raw.IsArray() {
		return []Message{}
	}
	var messages []Message
	if err := json.Unmarshal([]byte(raw.Raw), &messages); err != nil {
		return []Message{}
	}
	return messages
}

// HistoryToChatMessages shapes a conversation history response into the
// chat-message list a completion request accepts.
func HistoryToChatMessages(history gjson.Result) []Message {
	return EntriesToMessages(ExtractEntries(history))
}

// ResponseToMessage wraps a conversation response's assistant text as an
// assistant message, or nil when the response carries no content.
func ResponseToMessage(response gjson.Result) *Message {
	content := ExtractContent(response)
	if content == "" {
		return nil
	}
	return &Message{Role: "assistant", Content: content}
}

// OutputsByType returns the outputs of a response matching the given entry
// type.
func OutputsByType(response gjson.Result, entryType string) []Entry {
	return EntriesByType(ExtractOutputs(response), entryType)
}

func decodeEntries(raw gjson.Result) []Entry {
	if !raw.IsArray() {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw.Raw), &entries); err != nil {
		return []Entry{}
	}
	return entries
}
