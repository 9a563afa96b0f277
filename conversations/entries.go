package conversations

import (
	"github.com/go-openapi/strfmt"
)

// Recognized entry types.
const (
	EntryTypeMessageInput   = "message.input"
	EntryTypeMessageOutput  = "message.output"
	EntryTypeToolCall       = "tool.call"
	EntryTypeFunctionResult = "function.result"
)

// Entry is one turn record in a conversation history. Entries are produced
// by the remote system and immutable once read; helpers in this package only
// filter and window them.
type Entry struct {
	Type       string          `json:"type"`
	ID         string          `json:"id,omitempty"`
	Role       string          `json:"role,omitempty"`
	Content    string          `json:"content,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
	Result     string          `json:"result,omitempty"`
	Name       string          `json:"name,omitempty"`
	Arguments  string          `json:"arguments,omitempty"`
	CreatedAt  strfmt.DateTime `json:"created_at,omitempty"`
}

// Message is the {role, content} projection of a message entry, the shape
// chat completion requests accept.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// EntriesToMessages keeps only message.input and message.output entries and
// projects each to {role, content}, preserving relative order. Tool calls
// and function results are dropped; they have no chat-message equivalent.
func EntriesToMessages(entries []Entry) []Message {
	messages := make([]Message, 0, len(entries))
	for _, e := range entries {
		if e.Type == EntryTypeMessageInput || e.Type == EntryTypeMessageOutput {
			messages = append(messages, Message{Role: e.Role, Content: e.Content})
		}
	}
	return messages
}

// LastEntries returns the final n entries, or the whole list when n exceeds
// its length. n must be positive; a non-positive n yields nil.
func LastEntries(entries []Entry, n int) []Entry {
	if n <= 0 {
		return nil
	}
	if n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}

// LastMessages returns the final n messages, with the same bounds policy as
// LastEntries.
func LastMessages(messages []Message, n int) []Message {
	if n <= 0 {
		return nil
	}
	if n >= len(messages) {
		return messages
	}
	return messages[len(messages)-n:]
}

// SlidingWindow takes the final n entries, then drops leading entries until
// a message.input is reached, keeping that entry. The result therefore
// always starts on a user turn boundary; when the windowed tail contains no
// message.input at all the result is empty.
func SlidingWindow(entries []Entry, n int) []Entry {
	window := LastEntries(entries, n)
	for i, e := range window {
		if e.Type == EntryTypeMessageInput {
			return window[i:]
		}
	}
	return []Entry{}
}

// EntryIDs returns the id of every entry, in order. Entries without an id
// contribute an empty string, keeping positions aligned with the input.
func EntryIDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// FindEntry returns the first entry with the given id, or nil.
func FindEntry(entries []Entry, id string) *Entry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// LastOutputEntry returns the most recent message.output entry, or nil.
func LastOutputEntry(entries []Entry) *Entry {
	return lastOfType(entries, EntryTypeMessageOutput)
}

// LastInputEntry returns the most recent message.input entry, or nil.
func LastInputEntry(entries []Entry) *Entry {
	return lastOfType(entries, EntryTypeMessageInput)
}

func lastOfType(entries []Entry, entryType string) *Entry {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Type == entryType {
			return &entries[i]
		}
	}
	return nil
}

// EntriesByType returns every entry of the given type, preserving order.
func EntriesByType(entries []Entry, entryType string) []Entry {
	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Type == entryType {
			matched = append(matched, e)
		}
	}
	return matched
}
