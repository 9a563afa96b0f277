package conversations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHistory() []Entry {
	return []Entry{
		{Type: EntryTypeMessageInput, ID: "in-1", Role: "user", Content: "What's the weather?"},
		{Type: EntryTypeToolCall, ID: "tc-1", Name: "weather", Arguments: `{"city":"Paris"}`},
		{Type: EntryTypeFunctionResult, ID: "fr-1", ToolCallID: "tc-1", Result: "18C, sunny"},
		{Type: EntryTypeMessageOutput, ID: "out-1", Role: "assistant", Content: "It's sunny in Paris."},
		{Type: EntryTypeMessageInput, ID: "in-2", Role: "user", Content: "And tomorrow?"},
		{Type: EntryTypeMessageOutput, ID: "out-2", Role: "assistant", Content: "Also sunny."},
	}
}

func TestEntriesToMessages(t *testing.T) {
	messages := EntriesToMessages(sampleHistory())
	require.Len(t, messages, 4, "tool calls and function results are dropped")
	assert.Equal(t, Message{Role: "user", Content: "What's the weather?"}, messages[0])
	assert.Equal(t, Message{Role: "assistant", Content: "It's sunny in Paris."}, messages[1])
	assert.Equal(t, Message{Role: "user", Content: "And tomorrow?"}, messages[2])
	assert.Equal(t, Message{Role: "assistant", Content: "Also sunny."}, messages[3])

	assert.Empty(t, EntriesToMessages(nil))
}

func TestLastEntries(t *testing.T) {
	entries := sampleHistory()

	assert.Len(t, LastEntries(entries, 2), 2)
	assert.Equal(t, "in-2", LastEntries(entries, 2)[0].ID)
	assert.Equal(t, entries, LastEntries(entries, 100), "n beyond length returns the whole list")
	assert.Nil(t, LastEntries(entries, 0))
	assert.Nil(t, LastEntries(entries, -3))
}

func TestLastMessages(t *testing.T) {
	messages := []Message{{Role: "user", Content: "a"}, {Role: "assistant", Content: "b"}, {Role: "user", Content: "c"}}
	assert.Equal(t, messages[2:], LastMessages(messages, 1))
	assert.Equal(t, messages, LastMessages(messages, 5))
	assert.Nil(t, LastMessages(messages, 0))
}

func TestSlidingWindow(t *testing.T) {
	entries := sampleHistory()

	window := SlidingWindow(entries, 4)
	require.NotEmpty(t, window)
	assert.Equal(t, EntryTypeMessageInput, window[0].Type, "a window always opens on a user turn")
	assert.Equal(t, "in-2", window[0].ID)
	assert.Len(t, window, 2)

	full := SlidingWindow(entries, 100)
	assert.Equal(t, entries, full, "the full history already starts on a user turn")
}

func TestSlidingWindow_NoInputInTail(t *testing.T) {
	entries := []Entry{
		{Type: EntryTypeMessageOutput, ID: "o1"},
		{Type: EntryTypeMessageOutput, ID: "o2"},
	}
	assert.Empty(t, SlidingWindow(entries, 2))

	// tail of a longer history that windows past every input
	mixed := sampleHistory()
	window := SlidingWindow(mixed, 1)
	assert.Empty(t, window, "a tail holding only an output yields nothing")
}

func TestEntryIDs(t *testing.T) {
	ids := EntryIDs(sampleHistory())
	assert.Equal(t, []string{"in-1", "tc-1", "fr-1", "out-1", "in-2", "out-2"}, ids)
	assert.Empty(t, EntryIDs(nil))
}

func TestFindEntry(t *testing.T) {
	entry := FindEntry(sampleHistory(), "fr-1")
	require.NotNil(t, entry)
	assert.Equal(t, EntryTypeFunctionResult, entry.Type)
	assert.Equal(t, "18C, sunny", entry.Result)

	assert.Nil(t, FindEntry(sampleHistory(), "missing"))
}

func TestLastOutputAndInputEntries(t *testing.T) {
	out := LastOutputEntry(sampleHistory())
	require.NotNil(t, out)
	assert.Equal(t, "out-2", out.ID)

	in := LastInputEntry(sampleHistory())
	require.NotNil(t, in)
	assert.Equal(t, "in-2", in.ID)

	assert.Nil(t, LastOutputEntry(nil))
	assert.Nil(t, LastInputEntry([]Entry{{Type: EntryTypeMessageOutput}}))
}

func TestEntriesByType(t *testing.T) {
	inputs := EntriesByType(sampleHistory(), EntryTypeMessageInput)
	require.Len(t, inputs, 2)
	assert.Equal(t, "in-1", inputs[0].ID)
	assert.Equal(t, "in-2", inputs[1].ID)

	assert.Empty(t, EntriesByType(sampleHistory(), "nonexistent.type"))
}
