package conversations

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by BuildInputs when an element can be shaped
// into neither a message entry nor passed through as one.
var ErrInvalidArgument = errors.New("invalid argument")

// BuildEntryInput constructs a message.input entry for the conversation
// append API.
func BuildEntryInput(role, content string) Entry {
	return Entry{
		Type:    EntryTypeMessageInput,
		Role:    role,
		Content: content,
	}
}

// BuildFunctionResultInput constructs a function.result entry answering a
// prior tool call.
func BuildFunctionResultInput(toolCallID, result string) Entry {
	return Entry{
		Type:       EntryTypeFunctionResult,
		ToolCallID: toolCallID,
		Result:     result,
	}
}

// BuildInputs shapes a mixed list into the inputs accepted by the
// conversation append API: a string becomes a user message.input entry; an
// Entry or an already-shaped map passes through unchanged. Any other element
// fails, naming the offending value — this is the one caller boundary where
// malformed input must be rejected rather than coerced.
func BuildInputs(inputs []any) ([]any, error) {
	shaped := make([]any, len(inputs))
	for i, input := range inputs {
		switch v := input.(type) {
		case string:
			shaped[i] = BuildEntryInput("user", v)
		case Entry:
			shaped[i] = v
		case *Entry:
			shaped[i] = *v
		case map[string]any:
			shaped[i] = v
		default:
			return nil, fmt.Errorf("%w: conversation input %d must be a string, Entry, or map, got %v (%T)", ErrInvalidArgument, i, v, v)
		}
	}
	return shaped, nil
}
