// Package conversations provides pure helpers over conversation histories:
// accessors that read well-known keys out of response-shaped JSON, entry
// navigation and windowing for multi-turn context management, and
// constructors for the input-entry shapes accepted by the conversation
// append API.
//
// Every accessor is total: a missing or malformed container yields
// emptiness, never an error. The one exception is BuildInputs, which rejects
// caller input it cannot shape into an entry — silently coercing an
// unexpected element would corrupt a conversation history.
//
// SlidingWindow enforces that a truncated context always starts on a user
// turn boundary: the returned window either begins with a message.input
// entry or is empty. Feeding a model a window that opens mid-turn (say, on
// a dangling tool result) produces incoherent completions.
package conversations
