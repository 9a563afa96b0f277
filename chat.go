package rivulet

import (
	"context"
	"net/http"

	"github.com/rivulet-ai/rivulet/stream"
)

// ChatMessage is one turn of a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest holds the parameters of a chat completion call. Stream is set
// by the client according to the method used; callers never toggle it.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

// ChatCompletion performs an eager chat completion and returns the fully
// materialized response.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (*stream.Response, error) {
	req.Stream = false
	result, err := c.do(ctx, http.MethodPost, "/chat/completions", req)
	if err != nil {
		return nil, err
	}
	return stream.ResponseFromJSON([]byte(result.Raw)), nil
}

// ChatCompletionStream performs a streaming chat completion. The returned
// stream yields chat-style chunks; the caller owns it and must Close it (or
// exhaust Chunks, which closes on completion).
func (c *Client) ChatCompletionStream(ctx context.Context, req ChatRequest) (*stream.Stream, error) {
	req.Stream = true
	return c.streamRequest(ctx, "/chat/completions", req)
}
