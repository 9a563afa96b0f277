package rivulet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rivulet-ai/rivulet/conversations"
	"github.com/rivulet-ai/rivulet/stream"
	"github.com/tidwall/gjson"
)

// ConversationRequest starts a conversation. Inputs accepts strings (shaped
// into user message entries), conversations.Entry values, and already-shaped
// maps; anything else is rejected before the request is sent.
type ConversationRequest struct {
	Model        string `json:"model,omitempty"`
	AgentID      string `json:"agent_id,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Inputs       []any  `json:"inputs"`
	Stream       bool   `json:"stream,omitempty"`
}

func (r *ConversationRequest) shape() error {
	shaped, err := conversations.BuildInputs(r.Inputs)
	if err != nil {
		return err
	}
	r.Inputs = shaped
	return nil
}

// StartConversation opens a new conversation and returns the eager
// conversation response. Use the conversations package accessors to read
// its outputs, entries, and usage.
func (c *Client) StartConversation(ctx context.Context, req ConversationRequest) (gjson.Result, error) {
	if err := req.shape(); err != nil {
		return gjson.Result{}, err
	}
	req.Stream = false
	return c.do(ctx, http.MethodPost, "/conversations", req)
}

// StartConversationStream opens a new conversation with a streamed response
// of conversation-style chunks.
func (c *Client) StartConversationStream(ctx context.Context, req ConversationRequest) (*stream.Stream, error) {
	if err := req.shape(); err != nil {
		return nil, err
	}
	req.Stream = true
	return c.streamRequest(ctx, "/conversations", req)
}

type appendRequest struct {
	Inputs []any `json:"inputs"`
	Stream bool  `json:"stream,omitempty"`
}

// AppendConversation appends inputs to an existing conversation and returns
// the eager response. Inputs follow the same shaping rules as
// StartConversation.
func (c *Client) AppendConversation(ctx context.Context, conversationID string, inputs []any) (gjson.Result, error) {
	shaped, err := conversations.BuildInputs(inputs)
	if err != nil {
		return gjson.Result{}, err
	}
	return c.do(ctx, http.MethodPost, conversationPath(conversationID), appendRequest{Inputs: shaped})
}

// AppendConversationStream appends inputs to an existing conversation with a
// streamed response.
func (c *Client) AppendConversationStream(ctx context.Context, conversationID string, inputs []any) (*stream.Stream, error) {
	shaped, err := conversations.BuildInputs(inputs)
	if err != nil {
		return nil, err
	}
	return c.streamRequest(ctx, conversationPath(conversationID), appendRequest{Inputs: shaped, Stream: true})
}

// GetConversationEntries fetches the full entry history of a conversation.
func (c *Client) GetConversationEntries(ctx context.Context, conversationID string) (gjson.Result, error) {
	return c.do(ctx, http.MethodGet, conversationPath(conversationID)+"/entries", nil)
}

// GetConversationMessages fetches the message-level view of a conversation.
func (c *Client) GetConversationMessages(ctx context.Context, conversationID string) (gjson.Result, error) {
	return c.do(ctx, http.MethodGet, conversationPath(conversationID)+"/messages", nil)
}

func conversationPath(conversationID string) string {
	return fmt.Sprintf("/conversations/%s", url.PathEscape(conversationID))
}
