package rivulet

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

// ClassificationRequest holds the parameters of a raw-text classification or
// moderation call.
type ClassificationRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// ChatClassificationRequest holds the parameters of a chat-level
// classification or moderation call, where each input is a full message
// exchange.
type ChatClassificationRequest struct {
	Model string          `json:"model"`
	Input [][]ChatMessage `json:"input"`
}

// OCRDocument points the OCR endpoint at a document or image by URL.
type OCRDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// OCRRequest holds the parameters of an OCR call.
type OCRRequest struct {
	Model    string      `json:"model"`
	Document OCRDocument `json:"document"`
}

// Moderations scores raw inputs against the moderation model. Deterministic,
// so responses are cached.
func (c *Client) Moderations(ctx context.Context, req ClassificationRequest) (gjson.Result, error) {
	return c.do(ctx, http.MethodPost, "/moderations", req)
}

// ChatModerations scores full message exchanges against the moderation
// model.
func (c *Client) ChatModerations(ctx context.Context, req ChatClassificationRequest) (gjson.Result, error) {
	return c.do(ctx, http.MethodPost, "/chat/moderations", req)
}

// Classifications runs the classifier over raw inputs.
func (c *Client) Classifications(ctx context.Context, req ClassificationRequest) (gjson.Result, error) {
	return c.do(ctx, http.MethodPost, "/classifications", req)
}

// ChatClassifications runs the classifier over full message exchanges.
func (c *Client) ChatClassifications(ctx context.Context, req ChatClassificationRequest) (gjson.Result, error) {
	return c.do(ctx, http.MethodPost, "/chat/classifications", req)
}

// OCR extracts text from a document or image.
func (c *Client) OCR(ctx context.Context, req OCRRequest) (gjson.Result, error) {
	return c.do(ctx, http.MethodPost, "/ocr", req)
}
