package rivulet

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

// EmbeddingsRequest holds the parameters of an embeddings call.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// Embeddings computes embedding vectors for the given inputs. The response
// carries a data[].embedding list; use the embeddings package to extract and
// rank the vectors. Embeddings are deterministic, so responses are cached.
func (c *Client) Embeddings(ctx context.Context, req EmbeddingsRequest) (gjson.Result, error) {
	return c.do(ctx, http.MethodPost, "/embeddings", req)
}
