package rivulet

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fogfish/opts"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rivulet-ai/rivulet/pkg/backoff"
	"github.com/rivulet-ai/rivulet/pkg/cache"
	"github.com/rivulet-ai/rivulet/pkg/slogx"
	"github.com/rivulet-ai/rivulet/stream"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.rivulet.ai/v1"

const defaultMaxRetries = 3

// cacheablePaths is the fixed allow-list of POST endpoints whose responses
// are deterministic enough to cache. Streaming requests never consult or
// populate the cache.
var cacheablePaths = map[string]struct{}{
	"/embeddings":           {},
	"/classifications":      {},
	"/chat/classifications": {},
	"/moderations":          {},
	"/chat/moderations":     {},
	"/ocr":                  {},
}

// Option configures a Client at construction.
type Option = opts.Option[Client]

// Client talks to the remote API. Construct with New; the zero value is not
// usable.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	cacheTTL   time.Duration
	noCache    bool
	log        *slog.Logger

	responses *cache.Cache
}

var (
	// WithBaseURL overrides the API endpoint, e.g. for a proxy or test server.
	WithBaseURL = opts.ForName[Client, string]("baseURL")
	// WithAPIKey sets the bearer token sent with every request.
	WithAPIKey = opts.ForName[Client, string]("apiKey")
	// WithHTTPClient substitutes the underlying HTTP client.
	WithHTTPClient = opts.ForName[Client, *http.Client]("httpClient")
	// WithMaxRetries bounds retry attempts for transient failures.
	WithMaxRetries = opts.ForName[Client, int]("maxRetries")
	// WithCacheTTL sets the response cache entry lifetime.
	WithCacheTTL = opts.ForName[Client, time.Duration]("cacheTTL")
	// WithLogger sets the structured logger used by the client and streams.
	WithLogger = opts.ForName[Client, *slog.Logger]("log")
)

// WithCacheDisabled turns the response cache off entirely.
func WithCacheDisabled() Option {
	return opts.Type[Client](func(c *Client) error {
		c.noCache = true
		return nil
	})
}

// New creates a Client. Defaults: production base URL, three retries, five
// minute cache TTL, the process-default slog logger.
func New(options ...Option) (*Client, error) {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		maxRetries: defaultMaxRetries,
		cacheTTL:   cache.DefaultTTL,
		log:        slog.Default(),
	}
	if err := opts.Apply(c, options); err != nil {
		return nil, fmt.Errorf("failed to apply client options: %w", err)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	c.responses = cache.New(c.cacheTTL)
	return c, nil
}

// Cache exposes the response cache for invalidation and stats.
func (c *Client) Cache() *cache.Cache { return c.responses }

func (c *Client) cacheable(method, path string) bool {
	if c.noCache {
		return false
	}
	if method == http.MethodGet {
		return true
	}
	if method != http.MethodPost {
		return false
	}
	_, ok := cacheablePaths[path]
	return ok
}

func cacheKey(method, url string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return method + " " + url + " " + hex.EncodeToString(sum[:])
}

// do sends an eager request and returns the decoded response body. Cacheable
// requests are served from and written to the response cache; transient
// failures are retried with full-jitter backoff.
func (c *Client) do(ctx context.Context, method, path string, body any) (gjson.Result, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	url := c.baseURL + path
	var key string
	if c.cacheable(method, path) {
		key = cacheKey(method, url, payload)
		if cached, ok := c.responses.Get(key); ok {
			c.log.Debug("response cache hit", slog.String("path", path))
			return gjson.Parse(cached), nil
		}
	}

	for attempt := 0; ; attempt++ {
		result, retryable, err := c.roundTrip(ctx, method, url, payload)
		if err == nil {
			if key != "" {
				c.responses.Set(key, result.Raw)
			}
			return result, nil
		}
		if !retryable || attempt >= c.maxRetries {
			return gjson.Result{}, err
		}

		delay := backoff.Delay(attempt)
		c.log.Debug("retrying request",
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slogx.Error(err),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return gjson.Result{}, ctx.Err()
		}
	}
}

// roundTrip performs one attempt. The second return reports whether the
// failure is transient: connection errors and 408/429/5xx statuses are,
// everything else is not.
func (c *Client) roundTrip(ctx context.Context, method, url string, payload []byte) (gjson.Result, bool, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return gjson.Result{}, false, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return gjson.Result{}, false, ctx.Err()
		}
		return gjson.Result{}, true, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, true, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		return gjson.Result{}, backoff.Retryable(resp.StatusCode), apiErr
	}
	return gjson.ParseBytes(data), false, nil
}

// streamRequest sends a streaming request and adapts the response body into
// a Stream. Retries are disabled: a partially delivered SSE stream cannot be
// safely replayed. A non-2xx status is surfaced as an APIError before any
// chunk is produced.
func (c *Client) streamRequest(ctx context.Context, path string, body any) (*stream.Stream, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	return stream.NewStream(resp.Body, cancel, stream.WithStreamLogger(c.log)), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
