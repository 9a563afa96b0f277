/*
Package rivulet is a client library for the Rivulet language-model API with a
streaming-first design: every completion request can be consumed either as a
fully materialized response or as a lazily decoded sequence of chunks, and
the same transforms and accumulation semantics apply to both the chat and
conversation wire shapes.

The package is organized around a small set of collaborators:

  - Client: builds and sends requests, with retry backoff for transient
    failures and a TTL response cache for deterministic endpoints
  - stream: the chunk model, lazy transforms, fan-in merge, and the SSE
    adapter that turns a live response body into a chunk sequence
  - embeddings: similarity math and vector extraction over embedding
    responses
  - conversations: entry navigation, context windowing, and input shaping
    for multi-turn conversations

# Basic Usage

	client, err := rivulet.New(rivulet.WithAPIKey(os.Getenv("RIVULET_API_KEY")))
	if err != nil {
		log.Fatal(err)
	}

	strm, err := client.ChatCompletionStream(ctx, rivulet.ChatRequest{
		Model:    "rivulet-large",
		Messages: []rivulet.ChatMessage{{Role: "user", Content: "Hello!"}},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer strm.Close()

	for chunk := range strm.Chunks() {
		if content, ok := chunk.Content(); ok {
			fmt.Print(content)
		}
	}

Eager callers skip the stream entirely:

	resp, err := client.ChatCompletion(ctx, req)
	fmt.Println(resp.Content())

Retries use exponential backoff with full jitter and are disabled for
streaming requests, since a partially delivered stream cannot be replayed.
Responses for GET requests and a fixed allow-list of deterministic POST
endpoints (embeddings, classifications, moderations, OCR) are cached with a
configurable TTL; streaming requests and error responses never populate the
cache.
*/
package rivulet
