// Package embeddings provides similarity math over embedding vectors and
// accessors for pulling raw vectors out of embedding API responses.
//
// The ranking functions tag each vector with its 0-based position in the
// input list, so callers can map scores back to whatever identity they keep
// alongside the vectors. Ties between equal scores preserve input order;
// that stability is implementation behavior, not an API contract.
//
// Invalid caller input (mismatched dimensions, a zero vector given to
// cosine similarity) fails with an error wrapping ErrInvalidArgument.
// Absent data (an empty candidate list, a response without embeddings) is
// reported as emptiness, never as an error.
package embeddings
