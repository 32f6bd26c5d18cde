package embeddings

import "context"

// Embedder turns text into fixed-length vectors for similarity search.
// Implementations must be deterministic for a fixed model version: embedding
// the same text twice yields the same vector.
type Embedder interface {
	// Embed generates embeddings for one or more texts, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Name returns the model identifier of this embedder.
	Name() string
}
