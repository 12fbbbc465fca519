package evidence

import "context"

// Entry is one stored evidence block gathered during an agent run.
type Entry struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`  // tool that produced the block
	Content   string    `json:"content"` // rendered evidence text
	Embedding []float64 `json:"embedding,omitempty"`
}

// EmbeddingProvider computes a vector embedding for a text.
type EmbeddingProvider interface {
	ComputeEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Store indexes evidence entries and retrieves the ones most relevant to a
// query. Implementations set Entry.ID when it is empty.
type Store interface {
	Remember(ctx context.Context, e Entry) (Entry, error)
	// Search returns up to k entries whose similarity to the query text is
	// at or above threshold, most similar first.
	Search(ctx context.Context, query string, k int, threshold float64) ([]Entry, error)
}
