package hnsw

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/coder/hnsw"
	"github.com/google/uuid"

	"github.com/egobogo/freshagent/internal/evidence"
)

// HNSWStore indexes evidence entries in a coder/hnsw graph and retrieves
// the most similar ones by cosine similarity.
type HNSWStore struct {
	graph    *hnsw.Graph[string]
	embedder evidence.EmbeddingProvider
	dim      int
	entries  map[string]evidence.Entry
	mu       sync.Mutex
}

// New creates an HNSWStore. The embedding dimension is fixed after the first
// Remember call when dim is zero.
func New(embedder evidence.EmbeddingProvider, dim int) *HNSWStore {
	return &HNSWStore{
		graph:    hnsw.NewGraph[string](),
		embedder: embedder,
		dim:      dim,
		entries:  make(map[string]evidence.Entry),
	}
}

// Remember embeds the entry if needed and adds it to the graph. A fresh
// uuid is assigned when the entry has no ID.
func (s *HNSWStore) Remember(ctx context.Context, e evidence.Entry) (evidence.Entry, error) {
	if len(e.Embedding) == 0 {
		emb, err := s.embedder.ComputeEmbedding(ctx, e.Content)
		if err != nil {
			return evidence.Entry{}, err
		}
		e.Embedding = emb
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dim == 0 {
		s.dim = len(e.Embedding)
	}
	if len(e.Embedding) != s.dim {
		return evidence.Entry{}, errors.New("embedding dimension mismatch")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	s.graph.Add(hnsw.MakeNode(e.ID, float32Slice(e.Embedding)))
	s.entries[e.ID] = e
	return e, nil
}

// Search embeds the query and returns up to k entries with cosine similarity
// at or above threshold, most similar first.
func (s *HNSWStore) Search(ctx context.Context, query string, k int, threshold float64) ([]evidence.Entry, error) {
	queryEmb, err := s.embedder.ComputeEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return nil, nil
	}
	if len(queryEmb) != s.dim {
		return nil, errors.New("query embedding dimension mismatch")
	}

	q := float32Slice(queryEmb)
	neighbors := s.graph.Search(q, k)

	var matches []evidence.Entry
	for _, node := range neighbors {
		sim := cosineSimilarity(q, node.Value)
		if sim >= threshold {
			if e, ok := s.entries[node.Key]; ok {
				matches = append(matches, e)
			}
		}
	}
	return matches, nil
}

// Len reports how many entries are indexed.
func (s *HNSWStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func float32Slice(input []float64) []float32 {
	out := make([]float32, len(input))
	for i, v := range input {
		out[i] = float32(v)
	}
	return out
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := 0; i < len(a); i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
