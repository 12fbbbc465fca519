package hnsw

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egobogo/freshagent/internal/evidence"
)

// fakeEmbedder maps known texts onto fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeEmbedder) ComputeEmbedding(_ context.Context, text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0, 1}, nil
}

func TestRememberAssignsID(t *testing.T) {
	store := New(&fakeEmbedder{}, 0)
	e, err := store.Remember(context.Background(), evidence.Entry{Content: "fact"})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Len(t, e.Embedding, 3)
	assert.Equal(t, 1, store.Len())
}

func TestRememberDimensionMismatch(t *testing.T) {
	store := New(&fakeEmbedder{}, 0)
	_, err := store.Remember(context.Background(), evidence.Entry{
		Content:   "a",
		Embedding: []float64{1, 0, 0},
	})
	require.NoError(t, err)

	_, err = store.Remember(context.Background(), evidence.Entry{
		Content:   "b",
		Embedding: []float64{1, 0},
	})
	assert.Error(t, err)
}

func TestSearchRanksBySimilarity(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"cats":  {1, 0, 0},
		"dogs":  {0.9, 0.1, 0},
		"stars": {0, 1, 0},
		"query": {1, 0, 0},
	}}
	store := New(emb, 0)
	for _, content := range []string{"cats", "dogs", "stars"} {
		_, err := store.Remember(context.Background(), evidence.Entry{Content: content})
		require.NoError(t, err)
	}

	matches, err := store.Search(context.Background(), "query", 3, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "cats", matches[0].Content)
	assert.Equal(t, "dogs", matches[1].Content)
}

func TestSearchEmptyStore(t *testing.T) {
	store := New(&fakeEmbedder{}, 0)
	matches, err := store.Search(context.Background(), "anything", 5, 0.0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchThresholdFiltersAll(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"fact":  {1, 0, 0},
		"query": {0, 1, 0},
	}}
	store := New(emb, 0)
	_, err := store.Remember(context.Background(), evidence.Entry{Content: "fact"})
	require.NoError(t, err)

	matches, err := store.Search(context.Background(), "query", 5, 0.5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestEmbedderErrorPropagates(t *testing.T) {
	store := New(&fakeEmbedder{err: errors.New("api down")}, 0)
	_, err := store.Remember(context.Background(), evidence.Entry{Content: "x"})
	assert.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 0}))
}
