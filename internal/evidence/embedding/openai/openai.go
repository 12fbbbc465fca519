package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAIEmbeddingProvider computes embeddings through the OpenAI embeddings
// endpoint with a plain HTTP client.
type OpenAIEmbeddingProvider struct {
	apiKey    string
	modelName string
	endpoint  string
	client    *http.Client
}

// NewOpenAIEmbeddingProvider creates a new OpenAIEmbeddingProvider.
func NewOpenAIEmbeddingProvider(apiKey, modelName string) *OpenAIEmbeddingProvider {
	if modelName == "" {
		modelName = "text-embedding-3-small"
	}
	return &OpenAIEmbeddingProvider{
		apiKey:    apiKey,
		modelName: modelName,
		endpoint:  "https://api.openai.com/v1/embeddings",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetEndpoint overrides the API endpoint, mainly for tests.
func (p *OpenAIEmbeddingProvider) SetEndpoint(url string) {
	p.endpoint = url
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// ComputeEmbedding calls the OpenAI API and returns the embedding vector for
// the provided text.
func (p *OpenAIEmbeddingProvider) ComputeEmbedding(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(embeddingRequest{Model: p.modelName, Input: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read API response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(respBytes, &embResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal API response: %w", err)
	}
	if len(embResp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}
	return embResp.Data[0].Embedding, nil
}
