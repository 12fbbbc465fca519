package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPI queries serpapi.com directly. Its response already uses the target
// schema; normalization only guarantees that every expected key exists and
// maps news_results/images_results onto news/images.
type SerpAPI struct {
	APIKey   string
	Endpoint string
	opts     Options
	client   *http.Client
	logger   zerolog.Logger
}

// NewSerpAPI constructs a SerpAPI provider.
func NewSerpAPI(apiKey string, opts Options) *SerpAPI {
	return &SerpAPI{
		APIKey:   apiKey,
		Endpoint: serpAPIEndpoint,
		opts:     opts,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   log.With().Str("component", "search").Str("provider", "serpapi").Logger(),
	}
}

// Search executes a Google search through SerpAPI.
func (s *SerpAPI) Search(ctx context.Context, query string) (*Results, error) {
	if s.APIKey == "" {
		return nil, errors.New("serpapi: API key is missing")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", s.opts.LanguageCode)
	params.Set("gl", s.opts.CountryCode)
	params.Set("google_domain", "google.com")
	params.Set("api_key", s.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("serpapi: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi: HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	raw := map[string]interface{}{}
	if len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, &raw); err != nil {
			return nil, fmt.Errorf("serpapi: failed to decode response: %w", err)
		}
	}
	s.logger.Debug().Str("query", query).Int("bytes", len(respBytes)).Msg("search completed")

	news := sliceField(raw, "news_results")
	if len(news) == 0 {
		news = sliceField(raw, "news")
	}
	images := sliceField(raw, "images_results")
	if len(images) == 0 {
		images = sliceField(raw, "images")
	}

	return &Results{
		OrganicResults:      sliceField(raw, "organic_results"),
		AnswerBox:           mapField(raw, "answer_box"),
		KnowledgeGraph:      mapField(raw, "knowledge_graph"),
		RelatedQuestions:    sliceField(raw, "related_questions"),
		QuestionsAndAnswers: sliceField(raw, "questions_and_answers"),
		News:                news,
		Images:              images,
		Raw:                 raw,
	}, nil
}
