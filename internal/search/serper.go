package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serperEndpoint = "https://google.serper.dev/search"

// Serper queries the Serper.dev API and maps its response onto the SerpAPI
// key layout so downstream formatters see one schema for both providers:
//
//	organic        -> organic_results (displayed_link backfilled)
//	answerBox      -> answer_box
//	knowledgeGraph -> knowledge_graph
//	peopleAlsoAsk  -> related_questions + questions_and_answers
//	news, images   -> pass through
type Serper struct {
	APIKey   string
	Endpoint string
	opts     Options
	client   *http.Client
	logger   zerolog.Logger
}

// NewSerper constructs a Serper provider.
func NewSerper(apiKey string, opts Options) *Serper {
	return &Serper{
		APIKey:   apiKey,
		Endpoint: serperEndpoint,
		opts:     opts,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   log.With().Str("component", "search").Str("provider", "serper").Logger(),
	}
}

// Search executes a query and returns normalized results.
func (s *Serper) Search(ctx context.Context, query string) (*Results, error) {
	if s.APIKey == "" {
		return nil, errors.New("serper: API key is missing")
	}

	payload := map[string]string{
		"q":  query,
		"gl": s.opts.CountryCode,
		"hl": s.opts.LanguageCode,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serper: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("serper: failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("serper: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper: HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	raw := map[string]interface{}{}
	if len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, &raw); err != nil {
			return nil, fmt.Errorf("serper: failed to decode response: %w", err)
		}
	}
	s.logger.Debug().Str("query", query).Int("bytes", len(respBytes)).Msg("search completed")
	return normalizeSerper(raw), nil
}

func normalizeSerper(raw map[string]interface{}) *Results {
	res := &Results{
		OrganicResults:      []map[string]interface{}{},
		AnswerBox:           mapField(raw, "answerBox"),
		KnowledgeGraph:      mapField(raw, "knowledgeGraph"),
		RelatedQuestions:    []map[string]interface{}{},
		QuestionsAndAnswers: []map[string]interface{}{},
		News:                sliceField(raw, "news"),
		Images:              sliceField(raw, "images"),
		Raw:                 raw,
	}

	// Serper organic entries carry "source" where SerpAPI has
	// "displayed_link"; fall back to the link host when both are absent.
	for _, item := range sliceField(raw, "organic") {
		out := make(map[string]interface{}, len(item)+1)
		for k, v := range item {
			out[k] = v
		}
		displayed := stringField(item, "source")
		if displayed == "" {
			displayed = stringField(item, "displayed_link")
		}
		if displayed == "" {
			displayed = ExtractHost(stringField(item, "link"))
		}
		if displayed != "" {
			out["displayed_link"] = displayed
		}
		res.OrganicResults = append(res.OrganicResults, out)
	}

	// peopleAlsoAsk feeds both related-question and Q&A views.
	for _, x := range sliceField(raw, "peopleAlsoAsk") {
		snippet := stringField(x, "snippet")
		if snippet == "" {
			snippet = stringField(x, "answer")
		}
		displayed := stringField(x, "source")
		if displayed == "" {
			displayed = stringField(x, "link")
		}
		res.RelatedQuestions = append(res.RelatedQuestions, map[string]interface{}{
			"question":       x["question"],
			"snippet":        snippet,
			"displayed_link": displayed,
		})

		answer := stringField(x, "answer")
		if answer == "" {
			answer = stringField(x, "snippet")
		}
		link := stringField(x, "link")
		if link == "" {
			link = stringField(x, "source")
		}
		res.QuestionsAndAnswers = append(res.QuestionsAndAnswers, map[string]interface{}{
			"question": x["question"],
			"answer":   answer,
			"link":     link,
		})
	}

	return res
}

// mapField fetches an object-valued key, returning an empty map when absent
// so downstream lookups never hit nil.
func mapField(raw map[string]interface{}, key string) map[string]interface{} {
	if v, ok := raw[key]; ok {
		if m, ok := v.(map[string]interface{}); ok {
			return m
		}
	}
	return map[string]interface{}{}
}

// sliceField fetches an array-of-objects key, skipping non-object entries.
func sliceField(raw map[string]interface{}, key string) []map[string]interface{} {
	out := []map[string]interface{}{}
	if v, ok := raw[key]; ok {
		if arr, ok := v.([]interface{}); ok {
			for _, e := range arr {
				if m, ok := e.(map[string]interface{}); ok {
					out = append(out, m)
				}
			}
		}
	}
	return out
}
