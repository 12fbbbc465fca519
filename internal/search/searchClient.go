package search

import (
	"context"
	"fmt"
	"strings"
)

// Results is the provider-independent search result schema. Field names
// follow the SerpAPI layout so downstream formatters can use a consistent
// shape regardless of which provider answered. Individual items stay as
// loose maps because providers attach heterogeneous extras (rich snippets,
// tables, population blocks) that the evidence formatter inspects lazily.
type Results struct {
	OrganicResults      []map[string]interface{} `json:"organic_results"`
	AnswerBox           map[string]interface{}   `json:"answer_box"`
	KnowledgeGraph      map[string]interface{}   `json:"knowledge_graph"`
	RelatedQuestions    []map[string]interface{} `json:"related_questions"`
	QuestionsAndAnswers []map[string]interface{} `json:"questions_and_answers"`
	News                []map[string]interface{} `json:"news"`
	Images              []map[string]interface{} `json:"images"`
	Raw                 map[string]interface{}   `json:"-"`
}

// Client is a unified search interface over web-search providers.
type Client interface {
	Search(ctx context.Context, query string) (*Results, error)
}

// Options carries the provider-independent query options.
type Options struct {
	CountryCode  string // gl, e.g. "us"
	LanguageCode string // hl, e.g. "en"
}

// DefaultOptions returns the option set used when none are supplied.
func DefaultOptions() Options {
	return Options{CountryCode: "us", LanguageCode: "en"}
}

// New selects a provider by name and constructs it. An empty name defaults
// to serper.
func New(provider, apiKey string, opts Options) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "serper":
		return NewSerper(apiKey, opts), nil
	case "serpapi":
		return NewSerpAPI(apiKey, opts), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", provider)
	}
}

// ExtractHost returns the bare host portion of a URL-like string, without
// scheme or leading www.
func ExtractHost(link string) string {
	s := strings.TrimSpace(link)
	if s == "" {
		return ""
	}
	if idx := strings.Index(s, "//"); idx >= 0 {
		s = s[idx+2:]
	}
	s = strings.TrimPrefix(s, "www.")
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		s = s[:idx]
	}
	return s
}

// stringField fetches a string-valued key from a loose result map.
func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
