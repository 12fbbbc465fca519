package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/egobogo/freshagent/internal/freshprompt"
	"github.com/egobogo/freshagent/internal/search"
)

// Evidence budget for in-loop tool searches. Smaller than the one-shot
// baseline budget so reflections stay within the round token limit.
var googleLimits = freshprompt.Limits{Organic: 5, Related: 3, QA: 3, Evidences: 6}

// GoogleArgs are the arguments of the google tool.
type GoogleArgs struct {
	Question string `json:"question" jsonschema:"required,description=The search query to run."`
	Provider string `json:"provider,omitempty" jsonschema:"enum=serper,enum=serpapi,description=Search provider to use."`
}

// apiKeyFor maps a provider name onto its environment variable.
func apiKeyFor(provider string) string {
	switch provider {
	case "serpapi":
		return os.Getenv("SERPAPI_API_KEY")
	default:
		return os.Getenv("SERPER_API_KEY")
	}
}

// NewGoogleTool returns the web-search tool: it queries the configured
// provider and renders the normalized results as a FreshPrompt evidence
// block. defaultProvider is used when the model omits one.
func NewGoogleTool(defaultProvider string) Tool {
	return Tool{
		Name:        "google",
		Description: "Search the web and return a FreshPrompt-style evidence block.",
		Parameters:  GoogleArgs{},
		Func: func(ctx context.Context, raw json.RawMessage) (map[string]interface{}, error) {
			var args GoogleArgs
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &args); err != nil {
					return nil, fmt.Errorf("invalid google arguments: %w", err)
				}
			}
			provider := args.Provider
			if provider == "" {
				provider = defaultProvider
			}

			client, err := search.New(provider, apiKeyFor(provider), search.DefaultOptions())
			if err != nil {
				return nil, err
			}
			results, err := client.Search(ctx, args.Question)
			if err != nil {
				return nil, err
			}

			prompt := freshprompt.Format(args.Question, results, freshprompt.AgentFillSuffix, googleLimits)
			return map[string]interface{}{
				"ok":       true,
				"question": args.Question,
				"prompt":   prompt,
			}, nil
		},
	}
}
