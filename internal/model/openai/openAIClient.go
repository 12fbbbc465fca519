package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	model "github.com/egobogo/freshagent/internal/model"
)

const (
	// systemPreamble is the concise system message used for plain Chat calls.
	systemPreamble = "You are a helpful assistant. Respond as concisely as possible."

	maxRetries = 3
)

// OpenAIClient implements the ModelClient interface against the OpenAI
// Chat Completions and legacy Completions endpoints.
type OpenAIClient struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int

	// BaseURL overrides the OpenAI API root, mainly for tests.
	BaseURL string

	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOpenAIClient creates a new OpenAIClient.
func NewOpenAIClient(apiKey, modelName string) *OpenAIClient {
	if modelName == "" {
		modelName = "gpt-4o"
	}
	return &OpenAIClient{
		APIKey:      apiKey,
		Model:       modelName,
		Temperature: 0.0,
		MaxTokens:   256,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		logger:      log.With().Str("component", "openai").Logger(),
	}
}

// useMaxCompletionTokens reports whether the model expects the
// max_completion_tokens field (gpt-5 family) instead of max_tokens.
func useMaxCompletionTokens(modelName string) bool {
	return strings.HasPrefix(strings.ToLower(modelName), "gpt-5")
}

func (c *OpenAIClient) url(path string) string {
	if c.BaseURL != "" {
		return c.BaseURL + path
	}
	return "https://api.openai.com" + path
}

// Chat sends a prompt through the Chat Completions API.
func (c *OpenAIClient) Chat(ctx context.Context, prompt string) (string, error) {
	req := model.ChatRequest{
		Model:       c.Model,
		Temperature: c.Temperature,
		Messages: []model.Message{
			{Role: "system", Content: systemPreamble},
			{Role: "user", Content: prompt},
		},
	}
	if useMaxCompletionTokens(c.Model) {
		req.MaxCompletionTokens = c.MaxTokens
	} else {
		req.MaxTokens = c.MaxTokens
	}

	var resp chatResponse
	if err := c.post(ctx, c.url("/v1/chat/completions"), req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned in chat response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Complete sends a prompt through the legacy Completions API.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := model.CompletionRequest{
		Model:       c.Model,
		Prompt:      prompt,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
	var resp completionResponse
	if err := c.post(ctx, c.url("/v1/completions"), req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned in completion response")
	}
	return resp.Choices[0].Text, nil
}

// Ask dispatches to Chat or Complete depending on chat.
func (c *OpenAIClient) Ask(ctx context.Context, prompt string, chat bool) (string, error) {
	if chat {
		return c.Chat(ctx, prompt)
	}
	return c.Complete(ctx, prompt)
}

// ChatMessages sends a structured conversation, optionally with tools, and
// returns the full assistant message including tool calls. When tools are
// provided the tool choice defaults to "auto".
func (c *OpenAIClient) ChatMessages(ctx context.Context, msgs []model.Message, tools []model.ToolSpec) (model.Message, error) {
	req := model.ChatRequest{
		Model:       c.Model,
		Temperature: c.Temperature,
		Messages:    msgs,
	}
	if useMaxCompletionTokens(c.Model) {
		req.MaxCompletionTokens = c.MaxTokens
	} else {
		req.MaxTokens = c.MaxTokens
	}
	if len(tools) > 0 {
		req.Tools = tools
		req.ToolChoice = "auto"
	}

	var resp chatResponse
	if err := c.post(ctx, c.url("/v1/chat/completions"), req, &resp); err != nil {
		return model.Message{}, err
	}
	if len(resp.Choices) == 0 {
		return model.Message{}, fmt.Errorf("no choices returned in chat response")
	}
	m := resp.Choices[0].Message
	m.Role = "assistant"
	return m, nil
}

// post marshals the payload, sends it with retries, and decodes the reply
// into out. Rate limits (429) and server errors (5xx) are retried with
// linear backoff: 1s, 2s, 3s. Other failures return immediately.
func (c *OpenAIClient) post(ctx context.Context, url string, payload interface{}, out interface{}) error {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
		if err != nil {
			return fmt.Errorf("failed to create HTTP request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send HTTP request: %w", err)
		}
		respBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(respBytes, out); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			sleep := time.Duration(attempt+1) * time.Second
			c.logger.Warn().
				Int("status", resp.StatusCode).
				Dur("sleep", sleep).
				Msg("transient API error, backing off")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleep):
			}
		default:
			return fmt.Errorf("OpenAI API returned status %d: %s", resp.StatusCode, string(respBytes))
		}
	}
	return fmt.Errorf("rate limit retries exceeded after %d attempts", maxRetries)
}

type chatResponse struct {
	Choices []struct {
		Message model.Message `json:"message"`
	} `json:"choices"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// SetModel sets the model.
func (c *OpenAIClient) SetModel(modelName string) {
	c.Model = modelName
}

// SetMaxTokens sets the per-response token budget.
func (c *OpenAIClient) SetMaxTokens(n int) {
	c.MaxTokens = n
}

// SetTemperature sets the temperature.
func (c *OpenAIClient) SetTemperature(temp float64) {
	c.Temperature = temp
}

// GetModel returns the model.
func (c *OpenAIClient) GetModel() string {
	return c.Model
}

// GetTemperature returns the temperature.
func (c *OpenAIClient) GetTemperature() float64 {
	return c.Temperature
}
