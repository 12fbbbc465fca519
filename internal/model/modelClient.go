package model

import "context"

// Message represents a single message in a conversation.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a function call requested by the assistant.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// FunctionSpec describes a callable tool exposed to the model.
type FunctionSpec struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  interface{} `json:"parameters,omitempty"`
}

// ToolSpec is the wire form of a tool definition.
type ToolSpec struct {
	Type     string       `json:"type"`
	Function FunctionSpec `json:"function"`
}

// ChatRequest represents the payload sent to the Chat Completions API.
// Newer model families expect "max_completion_tokens" instead of
// "max_tokens"; the client picks the right field per model.
type ChatRequest struct {
	Model               string     `json:"model"`
	Messages            []Message  `json:"messages"`
	Temperature         float64    `json:"temperature"`
	MaxTokens           int        `json:"max_tokens,omitempty"`
	MaxCompletionTokens int        `json:"max_completion_tokens,omitempty"`
	Tools               []ToolSpec `json:"tools,omitempty"`
	ToolChoice          string     `json:"tool_choice,omitempty"`
}

// CompletionRequest represents the payload sent to the legacy Completions API,
// which takes a single flat prompt string.
type CompletionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// ModelClient is an abstract, model-agnostic interface for interacting with a
// language model.
type ModelClient interface {
	// Chat sends a prompt through the Chat Completions API and returns the
	// response text.
	Chat(ctx context.Context, prompt string) (string, error)
	// Complete sends a prompt through the legacy Completions API.
	Complete(ctx context.Context, prompt string) (string, error)
	// Ask dispatches to Chat or Complete depending on chat.
	Ask(ctx context.Context, prompt string, chat bool) (string, error)
	// ChatMessages sends a structured conversation, optionally with tools,
	// and returns the full assistant message (content plus tool calls).
	ChatMessages(ctx context.Context, msgs []Message, tools []ToolSpec) (Message, error)
	SetModel(model string)
	SetTemperature(temp float64)
	GetModel() string
	GetTemperature() float64
}
