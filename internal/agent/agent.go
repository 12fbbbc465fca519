package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/egobogo/freshagent/internal/evidence"
	model "github.com/egobogo/freshagent/internal/model"
	"github.com/egobogo/freshagent/internal/tools"
)

// Config holds the agent run parameters.
type Config struct {
	Model       string
	Provider    string
	MaxSteps    int
	Temperature float64
	Timezone    string
	Debug       bool
	// FixedNow pins the date injected into prompts, for reproducible runs.
	FixedNow time.Time
}

// DefaultConfig returns the standard agent configuration.
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4o",
		Provider:    "serper",
		MaxSteps:    8,
		Temperature: 0.0,
		Timezone:    "America/Chicago",
	}
}

// hyperparams are the per-round token budgets.
type hyperparams struct {
	maxTokens      int
	maxTokensFinal int
}

func defaultHyperparams() hyperparams {
	return hyperparams{maxTokens: 256, maxTokensFinal: 512}
}

// Answer is the outcome of a run: the full Answer Contract text and the
// extracted one-line direct answer.
type Answer struct {
	Full   string
	Direct string
}

// Agent is a ReAct-style temporal reasoning agent: it alternates one tool
// call per round with a forced reflection, then synthesizes a final answer
// from the gathered evidence.
type Agent struct {
	cfg      Config
	client   model.ModelClient
	registry tools.Registry
	store    evidence.Store // optional evidence ranking
	logger   zerolog.Logger
}

// New creates an agent. The registry may be nil for a tool-less run.
func New(cfg Config, client model.ModelClient, registry tools.Registry) *Agent {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 8
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Chicago"
	}
	return &Agent{
		cfg:      cfg,
		client:   client,
		registry: registry,
		logger:   log.With().Str("component", "agent").Logger(),
	}
}

// SetEvidenceStore wires an evidence store. When present, the final
// synthesis replays only the stored blocks most similar to the question
// instead of every block gathered.
func (a *Agent) SetEvidenceStore(s evidence.Store) {
	a.store = s
}

// Run executes the multi-round ReAct loop and returns the final text.
func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	hp := defaultHyperparams()
	a.client.SetModel(a.cfg.Model)
	a.client.SetTemperature(a.cfg.Temperature)

	msgs := a.buildInitialMessages(query)
	var specs []model.ToolSpec
	if len(a.registry) > 0 {
		specs = a.registry.ToSpecs()
	}

	a.debugTrace(msgs, "INIT")

	for step := 1; step <= a.cfg.MaxSteps; step++ {
		stepsLeft := a.cfg.MaxSteps - step + 1

		// Snapshot keeps the model focused, except on the first and last
		// rounds.
		if step > 1 && stepsLeft > 1 {
			if reflection := latestAssistantContent(msgs); reflection != "" {
				msgs = append(msgs, model.Message{
					Role:    "system",
					Content: buildContextSnapshot(query, reflection),
				})
				a.debugTrace(msgs, "SNAPSHOT ADDED")
			}
		}

		// Final round: inject the synthesis context and disable tools.
		useTools := specs
		maxTokens := hp.maxTokens
		if stepsLeft == 1 {
			useTools = nil
			maxTokens = hp.maxTokensFinal
			msgs = append(msgs, model.Message{
				Role:    "system",
				Content: renderFinalSynth(query, a.collectEvidence(ctx, query, msgs)),
			})
			a.debugTrace(msgs, "FINAL CONTEXT")
		}

		if setter, ok := a.client.(maxTokensSetter); ok {
			setter.SetMaxTokens(maxTokens)
		}

		assistant, err := a.client.ChatMessages(ctx, msgs, useTools)
		if err != nil {
			return "", fmt.Errorf("model call failed at step %d: %w", step, err)
		}
		msgs = append(msgs, assistant)
		a.debugTrace(msgs, "AFTER ASSISTANT")

		content := strings.TrimSpace(assistant.Content)

		// Early finish when the Answer Contract is already present.
		if strings.Contains(content, "Final Answer:") ||
			(strings.Contains(content, "Premise:") && strings.Contains(content, "Verdict:")) {
			return content, nil
		}

		if len(assistant.ToolCalls) > 0 && stepsLeft > 1 {
			msgs = a.handleToolCall(ctx, msgs, assistant.ToolCalls[0])
		}
	}

	// Max steps exhausted; fall back to the last assistant content.
	if last := latestAssistantContent(msgs); last != "" {
		return last, nil
	}
	return "[Stopped: max steps reached]", nil
}

// maxTokensSetter lets the agent adjust per-round token budgets on clients
// that support it.
type maxTokensSetter interface {
	SetMaxTokens(int)
}

// RunParts runs the agent and returns both the full text and the extracted
// direct answer.
func (a *Agent) RunParts(ctx context.Context, query string) (Answer, error) {
	full, err := a.Run(ctx, query)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Full: full, Direct: ExtractDirectAnswer(full)}, nil
}

func (a *Agent) buildInitialMessages(query string) []model.Message {
	sys := RenderReactPrompt(TodayContext(a.cfg.Timezone, a.cfg.FixedNow))
	return []model.Message{
		{Role: "system", Content: sys},
		{Role: "user", Content: query},
	}
}

// handleToolCall honors exactly one tool call: it appends the tool reply,
// a readable evidence block, and the reflection instruction.
func (a *Agent) handleToolCall(ctx context.Context, msgs []model.Message, tc model.ToolCall) []model.Message {
	name := strings.TrimSpace(tc.Function.Name)
	args := json.RawMessage(tc.Function.Arguments)

	if _, ok := a.registry[name]; !ok {
		available := strings.Join(a.registry.Names(), ", ")
		return append(msgs, model.Message{
			Role:    "system",
			Content: fmt.Sprintf("Requested tool %q is not available. Available: %s.", name, available),
		})
	}

	// Backfill the provider for google calls that omit one.
	if name == "google" {
		args = withDefaultProvider(args, a.cfg.Provider)
	}

	result := a.registry.Invoke(ctx, name, args)
	resultJSON, err := json.Marshal(result)
	if err != nil {
		resultJSON = []byte(fmt.Sprintf(`{"ok":false,"error":%q}`, err.Error()))
	}

	msgs = append(msgs, model.Message{
		Role:       "tool",
		ToolCallID: tc.ID,
		Content:    string(resultJSON),
	})

	msgs = append(msgs, model.Message{
		Role:    "system",
		Content: a.renderEvidence(ctx, name, result),
	})
	msgs = append(msgs, model.Message{Role: "system", Content: reflectAfterTool})
	a.debugTrace(msgs, fmt.Sprintf("TOOL %q RESULT + EVIDENCE", name))
	return msgs
}

// renderEvidence produces the readable EVIDENCE system message for a tool
// result and, when a store is wired, remembers the block for ranking.
func (a *Agent) renderEvidence(ctx context.Context, source string, result map[string]interface{}) string {
	var content string
	if prompt, ok := result["prompt"].(string); ok && prompt != "" {
		content = fmt.Sprintf(
			"EVIDENCE BLOCK (from %s):\n%s\n\nInstructions: Base your next reasoning ONLY on the above evidence. "+
				"If the evidence looks stale for a time-varying query, either search again or say Uncertain.",
			source, prompt,
		)
	} else {
		raw, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			raw = []byte("{}")
		}
		content = fmt.Sprintf(
			"EVIDENCE (raw, from %s):\n%s\n\nUse ONLY the above evidence to continue; if it is inadequate or stale, "+
				"search again or mark the result as Uncertain.",
			source, raw,
		)
	}

	if a.store != nil {
		if _, err := a.store.Remember(ctx, evidence.Entry{Source: source, Content: content}); err != nil {
			a.logger.Warn().Err(err).Msg("failed to index evidence block")
		}
	}
	return content
}

// collectEvidence aggregates the evidence for the final synthesis. With a
// store it retrieves the blocks most similar to the question; otherwise it
// replays every EVIDENCE system message in order.
func (a *Agent) collectEvidence(ctx context.Context, query string, msgs []model.Message) string {
	if a.store != nil {
		entries, err := a.store.Search(ctx, query, 8, 0.2)
		if err != nil {
			a.logger.Warn().Err(err).Msg("evidence search failed, replaying all blocks")
		} else if len(entries) > 0 {
			parts := make([]string, 0, len(entries))
			for _, e := range entries {
				parts = append(parts, e.Content)
			}
			return strings.Join(parts, "\n\n---\n\n")
		}
	}

	var parts []string
	for _, m := range msgs {
		if m.Role == "system" && strings.Contains(m.Content, "EVIDENCE") {
			parts = append(parts, m.Content)
		}
	}
	if len(parts) == 0 {
		return "[no evidence gathered]"
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// latestAssistantContent returns the content of the most recent assistant
// message, used as the reflection snapshot seed.
func latestAssistantContent(msgs []model.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "assistant" {
			return strings.TrimSpace(msgs[i].Content)
		}
	}
	return ""
}

// buildContextSnapshot builds a short system note that keeps the model
// focused on the original question.
func buildContextSnapshot(query, reflection string) string {
	rt := strings.TrimSpace(reflection)
	if rt == "" {
		return fmt.Sprintf("SNAPSHOT: Focus on answering the user's question.\nQuestion: %s", query)
	}
	return "SNAPSHOT: You must stay focused on the user's question.\n" +
		"Question: " + query + "\n" +
		"Recent reflection summary (for focus, not for quoting):\n" +
		rt + "\n" +
		"Use exactly ONE tool in the next step if needed; do not drift."
}

// withDefaultProvider injects a provider field into the google tool
// arguments when the model omitted one.
func withDefaultProvider(raw json.RawMessage, provider string) json.RawMessage {
	var args map[string]interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &args) != nil {
		args = map[string]interface{}{}
	}
	if _, ok := args["provider"]; !ok {
		args["provider"] = provider
	}
	out, err := json.Marshal(args)
	if err != nil {
		return raw
	}
	return out
}
