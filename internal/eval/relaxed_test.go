package eval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/egobogo/freshagent/internal/model"
)

// scriptedClient returns canned chat replies in order.
type scriptedClient struct {
	replies []string
	prompts []string
	idx     int
}

func (s *scriptedClient) Chat(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.idx >= len(s.replies) {
		return "", nil
	}
	out := s.replies[s.idx]
	s.idx++
	return out, nil
}

func (s *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	return s.Chat(ctx, prompt)
}

func (s *scriptedClient) Ask(ctx context.Context, prompt string, chat bool) (string, error) {
	return s.Chat(ctx, prompt)
}

func (s *scriptedClient) ChatMessages(ctx context.Context, msgs []model.Message, tools []model.ToolSpec) (model.Message, error) {
	out, err := s.Chat(ctx, "")
	return model.Message{Role: "assistant", Content: out}, err
}

func (s *scriptedClient) SetModel(string)         {}
func (s *scriptedClient) SetTemperature(float64)  {}
func (s *scriptedClient) GetModel() string        { return "scripted" }
func (s *scriptedClient) GetTemperature() float64 { return 0 }

func TestBuildRelaxedPromptWithDemos(t *testing.T) {
	p := BuildRelaxedPrompt([]string{"Paris", "", "paris, france"}, "It is Paris.", true)
	assert.Contains(t, p, RelaxedInstruction)
	assert.Contains(t, p, "--- DEMONSTRATIONS ---")
	assert.Contains(t, p, "correct answer(s): Paris | paris, france")
	assert.Contains(t, p, "response: It is Paris.")
	assert.Contains(t, p, "evaluation: <correct|incorrect>")
}

func TestBuildRelaxedPromptWithoutDemos(t *testing.T) {
	p := BuildRelaxedPrompt([]string{"42"}, "42", false)
	assert.Contains(t, p, RelaxedInstruction)
	assert.NotContains(t, p, "--- DEMONSTRATIONS ---")
}

func TestParseRelaxedLabel(t *testing.T) {
	assert.Equal(t, "correct", ParseRelaxedLabel("evaluation: correct"))
	assert.Equal(t, "incorrect", ParseRelaxedLabel("evaluation: incorrect"))
	assert.Equal(t, "correct", ParseRelaxedLabel("Comment: good.\nEvaluation: Correct."))
	assert.Equal(t, "correct", ParseRelaxedLabel("This is correct."))
	assert.Equal(t, "unknown", ParseRelaxedLabel("The response is incorrect-ish, hmm."))
	assert.Equal(t, "unknown", ParseRelaxedLabel("no judgement"))
}

func TestEvalRelaxedLLM(t *testing.T) {
	client := &scriptedClient{replies: []string{"comment: fine\nevaluation: correct"}}
	res, err := EvalRelaxedLLM(context.Background(), client, []string{"Paris"}, "It is Paris.", true)
	require.NoError(t, err)
	assert.Equal(t, "correct", res.Label)
	assert.Contains(t, res.Reason, "evaluation: correct")

	require.Len(t, client.prompts, 1)
	assert.True(t, strings.Contains(client.prompts[0], "correct answer(s): Paris"))
}
