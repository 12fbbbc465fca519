package agent

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/egobogo/freshagent/internal/model"
)

func TestPrintTrace(t *testing.T) {
	msgs := []model.Message{
		{Role: "system", Content: "EVIDENCE BLOCK (from google):\nsome block"},
		{
			Role: "assistant",
			ToolCalls: []model.ToolCall{{
				ID:       "call_1",
				Type:     "function",
				Function: model.FunctionCall{Name: "google", Arguments: `{"question":"q"}`},
			}},
		},
		{Role: "tool", ToolCallID: "call_1", Content: `{"ok":true,"prompt":"p"}`},
	}

	var buf bytes.Buffer
	PrintTrace(&buf, msgs, "TEST")
	out := buf.String()

	assert.Contains(t, out, "TRACE — TEST")
	assert.Contains(t, out, "[00] ROLE=SYSTEM")
	assert.Contains(t, out, "[EVIDENCE/FINAL]")
	assert.Contains(t, out, "function.name: google")
	// Tool JSON gets pretty-printed.
	assert.Contains(t, out, "\"ok\": true")
}

func TestIsEvidenceBlock(t *testing.T) {
	assert.True(t, isEvidenceBlock("EVIDENCE BLOCK (from google)"))
	assert.True(t, isEvidenceBlock("EVIDENCE (raw, from calculator)"))
	assert.True(t, isEvidenceBlock("FINAL SYNTHESIS CONTEXT\n..."))
	assert.False(t, isEvidenceBlock("SNAPSHOT: focus"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("x", 50)
	out := truncate(long, 10)
	assert.True(t, strings.HasPrefix(out, "xxxxxxxxxx\n"))
	assert.Contains(t, out, "truncated 40 chars")
}
