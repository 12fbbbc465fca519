package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egobogo/freshagent/internal/dataset"
)

func evalTable() *dataset.Table {
	return &dataset.Table{
		Header: []string{"question", "response", "correct_answers"},
		Rows: [][]string{
			{"Where is the Louvre?", "Direct Answer: Paris", "Paris"},
			{"Is it open?", "Direct Answer: no", "yes"},
		},
	}
}

func TestEvaluateTableRobust(t *testing.T) {
	tbl := evalTable()
	err := EvaluateTable(context.Background(), tbl, "question", "response", "correct_answers", ModeRobust, nil)
	require.NoError(t, err)

	labelIdx := tbl.Column("eval_label_robust_response")
	require.GreaterOrEqual(t, labelIdx, 0)
	assert.Equal(t, "correct", tbl.Get(0, labelIdx))
	assert.Equal(t, "incorrect", tbl.Get(1, labelIdx))

	reasonIdx := tbl.Column("eval_reason_robust_response")
	require.GreaterOrEqual(t, reasonIdx, 0)
	assert.NotEmpty(t, tbl.Get(0, reasonIdx))
}

func TestEvaluateTableSeparateColumnsPerResponse(t *testing.T) {
	tbl := &dataset.Table{
		Header: []string{"question", "resp_a", "resp_b", "correct_answers"},
		Rows: [][]string{
			{"Where is the Louvre?", "Direct Answer: Paris", "Direct Answer: London", "Paris"},
			{"Is it open?", "Direct Answer: no", "Direct Answer: yes", "yes"},
		},
	}

	require.NoError(t, EvaluateTable(context.Background(), tbl, "question", "resp_a", "correct_answers", ModeRobust, nil))
	require.NoError(t, EvaluateTable(context.Background(), tbl, "question", "resp_b", "correct_answers", ModeRobust, nil))

	aIdx := tbl.Column("eval_label_robust_resp_a")
	bIdx := tbl.Column("eval_label_robust_resp_b")
	require.GreaterOrEqual(t, aIdx, 0)
	require.GreaterOrEqual(t, bIdx, 0)
	require.NotEqual(t, aIdx, bIdx)

	// Grading resp_b must not touch resp_a's grades.
	assert.Equal(t, "correct", tbl.Get(0, aIdx))
	assert.Equal(t, "incorrect", tbl.Get(1, aIdx))
	assert.Equal(t, "incorrect", tbl.Get(0, bIdx))
	assert.Equal(t, "correct", tbl.Get(1, bIdx))
}

func TestEvaluateTableRelaxedLLM(t *testing.T) {
	tbl := evalTable()
	client := &scriptedClient{replies: []string{
		"evaluation: correct",
		"evaluation: incorrect",
	}}
	err := EvaluateTable(context.Background(), tbl, "question", "response", "correct_answers", ModeRelaxedLLM, client)
	require.NoError(t, err)

	labelIdx := tbl.Column("eval_label_relaxed-llm_response")
	require.GreaterOrEqual(t, labelIdx, 0)
	assert.Equal(t, "correct", tbl.Get(0, labelIdx))
	assert.Equal(t, "incorrect", tbl.Get(1, labelIdx))
	assert.Len(t, client.prompts, 2)
}

func TestEvaluateTableRelaxedLLMRequiresClient(t *testing.T) {
	err := EvaluateTable(context.Background(), evalTable(), "question", "response", "correct_answers", ModeRelaxedLLM, nil)
	assert.Error(t, err)
}

func TestEvaluateTableMissingColumn(t *testing.T) {
	err := EvaluateTable(context.Background(), evalTable(), "question", "nope", "correct_answers", ModeRobust, nil)
	assert.Error(t, err)
}

func TestEvaluateTableUnknownMode(t *testing.T) {
	err := EvaluateTable(context.Background(), evalTable(), "question", "response", "correct_answers", "vibes", nil)
	assert.Error(t, err)
}

func TestColumnNames(t *testing.T) {
	assert.Equal(t, "eval_label_robust_model_response", LabelColumn(ModeRobust, "model_response"))
	assert.Equal(t, "eval_reason_robust_model_response", ReasonColumn(ModeRobust, "model_response"))
}

func TestTally(t *testing.T) {
	tbl := evalTable()
	require.NoError(t, EvaluateTable(context.Background(), tbl, "question", "response", "correct_answers", ModeRobust, nil))

	counts := Tally(tbl, LabelColumn(ModeRobust, "response"))
	assert.Equal(t, 1, counts["correct"])
	assert.Equal(t, 1, counts["incorrect"])
	assert.Equal(t, 0, counts["unknown"])

	assert.Empty(t, Tally(tbl, "no_such_column"))
}
