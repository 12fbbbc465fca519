package eval

import (
	"context"
	"fmt"

	"github.com/egobogo/freshagent/internal/dataset"
	model "github.com/egobogo/freshagent/internal/model"
)

// Modes supported by EvaluateTable.
const (
	ModeRobust     = "robust"
	ModeRelaxedLLM = "relaxed-llm"
)

// LabelColumn names the grade column for a mode and response column.
func LabelColumn(mode, responseCol string) string {
	return "eval_label_" + mode + "_" + responseCol
}

// ReasonColumn names the grade-reason column for a mode and response column.
func ReasonColumn(mode, responseCol string) string {
	return "eval_reason_" + mode + "_" + responseCol
}

// Tally counts the label values in one column, e.g. correct/incorrect/unknown
// in a grade column. Missing columns tally as empty.
func Tally(t *dataset.Table, column string) map[string]int {
	counts := map[string]int{}
	idx := t.Column(column)
	if idx < 0 {
		return counts
	}
	for i := range t.Rows {
		counts[t.Get(i, idx)]++
	}
	return counts
}

// EvaluateTable grades one response column of a dataset in the given mode
// and appends eval_label_<mode>_<responseCol> and
// eval_reason_<mode>_<responseCol> columns, so grading several response
// columns never clobbers earlier grades. The model client is only required
// for relaxed-llm mode.
func EvaluateTable(ctx context.Context, t *dataset.Table, questionCol, responseCol, correctCol, mode string, client model.ModelClient) error {
	qIdx := t.Column(questionCol)
	rIdx := t.Column(responseCol)
	cIdx := t.Column(correctCol)
	if qIdx < 0 || rIdx < 0 || cIdx < 0 {
		return fmt.Errorf("missing column: need %q, %q, and %q", questionCol, responseCol, correctCol)
	}

	labelIdx := t.EnsureColumn(LabelColumn(mode, responseCol))
	reasonIdx := t.EnsureColumn(ReasonColumn(mode, responseCol))

	for i := range t.Rows {
		question := t.Get(i, qIdx)
		response := t.Get(i, rIdx)
		correctAnswers := dataset.ParseCorrectAnswers(t.Get(i, cIdx))

		switch mode {
		case ModeRelaxedLLM:
			if client == nil {
				return fmt.Errorf("relaxed-llm mode requires a model client")
			}
			res, err := EvalRelaxedLLM(ctx, client, correctAnswers, response, true)
			if err != nil {
				return fmt.Errorf("relaxed evaluation failed at row %d: %w", i, err)
			}
			t.Set(i, labelIdx, res.Label)
			t.Set(i, reasonIdx, res.Reason)
		case ModeRobust:
			res := EvalRobust(question, response, correctAnswers)
			t.Set(i, labelIdx, res.Label)
			t.Set(i, reasonIdx, res.Reason)
		default:
			return fmt.Errorf("unknown evaluation mode %q", mode)
		}
	}
	return nil
}
