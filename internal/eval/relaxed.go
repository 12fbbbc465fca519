package eval

import (
	"context"
	"strings"

	model "github.com/egobogo/freshagent/internal/model"
)

// RelaxedInstruction is the grading rubric for relaxed evaluation:
// hallucinations, outdated information, and ill-formed answers are tolerated
// as long as the primary answer is accurate and confident.
const RelaxedInstruction = "Please evaluate the response to a question under relaxed evaluation, where " +
	"hallucinations, outdated information, and ill-formed answers are allowed, " +
	"as long as the primary answer is accurate. Please credit the response " +
	"only if it provides a confident and definitive answer, or the correct " +
	"answer can be obviously inferred from the response. The primary or final " +
	"answer when standing alone must be accurate. Any additional information " +
	"that is provided must not contradict the primary answer or reshape one's " +
	"perception of it. For false-premise questions, the response must point " +
	"out the presence of a false premise to receive credit. For answers that " +
	"involve names of entities (e.g., people), complete names or commonly " +
	"recognized names are expected. Regarding numerical answers, approximate " +
	"numbers are generally not accepted unless explicitly included in the " +
	"ground-truth answers. We accept ill-formed responses (including those in " +
	"a non-English language), as well as hallucinated or outdated information " +
	"that does not significantly impact the primary answer."

// relaxedDemo is one few-shot grading demonstration.
type relaxedDemo struct {
	correctAnswers string
	response       string
	comment        string
	evaluation     string
}

var relaxedDemos = []relaxedDemo{
	{
		"correct answer(s): 117 years old | 117",
		"response: As of today <DATE>, the most up-to-date and relevant information regarding this query is as follows. The oldest verified living person is Maria Branyas Morera, who was born on March 4, 1907, making her 117 years old.",
		"comment: The primary answer (117 years old) is accurate; information is up-to-date. Credit.",
		"evaluation: correct",
	},
	{
		"correct answer(s): The United Kingdom has never adopted the Euro.",
		"response: The UK has never adopted the Euro as its official currency. The country has retained the British pound sterling (GBP).",
		"comment: False premise; response debunks it explicitly. Credit.",
		"evaluation: correct",
	},
	{
		"correct answer(s): She was released in December 2022 as part of a prisoner swap.",
		"response: I'm sorry, but I have no information to suggest that Brittney Griner is currently in a Russian prison...",
		"comment: False premise not debunked explicitly; lacks a confident, definitive answer. Do not credit.",
		"evaluation: incorrect",
	},
	{
		"correct answer(s): English",
		"response: 1. Mandarin 2. Spanish 3. English",
		"comment: Correct answer can be obviously inferred. Credit.",
		"evaluation: correct",
	},
	{
		"correct answer(s): No",
		"response: No, it isn't. The stock price is currently at $257.",
		"comment: Additional information contradicts the primary answer (257 > 250). Do not credit.",
		"evaluation: incorrect",
	},
}

func formatDemoBlock() string {
	lines := []string{RelaxedInstruction, "\n--- DEMONSTRATIONS ---"}
	for _, d := range relaxedDemos {
		lines = append(lines, d.correctAnswers, d.response, d.comment, d.evaluation, "")
	}
	lines = append(lines, "--- END DEMOS ---")
	return strings.Join(lines, "\n")
}

// BuildRelaxedPrompt builds the grader prompt in the compact notebook
// format: a "correct answer(s)" line, the response, and a request for
// exactly one "evaluation: correct|incorrect" line.
func BuildRelaxedPrompt(correctAnswers []string, response string, useDemos bool) string {
	kept := make([]string, 0, len(correctAnswers))
	for _, a := range correctAnswers {
		if s := strings.TrimSpace(a); s != "" {
			kept = append(kept, s)
		}
	}

	var parts []string
	if useDemos {
		parts = append(parts, formatDemoBlock())
	} else {
		parts = append(parts, RelaxedInstruction)
	}
	parts = append(parts, "\nNow evaluate the following response:")
	parts = append(parts, "correct answer(s): "+strings.Join(kept, " | "))
	parts = append(parts, "response: "+strings.TrimSpace(response))
	parts = append(parts, "\nPlease output exactly one line:\nevaluation: <correct|incorrect>")
	return strings.Join(parts, "\n")
}

// ParseRelaxedLabel parses "evaluation: correct|incorrect" out of grader
// output, with a tolerant containment fallback. Returns "unknown" when the
// output is ambiguous.
func ParseRelaxedLabel(text string) string {
	t := strings.ToLower(text)
	if idx := strings.Index(t, "evaluation:"); idx >= 0 {
		tail := strings.TrimSpace(t[idx+len("evaluation:"):])
		if strings.HasPrefix(tail, "correct") {
			return "correct"
		}
		if strings.HasPrefix(tail, "incorrect") {
			return "incorrect"
		}
	}
	if strings.Contains(t, "correct") && !strings.Contains(t, "incorrect") {
		return "correct"
	}
	return "unknown"
}

// Result is a grading outcome: the label plus the grader's raw output or
// the rule that fired.
type Result struct {
	Label  string
	Reason string
}

// EvalRelaxedLLM grades a response with the LLM-based relaxed evaluator.
func EvalRelaxedLLM(ctx context.Context, client model.ModelClient, correctAnswers []string, response string, useDemos bool) (Result, error) {
	prompt := BuildRelaxedPrompt(correctAnswers, response, useDemos)
	raw, err := client.Chat(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	return Result{Label: ParseRelaxedLabel(raw), Reason: raw}, nil
}
