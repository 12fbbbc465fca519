package freshprompt

import (
	"sort"
	"strings"

	"github.com/egobogo/freshagent/internal/search"
)

// Reasoning suffixes appended after the final question line.
const (
	// PlainSuffix asks for a bare answer.
	PlainSuffix = "\nanswer: "
	// CheckPremiseSuffix additionally asks the model to validate the
	// question's premise first.
	CheckPremiseSuffix = "\nPlease check if the question contains a valid premise before answering.\nanswer: "
	// AgentFillSuffix marks the slots an agent fills in later.
	AgentFillSuffix = "\n\nReasoning: <agent to fill>\nAnswer: <agent to fill>"
)

// Limits controls how many rows each result category contributes and how
// many evidences survive into the final prompt.
type Limits struct {
	Organic   int
	Related   int
	QA        int
	Evidences int
}

// LimitsForModel returns the evidence budget per model family.
func LimitsForModel(modelName string) Limits {
	if strings.HasPrefix(modelName, "gpt-4") {
		return Limits{Organic: 15, Related: 3, QA: 3, Evidences: 15}
	}
	return Limits{Organic: 15, Related: 2, QA: 2, Evidences: 5}
}

// Format assembles the FreshPrompt text block: normalized evidences sorted
// oldest-to-newest (undated rows first), trimmed to the evidence budget, and
// stitched together with the question and the reasoning suffix.
//
// Each category contributes exactly its limit of slots; missing results pad
// with empty rows that are dropped before rendering. Rows are appended in
// reverse within a category so that, after the date sort, fresher and
// higher-ranked entries end up closest to the question.
func Format(question string, results *search.Results, reasoningAndAnswer string, limits Limits) string {
	if results == nil {
		results = &search.Results{}
	}

	var rows []Evidence
	appendReversed := func(batch []Evidence) {
		for i := len(batch) - 1; i >= 0; i-- {
			rows = append(rows, batch[i])
		}
	}

	organic := make([]Evidence, 0, limits.Organic)
	for k := 0; k < limits.Organic; k++ {
		if k < len(results.OrganicResults) {
			organic = append(organic, FormatSearchResult(results.OrganicResults[k], FormatOptions{}))
		} else {
			organic = append(organic, Evidence{})
		}
	}
	appendReversed(organic)

	related := make([]Evidence, 0, limits.Related)
	for k := 0; k < limits.Related; k++ {
		if k < len(results.RelatedQuestions) {
			related = append(related, FormatSearchResult(results.RelatedQuestions[k], FormatOptions{TitleField: "question"}))
		} else {
			related = append(related, Evidence{})
		}
	}
	appendReversed(related)

	qa := make([]Evidence, 0, limits.QA)
	for k := 0; k < limits.QA; k++ {
		if k < len(results.QuestionsAndAnswers) {
			qa = append(qa, FormatQuestionsAndAnswers(results.QuestionsAndAnswers[k]))
		} else {
			qa = append(qa, Evidence{})
		}
	}
	appendReversed(qa)

	rows = append(rows, FormatKnowledgeGraph(valueOrEmpty(results.KnowledgeGraph)))
	rows = append(rows, FormatSearchResult(valueOrEmpty(results.AnswerBox), FormatOptions{HighlightField: "answer"}))

	// Undated rows sort before everything else; the sort is stable so the
	// append order above breaks ties.
	sort.SliceStable(rows, func(i, j int) bool {
		ti, iOK := parseEvidenceDate(rows[i].Date)
		tj, jOK := parseEvidenceDate(rows[j].Date)
		if iOK != jOK {
			return !iOK
		}
		if !iOK {
			return false
		}
		return ti.Before(tj)
	})

	kept := make([]Evidence, 0, len(rows))
	for _, r := range rows {
		if !r.IsEmpty() {
			kept = append(kept, r)
		}
	}
	if limits.Evidences > 0 && len(kept) > limits.Evidences {
		kept = kept[len(kept)-limits.Evidences:]
	}

	var b strings.Builder
	b.WriteString("\n\n\nquery: ")
	b.WriteString(question)
	for _, e := range kept {
		b.WriteString(e.String())
	}
	b.WriteString("\n\nquestion: ")
	b.WriteString(question)
	b.WriteString(reasoningAndAnswer)
	return b.String()
}

func valueOrEmpty(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
