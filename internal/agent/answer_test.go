package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDirectAnswer(t *testing.T) {
	text := "Final Answer:\nPremise: TRUE\nVerdict: YES\nDirect Answer: Jane Doe is the CEO.\nKey Facts: ..."
	assert.Equal(t, "Jane Doe is the CEO.", ExtractDirectAnswer(text))
}

func TestExtractDirectAnswerBulleted(t *testing.T) {
	text := "- Premise: TRUE\n- Verdict: YES\n- Direct Answer: 42 degrees"
	assert.Equal(t, "42 degrees", ExtractDirectAnswer(text))
}

func TestExtractDirectAnswerOnNextLine(t *testing.T) {
	text := "Direct Answer:\nParis, France"
	assert.Equal(t, "Paris, France", ExtractDirectAnswer(text))
}

func TestExtractDirectAnswerFinalAnswerFallback(t *testing.T) {
	text := "Final Answer:\nThe building opened in 1931."
	assert.Equal(t, "The building opened in 1931.", ExtractDirectAnswer(text))
}

func TestExtractDirectAnswerVerdictFallback(t *testing.T) {
	text := "Premise: TRUE\nVerdict: No"
	assert.Equal(t, "No", ExtractDirectAnswer(text))
}

func TestExtractDirectAnswerFirstLineFallback(t *testing.T) {
	text := "\n\nThe answer is simply yes.\nMore detail follows."
	assert.Equal(t, "The answer is simply yes.", ExtractDirectAnswer(text))
}

func TestExtractDirectAnswerEmpty(t *testing.T) {
	assert.Equal(t, "", ExtractDirectAnswer("   "))
}
