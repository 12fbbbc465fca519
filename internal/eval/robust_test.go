package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContract(t *testing.T) {
	c := ParseContract("Final Answer:\nPremise: TRUE\nVerdict: YES\nDirect Answer: Joe Biden\nKey Facts: ...")
	assert.Equal(t, "TRUE", c.Premise)
	assert.Equal(t, "YES", c.Verdict)
	assert.Equal(t, "Joe Biden", c.Direct)
}

func TestParseContractWithoutHeader(t *testing.T) {
	c := ParseContract("Premise: FALSE\nDirect Answer: the premise is false")
	assert.Equal(t, "FALSE", c.Premise)
	assert.Equal(t, "", c.Verdict)
	assert.Equal(t, "the premise is false", c.Direct)
}

func TestParseContractPlainText(t *testing.T) {
	c := ParseContract("The answer is Paris.")
	assert.Equal(t, Contract{}, c)
}

func TestEvalRobustDirectAnswerAligns(t *testing.T) {
	res := EvalRobust("Who is the CEO?",
		"Premise: TRUE\nVerdict: UNCERTAIN\nDirect Answer: Tim Cook\nKey Facts: leads Apple.",
		[]string{"Tim Cook"})
	assert.Equal(t, "correct", res.Label)
	assert.Equal(t, "Tim Cook", res.Contract.Direct)
}

func TestEvalRobustDirectAnswerWrong(t *testing.T) {
	res := EvalRobust("Who is the CEO?",
		"Premise: TRUE\nDirect Answer: Steve Jobs",
		[]string{"Tim Cook"})
	assert.Equal(t, "incorrect", res.Label)
}

func TestEvalRobustInvalidPremiseField(t *testing.T) {
	res := EvalRobust("q", "Premise: MAYBE\nDirect Answer: x", []string{"x"})
	assert.Equal(t, "incorrect", res.Label)
	assert.Equal(t, "invalid premise field", res.Reason)
}

func TestEvalRobustInvalidVerdictField(t *testing.T) {
	res := EvalRobust("q", "Verdict: PROBABLY\nDirect Answer: x", []string{"x"})
	assert.Equal(t, "incorrect", res.Label)
	assert.Equal(t, "invalid verdict field", res.Reason)
}

func TestEvalRobustBooleanDirectAnswer(t *testing.T) {
	res := EvalRobust("Is it raining?", "Direct Answer: Yes", []string{"yes"})
	assert.Equal(t, "correct", res.Label)

	res = EvalRobust("Is it raining?", "Direct Answer: No", []string{"yes"})
	assert.Equal(t, "incorrect", res.Label)
}

func TestEvalRobustContainmentFallback(t *testing.T) {
	res := EvalRobust("Where is the Louvre?",
		"The Louvre is located in Paris, France.",
		[]string{"Paris"})
	assert.Equal(t, "correct", res.Label)
}

func TestEvalRobustPolarityContradiction(t *testing.T) {
	res := EvalRobust("Is it open?",
		"Direct Answer: yes \n yes it is open but also no it is closed on Mondays",
		[]string{"yes"})
	assert.Equal(t, "incorrect", res.Label)
	assert.Equal(t, "polarity contradiction", res.Reason)
}

func TestEvalRobustUnknown(t *testing.T) {
	res := EvalRobust("q", "I have no idea.", []string{"42"})
	assert.Equal(t, "unknown", res.Label)
}

func TestBoolFromText(t *testing.T) {
	assert.Equal(t, "YES", boolFromText(" Yes "))
	assert.Equal(t, "NO", boolFromText("no"))
	assert.Equal(t, "UNCERTAIN", boolFromText("Uncertain"))
	assert.Equal(t, "", boolFromText("maybe"))
}

func TestHasContradictoryPolarity(t *testing.T) {
	assert.True(t, hasContradictoryPolarity("yes but also no"))
	assert.False(t, hasContradictoryPolarity("yes definitely"))
	assert.False(t, hasContradictoryPolarity("nothing yes"))
}
