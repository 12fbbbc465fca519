package eval

import (
	"regexp"
	"strings"
)

var (
	allowedPremise  = map[string]bool{"TRUE": true, "FALSE": true, "UNCERTAIN": true}
	allowedVerdicts = map[string]bool{"YES": true, "NO": true, "UNCERTAIN": true}

	premiseFieldRe = regexp.MustCompile(`(?i)Premise:\s*(.+)`)
	verdictFieldRe = regexp.MustCompile(`(?i)Verdict:\s*(.+)`)
	directFieldRe  = regexp.MustCompile(`(?i)Direct Answer:\s*(.+)`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Contract holds the parsed Answer Contract header fields.
type Contract struct {
	Premise string
	Verdict string
	Direct  string
}

// ParseContract extracts Premise, Verdict, and Direct Answer fields when
// present, looking after an optional "Final Answer:" header.
func ParseContract(finalText string) Contract {
	t := strings.TrimSpace(finalText)
	if idx := strings.Index(t, "Final Answer:"); idx >= 0 {
		t = strings.TrimSpace(t[idx+len("Final Answer:"):])
	}
	grab := func(re *regexp.Regexp) string {
		if m := re.FindStringSubmatch(t); m != nil {
			return strings.TrimSpace(m[1])
		}
		return ""
	}
	return Contract{
		Premise: grab(premiseFieldRe),
		Verdict: grab(verdictFieldRe),
		Direct:  grab(directFieldRe),
	}
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " ")))
}

// boolFromText maps a yes/no/uncertain answer onto its canonical form,
// empty when the text is not a bare boolean word.
func boolFromText(s string) string {
	switch norm(s) {
	case "yes":
		return "YES"
	case "no":
		return "NO"
	case "uncertain":
		return "UNCERTAIN"
	}
	return ""
}

func anyContains(hay string, needles []string) bool {
	h := norm(hay)
	for _, n := range needles {
		if s := norm(n); s != "" && strings.Contains(h, s) {
			return true
		}
	}
	return false
}

func directAnswerAligns(direct string, correctAnswers []string) bool {
	if direct == "" {
		return false
	}
	if anyContains(direct, correctAnswers) {
		return true
	}
	if da := boolFromText(direct); da != "" {
		for _, ca := range correctAnswers {
			if boolFromText(ca) == da {
				return true
			}
		}
	}
	return false
}

// hasContradictoryPolarity reports a crude polarity collision: the text
// contains both " yes " and " no " as words.
func hasContradictoryPolarity(text string) bool {
	t := " " + norm(text) + " "
	return strings.Contains(t, " yes ") && strings.Contains(t, " no ")
}

// RobustResult is the rule-based grading outcome.
type RobustResult struct {
	Label    string
	Reason   string
	Contract Contract
}

// EvalRobust grades a response without an LLM:
//   - validate Answer Contract header fields when present
//   - prefer Direct Answer alignment with the correct answers
//   - fall back to obvious-inference containment and boolean checks
//   - penalize responses containing both yes and no
func EvalRobust(question, response string, correctAnswers []string) RobustResult {
	contract := ParseContract(response)

	if contract.Premise != "" {
		p0 := strings.ToUpper(strings.Fields(contract.Premise)[0])
		if !allowedPremise[p0] {
			return RobustResult{Label: "incorrect", Reason: "invalid premise field", Contract: contract}
		}
	}
	if contract.Verdict != "" {
		v0 := strings.ToUpper(strings.Fields(contract.Verdict)[0])
		if !allowedVerdicts[v0] {
			return RobustResult{Label: "incorrect", Reason: "invalid verdict field", Contract: contract}
		}
	}

	if strings.TrimSpace(contract.Direct) != "" {
		aligns := directAnswerAligns(contract.Direct, correctAnswers)
		switch {
		case aligns && !hasContradictoryPolarity(response):
			return RobustResult{Label: "correct", Reason: "direct answer aligns", Contract: contract}
		case aligns:
			return RobustResult{Label: "incorrect", Reason: "polarity contradiction", Contract: contract}
		default:
			return RobustResult{Label: "incorrect", Reason: "direct answer does not align", Contract: contract}
		}
	}

	if anyContains(response, correctAnswers) && !hasContradictoryPolarity(response) {
		return RobustResult{Label: "correct", Reason: "answer inferable from response", Contract: contract}
	}

	truthBools := map[string]bool{}
	for _, ca := range correctAnswers {
		if b := boolFromText(ca); b != "" {
			truthBools[b] = true
		}
	}
	if len(truthBools) > 0 {
		if found := boolFromText(response); found != "" && truthBools[found] && !hasContradictoryPolarity(response) {
			return RobustResult{Label: "correct", Reason: "boolean aligns", Contract: contract}
		}
	}

	return RobustResult{Label: "unknown", Reason: "no alignment detected", Contract: contract}
}
