package agent

import (
	"regexp"
	"strings"
)

var (
	directAnswerRe = regexp.MustCompile(`(?im)^[\s\-•>*]*Direct\s*Answer\s*[:\-–]\s*(.*)$`)
	finalAnswerRe  = regexp.MustCompile(`(?im)^[\s\-•>*]*Final\s*Answer\s*[:\-–]?(.*)$`)
	verdictRe      = regexp.MustCompile(`(?im)^[\s\-•>*]*Verdict\s*[:\-–]\s*(.+)$`)
)

// ExtractDirectAnswer is a best-effort extractor for the "Direct Answer"
// field of an Answer Contract. It falls back gracefully when the contract is
// missing: the first line after a "Final Answer" header, then the Verdict,
// then the first non-empty line of the text.
func ExtractDirectAnswer(finalText string) string {
	t := strings.TrimSpace(finalText)
	if t == "" {
		return ""
	}

	if loc := directAnswerRe.FindStringSubmatchIndex(t); loc != nil {
		val := strings.TrimSpace(t[loc[2]:loc[3]])
		if val != "" {
			return val
		}
		// Empty on the same line; take the next non-empty line.
		if next := firstNonEmptyLine(t[loc[1]:]); next != "" {
			return next
		}
		return ""
	}

	if loc := finalAnswerRe.FindStringIndex(t); loc != nil {
		if next := firstNonEmptyLine(t[loc[1]:]); next != "" {
			return next
		}
	}

	// A verdict is a useful fallback for yes/no questions.
	if m := verdictRe.FindStringSubmatch(t); m != nil {
		return strings.TrimSpace(m[1])
	}

	if line := firstNonEmptyLine(t); line != "" {
		return line
	}
	return t
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if ls := strings.TrimSpace(line); ls != "" {
			return ls
		}
	}
	return ""
}
