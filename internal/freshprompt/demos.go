package freshprompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/egobogo/freshagent/internal/search"
)

// DemoQuestions are the five canonical FreshPrompt demonstration questions.
var DemoQuestions = []string{
	"What year is considered Albert Einstein's annus mirabilis?",
	"Which photographer took the most expensive photograph in the world?",
	"How many days are left until the 2023 Grammy Awards?",
	"How many years ago did the Boxing Day Tsunami happen?",
	"When did Amazon become the first publicly traded company to exceed a market value of $3 trillion?",
}

// ConciseDemoAnswers are the short reasoning-and-answer lines, one per demo
// question, before the "As of today" prefix is applied.
var ConciseDemoAnswers = []string{
	"1905 is considered Albert Einstein's annus mirabilis, his miraculous year.",
	`The most expensive photograph in the world is "Le Violon d'Ingres". The photograph was created by Man Ray.`,
	"The 2023 Grammy Awards ceremony was held on February 5, 2023. Thus, the ceremony has already taken place.",
	"The disaster occurred on December 26, 2004. Thus, it happened 19 years ago.",
	"Amazon's market capitalization has never exceeded $3 trillion.",
}

// VerboseDemoAnswers are the long-form variants.
var VerboseDemoAnswers = []string{
	"In the year of 1905, Albert Einstein published four groundbreaking papers that revolutionized scientific understanding of the universe. Thus, scientists call 1905 Albert Einstein's annus mirabilis — his year of miracles.",
	`Man Ray's famed "Le Violon d'Ingres" became the most expensive photograph ever to sell at auction, sold for $12.4 million on May 14th, 2022 at Christie's New York. The black and white image, taken in 1924 by the American surrealist artist, transforms a woman's naked body into a violin by overlaying the picture of her back with f-holes. Thus, Man Ray is the photographer who took the most expensive photograph in the world.`,
	"The 2023 Grammy Awards, officially known as the 65th Annual Grammy Awards ceremony, was held in Los Angeles on February 5, 2023. Thus, the event has already taken place.",
	"The Boxing Day Tsunami refers to the 2004 Indian Ocean earthquake and tsunami, which is one of the deadliest natural disasters in recorded history, killing an estimated 230,000 people across 14 countries. The disaster occurred on December 26, 2004, which is 19 years ago.",
	"Amazon's market capitalization hit a peak of roughly $1.9 trillion in July 2021. In 2022, Amazon became the first public company ever to lose $1 trillion in market value. Thus, Amazon's market value has never exceeded $3 trillion. In fact, Apple became the first publicly traded U.S. company to exceed a market value of $3 trillion in January 2022.",
}

// BuildDemoBlock runs live searches for the demo questions and concatenates
// their FreshPrompt blocks, each answered with the "As of today ..." prefix.
// The result is prepended to a question prompt for few-shot runs.
func BuildDemoBlock(ctx context.Context, client search.Client, limits Limits, verbose bool) (string, error) {
	answers := ConciseDemoAnswers
	if verbose {
		answers = VerboseDemoAnswers
	}
	prefix := fmt.Sprintf(
		"\nanswer: As of today %s, the most up-to-date and relevant information regarding this query is as follows. ",
		CurrentDate(),
	)

	var b strings.Builder
	for i, q := range DemoQuestions {
		results, err := client.Search(ctx, q)
		if err != nil {
			return "", fmt.Errorf("demo search for %q failed: %w", q, err)
		}
		b.WriteString(Format(q, results, prefix+answers[i], limits))
	}
	return strings.TrimSpace(b.String()), nil
}
