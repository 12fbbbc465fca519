package freshprompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/egobogo/freshagent/internal/search"
)

// Evidence is the unified row schema every search result collapses into.
// Empty strings mean the field is unknown.
type Evidence struct {
	Source    string
	Date      string
	Title     string
	Snippet   string
	Highlight string
}

// IsEmpty reports whether no field carries information. Fully empty rows are
// padding slots and get dropped before rendering.
func (e Evidence) IsEmpty() bool {
	return e.Source == "" && e.Date == "" && e.Title == "" && e.Snippet == "" && e.Highlight == ""
}

// String renders an evidence block. Unknown fields print as None to match
// the FreshPrompt table layout the demos were written against.
func (e Evidence) String() string {
	return "\n\n" +
		"source: " + orNone(e.Source) + "\n" +
		"date: " + orNone(e.Date) + "\n" +
		"title: " + orNone(e.Title) + "\n" +
		"snippet: " + orNone(e.Snippet) + "\n" +
		"highlight: " + orNone(e.Highlight)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// FormatOptions redirect which raw fields feed the title and highlight
// columns (related questions use "question", answer boxes use "answer").
type FormatOptions struct {
	TitleField     string
	HighlightField string
}

// SimplifyDisplayedLink reduces a displayed link, possibly with  › breadcrumb
// segments, to its bare domain.
func SimplifyDisplayedLink(displayed string) string {
	if displayed == "" {
		return ""
	}
	left := strings.Split(displayed, " › ")[0]
	return search.ExtractHost(left)
}

// FormatSearchResult normalizes one heterogeneous search result map into the
// evidence schema. It understands the SerpAPI extras: highlighted snippet
// word lists, local_time and population_result blocks, rich snippet
// extensions, list snippets, and embedded tables.
func FormatSearchResult(sd map[string]interface{}, opts FormatOptions) Evidence {
	displayed := stringify(sd["displayed_link"])
	if displayed == "" {
		displayed = stringify(sd["source"])
	}
	if displayed == "" {
		displayed = search.ExtractHost(stringify(sd["link"]))
	}
	displayed = SimplifyDisplayedLink(displayed)

	highlightWords := joinList(sd["snippet_highlighted_words"], " | ")

	switch stringify(sd["type"]) {
	case "local_time":
		snippet := stringify(sd["snippet"])
		if snippet == "" && sd["result"] != nil {
			parts := []string{stringify(sd["result"])}
			parts = append(parts, listStrings(sd["extensions"])...)
			snippet = strings.Join(parts, "\n\t")
		}
		highlight := highlightWords
		if highlight == "" {
			highlight = stringify(sd["result"])
		}
		return Evidence{
			Source:    displayed,
			Date:      FormatDate(stringify(sd["date"])),
			Title:     stringify(sd["title"]),
			Snippet:   snippet,
			Highlight: highlight,
		}

	case "population_result":
		source := displayed
		if source == "" {
			if srcs, ok := sd["sources"].([]interface{}); ok && len(srcs) > 0 {
				if first, ok := srcs[0].(map[string]interface{}); ok {
					source = search.ExtractHost(stringify(first["link"]))
				}
			}
		}
		date := FormatDate(stringify(sd["date"]))
		if date == "" {
			date = FormatDate(stringify(sd["year"]))
		}
		snippet := stringify(sd["snippet"])
		if snippet == "" && sd["population"] != nil {
			if place := stringify(sd["place"]); place != "" {
				snippet = place + " / Population\n\t" + stringify(sd["population"])
			} else {
				snippet = stringify(sd["population"])
			}
		}
		highlight := highlightWords
		if highlight == "" {
			highlight = stringify(sd["population"])
		}
		return Evidence{
			Source:    source,
			Date:      date,
			Title:     stringify(sd["title"]),
			Snippet:   snippet,
			Highlight: highlight,
		}
	}

	titleField := opts.TitleField
	if titleField == "" {
		titleField = "title"
	}
	highlight := highlightWords
	if opts.HighlightField != "" {
		highlight = stringify(sd[opts.HighlightField])
	}

	snippet := stringify(sd["snippet"])

	// Rich snippets bolt extra lines (ratings, dates, prices) onto the text.
	if rich, ok := sd["rich_snippet"].(map[string]interface{}); ok {
		for _, key := range []string{"top", "bottom"} {
			if part, ok := rich[key].(map[string]interface{}); ok {
				if exts := listStrings(part["extensions"]); len(exts) > 0 {
					snippet = strings.Join(append([]string{snippet}, exts...), "\n\t")
				}
			}
		}
	}

	if items := listStrings(sd["list"]); len(items) > 0 {
		snippet = strings.Join(append([]string{snippet}, items...), "\n\t")
	}

	if contents, ok := sd["contents"].(map[string]interface{}); ok {
		if table, ok := contents["table"].([]interface{}); ok {
			var b strings.Builder
			b.WriteString(snippet)
			b.WriteString("\n")
			for _, row := range table {
				b.WriteString("\n")
				if cells, ok := row.([]interface{}); ok {
					parts := make([]string, 0, len(cells))
					for _, c := range cells {
						parts = append(parts, stringify(c))
					}
					b.WriteString(strings.Join(parts, ","))
				} else {
					b.WriteString(stringify(row))
				}
			}
			snippet = b.String()
		}
	}

	if strings.TrimSpace(snippet) == "" {
		snippet = ""
	}

	return Evidence{
		Source:    displayed,
		Date:      FormatDate(stringify(sd["date"])),
		Title:     stringify(sd[titleField]),
		Snippet:   snippet,
		Highlight: highlight,
	}
}

// FormatKnowledgeGraph normalizes a knowledge-graph block. String attributes
// become indented "field: value" snippet lines; identifiers, links and
// sticky-header keys are skipped.
func FormatKnowledgeGraph(sd map[string]interface{}) Evidence {
	var source string
	if src, ok := sd["source"].(map[string]interface{}); ok {
		source = search.ExtractHost(stringify(src["link"]))
	}

	var title string
	if sd["title"] != nil {
		title = stringify(sd["title"])
		if sd["type"] != nil {
			title += "\n\t" + stringify(sd["type"])
		}
	}

	// Deterministic attribute order; the raw map carries no ordering.
	var lines []string
	for _, field := range sortedKeys(sd) {
		if field == "title" || field == "type" || field == "kgmid" {
			continue
		}
		if strings.Contains(field, "_link") || strings.Contains(field, "_stick") {
			continue
		}
		val, ok := sd[field].(string)
		if !ok || strings.HasPrefix(val, "http") {
			continue
		}
		lines = append(lines, "\t"+field+": "+val)
	}
	snippet := strings.TrimSpace(strings.Join(lines, "\n"))

	return Evidence{Source: source, Title: title, Snippet: snippet}
}

// FormatQuestionsAndAnswers normalizes a Q&A-style result.
func FormatQuestionsAndAnswers(sd map[string]interface{}) Evidence {
	var source string
	if sd["link"] != nil {
		source = search.ExtractHost(stringify(sd["link"]))
	}
	return Evidence{
		Source:  source,
		Title:   stringify(sd["question"]),
		Snippet: stringify(sd["answer"]),
	}
}

// stringify renders a loose JSON value as display text: strings pass
// through, whole numbers drop the superfluous decimal point.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// joinList joins a JSON array with sep; empty when absent or not a list.
func joinList(v interface{}, sep string) string {
	items := listStrings(v)
	if len(items) == 0 {
		return ""
	}
	return strings.Join(items, sep)
}

func listStrings(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		out = append(out, stringify(e))
	}
	return out
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
