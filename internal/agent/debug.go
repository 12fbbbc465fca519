package agent

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	model "github.com/egobogo/freshagent/internal/model"
)

const (
	traceSeparator    = "================================================================================"
	traceSubSeparator = "--------------------------------------------------------------------------------"

	traceContentLimit = 2000
)

// debugTrace prints the current message trace when debugging is enabled.
func (a *Agent) debugTrace(msgs []model.Message, title string) {
	if !a.cfg.Debug {
		return
	}
	PrintTrace(os.Stderr, msgs, title)
}

// PrintTrace renders the conversation in a structured, truncated form:
// one block per message, tool calls summarized, evidence and snapshot
// system messages flagged.
func PrintTrace(w io.Writer, msgs []model.Message, title string) {
	head := fmt.Sprintf("[%s] TRACE", time.Now().Format("15:04:05"))
	if title != "" {
		head += " — " + title
	}
	fmt.Fprintln(w, traceSeparator)
	fmt.Fprintln(w, head)
	fmt.Fprintln(w, traceSeparator)

	for i, m := range msgs {
		fmt.Fprintf(w, "[%02d] ROLE=%s\n", i, strings.ToUpper(m.Role))
		switch m.Role {
		case "assistant":
			if len(m.ToolCalls) > 0 {
				fmt.Fprintln(w, "tool_calls:")
				for _, tc := range m.ToolCalls {
					fmt.Fprintf(w, "  - id: %s\n", tc.ID)
					fmt.Fprintf(w, "    type: %s\n", tc.Type)
					fmt.Fprintf(w, "    function.name: %s\n", tc.Function.Name)
					args := strings.ReplaceAll(truncate(tc.Function.Arguments, 400), "\n", " ")
					fmt.Fprintf(w, "    function.arguments: %s\n", args)
				}
			}
			if c := strings.TrimSpace(m.Content); c != "" {
				fmt.Fprintln(w, truncate(c, traceContentLimit))
			}
		case "tool":
			fmt.Fprintln(w, renderToolContent(m.Content))
		default:
			label := ""
			if isEvidenceBlock(m.Content) {
				label = "[EVIDENCE/FINAL] "
			}
			fmt.Fprintln(w, label+truncate(m.Content, traceContentLimit))
		}
		fmt.Fprintln(w, traceSubSeparator)
	}
}

// renderToolContent pretty-prints tool replies when they are JSON.
func renderToolContent(content string) string {
	var obj interface{}
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if pretty, err := json.MarshalIndent(obj, "", "  "); err == nil {
			return truncate(string(pretty), traceContentLimit)
		}
	}
	return truncate(content, traceContentLimit)
}

func isEvidenceBlock(content string) bool {
	c := strings.ToUpper(content)
	return strings.Contains(c, "EVIDENCE BLOCK") ||
		strings.Contains(c, "EVIDENCE (RAW") ||
		strings.Contains(c, "FINAL SYNTHESIS CONTEXT")
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + fmt.Sprintf("\n...[truncated %d chars]", len(text)-limit)
}
