package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/curly60e/warp/internal/gateway"
)

// FormatResult renders a gateway result for the output pane. Structured
// values become indented JSON with each serialized line hard-wrapped to the
// terminal width; failures are shown verbatim.
func FormatResult(res gateway.Result, width int) string {
	if !res.OK() {
		return res.Message()
	}
	encoded, err := json.MarshalIndent(res.Value(), "", "    ")
	if err != nil {
		return fmt.Sprintf("error rendering response: %v", err)
	}
	return wrapLines(string(encoded), width)
}

// wrapLines wraps every line of text at the given display width. The wrap is
// a character wrap on the serialized line, not a word wrap.
func wrapLines(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for runewidth.StringWidth(line) > width {
			head := runewidth.Truncate(line, width, "")
			if head == "" {
				break
			}
			out = append(out, head)
			line = line[len(head):]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
