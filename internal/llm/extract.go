package llm

import (
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n\\s*```")

// ExtractJSON pulls the JSON payload out of a model reply. Models often
// wrap JSON in a fenced code block even when told not to; if a
// ```json fence is present its content wins, otherwise any stray fence
// markers are stripped and the remainder is treated as JSON.
func ExtractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
