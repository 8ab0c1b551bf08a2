package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON_FencedBlock(t *testing.T) {
	text := "Here you go:\n```json\n{\"a\": 1}\n```\nLet me know if you need more."
	assert.Equal(t, `{"a": 1}`, ExtractJSON(text))
}

func TestExtractJSON_FencedBlockMultiline(t *testing.T) {
	text := "```json\n{\n  \"questions\": []\n}\n```"
	assert.Equal(t, "{\n  \"questions\": []\n}", ExtractJSON(text))
}

func TestExtractJSON_BareJSON(t *testing.T) {
	text := `  {"a": 1}  `
	assert.Equal(t, `{"a": 1}`, ExtractJSON(text))
}

func TestExtractJSON_StrayFences(t *testing.T) {
	text := "```json{\"a\": 1}```"
	assert.Equal(t, `{"a": 1}`, ExtractJSON(text))
}

func TestExtractJSON_PlainFenceWithoutLanguage(t *testing.T) {
	text := "```\n[{\"q\": \"x\"}]\n```"
	assert.Equal(t, `[{"q": "x"}]`, ExtractJSON(text))
}
