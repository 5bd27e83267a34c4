package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractObject_Bare(t *testing.T) {
	got := ExtractObject(`{"a":1}`)
	assert.JSONEq(t, `{"a":1}`, got)
}

func TestExtractObject_Fenced(t *testing.T) {
	got := ExtractObject("prose\n```json\n{\"a\": 1}\n```\nmore prose")
	assert.JSONEq(t, `{"a":1}`, got)
}

func TestExtractObject_StripsComments(t *testing.T) {
	got := ExtractObject("{\n\"url\": \"http://example.com\", // not a comment inside the string\n\"a\": 1\n}")
	assert.JSONEq(t, `{"url":"http://example.com","a":1}`, got)
}

func TestExtractObject_None(t *testing.T) {
	assert.Empty(t, ExtractObject("no structure here"))
}
