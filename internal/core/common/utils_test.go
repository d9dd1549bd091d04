package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

func TestParseJSONPlain(t *testing.T) {
	result, err := ParseJSON[payload](`{"answer": "42", "confidence": 0.9}`)

	assert.NoError(t, err)
	assert.Equal(t, "42", result.Answer)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestParseJSONMarkdownFence(t *testing.T) {
	response := "Here is my answer:\n```json\n{\"answer\": \"42\", \"confidence\": 0.9}\n```\nHope that helps!"

	result, err := ParseJSON[payload](response)

	assert.NoError(t, err)
	assert.Equal(t, "42", result.Answer)
}

func TestParseJSONBareFence(t *testing.T) {
	response := "```\n{\"answer\": \"34\", \"confidence\": 0.7}\n```"

	result, err := ParseJSON[payload](response)

	assert.NoError(t, err)
	assert.Equal(t, "34", result.Answer)
}

func TestParseJSONSurroundingProse(t *testing.T) {
	response := `Sure! The JSON you asked for is {"answer": "8128", "confidence": 1} and nothing else.`

	result, err := ParseJSON[payload](response)

	assert.NoError(t, err)
	assert.Equal(t, "8128", result.Answer)
}

func TestParseJSONRepairsTrailingComma(t *testing.T) {
	response := `{"answer": "405", "confidence": 0.8,}`

	result, err := ParseJSON[payload](response)

	assert.NoError(t, err)
	assert.Equal(t, "405", result.Answer)
}

func TestParseJSONNoObject(t *testing.T) {
	_, err := ParseJSON[payload]("I cannot answer that in JSON, sorry.")

	assert.Error(t, err)
}
