package common

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ExtractJSON pulls a JSON object out of an LLM response. It tolerates
// markdown code fences and prose around the object, and falls back to
// jsonrepair for responses that are almost-but-not-quite valid JSON.
func ExtractJSON(response string) (string, error) {
	jsonStr := strings.TrimSpace(response)

	// Strip markdown code fences first.
	if idx := strings.Index(jsonStr, "```json"); idx != -1 {
		jsonStr = jsonStr[idx+len("```json"):]
		if end := strings.Index(jsonStr, "```"); end != -1 {
			jsonStr = jsonStr[:end]
		}
	} else if idx := strings.Index(jsonStr, "```"); idx != -1 {
		jsonStr = jsonStr[idx+len("```"):]
		if end := strings.Index(jsonStr, "```"); end != -1 {
			jsonStr = jsonStr[:end]
		}
	}
	jsonStr = strings.TrimSpace(jsonStr)

	// Trim to the outermost object.
	start := strings.IndexByte(jsonStr, '{')
	end := strings.LastIndexByte(jsonStr, '}')
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	jsonStr = jsonStr[start : end+1]

	if json.Valid([]byte(jsonStr)) {
		return jsonStr, nil
	}

	repaired, err := jsonrepair.JSONRepair(jsonStr)
	if err != nil {
		return "", fmt.Errorf("response is not valid JSON and could not be repaired: %w", err)
	}
	return repaired, nil
}

// ParseJSON extracts and unmarshals a JSON object from an LLM response into T.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}
	return result, nil
}
