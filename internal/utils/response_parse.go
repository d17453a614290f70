package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CompanionOutput is the structured response requested from the chat model.
type CompanionOutput struct {
	Reply           string   `json:"reply"`
	SuggestedTopics []string `json:"suggested_topics,omitempty"`
}

// ParseCompanionOutput extracts structured output from raw model text.
// Models wrap JSON in prose or code fences often enough that the parser
// falls back to treating the whole text as the reply when no valid JSON
// object is found.
func ParseCompanionOutput(raw string) (CompanionOutput, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return CompanionOutput{}, fmt.Errorf("empty model response")
	}

	candidate := clean
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start >= 0 && end > start {
		candidate = candidate[start : end+1]
	}

	var output CompanionOutput
	if err := json.Unmarshal([]byte(candidate), &output); err != nil || strings.TrimSpace(output.Reply) == "" {
		return CompanionOutput{Reply: clean}, nil
	}

	output.Reply = strings.TrimSpace(output.Reply)
	return output, nil
}
