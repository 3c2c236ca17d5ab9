package narrative

import "github.com/abhisek/aalp/internal/llm"

// NarrativeSchema defines the JSON shape for LLM narrative rewrites.
var NarrativeSchema = &llm.Schema{
	Name:        "transaction-narrative",
	Description: "A rewritten business transaction narrative",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"narrative": map[string]any{
				"type":        "string",
				"description": "The rewritten transaction story, plain text, 1-3 sentences",
			},
		},
		"required":             []any{"narrative"},
		"additionalProperties": false,
	},
}
