// Package llm abstracts the language-model backends used to dress
// generated practice problems in business prose. The classification
// engine never depends on this package; a missing or failing provider
// degrades to template narratives, never to a broken session.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the rest of the app talks to.
type Provider interface {
	// Generate sends one prompt and returns the model's output. When the
	// request carries a Schema, the provider asks for structured output
	// and validates the JSON against it before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// Request is one generation call. Narrative embellishment is always
// single-turn, so Messages usually holds exactly one user message.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema // When set, response Content must conform.
	MaxTokens   int
	Temperature float64 // 0 means deterministic.
}

// Message is one turn of conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must satisfy.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case.
	Name string

	// Description guides the model toward the intended shape.
	Description string

	// Definition is the JSON Schema as a plain map.
	Definition map[string]any
}

// Response is the model's output plus accounting metadata.
type Response struct {
	// Content is validated JSON when the request had a Schema, otherwise
	// the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly alias to a provider model ID; unknown
// names pass through so direct model IDs work.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
