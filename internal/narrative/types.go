// Package narrative generates practice problems: short business
// transaction stories with a known correct classification. Problems come
// from parameterized templates, so every generated problem carries the
// exact assertion selection that solves it. An LLM can optionally
// re-dress the prose; the underlying facts never change.
package narrative

import (
	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/rules"
)

// Problem is a generated practice problem ready for display.
type Problem struct {
	// ID uniquely identifies this problem instance.
	ID string

	// Narrative is the transaction story shown to the learner.
	Narrative string

	// RuleKey is the expected classification.
	RuleKey rules.Key

	// Level is the learner level the problem was generated for.
	Level int

	// TemplateID names the template that produced the problem.
	TemplateID string

	// Solution is the assertion selection (with parameter values) that
	// classifies the problem correctly. Never shown directly; used to
	// verify content and to render the expected journal entry.
	Solution match.Selection

	// Embellished is true when the narrative came from the LLM rather
	// than the raw template text.
	Embellished bool
}

// ValidationError describes why a generated problem failed validation.
type ValidationError struct {
	Check     string // which check failed
	Message   string
	Retryable bool // whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return "problem validation: " + e.Check + ": " + e.Message
}
