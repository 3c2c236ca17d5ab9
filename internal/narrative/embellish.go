package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/aalp/internal/llm"
)

const embellishSystemPrompt = `You rewrite short business transaction descriptions for an accounting practice app.

Rules:
- Keep every fact intact: the business, the counterparty, every dollar amount, what was exchanged, and the timing of payment.
- Do not add new transactions, amounts, or parties.
- Do not name the accounting treatment or use accounting vocabulary (no "debit", "credit", "expense", "asset", "liability", "revenue").
- Write 1-3 sentences of plain, lively prose. No bullet points, no headings.`

// EmbellishConfig tunes the LLM rewrite.
type EmbellishConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultEmbellishConfig returns the standard rewrite settings.
func DefaultEmbellishConfig() EmbellishConfig {
	return EmbellishConfig{MaxTokens: 300, Temperature: 0.8}
}

// Embellisher rewrites template narratives into livelier prose.
type Embellisher struct {
	provider llm.Provider
	config   EmbellishConfig
}

// NewEmbellisher creates an Embellisher on the given provider.
func NewEmbellisher(provider llm.Provider, cfg EmbellishConfig) *Embellisher {
	return &Embellisher{provider: provider, config: cfg}
}

// Embellish rewrites the problem's narrative in place. The rewrite is
// rejected (and the template text kept) if it drops any amount from the
// original; classification always works against the solution the
// template produced, so a rejected rewrite costs nothing but style.
func (e *Embellisher) Embellish(ctx context.Context, p *Problem) error {
	ctx = llm.WithPurpose(ctx, llm.PurposeNarrative)

	req := llm.Request{
		System: embellishSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Rewrite this transaction:\n\n" + p.Narrative},
		},
		Schema:      NarrativeSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("embellish narrative: %w", err)
	}

	var out struct {
		Narrative string `json:"narrative"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return fmt.Errorf("parse embellished narrative: %w", err)
	}

	rewritten := strings.TrimSpace(out.Narrative)
	if rewritten == "" || len(rewritten) > 600 {
		return &ValidationError{Check: "embellish", Message: "rewrite empty or too long", Retryable: true}
	}
	if missing := missingAmounts(p.Narrative, rewritten); len(missing) > 0 {
		return &ValidationError{
			Check:     "embellish",
			Message:   fmt.Sprintf("rewrite dropped amounts %v", missing),
			Retryable: true,
		}
	}

	p.Narrative = rewritten
	p.Embellished = true
	return nil
}

// missingAmounts returns the dollar amounts present in the original but
// absent from the rewrite.
func missingAmounts(original, rewritten string) []string {
	var missing []string
	for _, tok := range strings.Fields(original) {
		if !strings.HasPrefix(tok, "$") {
			continue
		}
		amount := strings.TrimRight(tok, ".,;:!?")
		if !strings.Contains(rewritten, amount) {
			missing = append(missing, amount)
		}
	}
	return missing
}
