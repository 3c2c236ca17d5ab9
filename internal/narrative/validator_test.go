package narrative

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/aalp/internal/match"
)

func validProblem() *Problem {
	return &Problem{
		ID:         "p-1",
		Narrative:  "A customer walks into Rosa's Bakery and buys a wedding cake for $300, paying cash at the counter.",
		RuleKey:    "cash-sale",
		Level:      1,
		TemplateID: "cash-sale-counter",
		Solution: match.Selection{
			"revenue-earned":         match.Params{"amount": "300"},
			"consideration-received": match.Params{"amount": "300", "medium": "cash"},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate(validProblem()); err != nil {
		t.Fatalf("valid problem rejected: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Problem)
		wantCheck string
	}{
		{
			name:      "empty narrative",
			mutate:    func(p *Problem) { p.Narrative = "" },
			wantCheck: "structural",
		},
		{
			name:      "narrative too long",
			mutate:    func(p *Problem) { p.Narrative = strings.Repeat("x", 601) },
			wantCheck: "structural",
		},
		{
			name:      "unknown rule",
			mutate:    func(p *Problem) { p.RuleKey = "no-such-rule" },
			wantCheck: "structural",
		},
		{
			name:      "level below rule level",
			mutate:    func(p *Problem) { p.RuleKey = "prepaid-expense"; p.Level = 1 },
			wantCheck: "structural",
		},
		{
			name: "solution does not match rule",
			mutate: func(p *Problem) {
				delete(p.Solution, "consideration-received")
			},
			wantCheck: "round-trip",
		},
		{
			name: "solution matches a different rule",
			mutate: func(p *Problem) {
				p.RuleKey = "expense"
				p.Level = 2
			},
			wantCheck: "round-trip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProblem()
			tt.mutate(p)
			err := Validate(p)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if verr.Check != tt.wantCheck {
				t.Fatalf("check = %q, want %q (%v)", verr.Check, tt.wantCheck, err)
			}
		})
	}
}

func TestValidateNilProblem(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatal("expected error for nil problem")
	}
}
