package narrative

import (
	"fmt"

	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/rules"
)

// Validate checks a generated problem for structural soundness and then
// round-trips its solution through the classification engine: the
// solution must classify as exactly the expected rule and must resolve
// a journal entry. A failure here is a template bug, but it is reported
// as an error rather than a panic so a bad template cannot take down a
// session.
func Validate(p *Problem) error {
	if p == nil {
		return &ValidationError{Check: "structural", Message: "nil problem"}
	}
	if p.Narrative == "" {
		return &ValidationError{Check: "structural", Message: "empty narrative", Retryable: true}
	}
	if len(p.Narrative) > 600 {
		return &ValidationError{Check: "structural", Message: "narrative exceeds 600 characters", Retryable: true}
	}

	r, err := rules.Get(p.RuleKey)
	if err != nil {
		return &ValidationError{Check: "structural", Message: fmt.Sprintf("unknown rule %q", p.RuleKey)}
	}
	if p.Level < r.Level {
		return &ValidationError{
			Check:   "structural",
			Message: fmt.Sprintf("problem level %d below rule level %d", p.Level, r.Level),
		}
	}

	res, err := match.Classify(p.Solution, p.RuleKey)
	if err != nil {
		return &ValidationError{
			Check:   "round-trip",
			Message: fmt.Sprintf("solution does not resolve: %v", err),
		}
	}
	if res.Status != match.StatusCorrect {
		return &ValidationError{
			Check: "round-trip",
			Message: fmt.Sprintf("solution classifies as %s (matched %v), want correct %q",
				res.Status, res.Matched, p.RuleKey),
		}
	}
	return nil
}
