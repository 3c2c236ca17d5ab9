package session

import (
	"sort"
	"time"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Duration      time.Duration
	TotalProblems int
	TotalCorrect  int
	Accuracy      float64
	RuleResults   []RuleResult
	Level         int
	Unlocked      bool
}

// BuildSummary creates a Summary from the session state.
func BuildSummary(state *State, duration time.Duration) *Summary {
	results := make([]RuleResult, 0, len(state.PerRuleResults))
	for _, rr := range state.PerRuleResults {
		results = append(results, *rr)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].RuleKey < results[j].RuleKey
	})

	var accuracy float64
	if state.TotalProblems > 0 {
		accuracy = float64(state.TotalCorrect) / float64(state.TotalProblems)
	}

	return &Summary{
		Duration:      duration,
		TotalProblems: state.TotalProblems,
		TotalCorrect:  state.TotalCorrect,
		Accuracy:      accuracy,
		RuleResults:   results,
		Level:         state.Level,
		Unlocked:      state.LastUnlock != nil,
	}
}
