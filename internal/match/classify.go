// Package match implements the classification engine: it takes one
// learner's selected assertions and determines which classification rules
// they satisfy, how far they are from the expected classification, what
// hints to show, and — on a correct match — the resolved journal entry.
//
// Everything here is a pure function over the submission and the static
// catalogs. The package holds no per-learner state and performs no I/O,
// so concurrent classify calls need no coordination.
package match

import (
	"sort"

	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/rules"
)

// Classify evaluates one submitted selection against the full rule set
// and the expected classification for the current problem.
//
// Status policy: an empty selection is incomplete; satisfying exactly
// the expected rule is correct; satisfying nothing is incorrect;
// satisfying more than one rule is indeterminate (the assertions
// under-specify the business event, even if the expected rule is among
// them); satisfying exactly one rule that is not the expected one is
// incorrect.
//
// Selections referencing codes absent from the assertion catalog are
// rejected before matching with an UnknownCodeError. A correct match
// whose journal entry cannot be resolved returns a LinkageError. Both
// errors are recoverable input/content problems, never panics.
func Classify(selected Selection, expected rules.Key) (*MatchResult, error) {
	return classify(rules.All(), selected, expected)
}

// classify is Classify over an explicit rule table, used by tests.
func classify(all []rules.Rule, selected Selection, expected rules.Key) (*MatchResult, error) {
	if err := rejectUnknownCodes(selected); err != nil {
		return nil, err
	}

	codes := selected.Codes()

	var matched []rules.Key
	for _, r := range all {
		if rules.Matches(r, codes) {
			matched = append(matched, r.Key)
		}
	}

	res := &MatchResult{Matched: matched}

	switch {
	case len(selected) == 0:
		res.Status = StatusIncomplete
	case len(matched) == 1 && matched[0] == expected:
		res.Status = StatusCorrect
	case len(matched) > 1:
		res.Status = StatusIndeterminate
	default:
		res.Status = StatusIncorrect
	}

	if res.Status == StatusCorrect {
		r, err := ruleByKey(all, expected)
		if err != nil {
			return nil, err
		}
		entry, err := ResolveEntry(r, selected)
		if err != nil {
			return nil, err
		}
		res.Entry = entry
		return res, nil
	}

	res.Nearest = nearestIn(all, codes)
	res.Hints = buildHints(res.Nearest, matched, expected)
	return res, nil
}

func ruleByKey(all []rules.Rule, key rules.Key) (rules.Rule, error) {
	for _, r := range all {
		if r.Key == key {
			return r, nil
		}
	}
	return rules.Rule{}, &rules.NotFoundError{Key: key}
}

// rejectUnknownCodes validates every selected code against the catalog.
// Codes are checked in sorted order so the reported offender is
// deterministic regardless of map iteration.
func rejectUnknownCodes(selected Selection) error {
	codes := make([]assertion.Code, 0, len(selected))
	for code := range selected {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		if !assertion.Known(code) {
			return &UnknownCodeError{Code: code}
		}
	}
	return nil
}
