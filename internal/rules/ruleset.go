package rules

import (
	"fmt"
	"slices"

	"github.com/abhisek/aalp/internal/assertion"
)

// NotFoundError indicates a lookup for an unknown rule key.
type NotFoundError struct {
	Key Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("classification rule not found: %q", e.Key)
}

// ruleset holds the classification rules with precomputed indices.
// Declaration order is the tie-break order for nearest-rule ranking,
// so it is preserved everywhere.
type ruleset struct {
	rules []Rule
	byKey map[Key]*Rule
}

// rs is the package-level ruleset singleton, set by init() in seed.go.
var rs *ruleset

func buildRuleset(all []Rule) *ruleset {
	r := &ruleset{
		rules: all,
		byKey: make(map[Key]*Rule, len(all)),
	}
	for i := range r.rules {
		r.byKey[r.rules[i].Key] = &r.rules[i]
	}
	return r
}

// Get returns the rule for a key, or NotFoundError if unknown.
func Get(key Key) (Rule, error) {
	r, ok := rs.byKey[key]
	if !ok {
		return Rule{}, &NotFoundError{Key: key}
	}
	return *r, nil
}

// All returns every rule in declaration order.
func All() []Rule {
	return slices.Clone(rs.rules)
}

// ForLevel returns the rules taught at or below the given learner level,
// in declaration order.
func ForLevel(level int) []Rule {
	var out []Rule
	for _, r := range rs.rules {
		if r.Level <= level {
			out = append(out, r)
		}
	}
	return out
}

// MaxLevel returns the highest level used by any rule.
func MaxLevel() int {
	max := 1
	for _, r := range rs.rules {
		if r.Level > max {
			max = r.Level
		}
	}
	return max
}

// Matches reports whether the selected codes satisfy the rule exactly:
// every required assertion is selected and no prohibited assertion is.
// Extra assertions that the rule neither requires nor prohibits do not
// fail the match.
func Matches(r Rule, selected map[assertion.Code]bool) bool {
	for _, code := range r.Required {
		if !selected[code] {
			return false
		}
	}
	for _, code := range r.Prohibited {
		if selected[code] {
			return false
		}
	}
	return true
}

// AllMatches evaluates every rule against the selected codes and returns
// the keys of all matching rules in declaration order. Overlapping
// required sets make multiple matches possible; the caller decides what
// multiple matches mean.
func AllMatches(selected map[assertion.Code]bool) []Key {
	return matchesIn(rs.rules, selected)
}

// matchesIn is AllMatches over an explicit rule slice, used by tests
// with custom rule tables.
func matchesIn(all []Rule, selected map[assertion.Code]bool) []Key {
	var keys []Key
	for _, r := range all {
		if Matches(r, selected) {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

// Validate checks the ruleset for structural issues.
func Validate() error {
	return validateRules(rs.rules)
}
