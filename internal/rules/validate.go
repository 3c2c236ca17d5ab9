package rules

import (
	"fmt"
	"strings"

	"github.com/abhisek/aalp/internal/assertion"
)

// validateRules performs all structural checks on the given rule set.
// A failure here means the static content is internally inconsistent,
// which must prevent startup rather than surface at classify time.
// Returns a combined error describing all problems found, or nil.
func validateRules(all []Rule) error {
	var errs []string

	keySet := make(map[Key]bool, len(all))
	for _, r := range all {
		if keySet[r.Key] {
			errs = append(errs, fmt.Sprintf("duplicate rule key: %q", r.Key))
		}
		keySet[r.Key] = true

		if r.Level < 1 {
			errs = append(errs, fmt.Sprintf("rule %q: level must be >= 1, got %d", r.Key, r.Level))
		}
		if len(r.Required) == 0 {
			errs = append(errs, fmt.Sprintf("rule %q: empty required set", r.Key))
		}

		// Every referenced assertion code must exist in the catalog, and a
		// rule cannot be taught before its required assertions unlock.
		for _, code := range r.Required {
			if !assertion.Known(code) {
				errs = append(errs, fmt.Sprintf("rule %q requires unknown assertion %q", r.Key, code))
				continue
			}
			def, _ := assertion.Get(code)
			if def.Level > r.Level {
				errs = append(errs, fmt.Sprintf("rule %q (level %d) requires assertion %q which unlocks at level %d", r.Key, r.Level, code, def.Level))
			}
		}
		for _, code := range r.Prohibited {
			if !assertion.Known(code) {
				errs = append(errs, fmt.Sprintf("rule %q prohibits unknown assertion %q", r.Key, code))
			}
		}

		// Required and prohibited sets must be disjoint.
		req := r.RequiredSet()
		for _, code := range r.Prohibited {
			if req[code] {
				errs = append(errs, fmt.Sprintf("rule %q: assertion %q is both required and prohibited", r.Key, code))
			}
		}

		// Every journal-entry account must have a linkage, and every
		// linkage must point at a required assertion with a real
		// parameter, so that a matched rule can always find its source.
		usedAccounts := make(map[AccountLabel]bool)
		for _, line := range r.JournalEntry {
			usedAccounts[line.Debit] = true
			usedAccounts[line.Credit] = true
		}
		for acct := range usedAccounts {
			if _, ok := r.AccountLinkage[acct]; !ok {
				errs = append(errs, fmt.Sprintf("rule %q: account %q has no linkage", r.Key, acct))
			}
		}
		for acct, link := range r.AccountLinkage {
			if !usedAccounts[acct] {
				errs = append(errs, fmt.Sprintf("rule %q: linkage for unused account %q", r.Key, acct))
			}
			if !req[link.Assertion] {
				errs = append(errs, fmt.Sprintf("rule %q account %q: linkage points at non-required assertion %q", r.Key, acct, link.Assertion))
			}
			def, err := assertion.Get(link.Assertion)
			if err != nil {
				continue // already reported above
			}
			if _, ok := def.Param(link.AmountParam); !ok {
				errs = append(errs, fmt.Sprintf("rule %q account %q: assertion %q has no parameter %q", r.Key, acct, link.Assertion, link.AmountParam))
			}
			for _, dp := range link.DetailParams {
				if _, ok := def.Param(dp); !ok {
					errs = append(errs, fmt.Sprintf("rule %q account %q: assertion %q has no detail parameter %q", r.Key, acct, link.Assertion, dp))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("classification rule validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
