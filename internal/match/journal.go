package match

import (
	"strconv"
	"strings"

	"github.com/abhisek/aalp/internal/rules"
)

// ResolveEntry fills in a rule's journal-entry template from the
// learner's parameter values. Each template line produces a debit and a
// credit resolved line, each linked back to the assertion and parameter
// that supplied its amount. Returns a LinkageError when a designated
// assertion is absent or its amount parameter is missing or not numeric.
//
// ResolveEntry does not require that the selection matches the rule;
// callers may use it to show what a satisfied-but-wrong rule would have
// produced.
func ResolveEntry(r rules.Rule, selected Selection) (*ResolvedEntry, error) {
	entry := &ResolvedEntry{Rule: r.Key}
	for _, line := range r.JournalEntry {
		debit, err := resolveLine(r, line.Debit, SideDebit, selected)
		if err != nil {
			return nil, err
		}
		credit, err := resolveLine(r, line.Credit, SideCredit, selected)
		if err != nil {
			return nil, err
		}
		entry.Lines = append(entry.Lines, debit, credit)
	}
	return entry, nil
}

func resolveLine(r rules.Rule, account rules.AccountLabel, side Side, selected Selection) (ResolvedLine, error) {
	link := r.AccountLinkage[account]

	params, ok := selected[link.Assertion]
	if !ok {
		return ResolvedLine{}, &LinkageError{
			Rule:             r.Key,
			Account:          account,
			Assertion:        link.Assertion,
			AssertionMissing: true,
		}
	}

	raw, ok := params[link.AmountParam]
	if !ok || strings.TrimSpace(raw) == "" {
		return ResolvedLine{}, &LinkageError{
			Rule:      r.Key,
			Account:   account,
			Assertion: link.Assertion,
			Param:     link.AmountParam,
		}
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return ResolvedLine{}, &LinkageError{
			Rule:      r.Key,
			Account:   account,
			Assertion: link.Assertion,
			Param:     link.AmountParam,
		}
	}

	// Detail parameters are descriptive only; absent ones are skipped.
	var details []string
	for _, key := range link.DetailParams {
		if v, ok := params[key]; ok && v != "" {
			details = append(details, v)
		}
	}

	return ResolvedLine{
		Account: account,
		Side:    side,
		Amount:  amount,
		Detail:  strings.Join(details, ", "),
		Source: SourceRef{
			Assertion: link.Assertion,
			ParamKey:  link.AmountParam,
			RawValue:  strings.TrimSpace(raw),
		},
	}, nil
}
