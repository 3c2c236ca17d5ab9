package match

import (
	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/rules"
)

// Distance measures how far a selection is from satisfying a rule:
// the count of required-but-missing codes plus the count of selected
// codes the rule prohibits. Selected codes the rule neither requires
// nor prohibits cost nothing, so this is deliberately not a symmetric
// edit distance. Distance is zero exactly when Matches is true.
func Distance(r rules.Rule, selected map[assertion.Code]bool) int {
	d := 0
	for _, code := range r.Required {
		if !selected[code] {
			d++
		}
	}
	for _, code := range r.Prohibited {
		if selected[code] {
			d++
		}
	}
	return d
}

// nearestIn finds the rule with minimal distance to the selection.
// Ties break to the earliest-declared rule, which keeps hint targets
// deterministic. Missing codes come back in the rule's required order,
// extra codes in the rule's prohibited order.
func nearestIn(all []rules.Rule, selected map[assertion.Code]bool) *Nearest {
	if len(all) == 0 {
		return nil
	}

	best := -1
	bestDist := 0
	for i, r := range all {
		d := Distance(r, selected)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}

	r := all[best]
	n := &Nearest{Rule: r.Key, Distance: bestDist}
	for _, code := range r.Required {
		if !selected[code] {
			n.Missing = append(n.Missing, code)
		}
	}
	for _, code := range r.Prohibited {
		if selected[code] {
			n.Extra = append(n.Extra, code)
		}
	}
	return n
}
