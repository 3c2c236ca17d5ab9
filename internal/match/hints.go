package match

import (
	"fmt"

	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/rules"
)

// Hint wording lives in these tables, separate from the trigger logic,
// so content edits never touch the matching algorithm.

// missingHintTexts is the per-assertion hint shown when the nearest rule
// requires an assertion the learner did not select.
var missingHintTexts = map[assertion.Code]string{
	"asset-existence":        "Did the business end up holding something of value?",
	"asset-control":          "Who controls the resource after this transaction?",
	"consideration-given":    "Did the business give anything up in this transaction?",
	"consideration-received": "Did the business receive anything in this transaction?",
	"obligation-created":     "Does this transaction create an obligation to pay someone later?",
	"obligation-settled":     "Was an existing debt paid off here?",
	"claim-created":          "Does someone now owe the business money?",
	"claim-collected":        "Was an existing customer debt collected here?",
	"revenue-earned":         "Has the business actually earned anything yet?",
	"benefit-consumed":       "Was something used up with nothing lasting left behind?",
	"inventory-transformed":  "Were inputs turned into something new?",
	"timing-deferred":        "Does the benefit of this payment belong to future periods?",
}

// domainHintTexts is the fallback when an assertion has no specific text.
var domainHintTexts = map[assertion.Domain]string{
	assertion.DomainResources:   "Think about the resources side of this transaction.",
	assertion.DomainExchange:    "Think about what value changed hands.",
	assertion.DomainObligations: "Think about who owes whom after this transaction.",
	assertion.DomainPerformance: "Think about what the business earned or used up.",
	assertion.DomainTiming:      "Think about when the effect of this transaction belongs.",
}

func missingHint(code assertion.Code) Hint {
	text, ok := missingHintTexts[code]
	if !ok {
		def, err := assertion.Get(code)
		if err == nil {
			text = domainHintTexts[def.Domain]
		}
		if text == "" {
			text = "There is an assertion about this transaction you have not selected."
		}
	}
	return Hint{Kind: HintMissing, Code: code, Text: text}
}

func prohibitedHint(code assertion.Code) Hint {
	label := string(code)
	if def, err := assertion.Get(code); err == nil {
		label = def.Label
	}
	return Hint{
		Kind: HintProhibited,
		Code: code,
		Text: fmt.Sprintf("Re-examine %q — does it really hold for this transaction?", label),
	}
}

func wouldClassifyHint(key rules.Key) Hint {
	name := string(key)
	if r, err := rules.Get(key); err == nil {
		name = r.Name
	}
	return Hint{
		Kind: HintWouldClassify,
		Rule: key,
		Text: fmt.Sprintf("Your assertions would classify this as %s. Does that seem right?", name),
	}
}

// buildHints assembles the ordered hint list for a non-correct result:
// missing-required hints first (in the nearest rule's required order),
// then prohibited-inclusion hints, then one would-classify hint per
// satisfied rule other than the expected one.
func buildHints(nearest *Nearest, matched []rules.Key, expected rules.Key) []Hint {
	var hints []Hint
	if nearest != nil {
		for _, code := range nearest.Missing {
			hints = append(hints, missingHint(code))
		}
		for _, code := range nearest.Extra {
			hints = append(hints, prohibitedHint(code))
		}
	}
	for _, key := range matched {
		if key != expected {
			hints = append(hints, wouldClassifyHint(key))
		}
	}
	return hints
}
