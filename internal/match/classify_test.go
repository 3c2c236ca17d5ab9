package match

import (
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/rules"
)

// purchaseSelection is a fully parameterized selection satisfying the
// asset-purchase rule.
func purchaseSelection() Selection {
	return Selection{
		"asset-existence": Params{
			"item":     "Delivery Van",
			"unit":     "monetary-unit",
			"quantity": "1200",
		},
		"asset-control":       Params{"party": "the business"},
		"consideration-given": Params{"amount": "1200", "medium": "cash"},
	}
}

func TestClassifyCorrect(t *testing.T) {
	res, err := Classify(purchaseSelection(), "asset-purchase")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Status != StatusCorrect {
		t.Fatalf("status = %v, want correct", res.Status)
	}
	if len(res.Matched) != 1 || res.Matched[0] != "asset-purchase" {
		t.Errorf("matched = %v, want [asset-purchase]", res.Matched)
	}
	if res.Entry == nil {
		t.Fatal("correct result missing resolved entry")
	}
	if res.Nearest != nil || len(res.Hints) != 0 {
		t.Error("correct result should carry no nearest rule or hints")
	}
}

func TestClassifyMissingRequired(t *testing.T) {
	sel := purchaseSelection()
	delete(sel, "asset-control")

	res, err := Classify(sel, "asset-purchase")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Status != StatusIncorrect {
		t.Fatalf("status = %v, want incorrect", res.Status)
	}
	if res.Nearest == nil {
		t.Fatal("non-correct result missing nearest rule")
	}
	if res.Nearest.Rule != "asset-purchase" || res.Nearest.Distance != 1 {
		t.Errorf("nearest = %q distance %d, want asset-purchase distance 1",
			res.Nearest.Rule, res.Nearest.Distance)
	}
	if len(res.Nearest.Missing) != 1 || res.Nearest.Missing[0] != "asset-control" {
		t.Errorf("missing = %v, want [asset-control]", res.Nearest.Missing)
	}
	if len(res.Hints) != 1 || res.Hints[0].Kind != HintMissing || res.Hints[0].Code != "asset-control" {
		t.Errorf("hints = %+v, want one missing hint for asset-control", res.Hints)
	}
}

func TestClassifyProhibitedIncluded(t *testing.T) {
	sel := purchaseSelection()
	sel["revenue-earned"] = Params{"amount": "1200"}

	res, err := Classify(sel, "asset-purchase")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Status != StatusIncorrect {
		t.Fatalf("status = %v, want incorrect", res.Status)
	}
	// Both asset-purchase (prohibited included) and cash-sale (required
	// missing) sit at distance 1; the earlier-declared rule wins.
	if res.Nearest.Rule != "asset-purchase" || res.Nearest.Distance != 1 {
		t.Errorf("nearest = %q distance %d, want asset-purchase distance 1",
			res.Nearest.Rule, res.Nearest.Distance)
	}
	if len(res.Nearest.Extra) != 1 || res.Nearest.Extra[0] != "revenue-earned" {
		t.Errorf("extra = %v, want [revenue-earned]", res.Nearest.Extra)
	}
	if len(res.Hints) != 1 || res.Hints[0].Kind != HintProhibited {
		t.Errorf("hints = %+v, want one prohibited hint", res.Hints)
	}
}

func TestClassifyEmptySelection(t *testing.T) {
	res, err := Classify(Selection{}, "asset-purchase")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Status != StatusIncomplete {
		t.Errorf("status = %v, want incomplete", res.Status)
	}
	if len(res.Matched) != 0 {
		t.Errorf("matched = %v, want none", res.Matched)
	}
}

func TestClassifyWrongRuleMatched(t *testing.T) {
	sel := Selection{
		"benefit-consumed":    Params{"amount": "50"},
		"consideration-given": Params{"amount": "50", "medium": "cash"},
	}

	res, err := Classify(sel, "asset-purchase")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Status != StatusIncorrect {
		t.Fatalf("status = %v, want incorrect", res.Status)
	}
	if len(res.Matched) != 1 || res.Matched[0] != "expense" {
		t.Fatalf("matched = %v, want [expense]", res.Matched)
	}

	var would *Hint
	for i := range res.Hints {
		if res.Hints[i].Kind == HintWouldClassify {
			would = &res.Hints[i]
		}
	}
	if would == nil {
		t.Fatal("expected a would-classify hint")
	}
	if would.Rule != "expense" {
		t.Errorf("would-classify rule = %q, want expense", would.Rule)
	}
	wantText := "Your assertions would classify this as Expense. Does that seem right?"
	if would.Text != wantText {
		t.Errorf("hint text = %q, want %q", would.Text, wantText)
	}
}

func TestClassifyIndeterminate(t *testing.T) {
	// Satisfies both production and credit-sale.
	sel := Selection{
		"inventory-transformed": Params{"input-cost": "30", "output-item": "chairs"},
		"revenue-earned":        Params{"amount": "80"},
		"claim-created":         Params{"counterparty": "Acme", "amount": "80"},
	}

	res, err := Classify(sel, "production")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Status != StatusIndeterminate {
		t.Fatalf("status = %v, want indeterminate (matched %v)", res.Status, res.Matched)
	}
	if len(res.Matched) != 2 {
		t.Errorf("matched = %v, want two rules", res.Matched)
	}
	// Even with the expected rule among the matches, multiple satisfied
	// rules mean the assertions under-specify the event.
	var would int
	for _, h := range res.Hints {
		if h.Kind == HintWouldClassify {
			would++
			if h.Rule == "production" {
				t.Error("would-classify hint should not name the expected rule")
			}
		}
	}
	if would != 1 {
		t.Errorf("got %d would-classify hints, want 1", would)
	}
}

func TestClassifyUnknownCode(t *testing.T) {
	sel := Selection{"vibes-good": Params{}}

	_, err := Classify(sel, "asset-purchase")
	var uc *UnknownCodeError
	if !errors.As(err, &uc) {
		t.Fatalf("error = %v, want UnknownCodeError", err)
	}
	if uc.Code != "vibes-good" {
		t.Errorf("UnknownCodeError.Code = %q", uc.Code)
	}
}

func TestClassifyUnknownCodeDeterministicOffender(t *testing.T) {
	sel := Selection{
		"zz-bogus": Params{},
		"aa-bogus": Params{},
	}
	for range 20 {
		_, err := Classify(sel, "asset-purchase")
		var uc *UnknownCodeError
		if !errors.As(err, &uc) {
			t.Fatalf("error = %v, want UnknownCodeError", err)
		}
		if uc.Code != "aa-bogus" {
			t.Fatalf("offender = %q, want aa-bogus every time", uc.Code)
		}
	}
}

func TestClassifyLinkageError(t *testing.T) {
	sel := purchaseSelection()
	sel["consideration-given"] = Params{"medium": "cash"} // amount withheld

	_, err := Classify(sel, "asset-purchase")
	var le *LinkageError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want LinkageError", err)
	}
	if le.Param != "amount" || le.AssertionMissing {
		t.Errorf("LinkageError = %+v, want missing amount param", le)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	sel := purchaseSelection()
	delete(sel, "asset-control")

	first, err := Classify(sel, "asset-purchase")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Classify(sel, "asset-purchase")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat classification differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestClassifyTieBreakByDeclarationOrder(t *testing.T) {
	custom := []rules.Rule{
		{Key: "first", Name: "First", Level: 1, Required: []assertion.Code{"revenue-earned", "claim-created"}},
		{Key: "second", Name: "Second", Level: 1, Required: []assertion.Code{"revenue-earned", "claim-collected"}},
	}
	sel := Selection{"revenue-earned": Params{"amount": "10"}}

	for range 20 {
		res, err := classify(custom, sel, "first")
		if err != nil {
			t.Fatal(err)
		}
		if res.Nearest.Rule != "first" {
			t.Fatalf("nearest = %q, want first every time", res.Nearest.Rule)
		}
	}
}
