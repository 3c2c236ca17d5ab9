package match

import (
	"errors"
	"testing"

	"github.com/abhisek/aalp/internal/rules"
)

func TestResolveEntry(t *testing.T) {
	purchase, err := rules.Get("asset-purchase")
	if err != nil {
		t.Fatal(err)
	}

	entry, err := ResolveEntry(purchase, purchaseSelection())
	if err != nil {
		t.Fatalf("ResolveEntry error: %v", err)
	}
	if entry.Rule != "asset-purchase" {
		t.Errorf("entry rule = %q", entry.Rule)
	}
	if len(entry.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(entry.Lines))
	}

	debit := entry.Lines[0]
	if debit.Account != rules.AccountEquipment || debit.Side != SideDebit || debit.Amount != 1200 {
		t.Errorf("debit line = %+v", debit)
	}
	if debit.Detail != "Delivery Van, monetary-unit" {
		t.Errorf("debit detail = %q", debit.Detail)
	}
	if debit.Source.Assertion != "asset-existence" || debit.Source.ParamKey != "quantity" {
		t.Errorf("debit source = %+v", debit.Source)
	}

	credit := entry.Lines[1]
	if credit.Account != rules.AccountCash || credit.Side != SideCredit || credit.Amount != 1200 {
		t.Errorf("credit line = %+v", credit)
	}
	if credit.Detail != "cash" {
		t.Errorf("credit detail = %q", credit.Detail)
	}
}

func TestResolveEntryMissingAssertion(t *testing.T) {
	purchase, err := rules.Get("asset-purchase")
	if err != nil {
		t.Fatal(err)
	}
	sel := purchaseSelection()
	delete(sel, "consideration-given")

	_, err = ResolveEntry(purchase, sel)
	var le *LinkageError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want LinkageError", err)
	}
	if !le.AssertionMissing || le.Assertion != "consideration-given" {
		t.Errorf("LinkageError = %+v, want missing consideration-given", le)
	}
}

func TestResolveEntryBadAmount(t *testing.T) {
	purchase, err := rules.Get("asset-purchase")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		amount string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"non-numeric", "a lot"},
	}

	for _, tt := range tests {
		sel := purchaseSelection()
		sel["consideration-given"] = Params{"amount": tt.amount, "medium": "cash"}

		_, err := ResolveEntry(purchase, sel)
		var le *LinkageError
		if !errors.As(err, &le) {
			t.Errorf("%s: error = %v, want LinkageError", tt.name, err)
			continue
		}
		if le.AssertionMissing || le.Param != "amount" {
			t.Errorf("%s: LinkageError = %+v, want missing amount param", tt.name, le)
		}
	}
}

func TestResolveEntrySkipsAbsentDetails(t *testing.T) {
	purchase, err := rules.Get("asset-purchase")
	if err != nil {
		t.Fatal(err)
	}
	sel := purchaseSelection()
	sel["asset-existence"] = Params{"quantity": "1200", "item": "Delivery Van"} // no unit

	entry, err := ResolveEntry(purchase, sel)
	if err != nil {
		t.Fatalf("ResolveEntry error: %v", err)
	}
	if entry.Lines[0].Detail != "Delivery Van" {
		t.Errorf("detail = %q, want %q", entry.Lines[0].Detail, "Delivery Van")
	}
}

// ResolveEntry is also used to show what a satisfied-but-unexpected rule
// would have produced, so it must not require the selection to match.
func TestResolveEntryWithoutFullMatch(t *testing.T) {
	expense, err := rules.Get("expense")
	if err != nil {
		t.Fatal(err)
	}
	sel := Selection{
		"benefit-consumed":    Params{"amount": "75"},
		"consideration-given": Params{"amount": "75", "medium": "cash"},
		"asset-existence":     Params{"quantity": "75"}, // prohibited by the rule; irrelevant here
	}

	entry, err := ResolveEntry(expense, sel)
	if err != nil {
		t.Fatalf("ResolveEntry error: %v", err)
	}
	if entry.Lines[0].Account != rules.AccountExpenses || entry.Lines[0].Amount != 75 {
		t.Errorf("debit line = %+v", entry.Lines[0])
	}
}
