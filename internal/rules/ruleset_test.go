package rules

import (
	"errors"
	"testing"

	"github.com/abhisek/aalp/internal/assertion"
)

func sel(codes ...assertion.Code) map[assertion.Code]bool {
	s := make(map[assertion.Code]bool, len(codes))
	for _, c := range codes {
		s[c] = true
	}
	return s
}

func TestValidateSeed(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed ruleset invalid: %v", err)
	}
}

func TestGet(t *testing.T) {
	r, err := Get("cash-sale")
	if err != nil {
		t.Fatalf("Get(cash-sale) error: %v", err)
	}
	if r.Name != "Cash Sale" {
		t.Errorf("name = %q, want %q", r.Name, "Cash Sale")
	}

	_, err = Get("ghost-rule")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Get(ghost-rule) error = %v, want NotFoundError", err)
	}
}

func TestMatches(t *testing.T) {
	purchase, err := Get("asset-purchase")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		selected map[assertion.Code]bool
		want     bool
	}{
		{
			name:     "exact required set",
			selected: sel("asset-existence", "asset-control", "consideration-given"),
			want:     true,
		},
		{
			name:     "extra neutral assertion tolerated",
			selected: sel("asset-existence", "asset-control", "consideration-given", "claim-collected"),
			want:     true,
		},
		{
			name:     "missing one required",
			selected: sel("asset-existence", "consideration-given"),
			want:     false,
		},
		{
			name:     "prohibited included",
			selected: sel("asset-existence", "asset-control", "consideration-given", "revenue-earned"),
			want:     false,
		},
		{
			name:     "empty selection",
			selected: sel(),
			want:     false,
		},
	}

	for _, tt := range tests {
		if got := Matches(purchase, tt.selected); got != tt.want {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAllMatches(t *testing.T) {
	tests := []struct {
		name     string
		selected map[assertion.Code]bool
		want     []Key
	}{
		{
			name:     "cash sale",
			selected: sel("revenue-earned", "consideration-received"),
			want:     []Key{"cash-sale"},
		},
		{
			name:     "expense not purchase",
			selected: sel("benefit-consumed", "consideration-given"),
			want:     []Key{"expense"},
		},
		{
			name:     "no match",
			selected: sel("asset-existence"),
			want:     nil,
		},
	}

	for _, tt := range tests {
		got := AllMatches(tt.selected)
		if len(got) != len(tt.want) {
			t.Errorf("%s: AllMatches = %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: AllMatches[%d] = %q, want %q", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestAllMatchesDeclarationOrder(t *testing.T) {
	custom := []Rule{
		{Key: "a", Name: "A", Level: 1, Required: []assertion.Code{"revenue-earned"}},
		{Key: "b", Name: "B", Level: 1, Required: []assertion.Code{"revenue-earned"}},
	}
	got := matchesIn(custom, sel("revenue-earned"))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("matchesIn = %v, want [a b]", got)
	}
}

func TestForLevelCumulative(t *testing.T) {
	prev := 0
	for level := 1; level <= MaxLevel(); level++ {
		n := len(ForLevel(level))
		if n < prev {
			t.Errorf("level %d has %d rules, fewer than level %d", level, n, level-1)
		}
		prev = n
	}
	if len(ForLevel(MaxLevel())) != len(All()) {
		t.Error("max level should include every rule")
	}
}

func TestValidateRejectsBadContent(t *testing.T) {
	valid := Rule{
		Key: "x", Name: "X", Level: 3,
		Required: []assertion.Code{"revenue-earned"},
		JournalEntry: []EntryLine{
			{Debit: AccountCash, Credit: AccountRevenue},
		},
		AccountLinkage: map[AccountLabel]Linkage{
			AccountCash:    {Assertion: "revenue-earned", AmountParam: "amount"},
			AccountRevenue: {Assertion: "revenue-earned", AmountParam: "amount"},
		},
	}

	if err := validateRules([]Rule{valid}); err != nil {
		t.Fatalf("baseline rule rejected: %v", err)
	}

	mutate := func(fn func(r *Rule)) []Rule {
		r := valid
		r.AccountLinkage = make(map[AccountLabel]Linkage, len(valid.AccountLinkage))
		for k, v := range valid.AccountLinkage {
			r.AccountLinkage[k] = v
		}
		fn(&r)
		return []Rule{r}
	}

	tests := []struct {
		name  string
		rules []Rule
	}{
		{"empty required", mutate(func(r *Rule) { r.Required = nil })},
		{"unknown required code", mutate(func(r *Rule) { r.Required = []assertion.Code{"ghost"} })},
		{"unknown prohibited code", mutate(func(r *Rule) { r.Prohibited = []assertion.Code{"ghost"} })},
		{"required and prohibited overlap", mutate(func(r *Rule) { r.Prohibited = []assertion.Code{"revenue-earned"} })},
		{"linkage to non-required assertion", mutate(func(r *Rule) {
			r.AccountLinkage[AccountCash] = Linkage{Assertion: "asset-existence", AmountParam: "quantity"}
		})},
		{"linkage amount param not on assertion", mutate(func(r *Rule) {
			r.AccountLinkage[AccountCash] = Linkage{Assertion: "revenue-earned", AmountParam: "ghost"}
		})},
		{"journal account without linkage", mutate(func(r *Rule) {
			r.AccountLinkage = map[AccountLabel]Linkage{
				AccountRevenue: {Assertion: "revenue-earned", AmountParam: "amount"},
			}
		})},
		{"duplicate keys", append(mutate(func(r *Rule) {}), valid)},
	}

	for _, tt := range tests {
		if err := validateRules(tt.rules); err == nil {
			t.Errorf("%s: validateRules accepted invalid content", tt.name)
		}
	}
}
