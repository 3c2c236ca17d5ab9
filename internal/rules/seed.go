package rules

import (
	"fmt"

	"github.com/abhisek/aalp/internal/assertion"
)

// init builds the package ruleset from the seed content and validates it
// against the assertion catalog. Malformed rule content aborts startup:
// it signals a content bug, not a runtime condition.
func init() {
	all := seedRules()
	if err := validateRules(all); err != nil {
		panic(fmt.Sprintf("classification rule seed: %v", err))
	}
	rs = buildRuleset(all)
}

// seedRules returns the full classification rule table.
// Declaration order doubles as the nearest-rule tie-break order.
func seedRules() []Rule {
	return []Rule{
		{
			Key:         "asset-purchase",
			Name:        "Asset Purchase",
			Level:       1,
			Description: "The business pays cash for a resource it now controls.",
			Required:    []assertion.Code{"asset-existence", "asset-control", "consideration-given"},
			Prohibited:  []assertion.Code{"revenue-earned", "obligation-created"},
			JournalEntry: []EntryLine{
				{Debit: AccountEquipment, Credit: AccountCash},
			},
			AccountLinkage: map[AccountLabel]Linkage{
				AccountEquipment: {Assertion: "asset-existence", AmountParam: "quantity", DetailParams: []string{"item", "unit"}},
				AccountCash:      {Assertion: "consideration-given", AmountParam: "amount", DetailParams: []string{"medium"}},
			},
		},
		{
			Key:         "cash-sale",
			Name:        "Cash Sale",
			Level:       1,
			Description: "The business earns revenue and collects payment immediately.",
			Required:    []assertion.Code{"revenue-earned", "consideration-received"},
			Prohibited:  []assertion.Code{"claim-created", "obligation-created"},
			JournalEntry: []EntryLine{
				{Debit: AccountCash, Credit: AccountRevenue},
			},
			AccountLinkage: map[AccountLabel]Linkage{
				AccountCash:    {Assertion: "consideration-received", AmountParam: "amount", DetailParams: []string{"medium"}},
				AccountRevenue: {Assertion: "revenue-earned", AmountParam: "amount"},
			},
		},
		{
			Key:         "expense",
			Name:        "Expense",
			Level:       2,
			Description: "The business pays for something it uses up immediately.",
			Required:    []assertion.Code{"benefit-consumed", "consideration-given"},
			Prohibited:  []assertion.Code{"asset-existence", "timing-deferred"},
			JournalEntry: []EntryLine{
				{Debit: AccountExpenses, Credit: AccountCash},
			},
			AccountLinkage: map[AccountLabel]Linkage{
				AccountExpenses: {Assertion: "benefit-consumed", AmountParam: "amount"},
				AccountCash:     {Assertion: "consideration-given", AmountParam: "amount", DetailParams: []string{"medium"}},
			},
		},
		{
			Key:         "credit-purchase",
			Name:        "Credit Purchase",
			Level:       2,
			Description: "The business receives a resource now and promises to pay later.",
			Required:    []assertion.Code{"asset-existence", "asset-control", "obligation-created"},
			Prohibited:  []assertion.Code{"consideration-given", "revenue-earned"},
			JournalEntry: []EntryLine{
				{Debit: AccountInventory, Credit: AccountPayables},
			},
			AccountLinkage: map[AccountLabel]Linkage{
				AccountInventory: {Assertion: "asset-existence", AmountParam: "quantity", DetailParams: []string{"item", "unit"}},
				AccountPayables:  {Assertion: "obligation-created", AmountParam: "amount", DetailParams: []string{"counterparty"}},
			},
		},
		{
			Key:         "payable-settlement",
			Name:        "Payable Settlement",
			Level:       2,
			Description: "The business pays off a debt it recorded earlier.",
			Required:    []assertion.Code{"obligation-settled", "consideration-given"},
			Prohibited:  []assertion.Code{"asset-existence", "revenue-earned", "benefit-consumed"},
			JournalEntry: []EntryLine{
				{Debit: AccountPayables, Credit: AccountCash},
			},
			AccountLinkage: map[AccountLabel]Linkage{
				AccountPayables: {Assertion: "obligation-settled", AmountParam: "amount", DetailParams: []string{"counterparty"}},
				AccountCash:     {Assertion: "consideration-given", AmountParam: "amount"},
			},
		},
		{
			Key:         "credit-sale",
			Name:        "Credit Sale",
			Level:       3,
			Description: "The business earns revenue and the customer will pay later.",
			Required:    []assertion.Code{"revenue-earned", "claim-created"},
			Prohibited:  []assertion.Code{"consideration-received"},
			JournalEntry: []EntryLine{
				{Debit: AccountReceivables, Credit: AccountRevenue},
			},
			AccountLinkage: map[AccountLabel]Linkage{
				AccountReceivables: {Assertion: "claim-created", AmountParam: "amount", DetailParams: []string{"counterparty"}},
				AccountRevenue:     {Assertion: "revenue-earned", AmountParam: "amount"},
			},
		},
		{
			Key:         "receivable-collection",
			Name:        "Receivable Collection",
			Level:       3,
			Description: "A customer pays off what they owed the business.",
			Required:    []assertion.Code{"claim-collected", "consideration-received"},
			Prohibited:  []assertion.Code{"revenue-earned"},
			JournalEntry: []EntryLine{
				{Debit: AccountCash, Credit: AccountReceivables},
			},
			AccountLinkage: map[AccountLabel]Linkage{
				AccountCash:        {Assertion: "consideration-received", AmountParam: "amount"},
				AccountReceivables: {Assertion: "claim-collected", AmountParam: "amount", DetailParams: []string{"counterparty"}},
			},
		},
		{
			Key:         "production",
			Name:        "Production",
			Level:       3,
			Description: "Raw materials are converted into finished goods; no exchange with outsiders.",
			Required:    []assertion.Code{"inventory-transformed"},
			Prohibited:  []assertion.Code{"consideration-given", "consideration-received"},
			JournalEntry: []EntryLine{
				{Debit: AccountInventory, Credit: AccountRawMat},
			},
			AccountLinkage: map[AccountLabel]Linkage{
				AccountInventory: {Assertion: "inventory-transformed", AmountParam: "input-cost", DetailParams: []string{"output-item"}},
				AccountRawMat:    {Assertion: "inventory-transformed", AmountParam: "input-cost"},
			},
		},
		{
			Key:         "prepaid-expense",
			Name:        "Prepaid Expense",
			Level:       3,
			Description: "The business pays now for a benefit it will consume in future periods.",
			Required:    []assertion.Code{"consideration-given", "timing-deferred"},
			Prohibited:  []assertion.Code{"benefit-consumed", "asset-existence"},
			JournalEntry: []EntryLine{
				{Debit: AccountPrepaid, Credit: AccountCash},
			},
			AccountLinkage: map[AccountLabel]Linkage{
				AccountPrepaid: {Assertion: "consideration-given", AmountParam: "amount"},
				AccountCash:    {Assertion: "consideration-given", AmountParam: "amount", DetailParams: []string{"medium"}},
			},
		},
	}
}
