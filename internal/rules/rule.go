package rules

import "github.com/abhisek/aalp/internal/assertion"

// Key uniquely identifies a classification rule.
type Key string

// AccountLabel names a ledger account in a journal-entry template.
type AccountLabel string

const (
	AccountCash        AccountLabel = "Cash"
	AccountInventory   AccountLabel = "Inventory"
	AccountEquipment   AccountLabel = "Equipment"
	AccountPrepaid     AccountLabel = "Prepaid Expenses"
	AccountReceivables AccountLabel = "Accounts Receivable"
	AccountPayables    AccountLabel = "Accounts Payable"
	AccountRevenue     AccountLabel = "Revenue"
	AccountExpenses    AccountLabel = "Expenses"
	AccountRawMat      AccountLabel = "Raw Materials"
)

// EntryLine is one debit/credit pair in a journal-entry template.
type EntryLine struct {
	Debit  AccountLabel
	Credit AccountLabel
}

// Linkage designates which assertion, and which of its parameters,
// explains the amount posted to an account.
type Linkage struct {
	// Assertion is the selected assertion whose parameters fill the line.
	Assertion assertion.Code

	// AmountParam is the parameter key holding the numeric amount.
	AmountParam string

	// DetailParams optionally name parameters that describe the line
	// (item names, counterparties). Missing detail parameters are
	// tolerated; a missing amount parameter is a LinkageError.
	DetailParams []string
}

// Rule is a single classification: a named transaction shape defined by
// required and prohibited assertion sets, plus the journal entry it
// produces. Rules are built at load time and never mutated.
type Rule struct {
	Key         Key
	Name        string
	Level       int // Lowest learner level at which this classification is taught.
	Description string

	// Required assertions must all be selected for the rule to match.
	Required []assertion.Code

	// Prohibited assertions must not be selected. Assertions that are
	// neither required nor prohibited are tolerated: a learner is not
	// punished for selecting true but non-discriminating assertions.
	Prohibited []assertion.Code

	// JournalEntry is the ordered debit/credit template.
	JournalEntry []EntryLine

	// AccountLinkage maps each account label used in JournalEntry to the
	// assertion parameters that determine its amount and description.
	AccountLinkage map[AccountLabel]Linkage
}

// RequiredSet returns the required codes as a set.
func (r Rule) RequiredSet() map[assertion.Code]bool {
	set := make(map[assertion.Code]bool, len(r.Required))
	for _, code := range r.Required {
		set[code] = true
	}
	return set
}

// ProhibitedSet returns the prohibited codes as a set.
func (r Rule) ProhibitedSet() map[assertion.Code]bool {
	set := make(map[assertion.Code]bool, len(r.Prohibited))
	for _, code := range r.Prohibited {
		set[code] = true
	}
	return set
}
