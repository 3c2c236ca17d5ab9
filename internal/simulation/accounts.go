// Package simulation keeps the learner's small business ledger. Every
// correct classification posts its resolved journal entry here; balances
// are a fold over the ledger event log, so they survive restarts and can
// always be rebuilt.
package simulation

import "github.com/abhisek/aalp/internal/rules"

// Class groups ledger accounts by their role in the balance sheet.
type Class int

const (
	ClassAsset Class = iota
	ClassLiability
	ClassRevenue
	ClassExpense
)

func (c Class) String() string {
	switch c {
	case ClassLiability:
		return "liability"
	case ClassRevenue:
		return "revenue"
	case ClassExpense:
		return "expense"
	default:
		return "asset"
	}
}

// DebitNormal reports whether a debit increases accounts of this class.
func (c Class) DebitNormal() bool {
	return c == ClassAsset || c == ClassExpense
}

// chart lists every ledger account in display order with its class.
// Accounts referenced by rule journal templates must appear here; the
// classification of an unknown account defaults to asset.
var chart = []struct {
	Label rules.AccountLabel
	Class Class
}{
	{rules.AccountCash, ClassAsset},
	{rules.AccountInventory, ClassAsset},
	{rules.AccountRawMat, ClassAsset},
	{rules.AccountEquipment, ClassAsset},
	{rules.AccountPrepaid, ClassAsset},
	{rules.AccountReceivables, ClassAsset},
	{rules.AccountPayables, ClassLiability},
	{rules.AccountRevenue, ClassRevenue},
	{rules.AccountExpenses, ClassExpense},
}

var classByLabel = func() map[rules.AccountLabel]Class {
	m := make(map[rules.AccountLabel]Class, len(chart))
	for _, a := range chart {
		m[a.Label] = a.Class
	}
	return m
}()

// ClassOf returns the class of a ledger account.
func ClassOf(label rules.AccountLabel) Class {
	return classByLabel[label]
}

// Accounts returns every chart account label in display order.
func Accounts() []rules.AccountLabel {
	out := make([]rules.AccountLabel, len(chart))
	for i, a := range chart {
		out[i] = a.Label
	}
	return out
}
