package narrative

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/rules"
)

// vars holds the randomized values one template instantiation draws.
type vars struct {
	Business     string
	Counterparty string
	Item         string
	Product      string
	Amount       int
	Periods      int
}

// template is one problem shape: a narrative renderer plus the solution
// selection its facts imply.
type template struct {
	ID      string
	RuleKey rules.Key
	Level   int

	// render produces the narrative text from the drawn variables.
	render func(v vars) string

	// solution produces the assertion selection that classifies the
	// rendered transaction correctly, with parameter values consistent
	// with the narrative.
	solution func(v vars) match.Selection
}

var businesses = []string{
	"Rosa's Bakery", "Hilltop Bike Shop", "The Corner Bookstore",
	"Marsh Lane Pottery", "Fernwood Cafe", "Bright Spark Electronics",
}

var counterparties = []string{
	"Northside Supply Co", "Valdez Wholesale", "Greenfield Farms",
	"the Patel family", "Ironwood Timber", "Castellan Foods",
}

var equipmentItems = []string{
	"delivery van", "industrial oven", "espresso machine",
	"display cabinet", "pottery kiln", "3D printer",
}

var products = []string{
	"a wedding cake", "two racing bikes", "a crate of novels",
	"a dinner set", "catering for a party", "a batch of speakers",
}

func amountStr(amount int) string {
	return fmt.Sprintf("%d", amount)
}

// draw picks variable values for one instantiation.
func draw(rng *rand.Rand) vars {
	return vars{
		Business:     businesses[rng.IntN(len(businesses))],
		Counterparty: counterparties[rng.IntN(len(counterparties))],
		Item:         equipmentItems[rng.IntN(len(equipmentItems))],
		Product:      products[rng.IntN(len(products))],
		Amount:       (rng.IntN(46) + 3) * 25, // 75..1200, multiples of 25
		Periods:      rng.IntN(10) + 3,        // 3..12
	}
}

// templates is the full problem-template table, in level order.
func templates() []template {
	return []template{
		{
			ID:      "asset-purchase-cash",
			RuleKey: "asset-purchase",
			Level:   1,
			render: func(v vars) string {
				return fmt.Sprintf("%s buys a %s for $%d, paying cash on the spot. The %s is set up and ready for use the same day.",
					v.Business, v.Item, v.Amount, v.Item)
			},
			solution: func(v vars) match.Selection {
				return match.Selection{
					"asset-existence": match.Params{
						"item":     v.Item,
						"unit":     "monetary-unit",
						"quantity": amountStr(v.Amount),
					},
					"asset-control":       match.Params{"party": v.Business},
					"consideration-given": match.Params{"amount": amountStr(v.Amount), "medium": "cash"},
				}
			},
		},
		{
			ID:      "cash-sale-counter",
			RuleKey: "cash-sale",
			Level:   1,
			render: func(v vars) string {
				return fmt.Sprintf("A customer walks into %s and buys %s for $%d, paying cash at the counter.",
					v.Business, v.Product, v.Amount)
			},
			solution: func(v vars) match.Selection {
				return match.Selection{
					"revenue-earned":         match.Params{"amount": amountStr(v.Amount)},
					"consideration-received": match.Params{"amount": amountStr(v.Amount), "medium": "cash"},
				}
			},
		},
		{
			ID:      "expense-utility",
			RuleKey: "expense",
			Level:   2,
			render: func(v vars) string {
				return fmt.Sprintf("%s pays its $%d electricity bill for the month. The power has already been used.",
					v.Business, v.Amount)
			},
			solution: func(v vars) match.Selection {
				return match.Selection{
					"benefit-consumed":    match.Params{"amount": amountStr(v.Amount)},
					"consideration-given": match.Params{"amount": amountStr(v.Amount), "medium": "cash"},
				}
			},
		},
		{
			ID:      "credit-purchase-supplier",
			RuleKey: "credit-purchase",
			Level:   2,
			render: func(v vars) string {
				return fmt.Sprintf("%s receives a stock delivery worth $%d from %s. The invoice says payment is due in 30 days.",
					v.Business, v.Amount, v.Counterparty)
			},
			solution: func(v vars) match.Selection {
				return match.Selection{
					"asset-existence": match.Params{
						"item":     "stock delivery",
						"unit":     "monetary-unit",
						"quantity": amountStr(v.Amount),
					},
					"asset-control":      match.Params{"party": v.Business},
					"obligation-created": match.Params{"counterparty": v.Counterparty, "amount": amountStr(v.Amount)},
				}
			},
		},
		{
			ID:      "payable-settlement-invoice",
			RuleKey: "payable-settlement",
			Level:   2,
			render: func(v vars) string {
				return fmt.Sprintf("%s pays %s the $%d it owed for last month's delivery.",
					v.Business, v.Counterparty, v.Amount)
			},
			solution: func(v vars) match.Selection {
				return match.Selection{
					"obligation-settled":  match.Params{"counterparty": v.Counterparty, "amount": amountStr(v.Amount)},
					"consideration-given": match.Params{"amount": amountStr(v.Amount), "medium": "cash"},
				}
			},
		},
		{
			ID:      "credit-sale-delivery",
			RuleKey: "credit-sale",
			Level:   3,
			render: func(v vars) string {
				return fmt.Sprintf("%s delivers %s to %s for an agreed price of $%d. The customer will pay next month.",
					v.Business, v.Product, v.Counterparty, v.Amount)
			},
			solution: func(v vars) match.Selection {
				return match.Selection{
					"revenue-earned": match.Params{"amount": amountStr(v.Amount)},
					"claim-created":  match.Params{"counterparty": v.Counterparty, "amount": amountStr(v.Amount)},
				}
			},
		},
		{
			ID:      "receivable-collection-payment",
			RuleKey: "receivable-collection",
			Level:   3,
			render: func(v vars) string {
				return fmt.Sprintf("%s finally pays %s the $%d outstanding from an earlier delivery.",
					v.Counterparty, v.Business, v.Amount)
			},
			solution: func(v vars) match.Selection {
				return match.Selection{
					"claim-collected":        match.Params{"counterparty": v.Counterparty, "amount": amountStr(v.Amount)},
					"consideration-received": match.Params{"amount": amountStr(v.Amount), "medium": "cash"},
				}
			},
		},
		{
			ID:      "production-workshop",
			RuleKey: "production",
			Level:   3,
			render: func(v vars) string {
				return fmt.Sprintf("In the workshop, %s uses $%d of raw materials to produce %s for the shelves. Nothing is bought or sold.",
					v.Business, v.Amount, v.Product)
			},
			solution: func(v vars) match.Selection {
				return match.Selection{
					"inventory-transformed": match.Params{
						"input-cost":  amountStr(v.Amount),
						"output-item": v.Product,
					},
				}
			},
		},
		{
			ID:      "prepaid-insurance",
			RuleKey: "prepaid-expense",
			Level:   3,
			render: func(v vars) string {
				return fmt.Sprintf("%s pays $%d up front for %d months of insurance cover starting next month.",
					v.Business, v.Amount, v.Periods)
			},
			solution: func(v vars) match.Selection {
				return match.Selection{
					"consideration-given": match.Params{"amount": amountStr(v.Amount), "medium": "cash"},
					"timing-deferred":     match.Params{"periods": fmt.Sprintf("%d", v.Periods)},
				}
			},
		},
	}
}
