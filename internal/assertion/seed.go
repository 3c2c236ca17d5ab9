package assertion

import "fmt"

// init builds the package catalog from the seed content and validates it.
// Invalid catalog content is a bug in this file, not a runtime condition,
// so it aborts startup.
func init() {
	defs := seedDefinitions()
	if err := validateDefinitions(defs); err != nil {
		panic(fmt.Sprintf("assertion catalog seed: %v", err))
	}
	c = buildCatalog(defs)
}

// seedDefinitions returns the full assertion catalog.
// Order within a domain is pedagogical, not alphabetical.
func seedDefinitions() []Definition {
	return []Definition{
		{
			Code:        "asset-existence",
			Label:       "A resource exists",
			Domain:      DomainResources,
			Level:       1,
			Description: "The business holds an identifiable resource with future benefit.",
			Parameters: []Parameter{
				{Key: "item", Label: "What is it?", Type: ParamText},
				{Key: "unit", Label: "Measured in", Type: ParamDropdown, Options: []string{"physical-unit", "monetary-unit"}},
				{Key: "quantity", Label: "How much?", Type: ParamNumber},
				{Key: "physical-item", Label: "Physical description", Type: ParamText, Optional: true,
					ConditionalOn: "unit", ConditionalValue: "physical-unit"},
			},
		},
		{
			Code:        "asset-control",
			Label:       "The business controls the resource",
			Domain:      DomainResources,
			Level:       1,
			Description: "The business, not a counterparty, directs the use of the resource.",
			Parameters: []Parameter{
				{Key: "party", Label: "Controlled by", Type: ParamText},
			},
		},
		{
			Code:        "consideration-given",
			Label:       "The business gives consideration",
			Domain:      DomainExchange,
			Level:       1,
			Description: "Value flows out of the business to a counterparty.",
			Parameters: []Parameter{
				{Key: "amount", Label: "Amount", Type: ParamCurrency},
				{Key: "medium", Label: "Paid with", Type: ParamDropdown, Options: []string{"cash", "goods", "services"}},
			},
		},
		{
			Code:        "consideration-received",
			Label:       "The business receives consideration",
			Domain:      DomainExchange,
			Level:       1,
			Description: "Value flows into the business from a counterparty.",
			Parameters: []Parameter{
				{Key: "amount", Label: "Amount", Type: ParamCurrency},
				{Key: "medium", Label: "Received as", Type: ParamDropdown, Options: []string{"cash", "goods", "services"}},
			},
		},
		{
			Code:        "obligation-created",
			Label:       "An obligation to pay arises",
			Domain:      DomainObligations,
			Level:       2,
			Description: "The business now owes a counterparty a future payment.",
			Parameters: []Parameter{
				{Key: "counterparty", Label: "Owed to", Type: ParamText},
				{Key: "amount", Label: "Amount owed", Type: ParamCurrency},
				{Key: "due", Label: "Due date", Type: ParamDate, Optional: true},
			},
		},
		{
			Code:        "obligation-settled",
			Label:       "An existing obligation is settled",
			Domain:      DomainObligations,
			Level:       2,
			Description: "A previously recorded debt to a counterparty is extinguished.",
			Parameters: []Parameter{
				{Key: "counterparty", Label: "Paid to", Type: ParamText},
				{Key: "amount", Label: "Amount settled", Type: ParamCurrency},
			},
		},
		{
			Code:        "claim-created",
			Label:       "A claim on a customer arises",
			Domain:      DomainObligations,
			Level:       3,
			Description: "A counterparty now owes the business a future payment.",
			Parameters: []Parameter{
				{Key: "counterparty", Label: "Owed by", Type: ParamText},
				{Key: "amount", Label: "Amount owed", Type: ParamCurrency},
			},
		},
		{
			Code:        "claim-collected",
			Label:       "An existing claim is collected",
			Domain:      DomainObligations,
			Level:       3,
			Description: "A previously recorded customer debt is paid off.",
			Parameters: []Parameter{
				{Key: "counterparty", Label: "Collected from", Type: ParamText},
				{Key: "amount", Label: "Amount collected", Type: ParamCurrency},
			},
		},
		{
			Code:        "revenue-earned",
			Label:       "Revenue is earned",
			Domain:      DomainPerformance,
			Level:       1,
			Description: "The business has delivered goods or services and earned income.",
			Parameters: []Parameter{
				{Key: "amount", Label: "Amount earned", Type: ParamCurrency},
				{Key: "confidence", Label: "How certain?", Type: ParamPercentage, Optional: true},
			},
		},
		{
			Code:        "benefit-consumed",
			Label:       "A benefit is used up",
			Domain:      DomainPerformance,
			Level:       2,
			Description: "The business consumed value with no lasting resource remaining.",
			Parameters: []Parameter{
				{Key: "amount", Label: "Amount consumed", Type: ParamCurrency},
			},
		},
		{
			Code:        "inventory-transformed",
			Label:       "Inputs are transformed into product",
			Domain:      DomainPerformance,
			Level:       3,
			Description: "Raw materials were converted into finished goods.",
			Parameters: []Parameter{
				{Key: "input-cost", Label: "Cost of inputs", Type: ParamCurrency},
				{Key: "output-item", Label: "What was produced?", Type: ParamText},
			},
		},
		{
			Code:        "timing-deferred",
			Label:       "The benefit belongs to future periods",
			Domain:      DomainTiming,
			Level:       3,
			Description: "What was paid for will be consumed later, not now.",
			Parameters: []Parameter{
				{Key: "periods", Label: "Over how many months?", Type: ParamNumber},
			},
		},
	}
}
