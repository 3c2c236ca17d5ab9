package assertion

import (
	"fmt"
	"slices"
)

// NotFoundError indicates a lookup for an unknown assertion code.
type NotFoundError struct {
	Code Code
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("assertion not found: %q", e.Code)
}

// catalog holds the assertion definitions with precomputed indices.
type catalog struct {
	defs     []Definition
	byCode   map[Code]*Definition
	byDomain map[Domain][]Definition
}

// c is the package-level catalog singleton, set by init() in seed.go.
var c *catalog

// buildCatalog constructs the catalog from a slice of definitions.
// Declaration order is preserved everywhere; it carries pedagogical
// meaning and must never be replaced by alphabetical sorting.
func buildCatalog(defs []Definition) *catalog {
	ct := &catalog{
		defs:     defs,
		byCode:   make(map[Code]*Definition, len(defs)),
		byDomain: make(map[Domain][]Definition),
	}
	for i := range ct.defs {
		ct.byCode[ct.defs[i].Code] = &ct.defs[i]
		ct.byDomain[ct.defs[i].Domain] = append(ct.byDomain[ct.defs[i].Domain], ct.defs[i])
	}
	return ct
}

// Get returns the definition for a code, or NotFoundError if unknown.
func Get(code Code) (Definition, error) {
	d, ok := c.byCode[code]
	if !ok {
		return Definition{}, &NotFoundError{Code: code}
	}
	return *d, nil
}

// Known reports whether the code exists in the catalog.
func Known(code Code) bool {
	_, ok := c.byCode[code]
	return ok
}

// All returns every definition in declaration order.
func All() []Definition {
	return slices.Clone(c.defs)
}

// DomainGroup pairs a domain with its definitions, preserving order.
type DomainGroup struct {
	Domain      Domain
	Definitions []Definition
}

// ForLevel returns the assertions visible at the given learner level,
// grouped by domain. Unlocks are cumulative: a definition with Level <= level
// is included. Domains appear in canonical order; within a domain,
// definitions keep declaration order. Domains with no visible assertions
// at this level are omitted.
func ForLevel(level int) []DomainGroup {
	var groups []DomainGroup
	for _, domain := range AllDomains() {
		var visible []Definition
		for _, d := range c.byDomain[domain] {
			if d.Level <= level {
				visible = append(visible, d)
			}
		}
		if len(visible) > 0 {
			groups = append(groups, DomainGroup{Domain: domain, Definitions: visible})
		}
	}
	return groups
}

// MaxLevel returns the highest level used by any assertion in the catalog.
func MaxLevel() int {
	max := 1
	for _, d := range c.defs {
		if d.Level > max {
			max = d.Level
		}
	}
	return max
}

// Validate checks the catalog for structural issues.
func Validate() error {
	return validateDefinitions(c.defs)
}
