package assertion

import (
	"fmt"
	"strings"
)

// validateDefinitions performs all structural checks on the given
// definition set. Returns a combined error describing all problems
// found, or nil if valid.
func validateDefinitions(defs []Definition) error {
	var errs []string

	codeSet := make(map[Code]bool, len(defs))
	domainSet := make(map[Domain]bool)
	for _, d := range defs {
		if codeSet[d.Code] {
			errs = append(errs, fmt.Sprintf("duplicate assertion code: %q", d.Code))
		}
		codeSet[d.Code] = true
		domainSet[d.Domain] = true

		if d.Level < 1 {
			errs = append(errs, fmt.Sprintf("assertion %q: level must be >= 1, got %d", d.Code, d.Level))
		}
		if d.Label == "" {
			errs = append(errs, fmt.Sprintf("assertion %q: label is empty", d.Code))
		}

		knownDomain := false
		for _, dom := range AllDomains() {
			if d.Domain == dom {
				knownDomain = true
				break
			}
		}
		if !knownDomain {
			errs = append(errs, fmt.Sprintf("assertion %q: unknown domain %q", d.Code, d.Domain))
		}

		paramKeys := make(map[string]bool, len(d.Parameters))
		for _, p := range d.Parameters {
			if paramKeys[p.Key] {
				errs = append(errs, fmt.Sprintf("assertion %q: duplicate parameter key %q", d.Code, p.Key))
			}
			paramKeys[p.Key] = true

			if p.Type == ParamDropdown && len(p.Options) == 0 {
				errs = append(errs, fmt.Sprintf("assertion %q parameter %q: dropdown with no options", d.Code, p.Key))
			}
			if p.Type != ParamDropdown && len(p.Options) > 0 {
				errs = append(errs, fmt.Sprintf("assertion %q parameter %q: options on non-dropdown parameter", d.Code, p.Key))
			}
		}
		for _, p := range d.Parameters {
			if p.ConditionalOn == "" {
				continue
			}
			if !paramKeys[p.ConditionalOn] {
				errs = append(errs, fmt.Sprintf("assertion %q parameter %q: conditional on nonexistent sibling %q", d.Code, p.Key, p.ConditionalOn))
			}
			if p.ConditionalOn == p.Key {
				errs = append(errs, fmt.Sprintf("assertion %q parameter %q: conditional on itself", d.Code, p.Key))
			}
		}
	}

	for _, dom := range AllDomains() {
		if !domainSet[dom] {
			errs = append(errs, fmt.Sprintf("domain %q has no assertions", dom))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("assertion catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
