package assertion

// Code uniquely identifies an assertion in the catalog.
type Code string

// Domain represents a conceptual grouping of assertions.
type Domain string

const (
	DomainResources   Domain = "resources"
	DomainExchange    Domain = "exchange"
	DomainObligations Domain = "obligations"
	DomainPerformance Domain = "performance"
	DomainTiming      Domain = "timing"
)

// AllDomains returns all domains in canonical display order.
func AllDomains() []Domain {
	return []Domain{
		DomainResources,
		DomainExchange,
		DomainObligations,
		DomainPerformance,
		DomainTiming,
	}
}

// DomainDisplayName returns a human-readable name for a domain.
func DomainDisplayName(d Domain) string {
	switch d {
	case DomainResources:
		return "Resources"
	case DomainExchange:
		return "Exchange"
	case DomainObligations:
		return "Obligations"
	case DomainPerformance:
		return "Performance"
	case DomainTiming:
		return "Timing"
	default:
		return string(d)
	}
}

// ParamType is the input type of an assertion parameter.
type ParamType int

const (
	ParamDropdown ParamType = iota
	ParamNumber
	ParamText
	ParamCurrency
	ParamDate
	ParamPercentage
)

// Label returns the display label for a parameter type.
func (t ParamType) Label() string {
	switch t {
	case ParamDropdown:
		return "choice"
	case ParamNumber:
		return "number"
	case ParamText:
		return "text"
	case ParamCurrency:
		return "amount"
	case ParamDate:
		return "date"
	case ParamPercentage:
		return "percent"
	default:
		return "unknown"
	}
}

// Parameter describes one parameter of an assertion.
type Parameter struct {
	Key      string
	Label    string
	Type     ParamType
	Options  []string // Populated only for ParamDropdown.
	Optional bool

	// ConditionalOn, when set, means this parameter only applies when the
	// sibling parameter named by the key has the given value. The matcher
	// accepts such parameters unconditionally; visibility is a UI concern.
	ConditionalOn    string
	ConditionalValue string
}

// Definition is a single assertion in the catalog.
// Definitions are built at load time and never mutated.
type Definition struct {
	Code        Code
	Label       string
	Domain      Domain
	Level       int // Lowest learner level at which this assertion is visible.
	Description string
	Parameters  []Parameter
}

// Parameterized reports whether the assertion carries any parameters.
func (d Definition) Parameterized() bool {
	return len(d.Parameters) > 0
}

// Param returns the parameter with the given key, if present.
func (d Definition) Param(key string) (Parameter, bool) {
	for _, p := range d.Parameters {
		if p.Key == key {
			return p, true
		}
	}
	return Parameter{}, false
}
