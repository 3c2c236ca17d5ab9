package match

import (
	"fmt"

	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/rules"
)

// Status classifies the outcome of one submission.
type Status int

const (
	// StatusIncomplete means the learner submitted no assertions.
	StatusIncomplete Status = iota
	// StatusCorrect means the selection satisfies exactly the expected rule.
	StatusCorrect
	// StatusIncorrect means the selection satisfies no rule, or exactly one
	// rule that is not the expected one.
	StatusIncorrect
	// StatusIndeterminate means the selection satisfies more than one rule:
	// the assertions under-specify which business event occurred.
	StatusIndeterminate
)

// String returns the status as a stable lowercase identifier.
func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusCorrect:
		return "correct"
	case StatusIncorrect:
		return "incorrect"
	case StatusIndeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// Params holds the parameter values the learner entered for one assertion.
// Values are the raw strings from the input surface; numeric parameters
// are parsed at journal-entry resolution time.
type Params map[string]string

// Selection is one learner's submitted answer: a mapping from assertion
// code to the parameter values entered for it. The matcher only ever sees
// a finished snapshot, never a partially edited one.
type Selection map[assertion.Code]Params

// Codes returns the set of selected assertion codes.
func (s Selection) Codes() map[assertion.Code]bool {
	set := make(map[assertion.Code]bool, len(s))
	for code := range s {
		set[code] = true
	}
	return set
}

// Nearest describes the closest rule to a non-matching selection.
type Nearest struct {
	Rule     rules.Key
	Missing  []assertion.Code // Required by the rule, not selected.
	Extra    []assertion.Code // Selected, prohibited by the rule.
	Distance int
}

// HintKind identifies what triggered a hint.
type HintKind int

const (
	// HintMissing points at a required assertion the learner did not select.
	HintMissing HintKind = iota
	// HintProhibited asks the learner to re-examine a selected assertion
	// the nearest rule prohibits.
	HintProhibited
	// HintWouldClassify tells the learner what their selection would
	// classify as instead of the expected answer.
	HintWouldClassify
)

// Hint is a single piece of directed feedback.
type Hint struct {
	Kind HintKind
	Code assertion.Code // Set for HintMissing and HintProhibited.
	Rule rules.Key      // Set for HintWouldClassify.
	Text string
}

// Side is the side of a resolved journal-entry line.
type Side int

const (
	SideDebit Side = iota
	SideCredit
)

func (s Side) String() string {
	if s == SideCredit {
		return "CR"
	}
	return "DR"
}

// SourceRef links a resolved line back to the assertion and parameter
// that produced its amount.
type SourceRef struct {
	Assertion assertion.Code
	ParamKey  string
	RawValue  string
}

// ResolvedLine is one side of a journal entry with its amount filled in
// from the learner's parameters.
type ResolvedLine struct {
	Account rules.AccountLabel
	Side    Side
	Amount  float64
	Detail  string // Human-readable context from the linkage detail params.
	Source  SourceRef
}

// ResolvedEntry is the journal entry a matched rule produces, with every
// line linked back to the selection that explains it.
type ResolvedEntry struct {
	Rule  rules.Key
	Lines []ResolvedLine
}

// MatchResult is the full outcome of classifying one submission.
// It is a transient value: computed per call, never stored by this package.
type MatchResult struct {
	Status  Status
	Matched []rules.Key // All satisfied rules, in rule declaration order.
	Nearest *Nearest    // Set whenever Status != StatusCorrect.
	Hints   []Hint
	Entry   *ResolvedEntry // Set only when Status == StatusCorrect.
}

// UnknownCodeError indicates the selection references an assertion code
// that does not exist in the catalog. Selections are rejected before
// matching; the caller should show a corrective message and allow retry.
type UnknownCodeError struct {
	Code assertion.Code
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("selection references unknown assertion code %q", e.Code)
}

// LinkageError indicates a matched rule could not resolve its journal
// entry because the linked assertion or one of its parameters is missing.
// Recoverable: the caller should prompt the learner to fill in the
// parameter and resubmit.
type LinkageError struct {
	Rule      rules.Key
	Account   rules.AccountLabel
	Assertion assertion.Code
	Param     string
	// AssertionMissing is true when the linked assertion itself was not
	// selected, false when only the parameter value is absent or invalid.
	AssertionMissing bool
}

func (e *LinkageError) Error() string {
	if e.AssertionMissing {
		return fmt.Sprintf("rule %q account %q: linked assertion %q not selected", e.Rule, e.Account, e.Assertion)
	}
	return fmt.Sprintf("rule %q account %q: assertion %q is missing parameter %q", e.Rule, e.Account, e.Assertion, e.Param)
}
