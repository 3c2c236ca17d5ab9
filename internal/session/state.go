package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/progress"
	"github.com/abhisek/aalp/internal/simulation"
	"github.com/abhisek/aalp/internal/store"
)

// Phase represents the current phase of a practice session.
type Phase int

const (
	PhaseActive   Phase = iota // serving problems
	PhaseFeedback              // showing classification feedback
	PhaseSummary               // session ended, showing summary
)

// priorWindow is how many recent narratives (from this session and the
// event log) are fed to the generator for dedup.
const priorWindow = 20

// RuleResult tracks per-rule performance within a single session.
type RuleResult struct {
	RuleKey   string
	Attempted int
	Correct   int
}

// State tracks the runtime state of an active practice session.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Level is the learner's current level, kept in sync with Progress.
	Level int

	// CurrentProblem is the problem being worked on. It stays set after
	// an incorrect submission so the learner retries the same problem.
	CurrentProblem *narrative.Problem

	// ProblemStartTime is when the current problem was first displayed.
	ProblemStartTime time.Time

	TotalProblems int
	TotalCorrect  int

	// PerRuleResults accumulates this session's per-rule stats for the
	// summary screen.
	PerRuleResults map[string]*RuleResult

	// PriorNarratives holds narratives served this session, for dedup.
	PriorNarratives []string

	StartTime time.Time
	Phase     Phase

	// LastResult is the outcome of the most recent submission.
	LastResult *match.MatchResult

	// LastUnlock is set when the most recent submission triggered a
	// level-up, for feedback display.
	LastUnlock *progress.Unlock

	Progress  *progress.Service
	Sim       *simulation.Simulation
	Events    store.EventRepo
	Generator *narrative.Generator

	// Embellisher rewrites problem prose via the LLM. Nil disables
	// embellishment; failures fall back to the template text.
	Embellisher *narrative.Embellisher
}

// NewState creates session state over the given services.
func NewState(prog *progress.Service, sim *simulation.Simulation, events store.EventRepo, gen *narrative.Generator) *State {
	return &State{
		SessionID:      uuid.NewString(),
		Level:          prog.Level(),
		PerRuleResults: make(map[string]*RuleResult),
		StartTime:      time.Now(),
		Phase:          PhaseActive,
		Progress:       prog,
		Sim:            sim,
		Events:         events,
		Generator:      gen,
	}
}
