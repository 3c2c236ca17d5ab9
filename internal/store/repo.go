package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// RuleTally is the attempt/correct count for one classification rule.
type RuleTally struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version int `json:"version"`

	// Level is the learner's unlocked level.
	Level int `json:"level"`

	// Streak is the current consecutive-correct count.
	Streak int `json:"streak"`

	// Tallies holds per-rule attempt counts, keyed by rule key.
	Tallies map[string]RuleTally `json:"tallies,omitempty"`

	// Balances holds simulated ledger balances, keyed by account label.
	Balances map[string]float64 `json:"balances,omitempty"`
}

// Snapshot is a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// AttemptEventData is one classification attempt.
type AttemptEventData struct {
	SessionID     string
	ProblemID     string
	RuleKey       string
	Level         int
	Narrative     string
	SelectedCodes []string
	MatchedRules  []string
	Status        string
	Distance      int
	TimeMs        int
}

// AttemptRecord is a persisted attempt with its log position.
type AttemptRecord struct {
	AttemptEventData
	Sequence  int64
	Timestamp time.Time
}

// HintEventData is one hint shown to the learner.
type HintEventData struct {
	SessionID string
	ProblemID string
	Kind      string
	Code      string
	RuleKey   string
	HintText  string
}

// SessionEventData is a session lifecycle event.
type SessionEventData struct {
	SessionID      string
	Action         string // "start" or "end"
	Level          int
	ProblemsServed int
	CorrectAnswers int
	DurationSecs   int
}

// LedgerEventData is one side of a posted journal entry.
type LedgerEventData struct {
	SessionID string
	ProblemID string
	RuleKey   string
	Account   string
	Side      string // "DR" or "CR"
	Amount    float64
	Detail    string
}

// LedgerRecord is a persisted ledger posting with its log position.
type LedgerRecord struct {
	LedgerEventData
	Sequence  int64
	Timestamp time.Time
}

// UnlockEventData is a level transition.
type UnlockEventData struct {
	FromLevel int
	ToLevel   int
	Attempts  int
	Accuracy  float64
	SessionID string
}

// LLMRequestEventData captures one LLM API call.
type LLMRequestEventData struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LevelStats aggregates attempts at one level.
type LevelStats struct {
	Attempts int
	Correct  int
}

// Accuracy returns the correct ratio, or 0 with no attempts.
func (s LevelStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// LLMTotals aggregates the LLM request log for the stats view.
type LLMTotals struct {
	Requests     int
	InputTokens  int
	OutputTokens int
	CostUSD      float64
}

// EventRepo provides append and query access to the domain event log.
type EventRepo interface {
	AppendAttempt(ctx context.Context, data AttemptEventData) error
	AppendHint(ctx context.Context, data HintEventData) error
	AppendSession(ctx context.Context, data SessionEventData) error
	AppendLedger(ctx context.Context, data LedgerEventData) error
	AppendUnlock(ctx context.Context, data UnlockEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// ListAttempts returns attempts in sequence order.
	ListAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// LevelStats aggregates attempts made at the given level.
	LevelStats(ctx context.Context, level int) (LevelStats, error)

	// RuleStats aggregates attempts per expected rule key.
	RuleStats(ctx context.Context) (map[string]RuleTally, error)

	// ListLedger returns ledger postings in sequence order.
	ListLedger(ctx context.Context, opts QueryOpts) ([]LedgerRecord, error)

	// MaxUnlockedLevel returns the highest to_level recorded, or 0 when
	// no unlock has happened yet.
	MaxUnlockedLevel(ctx context.Context) (int, error)

	// RecentNarratives returns the narratives of the most recent
	// attempts, newest first, for problem-generation dedup.
	RecentNarratives(ctx context.Context, limit int) ([]string, error)

	// LLMSpend aggregates the LLM request log.
	LLMSpend(ctx context.Context) (LLMTotals, error)
}
