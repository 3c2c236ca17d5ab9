// Package session orchestrates one practice session: serving generated
// problems, running submissions through the classification engine, and
// recording the resulting events.
package session

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/store"
)

// Start records the session start event.
func Start(ctx context.Context, state *State) error {
	err := state.Events.AppendSession(ctx, store.SessionEventData{
		SessionID: state.SessionID,
		Action:    "start",
		Level:     state.Level,
	})
	if err != nil {
		return fmt.Errorf("record session start: %w", err)
	}
	return nil
}

// NextProblem generates and serves the next problem at the learner's
// level. Recently seen narratives, both from this session and from the
// event log, are avoided. Embellishment failures are non-fatal: the
// learner gets the template text.
func NextProblem(ctx context.Context, state *State) (*narrative.Problem, error) {
	prior := slices.Clone(state.PriorNarratives)
	if len(prior) < priorWindow {
		recent, err := state.Events.RecentNarratives(ctx, priorWindow-len(prior))
		if err == nil {
			prior = append(prior, recent...)
		} else {
			fmt.Fprintf(os.Stderr, "warning: narrative dedup lookup failed: %v\n", err)
		}
	}

	p, err := state.Generator.Generate(state.Level, prior)
	if err != nil {
		return nil, fmt.Errorf("generate problem: %w", err)
	}

	if state.Embellisher != nil {
		if err := state.Embellisher.Embellish(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "warning: narrative embellishment failed: %v\n", err)
		}
	}

	state.CurrentProblem = p
	state.ProblemStartTime = time.Now()
	state.PriorNarratives = append(state.PriorNarratives, p.Narrative)
	state.Phase = PhaseActive
	state.LastResult = nil
	state.LastUnlock = nil
	return p, nil
}

// Outcome is the result of one submission, for feedback display.
type Outcome struct {
	Result *match.MatchResult
	Unlock *Unlocked
}

// Unlocked reports a level transition caused by a submission.
type Unlocked struct {
	From int
	To   int
}

// HandleSubmission classifies one submitted selection against the
// current problem and records the attempt. On a correct classification
// the resolved journal entry is posted to the simulation and a level-up
// check runs. Rejected selections (unknown codes, unresolvable
// parameters) return the classifier's error unrecorded, so the learner
// can fix the input and resubmit.
func HandleSubmission(ctx context.Context, state *State, selected match.Selection) (*Outcome, error) {
	p := state.CurrentProblem
	if p == nil {
		return nil, fmt.Errorf("no active problem")
	}

	result, err := match.Classify(selected, p.RuleKey)
	if err != nil {
		return nil, err
	}

	correct := result.Status == match.StatusCorrect
	timeMs := int(time.Since(state.ProblemStartTime).Milliseconds())

	codes := make([]string, 0, len(selected))
	for code := range selected {
		codes = append(codes, string(code))
	}
	slices.Sort(codes)
	matched := make([]string, 0, len(result.Matched))
	for _, key := range result.Matched {
		matched = append(matched, string(key))
	}

	distance := 0
	if result.Nearest != nil {
		distance = result.Nearest.Distance
	}

	err = state.Events.AppendAttempt(ctx, store.AttemptEventData{
		SessionID:     state.SessionID,
		ProblemID:     p.ID,
		RuleKey:       string(p.RuleKey),
		Level:         p.Level,
		Narrative:     p.Narrative,
		SelectedCodes: codes,
		MatchedRules:  matched,
		Status:        result.Status.String(),
		Distance:      distance,
		TimeMs:        timeMs,
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	state.TotalProblems++
	if correct {
		state.TotalCorrect++
	}
	rr := state.PerRuleResults[string(p.RuleKey)]
	if rr == nil {
		rr = &RuleResult{RuleKey: string(p.RuleKey)}
		state.PerRuleResults[string(p.RuleKey)] = rr
	}
	rr.Attempted++
	if correct {
		rr.Correct++
	}

	state.Progress.RecordAttempt(string(p.RuleKey), correct)

	// Hints are feedback bookkeeping; losing one is not worth failing
	// the submission over.
	for _, h := range result.Hints {
		hintErr := state.Events.AppendHint(ctx, store.HintEventData{
			SessionID: state.SessionID,
			ProblemID: p.ID,
			Kind:      hintKindString(h.Kind),
			Code:      string(h.Code),
			RuleKey:   string(h.Rule),
			HintText:  h.Text,
		})
		if hintErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record hint: %v\n", hintErr)
		}
	}

	outcome := &Outcome{Result: result}
	if correct {
		if err := state.Sim.Post(ctx, state.SessionID, p.ID, result.Entry); err != nil {
			return nil, fmt.Errorf("post journal entry: %w", err)
		}
		unlock, err := state.Progress.CheckUnlock(ctx, state.SessionID)
		if err != nil {
			return nil, err
		}
		if unlock != nil {
			outcome.Unlock = &Unlocked{From: unlock.From, To: unlock.To}
			state.LastUnlock = unlock
		}
		state.Level = state.Progress.Level()
	}

	state.LastResult = result
	state.Phase = PhaseFeedback
	return outcome, nil
}

// End records the session end event and persists a snapshot of learner
// state. The snapshot is a cache over the event log; a save failure is
// reported but the session still ends cleanly.
func End(ctx context.Context, state *State, snaps store.SnapshotRepo) (*Summary, error) {
	state.Phase = PhaseSummary
	duration := time.Since(state.StartTime)

	err := state.Events.AppendSession(ctx, store.SessionEventData{
		SessionID:      state.SessionID,
		Action:         "end",
		Level:          state.Level,
		ProblemsServed: state.TotalProblems,
		CorrectAnswers: state.TotalCorrect,
		DurationSecs:   int(duration.Seconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("record session end: %w", err)
	}

	if snaps != nil {
		if err := saveSnapshot(ctx, state, snaps); err != nil {
			fmt.Fprintf(os.Stderr, "warning: snapshot save failed: %v\n", err)
		}
	}

	return BuildSummary(state, duration), nil
}

func saveSnapshot(ctx context.Context, state *State, snaps store.SnapshotRepo) error {
	data := state.Progress.SnapshotData()
	if balances, err := state.Sim.BalanceMap(ctx); err == nil {
		data.Balances = balances
	}
	snap := &store.Snapshot{
		Timestamp: time.Now(),
		Data:      *data,
	}
	if err := snaps.Save(ctx, snap); err != nil {
		return err
	}
	return snaps.Prune(ctx, 5)
}

func hintKindString(k match.HintKind) string {
	switch k {
	case match.HintProhibited:
		return "prohibited"
	case match.HintWouldClassify:
		return "would-classify"
	default:
		return "missing"
	}
}
