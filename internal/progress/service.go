// Package progress tracks the learner's level, streak, and per-rule
// proficiency. State lives in the event log; the in-memory service is
// rebuilt from a snapshot plus the attempts recorded after it.
package progress

import (
	"context"
	"fmt"

	"github.com/abhisek/aalp/internal/rules"
	"github.com/abhisek/aalp/internal/store"
)

// Config holds the level-up thresholds.
type Config struct {
	// MinAttempts is the minimum number of attempts per rule before its
	// accuracy counts toward a level-up.
	MinAttempts int

	// AccuracyThreshold is the correct ratio each rule introduced at the
	// current level must reach.
	AccuracyThreshold float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{MinAttempts: 3, AccuracyThreshold: 0.8}
}

// Unlock reports a level transition.
type Unlock struct {
	From     int
	To       int
	Attempts int
	Accuracy float64
}

// Service tracks learner progression.
type Service struct {
	level   int
	streak  int
	tallies map[string]store.RuleTally
	events  store.EventRepo
	config  Config
}

// NewService creates a progress service from a snapshot. A nil snapshot
// starts a fresh learner at level 1.
func NewService(snap *store.SnapshotData, events store.EventRepo, cfg Config) *Service {
	s := &Service{
		level:   1,
		tallies: make(map[string]store.RuleTally),
		events:  events,
		config:  cfg,
	}
	if snap == nil {
		return s
	}
	if snap.Level > 0 {
		s.level = snap.Level
	}
	s.streak = snap.Streak
	for key, tally := range snap.Tallies {
		s.tallies[key] = tally
	}
	return s
}

// Rebuild reconstructs progression state from the event log, replacing
// whatever the snapshot loaded. Used when no snapshot exists or the
// snapshot version is stale.
func (s *Service) Rebuild(ctx context.Context) error {
	tallies, err := s.events.RuleStats(ctx)
	if err != nil {
		return fmt.Errorf("rebuild rule tallies: %w", err)
	}
	maxUnlocked, err := s.events.MaxUnlockedLevel(ctx)
	if err != nil {
		return fmt.Errorf("rebuild level: %w", err)
	}

	s.tallies = tallies
	if s.tallies == nil {
		s.tallies = make(map[string]store.RuleTally)
	}
	s.level = 1
	if maxUnlocked > s.level {
		s.level = maxUnlocked
	}

	// Streak is the trailing run of correct attempts.
	attempts, err := s.events.ListAttempts(ctx, store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("rebuild streak: %w", err)
	}
	s.streak = 0
	for i := len(attempts) - 1; i >= 0; i-- {
		if attempts[i].Status != "correct" {
			break
		}
		s.streak++
	}
	return nil
}

// Level returns the learner's current level.
func (s *Service) Level() int { return s.level }

// Streak returns the current consecutive-correct count.
func (s *Service) Streak() int { return s.streak }

// Tally returns the attempt counts for one rule.
func (s *Service) Tally(ruleKey string) store.RuleTally {
	return s.tallies[ruleKey]
}

// Tallies returns a copy of all per-rule attempt counts.
func (s *Service) Tallies() map[string]store.RuleTally {
	out := make(map[string]store.RuleTally, len(s.tallies))
	for k, v := range s.tallies {
		out[k] = v
	}
	return out
}

// RecordAttempt updates proficiency counters after one classification
// attempt. It does not persist anything; the attempt event itself is
// appended by the session layer.
func (s *Service) RecordAttempt(ruleKey string, correct bool) {
	tally := s.tallies[ruleKey]
	tally.Attempts++
	if correct {
		tally.Correct++
		s.streak++
	} else {
		s.streak = 0
	}
	s.tallies[ruleKey] = tally
}

// CheckUnlock advances the learner one level when every rule introduced
// at the current level has enough attempts at or above the accuracy
// threshold. The transition is appended to the event log. Returns nil
// when no unlock happens.
func (s *Service) CheckUnlock(ctx context.Context, sessionID string) (*Unlock, error) {
	if s.level >= rules.MaxLevel() {
		return nil, nil
	}

	var attempts, correct int
	for _, r := range rules.ForLevel(s.level) {
		if r.Level != s.level {
			continue
		}
		tally := s.tallies[string(r.Key)]
		if tally.Attempts < s.config.MinAttempts {
			return nil, nil
		}
		if float64(tally.Correct)/float64(tally.Attempts) < s.config.AccuracyThreshold {
			return nil, nil
		}
		attempts += tally.Attempts
		correct += tally.Correct
	}

	unlock := &Unlock{
		From:     s.level,
		To:       s.level + 1,
		Attempts: attempts,
	}
	if attempts > 0 {
		unlock.Accuracy = float64(correct) / float64(attempts)
	}

	if s.events != nil {
		err := s.events.AppendUnlock(ctx, store.UnlockEventData{
			FromLevel: unlock.From,
			ToLevel:   unlock.To,
			Attempts:  unlock.Attempts,
			Accuracy:  unlock.Accuracy,
			SessionID: sessionID,
		})
		if err != nil {
			return nil, fmt.Errorf("record unlock: %w", err)
		}
	}

	s.level = unlock.To
	return unlock, nil
}

// SnapshotData exports the current progression state for persistence.
func (s *Service) SnapshotData() *store.SnapshotData {
	return &store.SnapshotData{
		Version: 1,
		Level:   s.level,
		Streak:  s.streak,
		Tallies: s.Tallies(),
	}
}
