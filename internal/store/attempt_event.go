package store

import (
	"context"
	"fmt"

	"github.com/abhisek/aalp/ent"
	"github.com/abhisek/aalp/ent/attemptevent"
)

// eventRepo implements EventRepo backed by ent and the global sequence
// counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.AttemptEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetProblemID(data.ProblemID).
		SetRuleKey(data.RuleKey).
		SetLevel(data.Level).
		SetNarrative(data.Narrative).
		SetStatus(data.Status).
		SetDistance(data.Distance).
		SetTimeMs(data.TimeMs)

	if len(data.SelectedCodes) > 0 {
		builder = builder.SetSelectedCodes(data.SelectedCodes)
	}
	if len(data.MatchedRules) > 0 {
		builder = builder.SetMatchedRules(data.MatchedRules)
	}

	if _, err := builder.Save(ctx); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) ListAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	q := r.client.AttemptEvent.Query()
	if opts.After > 0 {
		q = q.Where(attemptevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		q = q.Where(attemptevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		q = q.Where(attemptevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		q = q.Where(attemptevent.TimestampLTE(opts.To))
	}
	q = q.Order(ent.Asc(attemptevent.FieldSequence))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	records := make([]AttemptRecord, len(events))
	for i, e := range events {
		records[i] = AttemptRecord{
			AttemptEventData: AttemptEventData{
				SessionID:     e.SessionID,
				ProblemID:     e.ProblemID,
				RuleKey:       e.RuleKey,
				Level:         e.Level,
				Narrative:     e.Narrative,
				SelectedCodes: e.SelectedCodes,
				MatchedRules:  e.MatchedRules,
				Status:        e.Status,
				Distance:      e.Distance,
				TimeMs:        e.TimeMs,
			},
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
		}
	}
	return records, nil
}

func (r *eventRepo) LevelStats(ctx context.Context, level int) (LevelStats, error) {
	attempts, err := r.client.AttemptEvent.Query().
		Where(attemptevent.Level(level)).
		Count(ctx)
	if err != nil {
		return LevelStats{}, fmt.Errorf("count level attempts: %w", err)
	}

	correct, err := r.client.AttemptEvent.Query().
		Where(attemptevent.Level(level), attemptevent.Status("correct")).
		Count(ctx)
	if err != nil {
		return LevelStats{}, fmt.Errorf("count level correct: %w", err)
	}

	return LevelStats{Attempts: attempts, Correct: correct}, nil
}

func (r *eventRepo) RuleStats(ctx context.Context) (map[string]RuleTally, error) {
	events, err := r.client.AttemptEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query rule stats: %w", err)
	}

	stats := make(map[string]RuleTally)
	for _, e := range events {
		t := stats[e.RuleKey]
		t.Attempts++
		if e.Status == "correct" {
			t.Correct++
		}
		stats[e.RuleKey] = t
	}
	return stats, nil
}

func (r *eventRepo) RecentNarratives(ctx context.Context, limit int) ([]string, error) {
	events, err := r.client.AttemptEvent.Query().
		Order(ent.Desc(attemptevent.FieldSequence)).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent narratives: %w", err)
	}

	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Narrative
	}
	return out, nil
}
