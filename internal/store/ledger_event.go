package store

import (
	"context"
	"fmt"

	"github.com/abhisek/aalp/ent"
	"github.com/abhisek/aalp/ent/ledgerevent"
)

func (r *eventRepo) AppendLedger(ctx context.Context, data LedgerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.LedgerEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetProblemID(data.ProblemID).
		SetRuleKey(data.RuleKey).
		SetAccount(data.Account).
		SetSide(data.Side).
		SetAmount(data.Amount).
		SetDetail(data.Detail).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save ledger event: %w", err)
	}
	return nil
}

func (r *eventRepo) ListLedger(ctx context.Context, opts QueryOpts) ([]LedgerRecord, error) {
	q := r.client.LedgerEvent.Query()
	if opts.After > 0 {
		q = q.Where(ledgerevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		q = q.Where(ledgerevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		q = q.Where(ledgerevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		q = q.Where(ledgerevent.TimestampLTE(opts.To))
	}
	q = q.Order(ent.Asc(ledgerevent.FieldSequence))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query ledger events: %w", err)
	}

	records := make([]LedgerRecord, len(events))
	for i, e := range events {
		records[i] = LedgerRecord{
			LedgerEventData: LedgerEventData{
				SessionID: e.SessionID,
				ProblemID: e.ProblemID,
				RuleKey:   e.RuleKey,
				Account:   e.Account,
				Side:      e.Side,
				Amount:    e.Amount,
				Detail:    e.Detail,
			},
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
		}
	}
	return records, nil
}
