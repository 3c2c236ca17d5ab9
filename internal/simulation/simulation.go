package simulation

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/rules"
	"github.com/abhisek/aalp/internal/store"
)

// Balance is one account's position, signed in its normal direction: a
// positive asset balance means a net debit, a positive liability or
// revenue balance a net credit.
type Balance struct {
	Account rules.AccountLabel `json:"account"`
	Class   string             `json:"class"`
	Amount  float64            `json:"amount"`
}

// Simulation posts journal entries to the ledger event log and derives
// balances from it.
type Simulation struct {
	events store.EventRepo
}

// New creates a simulation over the given event log.
func New(events store.EventRepo) *Simulation {
	return &Simulation{events: events}
}

// Post records a resolved journal entry as ledger events, one per line.
// Lines are appended in entry order; a failure mid-entry leaves the log
// partially written, which the caller should treat as fatal for the
// session rather than retry.
func (s *Simulation) Post(ctx context.Context, sessionID, problemID string, entry *match.ResolvedEntry) error {
	if entry == nil {
		return errors.New("post entry: nil journal entry")
	}
	if len(entry.Lines) == 0 {
		return fmt.Errorf("post entry: empty journal entry for rule %q", entry.Rule)
	}
	for _, line := range entry.Lines {
		err := s.events.AppendLedger(ctx, store.LedgerEventData{
			SessionID: sessionID,
			ProblemID: problemID,
			RuleKey:   string(entry.Rule),
			Account:   string(line.Account),
			Side:      line.Side.String(),
			Amount:    line.Amount,
			Detail:    line.Detail,
		})
		if err != nil {
			return fmt.Errorf("post %s line for %s: %w", line.Side, line.Account, err)
		}
	}
	return nil
}

// Balances folds the full ledger log into per-account balances, in chart
// display order. Accounts with no postings are included at zero so the
// balance sheet always shows the whole chart.
func (s *Simulation) Balances(ctx context.Context) ([]Balance, error) {
	records, err := s.events.ListLedger(ctx, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	totals := make(map[rules.AccountLabel]float64)
	for _, rec := range records {
		label := rules.AccountLabel(rec.Account)
		delta := rec.Amount
		if (rec.Side == "DR") != ClassOf(label).DebitNormal() {
			delta = -delta
		}
		totals[label] += delta
	}

	out := make([]Balance, 0, len(chart))
	for _, a := range chart {
		out = append(out, Balance{
			Account: a.Label,
			Class:   a.Class.String(),
			Amount:  totals[a.Label],
		})
	}
	return out, nil
}

// BalanceMap returns balances keyed by account label, for snapshots.
func (s *Simulation) BalanceMap(ctx context.Context) (map[string]float64, error) {
	balances, err := s.Balances(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(balances))
	for _, b := range balances {
		out[string(b.Account)] = b.Amount
	}
	return out, nil
}
