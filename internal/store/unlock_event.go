package store

import (
	"context"
	"fmt"

	"github.com/abhisek/aalp/ent"
	"github.com/abhisek/aalp/ent/unlockevent"
)

func (r *eventRepo) AppendUnlock(ctx context.Context, data UnlockEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.UnlockEvent.Create().
		SetSequence(seqNum).
		SetFromLevel(data.FromLevel).
		SetToLevel(data.ToLevel).
		SetAttempts(data.Attempts).
		SetAccuracy(data.Accuracy)

	if data.SessionID != "" {
		builder = builder.SetSessionID(data.SessionID)
	}

	if _, err := builder.Save(ctx); err != nil {
		return fmt.Errorf("save unlock event: %w", err)
	}
	return nil
}

func (r *eventRepo) MaxUnlockedLevel(ctx context.Context) (int, error) {
	e, err := r.client.UnlockEvent.Query().
		Order(ent.Desc(unlockevent.FieldToLevel)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("query max unlocked level: %w", err)
	}
	return e.ToLevel, nil
}
