package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.LLMRequestEvent.Create().
		SetSequence(seqNum).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetCostUsd(data.CostUSD).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		SetRequestBody(data.RequestBody).
		SetResponseBody(data.ResponseBody).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) LLMSpend(ctx context.Context) (LLMTotals, error) {
	events, err := r.client.LLMRequestEvent.Query().All(ctx)
	if err != nil {
		return LLMTotals{}, fmt.Errorf("query LLM requests: %w", err)
	}

	var totals LLMTotals
	for _, e := range events {
		totals.Requests++
		totals.InputTokens += e.InputTokens
		totals.OutputTokens += e.OutputTokens
		totals.CostUSD += e.CostUsd
	}
	return totals, nil
}
