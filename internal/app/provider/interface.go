package provider

import (
	"context"

	"meetscribe/internal/app/model"
)

// Adapter normalizes one provider's asynchronous job results into the
// canonical form. Implementations own the provider's wire format end to
// end; nothing downstream branches on the provider again.
type Adapter interface {
	// Name returns the provider tag ("azure", "fanolab").
	Name() string

	// Poll fetches the current state of a provider job. A Pending
	// result has no sub-results; a Failed result carries the provider's
	// error message; a Succeeded result carries one sub-result per
	// recognized channel.
	Poll(ctx context.Context, jobURL string) (*PollResult, error)
}

// SubResult is one normalized channel of a finished job.
type SubResult struct {
	// Utterances in non-decreasing start-time order.
	Utterances []model.Utterance

	// TotalDuration in seconds. Taken from the provider's own duration
	// field when present, otherwise the sum of utterance durations.
	TotalDuration float64

	// SourceURL points at the channel's source media.
	SourceURL string
}

// PollResult is the outcome of polling one provider job.
type PollResult struct {
	Status       model.JobStatus
	ErrorMessage string
	Results      []SubResult
	TenantRefIDs []model.RefID
}
