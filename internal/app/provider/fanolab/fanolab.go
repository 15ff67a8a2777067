package fanolab

import (
	"context"
	"net/http"
	"sort"

	apperrors "meetscribe/internal/app/errors"
	"meetscribe/internal/app/model"
	"meetscribe/internal/app/provider"
)

// Adapter polls FanoLab long-running-recognize operations. FanoLab
// returns a single operation resource carrying the whole result; times
// are strings like "12.480s" and results arrive in no particular order.
type Adapter struct {
	apiKey string
	client *http.Client
	retry  provider.RetryPolicy
}

// New creates a FanoLab adapter.
func New(apiKey string, client *http.Client, retry provider.RetryPolicy) *Adapter {
	return &Adapter{apiKey: apiKey, client: client, retry: retry}
}

// Name implements provider.Adapter.
func (a *Adapter) Name() string {
	return "fanolab"
}

type operationResponse struct {
	Done  *bool `json:"done"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Metadata struct {
		URI string `json:"uri"`
	} `json:"metadata"`
	Response struct {
		TotalBilledTime string `json:"totalBilledTime"`
		Results         []struct {
			Alternatives []struct {
				Transcript string           `json:"transcript"`
				StartTime  string           `json:"startTime"`
				EndTime    string           `json:"endTime"`
				SpeakerTag provider.FlexInt `json:"speakerTag"`
			} `json:"alternatives"`
		} `json:"results"`
	} `json:"response"`
}

// Poll implements provider.Adapter.
func (a *Adapter) Poll(ctx context.Context, jobURL string) (*provider.PollResult, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + a.apiKey,
		"Content-Type":  "application/json",
	}

	var op operationResponse
	if err := provider.GetJSON(ctx, a.client, jobURL, headers, a.retry, &op); err != nil {
		return nil, err
	}
	if op.Done == nil {
		return nil, apperrors.New(apperrors.KindTerminalProvider,
			"operation resource has no done field")
	}

	if !*op.Done {
		return &provider.PollResult{Status: model.StatusPending}, nil
	}

	if op.Error != nil {
		message := op.Error.Message
		if message == "" {
			message = "recognition failed"
		}
		return &provider.PollResult{
			Status:       model.StatusFailed,
			ErrorMessage: message,
		}, nil
	}

	sub := provider.SubResult{SourceURL: op.Metadata.URI}

	var sum float64
	for _, result := range op.Response.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		best := result.Alternatives[0]
		if !best.SpeakerTag.Set || best.Transcript == "" {
			continue
		}

		start := provider.ParseSeconds(best.StartTime)
		end := provider.ParseSeconds(best.EndTime)

		sub.Utterances = append(sub.Utterances, model.Utterance{
			SpeakerID: best.SpeakerTag.Value,
			Text:      best.Transcript,
			StartSec:  start,
			EndSec:    end,
		})
		sum += end - start
	}

	// Results are not ordered on the wire; keep the canonical timeline
	// sorted by start time. SliceStable keeps equal starts in arrival
	// order.
	sort.SliceStable(sub.Utterances, func(i, j int) bool {
		return sub.Utterances[i].StartSec < sub.Utterances[j].StartSec
	})

	if billed := provider.ParseSeconds(op.Response.TotalBilledTime); billed > 0 {
		sub.TotalDuration = billed
	} else {
		sub.TotalDuration = sum
	}

	return &provider.PollResult{
		Status:  model.StatusSucceeded,
		Results: []provider.SubResult{sub},
	}, nil
}
