package azure

import (
	"context"
	"net/http"
	"strings"

	apperrors "meetscribe/internal/app/errors"
	"meetscribe/internal/app/model"
	"meetscribe/internal/app/provider"
)

// ticksPerSecond converts Azure batch-transcription 100ns ticks.
const ticksPerSecond = 1e7

// sysIDMarker prefixes the tenant reference ids embedded in a job's
// display name, e.g. "weekly sync sys_id:42,ops".
const sysIDMarker = "sys_id:"

// Adapter polls Azure Speech batch-transcription jobs and normalizes
// their results. Azure reports a job resource first; the actual phrase
// files hang off a secondary "files" resource, one per audio channel.
type Adapter struct {
	apiKey string
	client *http.Client
	retry  provider.RetryPolicy
}

// New creates an Azure adapter. The client must have an explicit
// timeout; use provider.NewHTTPClient.
func New(apiKey string, client *http.Client, retry provider.RetryPolicy) *Adapter {
	return &Adapter{apiKey: apiKey, client: client, retry: retry}
}

// Name implements provider.Adapter.
func (a *Adapter) Name() string {
	return "azure"
}

type statusResponse struct {
	Status      string `json:"status"`
	DisplayName string `json:"displayName"`
	Links       struct {
		Files string `json:"files"`
	} `json:"links"`
}

type filesResponse struct {
	Values []struct {
		Links struct {
			ContentURL string `json:"contentUrl"`
		} `json:"links"`
	} `json:"values"`
}

type transcriptResponse struct {
	Source               string             `json:"source"`
	DurationMilliseconds provider.FlexFloat `json:"durationMilliseconds"`
	RecognizedPhrases    []recognizedPhrase `json:"recognizedPhrases"`
}

type recognizedPhrase struct {
	Speaker         provider.FlexInt   `json:"speaker"`
	OffsetInTicks   provider.FlexFloat `json:"offsetInTicks"`
	DurationInTicks provider.FlexFloat `json:"durationInTicks"`
	NBest           []struct {
		Display string `json:"display"`
	} `json:"nBest"`
}

// Poll implements provider.Adapter.
func (a *Adapter) Poll(ctx context.Context, jobURL string) (*provider.PollResult, error) {
	headers := map[string]string{
		"Ocp-Apim-Subscription-Key": a.apiKey,
		"Content-Type":              "application/json",
	}

	var status statusResponse
	if err := provider.GetJSON(ctx, a.client, jobURL, headers, a.retry, &status); err != nil {
		return nil, err
	}
	if status.Status == "" {
		return nil, apperrors.New(apperrors.KindTerminalProvider,
			"job resource has no status field")
	}

	// Azure reports Running/NotStarted while transcribing; only
	// Succeeded is terminal here, the caller re-polls everything else.
	if status.Status != "Succeeded" {
		return &provider.PollResult{Status: model.StatusPending}, nil
	}

	if status.Links.Files == "" {
		return nil, apperrors.New(apperrors.KindTerminalProvider,
			"succeeded job has no files link")
	}

	var files filesResponse
	if err := provider.GetJSON(ctx, a.client, status.Links.Files, headers, a.retry, &files); err != nil {
		return nil, err
	}

	contentURLs := make([]string, 0, len(files.Values))
	for _, value := range files.Values {
		if value.Links.ContentURL != "" {
			contentURLs = append(contentURLs, value.Links.ContentURL)
		}
	}
	if len(contentURLs) == 0 {
		return nil, apperrors.New(apperrors.KindTerminalProvider,
			"files resource lists no content URLs")
	}

	// The last entry is the transcription report for the whole job, not
	// a channel transcript.
	if len(contentURLs) > 1 {
		contentURLs = contentURLs[:len(contentURLs)-1]
	}

	result := &provider.PollResult{
		Status:       model.StatusSucceeded,
		TenantRefIDs: parseRefIDs(status.DisplayName),
	}

	for _, contentURL := range contentURLs {
		// Content URLs are SAS-signed; no subscription key needed.
		var transcript transcriptResponse
		if err := provider.GetJSON(ctx, a.client, contentURL, nil, a.retry, &transcript); err != nil {
			return nil, err
		}
		result.Results = append(result.Results, normalize(transcript))
	}

	return result, nil
}

// normalize turns one channel transcript into a canonical sub-result.
// Azure pre-orders phrases by offset, so no sort is needed.
func normalize(transcript transcriptResponse) provider.SubResult {
	sub := provider.SubResult{SourceURL: transcript.Source}

	var sum float64
	for _, phrase := range transcript.RecognizedPhrases {
		if !phrase.Speaker.Set || len(phrase.NBest) == 0 {
			continue
		}
		text := phrase.NBest[0].Display
		if text == "" {
			continue
		}

		start := float64(phrase.OffsetInTicks) / ticksPerSecond
		duration := float64(phrase.DurationInTicks) / ticksPerSecond

		sub.Utterances = append(sub.Utterances, model.Utterance{
			SpeakerID: phrase.Speaker.Value,
			Text:      text,
			StartSec:  start,
			EndSec:    start + duration,
		})
		sum += duration
	}

	if transcript.DurationMilliseconds > 0 {
		sub.TotalDuration = float64(transcript.DurationMilliseconds) / 1000
	} else {
		sub.TotalDuration = sum
	}
	return sub
}

// parseRefIDs extracts the comma-separated tenant reference ids that
// follow the sys_id marker in the display name.
func parseRefIDs(displayName string) []model.RefID {
	idx := strings.Index(displayName, sysIDMarker)
	if idx < 0 {
		return nil
	}

	var refs []model.RefID
	for _, part := range strings.Split(displayName[idx+len(sysIDMarker):], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		refs = append(refs, model.ParseRefID(part))
	}
	return refs
}
