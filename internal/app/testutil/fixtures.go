package testutil

import (
	"time"

	"meetscribe/internal/app/model"
	"meetscribe/internal/app/provider"
)

// ActiveTenant builds a tenant valid for another year.
func ActiveTenant(name string, quotaHours, usageHours float64) model.Tenant {
	return model.Tenant{
		Name:       name,
		QuotaHours: quotaHours,
		UsageHours: usageHours,
		ValidTo:    time.Now().AddDate(1, 0, 0),
	}
}

// SucceededPoll builds a terminal successful poll with one sub-result.
func SucceededPoll(utterances []model.Utterance, totalDuration float64) *provider.PollResult {
	return &provider.PollResult{
		Status: model.StatusSucceeded,
		Results: []provider.SubResult{{
			Utterances:    utterances,
			TotalDuration: totalDuration,
			SourceURL:     "https://recordings.example.com/meeting.wav",
		}},
	}
}

// TwoSpeakerUtterances builds the canonical two speaker meeting: the
// first speaker talks 60s with 150 words, the second 40s with 80 words.
func TwoSpeakerUtterances() []model.Utterance {
	return []model.Utterance{
		{SpeakerID: 0, Text: repeatWords(150), StartSec: 0, EndSec: 60},
		{SpeakerID: 1, Text: repeatWords(80), StartSec: 60, EndSec: 100},
	}
}

func repeatWords(n int) string {
	out := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, 'w')
	}
	return string(out)
}
