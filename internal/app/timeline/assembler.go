package timeline

import (
	"fmt"
	"strings"

	"meetscribe/internal/app/model"
)

// Timeline is the human-readable transcript plus the per-speaker
// analytics derived from one normalized utterance list.
type Timeline struct {
	Lines []string

	// Stats is keyed by speaker id; Order records first-seen order.
	Stats map[int]*model.SpeakerStats
	Order []int
}

// Assemble groups utterances by speaker and computes talk analytics.
// totalDuration is the job's overall duration in seconds; percentages
// are defined as zero when it is zero.
func Assemble(utterances []model.Utterance, totalDuration float64) *Timeline {
	tl := &Timeline{
		Stats: make(map[int]*model.SpeakerStats),
	}

	for _, u := range utterances {
		tl.Lines = append(tl.Lines, fmt.Sprintf("Speaker-%d (%s - %s): %s",
			u.SpeakerID, FormatTime(u.StartSec), FormatTime(u.EndSec), u.Text))

		stats, ok := tl.Stats[u.SpeakerID]
		if !ok {
			stats = &model.SpeakerStats{SpeakerID: u.SpeakerID}
			tl.Stats[u.SpeakerID] = stats
			tl.Order = append(tl.Order, u.SpeakerID)
		}

		duration := u.Duration()
		stats.TotalDuration += duration
		stats.TotalWords += len(strings.Fields(u.Text))
		stats.Segments = append(stats.Segments, model.Segment{
			Start:    u.StartSec,
			End:      u.EndSec,
			Duration: duration,
		})
	}

	for _, stats := range tl.Stats {
		// Guard both divisions: a zero-length job and a speaker with
		// zero talk time are valid inputs, not errors.
		if totalDuration > 0 {
			stats.Percentage = stats.TotalDuration / totalDuration * 100
		}
		if stats.TotalDuration > 0 {
			stats.WordsPerMinute = float64(stats.TotalWords) / (stats.TotalDuration / 60)
		}
	}

	return tl
}

// FormatTime renders seconds as HH:MM:SS, truncating fractions.
func FormatTime(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
