package model

// JobStatus represents the lifecycle state of a transcription job.
// Pending is the only non-terminal state; callers re-poll until the
// provider reports Succeeded or Failed.
type JobStatus string

const (
	StatusPending   JobStatus = "Pending"
	StatusSucceeded JobStatus = "Succeeded"
	StatusFailed    JobStatus = "Failed"
)

// Terminal reports whether the status will never change again.
func (s JobStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Utterance is one speaker's contiguous speech turn with timing.
// Adapters produce utterances in canonical form; nothing downstream
// branches on the originating provider.
type Utterance struct {
	SpeakerID int     `json:"speaker_id"`
	Text      string  `json:"text"`
	StartSec  float64 `json:"start_sec"`
	EndSec    float64 `json:"end_sec"`
}

// Duration returns the utterance length in seconds.
func (u Utterance) Duration() float64 {
	return u.EndSec - u.StartSec
}

// Segment is a retained time range of one speaker, kept for evidence
// selection after aggregation.
type Segment struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// SpeakerStats holds per-speaker talk analytics. It is filled in two
// passes: the timeline assembler writes the aggregate figures, the
// identity resolver later fills IdentifiedName and Confidence.
type SpeakerStats struct {
	SpeakerID      int       `json:"speaker_id"`
	TotalDuration  float64   `json:"total_duration"`
	TotalWords     int       `json:"total_words"`
	Percentage     float64   `json:"percentage"`
	WordsPerMinute float64   `json:"words_per_minute"`
	Segments       []Segment `json:"segments,omitempty"`

	IdentifiedName *string  `json:"identified_name"`
	Confidence     *float64 `json:"confidence"`
}

// Report is the final output of the pipeline for one job.
type Report struct {
	SysIDs         []RefID               `json:"sys_id"`
	SourceURL      string                `json:"source_url"`
	TotalDuration  float64               `json:"total_duration"`
	Transcriptions []string              `json:"transcriptions"`
	SpeakerStats   map[int]*SpeakerStats `json:"speaker_stats"`
	Summary        string                `json:"summary,omitempty"`
}
