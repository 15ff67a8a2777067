package timeline

import (
	"sort"

	"meetscribe/internal/app/model"
)

// DefaultEvidenceCount is how many segments per speaker are cropped
// for identity resolution when the pipeline config does not override it.
const DefaultEvidenceCount = 3

// SelectEvidence returns up to k of the longest segments, longest first.
// Ties keep their chronological order. The input slice is not modified.
func SelectEvidence(segments []model.Segment, k int) []model.Segment {
	if k <= 0 {
		k = DefaultEvidenceCount
	}

	sorted := make([]model.Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Duration > sorted[j].Duration
	})

	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}
