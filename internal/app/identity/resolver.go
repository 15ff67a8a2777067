// Package identity resolves speaker identities by matching evidence
// clip embeddings against an enrolled voiceprint gallery.
package identity

import (
	"context"
	"os"

	"go.uber.org/zap"

	"meetscribe/internal/app/audio"
	apperrors "meetscribe/internal/app/errors"
	"meetscribe/internal/app/model"
	"meetscribe/internal/app/scratch"
	"meetscribe/internal/app/storage"
)

// Unknown is the identity assigned when no candidate clears the
// confidence threshold.
const Unknown = "unknown"

// searchK is how many candidates each gallery query returns.
const searchK = 3

// Resolver crops evidence clips, embeds them and queries the gallery.
type Resolver struct {
	codec     audio.Codec
	encoder   Encoder
	gallery   Gallery
	clips     storage.ClipStore
	logger    *zap.Logger
	threshold float64
}

// NewResolver builds a Resolver. threshold outside (0,1] falls back to
// the 0.8 default. clips may be a NopClipStore when evidence archiving
// is disabled.
func NewResolver(codec audio.Codec, encoder Encoder, gallery Gallery, clips storage.ClipStore, logger *zap.Logger, threshold float64) *Resolver {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}
	return &Resolver{
		codec:     codec,
		encoder:   encoder,
		gallery:   gallery,
		clips:     clips,
		logger:    logger,
		threshold: threshold,
	}
}

// Resolve identifies one speaker from its evidence segments. The best
// similarity across all clips and candidates decides the match; it is
// accepted only at or above the threshold. Cropped clips are removed on
// every exit path.
func (r *Resolver) Resolve(ctx context.Context, ws *scratch.Workspace, sourceAudio, tenant, jobID string, speakerID int, evidence []model.Segment) (string, float64, error) {
	if len(evidence) == 0 {
		return Unknown, 0, nil
	}

	bestName := Unknown
	bestSimilarity := 0.0
	sawCandidates := false

	for _, segment := range evidence {
		name, similarity, found, err := r.resolveClip(ctx, ws, sourceAudio, tenant, jobID, segment)
		if err != nil {
			return Unknown, 0, apperrors.IdentityLookup(err, speakerID)
		}
		if !found {
			continue
		}
		sawCandidates = true
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			bestName = name
		}
	}

	if !sawCandidates {
		return Unknown, 0, nil
	}
	if bestSimilarity < r.threshold {
		r.logger.Debug("best candidate below threshold",
			zap.Int("speaker", speakerID),
			zap.Float64("similarity", bestSimilarity),
			zap.Float64("threshold", r.threshold))
		return Unknown, bestSimilarity, nil
	}
	return bestName, bestSimilarity, nil
}

// resolveClip crops one segment, embeds it and searches the gallery.
// found is false when the gallery has no candidates for this tenant.
func (r *Resolver) resolveClip(ctx context.Context, ws *scratch.Workspace, sourceAudio, tenant, jobID string, segment model.Segment) (name string, similarity float64, found bool, err error) {
	clipPath := ws.NewClipPath()
	defer func() {
		if removeErr := os.Remove(clipPath); removeErr != nil && !os.IsNotExist(removeErr) {
			r.logger.Warn("evidence clip not removed",
				zap.String("clip", clipPath), zap.Error(removeErr))
		}
	}()

	if err := r.codec.ExtractSegment(ctx, sourceAudio, clipPath, segment.Start, segment.Duration); err != nil {
		return "", 0, false, err
	}

	if _, archiveErr := r.clips.UploadClip(ctx, jobID, clipPath); archiveErr != nil {
		r.logger.Warn("evidence clip not archived", zap.Error(archiveErr))
	}

	embedding, err := r.encoder.Embed(ctx, clipPath)
	if err != nil {
		// Sentinel keeps the pipeline moving; a zero vector never
		// matches, so this clip simply contributes no identity.
		r.logger.Warn("embedding extraction failed, using zero vector", zap.Error(err))
		embedding = ZeroEmbedding()
	}

	candidates, err := r.gallery.Search(ctx, tenant, embedding, searchK)
	if err != nil {
		return "", 0, false, err
	}
	if len(candidates) == 0 {
		return "", 0, false, nil
	}
	return candidates[0].Name, candidates[0].Similarity, true, nil
}
