// Package pipeline drives one transcription job from provider poll to
// final report.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"meetscribe/internal/app/cache"
	apperrors "meetscribe/internal/app/errors"
	"meetscribe/internal/app/identity"
	"meetscribe/internal/app/metrics"
	"meetscribe/internal/app/model"
	"meetscribe/internal/app/provider"
	"meetscribe/internal/app/quota"
	"meetscribe/internal/app/scratch"
	"meetscribe/internal/app/summary"
	"meetscribe/internal/app/timeline"
)

// Request is one poll of one provider job.
type Request struct {
	Provider string
	JobURL   string
	Tenant   string

	// AudioPath is the local source recording used for evidence
	// cropping. Empty means identity resolution is skipped and every
	// speaker is reported unknown.
	AudioPath string
}

// Result is the outcome of one poll. Report is set only on success.
type Result struct {
	Status       model.JobStatus
	ErrorMessage string
	Report       *model.Report
}

// Options are the pipeline knobs, resolved from configuration.
type Options struct {
	EvidenceTopK int
	Workers      int
	ScratchDir   string
}

func (o Options) withDefaults() Options {
	if o.EvidenceTopK <= 0 {
		o.EvidenceTopK = timeline.DefaultEvidenceCount
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// Orchestrator wires the pipeline stages together. Jobs are independent;
// the only state shared between concurrent jobs is the tenant record,
// which the quota guard serializes.
type Orchestrator struct {
	registry   *provider.Registry
	guard      *quota.Guard
	resolver   *identity.Resolver
	summarizer summary.Summarizer
	reports    cache.ReportCache
	metrics    *metrics.Metrics
	logger     *zap.Logger
	opts       Options
}

func NewOrchestrator(
	registry *provider.Registry,
	guard *quota.Guard,
	resolver *identity.Resolver,
	summarizer summary.Summarizer,
	reports cache.ReportCache,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts Options,
) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		guard:      guard,
		resolver:   resolver,
		summarizer: summarizer,
		reports:    reports,
		metrics:    m,
		logger:     logger,
		opts:       opts.withDefaults(),
	}
}

// Process polls the job and, when it has succeeded, runs the rest of
// the pipeline. Callers re-poll while the result stays Pending; a
// cached report short-circuits everything.
func (o *Orchestrator) Process(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()

	adapter, err := o.adapterFor(req.Provider)
	if err != nil {
		return nil, err
	}

	if report, hit, cacheErr := o.reports.Get(ctx, req.JobURL); cacheErr != nil {
		o.logger.Warn("report cache lookup failed", zap.Error(cacheErr))
	} else if hit {
		o.logger.Debug("report served from cache", zap.String("job_url", req.JobURL))
		return &Result{Status: model.StatusSucceeded, Report: report}, nil
	}

	poll, err := adapter.Poll(ctx, req.JobURL)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindTransientProvider) {
			o.metrics.ProviderRetries.WithLabelValues(adapter.Name()).Inc()
		}
		return nil, err
	}
	o.metrics.PollDuration.WithLabelValues(adapter.Name()).Observe(time.Since(started).Seconds())

	switch poll.Status {
	case model.StatusPending:
		return &Result{Status: model.StatusPending}, nil
	case model.StatusFailed:
		o.metrics.JobsProcessed.WithLabelValues(adapter.Name(), "failed").Inc()
		return &Result{Status: model.StatusFailed, ErrorMessage: poll.ErrorMessage}, nil
	}

	report, err := o.buildReport(ctx, req, poll)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindQuotaExceeded) {
			o.metrics.QuotaRejections.Inc()
			o.metrics.JobsProcessed.WithLabelValues(adapter.Name(), "quota_rejected").Inc()
		}
		return nil, err
	}

	if cacheErr := o.reports.Set(ctx, req.JobURL, report); cacheErr != nil {
		o.logger.Warn("report cache store failed", zap.Error(cacheErr))
	}
	o.metrics.JobsProcessed.WithLabelValues(adapter.Name(), "succeeded").Inc()

	return &Result{Status: model.StatusSucceeded, Report: report}, nil
}

func (o *Orchestrator) adapterFor(name string) (provider.Adapter, error) {
	if name == "" {
		return o.registry.Default()
	}
	return o.registry.Get(name)
}

// buildReport runs normalization, quota reservation and identity
// resolution for a succeeded job. The quota check runs before any
// identity work so a rejected tenant pays for nothing.
func (o *Orchestrator) buildReport(ctx context.Context, req Request, poll *provider.PollResult) (*model.Report, error) {
	utterances := lo.FlatMap(poll.Results, func(sub provider.SubResult, _ int) []model.Utterance {
		return sub.Utterances
	})
	totalDuration := lo.SumBy(poll.Results, func(sub provider.SubResult) float64 {
		return sub.TotalDuration
	})

	if _, err := o.guard.CheckAndReserve(ctx, req.Tenant, totalDuration); err != nil {
		return nil, err
	}

	tl := timeline.Assemble(utterances, totalDuration)

	jobID := req.JobURL
	if err := o.resolveSpeakers(ctx, req, jobID, tl); err != nil {
		return nil, err
	}

	report := &model.Report{
		SysIDs:         poll.TenantRefIDs,
		TotalDuration:  totalDuration,
		Transcriptions: tl.Lines,
		SpeakerStats:   tl.Stats,
	}
	if len(poll.Results) > 0 {
		report.SourceURL = poll.Results[0].SourceURL
	}

	if text, err := o.summarizer.Summarize(ctx, tl.Lines); err != nil {
		o.logger.Warn("summary generation failed", zap.Error(err))
	} else {
		report.Summary = text
	}

	return report, nil
}

// resolveSpeakers fills identity fields on every speaker, fanning out
// over a bounded worker pool. Lookup failures degrade the affected
// speaker to unknown and never fail the job.
func (o *Orchestrator) resolveSpeakers(ctx context.Context, req Request, jobID string, tl *timeline.Timeline) error {
	if req.AudioPath == "" {
		for _, stats := range tl.Stats {
			markSpeaker(stats, identity.Unknown, 0)
		}
		return nil
	}

	ws, err := scratch.NewWorkspace(o.opts.ScratchDir)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := ws.Close(); closeErr != nil {
			o.logger.Warn("scratch cleanup failed", zap.Error(closeErr))
		}
	}()

	var wg sync.WaitGroup
	sem := make(chan struct{}, o.opts.Workers)

	for _, speakerID := range tl.Order {
		stats := tl.Stats[speakerID]
		evidence := timeline.SelectEvidence(stats.Segments, o.opts.EvidenceTopK)
		if len(evidence) == 0 {
			markSpeaker(stats, identity.Unknown, 0)
			o.metrics.SpeakersResolved.WithLabelValues("unknown").Inc()
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(speakerID int, stats *model.SpeakerStats, evidence []model.Segment) {
			defer wg.Done()
			defer func() { <-sem }()

			name, confidence, resolveErr := o.resolver.Resolve(ctx, ws, req.AudioPath, req.Tenant, jobID, speakerID, evidence)
			if resolveErr != nil {
				o.logger.Warn("identity lookup failed, speaker degraded to unknown",
					zap.Int("speaker", speakerID), zap.Error(resolveErr))
				markSpeaker(stats, identity.Unknown, 0)
				o.metrics.SpeakersResolved.WithLabelValues("error").Inc()
				return
			}

			markSpeaker(stats, name, confidence)
			if name == identity.Unknown {
				o.metrics.SpeakersResolved.WithLabelValues("unknown").Inc()
			} else {
				o.metrics.SpeakersResolved.WithLabelValues("identified").Inc()
			}
		}(speakerID, stats, evidence)
	}
	wg.Wait()

	return nil
}

func markSpeaker(stats *model.SpeakerStats, name string, confidence float64) {
	stats.IdentifiedName = &name
	stats.Confidence = &confidence
}
