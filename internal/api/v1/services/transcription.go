package services

import (
	"context"

	"meetscribe/internal/api/errors"
	"meetscribe/internal/api/v1/dto"
	"meetscribe/internal/app/pipeline"
)

// TranscriptionService exposes the pipeline to the HTTP layer.
type TranscriptionService interface {
	Poll(ctx context.Context, req *dto.PollRequest) (*dto.PollResponse, error)
}

type transcriptionService struct {
	orchestrator *pipeline.Orchestrator
}

// NewTranscriptionService creates a transcription service backed by the
// pipeline orchestrator.
func NewTranscriptionService(orchestrator *pipeline.Orchestrator) TranscriptionService {
	return &transcriptionService{orchestrator: orchestrator}
}

func (s *transcriptionService) Poll(ctx context.Context, req *dto.PollRequest) (*dto.PollResponse, error) {
	result, err := s.orchestrator.Process(ctx, pipeline.Request{
		Provider:  req.Provider,
		JobURL:    req.JobURL,
		Tenant:    req.Tenant,
		AudioPath: req.AudioPath,
	})
	if err != nil {
		return nil, errors.FromAppError(err)
	}

	return &dto.PollResponse{
		Status:       string(result.Status),
		ErrorMessage: result.ErrorMessage,
		Report:       result.Report,
	}, nil
}
