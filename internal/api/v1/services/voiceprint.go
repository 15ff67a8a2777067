package services

import (
	"context"

	"meetscribe/internal/api/errors"
	"meetscribe/internal/api/v1/dto"
	"meetscribe/internal/app/identity"
	"meetscribe/internal/app/model"
)

// VoiceprintService manages the enrollment gallery.
type VoiceprintService interface {
	Enroll(ctx context.Context, req *dto.EnrollVoiceprintRequest) (*dto.EnrollVoiceprintResponse, error)
	Search(ctx context.Context, req *dto.SearchVoiceprintRequest) (*dto.SearchVoiceprintResponse, error)
}

type voiceprintService struct {
	encoder identity.Encoder
	gallery identity.Gallery
}

func NewVoiceprintService(encoder identity.Encoder, gallery identity.Gallery) VoiceprintService {
	return &voiceprintService{encoder: encoder, gallery: gallery}
}

func (s *voiceprintService) Enroll(ctx context.Context, req *dto.EnrollVoiceprintRequest) (*dto.EnrollVoiceprintResponse, error) {
	embedding, err := s.encoder.Embed(ctx, req.ClipPath)
	if err != nil {
		return nil, errors.NewServiceUnavailableError("voice encoder is unavailable")
	}

	record := &model.VoiceprintRecord{
		Tenant:     req.Tenant,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Embedding:  embedding,
	}
	if err := s.gallery.Enroll(ctx, record); err != nil {
		return nil, errors.FromAppError(err)
	}

	return &dto.EnrollVoiceprintResponse{
		PersonID: record.PersonID,
		Name:     record.Name,
	}, nil
}

func (s *voiceprintService) Search(ctx context.Context, req *dto.SearchVoiceprintRequest) (*dto.SearchVoiceprintResponse, error) {
	embedding, err := s.encoder.Embed(ctx, req.ClipPath)
	if err != nil {
		return nil, errors.NewServiceUnavailableError("voice encoder is unavailable")
	}

	k := req.K
	if k == 0 {
		k = 3
	}
	candidates, err := s.gallery.Search(ctx, req.Tenant, embedding, k)
	if err != nil {
		return nil, errors.FromAppError(err)
	}
	if candidates == nil {
		candidates = []model.Candidate{}
	}
	return &dto.SearchVoiceprintResponse{Candidates: candidates}, nil
}
