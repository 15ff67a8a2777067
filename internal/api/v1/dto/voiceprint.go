package dto

import (
	"meetscribe/internal/api/errors"
	"meetscribe/internal/app/model"
)

// EnrollVoiceprintRequest enrolls one speaker from a server-local clip.
type EnrollVoiceprintRequest struct {
	Tenant     string `json:"tenant" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email,omitempty" binding:"omitempty,email"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	ClipPath   string `json:"clip_path" binding:"required"`
}

// Validate performs domain-specific validation
func (r *EnrollVoiceprintRequest) Validate() error {
	return nil
}

// EnrollVoiceprintResponse confirms the enrollment.
type EnrollVoiceprintResponse struct {
	PersonID int    `json:"person_id"`
	Name     string `json:"name"`
}

// SearchVoiceprintRequest runs a gallery search for a server-local clip.
type SearchVoiceprintRequest struct {
	Tenant   string `json:"tenant" binding:"required"`
	ClipPath string `json:"clip_path" binding:"required"`
	K        int    `json:"k,omitempty"`
}

// Validate performs domain-specific validation
func (r *SearchVoiceprintRequest) Validate() error {
	if r.K < 0 || r.K > 50 {
		return errors.NewValidationError("Invalid search request",
			map[string]string{"k": "must be between 0 and 50"})
	}
	return nil
}

// SearchVoiceprintResponse lists ranked candidates.
type SearchVoiceprintResponse struct {
	Candidates []model.Candidate `json:"candidates"`
}
