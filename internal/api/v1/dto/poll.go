package dto

import (
	"strings"

	"meetscribe/internal/api/errors"
	"meetscribe/internal/app/model"
)

// PollRequest asks the pipeline to poll one provider job and, when it
// is finished, produce the report.
type PollRequest struct {
	JobURL   string `json:"job_url" binding:"required"`
	Tenant   string `json:"tenant" binding:"required"`
	Provider string `json:"provider,omitempty"`

	// AudioPath is the server-local recording used for identity
	// evidence. Optional; without it speakers stay unknown.
	AudioPath string `json:"audio_path,omitempty"`
}

// Validate performs domain-specific validation
func (r *PollRequest) Validate() error {
	validationErrors := make(map[string]string)

	if !strings.HasPrefix(r.JobURL, "http://") && !strings.HasPrefix(r.JobURL, "https://") {
		validationErrors["job_url"] = "must be an absolute http(s) URL"
	}
	if r.Provider != "" && r.Provider != "azure" && r.Provider != "fanolab" {
		validationErrors["provider"] = "must be one of [azure, fanolab]"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid poll request", validationErrors)
	}
	return nil
}

// PollResponse is the outcome of one poll.
type PollResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Report       *model.Report `json:"report,omitempty"`
}
