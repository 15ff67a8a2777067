package dto

import (
	"meetscribe/internal/api/errors"
)

// QuotaCheckRequest asks whether a tenant can afford a job, and
// optionally reserves the hours.
type QuotaCheckRequest struct {
	Tenant        string  `json:"tenant" binding:"required"`
	RequiredHours float64 `json:"required_hours" binding:"required"`
	Reserve       bool    `json:"reserve,omitempty"`
}

// Validate performs domain-specific validation
func (r *QuotaCheckRequest) Validate() error {
	if r.RequiredHours < 0 {
		return errors.NewValidationError("Invalid quota request",
			map[string]string{"required_hours": "must not be negative"})
	}
	return nil
}

// TenantResponse is the tenant's subscription state.
type TenantResponse struct {
	Name       string  `json:"name"`
	QuotaHours float64 `json:"quota_hours"`
	UsageHours float64 `json:"usage_hours"`
	ValidTo    string  `json:"valid_to"`
}

// QuotaCheckResponse reports the decision and the tenant state it was
// made against.
type QuotaCheckResponse struct {
	Approved   bool    `json:"approved"`
	Reserved   bool    `json:"reserved"`
	Reason     string  `json:"reason,omitempty"`
	QuotaHours float64 `json:"quota_hours"`
	UsageHours float64 `json:"usage_hours"`
}
