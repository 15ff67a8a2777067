package services

import (
	"context"

	"meetscribe/internal/api/errors"
	"meetscribe/internal/api/v1/dto"
	apperrors "meetscribe/internal/app/errors"
	"meetscribe/internal/app/model"
	"meetscribe/internal/app/quota"
)

// TenantService exposes quota inspection and reservation.
type TenantService interface {
	CheckQuota(ctx context.Context, req *dto.QuotaCheckRequest) (*dto.QuotaCheckResponse, error)
	GetTenant(ctx context.Context, name string) (*dto.TenantResponse, error)
}

type tenantService struct {
	guard *quota.Guard
	store quota.TenantStore
}

func NewTenantService(guard *quota.Guard, store quota.TenantStore) TenantService {
	return &tenantService{guard: guard, store: store}
}

// GetTenant returns the tenant's subscription state.
func (s *tenantService) GetTenant(ctx context.Context, name string) (*dto.TenantResponse, error) {
	tenant, err := s.store.GetTenant(ctx, name)
	if err != nil {
		return nil, errors.FromAppError(err)
	}
	if tenant == nil {
		return nil, errors.NewNotFoundError("tenant " + name)
	}
	return &dto.TenantResponse{
		Name:       tenant.Name,
		QuotaHours: tenant.QuotaHours,
		UsageHours: tenant.UsageHours,
		ValidTo:    tenant.ValidTo.Format("2006-01-02"),
	}, nil
}

// CheckQuota reports whether the tenant can afford the hours. A quota
// rejection is a decision, not a transport error, so it comes back as a
// 200 response with approved=false.
func (s *tenantService) CheckQuota(ctx context.Context, req *dto.QuotaCheckRequest) (*dto.QuotaCheckResponse, error) {
	durationSec := req.RequiredHours * 3600

	var tenant *model.Tenant
	var err error
	if req.Reserve {
		tenant, err = s.guard.CheckAndReserve(ctx, req.Tenant, durationSec)
	} else {
		tenant, err = s.guard.Check(ctx, req.Tenant, durationSec)
	}

	if err != nil {
		if !apperrors.IsKind(err, apperrors.KindQuotaExceeded) {
			return nil, errors.FromAppError(err)
		}
		resp := &dto.QuotaCheckResponse{
			Approved: false,
			Reason:   apperrors.MessageOf(err),
		}
		if tenant != nil {
			resp.QuotaHours = tenant.QuotaHours
			resp.UsageHours = tenant.UsageHours
		}
		return resp, nil
	}

	return &dto.QuotaCheckResponse{
		Approved:   true,
		Reserved:   req.Reserve,
		QuotaHours: tenant.QuotaHours,
		UsageHours: tenant.UsageHours,
	}, nil
}
