package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetscribe/internal/api/v1/dto"
	"meetscribe/internal/app/model"
	"meetscribe/internal/app/quota"
	"meetscribe/internal/app/repository"
)

func newTenantFixture(t *testing.T, tenant model.Tenant) (TenantService, *repository.MemoryTenantStore) {
	store := repository.NewMemoryTenantStore()
	store.PutTenant(tenant)
	guard := quota.NewGuard(store, zap.NewNop())
	return NewTenantService(guard, store), store
}

func TestCheckQuota_DryRunDoesNotCharge(t *testing.T) {
	svc, store := newTenantFixture(t, model.Tenant{
		Name:       "acme",
		QuotaHours: 10,
		UsageHours: 2,
		ValidTo:    time.Now().AddDate(0, 1, 0),
	})

	resp, err := svc.CheckQuota(context.Background(), &dto.QuotaCheckRequest{
		Tenant:        "acme",
		RequiredHours: 1,
	})
	require.NoError(t, err)
	assert.True(t, resp.Approved)
	assert.False(t, resp.Reserved)

	tenant, err := store.GetTenant(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, 2.0, tenant.UsageHours)
}

func TestCheckQuota_ReserveCharges(t *testing.T) {
	svc, store := newTenantFixture(t, model.Tenant{
		Name:       "acme",
		QuotaHours: 10,
		UsageHours: 2,
		ValidTo:    time.Now().AddDate(0, 1, 0),
	})

	resp, err := svc.CheckQuota(context.Background(), &dto.QuotaCheckRequest{
		Tenant:        "acme",
		RequiredHours: 1.5,
		Reserve:       true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Approved)
	assert.True(t, resp.Reserved)
	assert.Equal(t, 3.5, resp.UsageHours)

	tenant, err := store.GetTenant(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, 3.5, tenant.UsageHours)
}

func TestCheckQuota_RejectionIsADecision(t *testing.T) {
	svc, store := newTenantFixture(t, model.Tenant{
		Name:       "acme",
		QuotaHours: 10,
		UsageHours: 9.9,
		ValidTo:    time.Now().AddDate(0, 1, 0),
	})

	resp, err := svc.CheckQuota(context.Background(), &dto.QuotaCheckRequest{
		Tenant:        "acme",
		RequiredHours: 1,
		Reserve:       true,
	})
	require.NoError(t, err)
	assert.False(t, resp.Approved)
	assert.Contains(t, resp.Reason, "quota exceeded")

	tenant, err := store.GetTenant(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, 9.9, tenant.UsageHours)
}

func TestGetTenant(t *testing.T) {
	svc, _ := newTenantFixture(t, model.Tenant{
		Name:       "acme",
		QuotaHours: 10,
		UsageHours: 2,
		ValidTo:    time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC),
	})

	resp, err := svc.GetTenant(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", resp.Name)
	assert.Equal(t, 10.0, resp.QuotaHours)
	assert.Equal(t, "2027-01-31", resp.ValidTo)

	_, err = svc.GetTenant(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCheckQuota_UnknownTenantRejected(t *testing.T) {
	svc, _ := newTenantFixture(t, model.Tenant{
		Name:       "acme",
		QuotaHours: 10,
		ValidTo:    time.Now().AddDate(0, 1, 0),
	})

	resp, err := svc.CheckQuota(context.Background(), &dto.QuotaCheckRequest{
		Tenant:        "ghost",
		RequiredHours: 1,
	})
	require.NoError(t, err)
	assert.False(t, resp.Approved)
	assert.Contains(t, resp.Reason, "not registered")
}
