package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "meetscribe/internal/app/errors"
	"meetscribe/internal/app/model"
)

func newTestStore(t *testing.T) *SqliteTenantStore {
	t.Helper()
	store, err := NewSqliteTenantStore(filepath.Join(t.TempDir(), "tenants.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestReserveWithinQuota(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertTenant(ctx, model.Tenant{
		Name: "acme", QuotaHours: 10, UsageHours: 9.5,
		ValidTo: time.Now().AddDate(1, 0, 0),
	}))

	tenant, err := store.Reserve(ctx, "acme", 0.4)
	require.NoError(t, err)
	assert.Equal(t, 9.9, tenant.UsageHours)
}

func TestReserveOverQuotaLeavesUsageUnchanged(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertTenant(ctx, model.Tenant{
		Name: "acme", QuotaHours: 10, UsageHours: 9.5,
		ValidTo: time.Now().AddDate(1, 0, 0),
	}))

	_, err := store.Reserve(ctx, "acme", 0.6)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindQuotaExceeded))

	tenant, err := store.GetTenant(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 9.5, tenant.UsageHours)
}

func TestReserveUnknownTenant(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Reserve(context.Background(), "nobody", 0.1)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindQuotaExceeded))
}

func TestGetTenantMissing(t *testing.T) {
	store := newTestStore(t)

	tenant, err := store.GetTenant(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, tenant)
}

func TestUpsertReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	validTo := time.Now().AddDate(1, 0, 0)

	require.NoError(t, store.UpsertTenant(ctx, model.Tenant{Name: "acme", QuotaHours: 5, ValidTo: validTo}))
	require.NoError(t, store.UpsertTenant(ctx, model.Tenant{Name: "acme", QuotaHours: 20, ValidTo: validTo}))

	tenant, err := store.GetTenant(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 20.0, tenant.QuotaHours)
}
