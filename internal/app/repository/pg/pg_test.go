package pg

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "meetscribe/internal/app/errors"
	"meetscribe/internal/app/model"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStoreWithDB(db), mock
}

func tenantRows(usage float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"tenant", "quota", "usage", "valid_to"}).
		AddRow("acme", 10.0, usage, time.Now().AddDate(1, 0, 0))
}

func TestReserveCommitsRoundedUsage(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT tenant, quota, usage, valid_to FROM tenants WHERE tenant = \\$1 FOR UPDATE").
		WithArgs("acme").
		WillReturnRows(tenantRows(9.5))
	mock.ExpectExec("UPDATE tenants SET usage = \\$1 WHERE tenant = \\$2").
		WithArgs(9.9, "acme").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tenant, err := store.Reserve(context.Background(), "acme", 0.4)

	require.NoError(t, err)
	assert.Equal(t, 9.9, tenant.UsageHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRejectsOverQuota(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("acme").
		WillReturnRows(tenantRows(9.5))
	mock.ExpectRollback()

	_, err := store.Reserve(context.Background(), "acme", 0.6)

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindQuotaExceeded))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveUnknownTenant(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"tenant", "quota", "usage", "valid_to"}))
	mock.ExpectRollback()

	_, err := store.Reserve(context.Background(), "nobody", 0.1)

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindQuotaExceeded))
}

func TestReserveExpiredTenant(t *testing.T) {
	store, mock := newMockStore(t)

	expired := sqlmock.NewRows([]string{"tenant", "quota", "usage", "valid_to"}).
		AddRow("acme", 10.0, 0.0, time.Now().AddDate(0, 0, -2))

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("acme").WillReturnRows(expired)
	mock.ExpectRollback()

	_, err := store.Reserve(context.Background(), "acme", 0.1)

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindQuotaExceeded))
}

func TestGetTenantMissingReturnsNil(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT tenant, quota, usage, valid_to FROM tenants WHERE tenant = \\$1").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"tenant", "quota", "usage", "valid_to"}))

	tenant, err := store.GetTenant(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, tenant)
}

func TestSearchReturnsRankedCandidates(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"person_id", "name", "email", "department", "position", "similarity"}).
		AddRow(1, "Alice Wong", "alice@acme.io", "Legal", "Counsel", 0.91).
		AddRow(2, "Bob Chan", "bob@acme.io", "Sales", "AE", 0.64)

	mock.ExpectQuery("1 - \\(embedding <=> \\$1\\)").
		WithArgs("[1,0]", "acme", 3).
		WillReturnRows(rows)

	candidates, err := store.Search(context.Background(), "acme", []float32{1, 0}, 3)

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Alice Wong", candidates[0].Name)
	assert.InDelta(t, 0.91, candidates[0].Similarity, 1e-9)
}

func TestEnrollUpserts(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO voiceprints").
		WithArgs("acme", "Alice Wong", "alice@acme.io", "Legal", "Counsel", "[0.5]").
		WillReturnRows(sqlmock.NewRows([]string{"person_id"}).AddRow(7))

	record := &model.VoiceprintRecord{
		Tenant: "acme", Name: "Alice Wong", Email: "alice@acme.io",
		Department: "Legal", Position: "Counsel", Embedding: []float32{0.5},
	}
	require.NoError(t, store.Enroll(context.Background(), record))
	assert.Equal(t, 7, record.PersonID)
}

func TestVectorLiteral(t *testing.T) {
	assert.Equal(t, "[1,0,0.5]", vectorLiteral([]float32{1, 0, 0.5}))
	assert.Equal(t, "[]", vectorLiteral(nil))
}
