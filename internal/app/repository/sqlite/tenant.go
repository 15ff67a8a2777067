package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"meetscribe/internal/app/model"
	"meetscribe/internal/app/quota"
)

func (s *SqliteTenantStore) GetTenant(ctx context.Context, name string) (*model.Tenant, error) {
	query := `SELECT tenant, quota, usage, valid_to FROM tenants WHERE tenant = ?`

	var t model.Tenant
	err := s.db.QueryRowContext(ctx, query, name).Scan(&t.Name, &t.QuotaHours, &t.UsageHours, &t.ValidTo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query tenant: %w", err)
	}
	return &t, nil
}

// Reserve applies the quota rules inside an immediate transaction, so
// the read and the usage update are one critical section.
func (s *SqliteTenantStore) Reserve(ctx context.Context, name string, requiredHours float64) (*model.Tenant, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reservation: %w", err)
	}
	defer tx.Rollback()

	var t model.Tenant
	tenant := &t
	err = tx.QueryRowContext(ctx, `SELECT tenant, quota, usage, valid_to FROM tenants WHERE tenant = ?`, name).
		Scan(&t.Name, &t.QuotaHours, &t.UsageHours, &t.ValidTo)
	if errors.Is(err, sql.ErrNoRows) {
		tenant = nil
	} else if err != nil {
		return nil, fmt.Errorf("query tenant: %w", err)
	}

	newUsage, err := quota.Evaluate(tenant, requiredHours, time.Now())
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE tenants SET usage = ? WHERE tenant = ?`, newUsage, name); err != nil {
		return nil, fmt.Errorf("update usage: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reservation: %w", err)
	}

	tenant.UsageHours = newUsage
	return tenant, nil
}

// UpsertTenant creates or updates a tenant record, used by the CLI.
func (s *SqliteTenantStore) UpsertTenant(ctx context.Context, tenant model.Tenant) error {
	query := `
		INSERT INTO tenants (tenant, quota, usage, valid_to)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (tenant) DO UPDATE SET quota = excluded.quota, usage = excluded.usage, valid_to = excluded.valid_to`
	if _, err := s.db.ExecContext(ctx, query, tenant.Name, tenant.QuotaHours, tenant.UsageHours, tenant.ValidTo); err != nil {
		return fmt.Errorf("upsert tenant: %w", err)
	}
	return nil
}
