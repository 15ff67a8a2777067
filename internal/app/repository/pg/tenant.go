package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"meetscribe/internal/app/model"
	"meetscribe/internal/app/quota"
)

func (s *PostgresStore) GetTenant(ctx context.Context, name string) (*model.Tenant, error) {
	query := `SELECT tenant, quota, usage, valid_to FROM tenants WHERE tenant = $1`
	tenant, err := scanTenant(s.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query tenant: %w", err)
	}
	return tenant, nil
}

// Reserve locks the tenant row, applies the quota rules and commits the
// new usage in one transaction. Concurrent reservations against the
// same tenant queue on the row lock.
func (s *PostgresStore) Reserve(ctx context.Context, name string, requiredHours float64) (*model.Tenant, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reservation: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT tenant, quota, usage, valid_to FROM tenants WHERE tenant = $1 FOR UPDATE`
	tenant, err := scanTenant(tx.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		tenant = nil
	} else if err != nil {
		return nil, fmt.Errorf("lock tenant row: %w", err)
	}

	newUsage, err := quota.Evaluate(tenant, requiredHours, time.Now())
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE tenants SET usage = $1 WHERE tenant = $2`, newUsage, name); err != nil {
		return nil, fmt.Errorf("update usage: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reservation: %w", err)
	}

	tenant.UsageHours = newUsage
	return tenant, nil
}

// UpsertTenant creates or updates a tenant record, used by the CLI.
func (s *PostgresStore) UpsertTenant(ctx context.Context, tenant model.Tenant) error {
	query := `
		INSERT INTO tenants (tenant, quota, usage, valid_to)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant) DO UPDATE SET quota = $2, usage = $3, valid_to = $4`
	_, err := s.db.ExecContext(ctx, query, tenant.Name, tenant.QuotaHours, tenant.UsageHours, tenant.ValidTo)
	if err != nil {
		return fmt.Errorf("upsert tenant: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTenant(row rowScanner) (*model.Tenant, error) {
	var t model.Tenant
	if err := row.Scan(&t.Name, &t.QuotaHours, &t.UsageHours, &t.ValidTo); err != nil {
		return nil, err
	}
	return &t, nil
}
