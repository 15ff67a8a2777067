// Package quota enforces per-tenant usage limits. Reservation is
// atomic: a job is either fully charged or not charged at all.
package quota

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	apperrors "meetscribe/internal/app/errors"
	"meetscribe/internal/app/model"
)

// TenantStore is the persistence the guard reserves against.
// Implementations must make Reserve atomic with respect to concurrent
// callers: two reservations may never both observe the same usage.
type TenantStore interface {
	GetTenant(ctx context.Context, name string) (*model.Tenant, error)

	// Reserve applies Evaluate under the store's own exclusion and
	// persists the new usage. It returns the tenant state after the
	// reservation, or the evaluation error with state unchanged.
	Reserve(ctx context.Context, name string, requiredHours float64) (*model.Tenant, error)

	Close() error
}

// RoundHours rounds to two decimals, the granularity usage is billed at.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// Evaluate applies the quota rules to a proposed reservation and
// returns the tenant's new usage. Stores call this inside their
// transaction or lock so the check and the update are one step.
func Evaluate(tenant *model.Tenant, requiredHours float64, now time.Time) (float64, error) {
	if tenant == nil {
		return 0, apperrors.QuotaExceeded("tenant is not registered")
	}
	if tenant.Expired(now) {
		return 0, apperrors.QuotaExceeded("tenant subscription has expired")
	}

	newUsage := RoundHours(tenant.UsageHours + requiredHours)
	if newUsage > tenant.QuotaHours {
		return 0, apperrors.Newf(apperrors.KindQuotaExceeded,
			"quota exceeded: %.2f of %.2f hours used, %.2f requested",
			tenant.UsageHours, tenant.QuotaHours, requiredHours)
	}
	return newUsage, nil
}

// Guard fronts the tenant store for the pipeline.
type Guard struct {
	store  TenantStore
	logger *zap.Logger
}

func NewGuard(store TenantStore, logger *zap.Logger) *Guard {
	return &Guard{store: store, logger: logger}
}

// CheckAndReserve charges durationSec of audio against the tenant's
// quota. It runs before any identity work so a rejected job costs
// nothing.
func (g *Guard) CheckAndReserve(ctx context.Context, tenant string, durationSec float64) (*model.Tenant, error) {
	hours := durationSec / 3600

	reserved, err := g.store.Reserve(ctx, tenant, hours)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindQuotaExceeded) {
			g.logger.Info("quota reservation rejected",
				zap.String("tenant", tenant),
				zap.Float64("requested_hours", hours),
				zap.Error(err))
		}
		return nil, err
	}

	g.logger.Debug("quota reserved",
		zap.String("tenant", tenant),
		zap.Float64("requested_hours", hours),
		zap.Float64("usage_hours", reserved.UsageHours),
		zap.Float64("quota_hours", reserved.QuotaHours))
	return reserved, nil
}

// Check reports the current state without reserving, for the quota
// inspection endpoint.
func (g *Guard) Check(ctx context.Context, tenant string, durationSec float64) (*model.Tenant, error) {
	state, err := g.store.GetTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}
	if _, err := Evaluate(state, durationSec/3600, time.Now()); err != nil {
		return state, err
	}
	return state, nil
}
