// Package repository provides tenant persistence backends. The memory
// store backs tests and single-process deployments; pg and sqlite hold
// the durable implementations.
package repository

import (
	"context"
	"sync"
	"time"

	"meetscribe/internal/app/model"
	"meetscribe/internal/app/quota"
)

// MemoryTenantStore keeps tenants in process memory behind one mutex,
// so reservations serialize the same way the SQL stores do with locks.
type MemoryTenantStore struct {
	mu      sync.Mutex
	tenants map[string]*model.Tenant

	// Now is swappable for expiry tests.
	Now func() time.Time
}

func NewMemoryTenantStore() *MemoryTenantStore {
	return &MemoryTenantStore{
		tenants: make(map[string]*model.Tenant),
		Now:     time.Now,
	}
}

// PutTenant adds or replaces a tenant record.
func (s *MemoryTenantStore) PutTenant(tenant model.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := tenant
	s.tenants[tenant.Name] = &copied
}

func (s *MemoryTenantStore) GetTenant(ctx context.Context, name string) (*model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant, ok := s.tenants[name]
	if !ok {
		return nil, nil
	}
	copied := *tenant
	return &copied, nil
}

func (s *MemoryTenantStore) Reserve(ctx context.Context, name string, requiredHours float64) (*model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant := s.tenants[name]
	newUsage, err := quota.Evaluate(tenant, requiredHours, s.Now())
	if err != nil {
		return nil, err
	}

	tenant.UsageHours = newUsage
	copied := *tenant
	return &copied, nil
}

func (s *MemoryTenantStore) Close() error {
	return nil
}
