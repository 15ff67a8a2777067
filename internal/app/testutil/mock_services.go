package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"meetscribe/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	TranscriptionService *MockTranscriptionService
	TenantService        *MockTenantService
	VoiceprintService    *MockVoiceprintService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		TranscriptionService: NewMockTranscriptionService(t),
		TenantService:        NewMockTenantService(t),
		VoiceprintService:    NewMockVoiceprintService(t),
	}
}

// MockTranscriptionService is a mock implementation of TranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

func NewMockTranscriptionService(t *testing.T) *MockTranscriptionService {
	m := &MockTranscriptionService{}
	m.Test(t)
	return m
}

func (m *MockTranscriptionService) Poll(ctx context.Context, req *dto.PollRequest) (*dto.PollResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PollResponse), args.Error(1)
}

// MockTenantService is a mock implementation of TenantService
type MockTenantService struct {
	mock.Mock
}

func NewMockTenantService(t *testing.T) *MockTenantService {
	m := &MockTenantService{}
	m.Test(t)
	return m
}

func (m *MockTenantService) CheckQuota(ctx context.Context, req *dto.QuotaCheckRequest) (*dto.QuotaCheckResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuotaCheckResponse), args.Error(1)
}

func (m *MockTenantService) GetTenant(ctx context.Context, name string) (*dto.TenantResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TenantResponse), args.Error(1)
}

// MockVoiceprintService is a mock implementation of VoiceprintService
type MockVoiceprintService struct {
	mock.Mock
}

func NewMockVoiceprintService(t *testing.T) *MockVoiceprintService {
	m := &MockVoiceprintService{}
	m.Test(t)
	return m
}

func (m *MockVoiceprintService) Enroll(ctx context.Context, req *dto.EnrollVoiceprintRequest) (*dto.EnrollVoiceprintResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EnrollVoiceprintResponse), args.Error(1)
}

func (m *MockVoiceprintService) Search(ctx context.Context, req *dto.SearchVoiceprintRequest) (*dto.SearchVoiceprintResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchVoiceprintResponse), args.Error(1)
}
