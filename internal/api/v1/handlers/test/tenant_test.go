package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"meetscribe/internal/api/errors"
	"meetscribe/internal/api/v1/dto"
	"meetscribe/internal/api/v1/handlers"
	"meetscribe/internal/app/testutil"
)

func TestTenantHandler_CheckQuota(t *testing.T) {
	tests := []struct {
		name           string
		request        dto.QuotaCheckRequest
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name: "approved reservation",
			request: dto.QuotaCheckRequest{
				Tenant:        "acme",
				RequiredHours: 0.5,
				Reserve:       true,
			},
			setupMocks: func(ms *testutil.MockServices) {
				ms.TenantService.On("CheckQuota", mock.Anything, mock.Anything).
					Return(&dto.QuotaCheckResponse{
						Approved:   true,
						Reserved:   true,
						QuotaHours: 10,
						UsageHours: 2.5,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["approved"])
				assert.Equal(t, true, body["reserved"])
				assert.Equal(t, 2.5, body["usage_hours"])
			},
		},
		{
			name: "rejection is a 200 with approved false",
			request: dto.QuotaCheckRequest{
				Tenant:        "acme",
				RequiredHours: 5,
			},
			setupMocks: func(ms *testutil.MockServices) {
				ms.TenantService.On("CheckQuota", mock.Anything, mock.Anything).
					Return(&dto.QuotaCheckResponse{
						Approved: false,
						Reason:   "quota exceeded: 9.90 of 10.00 hours used, 5.00 requested",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, false, body["approved"])
				assert.Contains(t, body["reason"], "quota exceeded")
			},
		},
		{
			name: "validation error - negative hours",
			request: dto.QuotaCheckRequest{
				Tenant:        "acme",
				RequiredHours: -1,
			},
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "validation", body["kind"])
			},
		},
		{
			name: "store failure surfaces as internal error",
			request: dto.QuotaCheckRequest{
				Tenant:        "acme",
				RequiredHours: 0.5,
			},
			setupMocks: func(ms *testutil.MockServices) {
				ms.TenantService.On("CheckQuota", mock.Anything, mock.Anything).
					Return(nil, errors.NewInternalError("Internal server error"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "internal", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewTenantHandler(mockServices.TenantService)
			router.POST("/api/v1/tenants/quota/check", handler.CheckQuota)

			body, err := json.Marshal(tt.request)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/v1/tenants/quota/check", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err = json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
		})
	}
}

func TestTenantHandler_Get(t *testing.T) {
	router, mockServices := setupTestRouter(t)

	mockServices.TenantService.On("GetTenant", mock.Anything, "acme").
		Return(&dto.TenantResponse{
			Name:       "acme",
			QuotaHours: 10,
			UsageHours: 2.5,
			ValidTo:    "2027-01-31",
		}, nil)
	mockServices.TenantService.On("GetTenant", mock.Anything, "ghost").
		Return(nil, errors.NewNotFoundError("tenant ghost"))

	handler := handlers.NewTenantHandler(mockServices.TenantService)
	router.GET("/api/v1/tenants/:name", handler.Get)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/tenants/acme", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "acme", body["name"])
	assert.Equal(t, 2.5, body["usage_hours"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/tenants/ghost", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
