package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/payflow-importer/internal/domain/tenant"
	"github.com/payflow-importer/internal/odoo"
)

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) List(ctx context.Context) ([]*tenant.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenant.Tenant), args.Error(1)
}

func (m *MockTenantService) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantService) Save(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) ListJournals(ctx context.Context, tenantID string) ([]odoo.Journal, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]odoo.Journal), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func apiTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:                 "12345",
		Name:               "Acme SARL",
		TransferDay:        15,
		OdooHost:           "acme.odoo.com",
		OdooDatabase:       "acme-prod",
		OdooLogin:          "importer@acme.fr",
		OdooPassword:       "api-key",
		PayrollJournalCode: "PAIE",
		OdooCompanyID:      3,
	}
}

func decodeTenant(t *testing.T, body []byte) TenantResponse {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Data)

	dataBytes, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var tr TenantResponse
	require.NoError(t, json.Unmarshal(dataBytes, &tr))
	return tr
}

func TestTenantHandler_GetByID(t *testing.T) {
	t.Run("success hides the password", func(t *testing.T) {
		tenants := new(MockTenantService)
		tenants.On("Get", mock.Anything, "12345").Return(apiTenant(), nil).Once()
		handler := NewTenantHandler(testLogger(), tenants, new(MockJournalService))

		router := setupTestRouter()
		router.GET("/tenants/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/tenants/12345", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		tr := decodeTenant(t, rr.Body.Bytes())
		assert.Equal(t, "12345", tr.ID)
		assert.True(t, tr.OdooPasswordSet)
		assert.NotContains(t, rr.Body.String(), "api-key")
	})

	t.Run("not found", func(t *testing.T) {
		tenants := new(MockTenantService)
		tenants.On("Get", mock.Anything, "99999").Return(nil, tenant.ErrTenantNotFound{ID: "99999"}).Once()
		handler := NewTenantHandler(testLogger(), tenants, new(MockJournalService))

		router := setupTestRouter()
		router.GET("/tenants/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/tenants/99999", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTenantHandler_Upsert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tenants := new(MockTenantService)
		tenants.On("Save", mock.Anything, mock.AnythingOfType("*tenant.Tenant")).Return(nil).Once()
		handler := NewTenantHandler(testLogger(), tenants, new(MockJournalService))

		router := setupTestRouter()
		router.PUT("/tenants/:id", handler.Upsert)

		body, _ := json.Marshal(UpsertTenantRequest{
			Name:               "Acme SARL",
			TransferDay:        15,
			OdooHost:           "acme.odoo.com",
			OdooDatabase:       "acme-prod",
			OdooLogin:          "importer@acme.fr",
			OdooPassword:       "api-key",
			PayrollJournalCode: "PAIE",
			OdooCompanyID:      3,
		})
		req, _ := http.NewRequest(http.MethodPut, "/tenants/12345", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		tr := decodeTenant(t, rr.Body.Bytes())
		assert.Equal(t, "12345", tr.ID)
		tenants.AssertExpectations(t)
	})

	t.Run("binding failure", func(t *testing.T) {
		tenants := new(MockTenantService)
		handler := NewTenantHandler(testLogger(), tenants, new(MockJournalService))

		router := setupTestRouter()
		router.PUT("/tenants/:id", handler.Upsert)

		req, _ := http.NewRequest(http.MethodPut, "/tenants/12345", bytes.NewBufferString(`{"transfer_day": 40}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		tenants.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("domain validation failure", func(t *testing.T) {
		tenants := new(MockTenantService)
		tenants.On("Save", mock.Anything, mock.Anything).Return(tenant.ErrInvalidTransferDay).Once()
		handler := NewTenantHandler(testLogger(), tenants, new(MockJournalService))

		router := setupTestRouter()
		router.PUT("/tenants/:id", handler.Upsert)

		body, _ := json.Marshal(UpsertTenantRequest{Name: "Acme SARL", TransferDay: 31})
		req, _ := http.NewRequest(http.MethodPut, "/tenants/12345", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTenantHandler_ListJournals(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		journals := new(MockJournalService)
		journals.On("ListJournals", mock.Anything, "12345").
			Return([]odoo.Journal{{Code: "PAIE", Name: "Payroll"}}, nil).Once()
		handler := NewTenantHandler(testLogger(), new(MockTenantService), journals)

		router := setupTestRouter()
		router.GET("/tenants/:id/journals", handler.ListJournals)

		req, _ := http.NewRequest(http.MethodGet, "/tenants/12345/journals", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "PAIE")
	})

	t.Run("erp failure", func(t *testing.T) {
		journals := new(MockJournalService)
		journals.On("ListJournals", mock.Anything, "12345").
			Return(nil, errors.New("connection refused")).Once()
		handler := NewTenantHandler(testLogger(), new(MockTenantService), journals)

		router := setupTestRouter()
		router.GET("/tenants/:id/journals", handler.ListJournals)

		req, _ := http.NewRequest(http.MethodGet, "/tenants/12345/journals", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
