package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/payflow-importer/internal/domain/payroll"
	"github.com/payflow-importer/internal/domain/runlog"
	"github.com/payflow-importer/internal/domain/tenant"
)

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Trigger(ctx context.Context, tenantID string, period payroll.Period) (*runlog.Record, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runlog.Record), args.Error(1)
}

func TestImportHandler_Trigger(t *testing.T) {
	t.Run("success with explicit period", func(t *testing.T) {
		record := runlog.NewRecord("12345", "Acme SARL", "2025-09",
			runlog.StatusSuccess.Manual(), "draft entry created: PAIE/2025/10/0007", time.Now())

		imports := new(MockImportService)
		imports.On("Trigger", mock.Anything, "12345", payroll.Period{Year: 2025, Month: time.September}).
			Return(record, nil).Once()
		handler := NewImportHandler(testLogger(), imports)

		router := setupTestRouter()
		router.POST("/imports", handler.Trigger)

		body, _ := json.Marshal(TriggerImportRequest{TenantID: "12345", Period: "2025-09"})
		req, _ := http.NewRequest(http.MethodPost, "/imports", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "MANUAL_SUCCESS")
		imports.AssertExpectations(t)
	})

	t.Run("malformed period", func(t *testing.T) {
		imports := new(MockImportService)
		handler := NewImportHandler(testLogger(), imports)

		router := setupTestRouter()
		router.POST("/imports", handler.Trigger)

		body, _ := json.Marshal(TriggerImportRequest{TenantID: "12345", Period: "October"})
		req, _ := http.NewRequest(http.MethodPost, "/imports", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		imports.AssertNotCalled(t, "Trigger", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		imports := new(MockImportService)
		imports.On("Trigger", mock.Anything, "99999", payroll.Period{}).
			Return(nil, tenant.ErrTenantNotFound{ID: "99999"}).Once()
		handler := NewImportHandler(testLogger(), imports)

		router := setupTestRouter()
		router.POST("/imports", handler.Trigger)

		body, _ := json.Marshal(TriggerImportRequest{TenantID: "99999"})
		req, _ := http.NewRequest(http.MethodPost, "/imports", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
