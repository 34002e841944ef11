package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/payflow-importer/internal/admin/service"
	"github.com/payflow-importer/internal/domain/payroll"
	"github.com/payflow-importer/internal/domain/tenant"
)

// ImportHandler serves manual import requests
type ImportHandler struct {
	imports service.ImportService
	logger  *slog.Logger
}

// NewImportHandler creates a manual import handler
func NewImportHandler(logger *slog.Logger, imports service.ImportService) *ImportHandler {
	return &ImportHandler{
		imports: imports,
		logger:  logger,
	}
}

// Trigger handles POST /api/v1/imports. The import runs synchronously and
// the resulting run log record is returned to the caller.
func (h *ImportHandler) Trigger(c *gin.Context) {
	var req TriggerImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	var period payroll.Period
	if req.Period != "" {
		parsed, err := payroll.ParsePeriod(req.Period)
		if err != nil {
			RespondBadRequest(c, "period must be in YYYY-MM form")
			return
		}
		period = parsed
	}

	record, err := h.imports.Trigger(c.Request.Context(), req.TenantID, period)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound{}) {
			RespondNotFound(c, "Tenant not found")
			return
		}
		h.logger.Error("Manual import failed", "tenant_id", req.TenantID, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, record)
}
