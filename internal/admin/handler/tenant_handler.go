package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/payflow-importer/internal/admin/service"
	"github.com/payflow-importer/internal/domain/tenant"
)

// TenantHandler serves tenant configuration endpoints
type TenantHandler struct {
	tenants  service.TenantService
	journals service.JournalService
	logger   *slog.Logger
}

// NewTenantHandler creates a tenant handler
func NewTenantHandler(logger *slog.Logger, tenants service.TenantService, journals service.JournalService) *TenantHandler {
	return &TenantHandler{
		tenants:  tenants,
		journals: journals,
		logger:   logger,
	}
}

// List handles GET /api/v1/tenants
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenants.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list tenants", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, NewTenantResponses(tenants))
}

// GetByID handles GET /api/v1/tenants/:id
func (h *TenantHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	t, err := h.tenants.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound{}) {
			RespondNotFound(c, "Tenant not found")
			return
		}
		h.logger.Error("Failed to get tenant", "id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, NewTenantResponse(t))
}

// Upsert handles PUT /api/v1/tenants/:id
func (h *TenantHandler) Upsert(c *gin.Context) {
	id := c.Param("id")

	var req UpsertTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	t := &tenant.Tenant{
		ID:                 id,
		Name:               req.Name,
		TransferDay:        req.TransferDay,
		OdooHost:           req.OdooHost,
		OdooDatabase:       req.OdooDatabase,
		OdooLogin:          req.OdooLogin,
		OdooPassword:       req.OdooPassword,
		PayrollJournalCode: req.PayrollJournalCode,
		OdooCompanyID:      req.OdooCompanyID,
	}

	if err := h.tenants.Save(c.Request.Context(), t); err != nil {
		switch {
		case errors.Is(err, tenant.ErrEmptyID),
			errors.Is(err, tenant.ErrEmptyName),
			errors.Is(err, tenant.ErrInvalidTransferDay):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to save tenant", "id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, NewTenantResponse(t))
}

// ListJournals handles GET /api/v1/tenants/:id/journals
func (h *TenantHandler) ListJournals(c *gin.Context) {
	id := c.Param("id")

	journals, err := h.journals.ListJournals(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound{}) {
			RespondNotFound(c, "Tenant not found")
			return
		}
		h.logger.Error("Failed to list tenant journals", "id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, journals)
}
