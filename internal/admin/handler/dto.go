package handler

import (
	"time"

	"github.com/payflow-importer/internal/domain/tenant"
)

// UpsertTenantRequest is the payload for creating or replacing a tenant.
// A blank odoo_password keeps the stored API key.
type UpsertTenantRequest struct {
	Name               string `json:"name" binding:"required"`
	TransferDay        int    `json:"transfer_day" binding:"required,min=1,max=31"`
	OdooHost           string `json:"odoo_host"`
	OdooDatabase       string `json:"odoo_database"`
	OdooLogin          string `json:"odoo_login"`
	OdooPassword       string `json:"odoo_password"`
	PayrollJournalCode string `json:"payroll_journal_code"`
	OdooCompanyID      int64  `json:"odoo_company_id"`
}

// TriggerImportRequest is the payload for a manual import. Period defaults
// to the previous calendar month when omitted.
type TriggerImportRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
	Period   string `json:"period"` // "YYYY-MM"
}

// TenantResponse is the outward tenant representation. The API key never
// leaves the service; only its presence is reported.
type TenantResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	TransferDay        int       `json:"transfer_day"`
	OdooHost           string    `json:"odoo_host"`
	OdooDatabase       string    `json:"odoo_database"`
	OdooLogin          string    `json:"odoo_login"`
	OdooPasswordSet    bool      `json:"odoo_password_set"`
	PayrollJournalCode string    `json:"payroll_journal_code"`
	OdooCompanyID      int64     `json:"odoo_company_id"`
	MissingFields      []string  `json:"missing_fields,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewTenantResponse maps a domain tenant to its API representation
func NewTenantResponse(t *tenant.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:                 t.ID,
		Name:               t.Name,
		TransferDay:        t.TransferDay,
		OdooHost:           t.OdooHost,
		OdooDatabase:       t.OdooDatabase,
		OdooLogin:          t.OdooLogin,
		OdooPasswordSet:    t.OdooPassword != "",
		PayrollJournalCode: t.PayrollJournalCode,
		OdooCompanyID:      t.OdooCompanyID,
		MissingFields:      t.MissingFields(),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// NewTenantResponses maps a tenant list to its API representation
func NewTenantResponses(tenants []*tenant.Tenant) []*TenantResponse {
	responses := make([]*TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		responses = append(responses, NewTenantResponse(t))
	}
	return responses
}
