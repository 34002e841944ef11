package tenant

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrEmptyID            = errors.New("tenant id (Silae dossier number) cannot be empty")
	ErrEmptyName          = errors.New("tenant name cannot be empty")
	ErrInvalidTransferDay = errors.New("transfer day must be between 1 and 31")
)

// Tenant is the configuration record for one client: its Silae dossier and
// the Odoo instance its payroll entries are imported into. The ID doubles as
// the Silae dossier number.
type Tenant struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	TransferDay        int       `json:"transfer_day"` // Day of month the import runs (1-31)
	OdooHost           string    `json:"odoo_host"`
	OdooDatabase       string    `json:"odoo_database"`
	OdooLogin          string    `json:"odoo_login"`
	OdooPassword       string    `json:"-"` // API key; never serialized outward
	PayrollJournalCode string    `json:"payroll_journal_code"`
	OdooCompanyID      int64     `json:"odoo_company_id"` // Company partition in a multi-company instance
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Validate checks the identity fields maintained by administrators.
// ERP connection completeness is a separate concern (MissingFields) because
// a tenant may legitimately be saved before its Odoo setup is finished.
func (t *Tenant) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if t.Name == "" {
		return ErrEmptyName
	}
	if t.TransferDay < 1 || t.TransferDay > 31 {
		return ErrInvalidTransferDay
	}
	return nil
}

// MissingFields lists the ERP fields still required before an import can be
// attempted. An empty result means the tenant is importable.
func (t *Tenant) MissingFields() []string {
	var missing []string
	if t.OdooHost == "" {
		missing = append(missing, "odoo_host")
	}
	if t.OdooDatabase == "" {
		missing = append(missing, "odoo_database")
	}
	if t.OdooLogin == "" {
		missing = append(missing, "odoo_login")
	}
	if t.OdooPassword == "" {
		missing = append(missing, "odoo_password")
	}
	if t.PayrollJournalCode == "" {
		missing = append(missing, "payroll_journal_code")
	}
	if t.OdooCompanyID == 0 {
		missing = append(missing, "odoo_company_id")
	}
	return missing
}
