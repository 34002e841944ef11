package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func configuredTenant() *Tenant {
	return &Tenant{
		ID:                 "12345",
		Name:               "Acme SARL",
		TransferDay:        15,
		OdooHost:           "acme.odoo.com",
		OdooDatabase:       "acme-prod",
		OdooLogin:          "importer@acme.fr",
		OdooPassword:       "api-key",
		PayrollJournalCode: "PAIE",
		OdooCompanyID:      1,
	}
}

func TestTenant_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, configuredTenant().Validate())
	})

	t.Run("empty id", func(t *testing.T) {
		tn := configuredTenant()
		tn.ID = ""
		assert.ErrorIs(t, tn.Validate(), ErrEmptyID)
	})

	t.Run("empty name", func(t *testing.T) {
		tn := configuredTenant()
		tn.Name = ""
		assert.ErrorIs(t, tn.Validate(), ErrEmptyName)
	})

	t.Run("transfer day out of range", func(t *testing.T) {
		tn := configuredTenant()
		tn.TransferDay = 0
		assert.ErrorIs(t, tn.Validate(), ErrInvalidTransferDay)

		tn.TransferDay = 32
		assert.ErrorIs(t, tn.Validate(), ErrInvalidTransferDay)
	})
}

func TestTenant_MissingFields(t *testing.T) {
	t.Run("fully configured", func(t *testing.T) {
		assert.Empty(t, configuredTenant().MissingFields())
	})

	t.Run("partially configured", func(t *testing.T) {
		tn := configuredTenant()
		tn.OdooPassword = ""
		tn.OdooCompanyID = 0
		assert.Equal(t, []string{"odoo_password", "odoo_company_id"}, tn.MissingFields())
	})

	t.Run("blank tenant", func(t *testing.T) {
		tn := &Tenant{ID: "12345", Name: "Acme SARL", TransferDay: 15}
		assert.Len(t, tn.MissingFields(), 6)
	})
}

func TestErrTenantNotFound_Is(t *testing.T) {
	err := ErrTenantNotFound{ID: "12345"}

	assert.ErrorIs(t, err, ErrTenantNotFound{})
	assert.ErrorIs(t, err, ErrTenantNotFound{ID: "12345"})
	assert.NotErrorIs(t, err, ErrTenantNotFound{ID: "99999"})
}
