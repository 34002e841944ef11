// Package service contains the admin API business logic: tenant
// configuration management, run history, journal browsing and manual
// imports.
package service

import (
	"context"

	"github.com/payflow-importer/internal/domain/payroll"
	"github.com/payflow-importer/internal/domain/runlog"
	"github.com/payflow-importer/internal/domain/tenant"
	"github.com/payflow-importer/internal/odoo"
)

// TenantService manages tenant configuration records
type TenantService interface {
	List(ctx context.Context) ([]*tenant.Tenant, error)
	Get(ctx context.Context, id string) (*tenant.Tenant, error)

	// Save upserts the tenant. A blank password keeps the stored one, so
	// operators can edit a tenant without re-entering the API key.
	Save(ctx context.Context, t *tenant.Tenant) error
}

// RunService serves the import run history
type RunService interface {
	Recent(ctx context.Context, limit int64) ([]*runlog.Record, error)
}

// JournalService lists a tenant's ERP journals for mapping configuration
type JournalService interface {
	ListJournals(ctx context.Context, tenantID string) ([]odoo.Journal, error)
}

// ImportService triggers operator-requested imports outside the daily batch
type ImportService interface {
	Trigger(ctx context.Context, tenantID string, period payroll.Period) (*runlog.Record, error)
}

// LedgerBrowser opens a short-lived ERP session for a configuration lookup
type LedgerBrowser interface {
	ListJournals(ctx context.Context, conn odoo.Connection) ([]odoo.Journal, error)
}

// DialerBrowser adapts the Odoo dialer to the LedgerBrowser interface
type DialerBrowser struct {
	Dialer *odoo.Dialer
}

func (b *DialerBrowser) ListJournals(ctx context.Context, conn odoo.Connection) ([]odoo.Journal, error) {
	session, err := b.Dialer.Connect(ctx, conn)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return session.ListJournals(ctx)
}
