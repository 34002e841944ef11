// Package importer contains the import orchestration: mapping one tenant's
// payroll journal into a draft ERP entry, and running the daily batch over
// all scheduled tenants.
package importer

import (
	"context"

	"github.com/payflow-importer/internal/domain/ledger"
	"github.com/payflow-importer/internal/domain/payroll"
	"github.com/payflow-importer/internal/odoo"
	"github.com/payflow-importer/internal/silae"
)

// PayrollSession fetches payroll journals for the batch run. One session is
// shared across all tenants of a run.
type PayrollSession interface {
	FetchJournal(ctx context.Context, dossier string, period payroll.Period) (*payroll.Journal, error)
}

// PayrollAuthenticator opens payroll sessions from a credential set
type PayrollAuthenticator interface {
	Authenticate(ctx context.Context, creds silae.Credentials) (PayrollSession, error)
}

// LedgerGateway is one tenant's ERP session
type LedgerGateway interface {
	ResolveAccounts(ctx context.Context, codes []string) (map[string]int64, error)
	ResolveJournal(ctx context.Context, code string) (int64, error)
	CreateDraftEntry(ctx context.Context, entry *ledger.Entry) (string, error)
	Close() error
}

// LedgerConnector opens per-tenant ERP sessions
type LedgerConnector interface {
	Connect(ctx context.Context, conn odoo.Connection) (LedgerGateway, error)
}

// odooConnector adapts the concrete dialer to the connector interface
type odooConnector struct {
	dialer *odoo.Dialer
}

// NewOdooConnector wraps an Odoo dialer as a LedgerConnector
func NewOdooConnector(dialer *odoo.Dialer) LedgerConnector {
	return &odooConnector{dialer: dialer}
}

func (c *odooConnector) Connect(ctx context.Context, conn odoo.Connection) (LedgerGateway, error) {
	session, err := c.dialer.Connect(ctx, conn)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// silaeAuthenticator adapts the concrete payroll client
type silaeAuthenticator struct {
	client *silae.Client
}

// NewSilaeAuthenticator wraps a Silae client as a PayrollAuthenticator
func NewSilaeAuthenticator(client *silae.Client) PayrollAuthenticator {
	return &silaeAuthenticator{client: client}
}

func (a *silaeAuthenticator) Authenticate(ctx context.Context, creds silae.Credentials) (PayrollSession, error) {
	session, err := a.client.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}
	return session, nil
}
