// Package postgres provides the PostgreSQL implementation of the tenant
// configuration store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/payflow-importer/internal/domain/tenant"
	"github.com/payflow-importer/internal/platform/persistence"
)

// TenantRepository implements the tenant.Store interface for PostgreSQL
type TenantRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewTenantRepository creates a new PostgreSQL tenant repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewTenantRepository(logger *slog.Logger, db *persistence.PostgresDB) tenant.Store {
	return &TenantRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

const tenantColumns = `id, name, transfer_day, odoo_host, odoo_database, odoo_login, odoo_password, payroll_journal_code, odoo_company_id, created_at, updated_at`

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.TransferDay,
		&t.OdooHost,
		&t.OdooDatabase,
		&t.OdooLogin,
		&t.OdooPassword,
		&t.PayrollJournalCode,
		&t.OdooCompanyID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListAll retrieves every tenant record, ordered by name
func (r *TenantRepository) ListAll(ctx context.Context) ([]*tenant.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		ORDER BY name
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list tenants", "error", err)
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	return collectTenants(rows)
}

// ListByTransferDay retrieves the tenants scheduled for the given day of
// month, the selection the batch runner uses.
func (r *TenantRepository) ListByTransferDay(ctx context.Context, day int) ([]*tenant.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE transfer_day = $1
		ORDER BY id
	`

	rows, err := r.querier.Query(ctx, query, day)
	if err != nil {
		r.logger.Error("Failed to list tenants by transfer day", "day", day, "error", err)
		return nil, fmt.Errorf("failed to list tenants by transfer day: %w", err)
	}
	defer rows.Close()

	return collectTenants(rows)
}

func collectTenants(rows pgx.Rows) ([]*tenant.Tenant, error) {
	var tenants []*tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tenants: %w", err)
	}
	return tenants, nil
}

// GetByID retrieves a tenant by its ID (the Silae dossier number)
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE id = $1
	`

	t, err := scanTenant(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound{ID: id}
		}
		r.logger.Error("Failed to get tenant", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

// Upsert creates the tenant or overwrites the existing record with the same
// ID. The created_at of an existing record is preserved.
func (r *TenantRepository) Upsert(ctx context.Context, t *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, transfer_day, odoo_host, odoo_database, odoo_login, odoo_password, payroll_journal_code, odoo_company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			transfer_day = EXCLUDED.transfer_day,
			odoo_host = EXCLUDED.odoo_host,
			odoo_database = EXCLUDED.odoo_database,
			odoo_login = EXCLUDED.odoo_login,
			odoo_password = EXCLUDED.odoo_password,
			payroll_journal_code = EXCLUDED.payroll_journal_code,
			odoo_company_id = EXCLUDED.odoo_company_id,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err := r.querier.Exec(ctx, query,
		t.ID,
		t.Name,
		t.TransferDay,
		t.OdooHost,
		t.OdooDatabase,
		t.OdooLogin,
		t.OdooPassword,
		t.PayrollJournalCode,
		t.OdooCompanyID,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert tenant", "id", t.ID, "error", err)
		return fmt.Errorf("failed to upsert tenant: %w", err)
	}

	return nil
}
