package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/payflow-importer/internal/domain/tenant"
)

type tenantService struct {
	store  tenant.Store
	logger *slog.Logger
}

// NewTenantService creates a tenant configuration service
func NewTenantService(logger *slog.Logger, store tenant.Store) TenantService {
	return &tenantService{
		store:  store,
		logger: logger,
	}
}

func (s *tenantService) List(ctx context.Context) ([]*tenant.Tenant, error) {
	return s.store.ListAll(ctx)
}

func (s *tenantService) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	return s.store.GetByID(ctx, id)
}

func (s *tenantService) Save(ctx context.Context, t *tenant.Tenant) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if t.OdooPassword == "" {
		existing, err := s.store.GetByID(ctx, t.ID)
		if err != nil && !errors.Is(err, tenant.ErrTenantNotFound{}) {
			return fmt.Errorf("load existing tenant: %w", err)
		}
		if existing != nil {
			t.OdooPassword = existing.OdooPassword
			t.CreatedAt = existing.CreatedAt
		}
	}

	if err := s.store.Upsert(ctx, t); err != nil {
		return err
	}

	s.logger.Info("tenant saved",
		"tenant_id", t.ID,
		"transfer_day", t.TransferDay,
		"configured", len(t.MissingFields()) == 0,
	)
	return nil
}
