package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/payflow-importer/internal/domain/tenant"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type MockTenantStore struct {
	mock.Mock
}

func (m *MockTenantStore) ListAll(ctx context.Context) ([]*tenant.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenant.Tenant), args.Error(1)
}

func (m *MockTenantStore) ListByTransferDay(ctx context.Context, day int) ([]*tenant.Tenant, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenant.Tenant), args.Error(1)
}

func (m *MockTenantStore) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantStore) Upsert(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func storedTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:                 "12345",
		Name:               "Acme SARL",
		TransferDay:        15,
		OdooHost:           "acme.odoo.com",
		OdooDatabase:       "acme-prod",
		OdooLogin:          "importer@acme.fr",
		OdooPassword:       "stored-api-key",
		PayrollJournalCode: "PAIE",
		OdooCompanyID:      3,
	}
}

func TestTenantService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid tenant is rejected before the store", func(t *testing.T) {
		store := new(MockTenantStore)
		svc := NewTenantService(newTestLogger(), store)

		err := svc.Save(ctx, &tenant.Tenant{ID: "12345", Name: "Acme", TransferDay: 0})
		assert.ErrorIs(t, err, tenant.ErrInvalidTransferDay)
		store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("provided password is stored", func(t *testing.T) {
		store := new(MockTenantStore)
		svc := NewTenantService(newTestLogger(), store)

		tn := storedTenant()
		tn.OdooPassword = "new-api-key"
		store.On("Upsert", ctx, tn).Return(nil).Once()

		require.NoError(t, svc.Save(ctx, tn))
		assert.Equal(t, "new-api-key", tn.OdooPassword)
		store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		store.AssertExpectations(t)
	})

	t.Run("blank password keeps the stored key", func(t *testing.T) {
		store := new(MockTenantStore)
		svc := NewTenantService(newTestLogger(), store)

		tn := storedTenant()
		tn.OdooPassword = ""
		store.On("GetByID", ctx, "12345").Return(storedTenant(), nil).Once()
		store.On("Upsert", ctx, tn).Return(nil).Once()

		require.NoError(t, svc.Save(ctx, tn))
		assert.Equal(t, "stored-api-key", tn.OdooPassword)
		store.AssertExpectations(t)
	})

	t.Run("blank password on a new tenant stays blank", func(t *testing.T) {
		store := new(MockTenantStore)
		svc := NewTenantService(newTestLogger(), store)

		tn := storedTenant()
		tn.OdooPassword = ""
		store.On("GetByID", ctx, "12345").Return(nil, tenant.ErrTenantNotFound{ID: "12345"}).Once()
		store.On("Upsert", ctx, tn).Return(nil).Once()

		require.NoError(t, svc.Save(ctx, tn))
		assert.Empty(t, tn.OdooPassword)
		store.AssertExpectations(t)
	})
}
