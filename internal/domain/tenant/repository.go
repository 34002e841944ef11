package tenant

import "context"

// Store manages tenant configuration persistence. The import pipeline only
// reads; writes come from the admin API.
type Store interface {
	ListAll(ctx context.Context) ([]*Tenant, error)

	// ListByTransferDay returns the tenants scheduled for the given day of
	// month, the query the batch runner selects with.
	ListByTransferDay(ctx context.Context, day int) ([]*Tenant, error)

	GetByID(ctx context.Context, id string) (*Tenant, error)

	// Upsert creates the tenant or overwrites the existing record with the
	// same ID.
	Upsert(ctx context.Context, t *Tenant) error
}

// ErrTenantNotFound indicates a missing tenant record
type ErrTenantNotFound struct {
	ID string
}

func (e ErrTenantNotFound) Error() string {
	return "tenant not found: " + e.ID
}

// Is implements the errors.Is interface for ErrTenantNotFound
func (e ErrTenantNotFound) Is(target error) bool {
	t, ok := target.(ErrTenantNotFound)
	if !ok {
		return false
	}
	// An empty target ID matches any ErrTenantNotFound
	if t.ID == "" {
		return true
	}
	return e.ID == t.ID
}
