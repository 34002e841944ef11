package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/payflow-importer/internal/domain/tenant"
	"github.com/payflow-importer/internal/odoo"
)

type journalCacheEntry struct {
	journals  []odoo.Journal
	expiresAt time.Time
}

// journalService lists a tenant's ERP journals with a TTL cache. Journal
// listings change rarely; the cache spares a full XML-RPC session per
// dashboard render.
type journalService struct {
	tenants tenant.Store
	browser LedgerBrowser
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]journalCacheEntry
}

// NewJournalService creates a journal listing service with the given cache TTL
func NewJournalService(logger *slog.Logger, tenants tenant.Store, browser LedgerBrowser, ttl time.Duration) JournalService {
	return &journalService{
		tenants: tenants,
		browser: browser,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		cache:   make(map[string]journalCacheEntry),
	}
}

func (s *journalService) ListJournals(ctx context.Context, tenantID string) ([]odoo.Journal, error) {
	s.mu.Lock()
	entry, ok := s.cache[tenantID]
	s.mu.Unlock()
	if ok && s.now().Before(entry.expiresAt) {
		return entry.journals, nil
	}

	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if missing := t.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("tenant %s is not fully configured for ERP access", tenantID)
	}

	journals, err := s.browser.ListJournals(ctx, odoo.Connection{
		Host:      t.OdooHost,
		Database:  t.OdooDatabase,
		Login:     t.OdooLogin,
		Password:  t.OdooPassword,
		CompanyID: t.OdooCompanyID,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[tenantID] = journalCacheEntry{
		journals:  journals,
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	s.logger.Debug("journal listing cached", "tenant_id", tenantID, "journals", len(journals))
	return journals, nil
}
