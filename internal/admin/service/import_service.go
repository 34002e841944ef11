package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/payflow-importer/internal/domain/payroll"
	"github.com/payflow-importer/internal/domain/runlog"
	"github.com/payflow-importer/internal/domain/tenant"
	"github.com/payflow-importer/internal/importer"
	"github.com/payflow-importer/internal/secrets"
	"github.com/payflow-importer/internal/silae"
)

type importService struct {
	secrets      secrets.Provider
	tenants      tenant.Store
	sink         runlog.Sink
	payroll      importer.PayrollAuthenticator
	orchestrator *importer.Orchestrator
	logger       *slog.Logger
	now          func() time.Time
}

// NewImportService creates the manual import service. Outcomes follow the
// same classification as the daily batch, tagged with the manual prefix so
// operator-triggered runs stand out in the history.
func NewImportService(
	logger *slog.Logger,
	provider secrets.Provider,
	tenants tenant.Store,
	sink runlog.Sink,
	payroll importer.PayrollAuthenticator,
	orchestrator *importer.Orchestrator,
) ImportService {
	return &importService{
		secrets:      provider,
		tenants:      tenants,
		sink:         sink,
		payroll:      payroll,
		orchestrator: orchestrator,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *importService) Trigger(ctx context.Context, tenantID string, period payroll.Period) (*runlog.Record, error) {
	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if period.IsZero() {
		period = payroll.PreviousMonth(s.now().UTC())
	}

	s.logger.Info("manual import requested", "tenant_id", tenantID, "period", period.String())

	creds, err := silae.LoadCredentials(ctx, s.secrets)
	if err != nil {
		return nil, fmt.Errorf("manual import aborted: %w", err)
	}

	var outcome importer.Outcome
	session, err := s.payroll.Authenticate(ctx, creds)
	if err != nil {
		outcome = importer.Outcome{
			Status:  runlog.StatusErrorSilaeAuth,
			Message: err.Error(),
		}
	} else {
		outcome, err = s.orchestrator.ImportTenantPeriod(ctx, session, t, period)
		if err != nil {
			outcome = importer.Outcome{
				Status:  runlog.StatusErrorFunction,
				Message: err.Error(),
			}
		}
	}

	record := runlog.NewRecord(t.ID, t.Name, period.String(),
		outcome.Status.Manual(), outcome.Message, s.now())
	if err := s.sink.Append(ctx, record); err != nil {
		s.logger.Error("failed to append manual run record",
			"tenant_id", t.ID,
			"status", record.Status,
			"error", err,
		)
		return nil, fmt.Errorf("record manual import outcome: %w", err)
	}

	return record, nil
}
