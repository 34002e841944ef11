package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/payflow-importer/internal/domain/payroll"
	"github.com/payflow-importer/internal/domain/runlog"
	"github.com/payflow-importer/internal/domain/tenant"
	"github.com/payflow-importer/internal/secrets"
	"github.com/payflow-importer/internal/silae"
)

// Identity used for run log records that concern the whole run rather than
// one tenant.
const (
	globalTenantID   = "GLOBAL"
	globalTenantName = "PayFlow System"
)

// Summary reports the aggregate result of one batch run
type Summary struct {
	Period    string
	Scheduled int
	Succeeded int
	Failed    int
}

// Runner executes the daily batch: select the tenants scheduled for today,
// authenticate against the payroll API once, then import each tenant
// strictly in sequence, recording every outcome in the run log.
type Runner struct {
	secrets  secrets.Provider
	tenants  tenant.Store
	sink     runlog.Sink
	payroll  PayrollAuthenticator
	importer *Orchestrator
	logger   *slog.Logger
	now      func() time.Time
}

// NewRunner creates a batch runner
func NewRunner(
	logger *slog.Logger,
	provider secrets.Provider,
	tenants tenant.Store,
	sink runlog.Sink,
	payroll PayrollAuthenticator,
	importer *Orchestrator,
) *Runner {
	return &Runner{
		secrets:  provider,
		tenants:  tenants,
		sink:     sink,
		payroll:  payroll,
		importer: importer,
		logger:   logger,
		now:      time.Now,
	}
}

// RunDaily executes one batch run. The reference date selects both the
// tenants (by transfer day) and the target period (the previous calendar
// month). A tenant failure never aborts the run; a payroll authentication
// failure does, after leaving a global run log record.
func (r *Runner) RunDaily(ctx context.Context, eventID string) (*Summary, error) {
	ref := r.now().UTC()
	day := ref.Day()
	period := payroll.PreviousMonth(ref)

	log := r.logger.With("event_id", eventID, "day", day, "period", period.String())
	log.Info("batch run starting")

	creds, err := silae.LoadCredentials(ctx, r.secrets)
	if err != nil {
		// Nothing ran and nothing can be attributed to a tenant; abort
		// before writing any record.
		return nil, fmt.Errorf("batch run aborted: %w", err)
	}

	scheduled, err := r.tenants.ListByTransferDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list scheduled tenants: %w", err)
	}
	if len(scheduled) == 0 {
		log.Info("no tenants scheduled for today")
		return &Summary{Period: period.String()}, nil
	}
	log.Info("tenants scheduled", "count", len(scheduled))

	session, err := r.payroll.Authenticate(ctx, creds)
	if err != nil {
		record := runlog.NewRecord(globalTenantID, globalTenantName, period.String(),
			runlog.StatusErrorSilaeAuth, err.Error(), r.now())
		if appendErr := r.sink.Append(ctx, record); appendErr != nil {
			log.Error("failed to record global auth failure", "error", appendErr)
		}
		return nil, fmt.Errorf("payroll authentication failed: %w", err)
	}

	summary := &Summary{Period: period.String(), Scheduled: len(scheduled)}
	for _, t := range scheduled {
		if ctx.Err() != nil {
			return summary, fmt.Errorf("batch run interrupted: %w", ctx.Err())
		}

		outcome := r.importOne(ctx, session, t, period)

		record := runlog.NewRecord(t.ID, t.Name, period.String(), outcome.Status, outcome.Message, r.now())
		if err := r.sink.Append(ctx, record); err != nil {
			log.Error("failed to append run log record",
				"tenant_id", t.ID,
				"status", outcome.Status,
				"error", err,
			)
		}

		if outcome.Status.IsSuccess() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	log.Info("batch run finished",
		"scheduled", summary.Scheduled,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return summary, nil
}

// importOne isolates a single tenant import. Errors and panics are absorbed
// into an outcome so the sequential loop always continues to the next tenant.
func (r *Runner) importOne(ctx context.Context, session PayrollSession, t *tenant.Tenant, period payroll.Period) (outcome Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic during tenant import",
				"tenant_id", t.ID,
				"panic", rec,
			)
			outcome = Outcome{
				Status:  runlog.StatusErrorFunction,
				Message: fmt.Sprintf("unexpected failure during import: %v", rec),
			}
		}
	}()

	outcome, err := r.importer.ImportTenantPeriod(ctx, session, t, period)
	if err != nil {
		r.logger.Error("tenant import failed",
			"tenant_id", t.ID,
			"period", period.String(),
			"error", err,
		)
		return Outcome{
			Status:  runlog.StatusErrorFunction,
			Message: err.Error(),
		}
	}
	return outcome
}
