package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/payflow-importer/internal/domain/ledger"
	"github.com/payflow-importer/internal/domain/payroll"
	"github.com/payflow-importer/internal/domain/runlog"
	"github.com/payflow-importer/internal/domain/tenant"
	"github.com/payflow-importer/internal/odoo"
)

// Outcome classifies one tenant-period import attempt for the run log
type Outcome struct {
	Status  runlog.Status
	Message string
}

// Orchestrator imports one tenant's payroll journal for one period into its
// ERP as a draft entry. It holds no per-run state; the batch runner drives it
// sequentially over the scheduled tenants.
type Orchestrator struct {
	erp    LedgerConnector
	logger *slog.Logger
	now    func() time.Time
}

// NewOrchestrator creates an import orchestrator
func NewOrchestrator(logger *slog.Logger, erp LedgerConnector) *Orchestrator {
	return &Orchestrator{
		erp:    erp,
		logger: logger,
		now:    time.Now,
	}
}

// ImportTenantPeriod runs the import pipeline for one tenant and period:
// configuration check, payroll fetch, account and journal resolution, draft
// entry creation. The returned outcome carries the run log classification;
// a non-nil error means the attempt failed outside that classification
// (currently only the payroll fetch) and is the caller's to record.
func (o *Orchestrator) ImportTenantPeriod(ctx context.Context, session PayrollSession, t *tenant.Tenant, period payroll.Period) (Outcome, error) {
	log := o.logger.With("tenant_id", t.ID, "period", period.String())

	if missing := t.MissingFields(); len(missing) > 0 {
		log.Warn("tenant configuration incomplete", "missing", missing)
		return Outcome{
			Status:  runlog.StatusErrorConfig,
			Message: "missing configuration fields: " + strings.Join(missing, ", "),
		}, nil
	}

	journal, err := session.FetchJournal(ctx, t.ID, period)
	if err != nil {
		return Outcome{}, fmt.Errorf("fetch payroll journal: %w", err)
	}

	if journal.HasNoData() {
		log.Info("no payroll data for period")
		return Outcome{
			Status:  runlog.StatusSuccessNoData,
			Message: "no payroll data returned for the period",
		}, nil
	}
	if journal.IsEmpty() {
		log.Info("payroll journal empty for period")
		return Outcome{
			Status:  runlog.StatusSuccessEmpty,
			Message: "payroll journal contains no lines for the period",
		}, nil
	}
	if len(journal.Breaks) > 1 {
		log.Warn("payroll journal has multiple breaks, importing the first only",
			"breaks", len(journal.Breaks),
		)
	}
	brk := journal.FirstBreak()

	gateway, err := o.erp.Connect(ctx, odoo.Connection{
		Host:      t.OdooHost,
		Database:  t.OdooDatabase,
		Login:     t.OdooLogin,
		Password:  t.OdooPassword,
		CompanyID: t.OdooCompanyID,
	})
	if err != nil {
		log.Error("odoo connection failed", "error", err)
		return classifyERPError(err), nil
	}
	defer gateway.Close()

	codes := brk.AccountCodes()
	resolved, err := gateway.ResolveAccounts(ctx, codes)
	if err != nil {
		log.Error("account resolution failed", "error", err)
		return classifyERPError(err), nil
	}
	var missing []string
	for _, code := range codes {
		if _, ok := resolved[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		log.Warn("account codes missing from chart of accounts", "codes", missing)
		return Outcome{
			Status:  runlog.StatusErrorAccount,
			Message: "accounts missing from the chart of accounts: " + strings.Join(missing, ", "),
		}, nil
	}

	journalID, err := gateway.ResolveJournal(ctx, t.PayrollJournalCode)
	if err != nil {
		log.Error("journal resolution failed", "error", err)
		return classifyERPError(err), nil
	}
	if journalID == 0 {
		log.Warn("payroll journal code not found", "code", t.PayrollJournalCode)
		return Outcome{
			Status:  runlog.StatusErrorJournal,
			Message: fmt.Sprintf("journal code %q not found in the ERP", t.PayrollJournalCode),
		}, nil
	}

	entry := o.buildEntry(brk, resolved, journalID, period)
	name, err := gateway.CreateDraftEntry(ctx, entry)
	if err != nil {
		log.Error("draft entry creation failed", "error", err)
		return classifyERPError(err), nil
	}

	log.Info("import succeeded", "entry", name, "lines", len(entry.Lines))
	return Outcome{
		Status:  runlog.StatusSuccess,
		Message: "draft entry created: " + name,
	}, nil
}

// buildEntry maps the payroll break onto a draft ledger entry. The posting
// date is the run date; the period only names the entry.
func (o *Orchestrator) buildEntry(brk *payroll.Break, accounts map[string]int64, journalID int64, period payroll.Period) *ledger.Entry {
	ref := brk.Label
	if ref == "" {
		ref = "Payroll Import " + period.String()
	}

	lines := make([]ledger.Line, 0, len(brk.Lines))
	for _, src := range brk.Lines {
		debit, credit := src.DebitCredit()
		lines = append(lines, ledger.Line{
			AccountID: accounts[src.AccountCode],
			Label:     src.Label,
			Debit:     debit,
			Credit:    credit,
		})
	}

	return &ledger.Entry{
		JournalID: journalID,
		Ref:       ref,
		Date:      o.now().UTC(),
		Lines:     lines,
	}
}

// classifyERPError maps ERP-side failures onto run log statuses. Bad tenant
// credentials surface as RPC errors too: the status taxonomy is fixed and
// the message carries the distinction.
func classifyERPError(err error) Outcome {
	var authErr *odoo.AuthError
	if errors.As(err, &authErr) {
		return Outcome{Status: runlog.StatusErrorOdooRPC, Message: authErr.Error()}
	}
	var rpcErr *odoo.RPCError
	if errors.As(err, &rpcErr) {
		return Outcome{Status: runlog.StatusErrorOdooRPC, Message: rpcErr.Error()}
	}
	return Outcome{Status: runlog.StatusErrorUnknown, Message: err.Error()}
}
