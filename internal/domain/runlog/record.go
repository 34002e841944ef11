// Package runlog defines the append-only log of import outcomes, one record
// per tenant-period attempt.
package runlog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Status is the outcome classification of one import attempt
type Status string

const (
	StatusSuccess       Status = "SUCCESS"
	StatusSuccessEmpty  Status = "SUCCESS_EMPTY"   // Journal present but had no lines
	StatusSuccessNoData Status = "SUCCESS_NO_DATA" // Nothing fetched for the period
	StatusErrorConfig   Status = "ERROR_CONFIG"
	StatusErrorAccount  Status = "ERROR_ACCOUNT"
	StatusErrorJournal  Status = "ERROR_JOURNAL"
	StatusErrorOdooRPC  Status = "ERROR_ODOO_RPC"
	StatusErrorUnknown  Status = "ERROR_UNKNOWN"

	// Outside the normal per-tenant path
	StatusErrorSilaeAuth Status = "ERROR_SILAE_AUTH" // Global: no payroll token, run aborted
	StatusErrorFunction  Status = "ERROR_FUNCTION"   // Per-tenant exception before/around the import
)

// ManualPrefix marks records produced by operator-triggered imports
const ManualPrefix = "MANUAL_"

// Manual returns the status tagged as an operator-triggered outcome
func (s Status) Manual() Status {
	return Status(ManualPrefix + string(s))
}

// IsSuccess reports whether the status counts as a successful outcome,
// including the empty/no-data variants and their manual forms.
func (s Status) IsSuccess() bool {
	return strings.HasPrefix(strings.TrimPrefix(string(s), ManualPrefix), "SUCCESS")
}

// MaxMessageLength bounds the persisted message size
const MaxMessageLength = 1500

// Record is one immutable run log document
type Record struct {
	ID         string    `bson:"_id" json:"id"`
	TenantID   string    `bson:"tenant_id" json:"tenant_id"`
	TenantName string    `bson:"tenant_name" json:"tenant_name"`
	Period     string    `bson:"period" json:"period"`
	Status     Status    `bson:"status" json:"status"`
	Message    string    `bson:"message" json:"message"`
	ExecutedAt time.Time `bson:"executed_at" json:"executed_at"`
}

// NewRecord builds a run log record. The message is truncated to
// MaxMessageLength and the document key is derived from tenant, period and
// execution timestamp, which keeps keys unique within a single run.
func NewRecord(tenantID, tenantName, period string, status Status, message string, executedAt time.Time) *Record {
	if len(message) > MaxMessageLength {
		// Cut on a rune boundary: provider error texts are French and a
		// split multi-byte rune would leave the message invalid UTF-8.
		cut := MaxMessageLength
		for cut > 0 && !utf8.RuneStart(message[cut]) {
			cut--
		}
		message = message[:cut]
	}
	executedAt = executedAt.UTC()
	return &Record{
		ID:         fmt.Sprintf("%s_%s_%s", tenantID, period, executedAt.Format("20060102T150405")),
		TenantID:   tenantID,
		TenantName: tenantName,
		Period:     period,
		Status:     status,
		Message:    message,
		ExecutedAt: executedAt,
	}
}
