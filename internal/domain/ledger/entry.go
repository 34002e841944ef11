// Package ledger models the draft journal entry the importer creates in the
// target ERP for one tenant-period.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one resolved accounting line: the source account code has already
// been mapped to the ERP's internal account identifier. Exactly one of
// Debit/Credit is non-zero, per the payroll line's direction flag.
type Line struct {
	AccountID int64           `json:"account_id"`
	Label     string          `json:"label"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// Entry is a draft journal entry to be created in the ERP. It is posted
// nowhere: the entry stays in draft state for an accountant to validate.
type Entry struct {
	JournalID int64     `json:"journal_id"`
	Ref       string    `json:"ref"`
	Date      time.Time `json:"date"` // Posting date: the run date, not the period
	Lines     []Line    `json:"lines"`
}
