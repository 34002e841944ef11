// Package payroll models the accounting journal returned by the Silae
// payroll API for one dossier and one monthly period.
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Direction indicates which side of the entry a payroll line carries
type Direction string

const (
	Debit  Direction = "D"
	Credit Direction = "C"
)

// Line is a single accounting line within a payroll journal break.
// Amount is non-negative; Direction decides whether it becomes a debit
// or a credit when the line is mapped onto the ledger.
type Line struct {
	AccountCode string          `json:"compte"`
	Label       string          `json:"libelle"`
	Amount      decimal.Decimal `json:"valeur"`
	Direction   Direction       `json:"sens"`
}

// DebitCredit splits the line amount onto the side named by the direction
// flag. Exactly one of the returned values is non-zero for a non-zero amount.
func (l Line) DebitCredit() (debit, credit decimal.Decimal) {
	if l.Direction == Debit {
		return l.Amount, decimal.Zero
	}
	return decimal.Zero, l.Amount
}

// Break is a provider-side grouping ("rupture") of payroll lines
type Break struct {
	Label string `json:"libelle"`
	Lines []Line `json:"ecritures"`
}

// AccountCodes returns the distinct account codes referenced by the break's
// lines, sorted for stable reporting.
func (b *Break) AccountCodes() []string {
	seen := make(map[string]struct{}, len(b.Lines))
	for _, line := range b.Lines {
		seen[line.AccountCode] = struct{}{}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Journal is the payroll data fetched for one tenant-period
type Journal struct {
	Breaks []Break `json:"ruptures"`
}

// FirstBreak returns the first break, or nil when the journal has none.
// Only the first break is imported; the provider's data contract for
// additional breaks is unconfirmed.
func (j *Journal) FirstBreak() *Break {
	if j == nil || len(j.Breaks) == 0 {
		return nil
	}
	return &j.Breaks[0]
}

// HasNoData reports whether the provider returned nothing usable at all:
// a nil journal or one without breaks.
func (j *Journal) HasNoData() bool {
	return j == nil || len(j.Breaks) == 0
}

// IsEmpty reports whether there is nothing to import: no breaks, or a first
// break without lines.
func (j *Journal) IsEmpty() bool {
	if j.HasNoData() {
		return true
	}
	return len(j.Breaks[0].Lines) == 0
}
