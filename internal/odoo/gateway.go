package odoo

import (
	"context"
	"fmt"

	"github.com/payflow-importer/internal/domain/ledger"
)

// Journal is one accounting journal exposed for mapping configuration
type Journal struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// accountRow is the projection used when resolving account codes
type accountRow struct {
	ID   int64  `xmlrpc:"id"`
	Code string `xmlrpc:"code"`
}

// ResolveAccounts maps payroll account codes to ERP account ids within the
// session's company. Codes absent from the chart of accounts are simply
// missing from the result; the caller decides whether that is fatal.
func (s *Session) ResolveAccounts(ctx context.Context, codes []string) (map[string]int64, error) {
	if len(codes) == 0 {
		return map[string]int64{}, nil
	}

	domain := []interface{}{
		[]interface{}{"code", "in", codes},
	}
	var rows []accountRow
	err := s.execute(ctx, "account.account", "search_read",
		[]interface{}{domain},
		map[string]interface{}{"fields": []string{"id", "code"}},
		&rows,
	)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]int64, len(rows))
	for _, row := range rows {
		resolved[row.Code] = row.ID
	}

	s.logger.Debug("odoo accounts resolved",
		"requested", len(codes),
		"resolved", len(resolved),
	)
	return resolved, nil
}

// ResolveJournal looks up the journal id for a code. A missing journal is
// reported as (0, nil), not an error: the caller maps it to its own outcome.
func (s *Session) ResolveJournal(ctx context.Context, code string) (int64, error) {
	domain := []interface{}{
		[]interface{}{"code", "=", code},
	}
	var ids []int64
	err := s.execute(ctx, "account.journal", "search",
		[]interface{}{domain},
		map[string]interface{}{"limit": 1},
		&ids,
	)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

// journalRow is the projection used when listing journals
type journalRow struct {
	Code string `xmlrpc:"code"`
	Name string `xmlrpc:"name"`
}

// ListJournals returns the company's accounting journals, ordered by code.
// It backs the mapping screen where operators pick a payroll journal code.
func (s *Session) ListJournals(ctx context.Context) ([]Journal, error) {
	domain := []interface{}{
		[]interface{}{"type", "in", []string{"bank", "cash", "sale", "purchase", "general"}},
	}
	var rows []journalRow
	err := s.execute(ctx, "account.journal", "search_read",
		[]interface{}{domain},
		map[string]interface{}{
			"fields": []string{"code", "name"},
			"order":  "code",
		},
		&rows,
	)
	if err != nil {
		return nil, err
	}

	journals := make([]Journal, 0, len(rows))
	for _, row := range rows {
		journals = append(journals, Journal{Code: row.Code, Name: row.Name})
	}
	return journals, nil
}

// CreateDraftEntry creates the journal entry in draft state and returns its
// ERP name for reporting. The entry is never posted here; validation stays
// with the tenant's accountant.
func (s *Session) CreateDraftEntry(ctx context.Context, entry *ledger.Entry) (string, error) {
	lines := make([]interface{}, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		lines = append(lines, []interface{}{0, 0, map[string]interface{}{
			"account_id": line.AccountID,
			"name":       line.Label,
			"debit":      line.Debit.InexactFloat64(),
			"credit":     line.Credit.InexactFloat64(),
		}})
	}

	values := map[string]interface{}{
		"journal_id": entry.JournalID,
		"ref":        entry.Ref,
		"date":       entry.Date.Format("2006-01-02"),
		"line_ids":   lines,
	}

	var moveID int64
	err := s.execute(ctx, "account.move", "create",
		[]interface{}{values},
		nil,
		&moveID,
	)
	if err != nil {
		return "", err
	}

	s.logger.Info("odoo draft entry created",
		"move_id", moveID,
		"journal_id", entry.JournalID,
		"lines", len(entry.Lines),
	)

	// Draft moves may not carry a sequence name yet; fall back to the id
	var read []map[string]interface{}
	err = s.execute(ctx, "account.move", "read",
		[]interface{}{[]int64{moveID}},
		map[string]interface{}{"fields": []string{"name"}},
		&read,
	)
	if err != nil || len(read) == 0 {
		return fmt.Sprintf("ID %d", moveID), nil
	}
	if name, ok := read[0]["name"].(string); ok && name != "" && name != "/" {
		return name, nil
	}
	return fmt.Sprintf("ID %d", moveID), nil
}
