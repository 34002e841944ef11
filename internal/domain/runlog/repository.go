package runlog

import "context"

// Sink is the append-only persistence for run outcomes. Records are never
// updated or deleted; ListRecent serves the admin history view.
type Sink interface {
	Append(ctx context.Context, record *Record) error
	ListRecent(ctx context.Context, limit int64) ([]*Record, error)
}
