package service

import (
	"context"
	"log/slog"

	"github.com/payflow-importer/internal/domain/runlog"
)

type runService struct {
	sink         runlog.Sink
	defaultLimit int64
	logger       *slog.Logger
}

// NewRunService creates a run history service. The default limit applies
// when the caller requests zero or a negative page size.
func NewRunService(logger *slog.Logger, sink runlog.Sink, defaultLimit int64) RunService {
	return &runService{
		sink:         sink,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

func (s *runService) Recent(ctx context.Context, limit int64) ([]*runlog.Record, error) {
	if limit <= 0 || limit > s.defaultLimit {
		limit = s.defaultLimit
	}
	return s.sink.ListRecent(ctx, limit)
}
