// Package mongo provides the MongoDB implementation of the run log sink.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/payflow-importer/internal/domain/runlog"
)

const (
	// RunLogCollectionName is the name of the run log collection in MongoDB
	RunLogCollectionName = "payflow_runs"
)

// RunLogRepository implements the runlog.Sink interface for MongoDB
type RunLogRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewRunLogRepository creates a new MongoDB run log repository
func NewRunLogRepository(logger *slog.Logger, db *mongo.Database) runlog.Sink {
	return &RunLogRepository{
		db:     db,
		logger: logger,
	}
}

// Append stores one run log record. Records are append-only; the document
// key already encodes tenant, period and execution time.
func (r *RunLogRepository) Append(ctx context.Context, record *runlog.Record) error {
	collection := r.db.Collection(RunLogCollectionName)

	_, err := collection.InsertOne(ctx, record)
	if err != nil {
		r.logger.Error("Failed to append run log record",
			"record_id", record.ID,
			"tenant_id", record.TenantID,
			"error", err)
		return fmt.Errorf("failed to append run log record: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent records, newest first
func (r *RunLogRepository) ListRecent(ctx context.Context, limit int64) ([]*runlog.Record, error) {
	collection := r.db.Collection(RunLogCollectionName)

	opts := options.Find().
		SetSort(bson.M{"executed_at": -1}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list run log records", "error", err)
		return nil, fmt.Errorf("failed to list run log records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*runlog.Record
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode run log records", "error", err)
		return nil, fmt.Errorf("failed to decode run log records: %w", err)
	}

	return records, nil
}
