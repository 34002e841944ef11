// Package consumers contains the Kafka consumer that turns scheduler
// messages into batch runs.
package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/payflow-importer/internal/config"
)

// TriggerHandler processes one batch trigger event
type TriggerHandler func(ctx context.Context, eventID string) error

// TriggerConsumer consumes the daily batch trigger topic. One message means
// one batch run; the message body carries nothing the run needs, the key
// only identifies the event for logging.
type TriggerConsumer struct {
	reader *kafka.Reader
	logger *slog.Logger
}

func NewTriggerConsumer(logger *slog.Logger, cfg *config.KafkaConfig) *TriggerConsumer {
	return &TriggerConsumer{
		logger: logger,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     []string{cfg.Brokers},
			Topic:       cfg.TriggerTopic,
			GroupID:     cfg.ConsumerGroup,
			MinBytes:    cfg.MinBytes,
			MaxBytes:    cfg.MaxBytes,
			MaxWait:     cfg.MaxWait,
			StartOffset: kafka.LastOffset,
		}),
	}
}

// Run blocks, handling trigger messages until the context is canceled.
// Offsets are committed whether or not the run succeeds: a failed run is
// already recorded in the run log, and replaying the trigger would re-import
// the same period.
func (c *TriggerConsumer) Run(ctx context.Context, handler TriggerHandler) error {
	c.logger.Info("Listening for batch triggers", "topic", c.reader.Config().Topic)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Context canceled, stopping trigger consumer")
				return nil
			}
			c.logger.Error("Failed to fetch trigger message", "error", err)
			time.Sleep(time.Second)
			continue
		}

		eventID := string(msg.Key)
		if eventID == "" {
			eventID = uuid.NewString()
		}

		c.logger.Info("Batch trigger received",
			"event_id", eventID,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)

		if err := handler(ctx, eventID); err != nil {
			c.logger.Error("Batch run failed",
				"event_id", eventID,
				"error", err,
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("Failed to commit trigger message",
				"event_id", eventID,
				"offset", msg.Offset,
				"error", err,
			)
		}
	}
}

func (c *TriggerConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
