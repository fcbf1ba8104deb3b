package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/solar-roi-service/internal/config"
	"github.com/couchcryptid/solar-roi-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces estimate events to a Kafka topic.
// It implements estimator.BatchPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured estimate topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaEstimateTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes and publishes estimate events in a single
// WriteMessages call. Events that fail to serialize are logged and skipped
// so they cannot hold back the rest of the batch.
func (w *Writer) PublishBatch(ctx context.Context, events []domain.EstimateEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, 0, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			// Retrying cannot fix an event that does not encode.
			w.logger.Error("skipping unserializable estimate event", "id", events[i].ID, "error", err)
			continue
		}
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write estimate events: %w", err)
	}
	w.logger.Debug("published estimate events", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an EstimateEvent into a Kafka message keyed by
// state so one state's events stay ordered on a partition.
func serializeToMessage(event domain.EstimateEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize estimate event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.StateCode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "estimate_id", Value: []byte(event.ID)},
			{Key: "data_source", Value: []byte(event.SunHoursSource)},
			{Key: "generated_at", Value: []byte(event.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
