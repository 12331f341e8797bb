// Package kafka publishes generated event sets to a Kafka topic for
// downstream analytics consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/geopredictor/geopredictor-api/internal/config"
	"github.com/geopredictor/geopredictor-api/internal/domain"
)

// Writer produces event records to the export topic.
// It implements domain.EventExporter.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured export topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaExportTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// ExportSet serializes and publishes every record of a freshly generated
// set in a single WriteMessages call. Record IDs are deterministic per
// scenario, so consumers can deduplicate re-exports by key.
func (w *Writer) ExportSet(ctx context.Context, set *domain.EventSet) error {
	if len(set.Records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(set.Records))
	for i := range set.Records {
		msg, err := serializeToMessage(set.Records[i], set.GeneratedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write event records: %w", err)
	}
	w.logger.Info("event set exported",
		"key", set.Key(),
		"records", len(set.Records),
	)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an EventRecord into a Kafka message.
func serializeToMessage(rec domain.EventRecord, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize event record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(rec.Category)},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}
