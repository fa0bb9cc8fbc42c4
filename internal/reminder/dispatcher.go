package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Dispatcher hands (eventID, fireTimeUTC, channel) tuples to the external
// notification collaborator. Delivery success or failure is its concern.
type Dispatcher interface {
	Dispatch(ctx context.Context, eventID string, fireAt time.Time, channel Channel) error
	Close() error
}

// KafkaDispatcher publishes reminder schedules to a Kafka topic consumed by
// the notification service.
type KafkaDispatcher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewKafkaDispatcher(brokers []string, topic string, logger *slog.Logger) *KafkaDispatcher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaDispatcher{writer: writer, logger: logger}
}

type reminderMessage struct {
	EventID     string `json:"event_id"`
	FireTimeUTC string `json:"fire_time_utc"`
	Channel     string `json:"channel"`
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, eventID string, fireAt time.Time, channel Channel) error {
	payload, err := json.Marshal(reminderMessage{
		EventID:     eventID,
		FireTimeUTC: fireAt.UTC().Format(time.RFC3339),
		Channel:     string(channel),
	})
	if err != nil {
		return fmt.Errorf("marshal reminder message failed: %w", err)
	}

	msg := kafka.Message{
		// Key by event so all reminders for one event land on one partition.
		Key:   []byte(eventID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("reminder.scheduled.v1")},
		},
	}

	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish reminder failed: %w", err)
	}

	d.logger.Debug("reminder dispatched", "event_id", eventID, "fire_at", fireAt, "channel", channel)
	return nil
}

func (d *KafkaDispatcher) Close() error {
	return d.writer.Close()
}

// NoopDispatcher is used when no broker is configured. Reminder computation
// still happens; nothing leaves the process.
type NoopDispatcher struct{}

func (NoopDispatcher) Dispatch(ctx context.Context, eventID string, fireAt time.Time, channel Channel) error {
	return nil
}

func (NoopDispatcher) Close() error { return nil }
