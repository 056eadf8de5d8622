//go:build kafka
// +build kafka

package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/mazadksa/mazad/pkg/domain/common"
	"github.com/mazadksa/mazad/pkg/eventbus"
)

// KafkaEventBus is a Kafka-backed bus. All events share one topic;
// each registration runs its own consumer in the group and filters by
// event type.
type KafkaEventBus struct {
	brokers []string
	topic   string
	groupID string
	writer  *kafka.Writer
	logger  *slog.Logger

	readersMtx sync.Mutex
	readers    []*kafka.Reader
}

// NewWithKafka creates a Kafka-backed event bus.
// brokers: comma-separated broker list (e.g. "localhost:9092").
func NewWithKafka(brokers, topic, groupID string, logger *slog.Logger) (*KafkaEventBus, error) {
	parsed := parseBrokers(brokers)
	if len(parsed) == 0 {
		return nil, fmt.Errorf("kafka event bus: brokers are required")
	}
	if topic == "" {
		topic = "mazad.events"
	}
	if groupID == "" {
		groupID = "mazad"
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(parsed...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
	}
	return &KafkaEventBus{
		brokers: parsed,
		topic:   topic,
		groupID: groupID,
		writer:  writer,
		logger:  logger.With("bus", "kafka"),
	}, nil
}

// Publish writes the event to the topic, keyed by event type so
// ordering holds per type.
func (b *KafkaEventBus) Publish(ctx context.Context, event common.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka event bus: marshal failed: %w", err)
	}
	envBytes, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return fmt.Errorf("kafka event bus: envelope marshal failed: %w", err)
	}
	err = b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Type()),
		Value: envBytes,
	})
	if err != nil {
		return fmt.Errorf("kafka event bus: publish failed: %w", err)
	}
	return nil
}

// Register starts a consumer goroutine delivering events of the given
// type to handler.
func (b *KafkaEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: b.brokers,
		Topic:   b.topic,
		GroupID: fmt.Sprintf("%s-%s", b.groupID, eventType),
	})
	b.readersMtx.Lock()
	b.readers = append(b.readers, reader)
	b.readersMtx.Unlock()

	go func() {
		ctx := context.Background()
		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				b.logger.Error("error reading message", "error", err, "event_type", eventType)
				return
			}
			var env envelope
			if err := json.Unmarshal(msg.Value, &env); err != nil {
				b.logger.Error("failed to unmarshal envelope", "error", err)
				continue
			}
			if env.Type != eventType {
				continue
			}
			evt, err := decodeEnvelope(env)
			if err != nil {
				b.logger.Error("failed to decode event", "error", err, "event_type", env.Type)
				continue
			}
			if err := handler(ctx, evt); err != nil {
				b.logger.Error("handler error", "error", err, "event_type", env.Type)
			}
		}
	}()
	b.logger.Info("handler registered", "event_type", eventType)
}

// Close shuts down the writer and all consumer readers.
func (b *KafkaEventBus) Close() error {
	b.readersMtx.Lock()
	defer b.readersMtx.Unlock()
	for _, r := range b.readers {
		_ = r.Close()
	}
	return b.writer.Close()
}

func parseBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
