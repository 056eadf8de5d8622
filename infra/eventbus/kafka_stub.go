//go:build !kafka
// +build !kafka

package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mazadksa/mazad/pkg/domain/common"
	"github.com/mazadksa/mazad/pkg/eventbus"
)

// KafkaEventBus is the no-op stand-in compiled without the kafka tag.
type KafkaEventBus struct{}

func NewWithKafka(brokers, topic, groupID string, logger *slog.Logger) (*KafkaEventBus, error) {
	return nil, fmt.Errorf("kafka event bus: build with -tags kafka to enable")
}

func (b *KafkaEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
}

func (b *KafkaEventBus) Publish(ctx context.Context, event common.Event) error {
	return fmt.Errorf("kafka event bus: build with -tags kafka to enable")
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
