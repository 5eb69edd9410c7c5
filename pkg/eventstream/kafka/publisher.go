// Package kafka publishes operation events to a Kafka topic via
// segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/papercomputeco/engram/pkg/eventstream"
)

// Config holds Kafka publisher settings.
type Config struct {
	// Brokers is the broker address list.
	Brokers []string

	// Topic is the topic operation events are written to.
	Topic string
}

// Publisher implements eventstream.Publisher on a kafka-go Writer.
type Publisher struct {
	writer *kafkago.Writer
}

// NewPublisher creates a Kafka-backed operation event publisher.
func NewPublisher(config Config) (*Publisher, error) {
	if len(config.Brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if config.Topic == "" {
		return nil, errors.New("topic is required")
	}

	return &Publisher{
		writer: &kafkago.Writer{
			Addr:     kafkago.TCP(config.Brokers...),
			Topic:    config.Topic,
			Balancer: &kafkago.LeastBytes{},
		},
	}, nil
}

// PublishOperation writes the event as a JSON message keyed by event ID.
func (p *Publisher) PublishOperation(ctx context.Context, event *eventstream.OperationAppliedEvent) error {
	if event == nil {
		return eventstream.ErrNilOperationEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling operation event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(event.EventID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publishing operation event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
