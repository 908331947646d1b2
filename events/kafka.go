package events

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

// KafkaPublisher writes OrderPlaced events keyed by order reference.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkaGo.LeastBytes{},
			RequiredAcks:           kafkaGo.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlaced) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", event.EventType(), err)
	}

	err = p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(event.Reference),
		Value: payload,
		Headers: []kafkaGo.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s for order %s: %w", event.EventType(), event.Reference, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
