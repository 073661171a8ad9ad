package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ErrPublisherFull = errors.New("event buffer full")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues envelopes and writes them to a topic from a background loop,
// keyed by correlation id so one order's events stay in partition order.
type KafkaPublisher struct {
	w      messageWriter
	inbox  chan kafka.Message
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, buf int, logger *zap.Logger) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}, buf, logger)
}

func newKafkaPublisher(w messageWriter, buf int, logger *zap.Logger) *KafkaPublisher {
	p := &KafkaPublisher{
		w:      w,
		inbox:  make(chan kafka.Message, buf),
		done:   make(chan struct{}),
		logger: logger,
	}
	go p.run()
	return p
}

func (p *KafkaPublisher) run() {
	defer close(p.done)
	for m := range p.inbox {
		if err := p.w.WriteMessages(context.Background(), m); err != nil {
			p.logger.Error("Failed to write event to kafka",
				zap.Error(err),
				zap.ByteString("key", m.Key),
			)
		}
	}
	if err := p.w.Close(); err != nil {
		p.logger.Warn("Failed to close kafka writer", zap.Error(err))
	}
}

// Publish enqueues without blocking the request path
func (p *KafkaPublisher) Publish(ctx context.Context, env Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(env.CorrelationID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
			{Key: "event_id", Value: []byte(env.EventID)},
		},
	}

	select {
	case p.inbox <- msg:
		return nil
	default:
		return ErrPublisherFull
	}
}

// Close flushes queued events and waits for the writer to shut down.
// Publish must not be called after Close.
func (p *KafkaPublisher) Close() error {
	p.once.Do(func() { close(p.inbox) })
	<-p.done
	return nil
}
