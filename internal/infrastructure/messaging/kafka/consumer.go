package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/config"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

// ReaderInterface abstracts kafka.Reader for testing.
type ReaderInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// GeneratedHandler receives decoded generation events. Returning an error
// stops the consumer without committing the message.
type GeneratedHandler func(ctx context.Context, evt *molgen.GeneratedEvent) error

// Consumer reads generation events as part of a consumer group.
type Consumer struct {
	reader     ReaderInterface
	logger     logging.Logger
	retryDelay time.Duration
}

// NewConsumer joins groupID on cfg.Topic starting from the oldest offset.
func NewConsumer(cfg config.KafkaConfig, groupID string, log logging.Logger) (*Consumer, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, errors.InvalidParam("kafka consumer group required")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     groupID,
		Topic:       cfg.Topic,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafka.FirstOffset,
	})
	return newConsumer(reader, log), nil
}

func newConsumer(r ReaderInterface, log logging.Logger) *Consumer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Consumer{reader: r, logger: log.Named("kafka_consumer"), retryDelay: time.Second}
}

// Run fetches until ctx is cancelled, which returns nil. Records that are not
// generation events, or cannot be decoded, are committed and skipped.
func (c *Consumer) Run(ctx context.Context, handle GeneratedHandler) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("FetchMessage failed", logging.Err(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.retryDelay):
			}
			continue
		}

		evt, ok := c.decode(m)
		if ok {
			if err := handle(ctx, evt); err != nil {
				return err
			}
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			c.logger.Warn("CommitMessages failed", logging.Int64("offset", m.Offset), logging.Err(err))
		}
	}
}

func (c *Consumer) decode(m kafka.Message) (*molgen.GeneratedEvent, bool) {
	for _, h := range m.Headers {
		if h.Key == HeaderEventType && string(h.Value) != molgen.EventTypeGenerated {
			return nil, false
		}
	}
	env, err := decodeEnvelope(m.Value)
	if err != nil || env.EventType != molgen.EventTypeGenerated {
		c.logger.Warn("Skipping unrecognised record", logging.Int64("offset", m.Offset), logging.Err(err))
		return nil, false
	}
	var evt molgen.GeneratedEvent
	if err := env.DecodePayload(&evt); err != nil {
		c.logger.Warn("Skipping undecodable event", logging.String("event_id", env.EventID), logging.Err(err))
		return nil, false
	}
	return &evt, true
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

//Personal.AI order the ending
