// Package kafka publishes order lifecycle events to the message stream.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"smarket/config"
	"smarket/internal/domain/service"
	"smarket/internal/errors"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

const defaultQueueSize = 256

// Envelope wraps every event on the order stream with routing metadata so
// consumers can dispatch on type and version without decoding the payload.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// publisher implements service.EventPublisher on a buffered channel in front
// of a kafka-go writer. Publish never blocks on the broker: the write loop
// drains the queue in the background and the queue is flushed on shutdown.
type publisher struct {
	writer   *kafka.Writer
	logger   *slog.Logger
	producer string
	inbox    chan kafka.Message
	done     chan struct{}
}

// NewPublisher is the constructor for the Kafka event publisher.
func NewPublisher(params Params) (service.EventPublisher, error) {
	if params.Config.Kafka == nil || len(params.Config.Kafka.Brokers) == 0 {
		return nil, errors.New("kafka configuration is missing")
	}

	queueSize := params.Config.Kafka.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	pub := &publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(params.Config.Kafka.Brokers...),
			Topic:        params.Config.Kafka.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: params.Config.Kafka.BatchTimeout,
		},
		logger:   params.Logger,
		producer: params.Config.Env.ServiceName,
		inbox:    make(chan kafka.Message, queueSize),
		done:     make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go pub.run()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			close(pub.inbox)
			select {
			case <-pub.done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})

	return pub, nil
}

// Publish enqueues an event for asynchronous delivery. A full queue drops the
// event with a warning instead of stalling the business operation.
func (p *publisher) Publish(ctx context.Context, eventType string, key uuid.UUID, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event payload")
	}

	envelope := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     p.producer,
		Payload:      body,
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event envelope")
	}

	message := kafka.Message{
		Key:   []byte(key.String()),
		Value: value,
		Time:  envelope.OccurredAt,
	}

	select {
	case p.inbox <- message:
		return nil
	default:
		p.logger.LogAttrs(ctx, slog.LevelWarn, "event queue full, dropping event",
			slog.String("eventType", eventType),
			slog.String("key", key.String()),
		)

		return nil
	}
}

// run drains the queue until the inbox closes, then flushes and closes the writer.
func (p *publisher) run() {
	defer close(p.done)

	for message := range p.inbox {
		if err := p.writer.WriteMessages(context.Background(), message); err != nil {
			p.logger.LogAttrs(context.Background(), slog.LevelError, "failed to write event",
				slog.String("key", string(message.Key)),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := p.writer.Close(); err != nil {
		p.logger.LogAttrs(context.Background(), slog.LevelError, "failed to close kafka writer",
			slog.String("error", err.Error()),
		)
	}
}
