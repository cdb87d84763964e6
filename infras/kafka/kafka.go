package kafka

import (
	"context"
	"studio/config"
	"studio/shared/event"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type Client interface {
	Consume(ctx context.Context, consumerGroup, topic string, handler func(message kafkaGo.Message))
	Reader(consumerGroup, topic string) *kafkaGo.Reader
	Connected() bool
}

type kafkaClientImpl struct {
	config    *config.Config
	dialer    *kafkaGo.Dialer
	connected atomic.Bool
}

func New(config *config.Config) Client {
	dialer := &kafkaGo.Dialer{
		DualStack: true,
	}

	if config.Kafka.SASL.Username != "" {
		dialer.SASLMechanism = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: config,
		dialer: dialer,
	}
}

func (k *kafkaClientImpl) Reader(consumerGroup, topic string) *kafkaGo.Reader {
	if topic == "" {
		log.Error().Msg("Topic name cannot be empty when creating Kafka reader")

		return nil
	}

	groupID := k.config.Kafka.ConsumerGroup
	if consumerGroup != "" {
		groupID = consumerGroup
	}

	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.LastOffset,
	})
}

// Consume reads the topic until ctx is done. Messages are handed to handler one at a
// time so the gallery sees them in partition order.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler func(message kafkaGo.Message)) {
	reader := k.Reader(consumerGroup, topic)
	if reader == nil {
		log.Error().Msg("Failed to create Kafka reader")

		return
	}

	k.connected.Store(k.reachable(ctx))
	defer k.connected.Store(false)

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka reader.")
		}
	}()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("Consumer context done.")

				return
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to read message from Kafka.")
			k.connected.Store(false)

			continue
		}

		k.connected.Store(true)

		log.Debug().Str("topic", topic).Str("key", string(msg.Key)).Msg("Received message from Kafka.")

		handler(msg)
	}
}

// Connected reports whether a broker answered the last dial or read.
func (k *kafkaClientImpl) Connected() bool {
	return k.connected.Load()
}

func (k *kafkaClientImpl) reachable(ctx context.Context) bool {
	for _, broker := range k.config.Kafka.Brokers {
		conn, err := k.dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			log.Warn().Err(err).Str("broker", broker).Msg("Kafka broker unreachable.")

			continue
		}

		_ = conn.Close()

		return true
	}

	return false
}

type source struct {
	client Client
	group  string
	topic  string
}

// NewSource exposes the configured topic as a live event source. The message key is the
// event name and the value is its JSON payload.
func NewSource(config *config.Config, client Client) event.Source {
	return &source{
		client: client,
		group:  config.Kafka.ConsumerGroup,
		topic:  config.Kafka.Topic,
	}
}

func (s *source) Run(ctx context.Context, handler event.Handler) error {
	s.client.Consume(ctx, s.group, s.topic, func(message kafkaGo.Message) {
		handler(ctx, ToEvent(message))
	})

	return nil
}

func (s *source) Connected() bool {
	return s.client.Connected()
}

// ToEvent maps a Kafka message onto an event.
func ToEvent(message kafkaGo.Message) event.Event {
	return event.Event{
		Name:    string(message.Key),
		Payload: message.Value,
	}
}
