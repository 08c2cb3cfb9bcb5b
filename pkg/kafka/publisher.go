package kafka

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Astemirdum/hotel-reservation/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
	Close() error
}

type publisher struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
	topic    string
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, cb circuit_breaker.CircuitBreaker, topic string, log *zap.Logger) Publisher {
	if topic == "" {
		topic = ReservationTopic
	}
	return &publisher{
		producer: producer,
		cb:       cb,
		topic:    topic,
		log:      log.Named("publisher"),
	}
}

// Publish sends the event keyed by room so that events of one room stay ordered.
func (p *publisher) Publish(_ context.Context, event ReservationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "json.Marshal")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.Itoa(event.RoomID)),
		Value: sarama.ByteEncoder(data),
	}
	return p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return errors.Wrap(err, "producer.SendMessage")
		}
		p.log.Debug("event sent",
			zap.String("type", string(event.Type)),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
}

func (p *publisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// NewNopPublisher is used when no brokers are configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, ReservationEvent) error { return nil }

func (nopPublisher) Close() error { return nil }
