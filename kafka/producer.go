package kafka

import (
	"context"
	"encoding/json"

	"canteen-backend/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ProducerAPI abstracts the order event stream so services can be tested
// without a broker.
type ProducerAPI interface {
	SendOrderEvent(evt models.OrderEvent) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	zap.L().Info("Kafka producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &Producer{writer: w, topic: topic}
}

// SendOrderEvent publishes an order event keyed by order ID.
func (p *Producer) SendOrderEvent(evt models.OrderEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(evt.OrderID.String()),
		Value: data,
	}
	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		zap.L().Error("Failed to publish order event",
			zap.String("event", evt.Event),
			zap.String("order_id", evt.OrderID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
