package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// OrderCreatedEvent is consumed by the notification collaborator.
type OrderCreatedEvent struct {
	EventID       string    `json:"event_id"`
	OrderID       uint      `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

// Publisher emits domain events. Dispatch is best effort: a failed publish
// is logged and counted but never fails the operation that raised it.
type Publisher interface {
	OrderCreated(order *models.Order)
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &kafkaPublisher{writer: writer, log: log}
}

func (p *kafkaPublisher) OrderCreated(order *models.Order) {
	event := OrderCreatedEvent{
		EventID:       uuid.NewString(),
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Total:         order.Total,
		CreatedAt:     order.CreatedAt,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		payload, err := json.Marshal(event)
		if err != nil {
			p.log.Warn("order created event dropped", zap.Uint("order_id", event.OrderID), zap.Error(err))
			metrics.EventsDropped.Inc()
			return
		}
		msg := kafka.Message{
			Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
			Value: payload,
		}
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.log.Warn("order created event dropped", zap.Uint("order_id", event.OrderID), zap.Error(err))
			metrics.EventsDropped.Inc()
		}
	}()
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) OrderCreated(*models.Order) {}
func (noopPublisher) Close() error               { return nil }
