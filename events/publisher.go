// Package events publishes marketplace events to Kafka once a checkout has
// been committed.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/segmentio/kafka-go"
)

const (
	TopicOrderPlaced      = "farmlink.order.placed"
	TopicSaleNotification = "farmlink.sale.notification"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Close() error
}

type OrderPlaced struct {
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	TotalAmount float64   `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	FarmerIDs   []string  `json:"farmerIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewOrderPlaced(order models.Order, notifications []models.SaleNotification) OrderPlaced {
	event := OrderPlaced{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}
	for _, n := range notifications {
		event.FarmerIDs = append(event.FarmerIDs, n.FarmerID)
	}
	return event
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		BatchTimeout:           10 * time.Millisecond,
	}
	slog.Info("Kafka producer created", "brokers", brokers)
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{Topic: topic, Key: []byte(key), Value: data})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string, any) error { return nil }

func (NoopPublisher) Close() error { return nil }
