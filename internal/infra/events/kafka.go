package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"soko/internal/domain/model"

	"github.com/segmentio/kafka-go"
)

const (
	TopicOrderCreated       = "order-created"
	TopicOrderStatusUpdated = "order-status-updated"
)

type KafkaPublisher struct {
	createdWriter *kafka.Writer
	statusWriter  *kafka.Writer
}

// NewKafkaPublisher はトピックごとのwriterを用意する。
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		createdWriter: newWriter(brokers, TopicOrderCreated),
		statusWriter:  newWriter(brokers, TopicOrderStatusUpdated),
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
}

type orderCreatedEvent struct {
	OrderID     string `json:"order_id"`
	CustomerID  string `json:"customer_id"`
	SellerID    string `json:"seller_id"`
	TotalAmount int64  `json:"total_amount"`
	CreatedAt   string `json:"created_at"`
}

type orderStatusEvent struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, o model.Order) {
	ev := orderCreatedEvent{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		SellerID:    o.SellerID,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}
	p.write(ctx, p.createdWriter, o.ID, ev)
}

func (p *KafkaPublisher) OrderStatusUpdated(ctx context.Context, orderID string, from model.OrderStatus, to model.OrderStatus) {
	ev := orderStatusEvent{OrderID: orderID, From: string(from), To: string(to)}
	p.write(ctx, p.statusWriter, orderID, ev)
}

// 同一注文は同一パーティションに乗せる（keyにorder id）。
func (p *KafkaPublisher) write(ctx context.Context, w *kafka.Writer, key string, v interface{}) {
	value, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to marshal event: %v", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		log.Printf("failed to write message to kafka: %v", err)
	}
}

func (p *KafkaPublisher) Close() error {
	if err := p.createdWriter.Close(); err != nil {
		return err
	}
	return p.statusWriter.Close()
}
