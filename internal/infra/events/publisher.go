package events

import (
	"context"

	"soko/internal/domain/model"
)

// Publisher は注文イベントの送信を約束する。
// 送信失敗は呼び出し側の業務を止めない（ログのみ）。
type Publisher interface {
	OrderCreated(ctx context.Context, o model.Order)
	OrderStatusUpdated(ctx context.Context, orderID string, from model.OrderStatus, to model.OrderStatus)
	Close() error
}

// NoopPublisher はブローカー未設定時の実装。
type NoopPublisher struct{}

func (NoopPublisher) OrderCreated(ctx context.Context, o model.Order) {}
func (NoopPublisher) OrderStatusUpdated(ctx context.Context, orderID string, from model.OrderStatus, to model.OrderStatus) {
}
func (NoopPublisher) Close() error { return nil }
