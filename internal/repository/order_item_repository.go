package repository

import (
	"context"

	"soko/internal/domain/model"
)

type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	CreateBulk(ctx context.Context, items []model.OrderItem) error
}
