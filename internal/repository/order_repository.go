package repository

import (
	"context"

	"soko/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, o model.Order) error
	FindByID(ctx context.Context, id string) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]model.Order, error)
	ListBySellerID(ctx context.Context, sellerID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}
