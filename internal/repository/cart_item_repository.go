package repository

import (
	"context"

	"soko/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	FindByCartAndProduct(ctx context.Context, cartID string, productID string) (model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) error
	UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error
	DeleteByCartAndProduct(ctx context.Context, cartID string, productID string) error
}
