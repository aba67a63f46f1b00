package repository

import (
	"context"

	"soko/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateActiveByCustomerID(ctx context.Context, customerID string, newID string) (model.Cart, error)
	FindActiveByCustomerID(ctx context.Context, customerID string) (model.Cart, error)
	UpdateStatus(ctx context.Context, cartID string, status model.CartStatus) error
	// 明細を全部消す
	Clear(ctx context.Context, cartID string) error
}
