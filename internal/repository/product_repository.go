package repository

import (
	"context"
	"errors"

	"soko/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Category string
	SellerID string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	CountBySellerID(ctx context.Context, sellerID string) (int64, error)

	Create(ctx context.Context, p model.Product) error
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error

	// 在庫の増減。Decreaseは足りなければfalse。
	DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error)
	IncreaseStock(ctx context.Context, productID string, qty int64) error
}
