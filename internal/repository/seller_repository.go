package repository

import (
	"context"

	"soko/internal/domain/model"
)

type SellerRepository interface {
	List(ctx context.Context) ([]model.Seller, error)
	FindByID(ctx context.Context, id string) (model.Seller, error)
	Create(ctx context.Context, s model.Seller) error
	UpdateSubscriptionTier(ctx context.Context, id string, tier model.SubscriptionTier) error
}
