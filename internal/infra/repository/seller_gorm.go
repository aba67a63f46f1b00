package repository

import (
	"context"
	"errors"
	"time"

	"soko/internal/domain/model"
	repo "soko/internal/repository"

	"gorm.io/gorm"
)

type SellerGormRepository struct {
	db *gorm.DB
}

// DI
func NewSellerGormRepository(db *gorm.DB) *SellerGormRepository {
	return &SellerGormRepository{db: db}
}

func (r *SellerGormRepository) List(ctx context.Context) ([]model.Seller, error) {
	var sellers []model.Seller
	err := r.db.WithContext(ctx).Order("name asc").Find(&sellers).Error
	if err != nil {
		return []model.Seller{}, err
	}
	return sellers, nil
}

func (r *SellerGormRepository) FindByID(ctx context.Context, id string) (model.Seller, error) {
	var s model.Seller
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Seller{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Seller{}, err
	}
	return s, nil
}

func (r *SellerGormRepository) Create(ctx context.Context, s model.Seller) error {
	return r.db.WithContext(ctx).Create(&s).Error
}

func (r *SellerGormRepository) UpdateSubscriptionTier(ctx context.Context, id string, tier model.SubscriptionTier) error {
	res := r.db.WithContext(ctx).Model(&model.Seller{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"subscription_tier": tier,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
