package usecase

import (
	"context"
	"net/http"

	"soko/internal/domain/model"
	repo "soko/internal/repository"
)

// SellerUsecase は出品者ディレクトリとサブスクリプション。
type SellerUsecase struct {
	sellerRepo  repo.SellerRepository
	productRepo repo.ProductRepository
}

func NewSellerUsecase(sellerRepo repo.SellerRepository, productRepo repo.ProductRepository) *SellerUsecase {
	return &SellerUsecase{sellerRepo: sellerRepo, productRepo: productRepo}
}

func (u *SellerUsecase) ListSellers(ctx context.Context) ([]model.Seller, error) {
	sellers, err := u.sellerRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return sellers, nil
}

func (u *SellerUsecase) GetSeller(ctx context.Context, sellerID string) (model.Seller, error) {
	if sellerID == "" {
		return model.Seller{}, NewHTTPError(http.StatusBadRequest, "invalid seller id")
	}

	s, err := u.sellerRepo.FindByID(ctx, sellerID)
	if err == repo.ErrNotFound {
		return model.Seller{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Seller{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

// ListPlans は静的なプラン表。
func (u *SellerUsecase) ListPlans() []model.TierPlan {
	return model.AllTierPlans()
}

// UpdateSubscription はプラン変更。
// 現在の商品数より低い上限への変更も許す（上限は新規作成だけを縛る）。
func (u *SellerUsecase) UpdateSubscription(ctx context.Context, sellerID string, tier string) (model.Seller, error) {
	if sellerID == "" {
		return model.Seller{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	t, ok := model.ParseSubscriptionTier(tier)
	if !ok {
		return model.Seller{}, NewHTTPError(http.StatusBadRequest, "invalid tier")
	}

	if err := u.sellerRepo.UpdateSubscriptionTier(ctx, sellerID, t); err != nil {
		if err == repo.ErrNotFound {
			return model.Seller{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Seller{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s, err := u.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return model.Seller{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

// ダッシュボードの機能ゲーティング用サマリ
type SellerSummary struct {
	Seller       model.Seller   `json:"seller"`
	Plan         model.TierPlan `json:"plan"`
	ProductCount int64          `json:"product_count"`
}

func (u *SellerUsecase) GetSummary(ctx context.Context, sellerID string) (SellerSummary, error) {
	if sellerID == "" {
		return SellerSummary{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s, err := u.sellerRepo.FindByID(ctx, sellerID)
	if err == repo.ErrNotFound {
		return SellerSummary{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return SellerSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	count, err := u.productRepo.CountBySellerID(ctx, sellerID)
	if err != nil {
		return SellerSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SellerSummary{
		Seller:       s,
		Plan:         s.SubscriptionTier.Plan(),
		ProductCount: count,
	}, nil
}
