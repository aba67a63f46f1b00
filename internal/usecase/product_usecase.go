package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"soko/internal/domain/model"
	repo "soko/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	sellerRepo  repo.SellerRepository
	idGen       IDGenerator
	clock       Clock
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	sellerRepo repo.SellerRepository,
	idGen IDGenerator,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		sellerRepo:  sellerRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

type ListProductsInput struct {
	Category string
	SellerID string
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if in.Category != "" {
		if _, ok := model.ParseCategory(in.Category); !ok {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid category")
		}
	}

	items, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Category: in.Category,
		SellerID: in.SellerID,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type ProductInput struct {
	Name           string
	Description    string
	Price          int64
	Category       string
	Stock          int64
	DeliveryOption string
	Image          string // 空ならプレースホルダ（作成時）／既存維持（更新時）
}

func validateProductInput(in ProductInput) (model.ProductCategory, model.DeliveryOption, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", "", NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price <= 0 {
		return "", "", NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.Stock < 0 {
		return "", "", NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	category, ok := model.ParseCategory(in.Category)
	if !ok {
		return "", "", NewHTTPError(http.StatusBadRequest, "invalid category")
	}
	delivery, ok := model.ParseDeliveryOption(in.DeliveryOption)
	if !ok {
		return "", "", NewHTTPError(http.StatusBadRequest, "invalid delivery option")
	}
	return category, delivery, nil
}

// CreateProduct は出品。プランの商品数上限に達していたら403で案内する。
func (u *ProductUsecase) CreateProduct(ctx context.Context, sellerID string, in ProductInput) (model.Product, error) {
	if sellerID == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	category, delivery, err := validateProductInput(in)
	if err != nil {
		return model.Product{}, err
	}

	seller, err := u.sellerRepo.FindByID(ctx, sellerID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "seller not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	count, err := u.productRepo.CountBySellerID(ctx, sellerID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !seller.SubscriptionTier.CanCreateProduct(count) {
		return model.Product{}, NewHTTPError(http.StatusForbidden,
			fmt.Sprintf("product limit (%d) reached for %s plan, upgrade your subscription to add more products",
				seller.SubscriptionTier.ProductLimit(), seller.SubscriptionTier))
	}

	image := in.Image
	if image == "" {
		image = model.DefaultImage
	}

	now := u.clock.Now()
	p := model.Product{
		ID:             u.idGen.NewID(),
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Price:          in.Price,
		Image:          image,
		Category:       category,
		Stock:          in.Stock,
		DeliveryOption: delivery,
		SellerID:       sellerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.productRepo.Create(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// UpdateProduct は更新。id と sellerId は変更不可。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, sellerID string, productID string, in ProductInput) (model.Product, error) {
	if sellerID == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	category, delivery, err := validateProductInput(in)
	if err != nil {
		return model.Product{}, err
	}

	existing, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//他の出品者の商品は「存在しない扱い」
	if existing.SellerID != sellerID {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}

	image := existing.Image
	if in.Image != "" {
		image = in.Image
	}

	updated := model.Product{
		ID:             existing.ID,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Price:          in.Price,
		Image:          image,
		Category:       category,
		Stock:          in.Stock,
		DeliveryOption: delivery,
		SellerID:       existing.SellerID,
		CreatedAt:      existing.CreatedAt,
		UpdatedAt:      u.clock.Now(),
	}
	if err := u.productRepo.Update(ctx, updated); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return updated, nil
}

// DeleteProduct は削除。既存注文のスナップショットには影響しない。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, sellerID string, productID string) error {
	if sellerID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	existing, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing.SellerID != sellerID {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
