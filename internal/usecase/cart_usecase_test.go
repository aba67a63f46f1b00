package usecase_test

import (
	"context"
	"testing"

	"soko/internal/domain/model"
	repo "soko/internal/repository"
	"soko/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecase() (*usecase.CartUsecase, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, itemRepo, productRepo, &seqIDGen{})
	return uc, cartRepo, itemRepo, productRepo
}

func TestCartUsecase_GetCart_Unauthorized(t *testing.T) {
	uc, _, _, _ := newCartUsecase()

	_, err := uc.GetCart(context.Background(), "")
	assertErrContains(t, err, "unauthorized")
}

func TestCartUsecase_GetCart_EmptyCart(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1", CustomerID: "cust-1", Status: model.CartStatusActive}, nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{}, nil)

	out, err := uc.GetCart(ctx, "cust-1")
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)

	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_NewItem(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	productRepo.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{ID: "p-1", Name: "Sukuma Wiki", Price: 250, Stock: 10}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, "cart-1", "p-1").
		Return(model.CartItem{}, repo.ErrNotFound)
	itemRepo.On("Create", mock.Anything, mock.MatchedBy(func(it model.CartItem) bool {
		return it.CartID == "cart-1" && it.ProductID == "p-1" && it.Quantity == 2
	})).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").
		Return([]model.CartItem{{ID: "ci-1", CartID: "cart-1", ProductID: "p-1", Quantity: 2}}, nil)

	out, err := uc.AddToCart(ctx, "cust-1", usecase.AddCartInput{ProductID: "p-1", Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(500), out.Total)

	itemRepo.AssertExpectations(t)
}

// 同一商品の追加は明細を増やさず数量を加算する
func TestCartUsecase_AddToCart_CollapsesSameProduct(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	productRepo.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{ID: "p-1", Name: "Sukuma Wiki", Price: 250, Stock: 10}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, "cart-1", "p-1").
		Return(model.CartItem{ID: "ci-1", CartID: "cart-1", ProductID: "p-1", Quantity: 1}, nil)
	itemRepo.On("UpdateQuantity", mock.Anything, "ci-1", int64(3)).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").
		Return([]model.CartItem{{ID: "ci-1", CartID: "cart-1", ProductID: "p-1", Quantity: 3}}, nil)

	out, err := uc.AddToCart(ctx, "cust-1", usecase.AddCartInput{ProductID: "p-1", Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(3), out.Items[0].Quantity)

	itemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_StockExceeded(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	productRepo.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{ID: "p-1", Price: 250, Stock: 3}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, "cart-1", "p-1").
		Return(model.CartItem{ID: "ci-1", Quantity: 2}, nil)

	_, err := uc.AddToCart(ctx, "cust-1", usecase.AddCartInput{ProductID: "p-1", Quantity: 2})
	assertErrContains(t, err, "stock exceeded")

	itemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	uc, _, _, _ := newCartUsecase()

	_, err := uc.AddToCart(context.Background(), "cust-1", usecase.AddCartInput{ProductID: "p-1", Quantity: 0})
	assertErrContains(t, err, "invalid quantity")
}

func TestCartUsecase_AddToCart_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	productRepo.On("FindByID", mock.Anything, "ghost").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(ctx, "cust-1", usecase.AddCartInput{ProductID: "ghost", Quantity: 1})
	assertErrContains(t, err, "invalid product")
}

// qty<=0 の上書きは削除として扱う
func TestCartUsecase_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	itemRepo.On("DeleteByCartAndProduct", mock.Anything, "cart-1", "p-1").Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{}, nil)

	out, err := uc.UpdateQuantity(ctx, "cust-1", "p-1", usecase.UpdateCartItemInput{Quantity: 0})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Total)

	itemRepo.AssertExpectations(t)
}

// 存在しない明細の数量変更はno-op
func TestCartUsecase_UpdateQuantity_MissingLineIsNoop(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, "cart-1", "p-1").
		Return(model.CartItem{}, repo.ErrNotFound)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{}, nil)

	_, err := uc.UpdateQuantity(ctx, "cust-1", "p-1", usecase.UpdateCartItemInput{Quantity: 3})
	assert.NoError(t, err)

	itemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateQuantity_StockExceeded(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, "cart-1", "p-1").
		Return(model.CartItem{ID: "ci-1", Quantity: 1}, nil)
	productRepo.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{ID: "p-1", Stock: 5}, nil)

	_, err := uc.UpdateQuantity(ctx, "cust-1", "p-1", usecase.UpdateCartItemInput{Quantity: 6})
	assertErrContains(t, err, "stock exceeded")
}

// 無い商品の削除もno-op（エラーにしない）
func TestCartUsecase_RemoveItem_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	itemRepo.On("DeleteByCartAndProduct", mock.Anything, "cart-1", "ghost").Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{}, nil)

	_, err := uc.RemoveItem(ctx, "cust-1", "ghost")
	assert.NoError(t, err)
}

func TestCartUsecase_ClearCart(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	cartRepo.On("Clear", mock.Anything, "cart-1").Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{}, nil)

	out, err := uc.ClearCart(ctx, "cust-1")
	assert.NoError(t, err)
	assert.Empty(t, out.Items)

	cartRepo.AssertExpectations(t)
}

// 合計はカタログの現在価格から毎回再計算する
func TestCartUsecase_Total_FollowsCurrentPrice(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").
		Return([]model.CartItem{{ID: "ci-1", ProductID: "p-1", Quantity: 2}}, nil)

	productRepo.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{ID: "p-1", Price: 100, Stock: 10}, nil).Once()
	productRepo.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{ID: "p-1", Price: 150, Stock: 10}, nil)

	out, err := uc.GetCart(ctx, "cust-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(200), out.Total)

	//値上げ後に取り直すと合計も変わる
	out, err = uc.GetCart(ctx, "cust-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(300), out.Total)
}

// カタログから消えた商品は明細から除外する
func TestCartUsecase_DeletedProductSkipped(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, "cust-1", mock.Anything).
		Return(model.Cart{ID: "cart-1"}, nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").
		Return([]model.CartItem{
			{ID: "ci-1", ProductID: "p-1", Quantity: 1},
			{ID: "ci-2", ProductID: "gone", Quantity: 5},
		}, nil)
	productRepo.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{ID: "p-1", Price: 400, Stock: 10}, nil)
	productRepo.On("FindByID", mock.Anything, "gone").
		Return(model.Product{}, repo.ErrNotFound)

	out, err := uc.GetCart(ctx, "cust-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(400), out.Total)
}
