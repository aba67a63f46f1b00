package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"soko/internal/domain/model"
	repo "soko/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks（このパッケージの全テストで共用）
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) CountBySellerID(ctx context.Context, sellerID string) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) IncreaseStock(ctx context.Context, productID string, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateActiveByCustomerID(ctx context.Context, customerID string, newID string) (model.Cart, error) {
	args := m.Called(ctx, customerID, newID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindActiveByCustomerID(ctx context.Context, customerID string) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) UpdateStatus(ctx context.Context, cartID string, status model.CartStatus) error {
	args := m.Called(ctx, cartID, status)
	return args.Error(0)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndProduct(ctx context.Context, cartID string, productID string) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) Create(ctx context.Context, item model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartAndProduct(ctx context.Context, cartID string, productID string) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, o model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, id string) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID string) ([]model.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListBySellerID(ctx context.Context, sellerID string) ([]model.Order, error) {
	args := m.Called(ctx, sellerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, items []model.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

type SellerRepoMock struct{ mock.Mock }

func (m *SellerRepoMock) List(ctx context.Context) ([]model.Seller, error) {
	args := m.Called(ctx)
	sellers, _ := args.Get(0).([]model.Seller)
	return sellers, args.Error(1)
}

func (m *SellerRepoMock) FindByID(ctx context.Context, id string) (model.Seller, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Seller)
	return s, args.Error(1)
}

func (m *SellerRepoMock) Create(ctx context.Context, s model.Seller) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SellerRepoMock) UpdateSubscriptionTier(ctx context.Context, id string, tier model.SubscriptionTier) error {
	args := m.Called(ctx, id, tier)
	return args.Error(0)
}

// =====================
// TxManager / TxRepos（unitテストではTxを素通しにする）
// =====================

type TxReposStub struct {
	products   repo.ProductRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	sellers    repo.SellerRepository
}

func (r *TxReposStub) Products() repo.ProductRepository     { return r.products }
func (r *TxReposStub) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposStub) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposStub) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposStub) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposStub) Sellers() repo.SellerRepository       { return r.sellers }

type TxManagerStub struct {
	Repos repo.TxRepos
}

func (m *TxManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

// =====================
// Publisher / IDGenerator / Clock
// =====================

// PublisherSpy は呼ばれた事実だけ記録する。
type PublisherSpy struct {
	Created       []model.Order
	StatusUpdates []string
}

func (p *PublisherSpy) OrderCreated(ctx context.Context, o model.Order) {
	p.Created = append(p.Created, o)
}

func (p *PublisherSpy) OrderStatusUpdated(ctx context.Context, orderID string, from model.OrderStatus, to model.OrderStatus) {
	p.StatusUpdates = append(p.StatusUpdates, fmt.Sprintf("%s:%s->%s", orderID, from, to))
}

func (p *PublisherSpy) Close() error { return nil }

// seqIDGen は連番ID（id-1, id-2, ...）を返す。
type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
