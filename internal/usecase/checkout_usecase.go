package usecase

import (
	"context"
	"net/http"
	"strings"

	"soko/internal/domain/model"
	"soko/internal/infra/events"
	repo "soko/internal/repository"
)

// CheckoutUsecase はカートを支払い済みの注文に変える。
type CheckoutUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	simulator    PaymentSimulator
	publisher    events.Publisher
	idGen        IDGenerator
	clock        Clock

	shippingRate   int64
	taxRatePercent int64
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	simulator PaymentSimulator,
	publisher events.Publisher,
	idGen IDGenerator,
	clock Clock,
	shippingRate int64,
	taxRatePercent int64,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:             tx,
		cartRepo:       cartRepo,
		cartItemRepo:   cartItemRepo,
		simulator:      simulator,
		publisher:      publisher,
		idGen:          idGen,
		clock:          clock,
		shippingRate:   shippingRate,
		taxRatePercent: taxRatePercent,
	}
}

type ShippingInfo struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	County     string
	PostalCode string
}

type CheckoutInput struct {
	Shipping      ShippingInfo
	PaymentMethod string
	MpesaPhone    string
	Card          CardDetails
}

// Checkout は検証→決済シミュレーション→注文作成（トランザクション）の順。
// 検証で落ちたら状態は一切変わらない。
func (u *CheckoutUsecase) Checkout(ctx context.Context, customerID string, in CheckoutInput) (OrderOutput, error) {
	if customerID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := validateShipping(in.Shipping); err != nil {
		return OrderOutput{}, err
	}

	//空カートは注文に進ませない（エラーではなくガード）
	cart, err := u.cartRepo.FindActiveByCustomerID(ctx, customerID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	cartItems, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(cartItems) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	//決済方法ごとの入力検証＋シミュレーション
	var method model.PaymentMethod
	switch in.PaymentMethod {
	case string(model.PaymentMethodMpesa):
		if !ValidMpesaPhone(in.MpesaPhone) {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid m-pesa phone number")
		}
		if err := u.simulator.ProcessMpesa(ctx); err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusBadGateway, "payment failed")
		}
		method = model.PaymentMethodMpesa
	case string(model.PaymentMethodCard):
		if err := ValidateCardDetails(in.Card); err != nil {
			return OrderOutput{}, err
		}
		if err := u.simulator.ProcessCard(ctx); err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusBadGateway, "payment failed")
		}
		method = model.PaymentMethodCard
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	var out OrderOutput
	var created model.Order

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//明細はtx内で取り直す
		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		now := u.clock.Now()
		orderID := u.idGen.NewID()

		orderItems := make([]model.OrderItem, 0, len(items))
		var subtotal int64 = 0
		sellerID := ""

		for _, ci := range items {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid product in cart")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Products().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "out of stock")
			}

			//スナップショット（この時点の商品名と価格）
			orderItems = append(orderItems, model.OrderItem{
				ID:                  u.idGen.NewID(),
				OrderID:             orderID,
				ProductID:           ci.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            ci.Quantity,
				CreatedAt:           now,
			})

			subtotal += p.Price * ci.Quantity

			// 全明細が同一出品者である前提を引き継ぐ
			if sellerID == "" {
				sellerID = p.SellerID
			}
		}

		tax := subtotal * u.taxRatePercent / 100
		total := subtotal + u.shippingRate + tax

		created = model.Order{
			ID:             orderID,
			CustomerID:     customerID,
			CustomerName:   in.Shipping.Name,
			CustomerEmail:  in.Shipping.Email,
			CustomerPhone:  in.Shipping.Phone,
			ShipAddress:    in.Shipping.Address,
			ShipCity:       in.Shipping.City,
			ShipCounty:     in.Shipping.County,
			ShipPostalCode: in.Shipping.PostalCode,
			Subtotal:       subtotal,
			ShippingFee:    u.shippingRate,
			Tax:            tax,
			TotalAmount:    total,
			Status:         model.OrderStatusPending,
			PaymentMethod:  method,
			PaymentStatus:  model.PaymentStatusCompleted,
			TransactionID:  "TXN-" + u.idGen.NewID(),
			SellerID:       sellerID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := r.Orders().Create(ctx, created); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderItems().CreateBulk(ctx, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートをCHECKED_OUTにして明細をクリア
		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusCheckedOut); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.publisher.OrderCreated(ctx, created)

	return out, nil
}

func validateShipping(s ShippingInfo) error {
	missing := []string{}
	if strings.TrimSpace(s.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(s.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(s.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(s.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(s.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(s.County) == "" {
		missing = append(missing, "county")
	}
	if strings.TrimSpace(s.PostalCode) == "" {
		missing = append(missing, "postal_code")
	}
	if len(missing) > 0 {
		return NewHTTPError(http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}
