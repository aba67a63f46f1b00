package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodMpesa PaymentMethod = "mpesa"
	PaymentMethodCard  PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// 注文。totalAmount は作成時に確定し以後変更しない。
// 配送先は注文時点の入力をそのまま埋め込む（住所マスタ参照にしない）。
type Order struct {
	ID             string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	CustomerID     string        `gorm:"type:varchar(36);not null;index" json:"customer_id"`
	CustomerName   string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail  string        `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone  string        `gorm:"type:varchar(32);not null" json:"customer_phone"`
	ShipAddress    string        `gorm:"type:varchar(255);not null" json:"ship_address"`
	ShipCity       string        `gorm:"type:varchar(100);not null" json:"ship_city"`
	ShipCounty     string        `gorm:"type:varchar(100);not null" json:"ship_county"`
	ShipPostalCode string        `gorm:"type:varchar(20);not null" json:"ship_postal_code"`
	Subtotal       int64         `gorm:"not null" json:"subtotal"`
	ShippingFee    int64         `gorm:"not null" json:"shipping_fee"`
	Tax            int64         `gorm:"not null" json:"tax"`
	TotalAmount    int64         `gorm:"not null" json:"total_amount"`
	Status         OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus  PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`
	TransactionID  string        `gorm:"type:varchar(64);not null" json:"transaction_id"`
	SellerID       string        `gorm:"type:varchar(36);not null;index" json:"seller_id"`
	CreatedAt      time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

// IsTerminal は delivered / cancelled を終端扱いにする。
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition は前進のみ＋キャンセルの遷移グラフを判定する。
// pending → processing → shipped → delivered、cancelled は非終端から常に可。
// 同一ステータスへの遷移は呼び出し側で no-op にする。
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return to == OrderStatusProcessing
	case OrderStatusProcessing:
		return to == OrderStatusShipped
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}
