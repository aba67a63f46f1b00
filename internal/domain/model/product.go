package model

import "time"

type ProductCategory string

const (
	CategoryGroceries ProductCategory = "groceries"
	CategoryHandmade  ProductCategory = "handmade"
	CategoryFarm      ProductCategory = "farm"
)

type DeliveryOption string

const (
	DeliveryOnly     DeliveryOption = "delivery"
	PickupOnly       DeliveryOption = "pickup"
	DeliveryOrPickup DeliveryOption = "both"
)

// DefaultImage は画像未アップロード時のプレースホルダ。
const DefaultImage = "/placeholder.svg"

// 価格はKES（シリング単位のint64）
type Product struct {
	ID             string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          int64           `gorm:"not null" json:"price"`
	Image          string          `gorm:"type:varchar(512);not null" json:"image"`
	Category       ProductCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Stock          int64           `gorm:"not null" json:"stock"`
	DeliveryOption DeliveryOption  `gorm:"type:varchar(20);not null" json:"deliveryOption"`
	SellerID       string          `gorm:"type:varchar(36);not null;index" json:"sellerId"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func ParseCategory(s string) (ProductCategory, bool) {
	switch ProductCategory(s) {
	case CategoryGroceries, CategoryHandmade, CategoryFarm:
		return ProductCategory(s), true
	default:
		return "", false
	}
}

func ParseDeliveryOption(s string) (DeliveryOption, bool) {
	switch DeliveryOption(s) {
	case DeliveryOnly, PickupOnly, DeliveryOrPickup:
		return DeliveryOption(s), true
	default:
		return "", false
	}
}

// ストア境界のデコード。
// 外部ストアの緩い行が来ても未知値は既定値へ落とす（groceries / both）。
func NormalizeCategory(c ProductCategory) ProductCategory {
	if _, ok := ParseCategory(string(c)); ok {
		return c
	}
	return CategoryGroceries
}

func NormalizeDeliveryOption(d DeliveryOption) DeliveryOption {
	if _, ok := ParseDeliveryOption(string(d)); ok {
		return d
	}
	return DeliveryOrPickup
}
