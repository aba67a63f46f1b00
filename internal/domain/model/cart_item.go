package model

import "time"

// カートの明細。
// 価格はここでは持たない。スナップショットは注文確定時に取る。
type CartItem struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CartID    string    `gorm:"type:varchar(36);not null;index" json:"cart_id"`
	ProductID string    `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
