package model

import "time"

type CartStatus string

const (
	CartStatusActive     CartStatus = "ACTIVE"
	CartStatusCheckedOut CartStatus = "CHECKED_OUT"
)

// 1顧客につきACTIVEは1つ
type Cart struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	CustomerID string     `gorm:"type:varchar(36);not null;index" json:"customer_id"`
	Status     CartStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
