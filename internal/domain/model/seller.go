package model

import "time"

type Seller struct {
	ID               string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name             string           `gorm:"type:varchar(255);not null" json:"name"`
	Description      string           `gorm:"type:text" json:"description"`
	Location         string           `gorm:"type:varchar(255)" json:"location"`
	Rating           float64          `gorm:"not null;default:0" json:"rating"`
	SubscriptionTier SubscriptionTier `gorm:"type:varchar(20);not null" json:"subscriptionTier"`
	CreatedAt        time.Time        `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time        `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
