package models

import "savanablu/src/types"

// PromoCode lookup is case-sensitive on Code. Read-only on the booking path.
type PromoCode struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	Code         string             `gorm:"uniqueIndex" json:"code"`
	DiscountType types.DiscountType `json:"discount_type"`
	Value        float64            `json:"value"`
	Active       bool               `gorm:"default:true" json:"active"`

	types.Timestamps
}
