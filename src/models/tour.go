package models

import "savanablu/src/types"

// Tour is a single-day catalog item. Title and base price are copied onto
// bookings at creation time so later edits never rewrite history.
type Tour struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	Title        string  `json:"title"`
	Slug         string  `gorm:"uniqueIndex" json:"slug"`
	Description  string  `json:"description,omitempty"`
	Location     string  `json:"location,omitempty"`
	BasePriceUSD float64 `json:"base_price_usd"`
	Hours        uint    `json:"hours,omitempty"`
	Active       bool    `gorm:"default:true" json:"active"`

	types.Timestamps
}

// TourPackage is a multi-day catalog item.
type TourPackage struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	Title        string  `json:"title"`
	Slug         string  `gorm:"uniqueIndex" json:"slug"`
	Description  string  `json:"description,omitempty"`
	BasePriceUSD float64 `json:"base_price_usd"`
	Days         uint    `json:"days,omitempty"`
	Active       bool    `gorm:"default:true" json:"active"`

	types.Timestamps
}
