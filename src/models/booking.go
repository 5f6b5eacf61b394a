package models

import (
	"savanablu/src/types"
	"time"
)

// AdvancePayment is the structured receipt for the deposit collected online.
type AdvancePayment struct {
	Method  string     `json:"method"`
	Percent float64    `json:"percent"`
	Amount  float64    `json:"amount"`
	PaidAt  *time.Time `json:"paidAt,omitempty"`
}

// Booking is the central record. Unlike the catalog it is not a gorm entity:
// the collection lives as a JSON array in the dual-backed store (Redis
// primary, file fallback), keyed by the ID field. New fields must stay
// optional so older records keep deserializing.
type Booking struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Date  string `json:"date"`

	Adults   int `json:"adults"`
	Children int `json:"children,omitempty"`

	TotalUSD     float64 `json:"totalUSD"`
	DepositUSD   float64 `json:"depositUSD"`
	DepositLocal float64 `json:"depositLocal,omitempty"`
	BalanceUSD   float64 `json:"balanceUSD"`
	PromoCode    string  `json:"promoCode,omitempty"`
	DiscountUSD  float64 `json:"discountUSD,omitempty"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	Pickup        string `json:"pickup,omitempty"`
	PickupTime    string `json:"pickupTime,omitempty"`
	AirportPickup bool   `json:"airportPickup,omitempty"`
	FlightDetails string `json:"flightDetails,omitempty"`
	Notes         string `json:"notes,omitempty"`

	Status        types.BookingStatus `json:"status"`
	PaymentStatus types.PaymentStatus `json:"paymentStatus,omitempty"`

	PaymentRef             string          `json:"paymentRef,omitempty"`
	PaymentURL             string          `json:"paymentUrl,omitempty"`
	ConfirmedAt            *time.Time      `json:"confirmedAt,omitempty"`
	ConfirmationEmailsSent bool            `json:"confirmationEmailsSent,omitempty"`
	AdvancePayment         *AdvancePayment `json:"advancePayment,omitempty"`

	InternalNotes      string     `json:"internalNotes,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	RefundReason       string     `json:"refundReason,omitempty"`
	RefundedUSD        float64    `json:"refundedUSD,omitempty"`
	RefundedAt         *time.Time `json:"refundedAt,omitempty"`

	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
