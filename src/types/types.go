package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Handler func(body string)

type BookingStatus string
type PaymentStatus string
type DiscountType string
type ExperienceType string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_ONHOLD    BookingStatus = "on-hold"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELED  BookingStatus = "cancelled"
)

const (
	PAYMENT_PENDING   PaymentStatus = "pending"
	PAYMENT_CONFIRMED PaymentStatus = "confirmed"
	PAYMENT_REFUNDED  PaymentStatus = "refunded"
)

const (
	DISCOUNT_PERCENT DiscountType = "percent"
	DISCOUNT_FIXED   DiscountType = "fixed"
)

const (
	EXPERIENCE_TOUR    ExperienceType = "tour"
	EXPERIENCE_PACKAGE ExperienceType = "package"
)

type CreateBookingRequestBody struct {
	Type          string  `json:"type" binding:"required"`
	Slug          string  `json:"slug" binding:"required"`
	Date          string  `json:"date" binding:"required,tourdate"`
	Adults        int     `json:"adults" binding:"required"`
	Children      int     `json:"children,omitempty"`
	PromoCode     string  `json:"promoCode,omitempty"`
	CustomerName  string  `json:"customerName" binding:"required"`
	CustomerEmail string  `json:"customerEmail" binding:"required,email"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	Pickup        string  `json:"pickup,omitempty"`
	PickupTime    string  `json:"pickupTime,omitempty"`
	AirportPickup bool    `json:"airportPickup,omitempty"`
	FlightDetails *string `json:"flightDetails,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

type QuoteRequestBody struct {
	Type      string `json:"type" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Adults    int    `json:"adults" binding:"required"`
	Children  int    `json:"children,omitempty"`
	PromoCode string `json:"promoCode,omitempty"`
}

type ConfirmPaymentRequestBody struct {
	BookingID string `json:"bookingId" binding:"required"`
}

type AdminBookingActionRequestBody struct {
	Action string  `json:"action" binding:"required"`
	Reason string  `json:"reason" binding:"required"`
	Amount float64 `json:"amount,omitempty"`
}

type CreateLeadRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" binding:"required"`
	Source  string `json:"source,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreatePromoRequestBody struct {
	Code         string  `json:"code" binding:"required"`
	DiscountType string  `json:"discount_type" binding:"required,oneof=percent fixed"`
	Value        float64 `json:"value" binding:"required,gt=0"`
	Active       *bool   `json:"active,omitempty"`
}

type UpdatePromoRequestBody struct {
	DiscountType *string  `json:"discount_type,omitempty" binding:"omitempty,oneof=percent fixed"`
	Value        *float64 `json:"value,omitempty" binding:"omitempty,gt=0"`
	Active       *bool    `json:"active,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type BookingCreatedResponse struct {
	BookingID   string  `json:"bookingId"`
	RedirectURL string  `json:"redirectUrl,omitempty"`
	Title       string  `json:"title"`
	Total       float64 `json:"total"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
}
