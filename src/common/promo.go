package common

import (
	"log"
	"savanablu/src/db"
	"savanablu/src/models"
	"savanablu/src/types"
	"strings"
)

// ComputeDiscount applies a promo definition to a subtotal. The discount is
// clamped to the subtotal so the final amount never goes negative.
func ComputeDiscount(p *models.PromoCode, subtotal float64) float64 {
	if subtotal < 0 {
		subtotal = 0
	}
	var discount float64
	switch p.DiscountType {
	case types.DISCOUNT_PERCENT:
		discount = subtotal * p.Value / 100
	case types.DISCOUNT_FIXED:
		discount = p.Value
	default:
		return 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// ApplyPromo looks up a code (case-sensitive) and returns the discount plus
// the code that actually applied. An unknown, inactive or blank code yields
// a zero discount: a typo must never block a booking.
func ApplyPromo(code string, subtotal float64) (float64, string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, ""
	}
	var promo models.PromoCode
	d := db.GetDb()
	if err := d.
		Model(&models.PromoCode{}).
		Where("code = ?", code).
		First(&promo).
		Error; err != nil {
		log.Printf("[ApplyPromo] code %q not found: %s\n", code, err.Error())
		return 0, ""
	}
	if !promo.Active {
		log.Printf("[ApplyPromo] code %q is inactive\n", code)
		return 0, ""
	}
	return ComputeDiscount(&promo, subtotal), promo.Code
}
