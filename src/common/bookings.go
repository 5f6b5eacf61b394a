package common

import (
	"fmt"
	"log"
	"savanablu/src/config"
	"savanablu/src/db"
	"savanablu/src/lib"
	"savanablu/src/models"
	"savanablu/src/store"
	"savanablu/src/types"
	"savanablu/src/utils"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Swapped out by tests.
var createDepositIntent = lib.CreateDepositIntent

// NewDepositIntentFunc Replace the checkout-session factory, used by tests.
func NewDepositIntentFunc(fn func(*lib.DepositIntentParams) (*lib.DepositIntent, error)) {
	createDepositIntent = fn
}

// ResolveCatalogItem returns the display title and base price for a slug.
// The title is denormalized onto the booking so catalog edits never rewrite
// history.
func ResolveCatalogItem(experienceType string, slugVal string) (string, float64, error) {
	d := db.GetDb()
	switch types.ExperienceType(experienceType) {
	case types.EXPERIENCE_PACKAGE:
		var pkg models.TourPackage
		if err := d.Model(&models.TourPackage{}).Where("slug = ?", slugVal).First(&pkg).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return "", 0, fmt.Errorf("%w: package %q", ErrNotFound, slugVal)
			}
			return "", 0, err
		}
		return pkg.Title, pkg.BasePriceUSD, nil
	default:
		var tour models.Tour
		if err := d.Model(&models.Tour{}).Where("slug = ?", slugVal).First(&tour).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return "", 0, fmt.Errorf("%w: tour %q", ErrNotFound, slugVal)
			}
			return "", 0, err
		}
		return tour.Title, tour.BasePriceUSD, nil
	}
}

func validateBookingInput(body *types.CreateBookingRequestBody) error {
	missing := []string{}
	if body.Type == "" {
		missing = append(missing, "type")
	}
	if body.Slug == "" {
		missing = append(missing, "slug")
	}
	if body.Date == "" {
		missing = append(missing, "date")
	}
	if body.Adults < 1 {
		missing = append(missing, "adults")
	}
	if strings.TrimSpace(body.CustomerEmail) == "" {
		missing = append(missing, "customerEmail")
	}
	if strings.TrimSpace(body.CustomerName) == "" {
		missing = append(missing, "customerName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if body.AirportPickup && (body.FlightDetails == nil || strings.TrimSpace(*body.FlightDetails) == "") {
		return fmt.Errorf("%w: flightDetails is required for airport pickup", ErrValidation)
	}
	return nil
}

// CreateBooking runs the whole funnel: validate, price, persist, open the
// deposit payment, notify. Storage and payment failures are logged and
// swallowed so the guest still gets a response; only bad input or an unknown
// catalog item fails the request.
func CreateBooking(body *types.CreateBookingRequestBody) (*types.BookingCreatedResponse, error) {
	if err := validateBookingInput(body); err != nil {
		return nil, err
	}
	title, basePrice, err := ResolveCatalogItem(body.Type, body.Slug)
	if err != nil {
		return nil, err
	}

	baseTotal := ComputeTripTotal(basePrice, body.Adults, body.Children)
	discount, appliedCode := ApplyPromo(body.PromoCode, baseTotal)
	finalTotal := utils.Round2(baseTotal - discount)

	id := utils.NewBookingID()
	now := time.Now()
	flightDetails := ""
	if body.FlightDetails != nil {
		flightDetails = *body.FlightDetails
	}
	booking := models.Booking{
		ID:            id,
		Type:          body.Type,
		Slug:          body.Slug,
		Title:         title,
		Date:          body.Date,
		Adults:        body.Adults,
		Children:      body.Children,
		TotalUSD:      finalTotal,
		BalanceUSD:    finalTotal,
		PromoCode:     appliedCode,
		DiscountUSD:   utils.Round2(discount),
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		Pickup:        body.Pickup,
		PickupTime:    body.PickupTime,
		AirportPickup: body.AirportPickup,
		FlightDetails: flightDetails,
		Notes:         body.Notes,
		Status:        types.BOOKING_PENDING,
		PaymentStatus: types.PAYMENT_PENDING,
		Source:        config.BOOKING_SOURCE,
		CreatedAt:     now,
	}

	st := store.Get()
	if err := st.AppendOne(booking); err != nil {
		log.Printf("[CreateBooking] could not persist booking %s: %s\n", id, err.Error())
	}

	deposit := utils.Round2(finalTotal * config.DEPOSIT_RATE)
	if deposit > 0 {
		intent, err := createDepositIntent(&lib.DepositIntentParams{
			AmountUSD:     deposit,
			Description:   fmt.Sprintf("Deposit for %s (%s)", title, body.Date),
			BookingID:     id,
			CustomerEmail: body.CustomerEmail,
			SuccessPath:   "/booking/success",
			CancelPath:    "/booking/cancelled",
		})
		if err != nil {
			log.Printf("[CreateBooking] payment intent failed for booking %s, follow up manually: %s\n", id, err.Error())
		} else {
			booking.Status = types.BOOKING_ONHOLD
			booking.PaymentRef = intent.ID
			booking.PaymentURL = intent.URL
			persisted, err := st.UpdateByID(id, func(r *models.Booking) {
				r.Status = types.BOOKING_ONHOLD
				r.PaymentRef = intent.ID
				r.PaymentURL = intent.URL
			})
			if err != nil {
				log.Printf("[CreateBooking] could not persist payment link for booking %s (session %s), follow up manually: %s\n", id, intent.ID, err.Error())
			} else if persisted == nil {
				// the creation append never landed; the session now exists
				// only at the provider
				log.Printf("[CreateBooking] booking %s absent from store, orphaned checkout session %s needs manual follow-up\n", id, intent.ID)
			}
		}
	}

	go SendBookingOnHoldEmails(&booking)

	return &types.BookingCreatedResponse{
		BookingID:   id,
		RedirectURL: booking.PaymentURL,
		Title:       title,
		Total:       finalTotal,
		Date:        body.Date,
		Type:        body.Type,
	}, nil
}

// QuoteForTrip prices a trip without creating anything. Shares the promo and
// pricing path with booking creation so the numbers cannot drift.
func QuoteForTrip(body *types.QuoteRequestBody) (types.JSONB, error) {
	title, basePrice, err := ResolveCatalogItem(body.Type, body.Slug)
	if err != nil {
		return nil, err
	}
	baseTotal := ComputeTripTotal(basePrice, body.Adults, body.Children)
	discount, appliedCode := ApplyPromo(body.PromoCode, baseTotal)
	finalTotal := utils.Round2(baseTotal - discount)
	deposit := utils.Round2(finalTotal * config.DEPOSIT_RATE)
	return types.JSONB{
		"title":      title,
		"subtotal":   utils.Round2(baseTotal),
		"promoCode":  appliedCode,
		"discount":   utils.Round2(discount),
		"total":      finalTotal,
		"deposit":    deposit,
		"balanceDue": utils.Round2(finalTotal - deposit),
	}, nil
}

// ConfirmPayment flips a booking to confirmed after the provider reports the
// deposit as paid. Replays are detected by the emails-sent flag so duplicate
// callbacks never fire a second email burst; the flag is persisted before
// any send is attempted.
func ConfirmPayment(ref string) (bool, error) {
	st := store.Get()
	booking := st.FindByRef(ref)
	if booking == nil {
		return false, fmt.Errorf("%w: booking %q", ErrNotFound, ref)
	}
	if booking.PaymentStatus == types.PAYMENT_CONFIRMED && booking.ConfirmationEmailsSent {
		return true, nil
	}
	alreadySent := booking.ConfirmationEmailsSent

	// Recomputed here rather than trusted from the record: a booking whose
	// link-persist failed at creation has no deposit stored yet.
	deposit := utils.Round2(booking.TotalUSD * config.DEPOSIT_RATE)
	depositLocal := utils.Round2(deposit * config.FXRate())
	now := time.Now()
	updated, err := st.UpdateByID(booking.ID, func(r *models.Booking) {
		r.Status = types.BOOKING_CONFIRMED
		r.PaymentStatus = types.PAYMENT_CONFIRMED
		r.ConfirmedAt = &now
		r.DepositUSD = deposit
		r.DepositLocal = depositLocal
		r.BalanceUSD = utils.Round2(r.TotalUSD - deposit)
		r.ConfirmationEmailsSent = true
		r.AdvancePayment = &models.AdvancePayment{
			Method:  "stripe-checkout",
			Percent: config.DEPOSIT_RATE * 100,
			Amount:  deposit,
			PaidAt:  &now,
		}
	})
	if err != nil {
		log.Printf("[ConfirmPayment] could not persist confirmation for booking %s: %s\n", booking.ID, err.Error())
	}
	if updated != nil {
		booking = updated
	}

	if !alreadySent {
		go SendBookingConfirmedEmails(booking)
	}
	return false, nil
}

// CancelBooking is an operator action. It never touches provider state;
// reversing an actual charge stays a manual step.
func CancelBooking(id string, reason string) (*models.Booking, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", ErrValidation)
	}
	st := store.Get()
	updated, err := st.UpdateByID(id, func(r *models.Booking) {
		r.Status = types.BOOKING_CANCELED
		r.CancellationReason = reason
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: booking %q", ErrNotFound, id)
	}
	return updated, nil
}

// ReversePayment marks the deposit as refunded. Valid only on a confirmed
// booking that actually collected one.
func ReversePayment(id string, reason string, amount float64) (*models.Booking, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: refund reason is required", ErrValidation)
	}
	st := store.Get()
	booking := st.FindByID(id)
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %q", ErrNotFound, id)
	}
	if booking.PaymentStatus != types.PAYMENT_CONFIRMED || booking.DepositUSD <= 0 {
		return nil, fmt.Errorf("%w: booking %s has no confirmed deposit to reverse", ErrValidation, id)
	}
	if amount <= 0 || amount > booking.DepositUSD {
		amount = booking.DepositUSD
	}
	now := time.Now()
	updated, err := st.UpdateByID(id, func(r *models.Booking) {
		r.PaymentStatus = types.PAYMENT_REFUNDED
		r.RefundReason = reason
		r.RefundedUSD = utils.Round2(amount)
		r.RefundedAt = &now
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
