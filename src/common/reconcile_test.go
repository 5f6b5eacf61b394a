package common

import (
	"errors"
	"savanablu/src/models"
	"savanablu/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"
)

func TestReconcilePaymentLinks(t *testing.T) {
	st := newTestStore()
	assert.Nil(t, st.AppendOne(models.Booking{
		ID:         "paid-but-missed",
		Status:     types.BOOKING_ONHOLD,
		TotalUSD:   225,
		BalanceUSD: 225,
		PaymentRef: "cs_paid",
	}))
	assert.Nil(t, st.AppendOne(models.Booking{
		ID:         "lost-link",
		Status:     types.BOOKING_ONHOLD,
		TotalUSD:   500,
		BalanceUSD: 500,
		PaymentRef: "cs_open",
	}))
	assert.Nil(t, st.AppendOne(models.Booking{
		ID:         "provider-error",
		Status:     types.BOOKING_ONHOLD,
		PaymentRef: "cs_broken",
	}))
	assert.Nil(t, st.AppendOne(models.Booking{
		ID:     "untouched-pending",
		Status: types.BOOKING_PENDING,
	}))

	prev := retrieveDepositIntent
	defer func() { retrieveDepositIntent = prev }()
	retrieveDepositIntent = func(id string) (*stripe.CheckoutSession, error) {
		switch id {
		case "cs_paid":
			return &stripe.CheckoutSession{ID: id, PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid}, nil
		case "cs_open":
			return &stripe.CheckoutSession{
				ID:            id,
				PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid,
				URL:           "https://checkout.stripe.test/cs_open",
			}, nil
		default:
			return nil, errors.New("no such session")
		}
	}

	ReconcilePaymentLinks()

	confirmed := st.FindByID("paid-but-missed")
	assert.Equal(t, types.BOOKING_CONFIRMED, confirmed.Status)
	assert.Equal(t, types.PAYMENT_CONFIRMED, confirmed.PaymentStatus)
	assert.Equal(t, 45.0, confirmed.DepositUSD)

	repaired := st.FindByID("lost-link")
	assert.Equal(t, types.BOOKING_ONHOLD, repaired.Status)
	assert.Equal(t, "https://checkout.stripe.test/cs_open", repaired.PaymentURL)

	broken := st.FindByID("provider-error")
	assert.Equal(t, types.BOOKING_ONHOLD, broken.Status)

	pending := st.FindByID("untouched-pending")
	assert.Equal(t, types.BOOKING_PENDING, pending.Status)
}
