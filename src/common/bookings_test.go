package common

import (
	"errors"
	"savanablu/src/db"
	"savanablu/src/lib"
	"savanablu/src/models"
	"savanablu/src/store"
	"savanablu/src/types"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func tourRows(title, slug string, basePrice float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "slug", "base_price_usd", "active"}).
		AddRow(1, title, slug, basePrice, true)
}

func createBookingBody() *types.CreateBookingRequestBody {
	return &types.CreateBookingRequestBody{
		Type:          "tour",
		Slug:          "mnemba-island-snorkeling",
		Date:          "2026-10-15",
		Adults:        2,
		Children:      1,
		PromoCode:     "KARIBU10",
		CustomerName:  "Asha Juma",
		CustomerEmail: "Asha@Example.com",
		CustomerPhone: "+255700000001",
	}
}

// waitNotifications drains n sends from the recording stub or fails the test.
func waitNotifications(t *testing.T, sent <-chan *lib.SendMailInput, n int) []*lib.SendMailInput {
	t.Helper()
	inputs := []*lib.SendMailInput{}
	for len(inputs) < n {
		select {
		case in := <-sent:
			inputs = append(inputs, in)
		case <-time.After(3 * time.Second):
			t.Fatalf("expected %d notifications, got %d", n, len(inputs))
		}
	}
	return inputs
}

func TestCreateBookingThroughConfirmation(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	st := newTestStore()

	sent := make(chan *lib.SendMailInput, 8)
	prevSend := sendNotification
	prevCreate := createDepositIntent
	defer func() {
		sendNotification = prevSend
		createDepositIntent = prevCreate
	}()
	sendNotification = func(input *lib.SendMailInput) error {
		sent <- input
		return nil
	}
	var intentParams *lib.DepositIntentParams
	createDepositIntent = func(p *lib.DepositIntentParams) (*lib.DepositIntent, error) {
		intentParams = p
		return &lib.DepositIntent{ID: "cs_test_123", URL: "https://checkout.stripe.test/cs_test_123"}, nil
	}

	mock.ExpectQuery(`SELECT (.+) FROM "tours"`).
		WillReturnRows(tourRows("Mnemba Island Snorkeling", "mnemba-island-snorkeling", 100))
	mock.ExpectQuery(`SELECT (.+) FROM "promo_codes"`).
		WillReturnRows(promoRows(promoFixture("KARIBU10", "percent", 10, true)))

	created, err := CreateBooking(createBookingBody())
	assert.Nil(t, err)
	assert.NotNil(t, created)

	// 100*2 adults + 50*1 child = 250, minus 10% promo
	assert.Equal(t, 225.0, created.Total)
	assert.Equal(t, "Mnemba Island Snorkeling", created.Title)
	assert.Equal(t, "https://checkout.stripe.test/cs_test_123", created.RedirectURL)
	assert.NotEmpty(t, created.BookingID)

	assert.NotNil(t, intentParams)
	assert.Equal(t, 45.0, intentParams.AmountUSD)
	assert.Equal(t, created.BookingID, intentParams.BookingID)

	record := st.FindByID(created.BookingID)
	assert.NotNil(t, record)
	assert.Equal(t, types.BOOKING_ONHOLD, record.Status)
	assert.Equal(t, types.PAYMENT_PENDING, record.PaymentStatus)
	assert.Equal(t, "cs_test_123", record.PaymentRef)
	assert.Equal(t, 225.0, record.TotalUSD)
	assert.Equal(t, 25.0, record.DiscountUSD)
	assert.Equal(t, "KARIBU10", record.PromoCode)
	// deposit is only recorded once the payment lands
	assert.Equal(t, 0.0, record.DepositUSD)
	assert.Equal(t, 225.0, record.BalanceUSD)

	waitNotifications(t, sent, 2)

	// provider callbacks may carry the session id instead of the booking id
	alreadyProcessed, err := ConfirmPayment("cs_test_123")
	assert.Nil(t, err)
	assert.False(t, alreadyProcessed)

	record = st.FindByID(created.BookingID)
	assert.Equal(t, types.BOOKING_CONFIRMED, record.Status)
	assert.Equal(t, types.PAYMENT_CONFIRMED, record.PaymentStatus)
	assert.Equal(t, 45.0, record.DepositUSD)
	assert.Equal(t, 180.0, record.BalanceUSD)
	assert.True(t, record.ConfirmationEmailsSent)
	assert.NotNil(t, record.ConfirmedAt)
	assert.NotNil(t, record.AdvancePayment)
	assert.Equal(t, "stripe-checkout", record.AdvancePayment.Method)
	assert.Equal(t, 20.0, record.AdvancePayment.Percent)
	assert.Equal(t, 45.0, record.AdvancePayment.Amount)

	waitNotifications(t, sent, 2)

	// replayed callback: no state change, no second email burst
	alreadyProcessed, err = ConfirmPayment(created.BookingID)
	assert.Nil(t, err)
	assert.True(t, alreadyProcessed)
	select {
	case in := <-sent:
		t.Fatalf("unexpected notification after replay: %s", in.Subject)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCreateBookingUnknownSlug(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	st := newTestStore()

	mock.ExpectQuery(`SELECT (.+) FROM "tours"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug", "base_price_usd", "active"}))

	body := createBookingBody()
	body.Slug = "no-such-trip"
	created, err := CreateBooking(body)
	assert.Nil(t, created)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Empty(t, st.ReadAll())
}

func TestCreateBookingValidation(t *testing.T) {
	st := newTestStore()

	sent := make(chan *lib.SendMailInput, 8)
	prevSend := sendNotification
	defer func() { sendNotification = prevSend }()
	sendNotification = func(input *lib.SendMailInput) error {
		sent <- input
		return nil
	}

	body := createBookingBody()
	body.CustomerEmail = "  "
	created, err := CreateBooking(body)
	assert.Nil(t, created)
	assert.True(t, errors.Is(err, ErrValidation))

	body = createBookingBody()
	body.AirportPickup = true
	created, err = CreateBooking(body)
	assert.Nil(t, created)
	assert.True(t, errors.Is(err, ErrValidation))

	assert.Empty(t, st.ReadAll())

	// rejected input produces no notifications at all
	select {
	case in := <-sent:
		t.Fatalf("unexpected notification for rejected booking: %s", in.Subject)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCreateBookingSurvivesPaymentOutage(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	st := newTestStore()

	prevCreate := createDepositIntent
	defer func() { createDepositIntent = prevCreate }()
	createDepositIntent = func(p *lib.DepositIntentParams) (*lib.DepositIntent, error) {
		return nil, errors.New("gateway unreachable")
	}

	mock.ExpectQuery(`SELECT (.+) FROM "tours"`).
		WillReturnRows(tourRows("Mnemba Island Snorkeling", "mnemba-island-snorkeling", 100))
	mock.ExpectQuery(`SELECT (.+) FROM "promo_codes"`).
		WillReturnRows(promoRows(promoFixture("KARIBU10", "percent", 10, true)))

	created, err := CreateBooking(createBookingBody())
	assert.Nil(t, err)
	assert.NotNil(t, created)
	assert.Empty(t, created.RedirectURL)

	record := st.FindByID(created.BookingID)
	assert.NotNil(t, record)
	assert.Equal(t, types.BOOKING_PENDING, record.Status)
	assert.Empty(t, record.PaymentRef)
}

func TestCreateBookingSurvivesStorageOutage(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	st := store.NewStore(store.NewDual(&memBackend{fail: true}, &memBackend{fail: true}))

	prevCreate := createDepositIntent
	defer func() { createDepositIntent = prevCreate }()
	createDepositIntent = func(p *lib.DepositIntentParams) (*lib.DepositIntent, error) {
		return &lib.DepositIntent{ID: "cs_orphan", URL: "https://checkout.stripe.test/cs_orphan"}, nil
	}

	mock.ExpectQuery(`SELECT (.+) FROM "tours"`).
		WillReturnRows(tourRows("Mnemba Island Snorkeling", "mnemba-island-snorkeling", 100))
	mock.ExpectQuery(`SELECT (.+) FROM "promo_codes"`).
		WillReturnRows(promoRows(promoFixture("KARIBU10", "percent", 10, true)))

	// both backends down: the guest still gets a complete response with a
	// payment link, even though nothing could be persisted
	created, err := CreateBooking(createBookingBody())
	assert.Nil(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "https://checkout.stripe.test/cs_orphan", created.RedirectURL)
	assert.Equal(t, 225.0, created.Total)
	assert.Empty(t, st.ReadAll())
}

func TestQuoteForTrip(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectQuery(`SELECT (.+) FROM "tours"`).
		WillReturnRows(tourRows("Mnemba Island Snorkeling", "mnemba-island-snorkeling", 100))
	mock.ExpectQuery(`SELECT (.+) FROM "promo_codes"`).
		WillReturnRows(promoRows(promoFixture("KARIBU10", "percent", 10, true)))

	quote, err := QuoteForTrip(&types.QuoteRequestBody{
		Type:      "tour",
		Slug:      "mnemba-island-snorkeling",
		Adults:    2,
		Children:  1,
		PromoCode: "KARIBU10",
	})
	assert.Nil(t, err)
	assert.Equal(t, 250.0, quote["subtotal"])
	assert.Equal(t, 25.0, quote["discount"])
	assert.Equal(t, 225.0, quote["total"])
	assert.Equal(t, 45.0, quote["deposit"])
	assert.Equal(t, 180.0, quote["balanceDue"])
}

func TestCancelBooking(t *testing.T) {
	st := newTestStore()
	assert.Nil(t, st.AppendOne(models.Booking{ID: "b1", Status: types.BOOKING_ONHOLD}))

	_, err := CancelBooking("b1", "")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = CancelBooking("nope", "guest request")
	assert.True(t, errors.Is(err, ErrNotFound))

	booking, err := CancelBooking("b1", "guest request")
	assert.Nil(t, err)
	assert.Equal(t, types.BOOKING_CANCELED, booking.Status)
	assert.Equal(t, "guest request", booking.CancellationReason)
}

func TestReversePayment(t *testing.T) {
	st := newTestStore()
	now := time.Now()
	assert.Nil(t, st.AppendOne(models.Booking{
		ID:            "b1",
		Status:        types.BOOKING_CONFIRMED,
		PaymentStatus: types.PAYMENT_CONFIRMED,
		TotalUSD:      225,
		DepositUSD:    45,
		BalanceUSD:    180,
		ConfirmedAt:   &now,
	}))
	assert.Nil(t, st.AppendOne(models.Booking{ID: "b2", Status: types.BOOKING_ONHOLD}))

	_, err := ReversePayment("b2", "trip cancelled by operator", 0)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = ReversePayment("b1", "", 0)
	assert.True(t, errors.Is(err, ErrValidation))

	// amounts outside (0, deposit] fall back to the full deposit
	booking, err := ReversePayment("b1", "trip cancelled by operator", 500)
	assert.Nil(t, err)
	assert.Equal(t, types.PAYMENT_REFUNDED, booking.PaymentStatus)
	assert.Equal(t, 45.0, booking.RefundedUSD)
	assert.NotNil(t, booking.RefundedAt)
	assert.Equal(t, "trip cancelled by operator", booking.RefundReason)
}
