package store

import (
	"errors"
	"path"
	"savanablu/src/models"
	"savanablu/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memBackend struct {
	bookings []models.Booking
	fail     bool
}

func (m *memBackend) ReadAll() ([]models.Booking, error) {
	if m.fail {
		return nil, errors.New("backend unavailable")
	}
	return m.bookings, nil
}

func (m *memBackend) WriteAll(bookings []models.Booking) error {
	if m.fail {
		return errors.New("backend unavailable")
	}
	m.bookings = bookings
	return nil
}

func sample(id string) models.Booking {
	return models.Booking{
		ID:            id,
		Type:          "tour",
		Slug:          "saadani-safari-blue",
		Title:         "Saadani Safari Blue",
		Date:          "2026-10-01",
		Adults:        2,
		TotalUSD:      500,
		BalanceUSD:    500,
		CustomerName:  "Asha Juma",
		CustomerEmail: "asha@example.com",
		Status:        types.BOOKING_PENDING,
	}
}

func TestAppendOneIsIdempotent(t *testing.T) {
	d := NewDual(&memBackend{}, &memBackend{})
	assert.Nil(t, d.AppendOne(sample("b1")))
	assert.Nil(t, d.AppendOne(sample("b1")))
	assert.Nil(t, d.AppendOne(sample("b2")))
	assert.Len(t, d.ReadAll(), 2)
}

func TestReadFallsBackToSecondary(t *testing.T) {
	secondary := &memBackend{bookings: []models.Booking{sample("b1")}}
	d := NewDual(&memBackend{fail: true}, secondary)
	bookings := d.ReadAll()
	assert.Len(t, bookings, 1)
	assert.Equal(t, "b1", bookings[0].ID)
}

func TestReadDegradesToEmpty(t *testing.T) {
	d := NewDual(&memBackend{fail: true}, &memBackend{fail: true})
	assert.Empty(t, d.ReadAll())
}

func TestWriteSucceedsWhenEitherBackendLands(t *testing.T) {
	secondary := &memBackend{}
	d := NewDual(&memBackend{fail: true}, secondary)
	assert.Nil(t, d.AppendOne(sample("b1")))
	assert.Len(t, secondary.bookings, 1)

	d = NewDual(&memBackend{fail: true}, &memBackend{fail: true})
	assert.NotNil(t, d.WriteAll([]models.Booking{sample("b1")}))
}

func TestFindByRefMatchesIdThenPaymentRef(t *testing.T) {
	d := NewDual(&memBackend{}, &memBackend{})
	b := sample("b1")
	b.PaymentRef = "cs_test_123"
	assert.Nil(t, d.AppendOne(b))

	assert.NotNil(t, d.FindByRef("b1"))
	found := d.FindByRef("cs_test_123")
	assert.NotNil(t, found)
	assert.Equal(t, "b1", found.ID)
	assert.Nil(t, d.FindByRef("cs_test_unknown"))
}

func TestUpdateByID(t *testing.T) {
	d := NewDual(&memBackend{}, &memBackend{})
	assert.Nil(t, d.AppendOne(sample("b1")))

	updated, err := d.UpdateByID("b1", func(r *models.Booking) {
		r.Status = types.BOOKING_ONHOLD
		r.PaymentRef = "cs_test_123"
	})
	assert.Nil(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, types.BOOKING_ONHOLD, updated.Status)
	assert.False(t, updated.UpdatedAt.IsZero())

	missing, err := d.UpdateByID("nope", func(r *models.Booking) {})
	assert.Nil(t, err)
	assert.Nil(t, missing)
}

func TestFileBackendRoundTrip(t *testing.T) {
	f := NewFileBackend(path.Join(t.TempDir(), "bookings.json"))

	bookings, err := f.ReadAll()
	assert.Nil(t, err)
	assert.Empty(t, bookings)

	assert.Nil(t, f.WriteAll([]models.Booking{sample("b1"), sample("b2")}))
	bookings, err = f.ReadAll()
	assert.Nil(t, err)
	assert.Len(t, bookings, 2)
	assert.Equal(t, "Saadani Safari Blue", bookings[0].Title)
}

func TestDualWithFileSecondarySurvivesPrimaryOutage(t *testing.T) {
	f := NewFileBackend(path.Join(t.TempDir(), "bookings.json"))
	d := NewDual(&memBackend{fail: true}, f)

	assert.Nil(t, d.AppendOne(sample("b1")))
	bookings := d.ReadAll()
	assert.Len(t, bookings, 1)
	assert.Equal(t, "b1", bookings[0].ID)
}
