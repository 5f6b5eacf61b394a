package common

import (
	"errors"
	"log"
	"os"
	"savanablu/src/lib"
	"savanablu/src/models"
	"savanablu/src/store"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Sends and provider calls are stubbed out for the whole package; individual
// tests swap in recording stubs where the dispatch itself is under test.
func TestMain(m *testing.M) {
	sendNotification = func(input *lib.SendMailInput) error { return nil }
	createDepositIntent = func(p *lib.DepositIntentParams) (*lib.DepositIntent, error) {
		return &lib.DepositIntent{ID: "cs_test_stub", URL: "https://checkout.stripe.test/stub"}, nil
	}
	os.Exit(m.Run())
}

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	return gormDB, mock
}

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

func newTestStore() *store.Dual {
	return store.NewStore(store.NewDual(&memBackend{}, &memBackend{}))
}
