// Package store keeps the booking collection in a primary key-value backend
// with a local JSON file as the fallback target. Writes go to both and count
// as successful when either lands; reads prefer the primary and degrade to
// the file, then to an empty collection.
package store

import (
	"log"
	"path"
	"savanablu/src/config"
	"savanablu/src/models"
	"sync"
	"time"
)

type Backend interface {
	ReadAll() ([]models.Booking, error)
	WriteAll(bookings []models.Booking) error
}

type Dual struct {
	primary   Backend
	secondary Backend

	mu sync.Mutex
}

func NewDual(primary, secondary Backend) *Dual {
	return &Dual{primary: primary, secondary: secondary}
}

var defaultStore *Dual

func Get() *Dual {
	if defaultStore != nil {
		return defaultStore
	}
	defaultStore = NewDual(
		NewRedisBackend("savanablu:bookings"),
		NewFileBackend(path.Join(config.DataDir(), "bookings.json")),
	)
	return defaultStore
}

// NewStore Replace the process-wide store, used by tests.
func NewStore(d *Dual) *Dual {
	defaultStore = d
	return defaultStore
}

func (d *Dual) ReadAll() []models.Booking {
	bookings, err := d.primary.ReadAll()
	if err != nil {
		log.Printf("[store] primary read failed, trying fallback: %s\n", err.Error())
	} else if len(bookings) > 0 {
		return bookings
	}
	bookings, err = d.secondary.ReadAll()
	if err != nil {
		log.Printf("[store] fallback read failed, returning empty set: %s\n", err.Error())
		return []models.Booking{}
	}
	return bookings
}

func (d *Dual) WriteAll(bookings []models.Booking) error {
	var firstErr error
	ok := false
	if err := d.primary.WriteAll(bookings); err != nil {
		log.Printf("[store] primary write failed: %s\n", err.Error())
		firstErr = err
	} else {
		ok = true
	}
	if err := d.secondary.WriteAll(bookings); err != nil {
		log.Printf("[store] fallback write failed: %s\n", err.Error())
		if firstErr == nil {
			firstErr = err
		}
	} else {
		ok = true
	}
	if ok {
		return nil
	}
	return firstErr
}

// AppendOne is idempotent: a booking whose id is already present leaves the
// collection untouched.
func (d *Dual) AppendOne(b models.Booking) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	bookings := d.ReadAll()
	for _, existing := range bookings {
		if existing.ID == b.ID {
			return nil
		}
	}
	bookings = append(bookings, b)
	return d.WriteAll(bookings)
}

func (d *Dual) FindByID(id string) *models.Booking {
	for _, b := range d.ReadAll() {
		if b.ID == id {
			found := b
			return &found
		}
	}
	return nil
}

// FindByRef matches the canonical id first, then the payment provider
// reference kept for historical callback payloads.
func (d *Dual) FindByRef(ref string) *models.Booking {
	bookings := d.ReadAll()
	for _, b := range bookings {
		if b.ID == ref {
			found := b
			return &found
		}
	}
	for _, b := range bookings {
		if b.PaymentRef != "" && b.PaymentRef == ref {
			found := b
			return &found
		}
	}
	return nil
}

// UpdateByID applies patch to the matching record and persists the whole
// collection. Returns the updated record, or nil when the id is unknown.
func (d *Dual) UpdateByID(id string, patch func(*models.Booking)) (*models.Booking, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	bookings := d.ReadAll()
	for i := range bookings {
		if bookings[i].ID == id {
			patch(&bookings[i])
			bookings[i].UpdatedAt = time.Now()
			updated := bookings[i]
			if err := d.WriteAll(bookings); err != nil {
				return &updated, err
			}
			return &updated, nil
		}
	}
	return nil, nil
}
