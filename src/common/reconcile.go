package common

import (
	"log"
	"savanablu/src/lib"
	"savanablu/src/models"
	"savanablu/src/store"
	"savanablu/src/types"
	"time"

	"github.com/stripe/stripe-go/v82"
)

// Swapped out by tests.
var retrieveDepositIntent = lib.RetrieveDepositIntent

// ReconcilePaymentLinks sweeps on-hold bookings against the payment provider.
// Two repairs: records whose checkout url was never persisted get it back,
// and sessions already paid (a webhook we missed) get confirmed. Runs on the
// scheduler; per-booking failures are logged and skipped.
func ReconcilePaymentLinks() {
	st := store.Get()
	checked := 0
	repaired := 0
	confirmed := 0
	for _, b := range st.ReadAll() {
		if b.Status != types.BOOKING_ONHOLD || b.PaymentRef == "" {
			continue
		}
		checked++
		cs, err := retrieveDepositIntent(b.PaymentRef)
		if err != nil {
			log.Printf("[ReconcilePaymentLinks] could not retrieve session %s for booking %s: %s\n", b.PaymentRef, b.ID, err.Error())
			continue
		}
		if cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			if _, err := ConfirmPayment(b.ID); err != nil {
				log.Printf("[ReconcilePaymentLinks] could not confirm booking %s: %s\n", b.ID, err.Error())
				continue
			}
			confirmed++
			continue
		}
		if b.PaymentURL == "" && cs.URL != "" {
			if _, err := st.UpdateByID(b.ID, func(r *models.Booking) {
				r.PaymentURL = cs.URL
			}); err != nil {
				log.Printf("[ReconcilePaymentLinks] could not repair payment link for booking %s: %s\n", b.ID, err.Error())
				continue
			}
			repaired++
		}
	}
	log.Printf("[ReconcilePaymentLinks] checked=%d repaired=%d confirmed=%d\n", checked, repaired, confirmed)
}

// StartReconcileJob puts ReconcilePaymentLinks on the scheduler and starts it.
func StartReconcileJob(interval time.Duration) (*string, error) {
	id, err := lib.CreateCronJob(ReconcilePaymentLinks, interval)
	if err != nil {
		return nil, err
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		return nil, err
	}
	sched.Start()
	return id, nil
}

func StopReconcileJob() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}
