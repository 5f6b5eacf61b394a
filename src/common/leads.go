package common

import (
	"context"
	"fmt"
	"log"
	"savanablu/src/db"
	"savanablu/src/lib"
	"savanablu/src/models"
	"savanablu/src/store"
	"savanablu/src/types"
	"savanablu/src/utils"
	"time"
)

// leadDedupeKey buckets submissions per hour so a retried form post does not
// stack duplicate rows while a genuine follow-up the next day still lands.
func leadDedupeKey(email string) string {
	return fmt.Sprintf("lead:%s:%s", email, time.Now().Format("2006010215"))
}

// CreateLead stores a CRM lead. Dedupe goes through redis SETNX and is best
// effort: with redis unreachable every submission is accepted. The second
// return reports whether a row was created or an earlier submission absorbed
// this one.
func CreateLead(body *types.CreateLeadRequestBody) (*models.Lead, bool, error) {
	email := utils.NormalizeEmail(body.Email)

	if rd := lib.GetRedisClient(); rd != nil {
		ok, err := rd.SetNX(context.Background(), leadDedupeKey(email), "1", time.Hour).Result()
		if err != nil {
			log.Printf("[CreateLead] dedupe check unavailable, accepting submission: %s\n", err.Error())
		} else if !ok {
			d := db.GetDb()
			var existing models.Lead
			if err := d.Model(&models.Lead{}).Where("email = ?", email).Order("created_at desc").First(&existing).Error; err == nil {
				return &existing, false, nil
			}
			return nil, false, nil
		}
	}

	source := body.Source
	if source == "" {
		source = "website-contact"
	}
	lead := models.Lead{
		Name:    body.Name,
		Email:   email,
		Phone:   body.Phone,
		Message: body.Message,
		Source:  source,
	}
	if err := db.GetDb().Create(&lead).Error; err != nil {
		return nil, false, err
	}
	return &lead, true, nil
}

// BookingsForLeadEmail is the soft join between the CRM and the booking
// store: case-insensitive email match, no foreign key.
func BookingsForLeadEmail(email string) []models.Booking {
	target := utils.NormalizeEmail(email)
	matched := []models.Booking{}
	if target == "" {
		return matched
	}
	for _, b := range store.Get().ReadAll() {
		if utils.NormalizeEmail(b.CustomerEmail) == target {
			matched = append(matched, b)
		}
	}
	return matched
}
