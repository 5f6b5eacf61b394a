package utils

import (
	"log"
	"os"
	"savanablu/src/db"
	"savanablu/src/models"
	"savanablu/src/types"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedCatalog loads a starter catalog and promo set when the tables are
// empty, so a fresh deployment has something to sell.
func SeedCatalog() {
	d := db.GetDb()
	var count int64
	if err := d.Model(&models.Tour{}).Count(&count).Error; err != nil {
		log.Printf("[Seed] could not count tours: %s\n", err.Error())
		return
	}
	if count > 0 {
		return
	}
	tours := []models.Tour{
		{Title: "Saadani Safari Blue", Location: "Saadani National Park", BasePriceUSD: 250, Hours: 12},
		{Title: "Mnemba Island Snorkeling", Location: "Mnemba Atoll", BasePriceUSD: 85, Hours: 6},
		{Title: "Stone Town Spice Tour", Location: "Zanzibar", BasePriceUSD: 55, Hours: 5},
	}
	packages := []models.TourPackage{
		{Title: "Selous and Zanzibar Explorer", BasePriceUSD: 1450, Days: 5},
		{Title: "Northern Circuit Classic", BasePriceUSD: 2200, Days: 7},
	}
	promos := []models.PromoCode{
		{Code: "KARIBU10", DiscountType: types.DISCOUNT_PERCENT, Value: 10, Active: true},
		{Code: "EARLYBIRD25", DiscountType: types.DISCOUNT_FIXED, Value: 25, Active: true},
	}
	if err := d.Transaction(func(tx *gorm.DB) error {
		for i := range tours {
			tours[i].Slug = slug.Make(tours[i].Title)
			tours[i].Active = true
			if err := tx.Create(&tours[i]).Error; err != nil {
				return err
			}
		}
		for i := range packages {
			packages[i].Slug = slug.Make(packages[i].Title)
			packages[i].Active = true
			if err := tx.Create(&packages[i]).Error; err != nil {
				return err
			}
		}
		for i := range promos {
			if err := tx.Create(&promos[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		log.Printf("[Seed] catalog seed failed: %s\n", err.Error())
		return
	}
	log.Printf("[Seed] seeded %d tours, %d packages, %d promos\n", len(tours), len(packages), len(promos))
}

// SeedAdminUser creates the operator account from env on first boot.
func SeedAdminUser() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	d := db.GetDb()
	var count int64
	if err := d.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Printf("[Seed] could not check admin user: %s\n", err.Error())
		return
	}
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Seed] could not hash admin password: %s\n", err.Error())
		return
	}
	user := models.User{
		Name:         "Operator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := d.Create(&user).Error; err != nil {
		log.Printf("[Seed] admin user seed failed: %s\n", err.Error())
		return
	}
	log.Printf("[Seed] created admin user %s\n", email)
}
