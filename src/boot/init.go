package boot

import (
	"context"
	"log"
	"os"
	"savanablu/src/common"
	"savanablu/src/db"
	"savanablu/src/lib"
	awslib "savanablu/src/lib/aws"
	"savanablu/src/models"
	"savanablu/src/utils"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Tour{},
		&models.TourPackage{},
		&models.PromoCode{},
		&models.Lead{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	utils.SeedCatalog()
	utils.SeedAdminUser()

	return db
}

// InitStore surfaces booking-store connectivity at startup. The store itself
// degrades to the file backend, so this only reports, never fails boot.
func InitStore() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := lib.CheckRedis(ctx); err != nil {
		log.Printf("Redis unreachable, booking store will run on the file fallback: %s\n", err.Error())
		return
	}
	log.Println("Booking store primary (redis) is reachable")
}

// InitScheduler starts the background sweep that repairs lost payment links
// and catches up on missed provider callbacks.
func InitScheduler() {
	id, err := common.StartReconcileJob(10 * time.Minute)
	if err != nil {
		log.Printf("Error scheduling reconciliation job: %s\n", err.Error())
		return
	}
	log.Printf("Reconciliation job scheduled: %s\n", *id)
}

func StopScheduler() {
	common.StopReconcileJob()
}

// InitMailConsumers subscribes to the email queue when delivery is routed
// through a broker. A direct driver (smtp, ses) needs no consumer.
func InitMailConsumers() {
	switch os.Getenv("MAIL_DRIVER") {
	case "sqs":
		c := awslib.NewSQSConsumer(os.Getenv("EMAIL_QUEUE"), common.EmailsToSendConsumer)
		c.Listen()
	case "kafka":
		go common.KafkaEmailsToSendConsumer()
	}
}
