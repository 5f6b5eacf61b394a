package config

import (
	"fmt"
	"os"
	"strconv"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"

// DEPOSIT_RATE is the authoritative advance-payment fraction. The quote
// endpoint and the booking/confirmation paths all read this constant so the
// displayed estimate always matches the charged deposit.
const DEPOSIT_RATE = 0.20

// CHILD_RATE is the per-child price as a fraction of the adult base price.
const CHILD_RATE = 0.5

const BOOKING_SOURCE = "website-booking"

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

func AppHost() string {
	return os.Getenv("APP_HOST")
}

func OperatorEmail() string {
	email := os.Getenv("OPERATOR_EMAIL")
	if email == "" {
		email = "bookings@savanablu.com"
	}
	return email
}

func MailFrom() string {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@savanablu.com"
	}
	return from
}

// FXRate converts USD amounts into the secondary display currency. Defaults
// to 1 when unset or malformed.
func FXRate() float64 {
	rate, err := strconv.ParseFloat(os.Getenv("FX_RATE"), 64)
	if err != nil || rate <= 0 {
		return 1
	}
	return rate
}

func DataDir() string {
	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "data"
	}
	return dir
}
