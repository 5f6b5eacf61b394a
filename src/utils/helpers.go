package utils

import (
	"log"
	"math"
	"os"
	"savanablu/src/types"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func jwtKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// Round2 rounds to currency precision. All stored money fields go through
// this before persisting.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewBookingID returns a time-ordered opaque identifier. UUIDv7 keeps the
// collection naturally sorted by creation time.
func NewBookingID() string {
	id, err := uuid.NewV7()
	if err != nil {
		log.Printf("Error generating v7 uuid, falling back to v4: %s\n", err.Error())
		return uuid.NewString()
	}
	return id.String()
}

// NormalizeEmail is the soft-join contract between leads and bookings.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func GenerateJWT(email string, userId uint, role string) (string, error) {
	claims := types.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userId), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(jwtKey())
}
