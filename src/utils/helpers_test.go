package utils

import (
	"os"
	"savanablu/src/types"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 45.0, Round2(225*0.2))
	assert.Equal(t, 128.25, Round2(128.25))
	assert.Equal(t, 0.1, Round2(0.10000000001))
	assert.Equal(t, 2.35, Round2(2.345001))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "asha@example.com", NormalizeEmail("  Asha@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestNewBookingIDIsUniqueAndOrdered(t *testing.T) {
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 100; i++ {
		id := NewBookingID()
		assert.False(t, seen[id])
		seen[id] = true
		// v7 ids sort by creation time
		assert.True(t, id > prev)
		prev = id
	}
}

func TestGenerateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", "secret")
	token, err := GenerateJWT("ops@savanablu.com", 7, "admin")
	assert.Nil(t, err)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	assert.Nil(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "ops@savanablu.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "7", claims.Subject)
}
