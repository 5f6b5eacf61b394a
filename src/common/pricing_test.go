package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTripTotal(t *testing.T) {
	cases := []struct {
		name      string
		basePrice float64
		adults    int
		children  int
		want      float64
	}{
		{"adults only", 100, 2, 0, 200},
		{"children at half price", 100, 2, 1, 250},
		{"single adult", 250, 1, 0, 250},
		{"zero adults coerced to one", 100, 0, 0, 100},
		{"negative children coerced to zero", 100, 2, -3, 200},
		{"negative base price coerced to zero", -50, 2, 1, 0},
		{"fractional base price", 85.5, 1, 1, 128.25},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ComputeTripTotal(c.basePrice, c.adults, c.children))
		})
	}
}

func TestComputeDiscount(t *testing.T) {
	percent := promoFixture("KARIBU10", "percent", 10, true)
	assert.Equal(t, 25.0, ComputeDiscount(percent, 250))

	fixed := promoFixture("EARLYBIRD25", "fixed", 25, true)
	assert.Equal(t, 25.0, ComputeDiscount(fixed, 250))

	// never discounts below zero total
	bigFixed := promoFixture("BIG", "fixed", 500, true)
	assert.Equal(t, 250.0, ComputeDiscount(bigFixed, 250))

	fullPercent := promoFixture("FREE", "percent", 150, true)
	assert.Equal(t, 250.0, ComputeDiscount(fullPercent, 250))

	unknownType := promoFixture("ODD", "bogo", 10, true)
	assert.Equal(t, 0.0, ComputeDiscount(unknownType, 250))
}
