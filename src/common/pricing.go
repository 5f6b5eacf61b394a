package common

import "savanablu/src/config"

// ComputeTripTotal prices a party against a catalog base price. Adults pay
// the base price, children half. Bad input is coerced rather than rejected
// so a malformed widget submission still produces a sane quote.
func ComputeTripTotal(basePrice float64, adults int, children int) float64 {
	if basePrice < 0 {
		basePrice = 0
	}
	if adults < 1 {
		adults = 1
	}
	if children < 0 {
		children = 0
	}
	return basePrice*float64(adults) + basePrice*config.CHILD_RATE*float64(children)
}
