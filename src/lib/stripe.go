package lib

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"savanablu/src/config"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

// GetStripeClient selects the live or sandbox key from the deployment
// environment, never from request input.
func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	if !config.IsProd() {
		if testKey := os.Getenv("STRIPE_TEST_SECRET_KEY"); testKey != "" {
			apiKey = testKey
		}
	}
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

type DepositIntentParams struct {
	AmountUSD     float64
	Description   string
	BookingID     string
	CustomerEmail string
	SuccessPath   string
	CancelPath    string
}

type DepositIntent struct {
	ID  string
	URL string
}

// CreateDepositIntent opens a hosted Checkout Session for the advance
// payment. Request shaping only; the caller decides what a failure means.
func CreateDepositIntent(p *DepositIntentParams) (*DepositIntent, error) {
	if p.AmountUSD <= 0 {
		return nil, errors.New("deposit amount must be positive")
	}
	sc := GetStripeClient()
	successUrl := fmt.Sprintf("%s%s", config.AppHost(), p.SuccessPath)
	cancelUrl := fmt.Sprintf("%s%s", config.AppHost(), p.CancelPath)
	cents := int64(math.Round(p.AmountUSD * 100))
	params := stripe.CheckoutSessionCreateParams{
		SuccessURL: stripe.String(successUrl),
		CancelURL:  stripe.String(cancelUrl),
		UIMode:     stripe.String("hosted"),
		Mode:       stripe.String("payment"),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(cents),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(p.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(p.CustomerEmail),
		Metadata: map[string]string{
			"bookingId": p.BookingID,
		},
	}
	checkoutSession, err := sc.V1CheckoutSessions.Create(context.Background(), &params)
	if err != nil {
		return nil, err
	}
	return &DepositIntent{ID: checkoutSession.ID, URL: checkoutSession.URL}, nil
}

// RetrieveDepositIntent re-fetches a Checkout Session, used by the
// reconciliation job to repair records whose link persist failed.
func RetrieveDepositIntent(id string) (*stripe.CheckoutSession, error) {
	sc := GetStripeClient()
	return sc.V1CheckoutSessions.Retrieve(context.Background(), id, &stripe.CheckoutSessionRetrieveParams{})
}
