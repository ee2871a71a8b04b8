// Package payment captures checkout payments through Stripe. Capture is
// optional: without a configured key, orders simply stay pending.
package payment

import (
	"errors"
	"fmt"

	"feegate/internal/services/fees"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

var ErrPaymentsDisabled = errors.New("payments are not configured")

type Service struct {
	key string
}

// NewService creates the payment service. An empty key disables capture.
func NewService(key string) *Service {
	if key != "" {
		stripe.Key = key
	}
	return &Service{key: key}
}

// Enabled reports whether a Stripe key is configured.
func (s *Service) Enabled() bool {
	return s.key != ""
}

// Capture charges the given card token for the order total and returns
// the charge reference.
func (s *Service) Capture(amount float64, orderNumber, cardToken string) (string, error) {
	if !s.Enabled() {
		return "", ErrPaymentsDisabled
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(fees.MinorUnits(amount)),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Description: stripe.String(fmt.Sprintf("Order %s", orderNumber)),
	}
	if err := params.SetSource(cardToken); err != nil {
		return "", fmt.Errorf("invalid payment source: %w", err)
	}

	ch, err := charge.New(params)
	if err != nil {
		return "", fmt.Errorf("payment capture failed: %w", err)
	}
	return ch.ID, nil
}
