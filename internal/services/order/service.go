// Package order finalizes carts into persisted orders, applying fee
// lines idempotently by name.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"

	"feegate/internal/models"
	"feegate/internal/repositories"
	"feegate/internal/services/cart"
	"feegate/internal/services/decision"
	"feegate/internal/services/fees"
	"feegate/internal/services/payment"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

type Service struct {
	orders   repositories.OrderRepository
	carts    *cart.Service
	engine   *decision.Service
	payments *payment.Service
}

func NewService(orders repositories.OrderRepository, carts *cart.Service, engine *decision.Service, payments *payment.Service) *Service {
	if orders == nil {
		panic("order repository is required")
	}
	if carts == nil {
		panic("cart service is required")
	}
	if engine == nil {
		panic("decision engine is required")
	}
	return &Service{orders: orders, carts: carts, engine: engine, payments: payments}
}

// Checkout finalizes the session's cart into a persisted order. The
// decision engine runs once more with the checkout-page requirement;
// fees are applied only on a pass, and only for names not already
// present on the order. An optional card token triggers payment
// capture when Stripe is configured.
func (s *Service) Checkout(ctx context.Context, ec decision.EvalContext, cardToken string) (*models.Order, models.FeeDecision, error) {
	c, err := s.carts.Get(ctx, ec.SessionID)
	if err != nil {
		return nil, models.FeeDecision{}, err
	}
	if len(c.Items) == 0 {
		return nil, models.FeeDecision{}, ErrEmptyCart
	}
	c.RecalculateTotals()

	d := s.engine.Evaluate(ctx, withCustomer(ec, c), true)

	o := &models.Order{
		OrderNumber: uuid.NewString(),
		SessionID:   ec.SessionID,
		Subtotal:    c.Subtotal,
		Shipping:    c.Shipping,
		Status:      models.OrderStatusPending,
	}
	if err := s.orders.Create(o); err != nil {
		return nil, d, fmt.Errorf("failed to create order: %w", err)
	}

	if d.Passed {
		lines := fees.Compute(o.Subtotal, o.Shipping, s.carts.FeeSpecs())
		if err := s.ApplyFees(o, lines); err != nil {
			return nil, d, err
		}
	} else {
		o.CalculateTotals()
		if err := s.orders.Save(o); err != nil {
			return nil, d, fmt.Errorf("failed to save order: %w", err)
		}
	}

	if cardToken != "" && s.payments != nil {
		ref, err := s.payments.Capture(o.Total, o.OrderNumber, cardToken)
		switch {
		case errors.Is(err, payment.ErrPaymentsDisabled):
			log.Printf("payments disabled, order %s stays pending", o.OrderNumber)
		case err != nil:
			return nil, d, err
		default:
			o.Status = models.OrderStatusPaid
			o.PaymentRef = ref
			if err := s.orders.Save(o); err != nil {
				return nil, d, fmt.Errorf("failed to save order: %w", err)
			}
		}
	}

	if err := s.carts.Clear(ctx, ec.SessionID); err != nil {
		log.Printf("failed to clear cart for session %s: %v", ec.SessionID, err)
	}
	return o, d, nil
}

// ApplyFees adds the computed fee lines to the order, skipping any fee
// whose name already exists on it, then recalculates totals and
// persists. Safe to call more than once for the same order.
func (s *Service) ApplyFees(o *models.Order, lines []fees.Line) error {
	added := 0
	for _, line := range lines {
		if o.HasFeeItem(line.Name) {
			continue
		}
		o.FeeItems = append(o.FeeItems, models.OrderFeeItem{
			OrderID: o.ID,
			Name:    line.Name,
			Amount:  line.Amount,
			Taxable: line.Taxable,
		})
		added++
	}
	o.CalculateTotals()
	if err := s.orders.Save(o); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	if added > 0 {
		log.Printf("applied %d fee line(s) to order %s", added, o.OrderNumber)
	}
	return nil
}

// Get returns a persisted order by its number.
func (s *Service) Get(orderNumber string) (*models.Order, error) {
	return s.orders.GetByOrderNumber(orderNumber)
}

func withCustomer(ec decision.EvalContext, c *models.Cart) decision.EvalContext {
	if c.Customer == nil {
		return ec
	}
	ec.ShippingCountry = c.Customer.ShippingCountry
	ec.BillingCountry = c.Customer.BillingCountry
	if c.Customer.LoggedIn {
		ec.LoggedIn = true
		ec.Roles = c.Customer.Roles
	}
	return ec
}
