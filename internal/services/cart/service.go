// Package cart manages the session-scoped shopping cart and keeps its
// fee lines in sync with the decision engine on every recalculation.
package cart

import (
	"context"
	"log"
	"strings"
	"time"

	"feegate/internal/models"
	"feegate/internal/repositories"
	"feegate/internal/services/decision"
	"feegate/internal/services/fees"
	"feegate/internal/session"
)

const cartField = "cart"

// FeeRecord is the headless (storefront API) representation of a fee
// line: amounts carry minor-unit precision.
type FeeRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Amount  int64  `json:"amount"`
	Taxable bool   `json:"taxable"`
}

type Service struct {
	sessions session.Store
	engine   *decision.Service
	settings repositories.SettingsRepository
}

func NewService(sessions session.Store, engine *decision.Service, settings repositories.SettingsRepository) *Service {
	if sessions == nil {
		panic("session store is required")
	}
	if engine == nil {
		panic("decision engine is required")
	}
	return &Service{sessions: sessions, engine: engine, settings: settings}
}

// Get loads the session's cart, creating an empty one if absent.
func (s *Service) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	ok, err := s.sessions.Get(ctx, sessionID, cartField, &cart)
	if err != nil {
		return nil, err
	}
	if !ok {
		cart = models.Cart{SessionID: sessionID, Items: make(map[string]*models.CartItem)}
	}
	if cart.Items == nil {
		cart.Items = make(map[string]*models.CartItem)
	}
	return &cart, nil
}

// AddItem puts an item in the cart (merging quantities by SKU) and
// recalculates.
func (s *Service) AddItem(ctx context.Context, ec decision.EvalContext, item models.CartItem) (*models.Cart, models.FeeDecision, error) {
	cart, err := s.Get(ctx, ec.SessionID)
	if err != nil {
		return nil, models.FeeDecision{}, err
	}
	if existing, ok := cart.Items[item.SKU]; ok {
		existing.Quantity += item.Quantity
		existing.Price = item.Price
	} else {
		cart.Items[item.SKU] = &models.CartItem{
			SKU:      item.SKU,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
	return s.recalculateAndSave(ctx, ec, cart)
}

// SetCustomer attaches the customer record (countries, identity) to the
// cart and recalculates.
func (s *Service) SetCustomer(ctx context.Context, ec decision.EvalContext, info models.CustomerInfo) (*models.Cart, models.FeeDecision, error) {
	cart, err := s.Get(ctx, ec.SessionID)
	if err != nil {
		return nil, models.FeeDecision{}, err
	}
	cart.Customer = &info
	return s.recalculateAndSave(ctx, ec, cart)
}

// SetShipping updates the shipping total and recalculates.
func (s *Service) SetShipping(ctx context.Context, ec decision.EvalContext, amount float64) (*models.Cart, models.FeeDecision, error) {
	cart, err := s.Get(ctx, ec.SessionID)
	if err != nil {
		return nil, models.FeeDecision{}, err
	}
	cart.Shipping = amount
	return s.recalculateAndSave(ctx, ec, cart)
}

// Recalculate re-evaluates fee eligibility for the cart and replaces its
// fee lines with the freshly computed set (or clears them on a failed
// decision), then recomputes totals. This is the cart-recalculation
// hook: it runs once per mutation and once per cart view.
func (s *Service) Recalculate(ctx context.Context, ec decision.EvalContext, cart *models.Cart) models.FeeDecision {
	ec = withCartCustomer(ec, cart)
	d := s.engine.Evaluate(ctx, ec, false)

	cart.Fees = nil
	if d.Passed {
		// Fee base excludes existing fee lines: subtotal + shipping only.
		cart.RecalculateTotals()
		for _, line := range fees.Compute(cart.Subtotal, cart.Shipping, s.feeSpecs()) {
			cart.Fees = append(cart.Fees, models.FeeLine{
				ID:      feeID(line.Name),
				Name:    line.Name,
				Amount:  line.Amount,
				Taxable: line.Taxable,
			})
		}
	}
	cart.RecalculateTotals()
	cart.LastUpdated = time.Now().Unix()
	return d
}

// FeeSpecs returns the active fee configuration: persisted settings when
// available, the built-in defaults otherwise.
func (s *Service) FeeSpecs() []models.FeeSetting {
	return s.feeSpecs()
}

// FeeRecords renders the cart's fee lines in the storefront API shape.
func FeeRecords(cart *models.Cart) []FeeRecord {
	records := make([]FeeRecord, 0, len(cart.Fees))
	for _, f := range cart.Fees {
		records = append(records, FeeRecord{
			ID:      f.ID,
			Name:    f.Name,
			Amount:  fees.MinorUnits(f.Amount),
			Taxable: f.Taxable,
		})
	}
	return records
}

// Clear drops the session's cart, used after checkout.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID, cartField)
}

func (s *Service) recalculateAndSave(ctx context.Context, ec decision.EvalContext, cart *models.Cart) (*models.Cart, models.FeeDecision, error) {
	d := s.Recalculate(ctx, ec, cart)
	if err := s.sessions.Set(ctx, ec.SessionID, cartField, cart); err != nil {
		return nil, d, err
	}
	return cart, d, nil
}

func (s *Service) feeSpecs() []models.FeeSetting {
	if s.settings == nil {
		return fees.DefaultSpecs()
	}
	specs, err := s.settings.FeeSettings()
	if err != nil {
		log.Printf("fee settings unavailable, using defaults: %v", err)
		return fees.DefaultSpecs()
	}
	if len(specs) == 0 {
		return fees.DefaultSpecs()
	}
	return specs
}

// withCartCustomer folds the cart's stored customer record into the
// evaluation context. A cart without a customer leaves both countries
// empty, which the engine treats as "customer unavailable".
func withCartCustomer(ec decision.EvalContext, cart *models.Cart) decision.EvalContext {
	if cart.Customer == nil {
		return ec
	}
	ec.ShippingCountry = cart.Customer.ShippingCountry
	ec.BillingCountry = cart.Customer.BillingCountry
	if cart.Customer.LoggedIn {
		ec.LoggedIn = true
		ec.Roles = cart.Customer.Roles
	}
	return ec
}

func feeID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
