package cart

import (
	"context"
	"testing"

	"feegate/internal/models"
	"feegate/internal/services/decision"
	"feegate/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService(store session.Store) *Service {
	engine := decision.NewService(store)
	return NewService(store, engine, nil)
}

func usCustomer() models.CustomerInfo {
	return models.CustomerInfo{ShippingCountry: "US"}
}

func TestGetCreatesEmptyCart(t *testing.T) {
	svc := newTestCartService(session.NewMemoryStore())

	cart, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", cart.SessionID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestAddItemAppliesFeesForEligibleCustomer(t *testing.T) {
	svc := newTestCartService(session.NewMemoryStore())
	ec := decision.EvalContext{SessionID: "sess-1"}

	_, _, err := svc.SetCustomer(context.Background(), ec, usCustomer())
	require.NoError(t, err)

	cart, d, err := svc.AddItem(context.Background(), ec, models.CartItem{
		SKU: "sku-1", Name: "Widget", Price: 50, Quantity: 2,
	})
	require.NoError(t, err)
	assert.True(t, d.Passed)

	require.Len(t, cart.Fees, 2)
	assert.Equal(t, "Fee", cart.Fees[0].Name)
	assert.InDelta(t, 15.0, cart.Fees[0].Amount, 1e-9) // 15% of 100
	assert.Equal(t, "Standard Fee", cart.Fees[1].Name)
	assert.InDelta(t, 54.69, cart.Fees[1].Amount, 1e-9)
	assert.InDelta(t, 100+15+54.69, cart.Total, 1e-9)
}

func TestShippingEntersFeeBase(t *testing.T) {
	svc := newTestCartService(session.NewMemoryStore())
	ec := decision.EvalContext{SessionID: "sess-1"}

	_, _, err := svc.SetCustomer(context.Background(), ec, usCustomer())
	require.NoError(t, err)
	_, _, err = svc.AddItem(context.Background(), ec, models.CartItem{
		SKU: "sku-1", Name: "Widget", Price: 100, Quantity: 1,
	})
	require.NoError(t, err)

	cart, d, err := svc.SetShipping(context.Background(), ec, 20)
	require.NoError(t, err)
	require.True(t, d.Passed)
	require.Len(t, cart.Fees, 2)
	assert.InDelta(t, 18.0, cart.Fees[0].Amount, 1e-9) // 15% of 120
}

func TestIneligibleCountryClearsFees(t *testing.T) {
	store := session.NewMemoryStore()
	svc := newTestCartService(store)
	ec := decision.EvalContext{SessionID: "sess-1"}

	_, _, err := svc.SetCustomer(context.Background(), ec, usCustomer())
	require.NoError(t, err)
	cart, _, err := svc.AddItem(context.Background(), ec, models.CartItem{
		SKU: "sku-1", Name: "Widget", Price: 100, Quantity: 1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, cart.Fees)

	// Customer moves abroad: the next recalculation must drop the fees.
	cart, d, err := svc.SetCustomer(context.Background(), ec, models.CustomerInfo{ShippingCountry: "PT"})
	require.NoError(t, err)
	assert.False(t, d.Passed)
	assert.Contains(t, d.Reason, "PT")
	assert.Empty(t, cart.Fees)
	assert.InDelta(t, 100.0, cart.Total, 1e-9)
}

func TestCartPersistsAcrossRequests(t *testing.T) {
	store := session.NewMemoryStore()
	svc := newTestCartService(store)
	ec := decision.EvalContext{SessionID: "sess-1"}

	_, _, err := svc.AddItem(context.Background(), ec, models.CartItem{
		SKU: "sku-1", Name: "Widget", Price: 10, Quantity: 3,
	})
	require.NoError(t, err)

	cart, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount)
	assert.InDelta(t, 30.0, cart.Subtotal, 1e-9)

	// Quantities merge by SKU.
	_, _, err = svc.AddItem(context.Background(), ec, models.CartItem{
		SKU: "sku-1", Name: "Widget", Price: 10, Quantity: 2,
	})
	require.NoError(t, err)
	cart, err = svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 5, cart.ItemCount)
}

func TestFeeRecordsUseMinorUnits(t *testing.T) {
	cart := &models.Cart{
		Fees: []models.FeeLine{
			{ID: "fee", Name: "Fee", Amount: 18.0},
			{ID: "standard-fee", Name: "Standard Fee", Amount: 54.69},
		},
	}

	records := FeeRecords(cart)
	require.Len(t, records, 2)
	assert.Equal(t, FeeRecord{ID: "fee", Name: "Fee", Amount: 1800}, records[0])
	assert.Equal(t, FeeRecord{ID: "standard-fee", Name: "Standard Fee", Amount: 5469}, records[1])
}

func TestClear(t *testing.T) {
	svc := newTestCartService(session.NewMemoryStore())
	ec := decision.EvalContext{SessionID: "sess-1"}

	_, _, err := svc.AddItem(context.Background(), ec, models.CartItem{
		SKU: "sku-1", Name: "Widget", Price: 10, Quantity: 1,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(context.Background(), "sess-1"))

	cart, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
