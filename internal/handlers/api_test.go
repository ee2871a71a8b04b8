package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"feegate/internal/models"
	"feegate/internal/repositories"
	"feegate/internal/services/cart"
	"feegate/internal/services/decision"
	"feegate/internal/services/order"
	"feegate/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memOrderRepo is an in-memory repositories.OrderRepository for handler
// tests.
type memOrderRepo struct {
	orders map[string]*models.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*models.Order)}
}

func (r *memOrderRepo) Create(o *models.Order) error {
	if _, ok := r.orders[o.OrderNumber]; ok {
		return repositories.ErrDuplicateOrder
	}
	o.ID = uint(len(r.orders) + 1)
	r.orders[o.OrderNumber] = o
	return nil
}

func (r *memOrderRepo) Save(o *models.Order) error {
	r.orders[o.OrderNumber] = o
	return nil
}

func (r *memOrderRepo) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	o, ok := r.orders[orderNumber]
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}
	return o, nil
}

func (r *memOrderRepo) GetBySessionID(sessionID string) ([]models.Order, error) {
	var result []models.Order
	for _, o := range r.orders {
		if o.SessionID == sessionID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	store := session.NewMemoryStore()
	engine := decision.NewService(store)
	carts := cart.NewService(store, engine, nil)
	orders := order.NewService(newMemOrderRepo(), carts, engine, nil)

	app := fiber.New()
	SetupRoutes(app, &Handlers{
		Session:    NewSessionHandler(),
		Cart:       NewCartHandler(carts),
		Storefront: NewStorefrontHandler(carts),
		Checkout:   NewCheckoutHandler(orders),
		Status:     NewStatusHandler(engine, carts),
		Admin:      NewAdminHandler(nil),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	fields := map[string]json.RawMessage{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &fields), "body: %s", raw)
	}
	return resp, fields
}

func createSession(t *testing.T, app *fiber.App, body interface{}) string {
	t.Helper()
	resp, fields := doJSON(t, app, "POST", "/api/session", "", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var token string
	require.NoError(t, json.Unmarshal(fields["token"], &token))
	require.NotEmpty(t, token)
	return token
}

func decodeDecision(t *testing.T, raw json.RawMessage) models.FeeDecision {
	t.Helper()
	var d models.FeeDecision
	require.NoError(t, json.Unmarshal(raw, &d))
	return d
}

func TestSessionRequired(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/cart", "/api/fees/status", "/api/storefront/cart/fees"} {
		resp, _ := doJSON(t, app, "GET", path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, _ := doJSON(t, app, "GET", "/api/cart", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCartFlowWithEligibleCustomer(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app, nil)

	resp, fields := doJSON(t, app, "PUT", "/api/cart/customer", token,
		fiber.Map{"shipping_country": "US"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, fields = doJSON(t, app, "POST", "/api/cart/items", token,
		fiber.Map{"sku": "sku-1", "name": "Widget", "price": 100.0, "quantity": 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d := decodeDecision(t, fields["decision"])
	assert.True(t, d.Passed)

	resp, fields = doJSON(t, app, "PUT", "/api/cart/shipping", token,
		fiber.Map{"amount": 20.0})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var crt models.Cart
	require.NoError(t, json.Unmarshal(fields["cart"], &crt))
	require.Len(t, crt.Fees, 2)
	assert.InDelta(t, 18.0, crt.Fees[0].Amount, 1e-9)
	assert.InDelta(t, 54.69, crt.Fees[1].Amount, 1e-9)
}

func TestStorefrontFeesMinorUnits(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app, nil)

	_, _ = doJSON(t, app, "PUT", "/api/cart/customer", token,
		fiber.Map{"shipping_country": "US"})
	_, _ = doJSON(t, app, "POST", "/api/cart/items", token,
		fiber.Map{"sku": "sku-1", "name": "Widget", "price": 100.0, "quantity": 1})

	resp, fields := doJSON(t, app, "GET", "/api/storefront/cart/fees", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var records []cart.FeeRecord
	require.NoError(t, json.Unmarshal(fields["fees"], &records))
	require.Len(t, records, 2)
	assert.Equal(t, cart.FeeRecord{ID: "fee", Name: "Fee", Amount: 1500}, records[0])
	assert.Equal(t, cart.FeeRecord{ID: "standard-fee", Name: "Standard Fee", Amount: 5469}, records[1])
}

func TestStatusEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app, nil)

	// No evaluation yet: the endpoint computes a fresh decision. With no
	// customer record the engine reports the no-cache failure.
	resp, fields := doJSON(t, app, "GET", "/api/fees/status", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var d models.FeeDecision
	require.NoError(t, json.Unmarshal(fields["passed"], &d.Passed))
	require.NoError(t, json.Unmarshal(fields["reason"], &d.Reason))
	assert.False(t, d.Passed)
	assert.Equal(t, decision.ReasonNoCache, d.Reason)

	// After a cart evaluation the stored status record is returned.
	_, _ = doJSON(t, app, "PUT", "/api/cart/customer", token,
		fiber.Map{"shipping_country": "US"})
	resp, fields = doJSON(t, app, "GET", "/api/fees/status", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(fields["passed"], &d.Passed))
	require.NoError(t, json.Unmarshal(fields["reason"], &d.Reason))
	assert.True(t, d.Passed)
	assert.Equal(t, decision.ReasonPassed, d.Reason)
}

func TestRoleMismatchOverAPI(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app, fiber.Map{"logged_in": true, "roles": []string{"subscriber"}})

	resp, fields := doJSON(t, app, "PUT", "/api/cart/customer", token,
		fiber.Map{"shipping_country": "US"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d := decodeDecision(t, fields["decision"])
	assert.False(t, d.Passed)
	assert.Equal(t, decision.ReasonRoleMismatch, d.Reason)
}

func TestCheckoutOverAPI(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app, nil)

	_, _ = doJSON(t, app, "PUT", "/api/cart/customer", token,
		fiber.Map{"shipping_country": "US"})
	_, _ = doJSON(t, app, "POST", "/api/cart/items", token,
		fiber.Map{"sku": "sku-1", "name": "Widget", "price": 100.0, "quantity": 1})

	resp, fields := doJSON(t, app, "POST", "/api/checkout", token, fiber.Map{})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var o models.Order
	require.NoError(t, json.Unmarshal(fields["order"], &o))
	require.Len(t, o.FeeItems, 2)
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.InDelta(t, 100+15+54.69, o.Total, 1e-9)

	// The order is retrievable by its number within the same session.
	resp, fields = doJSON(t, app, "GET", fmt.Sprintf("/api/orders/%s", o.OrderNumber), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Another session must not see it.
	otherToken := createSession(t, app, nil)
	resp, _ = doJSON(t, app, "GET", fmt.Sprintf("/api/orders/%s", o.OrderNumber), otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCheckoutEmptyCartOverAPI(t *testing.T) {
	app := newTestApp(t)
	token := createSession(t, app, nil)

	resp, _ := doJSON(t, app, "POST", "/api/checkout", token, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
