package models

// Cart models for redis session-based storage.

type CartItem struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// FeeLine is a named monetary adjustment on a cart, independent of the
// product line items.
type FeeLine struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Taxable bool    `json:"taxable"`
}

// CustomerInfo carries the two independently settable address countries.
// A nil CustomerInfo on the cart means the customer record is not
// available for this request.
type CustomerInfo struct {
	ShippingCountry string `json:"shipping_country"`
	BillingCountry  string `json:"billing_country"`
	LoggedIn        bool   `json:"logged_in"`
	Roles           []string `json:"roles,omitempty"`
}

type Cart struct {
	SessionID   string               `json:"session_id"`
	Items       map[string]*CartItem `json:"items"` // keyed by SKU
	Customer    *CustomerInfo        `json:"customer,omitempty"`
	Subtotal    float64              `json:"subtotal"`
	Shipping    float64              `json:"shipping"`
	Fees        []FeeLine            `json:"fees"`
	Total       float64              `json:"total"`
	ItemCount   int                  `json:"item_count"`
	LastUpdated int64                `json:"last_updated"`
}

// FeeTotal sums the cart's fee lines.
func (c *Cart) FeeTotal() float64 {
	var total float64
	for _, f := range c.Fees {
		total += f.Amount
	}
	return total
}

// RecalculateTotals recomputes item subtotals, the cart subtotal and the
// grand total from the current items, shipping and fee lines.
func (c *Cart) RecalculateTotals() {
	c.Subtotal = 0
	c.ItemCount = 0
	for _, item := range c.Items {
		item.Subtotal = item.Price * float64(item.Quantity)
		c.Subtotal += item.Subtotal
		c.ItemCount += item.Quantity
	}
	c.Total = c.Subtotal + c.Shipping + c.FeeTotal()
}
