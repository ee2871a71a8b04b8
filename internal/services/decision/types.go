package decision

// EvalContext is the request/session context one evaluation runs
// against. It is built by the caller and passed explicitly; the engine
// keeps no request state of its own.
type EvalContext struct {
	SessionID string

	// IsAdmin is true when the acting user authenticated against the
	// settings surface. IsBackground flags asynchronous storefront/API
	// calls; page-type detection is unreliable during those, so several
	// checks exempt them.
	IsAdmin        bool
	IsBackground   bool
	IsCheckoutPage bool

	// LoggedIn and Roles describe the visitor's identity. Roles is
	// empty for guests.
	LoggedIn bool
	Roles    []string

	// ShippingCountry and BillingCountry may each be empty when the
	// customer record is partially or entirely unavailable.
	ShippingCountry string
	BillingCountry  string
}

// Country resolves the country the decision runs against: shipping
// first, billing as fallback. Empty means the customer context is
// entirely unavailable.
func (c EvalContext) Country() string {
	if c.ShippingCountry != "" {
		return c.ShippingCountry
	}
	return c.BillingCountry
}
