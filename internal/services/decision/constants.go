package decision

import "time"

// TargetCountry is the only shipping destination fees apply to.
const TargetCountry = "US"

// RoleCustomer is the role a logged-in visitor must carry to stay
// eligible. Guests and logged-in visitors with an empty role set pass
// the role check.
const RoleCustomer = "customer"

// CacheTTL bounds how long a cached decision may stand in for a live
// one while the customer record is unavailable.
const CacheTTL = 5 * time.Minute

// Session fields owned by the engine.
const (
	cacheField  = "fee_decision"
	statusField = "fee_status"
)

// Decision reasons. The reason string is the only audit trail, so these
// are stable.
const (
	ReasonAdminContext   = "administrative context"
	ReasonNotCheckout    = "not checkout"
	ReasonRoleMismatch   = "role mismatch"
	ReasonNoCache        = "customer unavailable and no cache"
	ReasonCachedFallback = "using cached decision (customer temporarily unavailable)"
	ReasonPassed         = "filters passed, fees applied"
)
