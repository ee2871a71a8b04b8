/*
Package decision implements the fee decision engine.

One evaluation answers a single question: should fees be applied to the
current visitor's cart or order? The answer is always a concrete
FeeDecision with a human-readable reason; business failures are negative
decisions, never errors.

Rules run in a fixed order and the first match wins:

 1. administrators in foreground requests never get fees
 2. outside the checkout page fees are withheld (background requests
    exempt), when the caller requires checkout
 3. logged-in visitors with a non-empty role set must carry "customer"
 4. the country is shipping first, billing as fallback
 5. with no country at all, a fresh (≤5 min) positive cached decision
    from the session may stand in; otherwise the evaluation fails
 6. only US destinations pass

Every evaluation records its outcome as the session status record, which
the status endpoint reads back. Decisions made with a known country are
additionally cached for the five-minute fallback window; the fallback
pass itself is never re-cached.
*/
package decision
