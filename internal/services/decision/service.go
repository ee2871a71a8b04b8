package decision

import (
	"context"
	"log"
	"strings"
	"time"

	"feegate/internal/models"
	"feegate/internal/session"
)

// Service evaluates fee eligibility for a request context. It is
// stateless apart from the two session-scoped records it maintains (the
// cached decision and the status record).
type Service struct {
	sessions session.Store
	now      func() time.Time
}

// NewService creates a decision engine backed by the given session
// store. The store may be a degraded no-op implementation; the engine
// then simply never sees a cached decision.
func NewService(sessions session.Store) *Service {
	if sessions == nil {
		panic("session store is required")
	}
	return &Service{
		sessions: sessions,
		now:      time.Now,
	}
}

// Evaluate runs the decision sequence for the given context. When
// requireCheckout is true the visitor must be on the checkout page
// unless the request is an asynchronous background call.
//
// Exactly one FeeDecision is returned per call, and every call updates
// the session status record with it. Decisions reached with a known
// country are cached for the fallback window; the cache-fallback pass
// in rule 5 is not re-cached.
func (s *Service) Evaluate(ctx context.Context, ec EvalContext, requireCheckout bool) models.FeeDecision {
	d := s.decide(ctx, ec, requireCheckout)
	s.recordStatus(ctx, ec.SessionID, d)
	log.Printf("fee decision for session %s: passed=%t reason=%q", ec.SessionID, d.Passed, d.Reason)
	return d
}

func (s *Service) decide(ctx context.Context, ec EvalContext, requireCheckout bool) models.FeeDecision {
	// Rule 1: administrators browsing the store in a foreground request.
	if ec.IsAdmin && !ec.IsBackground {
		return fail(ReasonAdminContext)
	}

	// Rule 2: checkout-page requirement. Background calls are exempt
	// because page detection is unreliable during them.
	if requireCheckout && !ec.IsCheckoutPage && !ec.IsBackground {
		return fail(ReasonNotCheckout)
	}

	// Rule 3: logged-in visitors with roles must include "customer".
	// A logged-in visitor with no roles at all falls through.
	if ec.LoggedIn && len(ec.Roles) > 0 && !hasRole(ec.Roles, RoleCustomer) {
		return fail(ReasonRoleMismatch)
	}

	country := ec.Country()

	// Rule 5: no customer context at all. A fresh positive cached
	// decision may stand in; that fallback pass is not re-cached.
	if country == "" {
		if cached, ok := s.readCache(ctx, ec.SessionID); ok && cached.Passed {
			return models.FeeDecision{Passed: true, Reason: ReasonCachedFallback}
		}
		return fail(ReasonNoCache)
	}

	// Rule 6: country gate.
	normalized := strings.ToUpper(country)
	if normalized != TargetCountry {
		d := fail("country " + normalized + " not eligible")
		s.writeCache(ctx, ec.SessionID, d)
		return d
	}

	// Rule 7: all filters passed.
	d := models.FeeDecision{Passed: true, Reason: ReasonPassed}
	s.writeCache(ctx, ec.SessionID, d)
	return d
}

// Status returns the session's last recorded decision, if any.
func (s *Service) Status(ctx context.Context, sessionID string) (models.FeeDecision, bool) {
	var d models.FeeDecision
	ok, err := s.sessions.Get(ctx, sessionID, statusField, &d)
	if err != nil {
		log.Printf("status read failed for session %s: %v", sessionID, err)
		return models.FeeDecision{}, false
	}
	return d, ok
}

func (s *Service) readCache(ctx context.Context, sessionID string) (models.CachedDecision, bool) {
	var cached models.CachedDecision
	ok, err := s.sessions.Get(ctx, sessionID, cacheField, &cached)
	if err != nil {
		log.Printf("decision cache read failed for session %s: %v", sessionID, err)
		return models.CachedDecision{}, false
	}
	if !ok {
		return models.CachedDecision{}, false
	}
	if !cached.FreshAt(s.now().Unix(), int64(CacheTTL.Seconds())) {
		// Expired entries are treated as absent; no eviction needed.
		return models.CachedDecision{}, false
	}
	return cached, true
}

func (s *Service) writeCache(ctx context.Context, sessionID string, d models.FeeDecision) {
	cached := models.CachedDecision{
		Passed:    d.Passed,
		Reason:    d.Reason,
		Timestamp: s.now().Unix(),
	}
	if err := s.sessions.Set(ctx, sessionID, cacheField, cached); err != nil {
		log.Printf("decision cache write failed for session %s: %v", sessionID, err)
	}
}

func (s *Service) recordStatus(ctx context.Context, sessionID string, d models.FeeDecision) {
	if err := s.sessions.Set(ctx, sessionID, statusField, d); err != nil {
		log.Printf("status write failed for session %s: %v", sessionID, err)
	}
}

func fail(reason string) models.FeeDecision {
	return models.FeeDecision{Passed: false, Reason: reason}
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
