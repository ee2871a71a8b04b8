package models

// FeeDecision is the outcome of one fee-eligibility evaluation.
// Reason is always non-empty; it is the only audit trail for a decision.
type FeeDecision struct {
	Passed bool   `json:"passed"`
	Reason string `json:"reason"`
}

// CachedDecision is a FeeDecision stamped with the unix time it was made.
// It is stored in the visitor session and trusted only while fresh; the
// age check happens at read time, never on a schedule.
type CachedDecision struct {
	Passed    bool   `json:"passed"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// FreshAt reports whether the cached decision is still trustworthy at
// the given unix time, for the given maximum age in seconds.
func (d CachedDecision) FreshAt(now int64, maxAgeSeconds int64) bool {
	return now-d.Timestamp <= maxAgeSeconds
}
