// ABOUTME: Quota domain model for the day-scoped enrichment counter
// ABOUTME: Holds the result of a ledger increment and the snapshot attached to outcomes

package domain

// QuotaSnapshot describes usage for one identity on one day
type QuotaSnapshot struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
	Count     int `json:"count"`
}

// QuotaResult is returned by a ledger increment
type QuotaResult struct {
	Allowed bool
	QuotaSnapshot
}

// Snapshot returns a copy of the usage numbers
func (r QuotaResult) Snapshot() *QuotaSnapshot {
	s := r.QuotaSnapshot
	return &s
}
