// Package biztime provides time utilities for claim bookkeeping.
// All storage and transport use UTC. The claim month is the calendar month
// of the server clock in UTC, formatted "YYYY-MM"; it is the bucketing key
// for monthly claim-limit enforcement and must be computed the same way
// everywhere.
package biztime

import "time"

// ClaimMonthLayout is the storage format of a claim month bucket.
const ClaimMonthLayout = "2006-01"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ClaimMonth returns the claim month bucket for the given instant.
func ClaimMonth(t time.Time) string {
	return t.UTC().Format(ClaimMonthLayout)
}

// CurrentClaimMonth returns the claim month bucket for the current instant.
func CurrentClaimMonth() string {
	return ClaimMonth(NowUTC())
}
