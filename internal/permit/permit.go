// Package permit holds the permit classification rules.
//
// This is pure domain logic - no I/O, no side effects. Everything the rules
// need arrives as arguments (including "today"), which keeps the rule chain
// deterministic and testable without wall-clock dependence.
package permit

import "bahay/pkg/dates"

// Status is the derived state of a business permit.
type Status string

const (
	// StatusPending is the state of every new registration until an admin
	// verifies it. The evaluator never returns pending.
	StatusPending Status = "pending"
	StatusValid   Status = "valid"
	// StatusNearExpiry marks permits with 30 or fewer days remaining.
	StatusNearExpiry Status = "near-expiry"
	StatusExpired    Status = "expired"
)

// NearExpiryWindowDays is the inclusive threshold for near-expiry
// classification: exactly 30 days remaining is near-expiry, 31 is not.
const NearExpiryWindowDays = 30

// ParseStatus validates a raw status string at a trust boundary.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPending, StatusValid, StatusNearExpiry, StatusExpired:
		return Status(raw), true
	}
	return "", false
}

// Evaluate classifies a permit by its expiry date relative to today.
// Rule priority (fail-fast):
//  1. Already past expiry (same-day expiry counts as 0 days remaining, not -1)
//  2. Inside the near-expiry window
//  3. Otherwise valid
//
// The issue date is accepted but unused here; policy on minimum permit length
// is enforced at registration time, not at evaluation time.
func Evaluate(_, expiry, today dates.Date) Status {
	daysUntilExpiry := today.DaysUntil(expiry)

	if daysUntilExpiry < 0 {
		return StatusExpired
	}
	if daysUntilExpiry <= NearExpiryWindowDays {
		return StatusNearExpiry
	}
	return StatusValid
}

// CanActivate reports whether a listing may go active: the permit must be
// valid and the house must have a pinned location (both coordinates present).
func CanActivate(status Status, latitude, longitude *float64) bool {
	return status == StatusValid && latitude != nil && longitude != nil
}
