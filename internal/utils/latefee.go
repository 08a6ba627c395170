package utils

import (
	"math"
	"time"
)

// LateFeeRate is the flat surcharge applied to a rent payment once its due
// date has passed while the payment is still pending.
const LateFeeRate = 0.05

// AmountEpsilon is the tolerance used when comparing a client-declared total
// against the server-recomputed total, in major currency units.
const AmountEpsilon = 0.01

// Round2 rounds to 2 decimal places, half away from zero, matching currency
// minor-unit precision.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// LateFee returns the late fee owed on amount as of evaluationDate.
// The fee is zero when the evaluation date is on or before the due date, and
// zero for any non-positive amount. Dates are compared at day granularity.
func LateFee(amount float64, dueDate, evaluationDate time.Time) float64 {
	if amount <= 0 {
		return 0
	}
	if !truncateToDay(evaluationDate).After(truncateToDay(dueDate)) {
		return 0
	}
	return Round2(amount * LateFeeRate)
}

// TotalDue returns amount plus the late fee as of evaluationDate.
func TotalDue(amount float64, dueDate, evaluationDate time.Time) float64 {
	return Round2(amount + LateFee(amount, dueDate, evaluationDate))
}

// ToMinorUnits converts a major-unit amount to the gateway's minor-unit
// convention (e.g. naira to kobo).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts a gateway minor-unit amount back to major units.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
