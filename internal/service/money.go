package service

import "math"

// round2 rounds a monetary amount to two decimal places using
// standard half-away-from-zero rounding, the policy shared by order
// totals and bill amounts.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// lineTotal returns the rounded subtotal of one order line.
func lineTotal(unitPrice float64, quantity uint32) float64 {
	return round2(unitPrice * float64(quantity))
}
