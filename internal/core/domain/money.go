package domain

import "github.com/shopspring/decimal"

// SplitTolerance is the maximum difference, in whole currency units, allowed
// between a BOTH-mode split sum and the transaction amount.
var SplitTolerance = decimal.NewFromInt(1)

// BalanceTolerance is the drift allowed between a cached balance and the
// replayed balance before the cache is considered stale and rewritten.
var BalanceTolerance = decimal.RequireFromString("0.01")

// RoundWhole rounds a monetary value to the nearest whole currency unit,
// half away from zero. Only display/commit values are rounded; intermediate
// calculator math stays unrounded.
func RoundWhole(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// WithinTolerance reports whether a and b differ by no more than tol
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}

// PaymentSplit is a validated, normalized cash/online decomposition of a
// payment. It is what gets persisted on transactions and ledger entries.
type PaymentSplit struct {
	Mode   PaymentMode
	Cash   decimal.Decimal
	Online decimal.Decimal
	UTR    string
}
