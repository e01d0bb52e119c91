package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common domain errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Ledger errors
var (
	ErrInvalidAmount    = errors.New("amount must be greater than 0")
	ErrInvalidDirection = errors.New("direction must be CREDIT or DEBIT")
)

// Account opening errors
var (
	ErrInvalidProduct     = errors.New("unknown product type")
	ErrInvalidLoanSubtype = errors.New("unknown loan subtype")
	ErrInvalidTerm        = errors.New("term must be given in months or days, not both")
	ErrTermRequired       = errors.New("term is required for this product")
	ErrRateRequired       = errors.New("interest rate is required and no default is configured")
	ErrGuarantorRequired  = errors.New("a loan requires at least one guarantor with name and phone")
	ErrInvalidStatus      = errors.New("unknown account status")
)

// Payment reconciliation errors
var (
	ErrInvalidPaymentMode = errors.New("payment mode must be CASH, ONLINE or BOTH")
	ErrMissingUTR         = errors.New("utr reference is required for online payments")
)

// Society ledger errors
var (
	ErrInvalidEntryDirection = errors.New("entry direction must be INCOME or EXPENSE")
)

// SplitMismatchError reports a BOTH-mode payment whose cash and online parts
// do not sum to the transaction amount within the allowed tolerance.
type SplitMismatchError struct {
	Expected decimal.Decimal
	Cash     decimal.Decimal
	Online   decimal.Decimal
}

func (e *SplitMismatchError) Error() string {
	got := e.Cash.Add(e.Online)
	return fmt.Sprintf("split amounts must sum to ₹%s, got ₹%s (cash ₹%s + online ₹%s)",
		e.Expected.String(), got.String(), e.Cash.String(), e.Online.String())
}
