package services

import (
	"github.com/shopspring/decimal"

	"sncs-coopledger/internal/core/domain"
)

// PaymentInput represents a proposed payment settlement attached to a
// transaction or ledger entry, before validation
type PaymentInput struct {
	Mode         domain.PaymentMode `json:"payment_mode"`
	CashAmount   decimal.Decimal    `json:"cash_amount"`
	OnlineAmount decimal.Decimal    `json:"online_amount"`
	UTRReference string             `json:"utr_reference"`
}

// PaymentReconciler validates and normalizes cash/online/split payment
// instructions before any ledger write. It has no side effects; the
// normalized split is what gets persisted.
type PaymentReconciler struct{}

// NewPaymentReconciler creates a new payment reconciler
func NewPaymentReconciler() *PaymentReconciler {
	return &PaymentReconciler{}
}

// Reconcile checks the proposed settlement against the transaction amount
// and returns the normalized split. An unspecified mode defaults to cash.
//
// Rules:
//   - CASH: the full amount is cash, no reference needed.
//   - ONLINE: the full amount is online, UTR reference required.
//   - BOTH: cash + online must equal amount within one currency unit,
//     UTR reference required.
func (r *PaymentReconciler) Reconcile(amount decimal.Decimal, in PaymentInput) (domain.PaymentSplit, error) {
	mode := in.Mode
	if mode == "" {
		mode = domain.ModeCash
	}

	switch mode {
	case domain.ModeCash:
		return domain.PaymentSplit{
			Mode: domain.ModeCash,
			Cash: amount,
		}, nil

	case domain.ModeOnline:
		if in.UTRReference == "" {
			return domain.PaymentSplit{}, domain.ErrMissingUTR
		}
		return domain.PaymentSplit{
			Mode:   domain.ModeOnline,
			Online: amount,
			UTR:    in.UTRReference,
		}, nil

	case domain.ModeBoth:
		if in.UTRReference == "" {
			return domain.PaymentSplit{}, domain.ErrMissingUTR
		}
		sum := in.CashAmount.Add(in.OnlineAmount)
		if !domain.WithinTolerance(sum, amount, domain.SplitTolerance) {
			return domain.PaymentSplit{}, &domain.SplitMismatchError{
				Expected: amount,
				Cash:     in.CashAmount,
				Online:   in.OnlineAmount,
			}
		}
		return domain.PaymentSplit{
			Mode:   domain.ModeBoth,
			Cash:   in.CashAmount,
			Online: in.OnlineAmount,
			UTR:    in.UTRReference,
		}, nil
	}

	return domain.PaymentSplit{}, domain.ErrInvalidPaymentMode
}
