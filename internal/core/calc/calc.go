// Package calc holds the pure product calculators. Every function is a
// stateless projection of (principal, rate, term) and is safe to call
// concurrently for what-if simulation before anything is committed.
package calc

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"sncs-coopledger/internal/core/domain"
)

// LoanSchedule is the projected repayment plan for a loan.
// HasSchedule is false for degenerate inputs (zero term or zero principal);
// in that case TotalPayable carries the principal only and EMI is zero.
type LoanSchedule struct {
	EMI           decimal.Decimal `json:"emi"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPayable  decimal.Decimal `json:"total_payable"`
	HasSchedule   bool            `json:"has_schedule"`
}

// DepositProjection is the projected outcome of a deposit product.
type DepositProjection struct {
	TotalPrincipal decimal.Decimal `json:"total_principal"`
	Interest       decimal.Decimal `json:"interest"`
	MaturityValue  decimal.Decimal `json:"maturity_value"`
}

// OptionalDepositInterest returns the simple annualized interest estimate on
// the live balance of an optional deposit. Not compounded.
func OptionalDepositInterest(balance decimal.Decimal, ratePct decimal.Decimal) decimal.Decimal {
	return domain.RoundWhole(balance.Mul(ratePct).Div(decimal.NewFromInt(100)))
}

// FixedDepositProjection returns the compound maturity value and interest of
// a fixed deposit: principal x (1 + rate/100)^(months/12).
func FixedDepositProjection(principal decimal.Decimal, ratePct decimal.Decimal, termMonths int) DepositProjection {
	if termMonths <= 0 || principal.Sign() <= 0 {
		return DepositProjection{TotalPrincipal: principal, MaturityValue: principal, Interest: decimal.Zero}
	}
	rate, _ := ratePct.Float64()
	factor := math.Pow(1+rate/100, float64(termMonths)/12)
	maturity := domain.RoundWhole(principal.Mul(decimal.NewFromFloat(factor)))
	return DepositProjection{
		TotalPrincipal: principal,
		MaturityValue:  maturity,
		Interest:       maturity.Sub(principal),
	}
}

// RecurringDepositMonthly projects a monthly recurring deposit with the
// arithmetic-series method: installment x n(n+1)/2 x rate/1200.
func RecurringDepositMonthly(installment decimal.Decimal, ratePct decimal.Decimal, months int) DepositProjection {
	return recurringDeposit(installment, ratePct, months, 1200)
}

// RecurringDepositDaily is the day-count variant of the same method:
// installment x d(d+1)/2 x rate/36500.
func RecurringDepositDaily(installment decimal.Decimal, ratePct decimal.Decimal, days int) DepositProjection {
	return recurringDeposit(installment, ratePct, days, 36500)
}

func recurringDeposit(installment decimal.Decimal, ratePct decimal.Decimal, n int, divisor int64) DepositProjection {
	if n <= 0 || installment.Sign() <= 0 {
		return DepositProjection{TotalPrincipal: decimal.Zero, MaturityValue: decimal.Zero, Interest: decimal.Zero}
	}
	series := decimal.NewFromInt(int64(n) * int64(n+1) / 2)
	interest := domain.RoundWhole(installment.Mul(series).Mul(ratePct).Div(decimal.NewFromInt(divisor)))
	principal := installment.Mul(decimal.NewFromInt(int64(n)))
	return DepositProjection{
		TotalPrincipal: principal,
		Interest:       interest,
		MaturityValue:  principal.Add(interest),
	}
}

// ReducingBalanceLoan amortizes a loan with the standard annuity formula:
// EMI = P.r.(1+r)^n / ((1+r)^n - 1) with monthly rate r = rate/12/100.
func ReducingBalanceLoan(principal decimal.Decimal, ratePct decimal.Decimal, termMonths int) LoanSchedule {
	if termMonths <= 0 || principal.Sign() <= 0 {
		return noSchedule(principal)
	}
	rate, _ := ratePct.Float64()
	r := rate / 12 / 100
	if r == 0 {
		emi := principal.Div(decimal.NewFromInt(int64(termMonths)))
		return LoanSchedule{
			EMI:           domain.RoundWhole(emi),
			TotalInterest: decimal.Zero,
			TotalPayable:  domain.RoundWhole(principal),
			HasSchedule:   true,
		}
	}
	pow := math.Pow(1+r, float64(termMonths))
	emi := principal.Mul(decimal.NewFromFloat(r * pow / (pow - 1)))
	total := emi.Mul(decimal.NewFromInt(int64(termMonths)))
	return LoanSchedule{
		EMI:           domain.RoundWhole(emi),
		TotalInterest: domain.RoundWhole(total.Sub(principal)),
		TotalPayable:  domain.RoundWhole(total),
		HasSchedule:   true,
	}
}

// FlatRateLoan computes the Emergency-subtype schedule: interest is charged
// once on the original principal for the full term and divided evenly.
// totalInterest = P x rate/100 x n/12.
func FlatRateLoan(principal decimal.Decimal, ratePct decimal.Decimal, termMonths int) LoanSchedule {
	if termMonths <= 0 || principal.Sign() <= 0 {
		return noSchedule(principal)
	}
	months := decimal.NewFromInt(int64(termMonths))
	interest := principal.Mul(ratePct).Div(decimal.NewFromInt(100)).Mul(months).Div(decimal.NewFromInt(12))
	total := principal.Add(interest)
	return LoanSchedule{
		EMI:           domain.RoundWhole(total.Div(months)),
		TotalInterest: domain.RoundWhole(interest),
		TotalPayable:  domain.RoundWhole(total),
		HasSchedule:   true,
	}
}

// LoanScheduleFor dispatches on subtype: Emergency loans are flat-rate,
// everything else amortizes on the reducing balance.
func LoanScheduleFor(subtype domain.LoanSubtype, principal decimal.Decimal, ratePct decimal.Decimal, termMonths int) LoanSchedule {
	if subtype == domain.LoanEmergency {
		return FlatRateLoan(principal, ratePct, termMonths)
	}
	return ReducingBalanceLoan(principal, ratePct, termMonths)
}

// MaturityDate derives the maturity date from the opening date and term.
// Returns nil when the product carries no term.
func MaturityDate(opening time.Time, termMonths, termDays int) *time.Time {
	switch {
	case termMonths > 0:
		d := opening.AddDate(0, termMonths, 0)
		return &d
	case termDays > 0:
		d := opening.AddDate(0, 0, termDays)
		return &d
	}
	return nil
}

func noSchedule(principal decimal.Decimal) LoanSchedule {
	return LoanSchedule{
		EMI:           decimal.Zero,
		TotalInterest: decimal.Zero,
		TotalPayable:  domain.RoundWhole(principal),
		HasSchedule:   false,
	}
}
