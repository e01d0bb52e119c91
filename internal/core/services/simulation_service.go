package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/core/calc"
	"sncs-coopledger/internal/core/domain"
)

// SimulationService answers "what would this product pay or cost" without
// touching any account. Rates fall back to the product rate catalog when the
// caller does not supply one.
type SimulationService struct {
	rateRepo repositories.ProductRateRepository
}

// NewSimulationService creates a new simulation service
func NewSimulationService(rateRepo repositories.ProductRateRepository) *SimulationService {
	return &SimulationService{rateRepo: rateRepo}
}

// SimulateInput represents simulate input
type SimulateInput struct {
	Product      domain.ProductType          `json:"product" validate:"required"`
	LoanSubtype  domain.LoanSubtype          `json:"loan_subtype,omitempty"`
	Principal    decimal.Decimal             `json:"principal" validate:"required"`
	InterestRate decimal.Decimal             `json:"interest_rate,omitempty"`
	TermMonths   int                         `json:"term_months,omitempty"`
	TermDays     int                         `json:"term_days,omitempty"`
	Frequency    domain.InstallmentFrequency `json:"frequency,omitempty"`
	OpeningDate  time.Time                   `json:"opening_date,omitempty"`
}

// SimulationResult carries whichever projection applies to the product.
// Deposit products fill Projection, loans fill Schedule.
type SimulationResult struct {
	Product      domain.ProductType      `json:"product"`
	LoanSubtype  domain.LoanSubtype      `json:"loan_subtype,omitempty"`
	Principal    decimal.Decimal         `json:"principal"`
	InterestRate decimal.Decimal         `json:"interest_rate"`
	TermMonths   int                     `json:"term_months,omitempty"`
	TermDays     int                     `json:"term_days,omitempty"`
	MaturityDate *time.Time              `json:"maturity_date,omitempty"`
	Projection   *calc.DepositProjection `json:"projection,omitempty"`
	Schedule     *calc.LoanSchedule      `json:"schedule,omitempty"`
}

// Simulate runs the product's calculator over the given inputs
func (s *SimulationService) Simulate(ctx context.Context, input *SimulateInput) (*SimulationResult, error) {
	if !input.Product.IsValid() {
		return nil, domain.ErrInvalidProduct
	}
	if input.Principal.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	rate, err := s.rate(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &SimulationResult{
		Product:      input.Product,
		LoanSubtype:  input.LoanSubtype,
		Principal:    input.Principal,
		InterestRate: rate,
		TermMonths:   input.TermMonths,
		TermDays:     input.TermDays,
	}
	opening := input.OpeningDate
	if opening.IsZero() {
		opening = time.Now()
	}
	result.MaturityDate = calc.MaturityDate(domain.DateOnly(opening), input.TermMonths, input.TermDays)

	switch input.Product {
	case domain.ProductShareCapital, domain.ProductCompulsoryDeposit, domain.ProductOptionalDeposit:
		interest := calc.OptionalDepositInterest(input.Principal, rate)
		result.Projection = &calc.DepositProjection{
			TotalPrincipal: input.Principal,
			Interest:       interest,
			MaturityValue:  input.Principal.Add(interest),
		}
	case domain.ProductFixedDeposit:
		if input.TermMonths <= 0 {
			return nil, domain.ErrTermRequired
		}
		p := calc.FixedDepositProjection(input.Principal, rate, input.TermMonths)
		result.Projection = &p
	case domain.ProductRecurringDeposit:
		if input.Frequency == domain.FrequencyDaily {
			if input.TermDays <= 0 {
				return nil, domain.ErrTermRequired
			}
			p := calc.RecurringDepositDaily(input.Principal, rate, input.TermDays)
			result.Projection = &p
		} else {
			if input.TermMonths <= 0 {
				return nil, domain.ErrTermRequired
			}
			p := calc.RecurringDepositMonthly(input.Principal, rate, input.TermMonths)
			result.Projection = &p
		}
	case domain.ProductLoan:
		if !input.LoanSubtype.IsValid() {
			return nil, domain.ErrInvalidLoanSubtype
		}
		if input.TermMonths <= 0 {
			return nil, domain.ErrTermRequired
		}
		sched := calc.LoanScheduleFor(input.LoanSubtype, input.Principal, rate, input.TermMonths)
		result.Schedule = &sched
	}
	return result, nil
}

func (s *SimulationService) rate(ctx context.Context, input *SimulateInput) (decimal.Decimal, error) {
	if input.InterestRate.Sign() > 0 {
		return input.InterestRate, nil
	}
	// share capital carries no interest
	if input.Product == domain.ProductShareCapital {
		return decimal.Zero, nil
	}
	code := input.Product.Code()
	if input.Product == domain.ProductLoan {
		code = code + ":" + string(input.LoanSubtype)
	}
	rate, err := s.rateRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, domain.ErrRateRequired
		}
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(rate.RatePercent), nil
}
