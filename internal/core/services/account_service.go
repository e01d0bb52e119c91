package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/core/calc"
	"sncs-coopledger/internal/core/domain"
	"sncs-coopledger/internal/pkg/accountno"
)

// Emergency loan processing fee, disclosed as three sub-amounts in the
// society ledger entry description
var (
	feeVerification = decimal.NewFromInt(300)
	feeFile         = decimal.NewFromInt(250)
	feeAffidavit    = decimal.NewFromInt(150)
)

// AccountService handles account opening and explicit administrator edits.
// Everything else that changes an account goes through the ledger.
type AccountService struct {
	accountRepo repositories.AccountRepository
	memberRepo  repositories.MemberRepository
	rateRepo    repositories.ProductRateRepository
	reconciler  *PaymentReconciler
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo repositories.AccountRepository,
	memberRepo repositories.MemberRepository,
	rateRepo repositories.ProductRateRepository,
	reconciler *PaymentReconciler,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		memberRepo:  memberRepo,
		rateRepo:    rateRepo,
		reconciler:  reconciler,
	}
}

// OpenAccountInput represents open account input
type OpenAccountInput struct {
	MemberID        uint                        `json:"member_id" validate:"required"`
	Product         domain.ProductType          `json:"product" validate:"required"`
	LoanSubtype     domain.LoanSubtype          `json:"loan_subtype,omitempty"`
	Principal       decimal.Decimal             `json:"principal" validate:"required"`
	InterestRate    decimal.Decimal             `json:"interest_rate,omitempty"`
	TermMonths      int                         `json:"term_months,omitempty"`
	TermDays        int                         `json:"term_days,omitempty"`
	Frequency       domain.InstallmentFrequency `json:"frequency,omitempty"`
	OpeningDate     time.Time                   `json:"opening_date,omitempty"`
	Guarantors      []domain.Guarantor          `json:"guarantors,omitempty"`
	LowBalanceAlert *decimal.Decimal            `json:"low_balance_alert,omitempty"`
	Payment         PaymentInput                `json:"payment"`
}

// Open creates an account and seeds it with exactly one opening transaction:
// a Seed credit for deposit products, a Disbursement debit for loans.
// Opening an Emergency loan additionally books the processing fee into the
// society ledger. Account, seed and fee commit as one atomic step; no
// failure can leave an account without its seed.
func (s *AccountService) Open(ctx context.Context, input *OpenAccountInput) (*models.Account, error) {
	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	if !input.Product.IsValid() {
		return nil, domain.ErrInvalidProduct
	}
	if input.Principal.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.TermMonths > 0 && input.TermDays > 0 {
		return nil, domain.ErrInvalidTerm
	}

	isLoan := input.Product == domain.ProductLoan
	if isLoan {
		if !input.LoanSubtype.IsValid() {
			return nil, domain.ErrInvalidLoanSubtype
		}
		if !hasCompleteGuarantor(input.Guarantors) {
			return nil, domain.ErrGuarantorRequired
		}
	}
	if err := validateTerm(input); err != nil {
		return nil, err
	}

	rate, err := s.resolveRate(ctx, input)
	if err != nil {
		return nil, err
	}

	split, err := s.reconciler.Reconcile(input.Principal, input.Payment)
	if err != nil {
		return nil, err
	}

	opening := input.OpeningDate
	if opening.IsZero() {
		opening = time.Now()
	}
	opening = domain.DateOnly(opening)

	seq, err := s.accountRepo.CountByMemberProduct(ctx, member.ID, input.Product.Code())
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		AccountNumber:     accountno.Generate(member.MemberNo, input.Product.Code(), seq+1),
		MemberID:          member.ID,
		Product:           input.Product,
		LoanSubtype:       input.LoanSubtype,
		InterestRate:      rate,
		TermMonths:        input.TermMonths,
		TermDays:          input.TermDays,
		Frequency:         input.Frequency,
		OpeningDate:       opening,
		MaturityDate:      calc.MaturityDate(opening, input.TermMonths, input.TermDays),
		OriginalPrincipal: input.Principal,
		Balance:           input.Principal,
		Status:            domain.StatusActive,
		EMI:               decimal.Zero,
	}
	if input.LowBalanceAlert != nil {
		account.LowBalanceAlert = input.LowBalanceAlert
	}
	for i, g := range input.Guarantors {
		account.Guarantors = append(account.Guarantors, models.Guarantor{
			Position: i + 1,
			Name:     g.Name,
			Phone:    g.Phone,
			Relation: g.Relation,
		})
	}
	if isLoan {
		account.EMI = calc.LoanScheduleFor(input.LoanSubtype, input.Principal, rate, input.TermMonths).EMI
	}

	seed := &models.Transaction{
		ID:           uuid.NewString(),
		Date:         opening,
		Amount:       input.Principal,
		Direction:    domain.DirectionCredit,
		Kind:         domain.KindSeed,
		Category:     "Opening Balance",
		PaymentMode:  split.Mode,
		CashAmount:   split.Cash,
		OnlineAmount: split.Online,
		UTRReference: split.UTR,
	}
	if isLoan {
		seed.Direction = domain.DirectionDebit
		seed.Kind = domain.KindDisbursement
		seed.Category = "Loan Disbursement"
	}

	var fee *models.SocietyLedgerEntry
	if isLoan && input.LoanSubtype == domain.LoanEmergency {
		fee = processingFeeEntry(member.ID, opening)
	}

	if err := s.accountRepo.CreateWithSeed(ctx, account, seed, fee); err != nil {
		return nil, err
	}

	return account, nil
}

// processingFeeEntry builds the fixed Emergency loan processing fee as
// society income, independent of the loan account's own balance
func processingFeeEntry(memberID uint, date time.Time) *models.SocietyLedgerEntry {
	total := feeVerification.Add(feeFile).Add(feeAffidavit)
	return &models.SocietyLedgerEntry{
		ID:        uuid.NewString(),
		MemberID:  &memberID,
		Date:      date,
		Category:  "Processing Fee",
		Direction: domain.EntryIncome,
		Amount:    total,
		Description: fmt.Sprintf("Emergency loan processing fee (verification %s, file %s, affidavit %s)",
			feeVerification, feeFile, feeAffidavit),
		PaymentMode: domain.ModeCash,
		CashAmount:  total,
	}
}

func (s *AccountService) resolveRate(ctx context.Context, input *OpenAccountInput) (decimal.Decimal, error) {
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

func validateTerm(input *OpenAccountInput) error {
	switch input.Product {
	case domain.ProductFixedDeposit, domain.ProductLoan:
		if input.TermMonths <= 0 {
			return domain.ErrTermRequired
		}
	case domain.ProductRecurringDeposit:
		if input.Frequency == domain.FrequencyDaily {
			if input.TermDays <= 0 {
				return domain.ErrTermRequired
			}
		} else if input.TermMonths <= 0 {
			return domain.ErrTermRequired
		}
	}
	return nil
}

func hasCompleteGuarantor(guarantors []domain.Guarantor) bool {
	for _, g := range guarantors {
		if g.IsComplete() {
			return true
		}
	}
	return false
}

// GetByID gets an account with member and guarantors
func (s *AccountService) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetByNumber looks an account up by the number printed on its passbook,
// rejecting strings that do not even have the member-product-sequence shape
func (s *AccountService) GetByNumber(ctx context.Context, number string) (*models.Account, error) {
	if _, _, _, ok := accountno.Parts(number); !ok {
		return nil, domain.ErrInvalidInput
	}
	account, err := s.accountRepo.GetByAccountNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// ListByMember lists a member's accounts
func (s *AccountService) ListByMember(ctx context.Context, memberID uint) ([]*models.Account, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return s.accountRepo.ListByMember(ctx, memberID)
}

// UpdateStatus is an explicit administrator edit of the lifecycle status
func (s *AccountService) UpdateStatus(ctx context.Context, id uint, status domain.AccountStatus) (*models.Account, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	account, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account.Status = status
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateInterestRate is an explicit administrator edit; the rate is
// otherwise immutable for the account's life
func (s *AccountService) UpdateInterestRate(ctx context.Context, id uint, rate decimal.Decimal) (*models.Account, error) {
	if rate.Sign() < 0 {
		return nil, domain.ErrInvalidAmount
	}
	account, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account.InterestRate = rate
	if account.Product == domain.ProductLoan {
		account.EMI = calc.LoanScheduleFor(account.LoanSubtype, account.OriginalPrincipal, rate, account.TermMonths).EMI
	}
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
