package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/core/domain"
)

func TestOpenFixedDeposit(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0042", "Sanjay Bhosale")

	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductFixedDeposit,
		Principal:    d("100000"),
		InterestRate: d("6.5"),
		TermMonths:   36,
		OpeningDate:  day(2025, time.April, 15),
	})

	assert.Equal(t, "M0042-FD-01", account.AccountNumber)
	assert.Equal(t, domain.StatusActive, account.Status)
	assert.True(t, account.Balance.Equal(d("100000")))
	require.NotNil(t, account.MaturityDate)
	assert.Equal(t, day(2028, time.April, 15), *account.MaturityDate)

	txns, err := env.ledger.Transactions(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.KindSeed, txns[0].Kind)
	assert.Equal(t, domain.DirectionCredit, txns[0].Direction)
	assert.Equal(t, "Opening Balance", txns[0].Category)
	assert.True(t, txns[0].Amount.Equal(d("100000")))

	// sequence advances per member and product
	second := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductFixedDeposit,
		Principal:    d("5000"),
		InterestRate: d("6.5"),
		TermMonths:   12,
	})
	assert.Equal(t, "M0042-FD-02", second.AccountNumber)
}

func TestOpenLoan(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0010", "Dinesh Kale")

	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductLoan,
		LoanSubtype:  domain.LoanPersonal,
		Principal:    d("50000"),
		InterestRate: d("12"),
		TermMonths:   12,
		Guarantors:   oneGuarantor,
		OpeningDate:  day(2025, time.June, 1),
	})

	assert.Equal(t, "M0010-LOAN-01", account.AccountNumber)
	assert.True(t, account.EMI.Equal(d("4442")), "got %s", account.EMI)
	require.Len(t, account.Guarantors, 1)
	assert.Equal(t, 1, account.Guarantors[0].Position)

	txns, err := env.ledger.Transactions(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.KindDisbursement, txns[0].Kind)
	assert.Equal(t, domain.DirectionDebit, txns[0].Direction)
	assert.Equal(t, "Loan Disbursement", txns[0].Category)

	// disbursed principal is the opening outstanding balance
	balance, err := env.ledger.Balance(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("50000")))
}

func TestOpenLoanRequiresGuarantor(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0011", "Rekha Salunkhe")

	_, err := env.accounts.Open(context.Background(), &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductLoan,
		LoanSubtype:  domain.LoanHome,
		Principal:    d("200000"),
		InterestRate: d("9.5"),
		TermMonths:   120,
	})
	assert.ErrorIs(t, err, domain.ErrGuarantorRequired)

	// a guarantor missing the phone does not count
	_, err = env.accounts.Open(context.Background(), &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductLoan,
		LoanSubtype:  domain.LoanHome,
		Principal:    d("200000"),
		InterestRate: d("9.5"),
		TermMonths:   120,
		Guarantors:   []domain.Guarantor{{Name: "Someone"}},
	})
	assert.ErrorIs(t, err, domain.ErrGuarantorRequired)
}

func TestOpenEmergencyLoanBooksProcessingFee(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0012", "Ganesh Thorat")

	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductLoan,
		LoanSubtype:  domain.LoanEmergency,
		Principal:    d("20000"),
		InterestRate: d("14"),
		TermMonths:   12,
		Guarantors:   oneGuarantor,
		OpeningDate:  day(2025, time.July, 1),
	})

	// flat-rate schedule
	assert.True(t, account.EMI.Equal(d("1900")), "got %s", account.EMI)

	entries, total, err := env.society.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	entry := entries[0]
	assert.Equal(t, domain.EntryIncome, entry.Direction)
	assert.True(t, entry.Amount.Equal(d("700")), "got %s", entry.Amount)
	assert.Equal(t, "Processing Fee", entry.Category)
	require.NotNil(t, entry.MemberID)
	assert.Equal(t, member.ID, *entry.MemberID)
	assert.Contains(t, entry.Description, "verification 300")
}

// unwritableAccounts refuses every commit, standing in for a store that
// fails mid-open
type unwritableAccounts struct {
	repositories.AccountRepository
	err error
}

func (r *unwritableAccounts) CreateWithSeed(ctx context.Context, account *models.Account, seed *models.Transaction, fee *models.SocietyLedgerEntry) error {
	return r.err
}

func TestOpenFailureLeavesNothingBehind(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0019", "Sunita Gaikwad")

	storeErr := errors.New("storage offline")
	accounts := NewAccountService(
		&unwritableAccounts{AccountRepository: env.store.Accounts(), err: storeErr},
		env.store.Members(), env.store.Rates(), NewPaymentReconciler(),
	)

	// Emergency so the open would also have booked a society fee entry
	_, err := accounts.Open(context.Background(), &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductLoan,
		LoanSubtype:  domain.LoanEmergency,
		Principal:    d("20000"),
		InterestRate: d("14"),
		TermMonths:   12,
		Guarantors:   oneGuarantor,
	})
	require.ErrorIs(t, err, storeErr)

	// the failed open left no account, no transaction and no fee entry,
	// so a retry starts from a clean slate
	_, err = env.accounts.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	txns, err := env.store.Transactions().ListByMember(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)
	_, total, err := env.society.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestGetByNumber(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0042", "Sanjay Bhosale")
	opened := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductFixedDeposit,
		Principal:    d("100000"),
		InterestRate: d("6.5"),
		TermMonths:   36,
	})

	account, err := env.accounts.GetByNumber(context.Background(), "M0042-FD-01")
	require.NoError(t, err)
	assert.Equal(t, opened.ID, account.ID)

	// not even number-shaped
	_, err = env.accounts.GetByNumber(context.Background(), "M0042")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// well-formed but never issued
	_, err = env.accounts.GetByNumber(context.Background(), "M0042-FD-09")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestOpenRateFallsBackToCatalog(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0013", "Madhuri Joshi")
	seedRate(env, "LOAN:PERSONAL", 12.0)

	account := env.open(t, &OpenAccountInput{
		MemberID:    member.ID,
		Product:     domain.ProductLoan,
		LoanSubtype: domain.LoanPersonal,
		Principal:   d("50000"),
		TermMonths:  12,
		Guarantors:  oneGuarantor,
	})
	assert.True(t, account.InterestRate.Equal(d("12")), "got %s", account.InterestRate)
	assert.True(t, account.EMI.Equal(d("4442")))
}

func TestOpenNoRateAnywhere(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0014", "Santosh Nikam")

	_, err := env.accounts.Open(context.Background(), &OpenAccountInput{
		MemberID:   member.ID,
		Product:    domain.ProductFixedDeposit,
		Principal:  d("10000"),
		TermMonths: 12,
	})
	assert.ErrorIs(t, err, domain.ErrRateRequired)
}

func TestOpenTermValidation(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0015", "Vaishali Chavan")

	_, err := env.accounts.Open(context.Background(), &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductFixedDeposit,
		Principal:    d("10000"),
		InterestRate: d("6.5"),
	})
	assert.ErrorIs(t, err, domain.ErrTermRequired)

	_, err = env.accounts.Open(context.Background(), &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductFixedDeposit,
		Principal:    d("10000"),
		InterestRate: d("6.5"),
		TermMonths:   12,
		TermDays:     90,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)

	// daily recurring deposits take their term in days
	_, err = env.accounts.Open(context.Background(), &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductRecurringDeposit,
		Principal:    d("100"),
		InterestRate: d("7.25"),
		Frequency:    domain.FrequencyDaily,
	})
	assert.ErrorIs(t, err, domain.ErrTermRequired)

	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductRecurringDeposit,
		Principal:    d("100"),
		InterestRate: d("7.25"),
		Frequency:    domain.FrequencyDaily,
		TermDays:     365,
		OpeningDate:  day(2025, time.April, 15),
	})
	require.NotNil(t, account.MaturityDate)
	assert.Equal(t, day(2026, time.April, 15), *account.MaturityDate)
}

func TestOpenUnknownMemberAndProduct(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0016", "Pooja Raut")

	_, err := env.accounts.Open(context.Background(), &OpenAccountInput{
		MemberID:     999,
		Product:      domain.ProductShareCapital,
		Principal:    d("100"),
		InterestRate: d("0"),
	})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	_, err = env.accounts.Open(context.Background(), &OpenAccountInput{
		MemberID:  member.ID,
		Product:   "BOND",
		Principal: d("100"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestUpdateInterestRateRecomputesEMI(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0017", "Anil Shirke")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductLoan,
		LoanSubtype:  domain.LoanEmergency,
		Principal:    d("20000"),
		InterestRate: d("14"),
		TermMonths:   12,
		Guarantors:   oneGuarantor,
	})
	require.True(t, account.EMI.Equal(d("1900")))

	updated, err := env.accounts.UpdateInterestRate(context.Background(), account.ID, d("12"))
	require.NoError(t, err)
	// flat: 20000 + 20000*12% = 22400, over 12 months
	assert.True(t, updated.EMI.Equal(d("1867")), "got %s", updated.EMI)
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0018", "Lata Mane")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductShareCapital,
		Principal:    d("500"),
		InterestRate: d("0"),
	})

	updated, err := env.accounts.UpdateStatus(context.Background(), account.ID, domain.StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, updated.Status)

	_, err = env.accounts.UpdateStatus(context.Background(), account.ID, "FROZEN")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
