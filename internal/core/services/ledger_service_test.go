package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sncs-coopledger/internal/core/domain"
)

func TestAppendDepositPolarity(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0001", "Sunita Deshmukh")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductOptionalDeposit,
		Principal:    d("1000"),
		InterestRate: d("4"),
		OpeningDate:  day(2025, time.January, 10),
	})

	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.February, 1),
		Amount:    d("500"),
		Direction: domain.DirectionCredit,
		Category:  "Deposit",
	})
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.March, 1),
		Amount:    d("200"),
		Direction: domain.DirectionDebit,
		Category:  "Withdrawal",
	})

	balance, err := env.ledger.Balance(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("1300")), "got %s", balance)
}

func TestAppendLoanPolarity(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0002", "Vikas Jadhav")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductLoan,
		LoanSubtype:  domain.LoanPersonal,
		Principal:    d("50000"),
		InterestRate: d("12"),
		TermMonths:   12,
		Guarantors:   oneGuarantor,
		OpeningDate:  day(2025, time.January, 5),
	})

	// repayment credit shrinks the outstanding balance
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.February, 5),
		Amount:    d("5000"),
		Direction: domain.DirectionCredit,
		Category:  "EMI",
	})

	balance, err := env.ledger.Balance(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("45000")), "got %s", balance)

	// a further disbursement debit grows it
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.March, 5),
		Amount:    d("2000"),
		Direction: domain.DirectionDebit,
		Category:  "Top-up",
	})
	balance, err = env.ledger.Balance(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("47000")), "got %s", balance)
}

func TestAppendValidation(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0003", "Asha Kulkarni")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductOptionalDeposit,
		Principal:    d("100"),
		InterestRate: d("4"),
	})

	_, err := env.ledger.Append(context.Background(), &AppendTransactionInput{
		AccountID: account.ID,
		Amount:    d("0"),
		Direction: domain.DirectionCredit,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = env.ledger.Append(context.Background(), &AppendTransactionInput{
		AccountID: account.ID,
		Amount:    d("10"),
		Direction: "SIDEWAYS",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)

	_, err = env.ledger.Append(context.Background(), &AppendTransactionInput{
		AccountID: 999,
		Amount:    d("10"),
		Direction: domain.DirectionCredit,
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestBalanceRepairsDriftedCache(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0004", "Prakash More")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductOptionalDeposit,
		Principal:    d("1000"),
		InterestRate: d("4"),
	})

	// corrupt the cache behind the service's back
	require.NoError(t, env.store.Accounts().UpdateBalance(context.Background(), account.ID, d("999999")))

	balance, err := env.ledger.Balance(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("1000")))

	stored, err := env.store.Accounts().GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(d("1000")), "cache not repaired: %s", stored.Balance)
}

func TestBalanceRoundTripToZero(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0005", "Kavita Shinde")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductCompulsoryDeposit,
		Principal:    d("700"),
		InterestRate: d("7"),
	})
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Amount:    d("300"),
		Direction: domain.DirectionCredit,
	})
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Amount:    d("1000"),
		Direction: domain.DirectionDebit,
	})

	balance, err := env.ledger.Balance(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "got %s", balance)
}

func TestMinimumBalanceInYear(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0006", "Nilesh Pawar")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductOptionalDeposit,
		Principal:    d("1000"),
		InterestRate: d("4"),
		OpeningDate:  day(2024, time.June, 1),
	})

	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.February, 1),
		Amount:    d("500"),
		Direction: domain.DirectionCredit,
	})
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.March, 1),
		Amount:    d("800"),
		Direction: domain.DirectionDebit,
	})

	// balances through 2025: 1000 (carried in), 1500, 700
	min, err := env.ledger.MinimumBalanceInYear(context.Background(), account.ID, 2025)
	require.NoError(t, err)
	assert.True(t, min.Equal(d("700")), "got %s", min)

	// the opening year walks all the way back to the pre-seed zero balance
	min, err = env.ledger.MinimumBalanceInYear(context.Background(), account.ID, 2024)
	require.NoError(t, err)
	assert.True(t, min.Equal(d("0")), "got %s", min)
}

func TestMinimumBalanceNoTransactionsThisYear(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0007", "Seema Gaikwad")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductOptionalDeposit,
		Principal:    d("2500"),
		InterestRate: d("4"),
		OpeningDate:  day(2024, time.March, 15),
	})

	// carried-in balance is the minimum when the year has no activity
	min, err := env.ledger.MinimumBalanceInYear(context.Background(), account.ID, 2025)
	require.NoError(t, err)
	assert.True(t, min.Equal(d("2500")), "got %s", min)
}
