package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sncs-coopledger/internal/core/domain"
)

func TestMaturitySweep(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0040", "Baban Gite")

	matured := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductFixedDeposit,
		Principal:    d("10000"),
		InterestRate: d("6.5"),
		TermMonths:   12,
		OpeningDate:  day(2024, time.May, 1),
	})
	running := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductFixedDeposit,
		Principal:    d("10000"),
		InterestRate: d("6.5"),
		TermMonths:   12,
		OpeningDate:  day(2025, time.May, 1),
	})
	closed := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductRecurringDeposit,
		Principal:    d("500"),
		InterestRate: d("7.25"),
		TermMonths:   12,
		OpeningDate:  day(2024, time.May, 1),
	})
	_, err := env.accounts.UpdateStatus(context.Background(), closed.ID, domain.StatusClosed)
	require.NoError(t, err)

	// loans never mature by date
	loan := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductLoan,
		LoanSubtype:  domain.LoanPersonal,
		Principal:    d("50000"),
		InterestRate: d("12"),
		TermMonths:   6,
		Guarantors:   oneGuarantor,
		OpeningDate:  day(2024, time.May, 1),
	})

	marked, err := env.maturity.Sweep(context.Background(), day(2025, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	check := func(id uint, want domain.AccountStatus) {
		t.Helper()
		account, err := env.accounts.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, account.Status)
	}
	check(matured.ID, domain.StatusMatured)
	check(running.ID, domain.StatusActive)
	check(closed.ID, domain.StatusClosed)
	check(loan.ID, domain.StatusActive)
}

func TestMaturitySweepIsIdempotent(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0041", "Sarika Dhole")
	env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductFixedDeposit,
		Principal:    d("10000"),
		InterestRate: d("6.5"),
		TermMonths:   12,
		OpeningDate:  day(2024, time.January, 1),
	})

	marked, err := env.maturity.Sweep(context.Background(), day(2025, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	marked, err = env.maturity.Sweep(context.Background(), day(2025, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}

func TestMaturitySweepExactDay(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0042", "Ulhas Berde")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductFixedDeposit,
		Principal:    d("10000"),
		InterestRate: d("6.5"),
		TermMonths:   12,
		OpeningDate:  day(2024, time.June, 1),
	})

	// matures on the sweep day itself
	marked, err := env.maturity.Sweep(context.Background(), day(2025, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	got, err := env.accounts.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMatured, got.Status)
}
