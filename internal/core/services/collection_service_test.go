package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sncs-coopledger/internal/core/domain"
)

func TestDaywiseReport(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0030", "Sachin Kadam")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductOptionalDeposit,
		Principal:    d("1000"),
		InterestRate: d("4"),
		OpeningDate:  day(2025, time.August, 1),
	})

	reportDay := day(2025, time.August, 20)

	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      reportDay,
		Amount:    d("500"),
		Direction: domain.DirectionCredit,
		Category:  "Deposit",
	})
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      reportDay,
		Amount:    d("500"),
		Direction: domain.DirectionCredit,
		Category:  "Deposit",
		Payment: PaymentInput{
			Mode:         domain.ModeBoth,
			CashAmount:   d("300"),
			OnlineAmount: d("200"),
			UTRReference: "UTR55",
		},
	})
	// debits never count as collection
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      reportDay,
		Amount:    d("999"),
		Direction: domain.DirectionDebit,
		Category:  "Withdrawal",
	})
	// out-of-day credit is excluded
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.August, 21),
		Amount:    d("50"),
		Direction: domain.DirectionCredit,
	})

	report, err := env.collections.Daywise(context.Background(), reportDay)
	require.NoError(t, err)
	require.Len(t, report.Records, 2)
	assert.True(t, report.TotalCash.Equal(d("800")), "cash %s", report.TotalCash)
	assert.True(t, report.TotalOnline.Equal(d("200")), "online %s", report.TotalOnline)
	assert.True(t, report.GrandTotal.Equal(d("1000")))

	for _, rec := range report.Records {
		assert.Equal(t, SourceAccountTx, rec.Source)
		assert.Equal(t, account.AccountNumber, rec.SourceRef)
		assert.Equal(t, "Sachin Kadam", rec.Counterparty)
	}
}

func TestDaywiseIncludesSocietyIncome(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0031", "Meena Bhagat")
	reportDay := day(2025, time.August, 20)

	_, err := env.society.Append(context.Background(), &AppendLedgerEntryInput{
		MemberID:  &member.ID,
		Date:      reportDay,
		Category:  "Admission Fee",
		Amount:    d("150"),
		Direction: domain.EntryIncome,
	})
	require.NoError(t, err)

	// expenses stay out of the collection report
	_, err = env.society.Append(context.Background(), &AppendLedgerEntryInput{
		Date:      reportDay,
		Category:  "Stationery",
		Amount:    d("90"),
		Direction: domain.EntryExpense,
	})
	require.NoError(t, err)

	report, err := env.collections.Daywise(context.Background(), reportDay)
	require.NoError(t, err)
	require.Len(t, report.Records, 1)
	assert.Equal(t, SourceSociety, report.Records[0].Source)
	assert.Equal(t, "Meena Bhagat", report.Records[0].Counterparty)
	assert.True(t, report.GrandTotal.Equal(d("150")))
}

func TestPassbookOrdering(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0032", "Rajesh Howale")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductCompulsoryDeposit,
		Principal:    d("100"),
		InterestRate: d("7"),
		OpeningDate:  day(2025, time.January, 1),
	})

	// append out of chronological order; passbook must still come out sorted
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.March, 1),
		Amount:    d("100"),
		Direction: domain.DirectionCredit,
	})
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.February, 1),
		Amount:    d("100"),
		Direction: domain.DirectionCredit,
	})

	txns, err := env.collections.Passbook(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.True(t, sort.SliceIsSorted(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	}))
	assert.Equal(t, day(2025, time.January, 1), txns[0].Date)
	assert.Equal(t, day(2025, time.March, 1), txns[2].Date)
}

func TestPassbookBacklog(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0033", "Smita Naik")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductCompulsoryDeposit,
		Principal:    d("100"),
		InterestRate: d("7"),
		OpeningDate:  day(2025, time.January, 1),
	})
	for i := 0; i < 9; i++ {
		env.append(t, &AppendTransactionInput{
			AccountID: account.ID,
			Date:      day(2025, time.January, 2+i),
			Amount:    d("100"),
			Direction: domain.DirectionCredit,
		})
	}

	// nothing printed yet: whole history is backlog
	backlog, err := env.collections.PassbookBacklog(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, backlog)

	// anchor on the seventh entry leaves three
	txns, err := env.collections.Passbook(context.Background(), member.ID)
	require.NoError(t, err)
	member.LastPrintedTxID = txns[6].ID
	require.NoError(t, env.store.Members().Update(context.Background(), member))

	backlog, err = env.collections.PassbookBacklog(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, backlog)

	// a vanished anchor falls back to the whole history
	member.LastPrintedTxID = "no-such-transaction"
	require.NoError(t, env.store.Members().Update(context.Background(), member))
	backlog, err = env.collections.PassbookBacklog(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, backlog)
}

func TestMarkPassbookPrinted(t *testing.T) {
	env := newTestEnv()
	member := env.member(t, "M0034", "Tanaji Pisal")
	account := env.open(t, &OpenAccountInput{
		MemberID:     member.ID,
		Product:      domain.ProductCompulsoryDeposit,
		Principal:    d("100"),
		InterestRate: d("7"),
		OpeningDate:  day(2025, time.January, 1),
	})
	env.append(t, &AppendTransactionInput{
		AccountID: account.ID,
		Date:      day(2025, time.February, 1),
		Amount:    d("100"),
		Direction: domain.DirectionCredit,
	})

	require.NoError(t, env.collections.MarkPassbookPrinted(context.Background(), member.ID))

	backlog, err := env.collections.PassbookBacklog(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, backlog)
}

func TestPassbookUnknownMember(t *testing.T) {
	env := newTestEnv()

	_, err := env.collections.Passbook(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	_, err = env.collections.PassbookBacklog(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}
