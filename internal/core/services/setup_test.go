package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/core/domain"
)

// testEnv wires every service over a shared in-memory store
type testEnv struct {
	store       *repositories.MemoryStore
	ledger      *LedgerService
	accounts    *AccountService
	society     *SocietyService
	collections *CollectionService
	simulations *SimulationService
	maturity    *MaturityService
}

func newTestEnv() *testEnv {
	store := repositories.NewMemoryStore()
	reconciler := NewPaymentReconciler()
	return &testEnv{
		store:  store,
		ledger: NewLedgerService(store.Accounts(), store.Transactions(), reconciler),
		accounts: NewAccountService(
			store.Accounts(), store.Members(), store.Rates(), reconciler,
		),
		society:     NewSocietyService(store.Society(), store.Members(), reconciler),
		collections: NewCollectionService(store.Transactions(), store.Society(), store.Members()),
		simulations: NewSimulationService(store.Rates()),
		maturity:    NewMaturityService(store.Accounts(), ""),
	}
}

func (e *testEnv) member(t *testing.T, memberNo, name string) *models.Member {
	t.Helper()
	member := &models.Member{MemberNo: memberNo, FullName: name}
	require.NoError(t, e.store.Members().Create(context.Background(), member))
	return member
}

func (e *testEnv) open(t *testing.T, input *OpenAccountInput) *models.Account {
	t.Helper()
	account, err := e.accounts.Open(context.Background(), input)
	require.NoError(t, err)
	return account
}

func (e *testEnv) append(t *testing.T, input *AppendTransactionInput) *models.Transaction {
	t.Helper()
	txn, err := e.ledger.Append(context.Background(), input)
	require.NoError(t, err)
	return txn
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func seedRate(e *testEnv, code string, pct float64) {
	e.store.SeedRate(&models.ProductRate{Code: code, Name: code, RatePercent: pct, IsActive: true})
}

var oneGuarantor = []domain.Guarantor{{Name: "Ramesh Patil", Phone: "9800011122", Relation: "Brother"}}
