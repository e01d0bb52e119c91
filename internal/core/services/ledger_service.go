package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/core/domain"
)

// LedgerService owns the per-account transaction log and the balance-replay
// algorithm. The stored balance column is only a cache: every authoritative
// read replays the log and rewrites the cache when it has drifted.
type LedgerService struct {
	accountRepo repositories.AccountRepository
	txRepo      repositories.TransactionRepository
	reconciler  *PaymentReconciler

	// per-account append serialization; the balance is a function of the
	// whole ordered log, so two writers on one account must not interleave
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	accountRepo repositories.AccountRepository,
	txRepo repositories.TransactionRepository,
	reconciler *PaymentReconciler,
) *LedgerService {
	return &LedgerService{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		reconciler:  reconciler,
		locks:       make(map[uint]*sync.Mutex),
	}
}

func (s *LedgerService) accountLock(id uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// AppendTransactionInput represents append transaction input
type AppendTransactionInput struct {
	AccountID   uint             `json:"account_id" validate:"required"`
	Date        time.Time        `json:"date"`
	Amount      decimal.Decimal  `json:"amount" validate:"required"`
	Direction   domain.Direction `json:"direction" validate:"required"`
	Category    string           `json:"category,omitempty"`
	Description string           `json:"description,omitempty"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	Payment     PaymentInput     `json:"payment"`
}

// Append validates, reconciles and appends a regular transaction, then
// re-derives the account balance. Append and balance write are one atomic
// step from the caller's perspective; nothing is ever partially applied.
func (s *LedgerService) Append(ctx context.Context, input *AppendTransactionInput) (*models.Transaction, error) {
	if input.Amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !input.Direction.IsValid() {
		return nil, domain.ErrInvalidDirection
	}

	account, err := s.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	split, err := s.reconciler.Reconcile(input.Amount, input.Payment)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	txn := &models.Transaction{
		ID:           uuid.NewString(),
		AccountID:    account.ID,
		Date:         domain.DateOnly(date),
		Amount:       input.Amount,
		Direction:    input.Direction,
		Kind:         domain.KindRegular,
		Category:     input.Category,
		Description:  input.Description,
		DueDate:      input.DueDate,
		PaymentMode:  split.Mode,
		CashAmount:   split.Cash,
		OnlineAmount: split.Online,
		UTRReference: split.UTR,
	}

	lock := s.accountLock(account.ID)
	lock.Lock()
	defer lock.Unlock()

	txns, err := s.txRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	balance := ReplayBalance(account.Product, append(txns, txn))

	if err := s.txRepo.Append(ctx, txn, balance); err != nil {
		return nil, err
	}
	return txn, nil
}

// Balance returns the authoritative balance by replaying the transaction
// log. A cached balance that drifted beyond the tolerance is silently
// corrected; drift is a consistency issue, never an error.
func (s *LedgerService) Balance(ctx context.Context, accountID uint) (decimal.Decimal, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, domain.ErrAccountNotFound
		}
		return decimal.Zero, err
	}

	txns, err := s.txRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := ReplayBalance(account.Product, txns)
	if !domain.WithinTolerance(balance, account.Balance, domain.BalanceTolerance) {
		if err := s.accountRepo.UpdateBalance(ctx, accountID, balance); err != nil {
			return decimal.Zero, err
		}
	}
	return balance, nil
}

// Transactions lists an account's transactions in stored order
func (s *LedgerService) Transactions(ctx context.Context, accountID uint) ([]*models.Transaction, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return s.txRepo.ListByAccount(ctx, accountID)
}

// MinimumBalanceThisYear returns the lowest balance the account held during
// the current calendar year
func (s *LedgerService) MinimumBalanceThisYear(ctx context.Context, accountID uint) (decimal.Decimal, error) {
	return s.MinimumBalanceInYear(ctx, accountID, time.Now().Year())
}

// MinimumBalanceInYear walks the transaction log backwards from the current
// balance, undoing each transaction to reconstruct the balance immediately
// before it, and stops once a transaction dates from a prior calendar year.
// The running minimum over that window is returned.
func (s *LedgerService) MinimumBalanceInYear(ctx context.Context, accountID uint, year int) (decimal.Decimal, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, domain.ErrAccountNotFound
		}
		return decimal.Zero, err
	}

	txns, err := s.txRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := ReplayBalance(account.Product, txns)
	minimum := balance

	// reverse chronological, ties broken by id so the walk is reproducible
	ordered := make([]*models.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.After(ordered[j].Date)
		}
		return ordered[i].ID > ordered[j].ID
	})

	for _, txn := range ordered {
		if txn.Date.Year() < year {
			break
		}
		balance = balance.Sub(signedAmount(account.Product, txn))
		if balance.LessThan(minimum) {
			minimum = balance
		}
	}
	return minimum, nil
}

// ReplayBalance folds the transaction log into the authoritative balance.
// The seed transaction always adds regardless of direction; afterwards
// deposits add on credit and subtract on debit, loans the other way round
// (a repayment credit shrinks the outstanding balance, a disbursement debit
// grows it).
func ReplayBalance(product domain.ProductType, txns []*models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, txn := range txns {
		balance = balance.Add(signedAmount(product, txn))
	}
	return balance
}

func signedAmount(product domain.ProductType, txn *models.Transaction) decimal.Decimal {
	if txn.Kind == domain.KindSeed {
		return txn.Amount
	}
	credit := txn.Direction == domain.DirectionCredit
	if product.IsDeposit() == credit {
		return txn.Amount
	}
	return txn.Amount.Neg()
}
