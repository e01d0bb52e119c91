package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/core/domain"
)

// MemoryStore is the ephemeral implementation of the storage port, used when
// no durable database is configured and throughout the service tests. All
// repository views share one mutex, so an append and its balance write are
// atomic. Misses return gorm.ErrRecordNotFound so callers handle both store
// implementations identically.
type MemoryStore struct {
	core *memoryCore
}

type memoryCore struct {
	mu           sync.Mutex
	members      map[uint]*models.Member
	accounts     map[uint]*models.Account
	transactions []*models.Transaction
	entries      []*models.SocietyLedgerEntry
	rates        map[string]*models.ProductRate
	nextMemberID uint
	nextAccount  uint
	nextRateID   uint
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{core: &memoryCore{
		members:  make(map[uint]*models.Member),
		accounts: make(map[uint]*models.Account),
		rates:    make(map[string]*models.ProductRate),
	}}
}

// Accounts returns the account repository view
func (s *MemoryStore) Accounts() AccountRepository { return &memoryAccounts{s.core} }

// Transactions returns the transaction repository view
func (s *MemoryStore) Transactions() TransactionRepository { return &memoryTransactions{s.core} }

// Society returns the society ledger repository view
func (s *MemoryStore) Society() SocietyRepository { return &memorySociety{s.core} }

// Members returns the member repository view
func (s *MemoryStore) Members() MemberRepository { return &memoryMembers{s.core} }

// Rates returns the product rate repository view
func (s *MemoryStore) Rates() ProductRateRepository { return &memoryRates{s.core} }

// SeedRate inserts a product rate into the catalog
func (s *MemoryStore) SeedRate(rate *models.ProductRate) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	s.core.nextRateID++
	rate.ID = s.core.nextRateID
	s.core.rates[rate.Code] = rate
}

// ------------------------------------------------------------
// AccountRepository
// ------------------------------------------------------------

type memoryAccounts struct{ c *memoryCore }

var _ AccountRepository = (*memoryAccounts)(nil)

func (r *memoryAccounts) CreateWithSeed(ctx context.Context, account *models.Account, seed *models.Transaction, fee *models.SocietyLedgerEntry) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	r.c.nextAccount++
	account.ID = r.c.nextAccount
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	r.c.accounts[account.ID] = account

	seed.AccountID = account.ID
	if seed.CreatedAt.IsZero() {
		seed.CreatedAt = time.Now()
	}
	r.c.transactions = append(r.c.transactions, seed)

	if fee != nil {
		if fee.CreatedAt.IsZero() {
			fee.CreatedAt = time.Now()
		}
		r.c.entries = append(r.c.entries, fee)
	}
	return nil
}

func (r *memoryAccounts) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	account, ok := r.c.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	account.Member = r.c.members[account.MemberID]
	return account, nil
}

func (r *memoryAccounts) GetByAccountNumber(ctx context.Context, number string) (*models.Account, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	for _, account := range r.c.accounts {
		if account.AccountNumber == number {
			account.Member = r.c.members[account.MemberID]
			return account, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryAccounts) ListByMember(ctx context.Context, memberID uint) ([]*models.Account, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var accounts []*models.Account
	// map order is random; IDs are sequential, so walk them in order
	for id := uint(1); id <= r.c.nextAccount; id++ {
		if account, ok := r.c.accounts[id]; ok && account.MemberID == memberID {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (r *memoryAccounts) Update(ctx context.Context, account *models.Account) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.accounts[account.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.c.accounts[account.ID] = account
	return nil
}

func (r *memoryAccounts) UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	account, ok := r.c.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	account.Balance = balance
	return nil
}

func (r *memoryAccounts) CountByMemberProduct(ctx context.Context, memberID uint, product string) (int64, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var count int64
	for _, account := range r.c.accounts {
		if account.MemberID == memberID && string(account.Product) == product {
			count++
		}
	}
	return count, nil
}

func (r *memoryAccounts) ListMaturedCandidates(ctx context.Context, asOf time.Time) ([]*models.Account, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var accounts []*models.Account
	for id := uint(1); id <= r.c.nextAccount; id++ {
		account, ok := r.c.accounts[id]
		if !ok || account.Status != domain.StatusActive || account.MaturityDate == nil {
			continue
		}
		if account.Product != domain.ProductFixedDeposit && account.Product != domain.ProductRecurringDeposit {
			continue
		}
		if !account.MaturityDate.After(asOf) {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

// ------------------------------------------------------------
// TransactionRepository
// ------------------------------------------------------------

type memoryTransactions struct{ c *memoryCore }

var _ TransactionRepository = (*memoryTransactions)(nil)

func (r *memoryTransactions) Append(ctx context.Context, txn *models.Transaction, balance decimal.Decimal) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	account, ok := r.c.accounts[txn.AccountID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	r.c.transactions = append(r.c.transactions, txn)
	account.Balance = balance
	return nil
}

func (r *memoryTransactions) ListByAccount(ctx context.Context, accountID uint) ([]*models.Transaction, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var txns []*models.Transaction
	for _, txn := range r.c.transactions {
		if txn.AccountID == accountID {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (r *memoryTransactions) ListCreditsByDate(ctx context.Context, date time.Time) ([]*models.Transaction, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	day := domain.DateOnly(date)
	var txns []*models.Transaction
	for _, txn := range r.c.transactions {
		if txn.Direction != domain.DirectionCredit || !domain.DateOnly(txn.Date).Equal(day) {
			continue
		}
		if account, ok := r.c.accounts[txn.AccountID]; ok {
			account.Member = r.c.members[account.MemberID]
			txn.Account = account
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (r *memoryTransactions) ListByMember(ctx context.Context, memberID uint) ([]*models.Transaction, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var txns []*models.Transaction
	for _, txn := range r.c.transactions {
		if account, ok := r.c.accounts[txn.AccountID]; ok && account.MemberID == memberID {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

// ------------------------------------------------------------
// SocietyRepository
// ------------------------------------------------------------

type memorySociety struct{ c *memoryCore }

var _ SocietyRepository = (*memorySociety)(nil)

func (r *memorySociety) Create(ctx context.Context, entry *models.SocietyLedgerEntry) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.c.entries = append(r.c.entries, entry)
	return nil
}

func (r *memorySociety) List(ctx context.Context, offset, limit int) ([]*models.SocietyLedgerEntry, int64, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	total := int64(len(r.c.entries))
	if offset >= len(r.c.entries) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(r.c.entries) {
		end = len(r.c.entries)
	}
	out := make([]*models.SocietyLedgerEntry, end-offset)
	copy(out, r.c.entries[offset:end])
	return out, total, nil
}

func (r *memorySociety) ListIncomeByDate(ctx context.Context, date time.Time) ([]*models.SocietyLedgerEntry, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	day := domain.DateOnly(date)
	var entries []*models.SocietyLedgerEntry
	for _, entry := range r.c.entries {
		if entry.Direction != domain.EntryIncome || !domain.DateOnly(entry.Date).Equal(day) {
			continue
		}
		if entry.MemberID != nil {
			entry.Member = r.c.members[*entry.MemberID]
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ------------------------------------------------------------
// MemberRepository
// ------------------------------------------------------------

type memoryMembers struct{ c *memoryCore }

var _ MemberRepository = (*memoryMembers)(nil)

func (r *memoryMembers) Create(ctx context.Context, member *models.Member) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	r.c.nextMemberID++
	member.ID = r.c.nextMemberID
	r.c.members[member.ID] = member
	return nil
}

func (r *memoryMembers) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	member, ok := r.c.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (r *memoryMembers) GetByMemberNo(ctx context.Context, memberNo string) (*models.Member, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	for _, member := range r.c.members {
		if member.MemberNo == memberNo {
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryMembers) Update(ctx context.Context, member *models.Member) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.members[member.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.c.members[member.ID] = member
	return nil
}

// ------------------------------------------------------------
// ProductRateRepository
// ------------------------------------------------------------

type memoryRates struct{ c *memoryCore }

var _ ProductRateRepository = (*memoryRates)(nil)

func (r *memoryRates) GetByCode(ctx context.Context, code string) (*models.ProductRate, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	rate, ok := r.c.rates[code]
	if !ok || !rate.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return rate, nil
}

func (r *memoryRates) List(ctx context.Context) ([]*models.ProductRate, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	var rates []*models.ProductRate
	for _, rate := range r.c.rates {
		if rate.IsActive {
			rates = append(rates, rate)
		}
	}
	return rates, nil
}
