package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"sncs-coopledger/internal/adapters/persistence/models"
)

// AccountRepository defines account data access.
// CreateWithSeed persists the account, its opening transaction and an
// optional society fee entry as one atomic step; a failure leaves none of
// them behind, so an account never exists without its seed.
type AccountRepository interface {
	CreateWithSeed(ctx context.Context, account *models.Account, seed *models.Transaction, fee *models.SocietyLedgerEntry) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByAccountNumber(ctx context.Context, number string) (*models.Account, error)
	ListByMember(ctx context.Context, memberID uint) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error
	CountByMemberProduct(ctx context.Context, memberID uint, product string) (int64, error)
	ListMaturedCandidates(ctx context.Context, asOf time.Time) ([]*models.Account, error)
}

// TransactionRepository defines transaction log access.
// Append persists a transaction and the recomputed account balance as one
// atomic step; a failure leaves neither behind.
type TransactionRepository interface {
	Append(ctx context.Context, txn *models.Transaction, balance decimal.Decimal) error
	ListByAccount(ctx context.Context, accountID uint) ([]*models.Transaction, error)
	ListCreditsByDate(ctx context.Context, date time.Time) ([]*models.Transaction, error)
	ListByMember(ctx context.Context, memberID uint) ([]*models.Transaction, error)
}

// SocietyRepository defines society ledger access
type SocietyRepository interface {
	Create(ctx context.Context, entry *models.SocietyLedgerEntry) error
	List(ctx context.Context, offset, limit int) ([]*models.SocietyLedgerEntry, int64, error)
	ListIncomeByDate(ctx context.Context, date time.Time) ([]*models.SocietyLedgerEntry, error)
}

// MemberRepository defines member reference access
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByMemberNo(ctx context.Context, memberNo string) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
}

// ProductRateRepository defines product catalog access (Master)
type ProductRateRepository interface {
	GetByCode(ctx context.Context, code string) (*models.ProductRate, error)
	List(ctx context.Context) ([]*models.ProductRate, error)
}
