package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/core/domain"
)

// GormTransactionRepository handles transaction log access backed by GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append writes the transaction and the recomputed balance in one database
// transaction, so the caller never observes a partially applied append
func (r *GormTransactionRepository) Append(ctx context.Context, txn *models.Transaction, balance decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		return tx.Model(&models.Account{}).
			Where("id = ?", txn.AccountID).
			Update("balance", balance).Error
	})
}

// ListByAccount lists an account's transactions in stored order
func (r *GormTransactionRepository) ListByAccount(ctx context.Context, accountID uint) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC, id ASC").
		Find(&txns).Error
	return txns, err
}

// ListCreditsByDate lists all credit transactions dated on the given day,
// with account and member preloaded for report counterparty names
func (r *GormTransactionRepository) ListCreditsByDate(ctx context.Context, date time.Time) ([]*models.Transaction, error) {
	day := domain.DateOnly(date)
	var txns []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Account.Member").
		Where("date = ? AND direction = ?", day, domain.DirectionCredit).
		Order("created_at ASC, id ASC").
		Find(&txns).Error
	return txns, err
}

// ListByMember flattens a member's transactions across all of their accounts
func (r *GormTransactionRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := r.db.WithContext(ctx).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.member_id = ?", memberID).
		Find(&txns).Error
	return txns, err
}
