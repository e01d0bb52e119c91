package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/core/domain"
)

// GormAccountRepository handles account data access backed by GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new account repository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// CreateWithSeed creates the account, its guarantor rows, its seed
// transaction and an optional fee entry in one database transaction
func (r *GormAccountRepository) CreateWithSeed(ctx context.Context, account *models.Account, seed *models.Transaction, fee *models.SocietyLedgerEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		seed.AccountID = account.ID
		if err := tx.Create(seed).Error; err != nil {
			return err
		}
		if fee != nil {
			return tx.Create(fee).Error
		}
		return nil
	})
}

// GetByID gets an account by ID with member and guarantors
func (r *GormAccountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Guarantors", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&account, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByAccountNumber gets an account by its human-readable number
func (r *GormAccountRepository) GetByAccountNumber(ctx context.Context, number string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("account_number = ?", number).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListByMember lists all accounts owned by a member
func (r *GormAccountRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&accounts).Error
	return accounts, err
}

// Update updates an account
func (r *GormAccountRepository) Update(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// UpdateBalance rewrites the cached balance column only
func (r *GormAccountRepository) UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("balance", balance).Error
}

// CountByMemberProduct counts a member's accounts of one product type,
// used for the sequence part of new account numbers
func (r *GormAccountRepository) CountByMemberProduct(ctx context.Context, memberID uint, product string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("member_id = ? AND product = ?", memberID, product).
		Count(&count).Error
	return count, err
}

// ListMaturedCandidates lists active term deposits whose maturity date has passed
func (r *GormAccountRepository) ListMaturedCandidates(ctx context.Context, asOf time.Time) ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.db.WithContext(ctx).
		Where("status = ? AND product IN ? AND maturity_date IS NOT NULL AND maturity_date <= ?",
			domain.StatusActive,
			[]domain.ProductType{domain.ProductFixedDeposit, domain.ProductRecurringDeposit},
			asOf).
		Find(&accounts).Error
	return accounts, err
}
