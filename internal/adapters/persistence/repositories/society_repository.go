package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/core/domain"
)

// GormSocietyRepository handles society ledger access backed by GORM
type GormSocietyRepository struct {
	db *gorm.DB
}

// NewGormSocietyRepository creates a new society ledger repository
func NewGormSocietyRepository(db *gorm.DB) *GormSocietyRepository {
	return &GormSocietyRepository{db: db}
}

// Create appends a society ledger entry
func (r *GormSocietyRepository) Create(ctx context.Context, entry *models.SocietyLedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List lists entries newest first with pagination
func (r *GormSocietyRepository) List(ctx context.Context, offset, limit int) ([]*models.SocietyLedgerEntry, int64, error) {
	var entries []*models.SocietyLedgerEntry
	var total int64

	r.db.WithContext(ctx).Model(&models.SocietyLedgerEntry{}).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Member").
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// ListIncomeByDate lists income entries dated on the given day
func (r *GormSocietyRepository) ListIncomeByDate(ctx context.Context, date time.Time) ([]*models.SocietyLedgerEntry, error) {
	day := domain.DateOnly(date)
	var entries []*models.SocietyLedgerEntry
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("date = ? AND direction = ?", day, domain.EntryIncome).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}
