package repositories

import (
	"context"

	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
)

// GormMemberRepository handles member reference access backed by GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new member repository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a member
func (r *GormMemberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by ID
func (r *GormMemberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByMemberNo gets a member by member number
func (r *GormMemberRepository) GetByMemberNo(ctx context.Context, memberNo string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("member_no = ?", memberNo).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Update updates a member
func (r *GormMemberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// GormProductRateRepository handles product catalog access (Master)
type GormProductRateRepository struct {
	db *gorm.DB
}

// NewGormProductRateRepository creates a new product rate repository
func NewGormProductRateRepository(db *gorm.DB) *GormProductRateRepository {
	return &GormProductRateRepository{db: db}
}

// GetByCode gets an active product rate by code
func (r *GormProductRateRepository) GetByCode(ctx context.Context, code string) (*models.ProductRate, error) {
	var rate models.ProductRate
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// List lists all active product rates
func (r *GormProductRateRepository) List(ctx context.Context) ([]*models.ProductRate, error) {
	var rates []*models.ProductRate
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&rates).Error
	return rates, err
}
