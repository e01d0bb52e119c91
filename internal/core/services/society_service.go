package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/core/domain"
)

// SocietyService handles the account-independent income/expense journal:
// admission fees, processing charges and other organizational cash flows.
// Entries share the payment reconciliation rules with account transactions.
type SocietyService struct {
	societyRepo repositories.SocietyRepository
	memberRepo  repositories.MemberRepository
	reconciler  *PaymentReconciler
}

// NewSocietyService creates a new society ledger service
func NewSocietyService(
	societyRepo repositories.SocietyRepository,
	memberRepo repositories.MemberRepository,
	reconciler *PaymentReconciler,
) *SocietyService {
	return &SocietyService{
		societyRepo: societyRepo,
		memberRepo:  memberRepo,
		reconciler:  reconciler,
	}
}

// AppendLedgerEntryInput represents append ledger entry input
type AppendLedgerEntryInput struct {
	MemberID    *uint                 `json:"member_id,omitempty"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description,omitempty"`
	Category    string                `json:"category,omitempty"`
	Amount      decimal.Decimal       `json:"amount" validate:"required"`
	Direction   domain.EntryDirection `json:"direction" validate:"required"`
	Payment     PaymentInput          `json:"payment"`
}

// Append validates, reconciles and appends a society ledger entry.
// MemberID is optional; pure internal society transactions carry none.
func (s *SocietyService) Append(ctx context.Context, input *AppendLedgerEntryInput) (*models.SocietyLedgerEntry, error) {
	if input.Amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !input.Direction.IsValid() {
		return nil, domain.ErrInvalidEntryDirection
	}
	if input.MemberID != nil {
		if _, err := s.memberRepo.GetByID(ctx, *input.MemberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrMemberNotFound
			}
			return nil, err
		}
	}

	split, err := s.reconciler.Reconcile(input.Amount, input.Payment)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	entry := &models.SocietyLedgerEntry{
		ID:           uuid.NewString(),
		MemberID:     input.MemberID,
		Date:         domain.DateOnly(date),
		Description:  input.Description,
		Category:     input.Category,
		Amount:       input.Amount,
		Direction:    input.Direction,
		PaymentMode:  split.Mode,
		CashAmount:   split.Cash,
		OnlineAmount: split.Online,
		UTRReference: split.UTR,
	}
	if err := s.societyRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List lists entries with pagination
func (s *SocietyService) List(ctx context.Context, offset, limit int) ([]*models.SocietyLedgerEntry, int64, error) {
	return s.societyRepo.List(ctx, offset, limit)
}
