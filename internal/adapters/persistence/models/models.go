package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sncs-coopledger/internal/core/domain"
)

// ============================================================
// Reference Tables
// ============================================================

// Member represents the members table. Member administration itself lives in
// the admin tool; the ledger core only needs the fields below.
type Member struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	MemberNo        string         `gorm:"uniqueIndex;size:20;not null" json:"member_no"`
	FullName        string         `gorm:"size:100;not null" json:"full_name"`
	Phone           string         `gorm:"size:20" json:"phone"`
	LastPrintedTxID string         `gorm:"size:36" json:"last_printed_tx_id"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string {
	return "members"
}

// ProductRate represents the product catalog (Master) with default interest
// rates. Code is the product code, or PRODUCT:SUBTYPE for loan subtypes.
type ProductRate struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	RatePercent float64        `gorm:"type:decimal(5,2);not null" json:"rate_percent"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductRate) TableName() string {
	return "product_rates"
}

// ============================================================
// Main Tables
// ============================================================

// Account represents the accounts table.
// Balance is a cache of replaying the transaction log; readers that need a
// correctness-sensitive value must go through the ledger service, which
// replays and rewrites the cache when it drifts.
type Account struct {
	ID                uint                        `gorm:"primaryKey" json:"id"`
	AccountNumber     string                      `gorm:"size:40;uniqueIndex;not null" json:"account_number"`
	MemberID          uint                        `gorm:"not null;index" json:"member_id"`
	Product           domain.ProductType          `gorm:"size:10;not null" json:"product"`
	LoanSubtype       domain.LoanSubtype          `gorm:"size:20" json:"loan_subtype,omitempty"`
	InterestRate      decimal.Decimal             `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	TermMonths        int                         `json:"term_months,omitempty"`
	TermDays          int                         `json:"term_days,omitempty"`
	Frequency         domain.InstallmentFrequency `gorm:"size:10" json:"frequency,omitempty"`
	OpeningDate       time.Time                   `gorm:"type:date;not null" json:"opening_date"`
	MaturityDate      *time.Time                  `gorm:"type:date" json:"maturity_date,omitempty"`
	OriginalPrincipal decimal.Decimal             `gorm:"type:decimal(15,2);not null" json:"original_principal"`
	Balance           decimal.Decimal             `gorm:"type:decimal(15,2);not null" json:"balance"`
	Status            domain.AccountStatus        `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	EMI               decimal.Decimal             `gorm:"type:decimal(15,2)" json:"emi"`
	LowBalanceAlert   *decimal.Decimal            `gorm:"type:decimal(15,2)" json:"low_balance_alert,omitempty"`
	CreatedAt         time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt              `gorm:"index" json:"-"`

	// Relations
	Member     *Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Guarantors []Guarantor `gorm:"foreignKey:AccountID" json:"guarantors,omitempty"`
}

func (Account) TableName() string {
	return "accounts"
}

// Guarantor represents the guarantors table (ordered, 1:N with account)
type Guarantor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	Position  int       `gorm:"not null" json:"position"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Relation  string    `gorm:"size:50" json:"relation"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Guarantor) TableName() string {
	return "guarantors"
}

// Transaction represents the transactions table. Rows are immutable once
// appended; they are the source of truth the account balance is derived from.
type Transaction struct {
	ID           string             `gorm:"primaryKey;size:36" json:"id"`
	AccountID    uint               `gorm:"not null;index" json:"account_id"`
	Date         time.Time          `gorm:"type:date;not null;index" json:"date"`
	Amount       decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Direction    domain.Direction   `gorm:"size:10;not null" json:"direction"`
	Kind         domain.TxKind      `gorm:"size:15;not null;default:'REGULAR'" json:"kind"`
	Category     string             `gorm:"size:100" json:"category"`
	Description  string             `gorm:"type:text" json:"description"`
	DueDate      *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	PaymentMode  domain.PaymentMode `gorm:"size:10;not null;default:'CASH'" json:"payment_mode"`
	CashAmount   decimal.Decimal    `gorm:"type:decimal(15,2)" json:"cash_amount"`
	OnlineAmount decimal.Decimal    `gorm:"type:decimal(15,2)" json:"online_amount"`
	UTRReference string             `gorm:"size:50" json:"utr_reference,omitempty"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// SocietyLedgerEntry represents the society_ledger_entries table: the
// account-independent income/expense journal for fees and charges.
type SocietyLedgerEntry struct {
	ID           string                `gorm:"primaryKey;size:36" json:"id"`
	MemberID     *uint                 `gorm:"index" json:"member_id,omitempty"`
	Date         time.Time             `gorm:"type:date;not null;index" json:"date"`
	Description  string                `gorm:"type:text" json:"description"`
	Category     string                `gorm:"size:100" json:"category"`
	Amount       decimal.Decimal       `gorm:"type:decimal(15,2);not null" json:"amount"`
	Direction    domain.EntryDirection `gorm:"size:10;not null" json:"direction"`
	PaymentMode  domain.PaymentMode    `gorm:"size:10;not null;default:'CASH'" json:"payment_mode"`
	CashAmount   decimal.Decimal       `gorm:"type:decimal(15,2)" json:"cash_amount"`
	OnlineAmount decimal.Decimal       `gorm:"type:decimal(15,2)" json:"online_amount"`
	UTRReference string                `gorm:"size:50" json:"utr_reference,omitempty"`
	CreatedAt    time.Time             `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (SocietyLedgerEntry) TableName() string {
	return "society_ledger_entries"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all ledger tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Reference
		&Member{},
		&ProductRate{},
		// Main
		&Account{},
		&Guarantor{},
		&Transaction{},
		&SocietyLedgerEntry{},
	)
}
