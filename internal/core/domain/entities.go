package domain

import "time"

// ProductType represents the kind of account a member can hold
type ProductType string

const (
	ProductShareCapital      ProductType = "SHARE"
	ProductCompulsoryDeposit ProductType = "CD"
	ProductOptionalDeposit   ProductType = "OD"
	ProductFixedDeposit      ProductType = "FD"
	ProductRecurringDeposit  ProductType = "RD"
	ProductLoan              ProductType = "LOAN"
)

// IsValid reports whether p is a known product type
func (p ProductType) IsValid() bool {
	switch p {
	case ProductShareCapital, ProductCompulsoryDeposit, ProductOptionalDeposit,
		ProductFixedDeposit, ProductRecurringDeposit, ProductLoan:
		return true
	}
	return false
}

// IsDeposit reports whether p is a deposit-type product.
// Deposit polarity: credit adds, debit subtracts. Loans are inverted.
func (p ProductType) IsDeposit() bool {
	return p.IsValid() && p != ProductLoan
}

// Code returns the short code embedded in account numbers
func (p ProductType) Code() string {
	return string(p)
}

// LoanSubtype represents the subtype of a loan account
type LoanSubtype string

const (
	LoanPersonal    LoanSubtype = "PERSONAL"
	LoanHome        LoanSubtype = "HOME"
	LoanGold        LoanSubtype = "GOLD"
	LoanVehicle     LoanSubtype = "VEHICLE"
	LoanAgriculture LoanSubtype = "AGRICULTURE"
	LoanEmergency   LoanSubtype = "EMERGENCY"
)

// IsValid reports whether s is a known loan subtype
func (s LoanSubtype) IsValid() bool {
	switch s {
	case LoanPersonal, LoanHome, LoanGold, LoanVehicle, LoanAgriculture, LoanEmergency:
		return true
	}
	return false
}

// AccountStatus represents account lifecycle status
type AccountStatus string

const (
	StatusPending   AccountStatus = "PENDING"
	StatusActive    AccountStatus = "ACTIVE"
	StatusClosed    AccountStatus = "CLOSED"
	StatusMatured   AccountStatus = "MATURED"
	StatusDefaulted AccountStatus = "DEFAULTED"
)

// IsValid reports whether s is a known account status
func (s AccountStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusClosed, StatusMatured, StatusDefaulted:
		return true
	}
	return false
}

// Direction represents the direction of an account transaction
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// IsValid reports whether d is a known direction
func (d Direction) IsValid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// EntryDirection represents the direction of a society ledger entry
type EntryDirection string

const (
	EntryIncome  EntryDirection = "INCOME"
	EntryExpense EntryDirection = "EXPENSE"
)

// IsValid reports whether d is a known entry direction
func (d EntryDirection) IsValid() bool {
	return d == EntryIncome || d == EntryExpense
}

// TxKind tags a transaction at creation time.
// The seed transaction always adds to the balance during replay; everything
// else follows product polarity. The kind is fixed when the record is
// written, never inferred from category text.
type TxKind string

const (
	KindSeed         TxKind = "SEED"
	KindDisbursement TxKind = "DISBURSEMENT"
	KindRegular      TxKind = "REGULAR"
)

// PaymentMode represents how a payment was settled
type PaymentMode string

const (
	ModeCash   PaymentMode = "CASH"
	ModeOnline PaymentMode = "ONLINE"
	ModeBoth   PaymentMode = "BOTH"
)

// IsValid reports whether m is a known payment mode
func (m PaymentMode) IsValid() bool {
	return m == ModeCash || m == ModeOnline || m == ModeBoth
}

// InstallmentFrequency represents how often a recurring deposit is collected
type InstallmentFrequency string

const (
	FrequencyMonthly InstallmentFrequency = "MONTHLY"
	FrequencyDaily   InstallmentFrequency = "DAILY"
)

// Guarantor represents a loan guarantor record
type Guarantor struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// IsComplete reports whether the guarantor satisfies the loan precondition
// (name and phone both present)
func (g Guarantor) IsComplete() bool {
	return g.Name != "" && g.Phone != ""
}

// DateOnly truncates t to midnight UTC so ledger dates compare at day
// granularity regardless of the wall-clock time they were recorded with
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
