package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/core/domain"
)

// CollectionService builds the read-only rollups that cut across the
// transaction ledger and the society ledger: the day-wise collection report
// and the member passbook backlog. Nothing here mutates ledger state.
type CollectionService struct {
	txRepo      repositories.TransactionRepository
	societyRepo repositories.SocietyRepository
	memberRepo  repositories.MemberRepository
}

// NewCollectionService creates a new collection service
func NewCollectionService(
	txRepo repositories.TransactionRepository,
	societyRepo repositories.SocietyRepository,
	memberRepo repositories.MemberRepository,
) *CollectionService {
	return &CollectionService{
		txRepo:      txRepo,
		societyRepo: societyRepo,
		memberRepo:  memberRepo,
	}
}

// Record sources
const (
	SourceAccountTx = "ACCOUNT"
	SourceSociety   = "SOCIETY"
)

// CollectionRecord is one contributing row of the day-wise report
type CollectionRecord struct {
	RecordID     string             `json:"record_id"`
	Source       string             `json:"source"`
	SourceRef    string             `json:"source_ref"`
	Counterparty string             `json:"counterparty"`
	Purpose      string             `json:"purpose"`
	Mode         domain.PaymentMode `json:"mode"`
	Cash         decimal.Decimal    `json:"cash"`
	Online       decimal.Decimal    `json:"online"`
	Total        decimal.Decimal    `json:"total"`
}

// DaywiseReport is the collection rollup for one calendar day
type DaywiseReport struct {
	Date        time.Time          `json:"date"`
	Records     []CollectionRecord `json:"records"`
	TotalCash   decimal.Decimal    `json:"total_cash"`
	TotalOnline decimal.Decimal    `json:"total_online"`
	GrandTotal  decimal.Decimal    `json:"grand_total"`
}

// Daywise collects every account credit and every society income entry
// dated on the target day, attributes each to cash and online, and sums
// per-mode totals
func (s *CollectionService) Daywise(ctx context.Context, date time.Time) (*DaywiseReport, error) {
	report := &DaywiseReport{
		Date:        domain.DateOnly(date),
		TotalCash:   decimal.Zero,
		TotalOnline: decimal.Zero,
		GrandTotal:  decimal.Zero,
	}

	txns, err := s.txRepo.ListCreditsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	for _, txn := range txns {
		rec := CollectionRecord{
			RecordID: txn.ID,
			Source:   SourceAccountTx,
			Purpose:  txn.Category,
			Mode:     txn.PaymentMode,
		}
		if txn.Account != nil {
			rec.SourceRef = txn.Account.AccountNumber
			if txn.Account.Member != nil {
				rec.Counterparty = txn.Account.Member.FullName
			}
		}
		rec.Cash, rec.Online = attribute(txn.PaymentMode, txn.Amount, txn.CashAmount, txn.OnlineAmount)
		rec.Total = rec.Cash.Add(rec.Online)
		report.Records = append(report.Records, rec)
	}

	entries, err := s.societyRepo.ListIncomeByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		rec := CollectionRecord{
			RecordID:  entry.ID,
			Source:    SourceSociety,
			SourceRef: SourceSociety,
			Purpose:   entry.Category,
			Mode:      entry.PaymentMode,
		}
		if entry.Member != nil {
			rec.Counterparty = entry.Member.FullName
		}
		rec.Cash, rec.Online = attribute(entry.PaymentMode, entry.Amount, entry.CashAmount, entry.OnlineAmount)
		rec.Total = rec.Cash.Add(rec.Online)
		report.Records = append(report.Records, rec)
	}

	// reproducible row order for printing
	sort.SliceStable(report.Records, func(i, j int) bool {
		a, b := report.Records[i], report.Records[j]
		if a.SourceRef != b.SourceRef {
			return a.SourceRef < b.SourceRef
		}
		return a.RecordID < b.RecordID
	})

	for _, rec := range report.Records {
		report.TotalCash = report.TotalCash.Add(rec.Cash)
		report.TotalOnline = report.TotalOnline.Add(rec.Online)
	}
	report.GrandTotal = report.TotalCash.Add(report.TotalOnline)
	return report, nil
}

// attribute resolves a record's cash/online contribution: the explicit
// split for BOTH, otherwise the full amount on the single recorded mode.
// An unspecified mode counts as cash.
func attribute(mode domain.PaymentMode, amount, cash, online decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	switch mode {
	case domain.ModeBoth:
		return cash, online
	case domain.ModeOnline:
		return decimal.Zero, amount
	default:
		return amount, decimal.Zero
	}
}

// Passbook flattens all of a member's transactions across all accounts into
// one reproducible order: date ascending, then id ascending as tie-break,
// independent of storage order
func (s *CollectionService) Passbook(ctx context.Context, memberID uint) ([]*models.Transaction, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	txns, err := s.txRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		return txns[i].ID < txns[j].ID
	})
	return txns, nil
}

// PassbookBacklog counts the member's transactions that have not been
// printed yet: everything strictly after the last-printed anchor in the
// flattened passbook order. A missing anchor means nothing was printed,
// so the whole list is the backlog.
func (s *CollectionService) PassbookBacklog(ctx context.Context, memberID uint) (int, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrMemberNotFound
		}
		return 0, err
	}

	txns, err := s.Passbook(ctx, memberID)
	if err != nil {
		return 0, err
	}
	if member.LastPrintedTxID == "" {
		return len(txns), nil
	}
	for i, txn := range txns {
		if txn.ID == member.LastPrintedTxID {
			return len(txns) - i - 1, nil
		}
	}
	return len(txns), nil
}

// MarkPassbookPrinted moves the member's print anchor to the latest
// transaction in passbook order
func (s *CollectionService) MarkPassbookPrinted(ctx context.Context, memberID uint) error {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMemberNotFound
		}
		return err
	}

	txns, err := s.Passbook(ctx, memberID)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		return nil
	}
	member.LastPrintedTxID = txns[len(txns)-1].ID
	return s.memberRepo.Update(ctx, member)
}
