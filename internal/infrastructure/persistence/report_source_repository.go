package persistence

import (
	"context"
	"time"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/report"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportSource implements report.Source. Each method reads one
// supplier/party pair.
type GormReportSource struct {
	db    *gorm.DB
	parts *GormPartPaymentRepository
}

// NewGormReportSource creates a new GormReportSource
func NewGormReportSource(db *gorm.DB) *GormReportSource {
	return &GormReportSource{db: db, parts: NewGormPartPaymentRepository(db)}
}

func (s *GormReportSource) billsInRange(ctx context.Context, supplierID, partyID int64, r ledger.DateRange) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.RegisterEntryModel{}).
		Where("register_entry.supplier_id = ? AND register_entry.party_id = ?", supplierID, partyID).
		Where("register_entry.register_date BETWEEN ? AND ?", ledger.DateOnly(r.From), ledger.DateOnly(r.To))
}

// KhataBills returns the bills in range with the F, D and G lines that
// settled them, oldest first
func (s *GormReportSource) KhataBills(ctx context.Context, supplierID, partyID int64, r ledger.DateRange) ([]report.KhataBill, error) {
	var bills []models.RegisterEntryModel
	if err := s.billsInRange(ctx, supplierID, partyID, r).
		Order("register_entry.register_date, register_entry.id").
		Find(&bills).Error; err != nil {
		return nil, translateError("khata bills", err)
	}
	if len(bills) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(bills))
	for i := range bills {
		ids[i] = bills[i].ID
	}
	var lines []struct {
		BillID     int64
		MemoNumber int64
		MemoDate   time.Time
		LineAmount decimal.Decimal
		MemoAmount decimal.Decimal
		Type       string
	}
	if err := s.db.WithContext(ctx).
		Table("memo_bills").
		Select("memo_bills.bill_id AS bill_id, memo_entry.memo_number AS memo_number, "+
			"memo_entry.register_date AS memo_date, memo_bills.amount AS line_amount, "+
			"memo_entry.amount AS memo_amount, memo_bills.type AS type").
		Joins("JOIN memo_entry ON memo_entry.id = memo_bills.memo_id").
		Where("memo_bills.bill_id IN ?", ids).
		Order("memo_entry.register_date, memo_bills.id").
		Scan(&lines).Error; err != nil {
		return nil, translateError("khata memo lines", err)
	}

	byBill := make(map[int64][]report.KhataMemoLine, len(bills))
	for _, l := range lines {
		byBill[l.BillID] = append(byBill[l.BillID], report.KhataMemoLine{
			MemoNumber: l.MemoNumber,
			MemoDate:   ledger.DateOnly(l.MemoDate),
			LineAmount: models.Rupees(l.LineAmount),
			MemoAmount: models.Rupees(l.MemoAmount),
			Type:       l.Type,
		})
	}
	out := make([]report.KhataBill, len(bills))
	for i := range bills {
		out[i] = report.KhataBill{
			BillID:     bills[i].ID,
			BillNumber: bills[i].BillNumber,
			BillDate:   ledger.DateOnly(bills[i].RegisterDate),
			Amount:     models.Rupees(bills[i].Amount),
			Status:     bills[i].Status,
			Lines:      byBill[bills[i].ID],
		}
	}
	return out, nil
}

// PendingBills returns the bills in range that are not fully settled
func (s *GormReportSource) PendingBills(ctx context.Context, supplierID, partyID int64, r ledger.DateRange) ([]ledger.RegisterEntry, error) {
	var rows []models.RegisterEntryModel
	if err := s.billsInRange(ctx, supplierID, partyID, r).
		Where("register_entry.status <> ?", string(ledger.BillStatusFull)).
		Order("register_entry.register_date, register_entry.id").
		Find(&rows).Error; err != nil {
		return nil, translateError("pending bills", err)
	}
	return billsToDomain(rows), nil
}

// RegisterLines returns the bills in range with the party name
func (s *GormReportSource) RegisterLines(ctx context.Context, supplierID, partyID int64, r ledger.DateRange) ([]report.RegisterLine, error) {
	var rows []models.RegisterEntryModel
	if err := s.billsInRange(ctx, supplierID, partyID, r).
		Preload("Party").
		Order("register_entry.register_date, register_entry.id").
		Find(&rows).Error; err != nil {
		return nil, translateError("register lines", err)
	}
	out := make([]report.RegisterLine, len(rows))
	for i := range rows {
		bill := rows[i].ToDomain()
		line := report.RegisterLine{
			BillDate:   bill.RegisterDate,
			BillNumber: bill.BillNumber,
			Amount:     bill.Amount,
			Pending:    bill.PendingAmount(),
			Status:     string(bill.Status),
		}
		if rows[i].Party != nil {
			line.PartyName = rows[i].Party.Name
		}
		out[i] = line
	}
	return out, nil
}

// OrderLines returns the undelivered order forms in range
func (s *GormReportSource) OrderLines(ctx context.Context, supplierID, partyID int64, r ledger.DateRange) ([]report.OrderLine, error) {
	var rows []models.OrderFormModel
	if err := s.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Party").
		Where("supplier_id = ? AND party_id = ? AND delivered = ?", supplierID, partyID, false).
		Where("register_date BETWEEN ? AND ?", ledger.DateOnly(r.From), ledger.DateOnly(r.To)).
		Order("register_date, id").
		Find(&rows).Error; err != nil {
		return nil, translateError("order lines", err)
	}
	out := make([]report.OrderLine, len(rows))
	for i := range rows {
		line := report.OrderLine{
			OrderNumber: rows[i].OrderFormNumber,
			OrderDate:   ledger.DateOnly(rows[i].RegisterDate),
			Status:      rows[i].Status,
		}
		if sup := rows[i].Supplier; sup != nil {
			line.SupplierName = sup.Name
			line.SupplierAddress = sup.Address
			line.SupplierPhone = sup.PhoneNumber
		}
		if p := rows[i].Party; p != nil {
			line.PartyName = p.Name
		}
		out[i] = line
	}
	return out, nil
}

// UnusedCredits returns the open credits of the pair
func (s *GormReportSource) UnusedCredits(ctx context.Context, supplierID, partyID int64) ([]ledger.Credit, error) {
	return s.parts.FindUnused(ctx, supplierID, partyID)
}

// BillTotals sums bill amounts per pair for the given parties in range
func (s *GormReportSource) BillTotals(ctx context.Context, partyIDs []int64, r ledger.DateRange) ([]report.PairTotal, error) {
	var rows []struct {
		SupplierID int64
		PartyID    int64
		Total      decimal.Decimal
	}
	if err := s.db.WithContext(ctx).
		Model(&models.RegisterEntryModel{}).
		Select("supplier_id, party_id, COALESCE(SUM(amount), 0) AS total").
		Where("party_id IN ?", nonEmpty(partyIDs)).
		Where("register_date BETWEEN ? AND ?", ledger.DateOnly(r.From), ledger.DateOnly(r.To)).
		Group("supplier_id, party_id").
		Order("party_id, supplier_id").
		Scan(&rows).Error; err != nil {
		return nil, translateError("bill totals", err)
	}
	out := make([]report.PairTotal, len(rows))
	for i, row := range rows {
		out[i] = report.PairTotal{SupplierID: row.SupplierID, PartyID: row.PartyID, Amount: models.Rupees(row.Total)}
	}
	return out, nil
}

var _ report.Source = (*GormReportSource)(nil)
