package persistence

import (
	"context"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMemoEntryRepository implements ledger.MemoEntryRepository using GORM
type GormMemoEntryRepository struct {
	db *gorm.DB
}

// NewGormMemoEntryRepository creates a new GormMemoEntryRepository
func NewGormMemoEntryRepository(db *gorm.DB) *GormMemoEntryRepository {
	return &GormMemoEntryRepository{db: db}
}

// FindByID loads a memo with its lines, payments and consumed credits
func (r *GormMemoEntryRepository) FindByID(ctx context.Context, id int64) (*ledger.MemoEntry, error) {
	var model models.MemoEntryModel
	if err := r.withChildren(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find memo", err)
	}
	return model.ToDomain(), nil
}

// FindByNumber returns the memos of a pair carrying memoNumber, with children
func (r *GormMemoEntryRepository) FindByNumber(ctx context.Context, supplierID, partyID, memoNumber int64) ([]ledger.MemoEntry, error) {
	var rows []models.MemoEntryModel
	if err := r.withChildren(r.db.WithContext(ctx)).
		Where("supplier_id = ? AND party_id = ? AND memo_number = ?", supplierID, partyID, memoNumber).
		Order("register_date, id").
		Find(&rows).Error; err != nil {
		return nil, translateError("find memos by number", err)
	}
	return memosToDomain(rows), nil
}

// FindByPair lists the memos of a pair, newest first, without children
func (r *GormMemoEntryRepository) FindByPair(ctx context.Context, supplierID, partyID int64) ([]ledger.MemoEntry, error) {
	var rows []models.MemoEntryModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND party_id = ?", supplierID, partyID).
		Order("register_date DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, translateError("list memos", err)
	}
	return memosToDomain(rows), nil
}

func (r *GormMemoEntryRepository) withChildren(q *gorm.DB) *gorm.DB {
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id") }
	return q.
		Preload("Lines", byID).
		Preload("Lines.Bill").
		Preload("Payments", byID).
		Preload("Consumed", byID)
}

// Create inserts the memo header and assigns its ID. Lines and payments are
// written through CreateLine and CreatePayment.
func (r *GormMemoEntryRepository) Create(ctx context.Context, memo *ledger.MemoEntry) error {
	var model models.MemoEntryModel
	model.FromDomain(memo)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return translateError("create memo", err)
	}
	memo.ID = model.ID
	return nil
}

// CreateLine inserts a memo line and assigns its ID
func (r *GormMemoEntryRepository) CreateLine(ctx context.Context, line *ledger.MemoBill) error {
	model := models.MemoBillModelFromDomain(line)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError("create memo line", err)
	}
	line.ID = model.ID
	return nil
}

// CreatePayment inserts a bank payment and assigns its ID
func (r *GormMemoEntryRepository) CreatePayment(ctx context.Context, payment *ledger.MemoPayment) error {
	model := models.MemoPaymentModelFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError("create memo payment", err)
	}
	payment.ID = model.ID
	return nil
}

// DeleteLine deletes one memo line
func (r *GormMemoEntryRepository) DeleteLine(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.MemoBillModel{}, "id = ?", id).Error; err != nil {
		return translateError("delete memo line", err)
	}
	return nil
}

// DeletePayments deletes every payment of a memo
func (r *GormMemoEntryRepository) DeletePayments(ctx context.Context, memoID int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.MemoPaymentModel{}, "memo_id = ?", memoID).Error; err != nil {
		return translateError("delete memo payments", err)
	}
	return nil
}

// Delete deletes the memo header
func (r *GormMemoEntryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.MemoEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete memo", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("delete memo", gorm.ErrRecordNotFound)
	}
	return nil
}

// SumLines totals the line amounts of one type for memos in the selection
func (r *GormMemoEntryRepository) SumLines(ctx context.Context, sel ledger.Selection, lineType ledger.LineType) (int64, error) {
	var result struct {
		Total decimal.Decimal
	}
	q := r.db.WithContext(ctx).
		Table("memo_bills").
		Select("COALESCE(SUM(memo_bills.amount), 0) AS total").
		Joins("JOIN memo_entry ON memo_entry.id = memo_bills.memo_id").
		Where("memo_bills.type = ?", string(lineType))
	if err := applySelection(q, sel, "memo_entry.").Scan(&result).Error; err != nil {
		return 0, translateError("sum memo lines", err)
	}
	return models.Rupees(result.Total), nil
}

func memosToDomain(rows []models.MemoEntryModel) []ledger.MemoEntry {
	out := make([]ledger.MemoEntry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ ledger.MemoEntryRepository = (*GormMemoEntryRepository)(nil)
