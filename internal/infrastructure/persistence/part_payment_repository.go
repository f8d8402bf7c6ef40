package persistence

import (
	"context"
	"time"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartPaymentRepository implements ledger.PartPaymentRepository using GORM
type GormPartPaymentRepository struct {
	db *gorm.DB
}

// NewGormPartPaymentRepository creates a new GormPartPaymentRepository
func NewGormPartPaymentRepository(db *gorm.DB) *GormPartPaymentRepository {
	return &GormPartPaymentRepository{db: db}
}

// FindByID finds a credit by its ID
func (r *GormPartPaymentRepository) FindByID(ctx context.Context, id int64) (*ledger.PartPayment, error) {
	var model models.PartPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find part payment", err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a credit with SELECT ... FOR UPDATE
func (r *GormPartPaymentRepository) FindByIDForUpdate(ctx context.Context, id int64) (*ledger.PartPayment, error) {
	var model models.PartPaymentModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("lock part payment", err)
	}
	return model.ToDomain(), nil
}

// FindByMemo returns the credits created by a Part memo
func (r *GormPartPaymentRepository) FindByMemo(ctx context.Context, memoID int64) ([]ledger.PartPayment, error) {
	return r.findWhere(ctx, "find part payments by memo", "memo_id = ?", memoID)
}

// FindByUseMemo returns the credits consumed by a Full memo
func (r *GormPartPaymentRepository) FindByUseMemo(ctx context.Context, memoID int64) ([]ledger.PartPayment, error) {
	return r.findWhere(ctx, "find part payments by use memo", "use_memo_id = ?", memoID)
}

func (r *GormPartPaymentRepository) findWhere(ctx context.Context, op, query string, args ...any) ([]ledger.PartPayment, error) {
	var rows []models.PartPaymentModel
	if err := r.db.WithContext(ctx).Where(query, args...).Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(op, err)
	}
	out := make([]ledger.PartPayment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// creditRow is one PR line of an unused credit
type creditRow struct {
	PartPaymentID int64
	MemoID        int64
	MemoNumber    int64
	MemoDate      time.Time
	MemoAmount    decimal.Decimal
	LineAmount    decimal.Decimal
}

// FindUnused returns the open credits of a pair, one entry per PR line of
// the memo behind each credit
func (r *GormPartPaymentRepository) FindUnused(ctx context.Context, supplierID, partyID int64) ([]ledger.Credit, error) {
	var rows []creditRow
	if err := r.creditQuery(ctx).
		Where("part_payments.supplier_id = ? AND part_payments.party_id = ? AND part_payments.used = ?", supplierID, partyID, false).
		Order("memo_entry.register_date, part_payments.id, memo_bills.id").
		Scan(&rows).Error; err != nil {
		return nil, translateError("find unused part payments", err)
	}
	return creditsToDomain(rows), nil
}

const creditColumns = "part_payments.id AS part_payment_id, memo_entry.id AS memo_id, " +
	"memo_entry.memo_number AS memo_number, memo_entry.register_date AS memo_date, " +
	"memo_entry.amount AS memo_amount, memo_bills.amount AS line_amount"

func (r *GormPartPaymentRepository) creditQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("part_payments").
		Select(creditColumns).
		Joins("JOIN memo_entry ON memo_entry.id = part_payments.memo_id").
		Joins("JOIN memo_bills ON memo_bills.memo_id = memo_entry.id AND memo_bills.type = ?", string(ledger.LineTypePartCredit))
}

func (c creditRow) toDomain() ledger.Credit {
	return ledger.Credit{
		PartPaymentID: c.PartPaymentID,
		MemoID:        c.MemoID,
		MemoNumber:    c.MemoNumber,
		MemoDate:      ledger.DateOnly(c.MemoDate),
		MemoAmount:    models.Rupees(c.MemoAmount),
		LineAmount:    models.Rupees(c.LineAmount),
	}
}

func creditsToDomain(rows []creditRow) []ledger.Credit {
	out := make([]ledger.Credit, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out
}

// Create inserts a credit and assigns its ID
func (r *GormPartPaymentRepository) Create(ctx context.Context, part *ledger.PartPayment) error {
	var model models.PartPaymentModel
	model.FromDomain(part)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return translateError("create part payment", err)
	}
	part.ID = model.ID
	return nil
}

// MarkUsed flips an unused credit to used with a conditional update. It
// reports false when the credit was already used.
func (r *GormPartPaymentRepository) MarkUsed(ctx context.Context, id, memoID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PartPaymentModel{}).
		Where("id = ? AND used = ?", id, false).
		Updates(map[string]any{
			"used":        true,
			"use_memo_id": memoID,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, translateError("consume part payment", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Release returns the credits consumed by memoID to the pool
func (r *GormPartPaymentRepository) Release(ctx context.Context, memoID int64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.PartPaymentModel{}).
		Where("use_memo_id = ?", memoID).
		Updates(map[string]any{
			"used":        false,
			"use_memo_id": nil,
			"updated_at":  time.Now(),
		}).Error; err != nil {
		return translateError("release part payments", err)
	}
	return nil
}

// Delete deletes an unused credit
func (r *GormPartPaymentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("used = ?", false).Delete(&models.PartPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete part payment", result.Error)
	}
	if result.RowsAffected == 0 {
		return ledger.NewPartPaymentAlreadyUsedError(id)
	}
	return nil
}

// BulkTotal sums the PR lines behind every credit in the selection, used or
// not, filtered on the date of the memo that created them
func (r *GormPartPaymentRepository) BulkTotal(ctx context.Context, sel ledger.Selection) (int64, error) {
	var result struct {
		Total decimal.Decimal
	}
	q := r.db.WithContext(ctx).
		Table("part_payments").
		Select("COALESCE(SUM(memo_bills.amount), 0) AS total").
		Joins("JOIN memo_entry ON memo_entry.id = part_payments.memo_id").
		Joins("JOIN memo_bills ON memo_bills.memo_id = memo_entry.id AND memo_bills.type = ?", string(ledger.LineTypePartCredit))
	if err := applySelection(q, sel, "memo_entry.").Scan(&result).Error; err != nil {
		return 0, translateError("sum part payments", err)
	}
	return models.Rupees(result.Total), nil
}

var _ ledger.PartPaymentRepository = (*GormPartPaymentRepository)(nil)
