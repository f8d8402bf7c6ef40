package persistence

import (
	"context"
	"strings"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRegisterEntryRepository implements ledger.RegisterEntryRepository using GORM
type GormRegisterEntryRepository struct {
	db *gorm.DB
}

// NewGormRegisterEntryRepository creates a new GormRegisterEntryRepository
func NewGormRegisterEntryRepository(db *gorm.DB) *GormRegisterEntryRepository {
	return &GormRegisterEntryRepository{db: db}
}

// FindByID finds a bill by its ID
func (r *GormRegisterEntryRepository) FindByID(ctx context.Context, id int64) (*ledger.RegisterEntry, error) {
	var model models.RegisterEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find bill", err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a bill with SELECT ... FOR UPDATE
func (r *GormRegisterEntryRepository) FindByIDForUpdate(ctx context.Context, id int64) (*ledger.RegisterEntry, error) {
	var model models.RegisterEntryModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("lock bill", err)
	}
	return model.ToDomain(), nil
}

// FindByKey returns every bill sharing (supplier, party, bill_number)
func (r *GormRegisterEntryRepository) FindByKey(ctx context.Context, supplierID, partyID int64, billNumber string) ([]ledger.RegisterEntry, error) {
	var rows []models.RegisterEntryModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND party_id = ? AND bill_number = ?", supplierID, partyID, strings.TrimSpace(billNumber)).
		Order("register_date").
		Find(&rows).Error; err != nil {
		return nil, translateError("find bills by key", err)
	}
	return billsToDomain(rows), nil
}

// FindPending returns the N and P bills of a pair, oldest first
func (r *GormRegisterEntryRepository) FindPending(ctx context.Context, supplierID, partyID int64) ([]ledger.RegisterEntry, error) {
	var rows []models.RegisterEntryModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND party_id = ? AND status <> ?", supplierID, partyID, string(ledger.BillStatusFull)).
		Order("register_date, id").
		Find(&rows).Error; err != nil {
		return nil, translateError("find pending bills", err)
	}
	return billsToDomain(rows), nil
}

// Create inserts a bill and assigns its ID
func (r *GormRegisterEntryRepository) Create(ctx context.Context, bill *ledger.RegisterEntry) error {
	var model models.RegisterEntryModel
	model.FromDomain(bill)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return translateError("create bill", err)
	}
	bill.ID = model.ID
	return nil
}

// Update writes the settlement columns and status of a bill
func (r *GormRegisterEntryRepository) Update(ctx context.Context, bill *ledger.RegisterEntry) error {
	result := r.db.WithContext(ctx).
		Model(&models.RegisterEntryModel{}).
		Where("id = ?", bill.ID).
		Updates(map[string]any{
			"partial_amount": models.Money(bill.PartialAmount),
			"gr_amount":      models.Money(bill.GRAmount),
			"deduction":      models.Money(bill.Deduction),
			"status":         string(bill.Status),
			"updated_at":     bill.UpdatedAt,
		})
	if result.Error != nil {
		return translateError("update bill", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("update bill", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete deletes a bill. Bills referenced by memo lines cannot be deleted.
func (r *GormRegisterEntryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.RegisterEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete bill", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("delete bill", gorm.ErrRecordNotFound)
	}
	return nil
}

func billsToDomain(rows []models.RegisterEntryModel) []ledger.RegisterEntry {
	out := make([]ledger.RegisterEntry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// applySelection narrows q to the suppliers, parties and date range of sel.
// prefix qualifies the column names when q joins several tables.
func applySelection(q *gorm.DB, sel ledger.Selection, prefix string) *gorm.DB {
	if !sel.SupplierAll {
		q = q.Where(prefix+"supplier_id IN ?", nonEmpty(sel.SupplierIDs))
	}
	if !sel.PartyAll {
		q = q.Where(prefix+"party_id IN ?", nonEmpty(sel.PartyIDs))
	}
	if !sel.Range.From.IsZero() {
		q = q.Where(prefix+"register_date >= ?", ledger.DateOnly(sel.Range.From))
	}
	if !sel.Range.To.IsZero() {
		q = q.Where(prefix+"register_date <= ?", ledger.DateOnly(sel.Range.To))
	}
	return q
}

// nonEmpty keeps IN () valid for an empty id list, which matches nothing
func nonEmpty(ids []int64) []int64 {
	if len(ids) == 0 {
		return []int64{0}
	}
	return ids
}

var _ ledger.RegisterEntryRepository = (*GormRegisterEntryRepository)(nil)
