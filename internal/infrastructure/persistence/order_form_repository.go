package persistence

import (
	"context"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderFormRepository implements ledger.OrderFormRepository using GORM
type GormOrderFormRepository struct {
	db *gorm.DB
}

// NewGormOrderFormRepository creates a new GormOrderFormRepository
func NewGormOrderFormRepository(db *gorm.DB) *GormOrderFormRepository {
	return &GormOrderFormRepository{db: db}
}

// FindByID finds an order form by its ID
func (r *GormOrderFormRepository) FindByID(ctx context.Context, id int64) (*ledger.OrderForm, error) {
	var model models.OrderFormModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find order form", err)
	}
	return model.ToDomain(), nil
}

// FindByNumber returns the order forms of a pair carrying number
func (r *GormOrderFormRepository) FindByNumber(ctx context.Context, supplierID, partyID, number int64) ([]ledger.OrderForm, error) {
	var rows []models.OrderFormModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND party_id = ? AND order_form_number = ?", supplierID, partyID, number).
		Order("register_date, id").
		Find(&rows).Error; err != nil {
		return nil, translateError("find order forms", err)
	}
	out := make([]ledger.OrderForm, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Create inserts an order form and assigns its ID
func (r *GormOrderFormRepository) Create(ctx context.Context, form *ledger.OrderForm) error {
	var model models.OrderFormModel
	model.FromDomain(form)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return translateError("create order form", err)
	}
	form.ID = model.ID
	return nil
}

// Update writes the delivery state of an order form
func (r *GormOrderFormRepository) Update(ctx context.Context, form *ledger.OrderForm) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderFormModel{}).
		Where("id = ?", form.ID).
		Updates(map[string]any{
			"status":     string(form.Status),
			"delivered":  form.Delivered,
			"updated_at": form.UpdatedAt,
		})
	if result.Error != nil {
		return translateError("update order form", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("update order form", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete deletes an order form
func (r *GormOrderFormRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderFormModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete order form", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("delete order form", gorm.ErrRecordNotFound)
	}
	return nil
}

var _ ledger.OrderFormRepository = (*GormOrderFormRepository)(nil)
