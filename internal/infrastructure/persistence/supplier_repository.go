package persistence

import (
	"context"
	"strings"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id int64) (*partner.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find supplier", err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a supplier by its exact name, ignoring surrounding blanks
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&model).Error; err != nil {
		return nil, translateError("find supplier by name", err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple suppliers by their IDs, ordered by name
func (r *GormSupplierRepository) FindByIDs(ctx context.Context, ids []int64) ([]partner.Supplier, error) {
	if len(ids) == 0 {
		return []partner.Supplier{}, nil
	}
	var rows []models.SupplierModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&rows).Error; err != nil {
		return nil, translateError("find suppliers", err)
	}
	return suppliersToDomain(rows), nil
}

// FindAll returns every supplier ordered by name
func (r *GormSupplierRepository) FindAll(ctx context.Context) ([]partner.Supplier, error) {
	var rows []models.SupplierModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, translateError("list suppliers", err)
	}
	return suppliersToDomain(rows), nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	var model models.SupplierModel
	model.FromDomain(supplier)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&model).Error; err != nil {
		return translateError("save supplier", err)
	}
	supplier.ID = model.ID
	return nil
}

// Delete deletes a supplier. Suppliers with bills cannot be deleted.
func (r *GormSupplierRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.SupplierModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete supplier", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("delete supplier", gorm.ErrRecordNotFound)
	}
	return nil
}

func suppliersToDomain(rows []models.SupplierModel) []partner.Supplier {
	out := make([]partner.Supplier, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormSupplierRepository implements SupplierRepository
var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
