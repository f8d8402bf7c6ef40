package persistence

import (
	"context"
	"strings"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBankRepository implements partner.BankRepository using GORM
type GormBankRepository struct {
	db *gorm.DB
}

// NewGormBankRepository creates a new GormBankRepository
func NewGormBankRepository(db *gorm.DB) *GormBankRepository {
	return &GormBankRepository{db: db}
}

// FindByID finds a bank by its ID
func (r *GormBankRepository) FindByID(ctx context.Context, id int64) (*partner.Bank, error) {
	var model models.BankModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find bank", err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a bank by its exact name, ignoring surrounding blanks
func (r *GormBankRepository) FindByName(ctx context.Context, name string) (*partner.Bank, error) {
	var model models.BankModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&model).Error; err != nil {
		return nil, translateError("find bank by name", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every bank ordered by name
func (r *GormBankRepository) FindAll(ctx context.Context) ([]partner.Bank, error) {
	var rows []models.BankModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, translateError("list banks", err)
	}
	out := make([]partner.Bank, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a bank
func (r *GormBankRepository) Save(ctx context.Context, bank *partner.Bank) error {
	var model models.BankModel
	model.FromDomain(bank)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return translateError("save bank", err)
	}
	bank.ID = model.ID
	return nil
}

var _ partner.BankRepository = (*GormBankRepository)(nil)
