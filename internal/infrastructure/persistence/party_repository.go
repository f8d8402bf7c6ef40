package persistence

import (
	"context"
	"strings"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartyRepository implements partner.PartyRepository using GORM
type GormPartyRepository struct {
	db *gorm.DB
}

// NewGormPartyRepository creates a new GormPartyRepository
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

// FindByID finds a party by its ID
func (r *GormPartyRepository) FindByID(ctx context.Context, id int64) (*partner.Party, error) {
	var model models.PartyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find party", err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a party by its exact name, ignoring surrounding blanks
func (r *GormPartyRepository) FindByName(ctx context.Context, name string) (*partner.Party, error) {
	var model models.PartyModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&model).Error; err != nil {
		return nil, translateError("find party by name", err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple parties by their IDs, ordered by name
func (r *GormPartyRepository) FindByIDs(ctx context.Context, ids []int64) ([]partner.Party, error) {
	if len(ids) == 0 {
		return []partner.Party{}, nil
	}
	var rows []models.PartyModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&rows).Error; err != nil {
		return nil, translateError("find parties", err)
	}
	return partiesToDomain(rows), nil
}

// FindAll returns every party ordered by name
func (r *GormPartyRepository) FindAll(ctx context.Context) ([]partner.Party, error) {
	var rows []models.PartyModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, translateError("list parties", err)
	}
	return partiesToDomain(rows), nil
}

// Save creates or updates a party
func (r *GormPartyRepository) Save(ctx context.Context, party *partner.Party) error {
	var model models.PartyModel
	model.FromDomain(party)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&model).Error; err != nil {
		return translateError("save party", err)
	}
	party.ID = model.ID
	return nil
}

// Delete deletes a party. Parties with bills cannot be deleted.
func (r *GormPartyRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.PartyModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete party", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("delete party", gorm.ErrRecordNotFound)
	}
	return nil
}

func partiesToDomain(rows []models.PartyModel) []partner.Party {
	out := make([]partner.Party, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormPartyRepository implements PartyRepository
var _ partner.PartyRepository = (*GormPartyRepository)(nil)
