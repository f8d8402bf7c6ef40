package persistence

import (
	"context"

	"github.com/khata/backend/internal/domain/audit"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// defaultAuditLimit caps searches that do not set a limit
const defaultAuditLimit = 100

// GormAuditRepository implements audit.Repository using GORM. Bound to a
// transaction, its rows commit or roll back with the audited write.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Create appends one entry
func (r *GormAuditRepository) Create(ctx context.Context, entry *audit.Entry) error {
	model := models.AuditLogModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError("record audit log", err)
	}
	entry.ID = model.ID
	return nil
}

// Find returns the entries matching filter, newest first
func (r *GormAuditRepository) Find(ctx context.Context, filter audit.Filter) ([]audit.Entry, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLogModel{})
	if filter.TableName != "" {
		q = q.Where("table_name = ?", filter.TableName)
	}
	if filter.RecordID != 0 {
		q = q.Where("record_id = ?", filter.RecordID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", string(filter.Action))
	}
	if filter.From != nil {
		q = q.Where(`"timestamp" >= ?`, *filter.From)
	}
	if filter.To != nil {
		q = q.Where(`"timestamp" <= ?`, *filter.To)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}

	var rows []models.AuditLogModel
	if err := q.Order(`"timestamp" DESC, id DESC`).
		Limit(limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, translateError("search audit log", err)
	}
	out := make([]audit.Entry, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

var _ audit.Repository = (*GormAuditRepository)(nil)
