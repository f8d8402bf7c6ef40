package models

import (
	"time"

	"github.com/khata/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BaseModel provides the serial id and timestamps of every table
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// Money converts a whole-rupee amount to a numeric column value
func Money(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Rupees floors a numeric column value to whole rupees
func Rupees(d decimal.Decimal) int64 {
	return d.Floor().IntPart()
}
