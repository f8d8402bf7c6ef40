package models

import (
	"time"

	"github.com/khata/backend/internal/domain/audit"
)

// AuditLogModel is an append-only audit row. Changes is stored as JSON.
type AuditLogModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	Table     string         `gorm:"column:table_name;type:varchar(64);not null;index:idx_audit_record,priority:1"`
	RecordID  int64          `gorm:"not null;index:idx_audit_record,priority:2"`
	Action    string         `gorm:"type:varchar(10);not null"`
	Changes   map[string]any `gorm:"type:text;serializer:json"`
	Timestamp time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return audit.TableAuditLog
}

// ToDomain converts the row to an audit entry
func (m *AuditLogModel) ToDomain() audit.Entry {
	return audit.Entry{
		ID:        m.ID,
		TableName: m.Table,
		RecordID:  m.RecordID,
		Action:    audit.Action(m.Action),
		Changes:   m.Changes,
		Timestamp: m.Timestamp,
	}
}

// AuditLogModelFromDomain creates a row from an audit entry
func AuditLogModelFromDomain(e *audit.Entry) *AuditLogModel {
	return &AuditLogModel{
		ID:        e.ID,
		Table:     e.TableName,
		RecordID:  e.RecordID,
		Action:    string(e.Action),
		Changes:   e.Changes,
		Timestamp: e.Timestamp,
	}
}
