// Package audit records every write made to the ledger tables.
package audit

import (
	"context"
	"strings"
	"time"

	"github.com/khata/backend/internal/domain/shared"
)

// Action is the kind of write an entry records
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// IsValid reports whether a is a known action
func (a Action) IsValid() bool {
	switch a {
	case ActionInsert, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// ParseAction parses a case-insensitive action name
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToUpper(strings.TrimSpace(s)))
	if !a.IsValid() {
		return "", shared.NewDomainError("INVALID_ACTION", "Unknown audit action: "+s)
	}
	return a, nil
}

// Audited table names
const (
	TableAuditLog      = "audit_log"
	TableRegisterEntry = "register_entry"
	TableMemoEntry     = "memo_entry"
	TablePartPayments  = "part_payments"
)

// Entry is one audited write. Changes holds the full row for INSERT and
// DELETE, and {"old", "new"} pairs of the changed columns for UPDATE.
type Entry struct {
	ID        int64          `json:"id"`
	TableName string         `json:"table_name"`
	RecordID  int64          `json:"record_id"`
	Action    Action         `json:"action"`
	Changes   map[string]any `json:"changes,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewEntry creates an entry. Writes to the audit table itself are refused.
func NewEntry(table string, recordID int64, action Action, changes map[string]any) (*Entry, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, shared.NewDomainError("INVALID_TABLE", "Audit table name cannot be empty")
	}
	if strings.EqualFold(table, TableAuditLog) {
		return nil, shared.NewDomainError("INVALID_TABLE", "The audit log is not audited")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown audit action: "+string(action))
	}
	return &Entry{
		TableName: table,
		RecordID:  recordID,
		Action:    action,
		Changes:   changes,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Diff returns {"old", "new"} pairs for the keys whose values differ
func Diff(before, after map[string]any) map[string]any {
	out := make(map[string]any)
	for k, next := range after {
		prev, ok := before[k]
		if ok && prev == next {
			continue
		}
		out[k] = map[string]any{"old": prev, "new": next}
	}
	return out
}

// Filter narrows a search over the audit log. Zero fields match everything.
type Filter struct {
	TableName string
	RecordID  int64
	Action    Action
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// Repository persists audit entries
type Repository interface {
	Create(ctx context.Context, entry *Entry) error

	// Find returns the matching entries, newest first
	Find(ctx context.Context, filter Filter) ([]Entry, error)
}

// Record creates and stores one entry
func Record(ctx context.Context, repo Repository, table string, recordID int64, action Action, changes map[string]any) error {
	entry, err := NewEntry(table, recordID, action, changes)
	if err != nil {
		return err
	}
	return repo.Create(ctx, entry)
}
