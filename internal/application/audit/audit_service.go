package audit

import (
	"context"
	"time"

	"github.com/khata/backend/internal/domain/audit"
	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/shared"
)

// maxLimit bounds one page of audit entries
const maxLimit = 500

// SearchRequest filters the audit log. Dates are inclusive YYYY-MM-DD days.
type SearchRequest struct {
	TableName string `form:"table_name" json:"table_name"`
	RecordID  int64  `form:"record_id" json:"record_id" binding:"min=0"`
	Action    string `form:"action" json:"action"`
	From      string `form:"from" json:"from"`
	To        string `form:"to" json:"to"`
	Limit     int    `form:"limit" json:"limit" binding:"min=0"`
	Offset    int    `form:"offset" json:"offset" binding:"min=0"`
}

// AuditService reads the audit trail
type AuditService struct {
	repo audit.Repository
}

// NewAuditService creates a new AuditService
func NewAuditService(repo audit.Repository) *AuditService {
	return &AuditService{repo: repo}
}

// History returns the entries of one record, newest first
func (s *AuditService) History(ctx context.Context, table string, recordID int64, limit, offset int) ([]audit.Entry, error) {
	if table == "" || recordID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "History needs a table name and a record id")
	}
	return s.Search(ctx, SearchRequest{TableName: table, RecordID: recordID, Limit: limit, Offset: offset})
}

// Search returns the entries matching req, newest first
func (s *AuditService) Search(ctx context.Context, req SearchRequest) ([]audit.Entry, error) {
	filter := audit.Filter{
		TableName: req.TableName,
		RecordID:  req.RecordID,
		Limit:     min(req.Limit, maxLimit),
		Offset:    req.Offset,
	}
	if req.Action != "" {
		action, err := audit.ParseAction(req.Action)
		if err != nil {
			return nil, err
		}
		filter.Action = action
	}
	if req.From != "" {
		from, err := ledger.ParseDate(req.From)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := ledger.ParseDate(req.To)
		if err != nil {
			return nil, err
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, shared.NewDomainError("INVALID_RANGE", "The end date cannot be before the start date")
	}

	entries, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	return entries, nil
}
