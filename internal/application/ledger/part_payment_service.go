package ledger

import (
	"context"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/shared"
)

// PartPaymentService exposes the pool of advance credits
type PartPaymentService struct {
	parts ledger.PartPaymentRepository
}

// NewPartPaymentService creates a new PartPaymentService
func NewPartPaymentService(parts ledger.PartPaymentRepository) *PartPaymentService {
	return &PartPaymentService{parts: parts}
}

// GetUnused lists the open credits of a pair, one entry per PR line
func (s *PartPaymentService) GetUnused(ctx context.Context, supplierID, partyID int64) ([]CreditResponse, error) {
	credits, err := s.parts.FindUnused(ctx, supplierID, partyID)
	if err != nil {
		return nil, err
	}
	out := make([]CreditResponse, len(credits))
	for i, c := range credits {
		out[i] = CreditResponse{
			PartPaymentID: c.PartPaymentID,
			MemoID:        c.MemoID,
			MemoNumber:    c.MemoNumber,
			MemoDate:      c.MemoDate.Format(ledger.DateLayout),
			MemoAmount:    c.MemoAmount,
			LineAmount:    c.LineAmount,
		}
	}
	return out, nil
}

// GetByMemo returns the credit opened by a Part memo
func (s *PartPaymentService) GetByMemo(ctx context.Context, memoID int64) (*PartPaymentResponse, error) {
	parts, err := s.parts.FindByMemo(ctx, memoID)
	if err != nil {
		return nil, err
	}
	switch len(parts) {
	case 0:
		return nil, shared.ErrNotFound
	case 1:
		resp := ToPartPaymentResponse(&parts[0])
		return &resp, nil
	}
	return nil, shared.ErrAmbiguous
}

// BulkTotal sums the PR lines of every credit in the selection
func (s *PartPaymentService) BulkTotal(ctx context.Context, supplierIDs, partyIDs []int64, supplierAll, partyAll bool, from, to string) (int64, error) {
	sel, err := toSelection(supplierIDs, partyIDs, supplierAll, partyAll, from, to)
	if err != nil {
		return 0, err
	}
	return s.parts.BulkTotal(ctx, sel)
}
