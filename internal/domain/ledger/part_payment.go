package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/khata/backend/internal/domain/shared"
)

// PartPayment is an advance credit created by a Part memo
type PartPayment struct {
	shared.BaseEntity
	SupplierID int64
	PartyID    int64
	MemoID     int64
	Used       bool
	UseMemoID  *int64
}

// NewPartPayment creates an unused credit for a Part memo
func NewPartPayment(memo *MemoEntry) *PartPayment {
	return &PartPayment{
		BaseEntity: shared.NewBaseEntity(),
		SupplierID: memo.SupplierID,
		PartyID:    memo.PartyID,
		MemoID:     memo.ID,
	}
}

// CanConsume checks that the credit belongs to the pair and is still open
func (p *PartPayment) CanConsume(supplierID, partyID int64) error {
	if p.SupplierID != supplierID || p.PartyID != partyID {
		return NewDataError("Part payment %d belongs to another supplier/party pair", p.ID)
	}
	if p.Used || p.UseMemoID != nil {
		return NewPartPaymentAlreadyUsedError(p.ID)
	}
	return nil
}

// MarkUsed records the consuming memo
func (p *PartPayment) MarkUsed(memoID int64) {
	p.Used = true
	p.UseMemoID = &memoID
	p.UpdatedAt = time.Now()
}

// MarkUnused returns the credit to the pool
func (p *PartPayment) MarkUnused() {
	p.Used = false
	p.UseMemoID = nil
	p.UpdatedAt = time.Now()
}

// CanRelease checks that the credit may be deleted together with its memo
func (p *PartPayment) CanRelease() error {
	if p.Used {
		return NewPartPaymentAlreadyUsedError(p.ID)
	}
	return nil
}

// Credit is an unused part payment with one of its memo's PR lines
type Credit struct {
	PartPaymentID int64
	MemoID        int64
	MemoNumber    int64
	MemoDate      time.Time
	MemoAmount    int64
	LineAmount    int64
}

// ConsumeCredit is the single state transition of a credit from unused to
// used. The row is locked first, then flipped with a conditional update so
// two memos racing for the same credit cannot both win.
func ConsumeCredit(ctx context.Context, parts PartPaymentRepository, partID int64, memo *MemoEntry) error {
	part, err := parts.FindByIDForUpdate(ctx, partID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return NewDataError("Part payment %d does not exist", partID)
		}
		return err
	}
	if err := part.CanConsume(memo.SupplierID, memo.PartyID); err != nil {
		return err
	}
	ok, err := parts.MarkUsed(ctx, part.ID, memo.ID)
	if err != nil {
		return err
	}
	if !ok {
		return NewPartPaymentAlreadyUsedError(part.ID)
	}
	part.MarkUsed(memo.ID)
	return nil
}
