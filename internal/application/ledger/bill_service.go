package ledger

import (
	"context"
	"time"

	"github.com/khata/backend/internal/domain/audit"
	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/shared"
	"github.com/khata/backend/internal/infrastructure/logger"
	"github.com/khata/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// BillService handles bill registration and lookups
type BillService struct {
	bills   ledger.RegisterEntryRepository
	uow     ledger.UnitOfWork
	metrics *telemetry.LedgerMetrics
}

// NewBillService creates a new BillService
func NewBillService(bills ledger.RegisterEntryRepository, uow ledger.UnitOfWork, metrics *telemetry.LedgerMetrics) *BillService {
	if metrics == nil {
		metrics = telemetry.NoopLedgerMetrics()
	}
	return &BillService{bills: bills, uow: uow, metrics: metrics}
}

// Insert registers a bill after the duplicate/time-window check
func (s *BillService) Insert(ctx context.Context, req InsertBillRequest) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "insert",
		telemetry.AttrSupplierID, req.SupplierID,
		telemetry.AttrPartyID, req.PartyID,
	)
	defer span.End()

	date, err := ledger.ParseDate(req.RegisterDate)
	if err != nil {
		return nil, err
	}
	bill, err := ledger.NewRegisterEntry(req.SupplierID, req.PartyID, req.BillNumber, date, req.Amount)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context, repos ledger.Repositories) error {
		existing, err := repos.Bills.FindByKey(ctx, bill.SupplierID, bill.PartyID, bill.BillNumber)
		if err != nil {
			return err
		}
		if err := ledger.CheckDuplicate(bill, existing); err != nil {
			return err
		}
		if err := repos.Bills.Create(ctx, bill); err != nil {
			return err
		}
		return audit.Record(ctx, repos.Audit, audit.TableRegisterEntry, bill.ID, audit.ActionInsert, bill.AuditColumns())
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.BillInserted(ctx)
	telemetry.SetAttributes(span, telemetry.AttrBillID, bill.ID)
	logger.L(ctx).Info("Bill registered",
		zap.Int64("bill_id", bill.ID),
		zap.String("bill_number", bill.BillNumber),
		zap.Int64("amount", bill.Amount),
	)
	resp := ToBillResponse(bill)
	return &resp, nil
}

// GetByID returns a bill by id
func (s *BillService) GetByID(ctx context.Context, id int64) (*BillResponse, error) {
	bill, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBillResponse(bill)
	return &resp, nil
}

// Retrieve finds the one bill matching the key. Without a date, a recurring
// bill number is Ambiguous.
func (s *BillService) Retrieve(ctx context.Context, supplierID, partyID int64, billNumber string, date *time.Time) (*BillResponse, error) {
	bills, err := s.bills.FindByKey(ctx, supplierID, partyID, billNumber)
	if err != nil {
		return nil, err
	}
	if date != nil {
		day := ledger.DateOnly(*date)
		matched := bills[:0]
		for _, b := range bills {
			if b.RegisterDate.Equal(day) {
				matched = append(matched, b)
			}
		}
		bills = matched
	}
	switch len(bills) {
	case 0:
		return nil, shared.ErrNotFound
	case 1:
		resp := ToBillResponse(&bills[0])
		return &resp, nil
	}
	return nil, shared.ErrAmbiguous
}

// GetPending lists the bills of a pair that are not fully settled
func (s *BillService) GetPending(ctx context.Context, supplierID, partyID int64) ([]BillResponse, error) {
	bills, err := s.bills.FindPending(ctx, supplierID, partyID)
	if err != nil {
		return nil, err
	}
	return ToBillResponses(bills), nil
}

// Update overwrites the settlement columns of a bill. The result must still
// satisfy the conservation invariant.
func (s *BillService) Update(ctx context.Context, id int64, req UpdateBillRequest) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "update", telemetry.AttrBillID, id)
	defer span.End()

	var bill *ledger.RegisterEntry
	err := s.uow.Do(ctx, func(ctx context.Context, repos ledger.Repositories) error {
		var err error
		bill, err = repos.Bills.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		before := bill.AuditColumns()
		bill.PartialAmount = req.PartialAmount
		bill.GRAmount = req.GRAmount
		bill.Deduction = req.Deduction
		bill.Status = ledger.BillStatus(req.Status)
		bill.UpdatedAt = time.Now()
		if err := bill.Validate(); err != nil {
			return err
		}
		if err := repos.Bills.Update(ctx, bill); err != nil {
			return err
		}
		return audit.Record(ctx, repos.Audit, audit.TableRegisterEntry, bill.ID, audit.ActionUpdate,
			audit.Diff(before, bill.AuditColumns()))
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := ToBillResponse(bill)
	return &resp, nil
}

// Delete removes a bill. Bills still referenced by a memo line fail with
// ForeignKeyViolation.
func (s *BillService) Delete(ctx context.Context, id int64) error {
	err := s.uow.Do(ctx, func(ctx context.Context, repos ledger.Repositories) error {
		bill, err := repos.Bills.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Bills.Delete(ctx, id); err != nil {
			return err
		}
		return audit.Record(ctx, repos.Audit, audit.TableRegisterEntry, id, audit.ActionDelete, bill.AuditColumns())
	})
	if err != nil {
		return err
	}
	logger.L(ctx).Info("Bill deleted", zap.Int64("bill_id", id))
	return nil
}
