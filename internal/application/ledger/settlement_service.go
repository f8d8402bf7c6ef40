package ledger

import (
	"context"
	"errors"

	"github.com/khata/backend/internal/domain/audit"
	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/shared"
	"github.com/khata/backend/internal/infrastructure/logger"
	"github.com/khata/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SettlementService records and undoes memos. Every memo write runs in one
// transaction so bills, lines, payments and credits move together.
type SettlementService struct {
	memos   ledger.MemoEntryRepository
	parts   ledger.PartPaymentRepository
	uow     ledger.UnitOfWork
	metrics *telemetry.LedgerMetrics
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	memos ledger.MemoEntryRepository,
	parts ledger.PartPaymentRepository,
	uow ledger.UnitOfWork,
	metrics *telemetry.LedgerMetrics,
) *SettlementService {
	if metrics == nil {
		metrics = telemetry.NoopLedgerMetrics()
	}
	return &SettlementService{memos: memos, parts: parts, uow: uow, metrics: metrics}
}

// InsertMemo records a memo. The memo row is written first, then each line
// with its bill mutation, then the payments, then the credit bookkeeping: a
// Full memo consumes the credits of its selected Part memos and a Part memo
// opens one credit.
func (s *SettlementService) InsertMemo(ctx context.Context, req InsertMemoRequest) (*MemoResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "insert_memo",
		telemetry.AttrSupplierID, req.SupplierID,
		telemetry.AttrPartyID, req.PartyID,
		telemetry.AttrMemoMode, req.Mode,
	)
	defer span.End()

	memo, err := newMemo(req)
	if err != nil {
		s.fail(ctx, span, "insert_memo", err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrLineCount, len(memo.Lines))

	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: "insert_memo",
		telemetry.ProfilingLabelMode:      string(memo.Mode),
	}, func(c context.Context) {
		err = s.uow.Do(c, func(ctx context.Context, repos ledger.Repositories) error {
			return insertMemo(ctx, repos, memo)
		})
	})
	if err != nil {
		s.fail(ctx, span, "insert_memo", err)
		return nil, err
	}

	s.metrics.MemoInserted(ctx, string(memo.Mode), len(memo.SelectedPart))
	telemetry.SetAttributes(span, telemetry.AttrMemoID, memo.ID)
	logger.L(ctx).Info("Memo inserted",
		zap.Int64("memo_id", memo.ID),
		zap.String("mode", string(memo.Mode)),
		zap.Int("line_count", len(memo.Lines)),
		zap.Int("consumed_parts", len(memo.SelectedPart)),
	)
	resp := ToMemoResponse(memo)
	return &resp, nil
}

func newMemo(req InsertMemoRequest) (*ledger.MemoEntry, error) {
	mode, err := ledger.ParseMemoMode(req.Mode)
	if err != nil {
		return nil, err
	}
	date, err := ledger.ParseDate(req.RegisterDate)
	if err != nil {
		return nil, err
	}
	lines := make([]ledger.MemoBill, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, ledger.MemoBill{BillID: l.BillID, Amount: l.Amount, Type: ledger.LineType(l.Type)})
	}
	payments := make([]ledger.MemoPayment, 0, len(req.Payments))
	for _, p := range req.Payments {
		payments = append(payments, ledger.MemoPayment{BankID: p.BankID, ChequeNumber: p.ChequeNumber, Amount: p.Amount})
	}
	return ledger.NewMemoEntry(req.SupplierID, req.PartyID, req.MemoNumber, date, mode,
		lines, payments, req.SelectedPart, req.PartAmount)
}

func insertMemo(ctx context.Context, repos ledger.Repositories, memo *ledger.MemoEntry) error {
	same, err := repos.Memos.FindByNumber(ctx, memo.SupplierID, memo.PartyID, memo.MemoNumber)
	if err != nil {
		return err
	}
	for i := range same {
		if memo.SameDay(&same[i]) {
			return ledger.NewDuplicateMemoError(memo.MemoNumber, memo.RegisterDate)
		}
	}

	// Lines hit the bills in memory first so an F line can resolve the
	// outstanding amount before the memo total is written.
	bills, err := applyLines(ctx, repos.Bills, memo)
	if err != nil {
		return err
	}
	memo.RecomputeTotals()

	if err := repos.Memos.Create(ctx, memo); err != nil {
		return err
	}
	for _, idx := range memo.ApplyOrder() {
		line := &memo.Lines[idx]
		line.MemoID = memo.ID
		if err := repos.Memos.CreateLine(ctx, line); err != nil {
			return err
		}
	}
	if err := bills.save(ctx, repos); err != nil {
		return err
	}
	for i := range memo.Payments {
		p := &memo.Payments[i]
		p.MemoID = memo.ID
		if err := repos.Memos.CreatePayment(ctx, p); err != nil {
			if errors.Is(err, shared.ErrForeignKeyViolation) {
				return ledger.NewDataError("Bank %d does not exist", p.BankID)
			}
			return err
		}
	}

	switch memo.Mode {
	case ledger.MemoModeFull:
		for _, partMemoID := range memo.SelectedPart {
			part, err := creditOfMemo(ctx, repos.Parts, partMemoID)
			if err != nil {
				return err
			}
			if err := ledger.ConsumeCredit(ctx, repos.Parts, part.ID, memo); err != nil {
				return err
			}
			if err := audit.Record(ctx, repos.Audit, audit.TablePartPayments, part.ID, audit.ActionUpdate,
				map[string]any{"used": map[string]any{"old": false, "new": true}, "use_memo_id": memo.ID}); err != nil {
				return err
			}
		}
	case ledger.MemoModePart:
		part := ledger.NewPartPayment(memo)
		if err := repos.Parts.Create(ctx, part); err != nil {
			return err
		}
		if err := audit.Record(ctx, repos.Audit, audit.TablePartPayments, part.ID, audit.ActionInsert,
			map[string]any{"memo_id": memo.ID, "supplier_id": memo.SupplierID, "party_id": memo.PartyID}); err != nil {
			return err
		}
	default:
		return ledger.NewInvalidMemoTypeError(string(memo.Mode))
	}
	return audit.Record(ctx, repos.Audit, audit.TableMemoEntry, memo.ID, audit.ActionInsert, memo.AuditColumns())
}

// touchedBills holds the locked bills a memo mutates, in first-touch order,
// with their columns as loaded
type touchedBills struct {
	byID   map[int64]*ledger.RegisterEntry
	before map[int64]map[string]any
	order  []int64
}

func newTouchedBills() *touchedBills {
	return &touchedBills{
		byID:   make(map[int64]*ledger.RegisterEntry),
		before: make(map[int64]map[string]any),
	}
}

// get locks and loads a bill on first use
func (t *touchedBills) get(ctx context.Context, repo ledger.RegisterEntryRepository, id int64) (*ledger.RegisterEntry, error) {
	if bill, ok := t.byID[id]; ok {
		return bill, nil
	}
	bill, err := repo.FindByIDForUpdate(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ledger.NewBillNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	t.byID[id] = bill
	t.before[id] = bill.AuditColumns()
	t.order = append(t.order, id)
	return bill, nil
}

// save writes every touched bill and audits its changed columns
func (t *touchedBills) save(ctx context.Context, repos ledger.Repositories) error {
	for _, id := range t.order {
		bill := t.byID[id]
		if err := repos.Bills.Update(ctx, bill); err != nil {
			return err
		}
		changes := audit.Diff(t.before[id], bill.AuditColumns())
		if err := audit.Record(ctx, repos.Audit, audit.TableRegisterEntry, id, audit.ActionUpdate, changes); err != nil {
			return err
		}
	}
	return nil
}

// applyLines locks every referenced bill and applies the F, D and G lines to it
func applyLines(ctx context.Context, repo ledger.RegisterEntryRepository, memo *ledger.MemoEntry) (*touchedBills, error) {
	bills := newTouchedBills()
	for _, idx := range memo.ApplyOrder() {
		line := &memo.Lines[idx]
		if !line.Type.AppliesToBill() {
			continue
		}
		bill, err := bills.get(ctx, repo, *line.BillID)
		if err != nil {
			return nil, err
		}
		if bill.SupplierID != memo.SupplierID || bill.PartyID != memo.PartyID {
			return nil, ledger.NewDataError("Bill %s belongs to another supplier/party pair", bill.BillNumber)
		}
		amount, err := bill.ApplyLine(line.Type, line.Amount)
		if err != nil {
			return nil, err
		}
		line.Amount = amount
		line.BillNumber = bill.BillNumber
	}
	return bills, nil
}

// creditOfMemo returns the single credit opened by a Part memo
func creditOfMemo(ctx context.Context, parts ledger.PartPaymentRepository, memoID int64) (*ledger.PartPayment, error) {
	found, err := parts.FindByMemo(ctx, memoID)
	if err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, ledger.NewDataError("Memo %d has no part payment", memoID)
	case 1:
		return &found[0], nil
	}
	return nil, ledger.NewDataError("Memo %d has %d part payments", memoID, len(found))
}

// DeleteMemo undoes a memo. It refuses up front when a credit opened by the
// memo was already consumed, so nothing is undone partially.
func (s *SettlementService) DeleteMemo(ctx context.Context, memoID int64) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "delete_memo", telemetry.AttrMemoID, memoID)
	defer span.End()

	err := s.uow.Do(ctx, func(ctx context.Context, repos ledger.Repositories) error {
		return deleteMemo(ctx, repos, memoID)
	})
	if err != nil {
		s.fail(ctx, span, "delete_memo", err)
		return err
	}
	s.metrics.MemoDeleted(ctx)
	logger.L(ctx).Info("Memo deleted", zap.Int64("memo_id", memoID))
	return nil
}

func deleteMemo(ctx context.Context, repos ledger.Repositories, memoID int64) error {
	memo, err := repos.Memos.FindByID(ctx, memoID)
	if err != nil {
		return err
	}

	var opened []ledger.PartPayment
	if memo.PRTotal() > 0 {
		if opened, err = repos.Parts.FindByMemo(ctx, memo.ID); err != nil {
			return err
		}
		for i := range opened {
			if err := opened[i].CanRelease(); err != nil {
				return err
			}
		}
	}

	bills := newTouchedBills()
	order := memo.ApplyOrder()
	for i := len(order) - 1; i >= 0; i-- {
		line := memo.Lines[order[i]]
		if line.Type.AppliesToBill() {
			bill, err := bills.get(ctx, repos.Bills, *line.BillID)
			if err != nil {
				return err
			}
			if err := bill.UndoLine(line.Type, line.Amount); err != nil {
				return err
			}
		}
		if err := repos.Memos.DeleteLine(ctx, line.ID); err != nil {
			return err
		}
	}
	if err := bills.save(ctx, repos); err != nil {
		return err
	}
	for i := range opened {
		if err := repos.Parts.Delete(ctx, opened[i].ID); err != nil {
			return err
		}
		if err := audit.Record(ctx, repos.Audit, audit.TablePartPayments, opened[i].ID, audit.ActionDelete,
			map[string]any{"memo_id": memo.ID}); err != nil {
			return err
		}
	}
	if err := repos.Memos.DeletePayments(ctx, memo.ID); err != nil {
		return err
	}
	consumed, err := repos.Parts.FindByUseMemo(ctx, memo.ID)
	if err != nil {
		return err
	}
	if err := repos.Parts.Release(ctx, memo.ID); err != nil {
		return err
	}
	for i := range consumed {
		if err := audit.Record(ctx, repos.Audit, audit.TablePartPayments, consumed[i].ID, audit.ActionUpdate,
			map[string]any{"used": map[string]any{"old": true, "new": false}, "use_memo_id": nil}); err != nil {
			return err
		}
	}
	if err := repos.Memos.Delete(ctx, memo.ID); err != nil {
		return err
	}
	return audit.Record(ctx, repos.Audit, audit.TableMemoEntry, memo.ID, audit.ActionDelete, memo.AuditColumns())
}

// GetEntry returns the denormalized view of a memo
func (s *SettlementService) GetEntry(ctx context.Context, memoID int64) (*MemoResponse, error) {
	memo, err := s.memos.FindByID(ctx, memoID)
	if err != nil {
		return nil, err
	}
	resp := ToMemoResponse(memo)
	return &resp, nil
}

// GetByNumber returns the one memo of a pair carrying memoNumber
func (s *SettlementService) GetByNumber(ctx context.Context, supplierID, partyID, memoNumber int64) (*MemoResponse, error) {
	memos, err := s.memos.FindByNumber(ctx, supplierID, partyID, memoNumber)
	if err != nil {
		return nil, err
	}
	switch len(memos) {
	case 0:
		return nil, shared.ErrNotFound
	case 1:
		resp := ToMemoResponse(&memos[0])
		return &resp, nil
	}
	return nil, shared.ErrAmbiguous
}

// List returns the memos of a pair, newest first
func (s *SettlementService) List(ctx context.Context, supplierID, partyID int64) ([]MemoListItem, error) {
	memos, err := s.memos.FindByPair(ctx, supplierID, partyID)
	if err != nil {
		return nil, err
	}
	items := make([]MemoListItem, len(memos))
	for i, m := range memos {
		items[i] = MemoListItem{
			ID:           m.ID,
			MemoNumber:   m.MemoNumber,
			RegisterDate: m.RegisterDate.Format(ledger.DateLayout),
			Amount:       m.Amount,
			Mode:         string(m.Mode),
		}
	}
	return items, nil
}

// Total sums memo lines of one type for the selection. PR credit lives in
// the part payment pool, so PR goes through its bulk total.
func (s *SettlementService) Total(ctx context.Context, req TotalRequest) (int64, error) {
	sel, err := toSelection(req.SupplierIDs, req.PartyIDs, req.SupplierAll, req.PartyAll, req.From, req.To)
	if err != nil {
		return 0, err
	}
	lineType := ledger.LineType(req.Type)
	if !lineType.IsValid() {
		return 0, shared.NewDomainError(ledger.CodeInvalidLine, "Line type must be F, D, G or PR")
	}
	if lineType == ledger.LineTypePartCredit {
		return s.parts.BulkTotal(ctx, sel)
	}
	return s.memos.SumLines(ctx, sel, lineType)
}

func (s *SettlementService) fail(ctx context.Context, span trace.Span, op string, err error) {
	telemetry.RecordError(span, err)
	s.metrics.SettlementFailed(ctx, op, errorCode(err))
	logger.L(ctx).Warn("Settlement rolled back", zap.String("operation", op), zap.Error(err))
}
