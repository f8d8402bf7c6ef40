package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRegisterEntryRepository(t *testing.T) {
	f := newFixture(t)
	repo := f.repos.Bills
	ctx := context.Background()

	b1 := f.bill(t, "12345", date(2024, 1, 5), 500)
	b2 := f.bill(t, "12345", date(2024, 8, 5), 700)
	b3 := f.bill(t, "777", date(2024, 2, 1), 300)

	t.Run("round trips amounts and status", func(t *testing.T) {
		got, err := repo.FindByID(ctx, b1.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(500), got.Amount)
		assert.Equal(t, ledger.BillStatusNone, got.Status)
		assert.True(t, got.RegisterDate.Equal(date(2024, 1, 5)))
	})

	t.Run("finds every bill of a key", func(t *testing.T) {
		bills, err := repo.FindByKey(ctx, f.supplier.ID, f.party.ID, " 12345 ")
		require.NoError(t, err)
		require.Len(t, bills, 2)
		assert.Equal(t, b1.ID, bills[0].ID)
		assert.Equal(t, b2.ID, bills[1].ID)
	})

	t.Run("update persists settlement columns", func(t *testing.T) {
		locked, err := repo.FindByIDForUpdate(ctx, b1.ID)
		require.NoError(t, err)
		_, err = locked.ApplyLine(ledger.LineTypeGoodsReturn, 100)
		require.NoError(t, err)
		_, err = locked.ApplyLine(ledger.LineTypeDeduction, 50)
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, locked))

		got, err := repo.FindByID(ctx, b1.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), got.GRAmount)
		assert.Equal(t, int64(50), got.Deduction)
		assert.Equal(t, ledger.BillStatusPartial, got.Status)
		assert.Equal(t, int64(350), got.Outstanding())
	})

	t.Run("pending excludes settled bills", func(t *testing.T) {
		settled, err := repo.FindByID(ctx, b3.ID)
		require.NoError(t, err)
		_, err = settled.ApplyLine(ledger.LineTypeFull, 0)
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, settled))

		pending, err := repo.FindPending(ctx, f.supplier.ID, f.party.ID)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		for _, b := range pending {
			assert.NotEqual(t, b3.ID, b.ID)
		}
	})

	t.Run("update and delete of missing bill", func(t *testing.T) {
		ghost := &ledger.RegisterEntry{BaseEntity: shared.BaseEntity{ID: 9999}, Status: ledger.BillStatusNone}
		assert.ErrorIs(t, repo.Update(ctx, ghost), shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, 9999), shared.ErrNotFound)
	})

	t.Run("bill referenced by a memo line cannot be deleted", func(t *testing.T) {
		f.memo(t, 1, date(2024, 8, 10), ledger.MemoModeFull,
			ledger.MemoBill{BillID: ptr(b2.ID), Amount: 700, Type: ledger.LineTypeFull})
		assert.ErrorIs(t, repo.Delete(ctx, b2.ID), shared.ErrForeignKeyViolation)
	})
}

func TestGormMemoEntryRepository(t *testing.T) {
	f := newFixture(t)
	repo := f.repos.Memos
	ctx := context.Background()

	bill := f.bill(t, "B-9", date(2024, 3, 1), 1000)
	memo := f.memo(t, 42, date(2024, 3, 20), ledger.MemoModeFull,
		ledger.MemoBill{BillID: ptr(bill.ID), Amount: 100, Type: ledger.LineTypeGoodsReturn},
		ledger.MemoBill{BillID: ptr(bill.ID), Amount: 900, Type: ledger.LineTypeFull},
	)
	require.NoError(t, repo.CreatePayment(ctx, &ledger.MemoPayment{MemoID: memo.ID, BankID: f.bank.ID, ChequeNumber: "000123", Amount: 900}))
	part := f.credit(t, 7, date(2024, 3, 2), 250)
	ok, err := f.repos.Parts.MarkUsed(ctx, part.ID, memo.ID)
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("loads lines payments and consumed credits", func(t *testing.T) {
		got, err := repo.FindByID(ctx, memo.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.MemoNumber)
		assert.Equal(t, int64(900), got.Amount)
		assert.Equal(t, int64(100), got.GRAmount)
		require.Len(t, got.Lines, 2)
		assert.Equal(t, "B-9", got.Lines[0].BillNumber)
		assert.Equal(t, ledger.LineTypeGoodsReturn, got.Lines[0].Type)
		require.Len(t, got.Payments, 1)
		assert.Equal(t, "000123", got.Payments[0].ChequeNumber)
		assert.Equal(t, []int64{part.MemoID}, got.SelectedPart)
	})

	t.Run("PR lines carry bill number -1", func(t *testing.T) {
		got, err := repo.FindByID(ctx, part.MemoID)
		require.NoError(t, err)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, ledger.PRBillNumber, got.Lines[0].BillNumber)
		assert.Nil(t, got.Lines[0].BillID)
		assert.Equal(t, ledger.MemoModePart, got.DerivedMode())
	})

	t.Run("finds by number and pair", func(t *testing.T) {
		byNumber, err := repo.FindByNumber(ctx, f.supplier.ID, f.party.ID, 42)
		require.NoError(t, err)
		require.Len(t, byNumber, 1)
		assert.Len(t, byNumber[0].Lines, 2)

		all, err := repo.FindByPair(ctx, f.supplier.ID, f.party.ID)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, memo.ID, all[0].ID)
		assert.Empty(t, all[0].Lines)
	})

	t.Run("sums lines of one type in the selection", func(t *testing.T) {
		sel := f.selection(ledger.DateRange{From: date(2024, 3, 1), To: date(2024, 3, 31)})
		total, err := repo.SumLines(ctx, sel, ledger.LineTypeFull)
		require.NoError(t, err)
		assert.Equal(t, int64(900), total)

		sel.SupplierAll, sel.PartyAll = true, true
		total, err = repo.SumLines(ctx, sel, ledger.LineTypePartCredit)
		require.NoError(t, err)
		assert.Equal(t, int64(250), total)

		sel.Range = ledger.DateRange{From: date(2025, 1, 1), To: date(2025, 1, 31)}
		total, err = repo.SumLines(ctx, sel, ledger.LineTypeFull)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("deletes children then the header", func(t *testing.T) {
		require.NoError(t, f.repos.Parts.Release(ctx, memo.ID))
		got, err := repo.FindByID(ctx, memo.ID)
		require.NoError(t, err)
		for _, line := range got.Lines {
			require.NoError(t, repo.DeleteLine(ctx, line.ID))
		}
		require.NoError(t, repo.DeletePayments(ctx, memo.ID))
		require.NoError(t, repo.Delete(ctx, memo.ID))

		_, err = repo.FindByID(ctx, memo.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, memo.ID), shared.ErrNotFound)
	})
}

func TestGormPartPaymentRepository(t *testing.T) {
	f := newFixture(t)
	repo := f.repos.Parts
	ctx := context.Background()

	first := f.credit(t, 1, date(2024, 4, 1), 1250)
	second := f.credit(t, 2, date(2024, 4, 15), 300)
	full := f.memo(t, 3, date(2024, 5, 1), ledger.MemoModeFull)

	t.Run("lists unused credits with their PR lines", func(t *testing.T) {
		credits, err := repo.FindUnused(ctx, f.supplier.ID, f.party.ID)
		require.NoError(t, err)
		require.Len(t, credits, 2)
		assert.Equal(t, first.ID, credits[0].PartPaymentID)
		assert.Equal(t, int64(1), credits[0].MemoNumber)
		assert.Equal(t, int64(1250), credits[0].LineAmount)
		assert.Equal(t, int64(1250), credits[0].MemoAmount)
		assert.True(t, credits[0].MemoDate.Equal(date(2024, 4, 1)))
	})

	t.Run("finds credits by creating memo", func(t *testing.T) {
		parts, err := repo.FindByMemo(ctx, first.MemoID)
		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.Equal(t, first.ID, parts[0].ID)
		assert.False(t, parts[0].Used)
	})

	t.Run("marks used exactly once", func(t *testing.T) {
		ok, err := repo.MarkUsed(ctx, first.ID, full.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.MarkUsed(ctx, first.ID, full.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := repo.FindByIDForUpdate(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, got.Used)
		require.NotNil(t, got.UseMemoID)
		assert.Equal(t, full.ID, *got.UseMemoID)

		consumed, err := repo.FindByUseMemo(ctx, full.ID)
		require.NoError(t, err)
		assert.Len(t, consumed, 1)
	})

	t.Run("consume through the domain rejects a second use", func(t *testing.T) {
		err := ledger.ConsumeCredit(ctx, repo, first.ID, full)
		assert.ErrorIs(t, err, ledger.ErrPartPaymentAlreadyUsed)

		err = ledger.ConsumeCredit(ctx, repo, 9999, full)
		assert.ErrorIs(t, err, ledger.ErrDataError)
	})

	t.Run("bulk total counts used and unused credits", func(t *testing.T) {
		sel := f.selection(ledger.DateRange{From: date(2024, 4, 1), To: date(2024, 4, 30)})
		total, err := repo.BulkTotal(ctx, sel)
		require.NoError(t, err)
		assert.Equal(t, int64(1550), total)

		sel.SupplierAll, sel.PartyAll = true, true
		total, err = repo.BulkTotal(ctx, sel)
		require.NoError(t, err)
		assert.Equal(t, int64(1550), total)

		sel.Range.From = date(2024, 4, 10)
		total, err = repo.BulkTotal(ctx, sel)
		require.NoError(t, err)
		assert.Equal(t, int64(300), total)
		sel.Range.From = date(2024, 4, 1)

		sel = ledger.Selection{Range: sel.Range}
		total, err = repo.BulkTotal(ctx, sel)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("used credits cannot be deleted", func(t *testing.T) {
		err := repo.Delete(ctx, first.ID)
		assert.ErrorIs(t, err, ledger.ErrPartPaymentAlreadyUsed)
	})

	t.Run("release returns credits to the pool", func(t *testing.T) {
		require.NoError(t, repo.Release(ctx, full.ID))
		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, got.Used)
		assert.Nil(t, got.UseMemoID)

		credits, err := repo.FindUnused(ctx, f.supplier.ID, f.party.ID)
		require.NoError(t, err)
		assert.Len(t, credits, 2)
	})

	t.Run("unused credits can be deleted", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, second.ID))
		_, err := repo.FindByID(ctx, second.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderFormRepository(t *testing.T) {
	f := newFixture(t)
	repo := f.repos.OrderForms
	ctx := context.Background()

	form, err := ledger.NewOrderForm(f.supplier.ID, f.party.ID, 55, date(2024, 6, 1))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, form))

	found, err := repo.FindByNumber(ctx, f.supplier.ID, f.party.ID, 55)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ledger.OrderFormPending, found[0].Status)

	require.NoError(t, form.MarkDelivered())
	require.NoError(t, repo.Update(ctx, form))
	got, err := repo.FindByID(ctx, form.ID)
	require.NoError(t, err)
	assert.True(t, got.Delivered)
	assert.Equal(t, ledger.OrderFormDelivered, got.Status)

	require.NoError(t, repo.Delete(ctx, form.ID))
	assert.ErrorIs(t, repo.Delete(ctx, form.ID), shared.ErrNotFound)
}

func TestGormUnitOfWork(t *testing.T) {
	f := newFixture(t)
	uow := NewGormUnitOfWork(&Database{DB: f.db})
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := uow.Do(ctx, func(ctx context.Context, repos ledger.Repositories) error {
			bill, err := ledger.NewRegisterEntry(f.supplier.ID, f.party.ID, "C-1", date(2024, 1, 1), 100)
			if err != nil {
				return err
			}
			return repos.Bills.Create(ctx, bill)
		})
		require.NoError(t, err)

		bills, err := f.repos.Bills.FindByKey(ctx, f.supplier.ID, f.party.ID, "C-1")
		require.NoError(t, err)
		assert.Len(t, bills, 1)
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := uow.Do(ctx, func(ctx context.Context, repos ledger.Repositories) error {
			bill, err := ledger.NewRegisterEntry(f.supplier.ID, f.party.ID, "R-1", date(2024, 1, 1), 100)
			if err != nil {
				return err
			}
			if err := repos.Bills.Create(ctx, bill); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		bills, err := f.repos.Bills.FindByKey(ctx, f.supplier.ID, f.party.ID, "R-1")
		require.NoError(t, err)
		assert.Empty(t, bills)
	})
}
