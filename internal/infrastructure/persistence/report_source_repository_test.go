package persistence

import (
	"context"
	"testing"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReportSource(t *testing.T) {
	f := newFixture(t)
	src := NewGormReportSource(f.db)
	ctx := context.Background()
	march := ledger.DateRange{From: date(2024, 3, 1), To: date(2024, 3, 31)}

	paid := f.bill(t, "101", date(2024, 3, 2), 1000)
	open := f.bill(t, "102", date(2024, 3, 9), 400)
	f.bill(t, "099", date(2024, 2, 20), 50)

	settled, err := f.repos.Bills.FindByID(ctx, paid.ID)
	require.NoError(t, err)
	_, err = settled.ApplyLine(ledger.LineTypeDeduction, 100)
	require.NoError(t, err)
	_, err = settled.ApplyLine(ledger.LineTypeFull, 0)
	require.NoError(t, err)
	require.NoError(t, f.repos.Bills.Update(ctx, settled))
	f.memo(t, 11, date(2024, 3, 15), ledger.MemoModeFull,
		ledger.MemoBill{BillID: ptr(paid.ID), Amount: 100, Type: ledger.LineTypeDeduction},
		ledger.MemoBill{BillID: ptr(paid.ID), Amount: 900, Type: ledger.LineTypeFull},
	)
	f.credit(t, 12, date(2024, 3, 20), 200)

	t.Run("khata bills join their memo lines", func(t *testing.T) {
		bills, err := src.KhataBills(ctx, f.supplier.ID, f.party.ID, march)
		require.NoError(t, err)
		require.Len(t, bills, 2)

		assert.Equal(t, "101", bills[0].BillNumber)
		assert.Equal(t, "F", bills[0].Status)
		require.Len(t, bills[0].Lines, 2)
		assert.Equal(t, int64(11), bills[0].Lines[0].MemoNumber)
		assert.Equal(t, int64(100), bills[0].Lines[0].LineAmount)
		assert.Equal(t, int64(900), bills[0].Lines[0].MemoAmount)
		assert.Equal(t, "D", bills[0].Lines[0].Type)

		assert.Equal(t, open.ID, bills[1].BillID)
		assert.Empty(t, bills[1].Lines)
	})

	t.Run("khata with no bills in range", func(t *testing.T) {
		bills, err := src.KhataBills(ctx, f.supplier.ID, f.party.ID, ledger.DateRange{From: date(2023, 1, 1), To: date(2023, 1, 31)})
		require.NoError(t, err)
		assert.Empty(t, bills)
	})

	t.Run("pending bills skip settled ones", func(t *testing.T) {
		bills, err := src.PendingBills(ctx, f.supplier.ID, f.party.ID, march)
		require.NoError(t, err)
		require.Len(t, bills, 1)
		assert.Equal(t, open.ID, bills[0].ID)
		assert.Equal(t, int64(400), bills[0].PendingAmount())
	})

	t.Run("register lines carry party name and pending", func(t *testing.T) {
		lines, err := src.RegisterLines(ctx, f.supplier.ID, f.party.ID, march)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "Gupta Stores", lines[0].PartyName)
		assert.Equal(t, int64(0), lines[0].Pending)
		assert.Equal(t, int64(400), lines[1].Pending)
		assert.Equal(t, "N", lines[1].Status)
	})

	t.Run("order lines are undelivered forms in range", func(t *testing.T) {
		open, err := ledger.NewOrderForm(f.supplier.ID, f.party.ID, 1, date(2024, 3, 5))
		require.NoError(t, err)
		require.NoError(t, f.repos.OrderForms.Create(ctx, open))
		done, err := ledger.NewOrderForm(f.supplier.ID, f.party.ID, 2, date(2024, 3, 6))
		require.NoError(t, err)
		require.NoError(t, done.MarkDelivered())
		require.NoError(t, f.repos.OrderForms.Create(ctx, done))

		lines, err := src.OrderLines(ctx, f.supplier.ID, f.party.ID, march)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, int64(1), lines[0].OrderNumber)
		assert.Equal(t, "Sharma Textiles", lines[0].SupplierName)
		assert.Equal(t, "12 Cloth Market", lines[0].SupplierAddress)
		assert.Equal(t, "98100", lines[0].SupplierPhone)
		assert.Equal(t, "Gupta Stores", lines[0].PartyName)
	})

	t.Run("unused credits", func(t *testing.T) {
		credits, err := src.UnusedCredits(ctx, f.supplier.ID, f.party.ID)
		require.NoError(t, err)
		require.Len(t, credits, 1)
		assert.Equal(t, int64(200), credits[0].LineAmount)
	})

	t.Run("bill totals per pair", func(t *testing.T) {
		totals, err := src.BillTotals(ctx, []int64{f.party.ID}, march)
		require.NoError(t, err)
		require.Len(t, totals, 1)
		assert.Equal(t, f.supplier.ID, totals[0].SupplierID)
		assert.Equal(t, int64(1400), totals[0].Amount)

		none, err := src.BillTotals(ctx, nil, march)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestGormEfficiencyRepository(t *testing.T) {
	f := newFixture(t)
	eff := NewGormEfficiencyRepository(f.db)
	ctx := context.Background()

	idle, err := partner.NewParty("Idle Party", "", "")
	require.NoError(t, err)
	require.NoError(t, NewGormPartyRepository(f.db).Save(ctx, idle))
	quiet, err := partner.NewSupplier("Quiet Supplier", "", "")
	require.NoError(t, err)
	require.NoError(t, NewGormSupplierRepository(f.db).Save(ctx, quiet))

	f.bill(t, "1", date(2024, 1, 10), 100)

	t.Run("filters parties of a supplier", func(t *testing.T) {
		got, err := eff.FilterParties(ctx, f.supplier.ID, []int64{idle.ID, f.party.ID})
		require.NoError(t, err)
		assert.Equal(t, []int64{f.party.ID}, got)
	})

	t.Run("filters suppliers of a party", func(t *testing.T) {
		got, err := eff.FilterSuppliers(ctx, f.party.ID, []int64{quiet.ID, f.supplier.ID})
		require.NoError(t, err)
		assert.Equal(t, []int64{f.supplier.ID}, got)
	})

	t.Run("order forms count as activity", func(t *testing.T) {
		form, err := ledger.NewOrderForm(quiet.ID, idle.ID, 9, date(2024, 5, 1))
		require.NoError(t, err)
		require.NoError(t, f.repos.OrderForms.Create(ctx, form))

		got, err := eff.FilterParties(ctx, quiet.ID, []int64{idle.ID, f.party.ID})
		require.NoError(t, err)
		assert.Equal(t, []int64{idle.ID}, got)
	})

	t.Run("smart selection is bounded by the range", func(t *testing.T) {
		parties, suppliers, err := eff.SmartSelection(ctx,
			[]int64{f.supplier.ID, quiet.ID}, []int64{f.party.ID, idle.ID},
			ledger.DateRange{From: date(2024, 1, 1), To: date(2024, 1, 31)})
		require.NoError(t, err)
		assert.Equal(t, []int64{f.party.ID}, parties)
		assert.Equal(t, []int64{f.supplier.ID}, suppliers)
	})
}
