package ledger

import (
	"context"
	"testing"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/infrastructure/config"
	"github.com/khata/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *persistence.Database
	bills    *BillService
	settle   *SettlementService
	parts    *PartPaymentService
	forms    *OrderFormService
	supplier int64
	party    int64
	bank     int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	supplier, err := partner.NewSupplier("Sharma Textiles", "12 Cloth Market", "98100")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormSupplierRepository(db.DB).Save(ctx, supplier))
	party, err := partner.NewParty("Gupta Stores", "Main Road", "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormPartyRepository(db.DB).Save(ctx, party))
	bank, err := partner.NewBank("State Bank of India", "Main Road")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormBankRepository(db.DB).Save(ctx, bank))

	repos := persistence.NewLedgerRepositories(db.DB)
	uow := persistence.NewGormUnitOfWork(db)
	return &testEnv{
		db:       db,
		bills:    NewBillService(repos.Bills, uow, nil),
		settle:   NewSettlementService(repos.Memos, repos.Parts, uow, nil),
		parts:    NewPartPaymentService(repos.Parts),
		forms:    NewOrderFormService(repos.OrderForms),
		supplier: supplier.ID,
		party:    party.ID,
		bank:     bank.ID,
	}
}

func (e *testEnv) bill(t *testing.T, number, date string, amount int64) *BillResponse {
	t.Helper()
	bill, err := e.bills.Insert(context.Background(), InsertBillRequest{
		SupplierID:   e.supplier,
		PartyID:      e.party,
		BillNumber:   number,
		RegisterDate: date,
		Amount:       amount,
	})
	require.NoError(t, err)
	return bill
}

func (e *testEnv) partMemo(t *testing.T, number int64, date string, amount int64) *MemoResponse {
	t.Helper()
	memo, err := e.settle.InsertMemo(context.Background(), InsertMemoRequest{
		SupplierID:   e.supplier,
		PartyID:      e.party,
		MemoNumber:   number,
		RegisterDate: date,
		Mode:         "Part",
		PartAmount:   amount,
	})
	require.NoError(t, err)
	return memo
}

func ptr[T any](v T) *T { return &v }
