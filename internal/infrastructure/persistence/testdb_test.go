package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory sqlite database with the ledger schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	db       *gorm.DB
	supplier *partner.Supplier
	party    *partner.Party
	bank     *partner.Bank
	repos    ledger.Repositories
}

// newFixture seeds one supplier, one party and one bank
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	supplier, err := partner.NewSupplier("Sharma Textiles", "12 Cloth Market", "98100")
	require.NoError(t, err)
	require.NoError(t, NewGormSupplierRepository(db).Save(ctx, supplier))

	party, err := partner.NewParty("Gupta Stores", "Main Road", "")
	require.NoError(t, err)
	require.NoError(t, NewGormPartyRepository(db).Save(ctx, party))

	bank, err := partner.NewBank("State Bank of India", "Main Road")
	require.NoError(t, err)
	require.NoError(t, NewGormBankRepository(db).Save(ctx, bank))

	return &fixture{db: db, supplier: supplier, party: party, bank: bank, repos: NewLedgerRepositories(db)}
}

func (f *fixture) bill(t *testing.T, number string, on time.Time, amount int64) *ledger.RegisterEntry {
	t.Helper()
	bill, err := ledger.NewRegisterEntry(f.supplier.ID, f.party.ID, number, on, amount)
	require.NoError(t, err)
	require.NoError(t, f.repos.Bills.Create(context.Background(), bill))
	return bill
}

// memo writes a memo header with its lines as given, without touching bills
func (f *fixture) memo(t *testing.T, number int64, on time.Time, mode ledger.MemoMode, lines ...ledger.MemoBill) *ledger.MemoEntry {
	t.Helper()
	ctx := context.Background()
	memo := &ledger.MemoEntry{
		SupplierID:   f.supplier.ID,
		PartyID:      f.party.ID,
		MemoNumber:   number,
		RegisterDate: on,
		Mode:         mode,
		Lines:        lines,
	}
	memo.RecomputeTotals()
	require.NoError(t, f.repos.Memos.Create(ctx, memo))
	for i := range memo.Lines {
		memo.Lines[i].MemoID = memo.ID
		require.NoError(t, f.repos.Memos.CreateLine(ctx, &memo.Lines[i]))
	}
	return memo
}

// credit writes a Part memo with one PR line and its unused credit
func (f *fixture) credit(t *testing.T, number int64, on time.Time, amount int64) *ledger.PartPayment {
	t.Helper()
	memo := f.memo(t, number, on, ledger.MemoModePart, ledger.MemoBill{Amount: amount, Type: ledger.LineTypePartCredit})
	part := ledger.NewPartPayment(memo)
	require.NoError(t, f.repos.Parts.Create(context.Background(), part))
	return part
}

func (f *fixture) selection(r ledger.DateRange) ledger.Selection {
	return ledger.Selection{
		SupplierIDs: []int64{f.supplier.ID},
		PartyIDs:    []int64{f.party.ID},
		Range:       r,
	}
}

func ptr[T any](v T) *T { return &v }
