package report

import (
	"context"
	"time"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/partner"
)

// KhataBill is a bill with the memo lines that settled it
type KhataBill struct {
	BillID     int64
	BillNumber string
	BillDate   time.Time
	Amount     int64
	Status     string
	Lines      []KhataMemoLine
}

// KhataMemoLine is one F, D or G line against a bill
type KhataMemoLine struct {
	MemoNumber int64
	MemoDate   time.Time
	LineAmount int64
	MemoAmount int64
	Type       string
}

// RegisterLine is one bill of the Supplier Register
type RegisterLine struct {
	BillDate   time.Time
	PartyName  string
	BillNumber string
	Amount     int64
	Pending    int64
	Status     string
}

// OrderLine is one undelivered order form
type OrderLine struct {
	OrderNumber     int64
	OrderDate       time.Time
	SupplierName    string
	SupplierAddress string
	SupplierPhone   string
	PartyName       string
	Status          string
}

// PairTotal is an amount aggregated for one supplier/party pair
type PairTotal struct {
	SupplierID int64
	PartyID    int64
	Amount     int64
}

// Source reads the ledger for reports. Every method is scoped to one
// supplier/party pair and, where it takes one, a register date range.
type Source interface {
	KhataBills(ctx context.Context, supplierID, partyID int64, r ledger.DateRange) ([]KhataBill, error)
	PendingBills(ctx context.Context, supplierID, partyID int64, r ledger.DateRange) ([]ledger.RegisterEntry, error)
	RegisterLines(ctx context.Context, supplierID, partyID int64, r ledger.DateRange) ([]RegisterLine, error)
	OrderLines(ctx context.Context, supplierID, partyID int64, r ledger.DateRange) ([]OrderLine, error)
	UnusedCredits(ctx context.Context, supplierID, partyID int64) ([]ledger.Credit, error)

	// BillTotals sums bill amounts per pair for the given parties in range
	BillTotals(ctx context.Context, partyIDs []int64, r ledger.DateRange) ([]PairTotal, error)
}

// Efficiency prunes pairs with nothing to show before rows are queried
type Efficiency interface {
	// FilterParties keeps the candidates the supplier has any bill or order form with
	FilterParties(ctx context.Context, supplierID int64, candidates []int64) ([]int64, error)

	// FilterSuppliers keeps the candidates the party has any bill or order form with
	FilterSuppliers(ctx context.Context, partyID int64, candidates []int64) ([]int64, error)

	// SmartSelection keeps the ids that have a bill or order form in range
	SmartSelection(ctx context.Context, supplierIDs, partyIDs []int64, r ledger.DateRange) (parties, suppliers []int64, err error)
}

// NameResolver turns entity ids into display names
type NameResolver interface {
	ReportName(ctx context.Context, role partner.Role, id int64) (string, error)
}
