package ledger

import (
	"context"
	"time"

	"github.com/khata/backend/internal/domain/audit"
)

// DateRange is an inclusive register date window
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(r.From)) && !d.After(DateOnly(r.To))
}

// Selection narrows bulk queries to a set of suppliers and parties.
// The All flags skip the IN filter for the respective side.
type Selection struct {
	SupplierIDs []int64
	PartyIDs    []int64
	SupplierAll bool
	PartyAll    bool
	Range       DateRange
}

// RegisterEntryRepository persists bills
type RegisterEntryRepository interface {
	// FindByID finds a bill by its ID
	FindByID(ctx context.Context, id int64) (*RegisterEntry, error)

	// FindByIDForUpdate finds a bill and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id int64) (*RegisterEntry, error)

	// FindByKey returns every bill sharing (supplier, party, bill_number)
	FindByKey(ctx context.Context, supplierID, partyID int64, billNumber string) ([]RegisterEntry, error)

	// FindPending returns the bills of a pair that are not fully settled
	FindPending(ctx context.Context, supplierID, partyID int64) ([]RegisterEntry, error)

	Create(ctx context.Context, bill *RegisterEntry) error
	Update(ctx context.Context, bill *RegisterEntry) error
	Delete(ctx context.Context, id int64) error
}

// MemoEntryRepository persists memos with their lines and payments
type MemoEntryRepository interface {
	// FindByID loads a memo with its lines, payments and consumed credits
	FindByID(ctx context.Context, id int64) (*MemoEntry, error)

	// FindByNumber returns the memos of a pair carrying memoNumber
	FindByNumber(ctx context.Context, supplierID, partyID, memoNumber int64) ([]MemoEntry, error)

	// FindByPair lists the memos of a pair, newest first, without children
	FindByPair(ctx context.Context, supplierID, partyID int64) ([]MemoEntry, error)

	Create(ctx context.Context, memo *MemoEntry) error
	CreateLine(ctx context.Context, line *MemoBill) error
	CreatePayment(ctx context.Context, payment *MemoPayment) error
	DeleteLine(ctx context.Context, id int64) error
	DeletePayments(ctx context.Context, memoID int64) error
	Delete(ctx context.Context, id int64) error

	// SumLines totals the line amounts of one type for memos in the selection
	SumLines(ctx context.Context, sel Selection, lineType LineType) (int64, error)
}

// PartPaymentRepository persists advance credits
type PartPaymentRepository interface {
	FindByID(ctx context.Context, id int64) (*PartPayment, error)

	// FindByIDForUpdate finds a credit and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id int64) (*PartPayment, error)

	// FindByMemo returns the credits created by a Part memo
	FindByMemo(ctx context.Context, memoID int64) ([]PartPayment, error)

	// FindByUseMemo returns the credits consumed by a Full memo
	FindByUseMemo(ctx context.Context, memoID int64) ([]PartPayment, error)

	// FindUnused returns the open credits of a pair with every PR line of their memo
	FindUnused(ctx context.Context, supplierID, partyID int64) ([]Credit, error)

	Create(ctx context.Context, part *PartPayment) error

	// MarkUsed flips an unused credit to used. It reports false when no
	// unused row matched.
	MarkUsed(ctx context.Context, id, memoID int64) (bool, error)

	// Release returns the credits consumed by memoID to the pool
	Release(ctx context.Context, memoID int64) error

	Delete(ctx context.Context, id int64) error

	// BulkTotal sums the PR lines behind the credits in the selection
	BulkTotal(ctx context.Context, sel Selection) (int64, error)
}

// OrderFormRepository persists order forms
type OrderFormRepository interface {
	FindByID(ctx context.Context, id int64) (*OrderForm, error)
	FindByNumber(ctx context.Context, supplierID, partyID, number int64) ([]OrderForm, error)
	Create(ctx context.Context, form *OrderForm) error
	Update(ctx context.Context, form *OrderForm) error
	Delete(ctx context.Context, id int64) error
}

// Repositories groups the ledger repositories bound to one transaction
type Repositories struct {
	Bills      RegisterEntryRepository
	Memos      MemoEntryRepository
	Parts      PartPaymentRepository
	OrderForms OrderFormRepository
	Audit      audit.Repository
}

// UnitOfWork runs fn inside one transaction. Any error rolls back every
// write made through the repositories handed to fn.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
