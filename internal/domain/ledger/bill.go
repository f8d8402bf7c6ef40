package ledger

import (
	"strings"
	"time"

	"github.com/khata/backend/internal/domain/shared"
)

// DateLayout is the wire format of register dates
const DateLayout = "2006-01-02"

// BillStatus is the settlement state of a bill
type BillStatus string

const (
	BillStatusNone    BillStatus = "N"
	BillStatusPartial BillStatus = "P"
	BillStatusFull    BillStatus = "F"
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusNone, BillStatusPartial, BillStatusFull:
		return true
	}
	return false
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// RegisterEntry is a bill raised by a supplier against a party
type RegisterEntry struct {
	shared.BaseEntity
	SupplierID    int64
	PartyID       int64
	BillNumber    string
	RegisterDate  time.Time
	Amount        int64
	PartialAmount int64
	GRAmount      int64
	Deduction     int64
	Status        BillStatus
}

// NewRegisterEntry creates a fresh, unsettled bill
func NewRegisterEntry(supplierID, partyID int64, billNumber string, date time.Time, amount int64) (*RegisterEntry, error) {
	bill := &RegisterEntry{
		BaseEntity:   shared.NewBaseEntity(),
		SupplierID:   supplierID,
		PartyID:      partyID,
		BillNumber:   strings.TrimSpace(billNumber),
		RegisterDate: DateOnly(date),
		Amount:       amount,
		Status:       BillStatusNone,
	}
	if err := bill.Validate(); err != nil {
		return nil, err
	}
	return bill, nil
}

// Validate checks the bill fields and the conservation invariant
func (b *RegisterEntry) Validate() error {
	if b.SupplierID <= 0 || b.PartyID <= 0 {
		return shared.NewDomainError("INVALID_PAIR", "Bill must reference a supplier and a party")
	}
	if b.BillNumber == "" {
		return shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if b.RegisterDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Register date is required")
	}
	if b.Amount <= 0 {
		return shared.NewDomainError(CodeInvalidAmount, "Bill amount must be positive")
	}
	if b.PartialAmount < 0 || b.GRAmount < 0 || b.Deduction < 0 {
		return shared.NewDomainError(CodeInvalidAmount, "Settled amounts cannot be negative")
	}
	if !b.Status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Bill status must be N, P or F")
	}
	outstanding := b.Outstanding()
	if b.Status == BillStatusFull && outstanding != 0 {
		return NewDataError("Bill %s is marked F but %d is still outstanding", b.BillNumber, outstanding)
	}
	if b.Status != BillStatusFull && outstanding <= 0 {
		return NewDataError("Bill %s has nothing outstanding but is not marked F", b.BillNumber)
	}
	return nil
}

// Outstanding returns the amount still owed on the bill
func (b *RegisterEntry) Outstanding() int64 {
	return b.Amount - b.PartialAmount - b.GRAmount - b.Deduction
}

// PendingAmount is the outstanding amount, zero for settled bills
func (b *RegisterEntry) PendingAmount() int64 {
	if b.Status == BillStatusFull {
		return 0
	}
	return b.Outstanding()
}

// IsSettled reports whether the bill is fully settled
func (b *RegisterEntry) IsSettled() bool {
	return b.Status == BillStatusFull
}

// ApplyLine applies a settlement line to the bill.
// F settles whatever is still outstanding; D and G must not exceed it.
// The returned amount is the one actually recorded on the line.
func (b *RegisterEntry) ApplyLine(lineType LineType, amount int64) (int64, error) {
	outstanding := b.Outstanding()
	switch lineType {
	case LineTypeFull:
		if b.Status == BillStatusFull {
			return 0, NewDataError("Bill %s is already fully settled", b.BillNumber)
		}
		if amount == 0 {
			amount = outstanding
		}
		if amount != outstanding {
			return 0, NewDataError("Full settlement of bill %s must be %d, got %d", b.BillNumber, outstanding, amount)
		}
		b.PartialAmount += amount
	case LineTypeDeduction, LineTypeGoodsReturn:
		if amount <= 0 {
			return 0, shared.NewDomainError(CodeInvalidAmount, "Line amount must be positive")
		}
		if b.Status == BillStatusFull || amount > outstanding {
			return 0, NewDataError("Line amount %d exceeds the %d outstanding on bill %s", amount, outstanding, b.BillNumber)
		}
		if lineType == LineTypeDeduction {
			b.Deduction += amount
		} else {
			b.GRAmount += amount
		}
	default:
		return 0, shared.NewDomainError(CodeInvalidLine, "Only F, D and G lines apply to bills")
	}
	b.refreshStatus()
	b.UpdatedAt = time.Now()
	return amount, nil
}

// UndoLine reverses ApplyLine for the same type and amount
func (b *RegisterEntry) UndoLine(lineType LineType, amount int64) error {
	switch lineType {
	case LineTypeFull:
		if amount > b.PartialAmount {
			return NewDataError("Cannot undo %d of full settlement on bill %s", amount, b.BillNumber)
		}
		b.PartialAmount -= amount
	case LineTypeDeduction:
		if amount > b.Deduction {
			return NewDataError("Cannot undo %d of deduction on bill %s", amount, b.BillNumber)
		}
		b.Deduction -= amount
	case LineTypeGoodsReturn:
		if amount > b.GRAmount {
			return NewDataError("Cannot undo %d of goods return on bill %s", amount, b.BillNumber)
		}
		b.GRAmount -= amount
	default:
		return shared.NewDomainError(CodeInvalidLine, "Only F, D and G lines apply to bills")
	}
	b.refreshStatus()
	b.UpdatedAt = time.Now()
	return nil
}

func (b *RegisterEntry) refreshStatus() {
	switch {
	case b.Outstanding() == 0:
		b.Status = BillStatusFull
	case b.PartialAmount+b.GRAmount+b.Deduction > 0:
		b.Status = BillStatusPartial
	default:
		b.Status = BillStatusNone
	}
}

// DaysOutstanding counts whole days between the register date and now
func (b *RegisterEntry) DaysOutstanding(now time.Time) int {
	d := DateOnly(now).Sub(b.RegisterDate)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// DateOnly strips the clock part of t, keeping its calendar date in UTC
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD register date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Dates must use the YYYY-MM-DD format")
	}
	return t, nil
}
