package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/khata/backend/internal/domain/shared"
)

// PRBillNumber is the bill number shown for PR lines, which reference no bill
const PRBillNumber = "-1"

// MemoMode tells whether a memo settles bills or records a credit
type MemoMode string

const (
	MemoModeFull MemoMode = "Full"
	MemoModePart MemoMode = "Part"
)

// ParseMemoMode parses a memo mode, failing with InvalidMemoType
func ParseMemoMode(s string) (MemoMode, error) {
	switch MemoMode(strings.TrimSpace(s)) {
	case MemoModeFull:
		return MemoModeFull, nil
	case MemoModePart:
		return MemoModePart, nil
	}
	return "", NewInvalidMemoTypeError(s)
}

// IsValid checks if the mode is a valid MemoMode
func (m MemoMode) IsValid() bool {
	return m == MemoModeFull || m == MemoModePart
}

// LineType is the kind of a memo line
type LineType string

const (
	LineTypeFull        LineType = "F"
	LineTypeDeduction   LineType = "D"
	LineTypeGoodsReturn LineType = "G"
	LineTypePartCredit  LineType = "PR"
)

// IsValid checks if the line type is known
func (t LineType) IsValid() bool {
	switch t {
	case LineTypeFull, LineTypeDeduction, LineTypeGoodsReturn, LineTypePartCredit:
		return true
	}
	return false
}

// AppliesToBill reports whether lines of this type mutate a bill
func (t LineType) AppliesToBill() bool {
	return t == LineTypeFull || t == LineTypeDeduction || t == LineTypeGoodsReturn
}

// CountsTowardAmount reports whether the line adds to the memo amount
func (t LineType) CountsTowardAmount() bool {
	return t != LineTypeDeduction && t != LineTypeGoodsReturn
}

// applyOrder puts D and G ahead of F so a full line settles what is left
func (t LineType) applyOrder() int {
	switch t {
	case LineTypeDeduction, LineTypeGoodsReturn:
		return 0
	case LineTypeFull:
		return 1
	}
	return 2
}

// MemoBill is one line of a memo
type MemoBill struct {
	ID         int64
	MemoID     int64
	BillID     *int64
	BillNumber string
	Amount     int64
	Type       LineType
}

// MemoPayment is a bank cheque attached to a memo
type MemoPayment struct {
	ID           int64
	MemoID       int64
	BankID       int64
	ChequeNumber string
	Amount       int64
}

// MemoEntry records a payment event between a supplier and a party
type MemoEntry struct {
	shared.BaseEntity
	SupplierID   int64
	PartyID      int64
	MemoNumber   int64
	RegisterDate time.Time
	Amount       int64
	GRAmount     int64
	Deduction    int64
	Mode         MemoMode
	Lines        []MemoBill
	Payments     []MemoPayment
	SelectedPart []int64
}

// NewMemoEntry validates a memo and computes its totals.
// A Part memo without PR lines gets one PR line carrying partAmount.
func NewMemoEntry(
	supplierID, partyID, memoNumber int64,
	date time.Time,
	mode MemoMode,
	lines []MemoBill,
	payments []MemoPayment,
	selectedPart []int64,
	partAmount int64,
) (*MemoEntry, error) {
	if !mode.IsValid() {
		return nil, NewInvalidMemoTypeError(string(mode))
	}
	if supplierID <= 0 || partyID <= 0 {
		return nil, shared.NewDomainError("INVALID_PAIR", "Memo must reference a supplier and a party")
	}
	if memoNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_MEMO_NUMBER", "Memo number must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Register date is required")
	}

	memo := &MemoEntry{
		BaseEntity:   shared.NewBaseEntity(),
		SupplierID:   supplierID,
		PartyID:      partyID,
		MemoNumber:   memoNumber,
		RegisterDate: DateOnly(date),
		Mode:         mode,
		Lines:        append([]MemoBill(nil), lines...),
		Payments:     append([]MemoPayment(nil), payments...),
	}
	if mode == MemoModePart && !memo.hasLine(LineTypePartCredit) && partAmount > 0 {
		memo.Lines = append(memo.Lines, MemoBill{Amount: partAmount, Type: LineTypePartCredit})
	}
	if mode == MemoModeFull {
		memo.SelectedPart = dedupe(selectedPart)
	}
	if err := memo.validateLines(); err != nil {
		return nil, err
	}
	if mode == MemoModePart && len(selectedPart) > 0 {
		return nil, NewDataError("A Part memo cannot consume other part payments")
	}
	for _, p := range memo.Payments {
		if p.Amount <= 0 {
			return nil, shared.NewDomainError(CodeInvalidAmount, "Payment amount must be positive")
		}
		if p.BankID <= 0 {
			return nil, shared.NewDomainError("INVALID_BANK", "Payment must reference a bank")
		}
	}
	memo.computeTotals()
	return memo, nil
}

func (m *MemoEntry) validateLines() error {
	hasPR := false
	for i, line := range m.Lines {
		if !line.Type.IsValid() {
			return shared.NewDomainError(CodeInvalidLine, "Line type must be F, D, G or PR")
		}
		if line.Type == LineTypePartCredit {
			hasPR = true
			if line.BillID != nil {
				return NewDataError("PR line %d must not reference a bill", i+1)
			}
			if line.Amount <= 0 {
				return shared.NewDomainError(CodeInvalidAmount, "PR line amount must be positive")
			}
			continue
		}
		if line.BillID == nil || *line.BillID <= 0 {
			return NewDataError("%s line %d must reference a bill", line.Type, i+1)
		}
		if line.Amount < 0 || (line.Type != LineTypeFull && line.Amount == 0) {
			return shared.NewDomainError(CodeInvalidAmount, "Line amount must be positive")
		}
	}
	switch {
	case m.Mode == MemoModePart && !hasPR:
		return NewDataError("A Part memo needs a PR line with a positive amount")
	case m.Mode == MemoModeFull && hasPR:
		return NewDataError("A Full memo cannot carry PR lines")
	}
	return nil
}

func (m *MemoEntry) hasLine(t LineType) bool {
	for _, line := range m.Lines {
		if line.Type == t {
			return true
		}
	}
	return false
}

func (m *MemoEntry) computeTotals() {
	m.Amount, m.GRAmount, m.Deduction = 0, 0, 0
	for _, line := range m.Lines {
		switch line.Type {
		case LineTypeDeduction:
			m.Deduction += line.Amount
		case LineTypeGoodsReturn:
			m.GRAmount += line.Amount
		default:
			m.Amount += line.Amount
		}
	}
}

// RecomputeTotals refreshes the amounts after line amounts were resolved
func (m *MemoEntry) RecomputeTotals() {
	m.computeTotals()
}

// DerivedMode is Part when the memo carries any PR line
func (m *MemoEntry) DerivedMode() MemoMode {
	if m.hasLine(LineTypePartCredit) {
		return MemoModePart
	}
	return MemoModeFull
}

// ApplyOrder returns the indexes of Lines in the order they hit the bills
func (m *MemoEntry) ApplyOrder() []int {
	idx := make([]int, len(m.Lines))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return m.Lines[idx[a]].Type.applyOrder() < m.Lines[idx[b]].Type.applyOrder()
	})
	return idx
}

// PRTotal sums the PR lines
func (m *MemoEntry) PRTotal() int64 {
	var total int64
	for _, line := range m.Lines {
		if line.Type == LineTypePartCredit {
			total += line.Amount
		}
	}
	return total
}

// PaymentTotal sums the bank payments
func (m *MemoEntry) PaymentTotal() int64 {
	var total int64
	for _, p := range m.Payments {
		total += p.Amount
	}
	return total
}

// SameDay reports whether the memo shares memo number and date with other
func (m *MemoEntry) SameDay(other *MemoEntry) bool {
	return m.MemoNumber == other.MemoNumber &&
		m.SupplierID == other.SupplierID &&
		m.PartyID == other.PartyID &&
		DateOnly(m.RegisterDate).Equal(DateOnly(other.RegisterDate))
}

func dedupe(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
