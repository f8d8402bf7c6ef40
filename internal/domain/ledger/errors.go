package ledger

import (
	"fmt"
	"time"

	"github.com/khata/backend/internal/domain/shared"
)

// Error codes raised by the ledger
const (
	CodeDuplicateBill          = "DUPLICATE_BILL"
	CodeDuplicateMemo          = "DUPLICATE_MEMO"
	CodeInvalidMemoType        = "INVALID_MEMO_TYPE"
	CodeBillNotFound           = "BILL_NOT_FOUND"
	CodeDataError              = "DATA_ERROR"
	CodePartPaymentAlreadyUsed = "PART_PAYMENT_ALREADY_USED"
	CodeInvalidLine            = "INVALID_LINE"
	CodeInvalidAmount          = "INVALID_AMOUNT"
)

// Sentinels for errors.Is comparisons
var (
	ErrDuplicateBill          = shared.NewDomainError(CodeDuplicateBill, "Bill already exists")
	ErrDuplicateMemo          = shared.NewDomainError(CodeDuplicateMemo, "Memo already exists")
	ErrInvalidMemoType        = shared.NewDomainError(CodeInvalidMemoType, "Invalid memo type")
	ErrBillNotFound           = shared.NewDomainError(CodeBillNotFound, "Bill not found")
	ErrDataError              = shared.NewDomainError(CodeDataError, "Inconsistent ledger data")
	ErrPartPaymentAlreadyUsed = shared.NewDomainError(CodePartPaymentAlreadyUsed, "Part payment already used")
)

// NewDuplicateBillError names the register date that already holds the bill
func NewDuplicateBillError(billNumber string, conflicting time.Time) error {
	return shared.NewDomainError(CodeDuplicateBill,
		fmt.Sprintf("Bill %s already registered on %s", billNumber, conflicting.Format(DateLayout)))
}

// NewDuplicateMemoError reports a memo number reused on the same date
func NewDuplicateMemoError(memoNumber int64, date time.Time) error {
	return shared.NewDomainError(CodeDuplicateMemo,
		fmt.Sprintf("Memo %d already registered on %s", memoNumber, date.Format(DateLayout)))
}

// NewInvalidMemoTypeError reports an unknown memo mode
func NewInvalidMemoTypeError(mode string) error {
	return shared.NewDomainError(CodeInvalidMemoType, fmt.Sprintf("Invalid memo type: %q", mode))
}

// NewBillNotFoundError reports a memo line pointing at a missing bill
func NewBillNotFoundError(billID int64) error {
	return shared.NewDomainError(CodeBillNotFound, fmt.Sprintf("Bill %d not found", billID))
}

// NewDataError reports inconsistent input or state
func NewDataError(format string, args ...any) error {
	return shared.NewDomainError(CodeDataError, fmt.Sprintf(format, args...))
}

// NewPartPaymentAlreadyUsedError reports a credit that was already consumed
func NewPartPaymentAlreadyUsedError(partID int64) error {
	return shared.NewDomainError(CodePartPaymentAlreadyUsed,
		fmt.Sprintf("Part payment %d has already been used", partID))
}
