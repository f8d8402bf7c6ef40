package ledger

import (
	"time"

	"github.com/khata/backend/internal/domain/ledger"
)

// =============================================================================
// Bill DTOs
// =============================================================================

// InsertBillRequest represents a request to register a bill
type InsertBillRequest struct {
	SupplierID   int64  `json:"supplier_id" binding:"required,min=1"`
	PartyID      int64  `json:"party_id" binding:"required,min=1"`
	BillNumber   string `json:"bill_number" binding:"required,min=1,max=50"`
	RegisterDate string `json:"register_date" binding:"required"`
	Amount       int64  `json:"amount" binding:"required,min=1"`
}

// UpdateBillRequest overwrites the settlement columns of a bill
type UpdateBillRequest struct {
	PartialAmount int64  `json:"partial_amount" binding:"min=0"`
	GRAmount      int64  `json:"gr_amount" binding:"min=0"`
	Deduction     int64  `json:"deduction" binding:"min=0"`
	Status        string `json:"status" binding:"required,oneof=N P F"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID            int64     `json:"id"`
	SupplierID    int64     `json:"supplier_id"`
	PartyID       int64     `json:"party_id"`
	BillNumber    string    `json:"bill_number"`
	RegisterDate  string    `json:"register_date"`
	Amount        int64     `json:"amount"`
	PartialAmount int64     `json:"partial_amount"`
	GRAmount      int64     `json:"gr_amount"`
	Deduction     int64     `json:"deduction"`
	Pending       int64     `json:"pending"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToBillResponse converts a domain bill to a response
func ToBillResponse(b *ledger.RegisterEntry) BillResponse {
	return BillResponse{
		ID:            b.ID,
		SupplierID:    b.SupplierID,
		PartyID:       b.PartyID,
		BillNumber:    b.BillNumber,
		RegisterDate:  b.RegisterDate.Format(ledger.DateLayout),
		Amount:        b.Amount,
		PartialAmount: b.PartialAmount,
		GRAmount:      b.GRAmount,
		Deduction:     b.Deduction,
		Pending:       b.PendingAmount(),
		Status:        b.Status.String(),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToBillResponses converts a slice of bills
func ToBillResponses(bills []ledger.RegisterEntry) []BillResponse {
	out := make([]BillResponse, len(bills))
	for i := range bills {
		out[i] = ToBillResponse(&bills[i])
	}
	return out
}

// =============================================================================
// Memo DTOs
// =============================================================================

// MemoLineRequest is one line of a memo. BillID is omitted for PR lines.
// An F line may leave Amount at zero to settle whatever is outstanding.
type MemoLineRequest struct {
	BillID *int64 `json:"bill_id" binding:"omitempty,min=1"`
	Amount int64  `json:"amount" binding:"min=0"`
	Type   string `json:"type" binding:"required,oneof=F D G PR"`
}

// MemoPaymentRequest is one bank cheque of a memo
type MemoPaymentRequest struct {
	BankID       int64  `json:"bank_id" binding:"required,min=1"`
	ChequeNumber string `json:"cheque_number" binding:"max=50"`
	Amount       int64  `json:"amount" binding:"required,min=1"`
}

// InsertMemoRequest represents a request to record a memo.
// SelectedPart lists the Part memos whose credits a Full memo consumes.
// PartAmount adds a PR line to a Part memo that has none.
type InsertMemoRequest struct {
	SupplierID   int64                `json:"supplier_id" binding:"required,min=1"`
	PartyID      int64                `json:"party_id" binding:"required,min=1"`
	MemoNumber   int64                `json:"memo_number" binding:"required,min=1"`
	RegisterDate string               `json:"register_date" binding:"required"`
	Mode         string               `json:"mode" binding:"required"`
	Lines        []MemoLineRequest    `json:"lines" binding:"dive"`
	Payments     []MemoPaymentRequest `json:"payments" binding:"dive"`
	SelectedPart []int64              `json:"selected_part"`
	PartAmount   int64                `json:"part_amount" binding:"min=0"`
}

// MemoLineResponse is one line of a memo view
type MemoLineResponse struct {
	ID         int64  `json:"id"`
	BillID     *int64 `json:"bill_id"`
	BillNumber string `json:"bill_number"`
	Amount     int64  `json:"amount"`
	Type       string `json:"type"`
}

// MemoPaymentResponse is one cheque of a memo view
type MemoPaymentResponse struct {
	ID           int64  `json:"id"`
	BankID       int64  `json:"bank_id"`
	ChequeNumber string `json:"cheque_number"`
	Amount       int64  `json:"amount"`
}

// MemoResponse is the denormalized view of a memo
type MemoResponse struct {
	ID           int64                 `json:"id"`
	SupplierID   int64                 `json:"supplier_id"`
	PartyID      int64                 `json:"party_id"`
	MemoNumber   int64                 `json:"memo_number"`
	RegisterDate string                `json:"register_date"`
	Amount       int64                 `json:"amount"`
	GRAmount     int64                 `json:"gr_amount"`
	Deduction    int64                 `json:"deduction"`
	Mode         string                `json:"mode"`
	Lines        []MemoLineResponse    `json:"lines"`
	Payments     []MemoPaymentResponse `json:"payments"`
	SelectedPart []int64               `json:"selected_part,omitempty"`
}

// ToMemoResponse builds the view of a memo. The mode is derived from the
// lines and selected_part is only shown for Full memos.
func ToMemoResponse(m *ledger.MemoEntry) MemoResponse {
	resp := MemoResponse{
		ID:           m.ID,
		SupplierID:   m.SupplierID,
		PartyID:      m.PartyID,
		MemoNumber:   m.MemoNumber,
		RegisterDate: m.RegisterDate.Format(ledger.DateLayout),
		Amount:       m.Amount,
		GRAmount:     m.GRAmount,
		Deduction:    m.Deduction,
		Mode:         string(m.DerivedMode()),
		Lines:        make([]MemoLineResponse, 0, len(m.Lines)),
		Payments:     make([]MemoPaymentResponse, 0, len(m.Payments)),
	}
	for _, l := range m.Lines {
		number := l.BillNumber
		if l.BillID == nil {
			number = ledger.PRBillNumber
		}
		resp.Lines = append(resp.Lines, MemoLineResponse{
			ID:         l.ID,
			BillID:     l.BillID,
			BillNumber: number,
			Amount:     l.Amount,
			Type:       string(l.Type),
		})
	}
	for _, p := range m.Payments {
		resp.Payments = append(resp.Payments, MemoPaymentResponse{
			ID:           p.ID,
			BankID:       p.BankID,
			ChequeNumber: p.ChequeNumber,
			Amount:       p.Amount,
		})
	}
	if resp.Mode == string(ledger.MemoModeFull) && len(m.SelectedPart) > 0 {
		resp.SelectedPart = append([]int64(nil), m.SelectedPart...)
	}
	return resp
}

// MemoListItem is a memo header without its children
type MemoListItem struct {
	ID           int64  `json:"id"`
	MemoNumber   int64  `json:"memo_number"`
	RegisterDate string `json:"register_date"`
	Amount       int64  `json:"amount"`
	Mode         string `json:"mode"`
}

// TotalRequest selects the memo lines to sum.
// The All flags ignore the respective id list.
type TotalRequest struct {
	SupplierIDs []int64 `json:"supplier_ids"`
	PartyIDs    []int64 `json:"party_ids"`
	SupplierAll bool    `json:"supplier_all"`
	PartyAll    bool    `json:"party_all"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Type        string  `json:"type" binding:"required,oneof=F D G PR"`
}

// =============================================================================
// Part payment DTOs
// =============================================================================

// PartPaymentResponse represents a credit
type PartPaymentResponse struct {
	ID         int64  `json:"id"`
	SupplierID int64  `json:"supplier_id"`
	PartyID    int64  `json:"party_id"`
	MemoID     int64  `json:"memo_id"`
	Used       bool   `json:"used"`
	UseMemoID  *int64 `json:"use_memo_id"`
}

// ToPartPaymentResponse converts a credit to a response
func ToPartPaymentResponse(p *ledger.PartPayment) PartPaymentResponse {
	return PartPaymentResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		PartyID:    p.PartyID,
		MemoID:     p.MemoID,
		Used:       p.Used,
		UseMemoID:  p.UseMemoID,
	}
}

// CreditResponse is one PR line of an unused credit
type CreditResponse struct {
	PartPaymentID int64  `json:"part_payment_id"`
	MemoID        int64  `json:"memo_id"`
	MemoNumber    int64  `json:"memo_number"`
	MemoDate      string `json:"memo_date"`
	MemoAmount    int64  `json:"memo_amount"`
	LineAmount    int64  `json:"line_amount"`
}

// =============================================================================
// Order form DTOs
// =============================================================================

// InsertOrderFormRequest represents a request to record an order form
type InsertOrderFormRequest struct {
	SupplierID      int64  `json:"supplier_id" binding:"required,min=1"`
	PartyID         int64  `json:"party_id" binding:"required,min=1"`
	OrderFormNumber int64  `json:"order_form_number" binding:"required,min=1"`
	RegisterDate    string `json:"register_date" binding:"required"`
}

// OrderFormResponse represents an order form
type OrderFormResponse struct {
	ID              int64  `json:"id"`
	SupplierID      int64  `json:"supplier_id"`
	PartyID         int64  `json:"party_id"`
	OrderFormNumber int64  `json:"order_form_number"`
	RegisterDate    string `json:"register_date"`
	Status          string `json:"status"`
	Delivered       bool   `json:"delivered"`
}

// ToOrderFormResponse converts an order form to a response
func ToOrderFormResponse(o *ledger.OrderForm) OrderFormResponse {
	return OrderFormResponse{
		ID:              o.ID,
		SupplierID:      o.SupplierID,
		PartyID:         o.PartyID,
		OrderFormNumber: o.OrderFormNumber,
		RegisterDate:    o.RegisterDate.Format(ledger.DateLayout),
		Status:          string(o.Status),
		Delivered:       o.Delivered,
	}
}
