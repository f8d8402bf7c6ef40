package models

import (
	"time"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// RegisterEntryModel is a bill row
type RegisterEntryModel struct {
	BaseModel
	SupplierID    int64           `gorm:"not null;index:idx_register_pair,priority:1"`
	PartyID       int64           `gorm:"not null;index:idx_register_pair,priority:2"`
	BillNumber    string          `gorm:"type:varchar(50);not null;index:idx_register_pair,priority:3"`
	RegisterDate  time.Time       `gorm:"type:date;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PartialAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GRAmount      decimal.Decimal `gorm:"column:gr_amount;type:numeric(14,2);not null;default:0"`
	Deduction     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status        string          `gorm:"type:varchar(1);not null;default:'N'"`

	Supplier *SupplierModel `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	Party    *PartyModel    `gorm:"foreignKey:PartyID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (RegisterEntryModel) TableName() string {
	return "register_entry"
}

// ToDomain converts the row to a bill
func (m *RegisterEntryModel) ToDomain() *ledger.RegisterEntry {
	return &ledger.RegisterEntry{
		BaseEntity:    m.BaseModel.ToDomain(),
		SupplierID:    m.SupplierID,
		PartyID:       m.PartyID,
		BillNumber:    m.BillNumber,
		RegisterDate:  ledger.DateOnly(m.RegisterDate),
		Amount:        Rupees(m.Amount),
		PartialAmount: Rupees(m.PartialAmount),
		GRAmount:      Rupees(m.GRAmount),
		Deduction:     Rupees(m.Deduction),
		Status:        ledger.BillStatus(m.Status),
	}
}

// FromDomain populates the row from a bill
func (m *RegisterEntryModel) FromDomain(b *ledger.RegisterEntry) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.SupplierID = b.SupplierID
	m.PartyID = b.PartyID
	m.BillNumber = b.BillNumber
	m.RegisterDate = ledger.DateOnly(b.RegisterDate)
	m.Amount = Money(b.Amount)
	m.PartialAmount = Money(b.PartialAmount)
	m.GRAmount = Money(b.GRAmount)
	m.Deduction = Money(b.Deduction)
	m.Status = string(b.Status)
}

// MemoEntryModel is a memo row
type MemoEntryModel struct {
	BaseModel
	SupplierID   int64           `gorm:"not null;index:idx_memo_pair,priority:1"`
	PartyID      int64           `gorm:"not null;index:idx_memo_pair,priority:2"`
	MemoNumber   int64           `gorm:"not null;index:idx_memo_pair,priority:3"`
	RegisterDate time.Time       `gorm:"type:date;not null;index"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GRAmount     decimal.Decimal `gorm:"column:gr_amount;type:numeric(14,2);not null;default:0"`
	Deduction    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Mode         string          `gorm:"type:varchar(4);not null"`

	Supplier *SupplierModel     `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	Party    *PartyModel        `gorm:"foreignKey:PartyID;constraint:OnDelete:RESTRICT"`
	Lines    []MemoBillModel    `gorm:"foreignKey:MemoID;constraint:OnDelete:CASCADE"`
	Payments []MemoPaymentModel `gorm:"foreignKey:MemoID;constraint:OnDelete:CASCADE"`
	Consumed []PartPaymentModel `gorm:"foreignKey:UseMemoID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (MemoEntryModel) TableName() string {
	return "memo_entry"
}

// ToDomain converts the row and any preloaded children to a memo
func (m *MemoEntryModel) ToDomain() *ledger.MemoEntry {
	memo := &ledger.MemoEntry{
		BaseEntity:   m.BaseModel.ToDomain(),
		SupplierID:   m.SupplierID,
		PartyID:      m.PartyID,
		MemoNumber:   m.MemoNumber,
		RegisterDate: ledger.DateOnly(m.RegisterDate),
		Amount:       Rupees(m.Amount),
		GRAmount:     Rupees(m.GRAmount),
		Deduction:    Rupees(m.Deduction),
		Mode:         ledger.MemoMode(m.Mode),
	}
	for i := range m.Lines {
		memo.Lines = append(memo.Lines, m.Lines[i].ToDomain())
	}
	for i := range m.Payments {
		memo.Payments = append(memo.Payments, m.Payments[i].ToDomain())
	}
	for i := range m.Consumed {
		memo.SelectedPart = append(memo.SelectedPart, m.Consumed[i].MemoID)
	}
	return memo
}

// FromDomain populates the row from a memo. Children are written separately.
func (m *MemoEntryModel) FromDomain(e *ledger.MemoEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.SupplierID = e.SupplierID
	m.PartyID = e.PartyID
	m.MemoNumber = e.MemoNumber
	m.RegisterDate = ledger.DateOnly(e.RegisterDate)
	m.Amount = Money(e.Amount)
	m.GRAmount = Money(e.GRAmount)
	m.Deduction = Money(e.Deduction)
	m.Mode = string(e.Mode)
}

// MemoBillModel is a memo line. BillID is null for PR lines.
type MemoBillModel struct {
	ID     int64           `gorm:"primaryKey;autoIncrement"`
	MemoID int64           `gorm:"not null;index"`
	BillID *int64          `gorm:"index"`
	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Type   string          `gorm:"type:varchar(2);not null"`

	Bill *RegisterEntryModel `gorm:"foreignKey:BillID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (MemoBillModel) TableName() string {
	return "memo_bills"
}

// ToDomain converts the row to a memo line. The bill number comes from a
// preloaded Bill, or -1 for PR lines.
func (m *MemoBillModel) ToDomain() ledger.MemoBill {
	line := ledger.MemoBill{
		ID:     m.ID,
		MemoID: m.MemoID,
		BillID: m.BillID,
		Amount: Rupees(m.Amount),
		Type:   ledger.LineType(m.Type),
	}
	switch {
	case line.Type == ledger.LineTypePartCredit:
		line.BillNumber = ledger.PRBillNumber
	case m.Bill != nil:
		line.BillNumber = m.Bill.BillNumber
	}
	return line
}

// MemoBillModelFromDomain creates a row from a memo line
func MemoBillModelFromDomain(l *ledger.MemoBill) *MemoBillModel {
	return &MemoBillModel{
		ID:     l.ID,
		MemoID: l.MemoID,
		BillID: l.BillID,
		Amount: Money(l.Amount),
		Type:   string(l.Type),
	}
}

// MemoPaymentModel is a bank cheque of a memo
type MemoPaymentModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	MemoID       int64           `gorm:"not null;index"`
	BankID       int64           `gorm:"not null;index"`
	ChequeNumber string          `gorm:"type:varchar(50)"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	Bank *BankModel `gorm:"foreignKey:BankID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (MemoPaymentModel) TableName() string {
	return "memo_payments"
}

// ToDomain converts the row to a payment
func (m *MemoPaymentModel) ToDomain() ledger.MemoPayment {
	return ledger.MemoPayment{
		ID:           m.ID,
		MemoID:       m.MemoID,
		BankID:       m.BankID,
		ChequeNumber: m.ChequeNumber,
		Amount:       Rupees(m.Amount),
	}
}

// MemoPaymentModelFromDomain creates a row from a payment
func MemoPaymentModelFromDomain(p *ledger.MemoPayment) *MemoPaymentModel {
	return &MemoPaymentModel{
		ID:           p.ID,
		MemoID:       p.MemoID,
		BankID:       p.BankID,
		ChequeNumber: p.ChequeNumber,
		Amount:       Money(p.Amount),
	}
}

// PartPaymentModel is an advance credit. used is true iff use_memo_id is set.
type PartPaymentModel struct {
	BaseModel
	SupplierID int64  `gorm:"not null;index:idx_part_pair,priority:1"`
	PartyID    int64  `gorm:"not null;index:idx_part_pair,priority:2"`
	MemoID     int64  `gorm:"not null;index"`
	Used       bool   `gorm:"not null;default:false;index:idx_part_pair,priority:3"`
	UseMemoID  *int64 `gorm:"index"`

	Memo *MemoEntryModel `gorm:"foreignKey:MemoID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (PartPaymentModel) TableName() string {
	return "part_payments"
}

// ToDomain converts the row to a credit
func (m *PartPaymentModel) ToDomain() *ledger.PartPayment {
	return &ledger.PartPayment{
		BaseEntity: m.BaseModel.ToDomain(),
		SupplierID: m.SupplierID,
		PartyID:    m.PartyID,
		MemoID:     m.MemoID,
		Used:       m.Used,
		UseMemoID:  m.UseMemoID,
	}
}

// FromDomain populates the row from a credit
func (m *PartPaymentModel) FromDomain(p *ledger.PartPayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SupplierID = p.SupplierID
	m.PartyID = p.PartyID
	m.MemoID = p.MemoID
	m.Used = p.Used
	m.UseMemoID = p.UseMemoID
}

// OrderFormModel is an order form row
type OrderFormModel struct {
	BaseModel
	SupplierID      int64     `gorm:"not null;index:idx_order_pair,priority:1"`
	PartyID         int64     `gorm:"not null;index:idx_order_pair,priority:2"`
	OrderFormNumber int64     `gorm:"not null;index:idx_order_pair,priority:3"`
	RegisterDate    time.Time `gorm:"type:date;not null;index"`
	Status          string    `gorm:"type:varchar(1);not null;default:'N'"`
	Delivered       bool      `gorm:"not null;default:false"`

	Supplier *SupplierModel `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	Party    *PartyModel    `gorm:"foreignKey:PartyID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (OrderFormModel) TableName() string {
	return "order_form"
}

// ToDomain converts the row to an order form
func (m *OrderFormModel) ToDomain() *ledger.OrderForm {
	return &ledger.OrderForm{
		BaseEntity:      m.BaseModel.ToDomain(),
		SupplierID:      m.SupplierID,
		PartyID:         m.PartyID,
		OrderFormNumber: m.OrderFormNumber,
		RegisterDate:    ledger.DateOnly(m.RegisterDate),
		Status:          ledger.OrderFormStatus(m.Status),
		Delivered:       m.Delivered,
	}
}

// FromDomain populates the row from an order form
func (m *OrderFormModel) FromDomain(o *ledger.OrderForm) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.SupplierID = o.SupplierID
	m.PartyID = o.PartyID
	m.OrderFormNumber = o.OrderFormNumber
	m.RegisterDate = ledger.DateOnly(o.RegisterDate)
	m.Status = string(o.Status)
	m.Delivered = o.Delivered
}

// All lists every ledger model in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&SupplierModel{},
		&PartyModel{},
		&BankModel{},
		&RegisterEntryModel{},
		&MemoEntryModel{},
		&MemoBillModel{},
		&MemoPaymentModel{},
		&PartPaymentModel{},
		&OrderFormModel{},
		&AuditLogModel{},
	}
}
