package ledger

import (
	"time"

	"github.com/khata/backend/internal/domain/shared"
)

// OrderFormStatus is the delivery state of an order form
type OrderFormStatus string

const (
	OrderFormPending   OrderFormStatus = "N"
	OrderFormDelivered OrderFormStatus = "D"
)

// OrderForm is an order placed by a party with a supplier
type OrderForm struct {
	shared.BaseEntity
	SupplierID      int64
	PartyID         int64
	OrderFormNumber int64
	RegisterDate    time.Time
	Status          OrderFormStatus
	Delivered       bool
}

// NewOrderForm creates an undelivered order form
func NewOrderForm(supplierID, partyID, number int64, date time.Time) (*OrderForm, error) {
	if supplierID <= 0 || partyID <= 0 {
		return nil, shared.NewDomainError("INVALID_PAIR", "Order form must reference a supplier and a party")
	}
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order form number must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Register date is required")
	}
	return &OrderForm{
		BaseEntity:      shared.NewBaseEntity(),
		SupplierID:      supplierID,
		PartyID:         partyID,
		OrderFormNumber: number,
		RegisterDate:    DateOnly(date),
		Status:          OrderFormPending,
	}, nil
}

// MarkDelivered closes the order form
func (o *OrderForm) MarkDelivered() error {
	if o.Delivered {
		return shared.NewDomainError("ALREADY_DELIVERED", "Order form is already delivered")
	}
	o.Delivered = true
	o.Status = OrderFormDelivered
	o.UpdatedAt = time.Now()
	return nil
}
