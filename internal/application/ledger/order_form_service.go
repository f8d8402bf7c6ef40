package ledger

import (
	"context"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/shared"
	"github.com/khata/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// OrderFormService handles order forms
type OrderFormService struct {
	forms ledger.OrderFormRepository
}

// NewOrderFormService creates a new OrderFormService
func NewOrderFormService(forms ledger.OrderFormRepository) *OrderFormService {
	return &OrderFormService{forms: forms}
}

// Insert records an undelivered order form
func (s *OrderFormService) Insert(ctx context.Context, req InsertOrderFormRequest) (*OrderFormResponse, error) {
	date, err := ledger.ParseDate(req.RegisterDate)
	if err != nil {
		return nil, err
	}
	form, err := ledger.NewOrderForm(req.SupplierID, req.PartyID, req.OrderFormNumber, date)
	if err != nil {
		return nil, err
	}
	if err := s.forms.Create(ctx, form); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Order form recorded",
		zap.Int64("order_form_id", form.ID),
		zap.Int64("order_form_number", form.OrderFormNumber),
	)
	resp := ToOrderFormResponse(form)
	return &resp, nil
}

// Retrieve finds the one order form of a pair carrying number
func (s *OrderFormService) Retrieve(ctx context.Context, supplierID, partyID, number int64) (*OrderFormResponse, error) {
	forms, err := s.forms.FindByNumber(ctx, supplierID, partyID, number)
	if err != nil {
		return nil, err
	}
	switch len(forms) {
	case 0:
		return nil, shared.ErrNotFound
	case 1:
		resp := ToOrderFormResponse(&forms[0])
		return &resp, nil
	}
	return nil, shared.ErrAmbiguous
}

// MarkDelivered closes an order form
func (s *OrderFormService) MarkDelivered(ctx context.Context, id int64) (*OrderFormResponse, error) {
	form, err := s.forms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := form.MarkDelivered(); err != nil {
		return nil, err
	}
	if err := s.forms.Update(ctx, form); err != nil {
		return nil, err
	}
	resp := ToOrderFormResponse(form)
	return &resp, nil
}

// Delete removes an order form
func (s *OrderFormService) Delete(ctx context.Context, id int64) error {
	return s.forms.Delete(ctx, id)
}
