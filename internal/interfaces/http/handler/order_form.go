package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/khata/backend/internal/application/ledger"
	"github.com/khata/backend/internal/interfaces/http/dto"
)

// OrderFormHandler handles order form endpoints
type OrderFormHandler struct {
	BaseHandler
	forms *ledgerapp.OrderFormService
}

// NewOrderFormHandler creates a new OrderFormHandler
func NewOrderFormHandler(forms *ledgerapp.OrderFormService) *OrderFormHandler {
	return &OrderFormHandler{forms: forms}
}

// OrderFormQuery finds an order form by number within a pair
type OrderFormQuery struct {
	dto.PairQuery
	Number int64 `form:"order_form_number" binding:"required,min=1" example:"301"`
}

// Insert godoc
// @ID           insertOrderForm
// @Summary      Record an order form
// @Tags         order-forms
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.InsertOrderFormRequest true "Order form"
// @Success      201 {object} APIResponse[ledgerapp.OrderFormResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /order-forms [post]
func (h *OrderFormHandler) Insert(c *gin.Context) {
	var req ledgerapp.InsertOrderFormRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.forms.Insert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Retrieve godoc
// @ID           retrieveOrderForm
// @Summary      Find an order form by number
// @Tags         order-forms
// @Produce      json
// @Param        supplier_id query int true "Supplier ID"
// @Param        party_id query int true "Party ID"
// @Param        order_form_number query int true "Order form number"
// @Success      200 {object} APIResponse[ledgerapp.OrderFormResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /order-forms [get]
func (h *OrderFormHandler) Retrieve(c *gin.Context) {
	var q OrderFormQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.forms.Retrieve(c.Request.Context(), q.SupplierID, q.PartyID, q.Number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkDelivered godoc
// @ID           deliverOrderForm
// @Summary      Mark an order form delivered
// @Tags         order-forms
// @Produce      json
// @Param        id path int true "Order form ID"
// @Success      200 {object} APIResponse[ledgerapp.OrderFormResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /order-forms/{id}/delivered [post]
func (h *OrderFormHandler) MarkDelivered(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	resp, err := h.forms.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteOrderForm
// @Summary      Delete an order form
// @Tags         order-forms
// @Param        id path int true "Order form ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /order-forms/{id} [delete]
func (h *OrderFormHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.forms.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
