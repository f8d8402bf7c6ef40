package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/khata/backend/internal/application/ledger"
	"github.com/khata/backend/internal/interfaces/http/dto"
)

// PartPaymentHandler handles the credit pool endpoints
type PartPaymentHandler struct {
	BaseHandler
	parts *ledgerapp.PartPaymentService
}

// NewPartPaymentHandler creates a new PartPaymentHandler
func NewPartPaymentHandler(parts *ledgerapp.PartPaymentService) *PartPaymentHandler {
	return &PartPaymentHandler{parts: parts}
}

// CreditTotalRequest selects the credits to sum. The All flags ignore the
// respective id list.
type CreditTotalRequest struct {
	SupplierIDs []int64 `json:"supplier_ids"`
	PartyIDs    []int64 `json:"party_ids"`
	SupplierAll bool    `json:"supplier_all"`
	PartyAll    bool    `json:"party_all"`
	From        string  `json:"from" example:"2024-04-01"`
	To          string  `json:"to" example:"2024-04-30"`
}

// Unused godoc
// @ID           unusedCredits
// @Summary      List the open credits of a pair
// @Tags         part-payments
// @Produce      json
// @Param        supplier_id query int true "Supplier ID"
// @Param        party_id query int true "Party ID"
// @Success      200 {object} APIResponse[[]ledgerapp.CreditResponse]
// @Router       /part-payments/unused [get]
func (h *PartPaymentHandler) Unused(c *gin.Context) {
	var q dto.PairQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.parts.GetUnused(c.Request.Context(), q.SupplierID, q.PartyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ByMemo godoc
// @ID           creditByMemo
// @Summary      Get the credit opened by a Part memo
// @Tags         part-payments
// @Produce      json
// @Param        id path int true "Memo ID"
// @Success      200 {object} APIResponse[ledgerapp.PartPaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /part-payments/by-memo/{id} [get]
func (h *PartPaymentHandler) ByMemo(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	resp, err := h.parts.GetByMemo(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Total godoc
// @ID           creditTotal
// @Summary      Sum the credits of a selection
// @Tags         part-payments
// @Accept       json
// @Produce      json
// @Param        request body CreditTotalRequest true "Selection"
// @Success      200 {object} APIResponse[dto.TotalResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /part-payments/total [post]
func (h *PartPaymentHandler) Total(c *gin.Context) {
	var req CreditTotalRequest
	if !bindJSON(c, &req) {
		return
	}
	total, err := h.parts.BulkTotal(c.Request.Context(),
		req.SupplierIDs, req.PartyIDs, req.SupplierAll, req.PartyAll, req.From, req.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.TotalResponse{Total: total})
}
