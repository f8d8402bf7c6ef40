package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	ledgerapp "github.com/khata/backend/internal/application/ledger"
	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/interfaces/http/dto"
)

// BillHandler handles bill register endpoints
type BillHandler struct {
	BaseHandler
	bills *ledgerapp.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(bills *ledgerapp.BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

// BillLookupQuery finds a bill by its natural key
type BillLookupQuery struct {
	dto.PairQuery
	BillNumber string `form:"bill_number" binding:"required" example:"1021"`
	Date       string `form:"date" example:"2024-04-01"`
}

// Insert godoc
// @ID           insertBill
// @Summary      Register a bill
// @Description  Rejects a bill number already registered for the pair on the same date or less than six months away
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.InsertBillRequest true "Bill"
// @Success      201 {object} APIResponse[ledgerapp.BillResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /bills [post]
func (h *BillHandler) Insert(c *gin.Context) {
	var req ledgerapp.InsertBillRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.bills.Insert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @ID           getBill
// @Summary      Get a bill
// @Tags         bills
// @Produce      json
// @Param        id path int true "Bill ID"
// @Success      200 {object} APIResponse[ledgerapp.BillResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /bills/{id} [get]
func (h *BillHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	resp, err := h.bills.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Retrieve godoc
// @ID           retrieveBill
// @Summary      Find a bill by number
// @Description  Without a date, a bill number registered more than once is AMBIGUOUS
// @Tags         bills
// @Produce      json
// @Param        supplier_id query int true "Supplier ID"
// @Param        party_id query int true "Party ID"
// @Param        bill_number query string true "Bill number"
// @Param        date query string false "Register date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[ledgerapp.BillResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /bills [get]
func (h *BillHandler) Retrieve(c *gin.Context) {
	var q BillLookupQuery
	if !bindQuery(c, &q) {
		return
	}
	var date *time.Time
	if q.Date != "" {
		d, err := ledger.ParseDate(q.Date)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		date = &d
	}
	resp, err := h.bills.Retrieve(c.Request.Context(), q.SupplierID, q.PartyID, q.BillNumber, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Pending godoc
// @ID           pendingBills
// @Summary      List unsettled bills of a pair
// @Tags         bills
// @Produce      json
// @Param        supplier_id query int true "Supplier ID"
// @Param        party_id query int true "Party ID"
// @Success      200 {object} APIResponse[[]ledgerapp.BillResponse]
// @Router       /bills/pending [get]
func (h *BillHandler) Pending(c *gin.Context) {
	var q dto.PairQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.bills.GetPending(c.Request.Context(), q.SupplierID, q.PartyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
// @ID           updateBill
// @Summary      Overwrite the settlement columns of a bill
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path int true "Bill ID"
// @Param        request body ledgerapp.UpdateBillRequest true "Settlement columns"
// @Success      200 {object} APIResponse[ledgerapp.BillResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /bills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req ledgerapp.UpdateBillRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.bills.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteBill
// @Summary      Delete a bill
// @Description  Fails with FOREIGN_KEY_VIOLATION while a memo line references the bill
// @Tags         bills
// @Param        id path int true "Bill ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.bills.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
