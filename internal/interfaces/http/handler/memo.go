package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/khata/backend/internal/application/ledger"
	"github.com/khata/backend/internal/interfaces/http/dto"
)

// MemoHandler handles memo settlement endpoints
type MemoHandler struct {
	BaseHandler
	settlement *ledgerapp.SettlementService
}

// NewMemoHandler creates a new MemoHandler
func NewMemoHandler(settlement *ledgerapp.SettlementService) *MemoHandler {
	return &MemoHandler{settlement: settlement}
}

// MemoNumberQuery finds a memo by number within a pair
type MemoNumberQuery struct {
	dto.PairQuery
	MemoNumber int64 `form:"memo_number" binding:"required,min=1" example:"17"`
}

// Insert godoc
// @ID           insertMemo
// @Summary      Record a memo
// @Description  Applies the memo lines to their bills in one transaction. A Full memo consumes the credits listed in selected_part; a Part memo opens one credit.
// @Tags         memos
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.InsertMemoRequest true "Memo"
// @Success      201 {object} APIResponse[ledgerapp.MemoResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /memos [post]
func (h *MemoHandler) Insert(c *gin.Context) {
	var req ledgerapp.InsertMemoRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.settlement.InsertMemo(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @ID           getMemo
// @Summary      Get a memo with its lines and payments
// @Tags         memos
// @Produce      json
// @Param        id path int true "Memo ID"
// @Success      200 {object} APIResponse[ledgerapp.MemoResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /memos/{id} [get]
func (h *MemoHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	resp, err := h.settlement.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByNumber godoc
// @ID           getMemoByNumber
// @Summary      Find a memo by number
// @Tags         memos
// @Produce      json
// @Param        supplier_id query int true "Supplier ID"
// @Param        party_id query int true "Party ID"
// @Param        memo_number query int true "Memo number"
// @Success      200 {object} APIResponse[ledgerapp.MemoResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /memos/by-number [get]
func (h *MemoHandler) GetByNumber(c *gin.Context) {
	var q MemoNumberQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.settlement.GetByNumber(c.Request.Context(), q.SupplierID, q.PartyID, q.MemoNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listMemos
// @Summary      List the memos of a pair
// @Tags         memos
// @Produce      json
// @Param        supplier_id query int true "Supplier ID"
// @Param        party_id query int true "Party ID"
// @Success      200 {object} APIResponse[[]ledgerapp.MemoListItem]
// @Router       /memos [get]
func (h *MemoHandler) List(c *gin.Context) {
	var q dto.PairQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.settlement.List(c.Request.Context(), q.SupplierID, q.PartyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteMemo
// @Summary      Undo a memo
// @Description  Reverses its bill mutations and credit bookkeeping. A Part memo whose credit was already consumed cannot be undone.
// @Tags         memos
// @Param        id path int true "Memo ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /memos/{id} [delete]
func (h *MemoHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.settlement.DeleteMemo(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Total godoc
// @ID           memoTotal
// @Summary      Sum memo lines of one type
// @Description  PR sums the part payment credits of the selection
// @Tags         memos
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.TotalRequest true "Selection"
// @Success      200 {object} APIResponse[dto.TotalResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /memos/total [post]
func (h *MemoHandler) Total(c *gin.Context) {
	var req ledgerapp.TotalRequest
	if !bindJSON(c, &req) {
		return
	}
	total, err := h.settlement.Total(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.TotalResponse{Total: total})
}
