package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/khata/backend/internal/application/partner"
)

// BankHandler serves the bank master
type BankHandler struct {
	BaseHandler
	banks *partnerapp.BankService
}

// NewBankHandler creates a new BankHandler
func NewBankHandler(banks *partnerapp.BankService) *BankHandler {
	return &BankHandler{banks: banks}
}

// BankQuery narrows the bank list to one name
type BankQuery struct {
	Name string `form:"name" binding:"max=200"`
}

// Create godoc
// @ID           createBank
// @Summary      Register a bank
// @Description  Memo cheques reference banks by id. Names are unique.
// @Tags         banks
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateBankRequest true "Bank details"
// @Success      201 {object} APIResponse[partnerapp.BankResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /banks [post]
func (h *BankHandler) Create(c *gin.Context) {
	var req partnerapp.CreateBankRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.banks.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @ID           getBank
// @Summary      Get a bank
// @Tags         banks
// @Produce      json
// @Param        id path int true "Bank ID"
// @Success      200 {object} APIResponse[partnerapp.BankResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /banks/{id} [get]
func (h *BankHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	resp, err := h.banks.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listBanks
// @Summary      List banks
// @Description  With name set, answers the single matching bank or 404
// @Tags         banks
// @Produce      json
// @Param        name query string false "Exact bank name"
// @Success      200 {object} APIResponse[[]partnerapp.BankResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /banks [get]
func (h *BankHandler) List(c *gin.Context) {
	var q BankQuery
	if !bindQuery(c, &q) {
		return
	}
	if q.Name != "" {
		resp, err := h.banks.GetByName(c.Request.Context(), q.Name)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, []partnerapp.BankResponse{*resp})
		return
	}
	resp, err := h.banks.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
