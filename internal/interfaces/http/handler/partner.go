package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	partnerapp "github.com/khata/backend/internal/application/partner"
)

// partnerService is implemented by both SupplierService and PartyService
type partnerService interface {
	Create(ctx context.Context, req partnerapp.CreatePartnerRequest) (*partnerapp.PartnerResponse, error)
	GetByID(ctx context.Context, id int64) (*partnerapp.PartnerResponse, error)
	List(ctx context.Context) ([]partnerapp.PartnerResponse, error)
	Update(ctx context.Context, id int64, req partnerapp.UpdatePartnerRequest) (*partnerapp.PartnerResponse, error)
	Delete(ctx context.Context, id int64) error
}

// PartnerHandler serves the supplier and party endpoints. One instance is
// mounted per role.
type PartnerHandler struct {
	BaseHandler
	service partnerService
}

// NewSupplierHandler creates the handler mounted under /suppliers
func NewSupplierHandler(svc *partnerapp.SupplierService) *PartnerHandler {
	return &PartnerHandler{service: svc}
}

// NewPartyHandler creates the handler mounted under /parties
func NewPartyHandler(svc *partnerapp.PartyService) *PartnerHandler {
	return &PartnerHandler{service: svc}
}

// Create godoc
// @ID           createPartner
// @Summary      Create a supplier or party
// @Description  Names are unique within each role
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreatePartnerRequest true "Partner details"
// @Success      201 {object} APIResponse[partnerapp.PartnerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /suppliers [post]
// @Router       /parties [post]
func (h *PartnerHandler) Create(c *gin.Context) {
	var req partnerapp.CreatePartnerRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @ID           getPartner
// @Summary      Get a supplier or party
// @Tags         partners
// @Produce      json
// @Param        id path int true "Partner ID"
// @Success      200 {object} APIResponse[partnerapp.PartnerResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /suppliers/{id} [get]
// @Router       /parties/{id} [get]
func (h *PartnerHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listPartners
// @Summary      List suppliers or parties
// @Tags         partners
// @Produce      json
// @Success      200 {object} APIResponse[[]partnerapp.PartnerResponse]
// @Router       /suppliers [get]
// @Router       /parties [get]
func (h *PartnerHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
// @ID           updatePartner
// @Summary      Update a supplier or party
// @Description  Omitted fields keep their value
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path int true "Partner ID"
// @Param        request body partnerapp.UpdatePartnerRequest true "Changed fields"
// @Success      200 {object} APIResponse[partnerapp.PartnerResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /suppliers/{id} [put]
// @Router       /parties/{id} [put]
func (h *PartnerHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req partnerapp.UpdatePartnerRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deletePartner
// @Summary      Delete a supplier or party
// @Description  Fails with FOREIGN_KEY_VIOLATION while ledger rows reference it
// @Tags         partners
// @Param        id path int true "Partner ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /suppliers/{id} [delete]
// @Router       /parties/{id} [delete]
func (h *PartnerHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
