package handler

import (
	"github.com/gin-gonic/gin"
	auditapp "github.com/khata/backend/internal/application/audit"
	"github.com/khata/backend/internal/interfaces/http/middleware"
)

// AuditHandler exposes the audit trail of ledger writes
type AuditHandler struct {
	BaseHandler
	audit *auditapp.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audit *auditapp.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// RecordURI addresses the history of one row
type RecordURI struct {
	Table string `uri:"table" binding:"required,max=64"`
	ID    int64  `uri:"id" binding:"required,min=1"`
}

// PageQuery pages a history
type PageQuery struct {
	Limit  int `form:"limit" binding:"min=0"`
	Offset int `form:"offset" binding:"min=0"`
}

// Search godoc
// @ID           searchAudit
// @Summary      Search the audit log
// @Description  Newest first. Dates are inclusive days.
// @Tags         audit
// @Produce      json
// @Param        table_name query string false "register_entry, memo_entry or part_payments"
// @Param        record_id query int false "Row ID"
// @Param        action query string false "INSERT, UPDATE or DELETE"
// @Param        from query string false "First day"
// @Param        to query string false "Last day"
// @Param        limit query int false "Page size, at most 500"
// @Param        offset query int false "Rows to skip"
// @Success      200 {object} APIResponse[[]audit.Entry]
// @Failure      400 {object} ErrorResponse
// @Router       /audit [get]
func (h *AuditHandler) Search(c *gin.Context) {
	var q auditapp.SearchRequest
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.audit.Search(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// History godoc
// @ID           auditHistory
// @Summary      History of one row
// @Tags         audit
// @Produce      json
// @Param        table path string true "Table name"
// @Param        id path int true "Row ID"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Rows to skip"
// @Success      200 {object} APIResponse[[]audit.Entry]
// @Router       /audit/{table}/{id} [get]
func (h *AuditHandler) History(c *gin.Context) {
	var uri RecordURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	var page PageQuery
	if !bindQuery(c, &page) {
		return
	}
	resp, err := h.audit.History(c.Request.Context(), uri.Table, uri.ID, page.Limit, page.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
