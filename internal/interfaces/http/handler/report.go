package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	printingapp "github.com/khata/backend/internal/application/printing"
	reportapp "github.com/khata/backend/internal/application/report"
)

// ReportHandler serves report trees as JSON and PDF
type ReportHandler struct {
	BaseHandler
	reports  *reportapp.ReportService
	printing *printingapp.PrintService
}

// NewReportHandler creates a new ReportHandler. printing may be nil, in which
// case the PDF endpoint answers PRINTING_DISABLED.
func NewReportHandler(reports *reportapp.ReportService, printing *printingapp.PrintService) *ReportHandler {
	return &ReportHandler{reports: reports, printing: printing}
}

// Kinds godoc
// @ID           listReportKinds
// @Summary      List report kinds
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[[]reportapp.KindResponse]
// @Router       /reports/kinds [get]
func (h *ReportHandler) Kinds(c *gin.Context) {
	h.Success(c, reportapp.ToKindResponses())
}

// Generate godoc
// @ID           generateReport
// @Summary      Build a report tree
// @Description  kind accepts the key (payment_list) or the title (Payment List)
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        request body reportapp.GenerateRequest true "Report selection"
// @Success      200 {object} APIResponse[report.Report]
// @Failure      400 {object} ErrorResponse
// @Router       /reports [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	var req reportapp.GenerateRequest
	if !bindJSON(c, &req) {
		return
	}
	tree, err := h.reports.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// PDF godoc
// @ID           printReport
// @Summary      Render a report to PDF
// @Description  Returns the PDF itself, or a presigned download link when archiving is enabled
// @Tags         reports
// @Accept       json
// @Produce      application/pdf
// @Produce      json
// @Param        request body reportapp.GenerateRequest true "Report selection"
// @Success      200 {object} APIResponse[printingapp.PDFResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Failure      501 {object} ErrorResponse
// @Router       /reports/pdf [post]
func (h *ReportHandler) PDF(c *gin.Context) {
	var req reportapp.GenerateRequest
	if !bindJSON(c, &req) {
		return
	}
	if h.printing == nil {
		h.Error(c, http.StatusNotImplemented, "PRINTING_DISABLED", "PDF rendering is not enabled")
		return
	}
	resp, err := h.printing.PrintReport(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp.Archived() {
		h.Success(c, resp)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+resp.Filename+`"`)
	c.Header("X-Page-Count", strconv.Itoa(resp.Pages))
	c.Data(http.StatusOK, "application/pdf", resp.Content)
}
