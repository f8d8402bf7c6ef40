package printing

import (
	"context"

	"github.com/khata/backend/internal/domain/report"
	"go.uber.org/zap"
)

// landscapeColumns is the column count from which a report prints landscape
const landscapeColumns = 7

// ReportPrinter renders report trees to PDF
type ReportPrinter struct {
	template *ReportTemplate
	renderer PDFRenderer
	logger   *zap.Logger
}

// NewReportPrinter creates a new ReportPrinter
func NewReportPrinter(template *ReportTemplate, renderer PDFRenderer, logger *zap.Logger) *ReportPrinter {
	if template == nil {
		template = NewReportTemplate()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportPrinter{template: template, renderer: renderer, logger: logger}
}

// Print lays r out and renders it
func (p *ReportPrinter) Print(ctx context.Context, r *report.Report) (*RenderResult, error) {
	html, err := p.template.Render(r)
	if err != nil {
		return nil, err
	}
	return p.renderer.Render(ctx, &RenderRequest{
		HTML:      html,
		Title:     r.Title,
		Landscape: widestBlock(r) >= landscapeColumns,
	})
}

func widestBlock(r *report.Report) int {
	widest := 0
	for _, h := range r.Headings {
		for _, s := range h.Subheadings {
			widest = max(widest, len(columnKeys(s.DataRows)))
		}
	}
	return widest
}
