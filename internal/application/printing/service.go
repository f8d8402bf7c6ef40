package printing

import (
	"context"
	"fmt"
	"strings"
	"time"

	reportapp "github.com/khata/backend/internal/application/report"
	"github.com/khata/backend/internal/domain/report"
	"github.com/khata/backend/internal/domain/shared"
	infra "github.com/khata/backend/internal/infrastructure/printing"
	"github.com/khata/backend/internal/infrastructure/storage"
	"github.com/khata/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReportGenerator builds report trees
type ReportGenerator interface {
	Generate(ctx context.Context, req reportapp.GenerateRequest) (*report.Report, error)
}

// Printer renders a report tree to PDF
type Printer interface {
	Print(ctx context.Context, r *report.Report) (*infra.RenderResult, error)
}

// Archive stores rendered PDFs and hands out download links
type Archive interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// PrintService renders reports to PDF and, when an archive is configured,
// stores them
type PrintService struct {
	reports ReportGenerator
	printer Printer
	archive Archive
	expiry  time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewPrintService creates a new PrintService. A nil printer disables
// printing. A nil archive returns PDFs inline.
func NewPrintService(reports ReportGenerator, printer Printer, archive Archive, expiry time.Duration, logger *zap.Logger) *PrintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &PrintService{
		reports: reports,
		printer: printer,
		archive: archive,
		expiry:  expiry,
		logger:  logger,
		now:     time.Now,
	}
}

// Enabled reports whether PDFs can be rendered
func (s *PrintService) Enabled() bool {
	return s.printer != nil
}

// PrintReport generates the report and renders it
func (s *PrintService) PrintReport(ctx context.Context, req reportapp.GenerateRequest) (*PDFResponse, error) {
	if s.printer == nil {
		return nil, shared.NewDomainError("PRINTING_DISABLED", "PDF rendering is not enabled")
	}
	tree, err := s.reports.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.Print(ctx, tree)
}

// Print renders an already built report tree
func (s *PrintService) Print(ctx context.Context, tree *report.Report) (*PDFResponse, error) {
	if s.printer == nil {
		return nil, shared.NewDomainError("PRINTING_DISABLED", "PDF rendering is not enabled")
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "printing", "print", telemetry.AttrReportKind, tree.Title)
	defer span.End()

	result, err := s.printer.Print(ctx, tree)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	at := s.now()
	resp := &PDFResponse{
		Filename: filename(tree.Title, at),
		Pages:    result.PageCount,
	}
	if s.archive == nil {
		resp.Content = result.PDFData
		return resp, nil
	}

	key := storage.ReportKey(slug(tree.Title), at)
	if err := s.archive.Upload(ctx, key, result.PDFData, "application/pdf"); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to archive report: %w", err)
	}
	url, expiresAt, err := s.archive.GenerateDownloadURL(ctx, key, s.expiry)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sign report link: %w", err)
	}
	s.logger.Info("Report archived", zap.String("key", key), zap.Int("bytes", len(result.PDFData)))

	resp.Key = key
	resp.URL = url
	resp.ExpiresAt = expiresAt
	return resp, nil
}

func slug(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "_")
}

func filename(title string, at time.Time) string {
	return fmt.Sprintf("%s_%s.pdf", slug(title), at.Format("20060102_150405"))
}
