package printing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	reportapp "github.com/khata/backend/internal/application/report"
	"github.com/khata/backend/internal/domain/report"
	"github.com/khata/backend/internal/domain/shared"
	infra "github.com/khata/backend/internal/infrastructure/printing"
	"github.com/khata/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req reportapp.GenerateRequest) (*report.Report, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Report), args.Error(1)
}

type MockPrinter struct {
	mock.Mock
}

func (m *MockPrinter) Print(ctx context.Context, r *report.Report) (*infra.RenderResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.RenderResult), args.Error(1)
}

func fixedNow() time.Time {
	return time.Date(2024, 4, 30, 18, 5, 0, 0, time.UTC)
}

func TestPrintService_PrintReport(t *testing.T) {
	req := reportapp.GenerateRequest{Kind: "payment_list", PartyAll: true, SupplierAll: true, From: "2024-04-01", To: "2024-04-30"}
	tree := &report.Report{Title: "Payment List", Headings: []report.Heading{}}
	pdf := &infra.RenderResult{PDFData: []byte("%PDF-1.4 test"), PageCount: 2}

	t.Run("returns the PDF inline without an archive", func(t *testing.T) {
		gen := new(MockGenerator)
		printer := new(MockPrinter)
		gen.On("Generate", mock.Anything, req).Return(tree, nil)
		printer.On("Print", mock.Anything, tree).Return(pdf, nil)

		svc := NewPrintService(gen, printer, nil, 0, nil)
		svc.now = fixedNow

		resp, err := svc.PrintReport(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "payment_list_20240430_180500.pdf", resp.Filename)
		assert.Equal(t, 2, resp.Pages)
		assert.Equal(t, pdf.PDFData, resp.Content)
		assert.False(t, resp.Archived())
		gen.AssertExpectations(t)
		printer.AssertExpectations(t)
	})

	t.Run("archives and links when an archive is set", func(t *testing.T) {
		gen := new(MockGenerator)
		printer := new(MockPrinter)
		gen.On("Generate", mock.Anything, req).Return(tree, nil)
		printer.On("Print", mock.Anything, tree).Return(pdf, nil)
		archive := storage.NewMemoryArchive()

		svc := NewPrintService(gen, printer, archive, time.Hour, nil)
		svc.now = fixedNow

		resp, err := svc.PrintReport(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, resp.Archived())
		assert.Nil(t, resp.Content)
		assert.True(t, strings.HasPrefix(resp.Key, "reports/payment_list/2024/04/"))
		assert.True(t, strings.HasPrefix(resp.URL, archive.BaseURL+"/"+resp.Key))

		stored, ok := archive.Get(resp.Key)
		require.True(t, ok)
		assert.Equal(t, pdf.PDFData, stored)
	})

	t.Run("report errors pass through", func(t *testing.T) {
		gen := new(MockGenerator)
		printer := new(MockPrinter)
		gen.On("Generate", mock.Anything, req).Return(nil, shared.NewDomainError("INVALID_RANGE", "bad"))

		svc := NewPrintService(gen, printer, nil, 0, nil)
		_, err := svc.PrintReport(context.Background(), req)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_RANGE", de.Code)
		printer.AssertNotCalled(t, "Print", mock.Anything, mock.Anything)
	})

	t.Run("render failure is wrapped", func(t *testing.T) {
		gen := new(MockGenerator)
		printer := new(MockPrinter)
		gen.On("Generate", mock.Anything, req).Return(tree, nil)
		printer.On("Print", mock.Anything, tree).Return(nil, errors.New("chrome gone"))

		svc := NewPrintService(gen, printer, nil, 0, nil)
		_, err := svc.PrintReport(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render report")
	})

	t.Run("disabled without a printer", func(t *testing.T) {
		svc := NewPrintService(new(MockGenerator), nil, nil, 0, nil)
		assert.False(t, svc.Enabled())
		_, err := svc.PrintReport(context.Background(), req)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "PRINTING_DISABLED", de.Code)
	})
}
