package report

import (
	"context"
	"errors"
	"time"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/domain/report"
	"github.com/khata/backend/internal/domain/shared"
	"github.com/khata/backend/internal/infrastructure/logger"
	"github.com/khata/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Options tunes report generation
type Options struct {
	Buckets        report.Buckets
	SmartSelection bool
	Now            func() time.Time
}

// ReportService builds report trees from the ledger
type ReportService struct {
	source     report.Source
	efficiency report.Efficiency
	names      report.NameResolver
	suppliers  partner.SupplierRepository
	parties    partner.PartyRepository
	metrics    *telemetry.LedgerMetrics
	opts       Options
}

// NewReportService creates a new ReportService
func NewReportService(
	source report.Source,
	efficiency report.Efficiency,
	names report.NameResolver,
	suppliers partner.SupplierRepository,
	parties partner.PartyRepository,
	metrics *telemetry.LedgerMetrics,
	opts Options,
) *ReportService {
	if metrics == nil {
		metrics = telemetry.NoopLedgerMetrics()
	}
	if opts.Buckets.Low == 0 && opts.Buckets.High == 0 {
		opts.Buckets = report.DefaultBuckets()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ReportService{
		source:     source,
		efficiency: efficiency,
		names:      names,
		suppliers:  suppliers,
		parties:    parties,
		metrics:    metrics,
		opts:       opts,
	}
}

// Generate builds the report tree of one kind over the selected suppliers
// and parties. Pairs without data rows once their credits are merged in and
// headings without subheadings are left out. Column totals that cannot be computed and part values lost in
// the merge are logged and do not fail the report.
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest) (*report.Report, error) {
	kind, err := report.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	spec := kind.Spec()

	ctx, span := telemetry.StartServiceSpan(ctx, "report", "generate", telemetry.AttrReportKind, kind.String())
	defer span.End()
	start := time.Now()

	var out *report.Report
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: "generate_report",
		telemetry.ProfilingLabelReport:    kind.String(),
	}, func(c context.Context) {
		out, err = s.generate(c, spec, req)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.metrics.ReportBuilt(ctx, kind.String(), time.Since(start))
	logger.L(ctx).Info("Report built",
		zap.String("kind", kind.String()),
		zap.Int("headings", len(out.Headings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

func (s *ReportService) generate(ctx context.Context, spec report.Spec, req GenerateRequest) (*report.Report, error) {
	rng, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	supplierIDs, err := s.supplierIDs(ctx, req)
	if err != nil {
		return nil, err
	}
	partyIDs, err := s.partyIDs(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.opts.SmartSelection {
		partyIDs, supplierIDs, err = s.efficiency.SmartSelection(ctx, supplierIDs, partyIDs, rng)
		if err != nil {
			return nil, err
		}
	}

	headerIDs, subIDs := partyIDs, supplierIDs
	if spec.HeaderRole == partner.RoleSupplier {
		headerIDs, subIDs = supplierIDs, partyIDs
	}

	out := &report.Report{
		Title:    spec.Title,
		From:     report.FormatDate(rng.From),
		To:       report.FormatDate(rng.To),
		Headings: []report.Heading{},
	}
	var diag report.Diagnostics
	for _, headerID := range headerIDs {
		heading, ok, d, err := s.heading(ctx, spec, headerID, subIDs, rng)
		if err != nil {
			return nil, err
		}
		diag.Merge(d)
		if ok {
			out.Headings = append(out.Headings, heading)
		}
	}
	logDiagnostics(ctx, spec, diag)
	return out, nil
}

// heading builds the block of one header entity. ok is false when no pair
// under it has data rows.
func (s *ReportService) heading(ctx context.Context, spec report.Spec, headerID int64, subIDs []int64, rng ledger.DateRange) (report.Heading, bool, report.Diagnostics, error) {
	var diag report.Diagnostics

	subIDs, err := s.filter(ctx, spec.HeaderRole, headerID, subIDs)
	if err != nil {
		return report.Heading{}, false, diag, err
	}
	if len(subIDs) == 0 {
		return report.Heading{}, false, diag, nil
	}

	headerName, err := s.names.ReportName(ctx, spec.HeaderRole, headerID)
	if err != nil {
		return report.Heading{}, false, diag, err
	}
	heading := report.Heading{Title: spec.HeaderRole.Label() + headerName}

	if spec.Kind == report.KindGrandTotal {
		rows, err := s.grandTotalRows(ctx, headerID, subIDs, rng)
		if err != nil {
			return heading, false, diag, err
		}
		if len(rows) == 0 {
			return heading, false, diag, nil
		}
		sub, d := report.BuildSubheading(spec, "", rows, s.bucketsFor(spec), false)
		diag.Merge(d)
		heading.Subheadings = []report.Subheading{sub}
		return heading, true, diag, nil
	}

	var pooled []report.Row
	for _, subID := range subIDs {
		supplierID, partyID := headerID, subID
		if spec.HeaderRole == partner.RoleParty {
			supplierID, partyID = subID, headerID
		}
		data, parts, err := s.pairRows(ctx, spec, supplierID, partyID, rng)
		if err != nil {
			return heading, false, diag, err
		}
		rows, collisions := report.JoinParts(spec, data, parts)
		diag.Collisions = append(diag.Collisions, collisions...)
		if len(rows) == 0 {
			continue
		}

		if spec.HeaderOnly {
			pooled = append(pooled, rows...)
			continue
		}
		subName, err := s.names.ReportName(ctx, spec.SubheaderRole, subID)
		if err != nil {
			return heading, false, diag, err
		}
		sub, d := report.BuildSubheading(spec, spec.SubheaderRole.Label()+subName, rows, s.bucketsFor(spec), true)
		diag.Merge(d)
		heading.Subheadings = append(heading.Subheadings, sub)
	}

	if spec.HeaderOnly && len(pooled) > 0 {
		sub, d := report.BuildSubheading(spec, "", pooled, s.bucketsFor(spec), false)
		diag.Merge(d)
		heading.Subheadings = []report.Subheading{sub}
	}
	if len(heading.Subheadings) == 0 {
		return heading, false, diag, nil
	}
	heading.Cumulative = report.HeadingCumulative(spec, heading.Subheadings)
	return heading, true, diag, nil
}

// pairRows reads the data and part rows of one supplier/party pair. Khata and
// Payment List read the unused credits even when no bill is in range.
func (s *ReportService) pairRows(ctx context.Context, spec report.Spec, supplierID, partyID int64, rng ledger.DateRange) (data, parts []report.Row, err error) {
	switch spec.Kind {
	case report.KindKhata:
		bills, err := s.source.KhataBills(ctx, supplierID, partyID, rng)
		if err != nil {
			return nil, nil, err
		}
		credits, err := s.source.UnusedCredits(ctx, supplierID, partyID)
		if err != nil {
			return nil, nil, err
		}
		return report.KhataRows(bills), report.KhataPartRows(credits), nil

	case report.KindPaymentList:
		bills, err := s.source.PendingBills(ctx, supplierID, partyID, rng)
		if err != nil {
			return nil, nil, err
		}
		credits, err := s.source.UnusedCredits(ctx, supplierID, partyID)
		if err != nil {
			return nil, nil, err
		}
		return report.PaymentListRows(bills, s.opts.Now()), report.PartColumns(credits), nil

	case report.KindPaymentListSummary:
		bills, err := s.source.PendingBills(ctx, supplierID, partyID, rng)
		if err != nil {
			return nil, nil, err
		}
		return report.SummaryRows(bills, s.opts.Now()), nil, nil

	case report.KindSupplierRegister:
		lines, err := s.source.RegisterLines(ctx, supplierID, partyID, rng)
		if err != nil {
			return nil, nil, err
		}
		return report.RegisterRows(lines), nil, nil

	case report.KindOrderForm:
		lines, err := s.source.OrderLines(ctx, supplierID, partyID, rng)
		if err != nil {
			return nil, nil, err
		}
		return report.OrderFormRows(lines), nil, nil
	}
	return nil, nil, shared.NewDomainError("INVALID_REPORT", "Unknown report type: "+spec.Kind.String())
}

// grandTotalRows is one row per supplier of the party, in subheader order
func (s *ReportService) grandTotalRows(ctx context.Context, partyID int64, supplierIDs []int64, rng ledger.DateRange) ([]report.Row, error) {
	totals, err := s.source.BillTotals(ctx, []int64{partyID}, rng)
	if err != nil {
		return nil, err
	}
	bySupplier := make(map[int64]int64, len(totals))
	for _, t := range totals {
		if t.PartyID == partyID {
			bySupplier[t.SupplierID] += t.Amount
		}
	}
	var rows []report.Row
	for _, supplierID := range supplierIDs {
		amount, ok := bySupplier[supplierID]
		if !ok {
			continue
		}
		name, err := s.names.ReportName(ctx, partner.RoleSupplier, supplierID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, report.GrandTotalRow(name, amount))
	}
	return rows, nil
}

// filter keeps the subheader ids the header entity has ever traded with
func (s *ReportService) filter(ctx context.Context, headerRole partner.Role, headerID int64, candidates []int64) ([]int64, error) {
	if headerRole == partner.RoleSupplier {
		return s.efficiency.FilterParties(ctx, headerID, candidates)
	}
	return s.efficiency.FilterSuppliers(ctx, headerID, candidates)
}

func (s *ReportService) bucketsFor(spec report.Spec) report.Buckets {
	if spec.Kind == report.KindPaymentListSummary {
		return report.SummaryBuckets()
	}
	return s.opts.Buckets
}

func (s *ReportService) supplierIDs(ctx context.Context, req GenerateRequest) ([]int64, error) {
	if !req.SupplierAll {
		return dedupe(req.SupplierIDs), nil
	}
	all, err := s.suppliers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	return ids, nil
}

func (s *ReportService) partyIDs(ctx context.Context, req GenerateRequest) ([]int64, error) {
	if !req.PartyAll {
		return dedupe(req.PartyIDs), nil
	}
	all, err := s.parties.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	return ids, nil
}

func parseRange(from, to string) (ledger.DateRange, error) {
	if from == "" || to == "" {
		return ledger.DateRange{}, shared.NewDomainError("INVALID_RANGE", "Reports need both a start and an end date")
	}
	var (
		rng ledger.DateRange
		err error
	)
	if rng.From, err = ledger.ParseDate(from); err != nil {
		return rng, err
	}
	if rng.To, err = ledger.ParseDate(to); err != nil {
		return rng, err
	}
	if rng.To.Before(rng.From) {
		return rng, shared.NewDomainError("INVALID_RANGE", "The end date cannot be before the start date")
	}
	return rng, nil
}

// dedupe drops repeated ids keeping the first occurrence
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func logDiagnostics(ctx context.Context, spec report.Spec, diag report.Diagnostics) {
	if diag.Empty() {
		return
	}
	log := logger.L(ctx).With(zap.String("kind", spec.Kind.String()))
	for _, e := range diag.Columns {
		var de *shared.DomainError
		if errors.As(e.Err, &de) {
			log.Warn("Column total skipped", zap.String("column", e.Column), zap.Int("row", e.Row), zap.String("code", de.Code))
			continue
		}
		log.Warn("Column total skipped", zap.String("column", e.Column), zap.Int("row", e.Row), zap.Error(e.Err))
	}
	for _, c := range diag.Collisions {
		log.Warn("Part merge dropped a value",
			zap.Int("index", c.Index),
			zap.String("key", c.Key),
			zap.Any("kept", c.Kept),
			zap.Any("lost", c.Lost),
		)
	}
}
