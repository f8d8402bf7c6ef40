package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// LedgerMetrics counts ledger writes and times report builds
type LedgerMetrics struct {
	billsInserted   metric.Int64Counter
	memosInserted   metric.Int64Counter
	memosDeleted    metric.Int64Counter
	creditsConsumed metric.Int64Counter
	settlementFails metric.Int64Counter
	reportDuration  metric.Float64Histogram
}

// NewLedgerMetrics registers the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	m := &LedgerMetrics{}
	var err error
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.billsInserted, "ledger.bills.inserted", "Bills registered"},
		{&m.memosInserted, "ledger.memos.inserted", "Memos inserted"},
		{&m.memosDeleted, "ledger.memos.deleted", "Memos deleted"},
		{&m.creditsConsumed, "ledger.credits.consumed", "Part payments consumed by full memos"},
		{&m.settlementFails, "ledger.settlement.failures", "Settlement transactions rolled back"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit("1"))
		if err != nil {
			return nil, fmt.Errorf("failed to create counter %s: %w", c.name, err)
		}
	}
	m.reportDuration, err = meter.Float64Histogram("report.build.duration",
		metric.WithDescription("Time spent building a report tree"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram report.build.duration: %w", err)
	}
	return m, nil
}

// NoopLedgerMetrics returns instruments that record nothing
func NoopLedgerMetrics() *LedgerMetrics {
	m, _ := NewLedgerMetrics(noop.NewMeterProvider().Meter(TracerName))
	return m
}

// BillInserted counts a registered bill
func (m *LedgerMetrics) BillInserted(ctx context.Context) {
	m.billsInserted.Add(ctx, 1)
}

// MemoInserted counts a committed memo of the given mode
func (m *LedgerMetrics) MemoInserted(ctx context.Context, mode string, consumed int) {
	m.memosInserted.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
	if consumed > 0 {
		m.creditsConsumed.Add(ctx, int64(consumed))
	}
}

// MemoDeleted counts an undone memo
func (m *LedgerMetrics) MemoDeleted(ctx context.Context) {
	m.memosDeleted.Add(ctx, 1)
}

// SettlementFailed counts a rolled back settlement by error code
func (m *LedgerMetrics) SettlementFailed(ctx context.Context, op, code string) {
	m.settlementFails.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("code", code),
	))
}

// ReportBuilt records how long a report took
func (m *LedgerMetrics) ReportBuilt(ctx context.Context, kind string, d time.Duration) {
	m.reportDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("kind", kind)))
}
