package report

import (
	"time"

	"github.com/khata/backend/internal/domain/ledger"
)

// SummaryBuckets are the day bounds of the Payment List Summary
func SummaryBuckets() Buckets {
	return Buckets{Low: 40, High: 70}
}

// SummaryRows folds pending bills into three rows by days outstanding.
// It returns nil when there is nothing pending.
func SummaryRows(bills []ledger.RegisterEntry, now time.Time) []Row {
	if len(bills) == 0 {
		return nil
	}
	b := SummaryBuckets()
	var amount, pending [3]int64
	for i := range bills {
		bill := &bills[i]
		slot := 2
		switch days := bill.DaysOutstanding(now); {
		case days < b.Low:
			slot = 0
		case days <= b.High:
			slot = 1
		}
		amount[slot] += bill.Amount
		pending[slot] += bill.PendingAmount()
	}
	labels := [3]string{"Below 40", "40-70", "Above 70"}
	rows := make([]Row, 0, 3)
	for i, label := range labels {
		rows = append(rows, NewRow(
			Cell{"days", label},
			Cell{"bill_amt", amount[i]},
			Cell{"pending_amt", pending[i]},
		))
	}
	return rows
}

// GrandTotalRow is one supplier line of the Grand Total List
func GrandTotalRow(supplierName string, amount int64) Row {
	return NewRow(
		Cell{"supp_name", supplierName},
		Cell{"bill_amt", amount},
	)
}
