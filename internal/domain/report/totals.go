package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Day bucket bounds of the Payment List
const (
	DefaultBucketLow  = 60
	DefaultBucketHigh = 120
)

// Buckets splits bill amounts by days outstanding: [0, Low), [Low, High], (High, ∞)
type Buckets struct {
	Low  int
	High int
}

// DefaultBuckets are the Payment List bounds
func DefaultBuckets() Buckets {
	return Buckets{Low: DefaultBucketLow, High: DefaultBucketHigh}
}

// ColumnError is a column whose total could not be computed
type ColumnError struct {
	Column string
	Row    int
	Err    error
}

func (e ColumnError) Error() string {
	return fmt.Sprintf("total of column %s failed at row %d: %v", e.Column, e.Row, e.Err)
}

// sumColumn adds up column over the rows that carry it
func sumColumn(rows []Row, column string) (int64, *ColumnError) {
	var total int64
	for i, row := range rows {
		v, ok := row.Get(column)
		if !ok {
			continue
		}
		n, err := Int64Value(v)
		if err != nil {
			return 0, &ColumnError{Column: column, Row: i, Err: err}
		}
		total += n
	}
	return total, nil
}

// TotalRows computes the special rows of a kind for one block of data rows.
// Columns that fail to total are skipped and returned as errors.
func TotalRows(spec Spec, rows []Row, buckets Buckets) ([]SpecialRow, []ColumnError) {
	switch spec.Kind {
	case KindKhata:
		return khataTotals(spec, rows)
	case KindPaymentList:
		return paymentListTotals(spec, rows, buckets)
	case KindSupplierRegister:
		return registerTotals(spec, rows)
	case KindPaymentListSummary, KindGrandTotal:
		return plainTotals(spec, rows)
	}
	return nil, nil
}

func khataTotals(spec Spec, rows []Row) ([]SpecialRow, []ColumnError) {
	var (
		out                  []SpecialRow
		errs                 []ColumnError
		billTotal, memoTotal int64
		haveBill, haveMemo   bool
	)
	for _, column := range spec.TotalColumns {
		total, cerr := sumColumn(rows, column)
		if cerr != nil {
			errs = append(errs, *cerr)
			continue
		}
		out = append(out, NewSpecialRow("Subtotal", column, total, false))

		switch column {
		case "bill_amt":
			billTotal, haveBill = total, true
		case "memo_amt":
			memoTotal, haveMemo = total, true
			gr, less, cerr := memoSplit(rows, column)
			if cerr != nil {
				errs = append(errs, *cerr)
				continue
			}
			out = append(out,
				NewSpecialRow(percentLabel(gr, total, "GR (-)"), column, gr, true),
				NewSpecialRow(percentLabel(less, total, "Less (-)"), column, less, true),
				NewSpecialRow("Total Paid (=)", column, total-gr-less, false),
			)
		}
	}
	if haveBill && haveMemo {
		out = append(out,
			NewSpecialRow("Paid+GR (-)", "bill_amt", memoTotal, true),
			NewSpecialRow("Pending (=)", "bill_amt", billTotal-memoTotal, false),
		)
	}
	return out, errs
}

// memoSplit sums the memo amounts tagged G and D
func memoSplit(rows []Row, column string) (gr, less int64, cerr *ColumnError) {
	for i, row := range rows {
		v, ok := row.Get(column)
		if !ok {
			continue
		}
		t, _ := row.Get("memo_type")
		tag, _ := t.(string)
		if tag != "G" && tag != "D" {
			continue
		}
		n, err := Int64Value(v)
		if err != nil {
			return 0, 0, &ColumnError{Column: column, Row: i, Err: err}
		}
		if tag == "G" {
			gr += n
		} else {
			less += n
		}
	}
	return gr, less, nil
}

func percentLabel(part, whole int64, suffix string) string {
	pct := decimal.Zero
	if whole != 0 {
		pct = decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(whole))
	}
	return pct.StringFixed(2) + "% " + suffix
}

func paymentListTotals(spec Spec, rows []Row, buckets Buckets) ([]SpecialRow, []ColumnError) {
	var (
		out                  []SpecialRow
		errs                 []ColumnError
		billTotal, partTotal int64
		haveBill, havePart   bool
	)
	for _, column := range spec.TotalColumns {
		switch column {
		case "part_amt":
			total, cerr := sumColumn(rows, column)
			if cerr != nil {
				errs = append(errs, *cerr)
				continue
			}
			partTotal, havePart = total, true
			out = append(out, NewSpecialRow("Total (=)", column, total, false))
		case "bill_amt":
			low, mid, high, cerr := bucketColumn(rows, column, buckets)
			if cerr != nil {
				errs = append(errs, *cerr)
				continue
			}
			billTotal, haveBill = low+mid+high, true
			out = append(out,
				NewSpecialRow(fmt.Sprintf("<%d days (+)", buckets.Low), column, low, false),
				NewSpecialRow(fmt.Sprintf("%d-%d days (+)", buckets.Low, buckets.High), column, mid, false),
				NewSpecialRow(fmt.Sprintf(">%d days (+)", buckets.High), column, high, false),
				NewSpecialRow("Subtotal (=)", column, billTotal, false),
			)
		}
	}
	if haveBill && havePart {
		out = append(out,
			NewSpecialRow("Part (-)", "bill_amt", partTotal, true),
			NewSpecialRow("Pending (=)", "bill_amt", billTotal-partTotal, false),
		)
	}
	return out, errs
}

func bucketColumn(rows []Row, column string, b Buckets) (low, mid, high int64, cerr *ColumnError) {
	for i, row := range rows {
		v, ok := row.Get(column)
		if !ok {
			continue
		}
		amount, err := Int64Value(v)
		if err != nil {
			return 0, 0, 0, &ColumnError{Column: column, Row: i, Err: err}
		}
		d, _ := row.Get("days")
		days, err := Int64Value(d)
		if err != nil {
			return 0, 0, 0, &ColumnError{Column: column, Row: i, Err: err}
		}
		switch {
		case days < int64(b.Low):
			low += amount
		case days <= int64(b.High):
			mid += amount
		default:
			high += amount
		}
	}
	return low, mid, high, nil
}

func registerTotals(spec Spec, rows []Row) ([]SpecialRow, []ColumnError) {
	var (
		out  []SpecialRow
		errs []ColumnError
	)
	for _, column := range spec.TotalColumns {
		total, cerr := sumColumn(rows, column)
		if cerr != nil {
			errs = append(errs, *cerr)
			continue
		}
		label := "Total (=) "
		if column == "pending_amt" {
			label = "Pending (=) "
		}
		out = append(out, NewSpecialRow(label, column, total, false))
	}
	return out, errs
}

// plainTotals adds one "Total" row per total column
func plainTotals(spec Spec, rows []Row) ([]SpecialRow, []ColumnError) {
	var (
		out  []SpecialRow
		errs []ColumnError
	)
	for _, column := range spec.TotalColumns {
		total, cerr := sumColumn(rows, column)
		if cerr != nil {
			errs = append(errs, *cerr)
			continue
		}
		out = append(out, NewSpecialRow("Total", column, total, false))
	}
	return out, errs
}
