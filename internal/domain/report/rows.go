package report

import (
	"time"

	"github.com/khata/backend/internal/domain/ledger"
)

// KhataRows lays out bills with their memo lines. The first line shares the
// bill row, later lines get memo-only rows and a bill without lines gets
// blank memo columns.
func KhataRows(bills []KhataBill) []Row {
	var rows []Row
	for _, b := range bills {
		row := NewRow(
			Cell{"bill_no", BillNumberValue(b.BillNumber)},
			Cell{"bill_date", FormatDate(b.BillDate)},
			Cell{"bill_amt", b.Amount},
			Cell{"bill_status", b.Status},
		)
		if len(b.Lines) == 0 {
			row.Set("memo_no", "")
			row.Set("memo_amt", "")
			row.Set("memo_date", "")
			row.Set("chk_amt", "")
			row.Set("memo_type", "")
			rows = append(rows, row)
			continue
		}
		first := b.Lines[0]
		row.Set("memo_no", first.MemoNumber)
		row.Set("memo_amt", first.LineAmount)
		row.Set("memo_date", FormatDate(first.MemoDate))
		row.Set("chk_amt", first.MemoAmount)
		row.Set("memo_type", first.Type)
		rows = append(rows, row)
		for _, line := range b.Lines[1:] {
			rows = append(rows, memoRow(line.MemoNumber, line.MemoDate, line.MemoAmount, line.LineAmount, line.Type))
		}
	}
	return rows
}

// KhataPartRows lists every PR line of the unused credits
func KhataPartRows(credits []ledger.Credit) []Row {
	rows := make([]Row, 0, len(credits))
	for _, c := range credits {
		rows = append(rows, memoRow(c.MemoNumber, c.MemoDate, c.MemoAmount, c.LineAmount, string(ledger.LineTypePartCredit)))
	}
	return rows
}

func memoRow(number int64, date time.Time, memoAmount, lineAmount int64, lineType string) Row {
	return NewRow(
		Cell{"memo_no", number},
		Cell{"memo_date", FormatDate(date)},
		Cell{"chk_amt", memoAmount},
		Cell{"memo_amt", lineAmount},
		Cell{"memo_type", lineType},
	)
}

// PaymentListRows lays out pending bills with their days outstanding
func PaymentListRows(bills []ledger.RegisterEntry, now time.Time) []Row {
	rows := make([]Row, 0, len(bills))
	for i := range bills {
		b := &bills[i]
		rows = append(rows, NewRow(
			Cell{"bill_no", BillNumberValue(b.BillNumber)},
			Cell{"bill_amt", b.Amount},
			Cell{"bill_date", FormatDate(b.RegisterDate)},
			Cell{"pending_amt", b.PendingAmount()},
			Cell{"days", b.DaysOutstanding(now)},
			Cell{"status", string(b.Status)},
		))
	}
	return rows
}

// PartColumns turns unused credits into the part columns of the Payment List
func PartColumns(credits []ledger.Credit) []Row {
	rows := make([]Row, 0, len(credits))
	for _, c := range credits {
		rows = append(rows, NewRow(
			Cell{"part_no", c.MemoNumber},
			Cell{"part_date", FormatDate(c.MemoDate)},
			Cell{"part_amt", c.LineAmount},
		))
	}
	return rows
}

// RegisterRows lays out the Supplier Register
func RegisterRows(lines []RegisterLine) []Row {
	rows := make([]Row, 0, len(lines))
	for _, l := range lines {
		pending := l.Pending
		if l.Status == string(ledger.BillStatusFull) {
			pending = 0
		}
		rows = append(rows, NewRow(
			Cell{"bill_date", FormatDate(l.BillDate)},
			Cell{"party_name", l.PartyName},
			Cell{"bill_no", BillNumberValue(l.BillNumber)},
			Cell{"bill_amt", l.Amount},
			Cell{"pending_amt", pending},
			Cell{"status", l.Status},
		))
	}
	return rows
}

// OrderFormRows lays out undelivered order forms
func OrderFormRows(lines []OrderLine) []Row {
	rows := make([]Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, NewRow(
			Cell{"order_no", l.OrderNumber},
			Cell{"order_date", FormatDate(l.OrderDate)},
			Cell{"supp_name", l.SupplierName},
			Cell{"supp_address", l.SupplierAddress},
			Cell{"supp_phno.", l.SupplierPhone},
			Cell{"party_name", l.PartyName},
			Cell{"status", l.Status},
		))
	}
	return rows
}
