package report

import (
	"strconv"
	"time"
)

// DateLayout is how dates appear inside report rows
const DateLayout = "02/01/2006"

// FormatDate renders t as DD/MM/YYYY, or "" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatNumericColumns applies Indian grouping to the numeric columns of
// every row. Blank cells stay blank. Cells that are not numbers are left as
// they are and reported.
func FormatNumericColumns(rows []Row, columns []string) []ColumnError {
	var errs []ColumnError
	for i := range rows {
		for _, column := range columns {
			v, ok := rows[i].Get(column)
			if !ok || IsEmptyValue(v) {
				continue
			}
			n, err := Int64Value(v)
			if err != nil {
				errs = append(errs, ColumnError{Column: column, Row: i, Err: err})
				continue
			}
			rows[i].Set(column, FormatIndianCurrency(strconv.FormatInt(n, 10), false))
		}
	}
	return errs
}

// PendingCumulative is the "Total Pending" figure of a Payment List block
func PendingCumulative(special []SpecialRow) (int64, bool) {
	for _, r := range special {
		if r.Name == "Pending (=)" {
			return r.Numeric, true
		}
	}
	return 0, false
}

// NewCumulative formats a cumulative figure
func NewCumulative(name string, value int64) *Cumulative {
	return &Cumulative{Name: name, Value: FormatAmount(value, false)}
}
