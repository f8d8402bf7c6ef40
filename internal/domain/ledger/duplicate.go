package ledger

import "time"

// DuplicateWindowMonths is how far apart two bills with the same key must be
const DuplicateWindowMonths = 6

// MonthsApart returns the number of whole calendar months between a and b.
// A month only counts once the day of month has been reached again, clamped
// to the length of the later month: Jan 31 to Jul 30 is five months, Aug 31
// to Feb 29 is six.
func MonthsApart(a, b time.Time) int {
	a, b = DateOnly(a), DateOnly(b)
	if a.After(b) {
		a, b = b, a
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	if b.Day() < min(a.Day(), daysIn(b.Year(), b.Month())) {
		months--
	}
	return months
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CheckDuplicate rejects a bill whose key already exists on the same date or
// on any date less than DuplicateWindowMonths away. existing must share the
// bill's (bill_number, supplier, party) key.
func CheckDuplicate(bill *RegisterEntry, existing []RegisterEntry) error {
	for i := range existing {
		other := existing[i]
		if other.ID != 0 && other.ID == bill.ID {
			continue
		}
		if DateOnly(other.RegisterDate).Equal(DateOnly(bill.RegisterDate)) {
			return NewDuplicateBillError(bill.BillNumber, other.RegisterDate)
		}
		if MonthsApart(other.RegisterDate, bill.RegisterDate) < DuplicateWindowMonths {
			return NewDuplicateBillError(bill.BillNumber, other.RegisterDate)
		}
	}
	return nil
}
