package ledger

import (
	"errors"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/shared"
)

func toSelection(supplierIDs, partyIDs []int64, supplierAll, partyAll bool, from, to string) (ledger.Selection, error) {
	sel := ledger.Selection{
		SupplierIDs: supplierIDs,
		PartyIDs:    partyIDs,
		SupplierAll: supplierAll,
		PartyAll:    partyAll,
	}
	var err error
	if from != "" {
		if sel.Range.From, err = ledger.ParseDate(from); err != nil {
			return sel, err
		}
	}
	if to != "" {
		if sel.Range.To, err = ledger.ParseDate(to); err != nil {
			return sel, err
		}
	}
	if !sel.Range.From.IsZero() && !sel.Range.To.IsZero() && sel.Range.To.Before(sel.Range.From) {
		return sel, shared.NewDomainError("INVALID_RANGE", "The end date cannot be before the start date")
	}
	return sel, nil
}

// errorCode is the domain code of err, or INTERNAL
func errorCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL"
}
