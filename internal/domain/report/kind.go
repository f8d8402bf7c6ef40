package report

import (
	"strings"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/domain/shared"
)

// Kind identifies a report type
type Kind string

const (
	KindKhata              Kind = "khata_report"
	KindPaymentList        Kind = "payment_list"
	KindSupplierRegister   Kind = "supplier_register"
	KindOrderForm          Kind = "order_form"
	KindPaymentListSummary Kind = "payment_list_summary"
	KindGrandTotal         Kind = "grand_total_list"
)

// PartDisplayMode tells how unused credits join the data rows
type PartDisplayMode int

const (
	// PartNone leaves credits out
	PartNone PartDisplayMode = iota
	// PartAsRows appends one row per PR line after the data rows
	PartAsRows
	// PartAsColumns zips credit columns into the data rows by index
	PartAsColumns
)

// Spec is the static description of a report kind
type Spec struct {
	Kind           Kind
	Title          string
	HeaderRole     partner.Role
	SubheaderRole  partner.Role
	NumericColumns []string
	TotalColumns   []string
	PartMode       PartDisplayMode
	HeaderOnly     bool
	Cumulative     bool
}

var specs = map[Kind]Spec{
	KindKhata: {
		Kind:           KindKhata,
		Title:          "Khata Report",
		HeaderRole:     partner.RoleParty,
		SubheaderRole:  partner.RoleSupplier,
		NumericColumns: []string{"bill_amt", "memo_amt", "chk_amt"},
		TotalColumns:   []string{"bill_amt", "memo_amt"},
		PartMode:       PartAsRows,
	},
	KindPaymentList: {
		Kind:           KindPaymentList,
		Title:          "Payment List",
		HeaderRole:     partner.RoleParty,
		SubheaderRole:  partner.RoleSupplier,
		NumericColumns: []string{"bill_amt", "part_amt"},
		TotalColumns:   []string{"part_amt", "bill_amt"},
		PartMode:       PartAsColumns,
		Cumulative:     true,
	},
	KindSupplierRegister: {
		Kind:           KindSupplierRegister,
		Title:          "Supplier Register",
		HeaderRole:     partner.RoleSupplier,
		SubheaderRole:  partner.RoleParty,
		NumericColumns: []string{"bill_amt", "pending_amt"},
		TotalColumns:   []string{"bill_amt", "pending_amt"},
		HeaderOnly:     true,
	},
	KindOrderForm: {
		Kind:          KindOrderForm,
		Title:         "Order Form",
		HeaderRole:    partner.RoleSupplier,
		SubheaderRole: partner.RoleParty,
		HeaderOnly:    true,
	},
	KindPaymentListSummary: {
		Kind:           KindPaymentListSummary,
		Title:          "Payment List Summary",
		HeaderRole:     partner.RoleParty,
		SubheaderRole:  partner.RoleSupplier,
		NumericColumns: []string{"bill_amt", "pending_amt"},
		TotalColumns:   []string{"bill_amt", "pending_amt"},
	},
	KindGrandTotal: {
		Kind:           KindGrandTotal,
		Title:          "Grand Total List",
		HeaderRole:     partner.RoleParty,
		SubheaderRole:  partner.RoleSupplier,
		NumericColumns: []string{"bill_amt"},
		TotalColumns:   []string{"bill_amt"},
		HeaderOnly:     true,
	},
}

// ParseKind accepts either the kind key or the report title
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for k, spec := range specs {
		if string(k) == s || strings.EqualFold(spec.Title, s) {
			return k, nil
		}
	}
	return "", shared.NewDomainError("INVALID_REPORT", "Unknown report type: "+s)
}

// IsValid checks if the kind is known
func (k Kind) IsValid() bool {
	_, ok := specs[k]
	return ok
}

// Spec returns the description of the kind
func (k Kind) Spec() Spec {
	return specs[k]
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Kinds lists every report kind
func Kinds() []Kind {
	return []Kind{
		KindKhata,
		KindPaymentList,
		KindSupplierRegister,
		KindOrderForm,
		KindPaymentListSummary,
		KindGrandTotal,
	}
}
