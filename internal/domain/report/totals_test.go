package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(ledger.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestKhataSubheading(t *testing.T) {
	spec := KindKhata.Spec()
	data := KhataRows([]KhataBill{{BillNumber: "1001", BillDate: day("2024-01-01"), Amount: 1000, Status: "N"}})
	parts := KhataPartRows([]ledger.Credit{{MemoNumber: 102301, MemoDate: day("2024-01-02"), MemoAmount: 250, LineAmount: 250}})

	rows, collisions := JoinParts(spec, data, parts)
	assert.Empty(t, collisions)

	sub, diag := BuildSubheading(spec, "Supplier Name: s", rows, DefaultBuckets(), true)
	assert.True(t, diag.Empty())

	out, err := json.Marshal(sub)
	require.NoError(t, err)
	expected := `{"title":"Supplier Name: s","dataRows":[` +
		`{"bill_no":1001,"bill_date":"01/01/2024","bill_amt":"1,000","bill_status":"N","memo_no":"","memo_amt":"","memo_date":"","chk_amt":"","memo_type":""},` +
		`{"memo_no":102301,"memo_date":"02/01/2024","chk_amt":"250","memo_amt":"250","memo_type":"PR"}],` +
		`"specialRows":[` +
		`{"name":"Subtotal","value":"1,000","column":"bill_amt","numeric":1000,"beforeData":false},` +
		`{"name":"Subtotal","value":"250","column":"memo_amt","numeric":250,"beforeData":false},` +
		`{"name":"0.00% GR (-)","value":"- 0","column":"memo_amt","numeric":0,"beforeData":false},` +
		`{"name":"0.00% Less (-)","value":"- 0","column":"memo_amt","numeric":0,"beforeData":false},` +
		`{"name":"Total Paid (=)","value":"250","column":"memo_amt","numeric":250,"beforeData":false},` +
		`{"name":"Paid+GR (-)","value":"- 250","column":"bill_amt","numeric":250,"beforeData":false},` +
		`{"name":"Pending (=)","value":"750","column":"bill_amt","numeric":750,"beforeData":false}],` +
		`"displayOnIndex":true}`
	assert.Equal(t, expected, string(out))
}

func TestKhataTotals_GRAndLess(t *testing.T) {
	rows := KhataRows([]KhataBill{{
		BillNumber: "9",
		BillDate:   day("2024-01-01"),
		Amount:     1000,
		Status:     "F",
		Lines: []KhataMemoLine{
			{MemoNumber: 1, MemoDate: day("2024-01-05"), LineAmount: 100, MemoAmount: 800, Type: "G"},
			{MemoNumber: 1, MemoDate: day("2024-01-05"), LineAmount: 100, MemoAmount: 800, Type: "D"},
			{MemoNumber: 1, MemoDate: day("2024-01-05"), LineAmount: 800, MemoAmount: 800, Type: "F"},
		},
	}})
	require.Len(t, rows, 3)

	special, errs := TotalRows(KindKhata.Spec(), rows, DefaultBuckets())
	assert.Empty(t, errs)
	names := make([]string, len(special))
	for i, s := range special {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Subtotal", "Subtotal", "10.00% GR (-)", "10.00% Less (-)", "Total Paid (=)", "Paid+GR (-)", "Pending (=)"}, names)
	assert.Equal(t, int64(800), special[4].Numeric)
	assert.Equal(t, int64(0), special[6].Numeric)
}

func TestKhataTotals_BadColumnIsOmitted(t *testing.T) {
	rows := []Row{
		NewRow(Cell{"bill_amt", "oops"}, Cell{"memo_amt", int64(10)}, Cell{"memo_type", "F"}),
	}
	special, errs := TotalRows(KindKhata.Spec(), rows, DefaultBuckets())
	require.Len(t, errs, 1)
	assert.Equal(t, "bill_amt", errs[0].Column)
	for _, s := range special {
		assert.NotEqual(t, "bill_amt", s.Column)
	}
	assert.Len(t, special, 4)
}

func TestPaymentListTotals(t *testing.T) {
	rows := []Row{
		NewRow(Cell{"part_amt", int64(100)}, Cell{"bill_amt", int64(1000)}, Cell{"days", 10}),
		NewRow(Cell{"bill_amt", int64(200)}, Cell{"days", 60}),
		NewRow(Cell{"bill_amt", int64(300)}, Cell{"days", 120}),
		NewRow(Cell{"bill_amt", int64(400)}, Cell{"days", 121}),
	}
	special, errs := TotalRows(KindPaymentList.Spec(), rows, DefaultBuckets())
	assert.Empty(t, errs)

	type pair struct {
		name    string
		numeric int64
		value   string
	}
	var got []pair
	for _, s := range special {
		got = append(got, pair{s.Name, s.Numeric, s.Value})
	}
	assert.Equal(t, []pair{
		{"Total (=)", 100, "100"},
		{"<60 days (+)", 1000, "1,000"},
		{"60-120 days (+)", 500, "500"},
		{">120 days (+)", 400, "400"},
		{"Subtotal (=)", 1900, "1,900"},
		{"Part (-)", 100, "- 100"},
		{"Pending (=)", 1800, "1,800"},
	}, got)
}

func TestSupplierRegisterTotals(t *testing.T) {
	rows := RegisterRows([]RegisterLine{
		{BillDate: day("2024-01-01"), PartyName: "p", BillNumber: "1", Amount: 1000, Pending: 1000, Status: "N"},
		{BillDate: day("2024-01-02"), PartyName: "p", BillNumber: "2", Amount: 500, Pending: 300, Status: "F"},
	})
	v, _ := rows[1].Get("pending_amt")
	assert.Equal(t, int64(0), v)

	special, errs := TotalRows(KindSupplierRegister.Spec(), rows, DefaultBuckets())
	assert.Empty(t, errs)
	require.Len(t, special, 2)
	assert.Equal(t, "Total (=) ", special[0].Name)
	assert.Equal(t, "1,500", special[0].Value)
	assert.Equal(t, "Pending (=) ", special[1].Name)
	assert.Equal(t, int64(1000), special[1].Numeric)
}

func TestOrderFormHasNoTotals(t *testing.T) {
	rows := OrderFormRows([]OrderLine{{OrderNumber: 4, OrderDate: day("2024-03-01"), SupplierName: "s", PartyName: "p", Status: "N"}})
	special, errs := TotalRows(KindOrderForm.Spec(), rows, DefaultBuckets())
	assert.Empty(t, special)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"order_no", "order_date", "supp_name", "supp_address", "supp_phno.", "party_name", "status"}, rows[0].Keys())
}
