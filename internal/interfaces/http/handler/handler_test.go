package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	auditapp "github.com/khata/backend/internal/application/audit"
	ledgerapp "github.com/khata/backend/internal/application/ledger"
	partnerapp "github.com/khata/backend/internal/application/partner"
	printingapp "github.com/khata/backend/internal/application/printing"
	reportapp "github.com/khata/backend/internal/application/report"
	"github.com/khata/backend/internal/domain/audit"
	"github.com/khata/backend/internal/domain/report"
	"github.com/khata/backend/internal/infrastructure/cache"
	"github.com/khata/backend/internal/infrastructure/config"
	"github.com/khata/backend/internal/infrastructure/persistence"
	infra "github.com/khata/backend/internal/infrastructure/printing"
	"github.com/khata/backend/internal/interfaces/http/middleware"
	"github.com/khata/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type fakePrinter struct {
	calls int
}

func (p *fakePrinter) Print(_ context.Context, r *report.Report) (*infra.RenderResult, error) {
	p.calls++
	return &infra.RenderResult{PDFData: []byte("%PDF-1.4 " + r.Title), PageCount: 1}, nil
}

type apiEnv struct {
	engine   *gin.Engine
	db       *persistence.Database
	supplier int64
	party    int64
}

type envOptions struct {
	printer printingapp.Printer
	noPrint bool
	pdfMW   []gin.HandlerFunc
}

func newAPIEnv(t *testing.T, opts envOptions) *apiEnv {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	suppliers := persistence.NewGormSupplierRepository(db.DB)
	parties := persistence.NewGormPartyRepository(db.DB)
	repos := persistence.NewLedgerRepositories(db.DB)
	uow := persistence.NewGormUnitOfWork(db)
	names := cache.NewNameResolver(cache.NewInMemoryNameCache(), suppliers, parties, time.Minute, nil)

	reports := reportapp.NewReportService(
		persistence.NewGormReportSource(db.DB),
		persistence.NewGormEfficiencyRepository(db.DB),
		names, suppliers, parties, nil,
		reportapp.Options{Now: func() time.Time { return time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC) }},
	)
	var printing *printingapp.PrintService
	if !opts.noPrint {
		printing = printingapp.NewPrintService(reports, opts.printer, nil, 0, nil)
	}

	supplierSvc := partnerapp.NewSupplierService(suppliers, names)
	partySvc := partnerapp.NewPartyService(parties, names)
	handlers := &Handlers{
		Suppliers:    NewSupplierHandler(supplierSvc),
		Parties:      NewPartyHandler(partySvc),
		Bills:        NewBillHandler(ledgerapp.NewBillService(repos.Bills, uow, nil)),
		Memos:        NewMemoHandler(ledgerapp.NewSettlementService(repos.Memos, repos.Parts, uow, nil)),
		PartPayments: NewPartPaymentHandler(ledgerapp.NewPartPaymentService(repos.Parts)),
		OrderForms:   NewOrderFormHandler(ledgerapp.NewOrderFormService(repos.OrderForms)),
		Reports:      NewReportHandler(reports, printing),
		Banks:        NewBankHandler(partnerapp.NewBankService(persistence.NewGormBankRepository(db.DB))),
		Audit:        NewAuditHandler(auditapp.NewAuditService(repos.Audit)),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	system := NewSystemHandler("khata", "test", map[string]Pinger{"database": db})
	engine.GET("/health", system.Health)
	engine.GET("/ready", system.Ready)
	router.NewRouter(engine).Register(handlers.Groups(opts.pdfMW...)...).Setup()

	ctx := context.Background()
	s, err := supplierSvc.Create(ctx, partnerapp.CreatePartnerRequest{Name: "Sharma Textiles"})
	require.NoError(t, err)
	p, err := partySvc.Create(ctx, partnerapp.CreatePartnerRequest{Name: "Gupta Stores"})
	require.NoError(t, err)

	return &apiEnv{engine: engine, db: db, supplier: s.ID, party: p.ID}
}

type envelope struct {
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data"`
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Details   []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func (e *apiEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "application/pdf" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func (e *apiEnv) pair() string {
	return fmt.Sprintf("supplier_id=%d&party_id=%d", e.supplier, e.party)
}

func (e *apiEnv) insertBill(t *testing.T, number, date string, amount int64) ledgerapp.BillResponse {
	t.Helper()
	w, env := e.do(t, http.MethodPost, "/api/v1/bills", ledgerapp.InsertBillRequest{
		SupplierID: e.supplier, PartyID: e.party, BillNumber: number, RegisterDate: date, Amount: amount,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[ledgerapp.BillResponse](t, env.Data)
}

func TestPartnerAPI(t *testing.T) {
	e := newAPIEnv(t, envOptions{})

	w, env := e.do(t, http.MethodPost, "/api/v1/suppliers", partnerapp.CreatePartnerRequest{Name: "Verma Silks", PhoneNumber: "98111"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[partnerapp.PartnerResponse](t, env.Data)
	assert.Equal(t, "Verma Silks", created.Name)

	w, env = e.do(t, http.MethodPost, "/api/v1/suppliers", partnerapp.CreatePartnerRequest{Name: "Verma Silks"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "ALREADY_EXISTS", env.Code)
	assert.NotEmpty(t, env.RequestID)

	w, env = e.do(t, http.MethodGet, "/api/v1/suppliers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]partnerapp.PartnerResponse](t, env.Data), 2)

	name := "Verma Silk House"
	w, env = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/suppliers/%d", created.ID), partnerapp.UpdatePartnerRequest{Name: &name})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[partnerapp.PartnerResponse](t, env.Data)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "98111", updated.PhoneNumber)

	w, _ = e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/suppliers/%d", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = e.do(t, http.MethodGet, "/api/v1/parties/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)

	w, env = e.do(t, http.MethodGet, "/api/v1/parties/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
}

func TestBillAPI(t *testing.T) {
	e := newAPIEnv(t, envOptions{})
	bill := e.insertBill(t, "1021", "2024-04-01", 5000)
	assert.Equal(t, "N", bill.Status)
	assert.Equal(t, int64(5000), bill.Pending)

	t.Run("duplicate within the window", func(t *testing.T) {
		w, env := e.do(t, http.MethodPost, "/api/v1/bills", ledgerapp.InsertBillRequest{
			SupplierID: e.supplier, PartyID: e.party, BillNumber: "1021", RegisterDate: "2024-06-01", Amount: 10,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "DUPLICATE_BILL", env.Code)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		w, env := e.do(t, http.MethodPost, "/api/v1/bills", map[string]any{"supplier_id": e.supplier})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Code)
		fields := make([]string, 0, len(env.Details))
		for _, d := range env.Details {
			fields = append(fields, d.Field)
		}
		assert.Contains(t, fields, "bill_number")
		assert.Contains(t, fields, "amount")
	})

	t.Run("bad date", func(t *testing.T) {
		w, env := e.do(t, http.MethodPost, "/api/v1/bills", ledgerapp.InsertBillRequest{
			SupplierID: e.supplier, PartyID: e.party, BillNumber: "77", RegisterDate: "01/04/2024", Amount: 10,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_DATE", env.Code)
	})

	t.Run("retrieve by number", func(t *testing.T) {
		w, env := e.do(t, http.MethodGet, "/api/v1/bills?"+e.pair()+"&bill_number=1021", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, bill.ID, decode[ledgerapp.BillResponse](t, env.Data).ID)

		w, env = e.do(t, http.MethodGet, "/api/v1/bills?"+e.pair()+"&bill_number=1021&date=2024-05-01", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", env.Code)
	})

	t.Run("pending and update", func(t *testing.T) {
		w, env := e.do(t, http.MethodGet, "/api/v1/bills/pending?"+e.pair(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]ledgerapp.BillResponse](t, env.Data), 1)

		w, env = e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/bills/%d", bill.ID), ledgerapp.UpdateBillRequest{
			PartialAmount: 5000, Status: "F",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "F", decode[ledgerapp.BillResponse](t, env.Data).Status)

		w, env = e.do(t, http.MethodGet, "/api/v1/bills/pending?"+e.pair(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[[]ledgerapp.BillResponse](t, env.Data))
	})

	t.Run("delete", func(t *testing.T) {
		w, _ := e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/bills/%d", bill.ID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		w, _ = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/bills/%d", bill.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMemoAPI(t *testing.T) {
	e := newAPIEnv(t, envOptions{})
	bill := e.insertBill(t, "123456", "2023-06-19", 5000)

	w, env := e.do(t, http.MethodPost, "/api/v1/banks", partnerapp.CreateBankRequest{Name: "State Bank of India"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bank := decode[partnerapp.BankResponse](t, env.Data)

	w, env = e.do(t, http.MethodPost, "/api/v1/memos", ledgerapp.InsertMemoRequest{
		SupplierID: e.supplier, PartyID: e.party, MemoNumber: 1,
		RegisterDate: "2023-07-01", Mode: "Part", PartAmount: 1250,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	part := decode[ledgerapp.MemoResponse](t, env.Data)

	w, env = e.do(t, http.MethodGet, "/api/v1/part-payments/unused?"+e.pair(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ledgerapp.CreditResponse](t, env.Data), 1)

	id := bill.ID
	w, env = e.do(t, http.MethodPost, "/api/v1/memos", ledgerapp.InsertMemoRequest{
		SupplierID: e.supplier, PartyID: e.party, MemoNumber: 2,
		RegisterDate: "2023-08-01", Mode: "Full",
		Lines: []ledgerapp.MemoLineRequest{
			{BillID: &id, Type: "F"},
			{BillID: &id, Amount: 100, Type: "G"},
			{BillID: &id, Amount: 50, Type: "D"},
		},
		Payments:     []ledgerapp.MemoPaymentRequest{{BankID: bank.ID, ChequeNumber: "000123", Amount: 3600}},
		SelectedPart: []int64{part.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	full := decode[ledgerapp.MemoResponse](t, env.Data)
	assert.Equal(t, int64(4850), full.Amount)

	w, env = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/bills/%d", bill.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "F", decode[ledgerapp.BillResponse](t, env.Data).Status)

	w, env = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/part-payments/by-memo/%d", part.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[ledgerapp.PartPaymentResponse](t, env.Data).Used)

	w, env = e.do(t, http.MethodGet, "/api/v1/memos/by-number?"+e.pair()+"&memo_number=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, full.ID, decode[ledgerapp.MemoResponse](t, env.Data).ID)

	w, env = e.do(t, http.MethodGet, "/api/v1/memos?"+e.pair(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ledgerapp.MemoListItem](t, env.Data), 2)

	w, env = e.do(t, http.MethodPost, "/api/v1/memos/total", ledgerapp.TotalRequest{
		SupplierAll: true, PartyAll: true, From: "2023-01-01", To: "2023-12-31", Type: "G",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"total":100}`, string(env.Data))

	t.Run("a used credit blocks undoing its Part memo", func(t *testing.T) {
		w, env := e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/memos/%d", part.ID), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "PART_PAYMENT_ALREADY_USED", env.Code)
	})

	t.Run("undo the Full memo", func(t *testing.T) {
		w, _ := e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/memos/%d", full.ID), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w, env := e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/bills/%d", bill.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "N", decode[ledgerapp.BillResponse](t, env.Data).Status)
	})

	t.Run("audit trail of the undone memo", func(t *testing.T) {
		w, env := e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/audit/memo_entry/%d", full.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		entries := decode[[]audit.Entry](t, env.Data)
		require.Len(t, entries, 2)
		assert.Equal(t, audit.ActionDelete, entries[0].Action)
		assert.Equal(t, audit.ActionInsert, entries[1].Action)
	})

	t.Run("unknown bank", func(t *testing.T) {
		other := e.insertBill(t, "777", "2023-08-02", 100)
		w, env := e.do(t, http.MethodPost, "/api/v1/memos", ledgerapp.InsertMemoRequest{
			SupplierID: e.supplier, PartyID: e.party, MemoNumber: 8,
			RegisterDate: "2023-08-03", Mode: "Full",
			Lines:    []ledgerapp.MemoLineRequest{{BillID: &other.ID, Type: "F"}},
			Payments: []ledgerapp.MemoPaymentRequest{{BankID: bank.ID + 100, Amount: 100}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "DATA_ERROR", env.Code)
	})

	t.Run("bad memo mode", func(t *testing.T) {
		w, env := e.do(t, http.MethodPost, "/api/v1/memos", ledgerapp.InsertMemoRequest{
			SupplierID: e.supplier, PartyID: e.party, MemoNumber: 9,
			RegisterDate: "2023-07-01", Mode: "Half",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_MEMO_TYPE", env.Code)
	})
}

func TestBankAPI(t *testing.T) {
	e := newAPIEnv(t, envOptions{})

	w, env := e.do(t, http.MethodPost, "/api/v1/banks", partnerapp.CreateBankRequest{Name: "Axis Bank", Address: "MG Road"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	axis := decode[partnerapp.BankResponse](t, env.Data)
	assert.Equal(t, "MG Road", axis.Address)

	w, _ = e.do(t, http.MethodPost, "/api/v1/banks", partnerapp.CreateBankRequest{Name: "State Bank of India"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("duplicate name", func(t *testing.T) {
		w, env := e.do(t, http.MethodPost, "/api/v1/banks", partnerapp.CreateBankRequest{Name: "Axis Bank"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ALREADY_EXISTS", env.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		w, env := e.do(t, http.MethodPost, "/api/v1/banks", map[string]string{"address": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Code)
	})

	t.Run("list and lookup", func(t *testing.T) {
		w, env := e.do(t, http.MethodGet, "/api/v1/banks", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]partnerapp.BankResponse](t, env.Data), 2)

		w, env = e.do(t, http.MethodGet, "/api/v1/banks?name=Axis%20Bank", nil)
		require.Equal(t, http.StatusOK, w.Code)
		found := decode[[]partnerapp.BankResponse](t, env.Data)
		require.Len(t, found, 1)
		assert.Equal(t, axis.ID, found[0].ID)

		w, _ = e.do(t, http.MethodGet, "/api/v1/banks?name=Nowhere", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, env = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/banks/%d", axis.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Axis Bank", decode[partnerapp.BankResponse](t, env.Data).Name)
	})
}

func TestAuditAPI(t *testing.T) {
	e := newAPIEnv(t, envOptions{})
	bill := e.insertBill(t, "123456", "2024-04-01", 5000)

	w, _ := e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/bills/%d", bill.ID), ledgerapp.UpdateBillRequest{PartialAmount: 1000, Status: "P"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	t.Run("history", func(t *testing.T) {
		w, env := e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/audit/register_entry/%d", bill.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		entries := decode[[]audit.Entry](t, env.Data)
		require.Len(t, entries, 2)
		assert.Equal(t, audit.ActionUpdate, entries[0].Action)
		assert.Contains(t, entries[0].Changes, "partial_amount")
		assert.NotContains(t, entries[0].Changes, "amount")
	})

	t.Run("search", func(t *testing.T) {
		w, env := e.do(t, http.MethodGet, "/api/v1/audit?table_name=register_entry&action=update", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, decode[[]audit.Entry](t, env.Data), 1)

		w, env = e.do(t, http.MethodGet, "/api/v1/audit?table_name=memo_entry", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, string(env.Data))
	})

	t.Run("bad filters", func(t *testing.T) {
		w, env := e.do(t, http.MethodGet, "/api/v1/audit?action=MERGE", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_ACTION", env.Code)

		w, env = e.do(t, http.MethodGet, "/api/v1/audit?from=2024-04-30&to=2024-04-01", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_RANGE", env.Code)

		w, _ = e.do(t, http.MethodGet, "/api/v1/audit/register_entry/0", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderFormAPI(t *testing.T) {
	e := newAPIEnv(t, envOptions{})

	w, env := e.do(t, http.MethodPost, "/api/v1/order-forms", ledgerapp.InsertOrderFormRequest{
		SupplierID: e.supplier, PartyID: e.party, OrderFormNumber: 301, RegisterDate: "2024-04-02",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	form := decode[ledgerapp.OrderFormResponse](t, env.Data)
	assert.False(t, form.Delivered)

	w, env = e.do(t, http.MethodPost, fmt.Sprintf("/api/v1/order-forms/%d/delivered", form.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[ledgerapp.OrderFormResponse](t, env.Data).Delivered)

	w, env = e.do(t, http.MethodGet, "/api/v1/order-forms?"+e.pair()+"&order_form_number=301", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, form.ID, decode[ledgerapp.OrderFormResponse](t, env.Data).ID)

	w, _ = e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/order-forms/%d", form.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestReportAPI(t *testing.T) {
	printer := &fakePrinter{}
	e := newAPIEnv(t, envOptions{printer: printer})
	e.insertBill(t, "123456", "2024-04-01", 5000)

	req := reportapp.GenerateRequest{
		Kind:        "payment_list",
		SupplierIDs: []int64{e.supplier},
		PartyIDs:    []int64{e.party},
		From:        "2024-04-01",
		To:          "2024-04-30",
	}

	t.Run("kinds", func(t *testing.T) {
		w, env := e.do(t, http.MethodGet, "/api/v1/reports/kinds", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]reportapp.KindResponse](t, env.Data), len(report.Kinds()))
	})

	t.Run("json tree", func(t *testing.T) {
		w, env := e.do(t, http.MethodPost, "/api/v1/reports", req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		tree := decode[report.Report](t, env.Data)
		assert.Equal(t, "Payment List", tree.Title)
		require.Len(t, tree.Headings, 1)
		assert.Equal(t, "Party Name: Gupta Stores", tree.Headings[0].Title)
	})

	t.Run("unknown kind", func(t *testing.T) {
		bad := req
		bad.Kind = "ledger"
		w, env := e.do(t, http.MethodPost, "/api/v1/reports", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REPORT", env.Code)
	})

	t.Run("pdf inline", func(t *testing.T) {
		w, _ := e.do(t, http.MethodPost, "/api/v1/reports/pdf", req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="payment_list_`)
		assert.Equal(t, "1", w.Header().Get("X-Page-Count"))
		assert.Equal(t, "%PDF-1.4 Payment List", w.Body.String())
		assert.Equal(t, 1, printer.calls)
	})
}

func TestReportAPI_PrintingDisabled(t *testing.T) {
	req := reportapp.GenerateRequest{Kind: "payment_list", SupplierAll: true, PartyAll: true, From: "2024-04-01", To: "2024-04-30"}

	for name, opts := range map[string]envOptions{
		"no print service": {noPrint: true},
		"no printer":       {},
	} {
		t.Run(name, func(t *testing.T) {
			e := newAPIEnv(t, opts)
			w, env := e.do(t, http.MethodPost, "/api/v1/reports/pdf", req)
			assert.Equal(t, http.StatusNotImplemented, w.Code)
			assert.Equal(t, "PRINTING_DISABLED", env.Code)
		})
	}
}

func TestReportAPI_PDFRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	e := newAPIEnv(t, envOptions{printer: &fakePrinter{}, pdfMW: []gin.HandlerFunc{middleware.RateLimit(limiter)}})
	req := reportapp.GenerateRequest{Kind: "payment_list", SupplierAll: true, PartyAll: true, From: "2024-04-01", To: "2024-04-30"}

	w, _ := e.do(t, http.MethodPost, "/api/v1/reports/pdf", req)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := e.do(t, http.MethodPost, "/api/v1/reports/pdf", req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", env.Code)

	// the JSON report is not limited
	w, _ = e.do(t, http.MethodPost, "/api/v1/reports", req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSystemHandler(t *testing.T) {
	e := newAPIEnv(t, envOptions{})

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	e.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"database":"ok"}}`, w.Body.String())

	t.Run("failing dependency", func(t *testing.T) {
		engine := gin.New()
		h := NewSystemHandler("khata", "test", map[string]Pinger{
			"database": e.db,
			"redis":    PingFunc(func(context.Context) error { return errors.New("connection refused") }),
		})
		engine.GET("/ready", h.Ready)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"SERVICE_UNAVAILABLE"`)
	})

	t.Run("system info", func(t *testing.T) {
		engine := gin.New()
		h := NewSystemHandler("khata", "1.2.0", nil)
		engine.GET("/info", h.GetSystemInfo)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"version":"1.2.0"`)
	})
}
