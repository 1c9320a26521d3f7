package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nlazarte/libromayor/internal/kv/memory"
	"github.com/nlazarte/libromayor/internal/ledger"
	"github.com/nlazarte/libromayor/internal/service/book"
	"github.com/nlazarte/libromayor/internal/store"
)

const testCurrency = "ARS"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type entryResp struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	AmountMinor int64     `json:"amount_minor"`
	Amount      string    `json:"amount"`
	Direction   string    `json:"direction"`
	Category    string    `json:"category"`
	Loan        *struct {
		TotalToPayMinor int64  `json:"total_to_pay_minor"`
		InterestPercent string `json:"interest_percent"`
		Installments    int    `json:"installments"`
	} `json:"loan"`
	Postings []struct {
		Account     string `json:"account"`
		DebitMinor  int64  `json:"debit_minor"`
		CreditMinor int64  `json:"credit_minor"`
	} `json:"postings"`
	Warning string `json:"warning"`
}

type listResp struct {
	Items []entryResp `json:"items"`
	Count int         `json:"count"`
	Empty bool        `json:"empty"`
}

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func setup(t *testing.T) (*store.Store, http.Handler) {
	t.Helper()
	st := store.New(memory.New(), testCurrency)
	svc := book.New(st, testCurrency, 1000000000, nil, testLogger())
	return st, New(svc, st, testLogger()).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createIncome(t *testing.T, h http.Handler, amountMinor int64, description string) entryResp {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"direction":    "income",
		"category":     "normal",
		"amount_minor": amountMinor,
		"description":  description,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var er entryResp
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return er
}

func TestPostEntry_NormalIncome(t *testing.T) {
	_, h := setup(t)

	er := createIncome(t, h, 100000, "sueldo")
	if er.Amount != "1000.00" || len(er.Postings) != 2 {
		t.Fatalf("unexpected response: %+v", er)
	}
	if er.Postings[0].Account != "Caja" || er.Postings[0].DebitMinor != 100000 {
		t.Fatalf("first posting: %+v", er.Postings[0])
	}
	if er.Postings[1].Account != "Ingresos" || er.Postings[1].CreditMinor != 100000 {
		t.Fatalf("second posting: %+v", er.Postings[1])
	}
}

func TestPostEntry_InsufficientCash(t *testing.T) {
	_, h := setup(t)
	createIncome(t, h, 100000, "")

	rec := doJSON(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"direction":    "expense",
		"category":     "normal",
		"amount_minor": 150000,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var er errResp
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != "insufficient_cash" {
		t.Fatalf("code: %q", er.Code)
	}

	// store untouched, cash unchanged
	rec = doJSON(t, h, http.MethodGet, "/v1/balances", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("balances: %d", rec.Code)
	}
	var bal map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &bal); err != nil {
		t.Fatalf("decode balances: %v", err)
	}
	if bal["cash"] != "1000.00" {
		t.Fatalf("cash: %v", bal["cash"])
	}
}

func TestPostEntry_InvalidJSONAndUnknownFields(t *testing.T) {
	_, h := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/entries", strings.NewReader(`{"direction":`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("truncated JSON: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"direction":    "income",
		"category":     "normal",
		"amount_minor": 1000,
		"nope":         true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: expected 400, got %d", rec.Code)
	}
}

func TestLoanQuoteThenConfirm(t *testing.T) {
	_, h := setup(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/loans/quote", map[string]any{
		"amount_minor":       100000,
		"total_to_pay_minor": 120000,
		"installments":       12,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("quote: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var quote struct {
		TotalToPayMinor int64  `json:"total_to_pay_minor"`
		InterestPercent string `json:"interest_percent"`
		Installments    int    `json:"installments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if quote.InterestPercent != "20.00" {
		t.Fatalf("interest percent: %q", quote.InterestPercent)
	}

	rec = doJSON(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"direction":    "income",
		"category":     "loan",
		"amount_minor": 100000,
		"loan": map[string]any{
			"total_to_pay_minor": quote.TotalToPayMinor,
			"installments":       quote.Installments,
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("confirm: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var er entryResp
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if er.Loan == nil || er.Loan.InterestPercent != "20.00" {
		t.Fatalf("loan details: %+v", er.Loan)
	}
	if er.Postings[1].Account != "Prestamos" || er.Postings[1].CreditMinor != 120000 {
		t.Fatalf("loan credit posting: %+v", er.Postings[1])
	}
}

func TestLoanQuoteRejectsBadTerms(t *testing.T) {
	_, h := setup(t)
	rec := doJSON(t, h, http.MethodPost, "/v1/loans/quote", map[string]any{
		"amount_minor":       100000,
		"total_to_pay_minor": 90000,
		"installments":       12,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var er errResp
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != "invalid_loan_terms" {
		t.Fatalf("code: %q", er.Code)
	}
}

func TestPutEntry_ReplacesAndKeepsDate(t *testing.T) {
	_, h := setup(t)
	orig := createIncome(t, h, 100000, "antes")

	rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/v1/entries/%d", orig.ID), map[string]any{
		"direction":    "income",
		"category":     "normal",
		"amount_minor": 80000,
		"description":  "despues",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var er entryResp
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.ID != orig.ID {
		t.Fatalf("id changed on edit: %d -> %d", orig.ID, er.ID)
	}
	if !er.Date.Equal(orig.Date) {
		t.Fatalf("creation date not preserved: %v -> %v", orig.Date, er.Date)
	}
	if er.Description != "despues" || er.AmountMinor != 80000 {
		t.Fatalf("replacement not applied: %+v", er)
	}
}

func TestPutEntry_NotFound(t *testing.T) {
	_, h := setup(t)
	rec := doJSON(t, h, http.MethodPut, "/v1/entries/12345", map[string]any{
		"direction":    "income",
		"category":     "normal",
		"amount_minor": 1000,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteEntry(t *testing.T) {
	_, h := setup(t)
	er := createIncome(t, h, 100000, "")

	rec := doJSON(t, h, http.MethodDelete, fmt.Sprintf("/v1/entries/%d", er.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/v1/entries/%d", er.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestListEntries_MonthFilter(t *testing.T) {
	st, h := setup(t)

	march := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	seed := func(id int64, date time.Time) {
		e := ledger.Entry{
			ID: id, Date: date,
			Amount:    ledger.FromMinor(testCurrency, 1000),
			Direction: ledger.DirectionIncome,
			Category:  ledger.CategoryNormal,
			Postings: []ledger.Posting{
				{Account: ledger.AccountCaja, Debit: ledger.FromMinor(testCurrency, 1000), Credit: ledger.Zero(testCurrency)},
				{Account: ledger.AccountIngresos, Debit: ledger.Zero(testCurrency), Credit: ledger.FromMinor(testCurrency, 1000)},
			},
		}
		if _, err := st.Upsert(context.Background(), id, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	seed(1, march)
	seed(2, march.AddDate(0, 0, 5))
	seed(3, april)

	rec := doJSON(t, h, http.MethodGet, "/v1/entries?year=2026&month=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list march: %d", rec.Code)
	}
	var lr listResp
	if err := json.Unmarshal(rec.Body.Bytes(), &lr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if lr.Count != 2 || lr.Empty {
		t.Fatalf("march: %+v", lr)
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/entries?year=2026&month=5", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &lr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if lr.Count != 0 || !lr.Empty {
		t.Fatalf("empty month should carry the empty flag: %+v", lr)
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/entries?year=2026", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("half-specified month filter: expected 400, got %d", rec.Code)
	}
}

func TestExportMonth(t *testing.T) {
	st, h := setup(t)

	march := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	e := ledger.Entry{
		ID: 1, Date: march, Description: "sueldo",
		Amount:    ledger.FromMinor(testCurrency, 100000),
		Direction: ledger.DirectionIncome,
		Category:  ledger.CategoryNormal,
		Postings: []ledger.Posting{
			{Account: ledger.AccountCaja, Debit: ledger.FromMinor(testCurrency, 100000), Credit: ledger.Zero(testCurrency)},
			{Account: ledger.AccountIngresos, Debit: ledger.Zero(testCurrency), Credit: ledger.FromMinor(testCurrency, 100000)},
		},
	}
	if _, err := st.Upsert(context.Background(), 1, e); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/v1/entries/export?year=2026&month=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "libro_3_2026.csv") {
		t.Fatalf("content disposition: %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "Fecha,Descripcion,Cuenta,Debe,Haber") {
		t.Fatalf("csv body: %q", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/entries/export?year=2026&month=4", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty month export: expected 404, got %d", rec.Code)
	}
	var er errResp
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != "no_movements" {
		t.Fatalf("code: %q", er.Code)
	}
}

func TestBalancesAfterLoanAndDebt(t *testing.T) {
	_, h := setup(t)
	createIncome(t, h, 100000, "")

	rec := doJSON(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"direction":    "income",
		"category":     "debt",
		"amount_minor": 50000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("debt income: %d: %s", rec.Code, rec.Body.String())
	}
	var er entryResp
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(er.Postings) != 1 || er.Postings[0].Account != "Deudas" || er.Postings[0].CreditMinor != 50000 {
		t.Fatalf("debt income should be a single credit posting: %+v", er.Postings)
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/balances", nil)
	var bal struct {
		Cash            string `json:"cash"`
		DebtOutstanding string `json:"debt_outstanding"`
		NetWorth        string `json:"net_worth"`
		CashPositive    bool   `json:"cash_positive"`
		Currency        string `json:"currency"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &bal); err != nil {
		t.Fatalf("decode balances: %v", err)
	}
	if bal.Cash != "1000.00" || bal.DebtOutstanding != "500.00" || bal.NetWorth != "500.00" {
		t.Fatalf("balances: %+v", bal)
	}
	if !bal.CashPositive || bal.Currency != testCurrency {
		t.Fatalf("flags: %+v", bal)
	}
}

func TestHealthEndpoints(t *testing.T) {
	_, h := setup(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, h, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
