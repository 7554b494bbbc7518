package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finanzas/internal/core"
	"finanzas/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type memStore struct {
	items []core.Transaction
}

func (m *memStore) List(_ context.Context) ([]core.Transaction, error) {
	return append([]core.Transaction(nil), m.items...), nil
}

func (m *memStore) Add(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	m.items = append(m.items, tx)
	return tx, nil
}

func (m *memStore) Remove(_ context.Context, id string) (bool, error) {
	for i, tx := range m.items {
		if tx.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) RemoveAll(_ context.Context) error {
	m.items = nil
	return nil
}

func newTestServer(st *memStore) *Server {
	txService := services.NewTransactionService(st, nil)
	return NewServer(":0",
		txService,
		services.NewImportService(txService),
		services.NewReportService(txService))
}

func doRequest(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndListTransactions(t *testing.T) {
	st := &memStore{}
	s := newTestServer(st)
	defer s.Shutdown(context.Background())

	body := `{"type":"ingreso","amount":1000,"description":"Salario","date":"2024-06-01"}`
	rec := doRequest(t, s, httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data core.Transaction `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Data.ID == "" {
		t.Error("created transaction has no ID")
	}
	if created.Data.Type != core.Income {
		t.Errorf("type = %s, want income", created.Data.Type)
	}

	rec = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
	var listed struct {
		Data []core.Transaction `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Data) != 1 {
		t.Fatalf("listed %d transactions, want 1", len(listed.Data))
	}
}

func TestCreateTransaction_LocalizedFields(t *testing.T) {
	st := &memStore{}
	s := newTestServer(st)
	defer s.Shutdown(context.Background())

	body := `{"tipo":"gasto","monto":"200,50","descripcion":"Cafe","fecha":"2024-06-02"}`
	rec := doRequest(t, s, httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data core.Transaction `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Data.Type != core.Expense {
		t.Errorf("type = %s, want expense", created.Data.Type)
	}
	if !created.Data.Amount.Equal(decimal.RequireFromString("200.5")) {
		t.Errorf("amount = %s, want 200.5", created.Data.Amount)
	}
	if created.Data.Description != "Cafe" {
		t.Errorf("description = %q, want Cafe", created.Data.Description)
	}
}

func TestCreateTransaction_BadPayloads(t *testing.T) {
	s := newTestServer(&memStore{})
	defer s.Shutdown(context.Background())

	tests := []struct {
		name string
		body string
	}{
		{name: "broken json", body: `{"type":`},
		{name: "bad date", body: `{"type":"gasto","amount":10,"description":"x","date":"06/01/2024"}`},
		{name: "bad amount", body: `{"type":"gasto","amount":"abc","description":"x","date":"2024-06-01"}`},
		{name: "negative amount", body: `{"type":"gasto","amount":-500,"description":"x","date":"2024-06-01"}`},
		{name: "negative amount text", body: `{"type":"gasto","amount":"$-500","description":"x","date":"2024-06-01"}`},
		{name: "empty description", body: `{"type":"gasto","amount":10,"description":"","date":"2024-06-01"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRemoveTransaction(t *testing.T) {
	st := &memStore{}
	s := newTestServer(st)
	defer s.Shutdown(context.Background())

	tx, err := st.Add(context.Background(), core.Transaction{
		Type:        core.Expense,
		Amount:      decimal.RequireFromString("200.5"),
		Description: "Cafe",
		Date:        core.NewDate(2024, 6, 2),
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	rec := doRequest(t, s, httptest.NewRequest(http.MethodDelete, "/api/transactions/"+tx.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"removed":true`) {
		t.Errorf("body = %s, want removed:true", rec.Body.String())
	}

	// Removing again reports removed:false, not an error.
	rec = doRequest(t, s, httptest.NewRequest(http.MethodDelete, "/api/transactions/"+tx.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("second DELETE status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"removed":false`) {
		t.Errorf("body = %s, want removed:false", rec.Body.String())
	}
}

func TestRemoveAllTransactions(t *testing.T) {
	st := &memStore{}
	s := newTestServer(st)
	defer s.Shutdown(context.Background())

	st.Add(context.Background(), core.Transaction{
		Type: core.Income, Amount: decimal.RequireFromString("10"),
		Description: "a", Date: core.NewDate(2024, 6, 1),
	})

	rec := doRequest(t, s, httptest.NewRequest(http.MethodDelete, "/api/transactions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d, want 200", rec.Code)
	}
	if len(st.items) != 0 {
		t.Errorf("store still has %d items", len(st.items))
	}
}

func buildImportBody(t *testing.T, rows [][]interface{}) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []string{"tipo", "monto", "descripcion", "fecha"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	xlsxBuf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "import.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(xlsxBuf.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	return &body, mw.FormDataContentType()
}

func TestImport(t *testing.T) {
	st := &memStore{}
	s := newTestServer(st)
	defer s.Shutdown(context.Background())

	body, contentType := buildImportBody(t, [][]interface{}{
		{"ingreso", 1000, "Salario", "1/6/2024"},
		{"gasto", "200,50", "Cafe", "2/6/2024"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, s, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("import status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(st.items) != 2 {
		t.Errorf("store has %d items after import, want 2", len(st.items))
	}
}

func TestImport_BadRowIsRejected(t *testing.T) {
	st := &memStore{}
	s := newTestServer(st)
	defer s.Shutdown(context.Background())

	body, contentType := buildImportBody(t, [][]interface{}{
		{"ingreso", 1000, "Salario", "31/02/2024"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, s, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("import status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
	if len(st.items) != 0 {
		t.Errorf("store has %d items after rejected import, want 0", len(st.items))
	}
}

func TestSummary(t *testing.T) {
	st := &memStore{}
	s := newTestServer(st)
	defer s.Shutdown(context.Background())

	st.Add(context.Background(), core.Transaction{
		Type: core.Income, Amount: decimal.RequireFromString("1000"),
		Description: "Salario", Date: core.NewDate(2024, 6, 1),
	})
	st.Add(context.Background(), core.Transaction{
		Type: core.Expense, Amount: decimal.RequireFromString("200.5"),
		Description: "Cafe", Date: core.NewDate(2024, 6, 2),
	})

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data summaryResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if resp.Data.Totals.Income != "1000" {
		t.Errorf("income = %s, want 1000", resp.Data.Totals.Income)
	}
	if resp.Data.Totals.Expense != "200.5" {
		t.Errorf("expense = %s, want 200.5", resp.Data.Totals.Expense)
	}
	if len(resp.Data.Balance) != 2 {
		t.Fatalf("balance points = %d, want 2", len(resp.Data.Balance))
	}
	if resp.Data.Balance[1].Balance != "799.5" {
		t.Errorf("final balance = %s, want 799.5", resp.Data.Balance[1].Balance)
	}
}

func TestSummary_Filters(t *testing.T) {
	st := &memStore{}
	s := newTestServer(st)
	defer s.Shutdown(context.Background())

	st.Add(context.Background(), core.Transaction{
		Type: core.Income, Amount: decimal.RequireFromString("1000"),
		Description: "Salario", Date: core.NewDate(2024, 6, 1),
	})
	st.Add(context.Background(), core.Transaction{
		Type: core.Expense, Amount: decimal.RequireFromString("200.5"),
		Description: "Cafe", Date: core.NewDate(2024, 6, 2),
	})
	st.Add(context.Background(), core.Transaction{
		Type: core.Expense, Amount: decimal.RequireFromString("80"),
		Description: "Taxi", Date: core.NewDate(2024, 7, 3),
	})

	get := func(t *testing.T, url string) summaryResponse {
		t.Helper()
		rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, url, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("summary status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Data summaryResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode summary: %v", err)
		}
		return resp.Data
	}

	t.Run("by type", func(t *testing.T) {
		got := get(t, "/api/summary?type=expense")
		if got.Totals.Income != "0" {
			t.Errorf("income = %s, want 0", got.Totals.Income)
		}
		if got.Totals.Expense != "280.5" {
			t.Errorf("expense = %s, want 280.5", got.Totals.Expense)
		}
	})

	t.Run("by localized type", func(t *testing.T) {
		got := get(t, "/api/summary?type=ingreso")
		if got.Totals.Income != "1000" {
			t.Errorf("income = %s, want 1000", got.Totals.Income)
		}
		if got.Totals.Expense != "0" {
			t.Errorf("expense = %s, want 0", got.Totals.Expense)
		}
	})

	t.Run("by month prefix", func(t *testing.T) {
		got := get(t, "/api/summary?month=2024-06")
		if len(got.Balance) != 2 {
			t.Fatalf("balance points = %d, want 2", len(got.Balance))
		}
		if got.Totals.Expense != "200.5" {
			t.Errorf("expense = %s, want 200.5", got.Totals.Expense)
		}
	})

	t.Run("by day prefix and type", func(t *testing.T) {
		got := get(t, "/api/summary?type=expense&month=2024-06-02")
		if len(got.Balance) != 1 {
			t.Fatalf("balance points = %d, want 1", len(got.Balance))
		}
		if got.Balance[0].Balance != "-200.5" {
			t.Errorf("balance = %s, want -200.5", got.Balance[0].Balance)
		}
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/summary?type=transferencia", nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestReportEndpoints(t *testing.T) {
	st := &memStore{}
	s := newTestServer(st)
	defer s.Shutdown(context.Background())

	st.Add(context.Background(), core.Transaction{
		Type: core.Income, Amount: decimal.RequireFromString("1000"),
		Description: "Salario", Date: core.NewDate(2024, 6, 1),
	})

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/reports/pdf?from=2024-06-01&to=2024-06-30", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("pdf status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("pdf response does not start with %PDF")
	}

	rec = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/reports/xlsx?from=2024-06-01&to=2024-06-30", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("xlsx status = %d, want 200", rec.Code)
	}

	// Empty range yields 404, not an empty file.
	rec = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/reports/pdf?from=2030-01-01&to=2030-12-31", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("empty range status = %d, want 404", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(&memStore{})
	defer s.Shutdown(context.Background())

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("readyz status = %d, want 200", rec.Code)
	}
}
