package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"amzledger/internal/core"
	"amzledger/internal/log"
	"amzledger/internal/services"
	"amzledger/internal/source/memory"
)

func testServer() *Server {
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	svc := services.NewReportService(memory.NewSeeded(), core.NewNormalizer(core.NormalizerConfig{}), logger, 8, time.Minute)
	return NewServer(":0", svc, logger, 2024, "")
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, testServer(), http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %q, want ok", body["status"])
	}
}

func TestTypeTotalsEndpoint(t *testing.T) {
	rec := do(t, testServer(), http.MethodGet, "/api/reports/types")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	var totals []typeTotalDTO
	if err := json.NewDecoder(rec.Body).Decode(&totals); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(totals) != 5 {
		t.Fatalf("totals len = %d, want 5", len(totals))
	}
	if totals[1].Type != "Order" || totals[1].TotalCents != 5525 {
		t.Fatalf("totals[1] = %+v, want Order with 5525 cents", totals[1])
	}
}

func TestMonthlyEndpoint(t *testing.T) {
	rec := do(t, testServer(), http.MethodGet, "/api/reports/monthly?year=2024")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	var report monthlyReportDTO
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if report.Year != 2024 {
		t.Errorf("year = %d, want 2024", report.Year)
	}
	if len(report.Rows) != 12 {
		t.Fatalf("rows = %d, want 12", len(report.Rows))
	}
	if report.Rows[0].Month != "2024-01" {
		t.Errorf("first month = %q, want 2024-01", report.Rows[0].Month)
	}
	if got := report.Rows[0].Values[core.ColUnitsSold]; got != 3 {
		t.Errorf("January units_sold = %d, want 3", got)
	}
}

func TestSKULedgerEndpoint(t *testing.T) {
	s := testServer()

	rec := do(t, s, http.MethodGet, "/api/reports/skus?year=2024")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	var ledger skuLedgerDTO
	if err := json.NewDecoder(rec.Body).Decode(&ledger); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if ledger.SortBy != core.DefaultSKUSortColumn {
		t.Errorf("sort_by = %q, want %q", ledger.SortBy, core.DefaultSKUSortColumn)
	}
	if len(ledger.Rows) == 0 || ledger.Rows[0].SKU != "DEMO-2" {
		t.Fatalf("rows = %+v, want DEMO-2 first", ledger.Rows)
	}

	rec = do(t, s, http.MethodGet, "/api/reports/skus?sort_by=Profit")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for unknown sort column", rec.Code)
	}
}

func TestBadRequests(t *testing.T) {
	s := testServer()

	rec := do(t, s, http.MethodGet, "/api/reports/monthly?year=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for bad year", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/reports/types")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405 for POST", rec.Code)
	}
}
