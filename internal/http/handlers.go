package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"amzledger/internal/core"
	"amzledger/internal/log"
	"amzledger/internal/services"
	"amzledger/internal/storage"
)

type typeTotalDTO struct {
	Type       string  `json:"type"`
	TotalCents int64   `json:"total_cents"`
	Total      float64 `json:"total"`
}

type monthlyRowDTO struct {
	Month  string           `json:"month"`
	Values map[string]int64 `json:"values"`
}

type monthlyReportDTO struct {
	Year    int             `json:"year"`
	Columns []string        `json:"columns"`
	Rows    []monthlyRowDTO `json:"rows"`
}

type skuRowDTO struct {
	SKU                         string  `json:"sku"`
	DateTime                    string  `json:"date_time"`
	UnitsSold                   int64   `json:"units_sold"`
	CumulativeProductSalesCents int64   `json:"cumulative_product_sales_cents"`
	CumulativeProductSales      float64 `json:"cumulative_product_sales"`
}

type skuLedgerDTO struct {
	Year   int         `json:"year"`
	SortBy string      `json:"sort_by"`
	Rows   []skuRowDTO `json:"rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleTypeTotals(w http.ResponseWriter, r *http.Request) {
	bundle, ok := s.bundle(w, r)
	if !ok {
		return
	}

	out := make([]typeTotalDTO, 0, len(bundle.TypeTotals))
	for _, tt := range bundle.TypeTotals {
		out = append(out, typeTotalDTO{
			Type:       tt.Type,
			TotalCents: tt.Total.Cents,
			Total:      tt.Total.Amount(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	bundle, ok := s.bundle(w, r)
	if !ok {
		return
	}

	out := monthlyReportDTO{
		Year:    bundle.Year,
		Columns: bundle.Monthly.Columns,
		Rows:    make([]monthlyRowDTO, 0, len(bundle.Monthly.Rows)),
	}
	for _, row := range bundle.Monthly.Rows {
		values := make(map[string]int64, len(row.Values))
		for col, v := range row.Values {
			values[col] = v
		}
		out.Rows = append(out.Rows, monthlyRowDTO{Month: row.Month.String(), Values: values})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSKULedger(w http.ResponseWriter, r *http.Request) {
	bundle, ok := s.bundle(w, r)
	if !ok {
		return
	}

	out := skuLedgerDTO{
		Year:   bundle.Year,
		SortBy: s.sortBy(r),
		Rows:   make([]skuRowDTO, 0, len(bundle.SKULedger)),
	}
	for _, row := range bundle.SKULedger {
		out.Rows = append(out.Rows, skuRowDTO{
			SKU:                         row.SKU,
			DateTime:                    row.Time.Format(time.RFC3339),
			UnitsSold:                   row.UnitsSold,
			CumulativeProductSalesCents: row.CumulativeProductSales.Cents,
			CumulativeProductSales:      row.CumulativeProductSales.Amount(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// bundle resolves the request's year and sort column and fetches the report
// bundle, writing the error response itself when anything fails.
func (s *Server) bundle(w http.ResponseWriter, r *http.Request) (*services.ReportBundle, bool) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}

	year := s.defaultYear
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid year: "+raw)
			return nil, false
		}
		year = parsed
	}

	bundle, err := s.reports.Reports(r.Context(), year, s.sortBy(r))
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidSortKey):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrNoImports):
			writeError(w, http.StatusNotFound, "no ledger imported yet")
		default:
			s.logger.ErrorContext(r.Context(), "Report computation failed",
				log.FieldPath, r.URL.Path,
				log.FieldError, err)
			writeError(w, http.StatusInternalServerError, "report computation failed")
		}
		return nil, false
	}
	return bundle, true
}

func (s *Server) sortBy(r *http.Request) string {
	if v := r.URL.Query().Get("sort_by"); v != "" {
		return v
	}
	if s.defaultSort != "" {
		return s.defaultSort
	}
	return core.DefaultSKUSortColumn
}
