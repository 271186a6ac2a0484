package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultTimezoneTokens are the timezone abbreviations stripped from raw
// timestamps before parsing. Merchant exports suffix local Pacific time.
var DefaultTimezoneTokens = []string{"PST", "PDT"}

// DefaultTimeLayouts are tried in order when parsing a cleaned timestamp.
var DefaultTimeLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"Jan 2, 2006 3:04:05 PM",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizerConfig configures timestamp handling. Zero values fall back to
// the defaults above.
type NormalizerConfig struct {
	TimezoneTokens []string
	TimeLayouts    []string
}

// Normalizer turns raw tables into ledgers: timestamps parsed, numeric fields
// coerced, failures recorded as nil so they contribute zero to sums.
type Normalizer struct {
	tzTokens []string
	layouts  []string
}

// NewNormalizer creates a Normalizer from cfg.
func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	tokens := cfg.TimezoneTokens
	if len(tokens) == 0 {
		tokens = DefaultTimezoneTokens
	}
	layouts := cfg.TimeLayouts
	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts
	}
	return &Normalizer{tzTokens: tokens, layouts: layouts}
}

// Normalize produces a Ledger from a raw table. The input table is left
// untouched; columns beyond the recognized set are ignored here and remain
// available to the caller on the original table.
func (n *Normalizer) Normalize(t Table) Ledger {
	cols := ColumnSet{
		Type:         t.HasColumn(ColType),
		Total:        t.HasColumn(ColTotal),
		DateTime:     t.HasColumn(ColDateTime),
		Quantity:     t.HasColumn(ColQuantity),
		SKU:          t.HasColumn(ColSKU),
		OrderID:      t.HasColumn(ColOrderID),
		SellingFees:  t.HasColumn(ColSellingFees),
		ProductSales: t.HasColumn(ColProductSales),
	}

	idxType := t.columnIndex(ColType)
	idxTotal := t.columnIndex(ColTotal)
	idxTime := t.columnIndex(ColDateTime)
	idxQty := t.columnIndex(ColQuantity)
	idxSKU := t.columnIndex(ColSKU)
	idxOrder := t.columnIndex(ColOrderID)
	idxFees := t.columnIndex(ColSellingFees)
	idxSales := t.columnIndex(ColProductSales)

	records := make([]Record, 0, t.Len())
	for i := range t.Rows {
		rec := Record{
			Type:    strings.TrimSpace(t.cell(i, idxType)),
			SKU:     strings.TrimSpace(t.cell(i, idxSKU)),
			OrderID: strings.TrimSpace(t.cell(i, idxOrder)),
		}
		if cols.Total {
			rec.Total = parseOptionalMoney(t.cell(i, idxTotal))
		}
		if cols.DateTime {
			rec.Time = n.parseTime(t.cell(i, idxTime))
		}
		if cols.Quantity {
			rec.Quantity = parseOptionalInt(t.cell(i, idxQty))
		}
		if cols.SellingFees {
			rec.SellingFees = parseOptionalMoney(t.cell(i, idxFees))
		}
		if cols.ProductSales {
			rec.ProductSales = parseOptionalMoney(t.cell(i, idxSales))
		}
		records = append(records, rec)
	}

	return Ledger{Records: records, Columns: cols}
}

// parseTime strips timezone tokens, trims, and tries the configured layouts.
// Returns nil when no layout matches.
func (n *Normalizer) parseTime(s string) *time.Time {
	for _, tok := range n.tzTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}
	for _, layout := range n.layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

func parseOptionalMoney(s string) *Money {
	m, err := ParseMoney(s)
	if err != nil {
		return nil
	}
	return &m
}

// parseOptionalInt coerces integer-like strings. Decimal representations of
// whole numbers ("2.0") are accepted; anything else is nil.
func parseOptionalInt(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		v := int64(f)
		return &v
	}
	return nil
}
