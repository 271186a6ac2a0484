// Package services orchestrates the reporting pipeline: acquire a raw table,
// normalize once, filter once, then fan out the independent aggregations.
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"amzledger/internal/cache"
	"amzledger/internal/core"
	"amzledger/internal/log"
	"amzledger/internal/source"
)

// ReportBundle is one complete reporting run over the current ledger.
type ReportBundle struct {
	Year       int
	TypeTotals []core.TypeTotal
	Monthly    core.MonthlyTable
	SKULedger  []core.SKULedgerRow
	ComputedAt time.Time
}

// ReportService computes report bundles from a ledger source. Results are
// memoized per (year, sort key) until Invalidate or TTL expiry.
type ReportService struct {
	reader source.TableReader
	norm   *core.Normalizer
	cache  *cache.LRU[*ReportBundle]
	logger *log.Logger
}

// NewReportService wires a service. cacheSize/cacheTTL bound the memo.
func NewReportService(reader source.TableReader, norm *core.Normalizer, logger *log.Logger, cacheSize int, cacheTTL time.Duration) *ReportService {
	if norm == nil {
		norm = core.NewNormalizer(core.NormalizerConfig{})
	}
	return &ReportService{
		reader: reader,
		norm:   norm,
		cache:  cache.New[*ReportBundle](cacheSize, cacheTTL),
		logger: logger.WithComponent(log.ComponentReport),
	}
}

// Reports returns the full bundle for year, sorting the SKU ledger by
// sortBy (core.DefaultSKUSortColumn when empty). An unknown sort column
// propagates core.ErrInvalidSortKey.
func (s *ReportService) Reports(ctx context.Context, year int, sortBy string) (*ReportBundle, error) {
	if sortBy == "" {
		sortBy = core.DefaultSKUSortColumn
	}
	key := fmt.Sprintf("%d|%s", year, sortBy)
	if bundle, ok := s.cache.Get(key); ok {
		return bundle, nil
	}

	table, err := s.reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger table: %w", err)
	}

	ledger := s.norm.Normalize(table)
	window := core.NewYearWindow(year)
	// Filtered once, shared read-only: each aggregator applies its own
	// null-handling policy on top.
	filtered := core.FilterWindow(ledger, window)

	bundle := &ReportBundle{Year: year, ComputedAt: time.Now()}

	var g errgroup.Group
	g.Go(func() error {
		bundle.TypeTotals = core.TypeTotals(ledger) // all-time, unwindowed
		return nil
	})
	g.Go(func() error {
		units := core.MonthlyUnits(filtered, window)
		summary := core.MonthlySummary(filtered, window)
		bundle.Monthly = core.MergeMonthly(units, summary)
		return nil
	})
	g.Go(func() error {
		rows, err := core.BuildSKULedger(filtered, window, sortBy)
		if err != nil {
			return err
		}
		bundle.SKULedger = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Computed report bundle",
		log.FieldYear, year,
		log.FieldSortBy, sortBy,
		log.FieldRowCount, len(ledger.Records))

	s.cache.Set(key, bundle)
	return bundle, nil
}

// Invalidate drops all memoized bundles. Called after a new import.
func (s *ReportService) Invalidate() {
	s.cache.Purge()
}
