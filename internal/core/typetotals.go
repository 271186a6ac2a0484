package core

import "sort"

// TypeTotals sums `total` grouped by transaction type over the full,
// unwindowed ledger. Nil totals contribute zero. One row per type present in
// the data; no types are synthesized. Output is ordered lexicographically by
// type for reproducibility.
func TypeTotals(l Ledger) []TypeTotal {
	sums := make(map[string]int64)
	order := make([]string, 0)
	for _, rec := range l.Records {
		if _, seen := sums[rec.Type]; !seen {
			order = append(order, rec.Type)
			sums[rec.Type] = 0
		}
		if rec.Total != nil {
			sums[rec.Type] += rec.Total.Cents
		}
	}

	sort.Strings(order)
	out := make([]TypeTotal, 0, len(order))
	for _, typ := range order {
		out = append(out, TypeTotal{Type: typ, Total: Money{Cents: sums[typ]}})
	}
	return out
}
