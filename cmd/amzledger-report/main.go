// Command amzledger-report renders the yearly reports for a transaction
// export on the terminal, or hands the export to the import worker over AMQP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"amzledger/internal/amqp"
	"amzledger/internal/config"
	"amzledger/internal/core"
	"amzledger/internal/source/csvfile"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	var (
		file     = flag.String("file", cfg.CSVPath, "path to the transaction CSV export")
		year     = flag.Int("year", cfg.ReportYear, "reporting year")
		sortBy   = flag.String("sort", cfg.SKUSortColumn, "sort column for the SKU ledger")
		skipRows = flag.Int("skip-rows", cfg.CSVSkipRows, "preamble rows before the header")
		publish  = flag.Bool("publish", false, "publish an import request instead of rendering")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "missing -file: path to a transaction CSV export")
		flag.Usage()
		os.Exit(2)
	}

	if *publish {
		if err := publishImport(cfg, *file, *skipRows); err != nil {
			fmt.Fprintf(os.Stderr, "publish import request: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("import request for %s published to %s\n", *file, cfg.AMQPQueue)
		return
	}

	if err := run(*file, *year, *sortBy, *skipRows, cfg.TimezoneTokens); err != nil {
		fmt.Fprintf(os.Stderr, "amzledger-report: %v\n", err)
		os.Exit(1)
	}
}

func publishImport(cfg *config.Config, path string, skipRows int) error {
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.PublishImportRequest(context.Background(), amqp.NewImportRequest(path, skipRows))
}

func run(file string, year int, sortBy string, skipRows int, tzTokens []string) error {
	ctx := context.Background()

	table, err := csvfile.New(file, skipRows).ReadTable(ctx)
	if err != nil {
		return err
	}

	norm := core.NewNormalizer(core.NormalizerConfig{TimezoneTokens: tzTokens})
	ledger := norm.Normalize(table)
	window := core.NewYearWindow(year)
	filtered := core.FilterWindow(ledger, window)

	totals := core.TypeTotals(ledger)
	monthly := core.MergeMonthly(core.MonthlyUnits(filtered, window), core.MonthlySummary(filtered, window))
	skus, err := core.BuildSKULedger(filtered, window, sortBy)
	if err != nil {
		return err
	}

	fmt.Printf("Transaction report %d: %s (%d rows, %d in window)\n\n",
		year, file, len(ledger.Records), len(filtered.Records))

	renderTypeTotals(totals)
	renderMonthly(monthly)
	renderSKULedger(skus)
	return nil
}

func renderTypeTotals(totals []core.TypeTotal) {
	fmt.Println("Totals by type")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tTOTAL")
	for _, tt := range totals {
		fmt.Fprintf(w, "%s\t%.2f\n", tt.Type, tt.Total.Amount())
	}
	w.Flush()
	fmt.Println()
}

func renderMonthly(table core.MonthlyTable) {
	fmt.Println("Monthly summary")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprint(w, "MONTH")
	for _, col := range table.Columns {
		fmt.Fprintf(w, "\t%s", col)
	}
	fmt.Fprintln(w)

	for _, row := range table.Rows {
		fmt.Fprint(w, row.Month.String())
		for _, col := range table.Columns {
			if col == core.ColUnitsSold {
				fmt.Fprintf(w, "\t%d", row.Value(col))
			} else {
				fmt.Fprintf(w, "\t%.2f", float64(row.Value(col))/100)
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()
}

func renderSKULedger(rows []core.SKULedgerRow) {
	fmt.Println("SKU ledger")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tDATE\tUNITS SOLD\tCUMULATIVE SALES")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n",
			row.SKU,
			row.Time.Format("2006-01-02 15:04:05"),
			row.UnitsSold,
			row.CumulativeProductSales.Amount())
	}
	w.Flush()
}
