// Package gsheet reads a merchant ledger kept in a Google Sheet. The first
// row of the configured range is the header; every following row is one raw
// transaction record.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"amzledger/internal/core"
	"amzledger/internal/source"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client reads ledger tables from one spreadsheet range.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	ledgerRange   string
}

var _ source.TableReader = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Auth comes from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
// GOOGLE_LEDGER_RANGE defaults to "Transactions!A:H".
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	ledgerRange := strings.TrimSpace(os.Getenv("GOOGLE_LEDGER_RANGE"))
	if ledgerRange == "" {
		ledgerRange = "Transactions!A:H"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, ledgerRange: ledgerRange}, nil
}

// New creates a client with explicit parameters; used by the factory when the
// configuration was loaded centrally.
func New(ctx context.Context, spreadsheetID, ledgerRange string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id cannot be empty")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	if ledgerRange == "" {
		ledgerRange = "Transactions!A:H"
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, ledgerRange: ledgerRange}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	inlineJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	credFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inlineJSON == "" && credFile == "" {
		credFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inlineJSON != "":
		credentialsJSON = []byte(inlineJSON)
	case credFile != "":
		data, err := os.ReadFile(credFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// ReadTable fetches the ledger range and converts it to a raw table. Rows
// shorter than the header are padded with empty cells; rows longer are
// truncated, mirroring the CSV adapter's tolerance.
func (c *Client) ReadTable(ctx context.Context) (core.Table, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.ledgerRange).Context(ctx).Do()
	if err != nil {
		return core.Table{}, fmt.Errorf("read ledger range %q: %w", c.ledgerRange, err)
	}
	if len(resp.Values) == 0 {
		return core.Table{}, nil
	}

	header := toStrings(resp.Values[0])
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := core.NewTable(header...)
	for _, raw := range resp.Values[1:] {
		table.Append(toStrings(raw)...)
	}
	return table, nil
}

func toStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		switch v := cell.(type) {
		case string:
			out[i] = v
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[i] = strconv.FormatBool(v)
		case nil:
			out[i] = ""
		default:
			out[i] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
