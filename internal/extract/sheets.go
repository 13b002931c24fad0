package extract

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient fetches raw worksheet values through the Google Sheets API.
// Authentication uses a service account key passed verbatim from the
// environment; Application Default Credentials apply when the key is empty.
type SheetsClient struct {
	svc *sheets.Service
}

// NewSheetsClient creates a read-only Sheets API client.
func NewSheetsClient(ctx context.Context, serviceAccountJSON string) (*SheetsClient, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	if serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewSheetsClient: creating service: %w", err)
	}
	return &SheetsClient{svc: svc}, nil
}

// FetchRawTable returns every row of the worksheet as strings, formatted the
// way the sheet displays them, which is what the record builder expects.
func (c *SheetsClient) FetchRawTable(ctx context.Context, spreadsheetID, worksheet string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("FetchRawTable: reading %s!%s: %w", spreadsheetID, worksheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cellToString(cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func cellToString(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
