package extract

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXFile reads worksheets from a local workbook. It satisfies the same
// fetch contract as SheetsClient and exists for offline backfills: export
// the Google Sheet once, point the job at the file.
type XLSXFile struct {
	Path string
}

// FetchRawTable reads the named worksheet from the workbook on disk. The
// spreadsheet identifier is ignored; a workbook is its own namespace.
func (f *XLSXFile) FetchRawTable(ctx context.Context, _ string, worksheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wb, err := excelize.OpenFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("FetchRawTable: opening %s: %w", f.Path, err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(worksheet)
	if err != nil {
		return nil, fmt.Errorf("FetchRawTable: reading sheet %q: %w", worksheet, err)
	}
	return rows, nil
}
