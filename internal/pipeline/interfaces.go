package pipeline

import (
	"context"

	"github.com/persys/ventas-etl/internal/domain"
	"github.com/persys/ventas-etl/internal/report"
)

// Fetcher retrieves one worksheet as raw rows. Implementations: the Sheets
// API client and the local XLSX reader in internal/extract.
type Fetcher interface {
	FetchRawTable(ctx context.Context, spreadsheetID, worksheet string) ([][]string, error)
}

// Loader persists the consolidated batch. The BigQuery repository in
// internal/load implements it with an idempotent MERGE.
type Loader interface {
	UpsertTransactions(ctx context.Context, txs []*domain.Transaction) error
}

// RunRecorder keeps the etl_runs audit trail. Optional.
type RunRecorder interface {
	StartRun(ctx context.Context, period string) (string, error)
	MarkRunSucceeded(ctx context.Context, runID string, rowsLoaded int) error
	MarkRunFailed(ctx context.Context, runID string, runErr error)
}

// Archiver stores the batch as an audit artifact. Optional.
type Archiver interface {
	ArchiveBatch(ctx context.Context, period string, txs []*domain.Transaction) error
}

// Reporter publishes the monthly summary. Optional.
type Reporter interface {
	PublishSummary(ctx context.Context, s report.Summary) error
}
