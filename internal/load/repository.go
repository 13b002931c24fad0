package load

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/persys/ventas-etl/internal/domain"
	"github.com/persys/ventas-etl/internal/logger"
)

const (
	transactionsTable = "transactions"
	runsTable         = "etl_runs"
)

// Repository owns the shared BigQuery client for the destination dataset.
type Repository struct {
	client    *bigquery.Client
	projectID string
	datasetID string
}

// NewRepository creates a repository with its own BigQuery client.
func NewRepository(ctx context.Context, projectID, datasetID string) (*Repository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewRepository: bigquery client: %w", err)
	}
	return &Repository{client: client, projectID: projectID, datasetID: datasetID}, nil
}

// Close closes the BigQuery client connection.
func (r *Repository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// UpsertTransactions merges the batch into finanzas.transactions keyed on
// (date, business_id, amount, reference), so re-running a month is
// idempotent. This is the primary load path.
func (r *Repository) UpsertTransactions(ctx context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]*TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, rowFromTransaction(tx, now))
	}

	q := r.client.Query(fmt.Sprintf(`
		MERGE %s.%s T
		USING (SELECT * FROM UNNEST(@rows)) S
		ON T.date = S.Date
		  AND T.business_id = S.BusinessID
		  AND T.amount = S.Amount
		  AND COALESCE(T.reference, '') = COALESCE(S.Reference, '')
		WHEN MATCHED THEN UPDATE SET
		  type = S.Type,
		  category_id = S.CategoryID,
		  currency = S.Currency,
		  description = S.Description,
		  from_account = S.FromAccount,
		  to_account = S.ToAccount,
		  is_invoiced = S.IsInvoiced,
		  id_referenced = S.IDReferenced
		WHEN NOT MATCHED THEN INSERT (
		  date, type, business_id, category_id, amount, currency,
		  description, reference, from_account, to_account, is_invoiced,
		  id_referenced, created_ts
		) VALUES (
		  S.Date, S.Type, S.BusinessID, S.CategoryID, S.Amount, S.Currency,
		  S.Description, S.Reference, S.FromAccount, S.ToAccount, S.IsInvoiced,
		  S.IDReferenced, S.CreatedTS
		)
	`, r.datasetID, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "rows", Value: rows},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("UpsertTransactions: running merge: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("UpsertTransactions: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("UpsertTransactions: job error: %w", err)
	}

	return nil
}

// InsertTransactions is the legacy load path: a plain streaming insert,
// retried row by row when the batch fails so the offending record is
// isolated and reported before the run halts. Kept as a diagnostic aid;
// the orchestrator uses UpsertTransactions.
func (r *Repository) InsertTransactions(ctx context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]*TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, rowFromTransaction(tx, now))
	}

	inserter := r.client.DatasetInProject(r.projectID, r.datasetID).Table(transactionsTable).Inserter()
	batchErr := inserter.Put(ctx, rows)
	if batchErr == nil {
		return nil
	}

	// Second phase: try each row alone to find the first one the
	// destination rejects, and surface its content for remediation.
	log := logger.Component(logger.FromContext(ctx), "LOAD")
	for i, row := range rows {
		if err := inserter.Put(ctx, row); err != nil {
			log.Error().
				Int("fila", i).
				Str("fecha", row.Date.String()).
				Str("negocio", row.BusinessID).
				Str("id_referenced", row.IDReferenced).
				Err(err).
				Msg("registro rechazado por el destino")
			return fmt.Errorf("InsertTransactions: row %d (%s, %s, id=%s): %w",
				i, row.Date, row.BusinessID, row.IDReferenced, err)
		}
	}

	// Every row passed individually; report the original batch failure.
	return fmt.Errorf("InsertTransactions: batch insert: %w", batchErr)
}
