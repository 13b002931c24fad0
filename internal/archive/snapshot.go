package archive

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/storage"

	"github.com/persys/ventas-etl/internal/domain"
)

// SnapshotWriter uploads the consolidated monthly batch to GCS as CSV, one
// object per period, so operators can diff what a re-run changed. Purely an
// audit artifact; the warehouse load never depends on it.
type SnapshotWriter struct {
	Bucket string
}

// ArchiveBatch writes snapshots/<period>.csv to the bucket. Assumes
// Application Default Credentials.
func (w *SnapshotWriter) ArchiveBatch(ctx context.Context, period string, txs []*domain.Transaction) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("ArchiveBatch: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	obj := client.Bucket(w.Bucket).Object(fmt.Sprintf("snapshots/%s.csv", period))
	wr := obj.NewWriter(ctx)
	wr.ContentType = "text/csv"

	if _, err := wr.Write(encodeCSV(txs)); err != nil {
		_ = wr.Close()
		return fmt.Errorf("ArchiveBatch: write snapshot: %w", err)
	}
	if err := wr.Close(); err != nil {
		return fmt.Errorf("ArchiveBatch: finalize upload: %w", err)
	}

	return nil
}

func encodeCSV(txs []*domain.Transaction) []byte {
	buf := &bytes.Buffer{}
	cw := csv.NewWriter(buf)

	_ = cw.Write([]string{
		"date", "type", "business_id", "category_id", "amount", "currency",
		"description", "reference", "from_account", "to_account",
		"is_invoiced", "id_referenced",
	})
	for _, tx := range txs {
		_ = cw.Write([]string{
			tx.Date.String(),
			string(tx.Type),
			tx.BusinessID,
			optInt(tx.CategoryID),
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Currency,
			tx.Description,
			optString(tx.Reference),
			optString(tx.FromAccount),
			optString(tx.ToAccount),
			strconv.FormatBool(tx.IsInvoiced),
			tx.IDReferenced,
		})
	}
	cw.Flush()
	return buf.Bytes()
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optInt(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}
