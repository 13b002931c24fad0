package load

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"

	"github.com/persys/ventas-etl/internal/logger"
)

// StartRun records the start of a monthly run in finanzas.etl_runs and
// returns the run id used to close it out.
func (r *Repository) StartRun(ctx context.Context, period string) (string, error) {
	runID := uuid.NewString()

	q := r.client.Query(fmt.Sprintf(`
		INSERT %s.%s (run_id, period, started_ts, status)
		VALUES (@run_id, @period, @started_ts, @status)
	`, r.datasetID, runsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
		{Name: "period", Value: period},
		{Name: "started_ts", Value: time.Now().UTC()},
		{Name: "status", Value: "RUNNING"},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return "", fmt.Errorf("StartRun: running insert: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("StartRun: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return "", fmt.Errorf("StartRun: job error: %w", err)
	}

	return runID, nil
}

// MarkRunSucceeded closes a run as SUCCESS with the loaded row count.
func (r *Repository) MarkRunSucceeded(ctx context.Context, runID string, rowsLoaded int) error {
	q := r.client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    rows_loaded = @rows_loaded,
		    error_message = ''
		WHERE run_id = @run_id
	`, r.datasetID, runsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "SUCCESS"},
		{Name: "finished_ts", Value: time.Now().UTC()},
		{Name: "rows_loaded", Value: int64(rowsLoaded)},
		{Name: "run_id", Value: runID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("MarkRunSucceeded: running update: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("MarkRunSucceeded: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("MarkRunSucceeded: job error: %w", err)
	}

	return nil
}

// MarkRunFailed closes a run as FAILED. Best-effort: a failure here is
// logged but must not mask the error that killed the run.
func (r *Repository) MarkRunFailed(ctx context.Context, runID string, runErr error) {
	log := logger.Component(logger.FromContext(ctx), "LOAD")

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
		const maxLen = 2000
		if len(errMsg) > maxLen {
			errMsg = errMsg[:maxLen]
		}
	}

	q := r.client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE run_id = @run_id
	`, r.datasetID, runsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "FAILED"},
		{Name: "finished_ts", Value: time.Now().UTC()},
		{Name: "error_message", Value: errMsg},
		{Name: "run_id", Value: runID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		log.Error().Str("run_id", runID).Err(err).Msg("no se pudo marcar la corrida como fallida")
		return
	}
	status, err := job.Wait(ctx)
	if err != nil {
		log.Error().Str("run_id", runID).Err(err).Msg("no se pudo marcar la corrida como fallida")
		return
	}
	if err := status.Err(); err != nil {
		log.Error().Str("run_id", runID).Err(err).Msg("no se pudo marcar la corrida como fallida")
	}
}
