package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/persys/ventas-etl/internal/config"
	"github.com/persys/ventas-etl/internal/domain"
	"github.com/persys/ventas-etl/internal/extract"
	"github.com/persys/ventas-etl/internal/logger"
	"github.com/persys/ventas-etl/internal/report"
	"github.com/persys/ventas-etl/internal/sheet"
	"github.com/persys/ventas-etl/internal/transform"
)

// BoundSource pairs a source's mapping table with the worksheet it lives in.
type BoundSource struct {
	Source transform.Source
	Ref    config.SheetRef
}

// BindSources attaches the configured sheet references to the four source
// definitions, preserving load order.
func BindSources(cfg *config.Config) []BoundSource {
	srcs := transform.Sources()
	refs := []config.SheetRef{cfg.VentasPC, cfg.VentasPI, cfg.VentasPI2, cfg.VentasPI3}

	bound := make([]BoundSource, len(srcs))
	for i := range srcs {
		bound[i] = BoundSource{Source: srcs[i], Ref: refs[i]}
	}
	return bound
}

// Pipeline runs the monthly batch. All collaborators are explicit
// dependencies so tests can substitute fakes; Runs, Archiver and Reporter
// may be nil.
type Pipeline struct {
	Fetcher  Fetcher
	Loader   Loader
	Runs     RunRecorder
	Archiver Archiver
	Reporter Reporter

	Sources        []BoundSource
	AcceptedStatus string
}

// Run executes extraction, transformation, consolidation and load for the
// month before the reference date. Sources are processed sequentially; one
// empty source never blocks the others. A load failure is fatal, snapshot
// and report failures are not.
func (p *Pipeline) Run(ctx context.Context, ref time.Time) error {
	log := logger.Component(logger.FromContext(ctx), "PIPELINE")

	period := extract.PreviousMonth(ref)
	log.Info().Str("periodo", period.String()).Msg("===== ETL MENSUAL =====")

	var consolidated []*domain.Transaction
	for _, bound := range p.Sources {
		txs, err := p.runSource(ctx, bound, period)
		if err != nil {
			return err
		}
		consolidated = append(consolidated, txs...)
	}

	log.Info().Int("total", len(consolidated)).Msg("registros consolidados")
	if len(consolidated) == 0 {
		log.Warn().Msg("no hay datos para cargar este mes")
		return nil
	}

	var runID string
	if p.Runs != nil {
		var err error
		runID, err = p.Runs.StartRun(ctx, period.String())
		if err != nil {
			return fmt.Errorf("pipeline: starting run audit: %w", err)
		}
	}

	if err := p.Loader.UpsertTransactions(ctx, consolidated); err != nil {
		if p.Runs != nil {
			p.Runs.MarkRunFailed(ctx, runID, err)
		}
		return fmt.Errorf("pipeline: loading %d rows: %w", len(consolidated), err)
	}

	if p.Archiver != nil {
		if err := p.Archiver.ArchiveBatch(ctx, period.String(), consolidated); err != nil {
			log.Warn().Err(err).Msg("no se pudo archivar el snapshot")
		}
	}
	if p.Reporter != nil {
		summary := report.BuildSummary(period.String(), consolidated)
		if err := p.Reporter.PublishSummary(ctx, summary); err != nil {
			log.Warn().Err(err).Msg("no se pudo publicar el resumen")
		}
	}

	if p.Runs != nil {
		if err := p.Runs.MarkRunSucceeded(ctx, runID, len(consolidated)); err != nil {
			log.Warn().Err(err).Msg("no se pudo cerrar la corrida en la auditoria")
		}
	}

	log.Info().Msg("===== ETL MENSUAL FINALIZADO CORRECTAMENTE =====")
	return nil
}

func (p *Pipeline) runSource(ctx context.Context, bound BoundSource, period extract.Period) ([]*domain.Transaction, error) {
	src := bound.Source
	elog := logger.Component(logger.FromContext(ctx), "EXTRACT").With().Str("fuente", src.Key).Logger()
	tlog := logger.Component(logger.FromContext(ctx), "TRANSFORM").With().Str("fuente", src.Key).Logger()

	elog.Info().Str("sheet", bound.Ref.SpreadsheetID).Str("worksheet", bound.Ref.Worksheet).Msg("extrayendo datos")

	raw, err := p.Fetcher.FetchRawTable(ctx, bound.Ref.SpreadsheetID, bound.Ref.Worksheet)
	if err != nil {
		return nil, fmt.Errorf("pipeline: fetching %s: %w", src.Key, err)
	}

	rs := sheet.BuildRecords(raw)
	elog.Info().Int("registros", rs.Len()).Msg("registros totales extraidos")
	if rs.Len() == 0 {
		elog.Warn().Msg("hoja vacia, fuente omitida")
		return nil, nil
	}

	if src.StatusColumn != "" {
		if col, ok := sheet.Resolve(rs.Columns, src.StatusColumn); ok {
			rs.Rename(col, src.StatusColumn)
		}
		extract.FilterStatus(rs, src.StatusColumn, p.AcceptedStatus, elog)
	}

	if src.DatePositional {
		sheet.DateColumnAt(rs, src.DateIndex, elog)
	} else {
		sheet.ResolveDateColumn(rs, elog, src.DateAliases...)
	}
	extract.FilterPeriod(rs, period, elog)
	extract.LogSample(rs, 5, elog)

	if rs.Len() == 0 {
		return nil, nil
	}
	return transform.Transform(rs, src, tlog), nil
}
