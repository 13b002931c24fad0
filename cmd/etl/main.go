package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/persys/ventas-etl/internal/archive"
	"github.com/persys/ventas-etl/internal/config"
	"github.com/persys/ventas-etl/internal/extract"
	"github.com/persys/ventas-etl/internal/load"
	"github.com/persys/ventas-etl/internal/logger"
	"github.com/persys/ventas-etl/internal/pipeline"
	"github.com/persys/ventas-etl/internal/report"
)

func main() {
	log := logger.New()

	// --ref shifts the run date for backfills: "2025-02-01" loads January.
	refDate := flag.String("ref", "", "run date override, YYYY-MM-DD (default: today)")
	xlsxPath := flag.String("xlsx", "", "read sources from a local workbook instead of the Sheets API")
	flag.Parse()

	ref := time.Now()
	if *refDate != "" {
		parsed, err := time.Parse("2006-01-02", *refDate)
		if err != nil {
			log.Fatal().Str("ref", *refDate).Msg("--ref must be YYYY-MM-DD")
		}
		ref = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuracion invalida")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	var fetcher pipeline.Fetcher
	if *xlsxPath != "" {
		fetcher = &extract.XLSXFile{Path: *xlsxPath}
	} else {
		sheetsClient, err := extract.NewSheetsClient(ctx, cfg.ServiceKey)
		if err != nil {
			log.Fatal().Err(err).Msg("no se pudo crear el cliente de Sheets")
		}
		fetcher = sheetsClient
	}

	repo, err := load.NewRepository(ctx, cfg.ProjectID, cfg.DatasetID)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo crear el repositorio de BigQuery")
	}
	defer repo.Close()

	p := &pipeline.Pipeline{
		Fetcher:        fetcher,
		Loader:         repo,
		Runs:           repo,
		Sources:        pipeline.BindSources(cfg),
		AcceptedStatus: cfg.AcceptedStatus,
	}
	if cfg.SnapshotBucket != "" {
		p.Archiver = &archive.SnapshotWriter{Bucket: cfg.SnapshotBucket}
	}
	if cfg.NotionToken != "" && cfg.NotionDatabaseID != "" {
		p.Reporter = report.NewNotionReporter(cfg.NotionToken, cfg.NotionDatabaseID)
	}

	if err := p.Run(ctx, ref); err != nil {
		log.Fatal().Err(err).Msg("la corrida mensual fallo")
	}

	fmt.Println("Carga mensual completada.")
}
