package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// SheetRef points at one worksheet of one spreadsheet.
type SheetRef struct {
	SpreadsheetID string
	Worksheet     string
}

// Config holds everything the monthly job reads from the environment. Sheet
// IDs and worksheet names are per-source; the rest is shared plumbing.
type Config struct {
	// Google Sheets sources, in load order.
	VentasPC   SheetRef // Peri Collection sales
	VentasPI   SheetRef // Peri Institute enrollments
	VentasPI2  SheetRef // Peri Institute, old sheet
	VentasPI3  SheetRef // Peri Institute, old enrollment sheet
	ServiceKey string   // service account JSON, verbatim

	// Status literal a row must carry (after upper/trim) to be loaded.
	AcceptedStatus string

	// BigQuery destination.
	ProjectID string
	DatasetID string

	// Optional: GCS bucket for the per-run CSV snapshot. Empty disables it.
	SnapshotBucket string

	// Optional: Notion monthly summary. Both empty disables it.
	NotionToken      string
	NotionDatabaseID string
}

// Load reads .env (if present) and the environment. Only the destination and
// the source sheet IDs are mandatory; optional integrations stay off when
// their variables are unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		VentasPC:         SheetRef{os.Getenv("PERSYS_SHEET_ID"), getEnv("WORKSHEET_NAME_1", "Ventas")},
		VentasPI:         SheetRef{os.Getenv("PROTO_INSTITUTE_ID"), getEnv("WORKSHEET_NAME_2", "Ingresos")},
		VentasPI2:        SheetRef{os.Getenv("MATRICULA_PI_ID"), getEnv("WORKSHEET_NAME_3", "Hoja 1")},
		VentasPI3:        SheetRef{os.Getenv("MATRICULA_PI_ID"), getEnv("WORKSHEET_NAME_4", "Matricula")},
		ServiceKey:       os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		AcceptedStatus:   getEnv("ACCEPTED_STATUS", "ENVIADO"),
		ProjectID:        os.Getenv("BQ_PROJECT_ID"),
		DatasetID:        getEnv("BQ_DATASET_ID", "finanzas"),
		SnapshotBucket:   os.Getenv("SNAPSHOT_BUCKET"),
		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DATABASE_ID"),
	}

	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("config: BQ_PROJECT_ID is required")
	}
	for _, ref := range []struct {
		name string
		id   string
	}{
		{"PERSYS_SHEET_ID", cfg.VentasPC.SpreadsheetID},
		{"PROTO_INSTITUTE_ID", cfg.VentasPI.SpreadsheetID},
		{"MATRICULA_PI_ID", cfg.VentasPI2.SpreadsheetID},
	} {
		if ref.id == "" {
			return nil, fmt.Errorf("config: %s is required", ref.name)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
