package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/backend/internal/adapters/database"
	"github.com/retailpulse/backend/internal/infrastructure/clients/mongodb"
	"github.com/retailpulse/backend/internal/infrastructure/observability"
	"github.com/retailpulse/backend/internal/ingest"
	"github.com/retailpulse/backend/pkg/config"
)

// One-shot bulk import of a sales CSV export. Safe to re-run: a non-empty
// store makes the run a no-op.
func main() {
	csvPath := flag.String("csv", "", "path to the sales CSV export (overrides SALES_CSV_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("sales-import", cfg.Env)

	path := cfg.Import.CSVPath
	if *csvPath != "" {
		path = *csvPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	mongoClient, err := mongodb.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize MongoDB client")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := mongoClient.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("error closing MongoDB client")
		}
	}()

	if err := mongoClient.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure sales indexes")
	}

	importer := ingest.NewImporter(database.NewSaleAdapter(mongoClient), cfg.Import.BatchSize)
	if err := importer.Run(ctx, path); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("import failed")
	}
}
