package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/adpulse/ingestor/internal/config"
	"github.com/adpulse/ingestor/internal/database"
	"github.com/adpulse/ingestor/internal/ingest"
	"github.com/adpulse/ingestor/internal/migrations"
	"github.com/adpulse/ingestor/internal/ratelimit"
	"github.com/adpulse/ingestor/internal/server"
	"github.com/adpulse/ingestor/internal/sources"
	"github.com/adpulse/ingestor/internal/sources/metaapi"
	"github.com/adpulse/ingestor/internal/sources/scrapecreators"
	"github.com/adpulse/ingestor/internal/summary"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config")
		migrate    = flag.Bool("migrate", false, "run migrations and exit")
		backfill   = flag.Bool("backfill", false, "recompute summaries for all brands and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	db, err := database.New(cfg.Database.DSN, cfg.Database.Debug)
	if err != nil {
		logger.Error("open database", slog.String("err", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if *migrate {
		if err := migrations.RunMigrations(ctx, db); err != nil {
			logger.Error("migrate", slog.String("err", err.Error()))
			os.Exit(1)
		}
		return
	}

	engine := summary.NewEngine(db)

	if *backfill {
		counts, err := engine.Rebuild(ctx, nil)
		if err != nil {
			logger.Error("backfill", slog.String("err", err.Error()))
			os.Exit(1)
		}
		logger.Info("backfill complete", slog.Int("creative_rows", counts.CreativeCount), slog.Int("funnel_rows", counts.FunnelCount))
		return
	}

	scCfg := cfg.Provider("scrapecreators")
	metaCfg := cfg.Provider("meta_api")

	providers := []sources.Provider{
		scrapecreators.NewProvider(scrapecreators.NewClient(scCfg.BaseURL, scCfg.APIKey, ratelimit.New(scCfg.RateLimit))),
		metaapi.NewProvider(metaapi.NewClient(metaCfg.BaseURL, metaCfg.APIKey, ratelimit.New(metaCfg.RateLimit))),
	}

	ing := ingest.New(db, providers, engine, logger, cfg.Ingest.BatchSize)
	r := server.NewRouter(logger, db, ing, engine)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("addr", cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
