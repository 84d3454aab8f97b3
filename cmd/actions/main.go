// Command actions runs the flood-aid action server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/flood-aid-actions/internal/actions"
	httpadapter "github.com/couchcryptid/flood-aid-actions/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/flood-aid-actions/internal/adapter/kafka"
	"github.com/couchcryptid/flood-aid-actions/internal/adapter/mapbox"
	"github.com/couchcryptid/flood-aid-actions/internal/audit"
	"github.com/couchcryptid/flood-aid-actions/internal/config"
	"github.com/couchcryptid/flood-aid-actions/internal/dataset"
	"github.com/couchcryptid/flood-aid-actions/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader := dataset.NewLoader(dataset.Paths{
		Facilities: cfg.FacilitiesPath,
		FloodInfo:  cfg.FloodInfoPath,
		Guidance:   cfg.GuidancePath,
	})
	if err := loader.CheckReadiness(context.Background()); err != nil {
		// Handlers answer with a no-data message until the files are fixed.
		logger.Warn("datasets not loadable at startup", "error", err)
	}

	opts := []actions.Option{}
	if cfg.RandomSeed != nil {
		opts = append(opts, actions.WithRand(actions.NewSeededRand(*cfg.RandomSeed)))
		logger.Info("sampling seeded", "seed", *cfg.RandomSeed)
	}

	// Location resolution is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxCountry, cfg.MapboxTimeout, metrics, logger)
		geocoder, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			logger.Error("failed to create geocoder", "error", err)
			os.Exit(1)
		}
		opts = append(opts, actions.WithGeocoder(geocoder))
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled",
			"cache_size", cfg.MapboxCacheSize,
			"timeout", cfg.MapboxTimeout,
			"country", cfg.MapboxCountry,
		)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The publisher outlives the HTTP server so events from draining requests are kept.
	pubCtx, pubCancel := context.WithCancel(context.Background())
	defer pubCancel()

	var (
		writer     *kafkaadapter.Writer
		publisherC chan struct{}
	)
	if cfg.AuditEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher := audit.New(writer, logger, metrics, cfg.BatchSize, cfg.BatchFlushInterval)
		opts = append(opts, actions.WithRecorder(publisher))

		publisherC = make(chan struct{})
		go func() {
			defer close(publisherC)
			if err := publisher.Run(pubCtx); err != nil {
				logger.Error("audit publisher error", "error", err)
			}
		}()
		logger.Info("action audit enabled", "topic", cfg.KafkaAuditTopic, "brokers", cfg.KafkaBrokers)
	}

	registry := actions.New(loader, logger, metrics, opts...)
	srv := httpadapter.NewServer(cfg.HTTPAddr, registry, loader, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	pubCancel()
	if publisherC != nil {
		select {
		case <-publisherC:
		case <-shutdownCtx.Done():
			logger.Warn("audit publisher did not drain before shutdown timeout")
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
