package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/geopredictor/geopredictor-api/internal/adapter/gemini"
	"github.com/geopredictor/geopredictor-api/internal/adapter/httpapi"
	kafkaadapter "github.com/geopredictor/geopredictor-api/internal/adapter/kafka"
	"github.com/geopredictor/geopredictor-api/internal/config"
	"github.com/geopredictor/geopredictor-api/internal/domain"
	"github.com/geopredictor/geopredictor-api/internal/insight"
	"github.com/geopredictor/geopredictor-api/internal/observability"
	"github.com/geopredictor/geopredictor-api/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	catalog := domain.NewCatalog()
	generator := domain.NewGenerator(catalog, rand.New(rand.NewSource(time.Now().UnixNano())))

	// Generative AI is feature-flagged via GEMINI_ENABLED / GEMINI_API_KEY.
	var textGen domain.TextGenerator
	if cfg.GeminiEnabled {
		textGen = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout, metrics, logger)
		logger.Info("gemini insights enabled", "model", cfg.GeminiModel, "timeout", cfg.GeminiTimeout)
	} else {
		logger.Info("gemini insights disabled")
	}
	insights := insight.NewService(textGen, metrics, logger)

	// Event-set export is feature-flagged via EXPORT_ENABLED.
	var exporter domain.EventExporter
	var exportWriter *kafkaadapter.Writer
	if cfg.ExportEnabled {
		exportWriter = kafkaadapter.NewWriter(cfg, logger)
		exporter = exportWriter
		logger.Info("event export enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaExportTopic)
	} else {
		logger.Info("event export disabled")
	}

	sessions := session.NewStore(generator, exporter, clock, cfg.SessionTTL, metrics, logger)

	srv := httpapi.NewServer(cfg, catalog, sessions, insights, clock, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go sessions.RunJanitor(ctx)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if exportWriter != nil {
		if err := exportWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
