// Command server runs the cloudburst early warning API: it ingests sensor
// readings over HTTP, classifies them, retains a rolling history, and
// dispatches alerts for hazardous conditions.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/cloudburst-warning-service/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/cloudburst-warning-service/internal/adapter/kafka"
	"github.com/couchcryptid/cloudburst-warning-service/internal/adapter/smsgateway"
	"github.com/couchcryptid/cloudburst-warning-service/internal/alert"
	"github.com/couchcryptid/cloudburst-warning-service/internal/config"
	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
	"github.com/couchcryptid/cloudburst-warning-service/internal/history"
	"github.com/couchcryptid/cloudburst-warning-service/internal/ingest"
	"github.com/couchcryptid/cloudburst-warning-service/internal/observability"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	// Best-effort .env load for local development; real deployments set
	// the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// The log notifier is always wired; Kafka and SMS channels are
	// feature-flagged via config.
	notifiers := []domain.Notifier{alert.NewLogNotifier(logger)}

	var alertWriter *kafkaadapter.AlertWriter
	if cfg.KafkaAlertsEnabled {
		alertWriter = kafkaadapter.NewAlertWriter(cfg, logger)
		notifiers = append(notifiers, alertWriter)
		logger.Info("kafka alert publishing enabled", "topic", cfg.KafkaAlertsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka alert publishing disabled")
	}

	if cfg.SMSEnabled {
		sms := smsgateway.NewClient(cfg.SMSAccountSID, cfg.SMSAuthToken, cfg.SMSFromNumber,
			cfg.SMSRecipients, cfg.SMSTimeout, logger)
		notifiers = append(notifiers, sms)
		logger.Info("sms alerting enabled", "recipients", len(cfg.SMSRecipients))
	} else {
		logger.Info("sms alerting disabled")
	}

	store := history.NewStore(cfg.HistoryCapacity, clockwork.NewRealClock())
	classifier := domain.NewClassifier(cfg.Thresholds)
	coordinator := ingest.New(classifier, store, alert.NewFanout(notifiers...),
		cfg.AlertQueueSize, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, coordinator, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start alert dispatcher.
	go func() {
		if err := coordinator.Run(ctx); err != nil {
			logger.Error("alert dispatcher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if alertWriter != nil {
		if err := alertWriter.Close(); err != nil {
			logger.Error("kafka alert writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
