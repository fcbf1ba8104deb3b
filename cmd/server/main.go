package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/couchcryptid/solar-roi-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/solar-roi-service/internal/adapter/kafka"
	"github.com/couchcryptid/solar-roi-service/internal/config"
	"github.com/couchcryptid/solar-roi-service/internal/estimator"
	"github.com/couchcryptid/solar-roi-service/internal/observability"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Live environmental data is feature-flagged via LIVE_DATA_ENABLED / API keys.
	provider := estimator.NewProvider(cfg, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The queue outlives the signal context so events enqueued by handlers
	// still draining during srv.Shutdown are flushed.
	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()

	var (
		sink   estimator.EventSink
		writer *kafkaadapter.Writer
		wg     sync.WaitGroup
	)
	if cfg.EventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		queue := estimator.NewEventQueue(writer, estimator.DefaultQueueSize, logger, metrics)
		sink = queue
		wg.Go(func() {
			if err := queue.Run(queueCtx); err != nil {
				logger.Error("event queue error", "error", err)
			}
		})
		logger.Info("estimate events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaEstimateTopic)
	} else {
		logger.Info("estimate events disabled")
	}

	svc := estimator.New(provider, sink, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

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

	// No handler can enqueue past this point. The queue flushes once stopped;
	// wait for it before closing the writer underneath it.
	stopQueue()
	wg.Wait()
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
