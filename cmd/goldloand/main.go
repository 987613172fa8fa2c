package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgkafka "github.com/aurumdesk/goldloan-service/pkg/kafka"
	"github.com/aurumdesk/goldloan-service/pkg/observability"
	pkgpostgres "github.com/aurumdesk/goldloan-service/pkg/postgres"

	"github.com/aurumdesk/goldloan-service/internal/application/usecase"
	"github.com/aurumdesk/goldloan-service/internal/infrastructure/config"
	"github.com/aurumdesk/goldloan-service/internal/infrastructure/kafka"
	pgrepo "github.com/aurumdesk/goldloan-service/internal/infrastructure/persistence/postgres"
	grpcpresentation "github.com/aurumdesk/goldloan-service/internal/presentation/grpc"
	"github.com/aurumdesk/goldloan-service/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	})

	logger.Info("starting goldloan-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without /metrics", "error", err)
		metricsHandler = nil
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Migrations.
	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Infrastructure adapters.
	loanRepo := pgrepo.NewLoanRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)
	clock := usecase.UTCClock()

	// Use cases.
	createLoanUC := usecase.NewCreateLoanUseCase(loanRepo, loanRepo, publisher, clock, cfg.LoanCodePrefix, logger)
	applyPaymentUC := usecase.NewApplyPaymentUseCase(loanRepo, publisher, clock, logger)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	quoteSettlementUC := usecase.NewQuoteSettlementUseCase(loanRepo)
	rejectLoanUC := usecase.NewRejectLoanUseCase(loanRepo, publisher, clock, logger)

	// gRPC server.
	handler := grpcpresentation.NewGoldLoanHandler(
		createLoanUC, applyPaymentUC, getLoanUC, quoteSettlementUC, rejectLoanUC, logger)
	grpcServer := grpcpresentation.NewServer(handler, logger)

	// HTTP server (read API, health probes, metrics).
	restHandler := rest.NewHandler(getLoanUC, quoteSettlementUC, func(r *http.Request) error {
		return pkgpostgres.HealthCheck(r.Context(), pool)
	}, metricsHandler, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           restHandler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("goldloan-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
