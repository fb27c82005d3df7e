package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"retention-workers/internal/api"
	"retention-workers/internal/assessment"
	"retention-workers/internal/classifier"
	awsclient "retention-workers/internal/common/aws"
	"retention-workers/internal/common/camunda"
	"retention-workers/internal/common/config"
	"retention-workers/internal/common/database"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/common/observability"
	"retention-workers/internal/roster"

	adr "retention-workers/internal/workers/risk/assess-dropout-risk"
	nst "retention-workers/internal/workers/risk/notify-support-team"
	vsr "retention-workers/internal/workers/risk/validate-student-record"
)

var version = "dev"

var startupRetry = &camunda.RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if cfg.App.Version != "" {
		version = cfg.App.Version
	}
	zapLog.Info("Starting worker manager...", zap.String("version", version), zap.String("environment", cfg.App.Environment))

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics disabled", zap.Error(err))
		obs = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = camunda.Retry(ctx, startupRetry, "Zeebe client initialization", func(context.Context) error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected", zap.String("gateway", cfg.Camunda.BrokerAddress))

	// --- PostgreSQL roster ---
	var pg *database.PostgresClient
	err = camunda.Retry(ctx, startupRetry, "PostgreSQL connection", func(ctx context.Context) error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		return nil
	})
	if err != nil {
		zapLog.Fatal("postgres connection failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected", zap.String("database", cfg.Database.Postgres.Database))

	// --- Classifier ---
	remote := classifier.NewRemote(cfg.Classifier, log)
	readyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = remote.Ready(readyCtx)
	cancel()
	if err != nil {
		zapLog.Fatal("model not available, run training first", zap.String("url", cfg.Classifier.URL), zap.Error(err))
	}

	var scorer classifier.Classifier = remote
	if cfg.Classifier.CacheEnabled {
		rdb := database.NewRedis(cfg.Database.Redis)
		defer rdb.Close()
		if err := rdb.Ping(ctx); err != nil {
			// cache errors fall through to the classifier
			zapLog.Warn("score cache unreachable at startup", zap.Error(err))
		}
		ttl := time.Duration(cfg.Classifier.CacheTTL) * time.Second
		scorer = classifier.NewCached(remote, rdb.GetClient(), ttl, log)
		zapLog.Info("score cache enabled", zap.String("redis", cfg.Database.Redis.Address), zap.Duration("ttl", ttl))
	}

	service := assessment.NewService(scorer, obs, log)
	repo := roster.NewRepository(pg.GetDB())

	// --- Notification channels ---
	var sesSvc nst.SESService
	var snsSvc nst.SNSService
	if cfg.Notifications.Enabled {
		awsCfg, err := awsclient.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws config load failed", zap.Error(err))
		}
		if cfg.Notifications.Email.Enabled {
			sesSvc = awsclient.NewSESClient(awsCfg)
		}
		if cfg.Notifications.SMS.Enabled {
			snsSvc = awsclient.NewSNSClient(awsCfg)
		}
	}

	// --- Workers ---
	registry := camunda.NewRegistry(zeebe.GetClient(), log)

	validateHandler, err := vsr.NewHandler(vsr.HandlerOptions{AppConfig: cfg, Logger: log})
	if err != nil {
		zapLog.Fatal("failed to create handler", zap.String("taskType", vsr.TaskType), zap.Error(err))
	}
	registry.Start(vsr.TaskType, config.GetWorkerConfig(cfg, vsr.TaskType), validateHandler)

	assessHandler, err := adr.NewHandler(adr.HandlerOptions{
		AppConfig: cfg,
		Roster:    repo,
		Service:   service,
		Logger:    log,
	})
	if err != nil {
		zapLog.Fatal("failed to create handler", zap.String("taskType", adr.TaskType), zap.Error(err))
	}
	registry.Start(adr.TaskType, config.GetWorkerConfig(cfg, adr.TaskType), assessHandler)

	notifyHandler, err := nst.NewHandler(nst.HandlerOptions{
		AppConfig: cfg,
		SES:       sesSvc,
		SNS:       snsSvc,
		Logger:    log,
	})
	if err != nil {
		zapLog.Fatal("failed to create handler", zap.String("taskType", nst.TaskType), zap.Error(err))
	}
	registry.Start(nst.TaskType, config.GetWorkerConfig(cfg, nst.TaskType), notifyHandler)

	zapLog.Info("Workers registered", zap.Strings("taskTypes", registry.TaskTypes()))

	// --- HTTP API ---
	router := api.NewRouter(cfg.HTTP.Mode, api.Dependencies{
		Service:   service,
		Readiness: readiness{zeebe: zeebe, classifier: remote, postgres: pg},
		Logger:    log,
		Version:   version,
	})
	server := api.NewServer(cfg.HTTP, router)
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	registry.Close()
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping meter provider", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// loadConfig reads RETENTION_CONFIG_FILE when set, otherwise configs/config.yaml
// with the environment overlay.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("RETENTION_CONFIG_FILE"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// readiness gates /ready on the broker, the classifier and the roster database.
type readiness struct {
	zeebe      *camunda.Client
	classifier *classifier.Remote
	postgres   *database.PostgresClient
}

func (r readiness) Ready(ctx context.Context) error {
	if err := r.zeebe.HealthCheck(ctx); err != nil {
		return err
	}
	if err := r.classifier.Ready(ctx); err != nil {
		return err
	}
	return r.postgres.Ping(ctx)
}
