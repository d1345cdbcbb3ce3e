package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	awsclients "feasibility-workers/internal/common/aws"
	"feasibility-workers/internal/common/camunda"
	"feasibility-workers/internal/common/config"
	"feasibility-workers/internal/common/database"
	"feasibility-workers/internal/common/logger"
	"feasibility-workers/internal/common/observability"
	"feasibility-workers/internal/common/resilience"
	"feasibility-workers/internal/server"

	afu "feasibility-workers/internal/workers/feasibility/apply-field-update"
	cfs "feasibility-workers/internal/workers/feasibility/compute-feasibility-score"
	rd "feasibility-workers/internal/workers/feasibility/render-document"
	ss "feasibility-workers/internal/workers/feasibility/save-session"
	sr "feasibility-workers/internal/workers/feasibility/share-result"
)

var startupRetry = resilience.RetryConfig{
	MaxRetries:     5,
	InitialBackoff: 2 * time.Second,
	MaxBackoff:     30 * time.Second,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting feasibility worker manager",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(&camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.Plaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig: &camunda.RetryConfig{
			MaxRetries: startupRetry.MaxRetries,
			BaseDelay:  startupRetry.InitialBackoff,
			MaxDelay:   startupRetry.MaxBackoff,
		},
	})
	if err != nil {
		zapLog.Fatal("failed to connect to Zeebe", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Connected to Zeebe", zap.String("address", cfg.Camunda.BrokerAddress))

	// --- Postgres ---
	var pg *database.PostgresClient
	err = resilience.RetryWithBackoff(ctx, startupRetry, func() error {
		c, err := database.NewPostgres(cfg.Database.Postgres)
		if err == nil {
			err = c.Ping(ctx)
			if err != nil {
				_ = c.Close()
			}
		}
		if err != nil {
			zapLog.Warn("postgres not reachable, retrying", zap.Error(err))
			return err
		}
		pg = c
		return nil
	})
	if err != nil {
		zapLog.Fatal("failed to connect to Postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		zapLog.Fatal("failed to migrate Postgres", zap.Error(err))
	}

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	err = resilience.RetryWithBackoff(ctx, startupRetry, func() error {
		if err := rdb.Ping(ctx); err != nil {
			zapLog.Warn("redis not reachable, retrying", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		zapLog.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	// --- AWS ---
	var (
		sesClient sr.SESService
		snsClient sr.SNSService
	)
	if aws := cfg.Integrations.AWS; aws.SES.Enabled || aws.SNS.Enabled {
		awsCfg, err := awsclients.LoadConfig(ctx, aws.Region)
		if err != nil {
			zapLog.Fatal("failed to load AWS config", zap.Error(err))
		}
		if aws.SES.Enabled {
			sesClient = awsclients.NewSESClient(awsCfg)
		}
		if aws.SNS.Enabled {
			snsClient = awsclients.NewSNSClient(awsCfg)
		}
	}

	// --- Workers ---
	var workers []*camunda.Worker
	start := func(taskType string, handle worker.JobHandler) {
		w := camunda.StartWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handle, obs, zapLog)
		if w != nil {
			workers = append(workers, w)
		}
	}

	if config.IsWorkerEnabled(cfg, afu.TaskType) {
		handler, err := afu.NewHandler(afu.LoadConfig(config.GetWorkerConfig(cfg, afu.TaskType)), log)
		if err != nil {
			zapLog.Fatal("failed to create apply-field-update handler", zap.Error(err))
		}
		start(afu.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, cfs.TaskType) {
		handler, err := cfs.NewHandler(cfs.LoadConfig(config.GetWorkerConfig(cfg, cfs.TaskType)), log)
		if err != nil {
			zapLog.Fatal("failed to create compute-feasibility-score handler", zap.Error(err))
		}
		start(cfs.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, rd.TaskType) {
		handler, err := rd.NewHandler(rd.LoadConfig(cfg), rdb.GetClient(), pg.GetDB(), log)
		if err != nil {
			zapLog.Fatal("failed to create render-document handler", zap.Error(err))
		}
		start(rd.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, ss.TaskType) {
		handler, err := ss.NewHandler(ss.LoadConfig(cfg), rdb.GetClient(), log)
		if err != nil {
			zapLog.Fatal("failed to create save-session handler", zap.Error(err))
		}
		start(ss.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, sr.TaskType) {
		handler, err := sr.NewHandler(sr.LoadConfig(cfg), sesClient, snsClient, log)
		if err != nil {
			zapLog.Fatal("failed to create share-result handler", zap.Error(err))
		}
		start(sr.TaskType, handler.Handle)
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr: cfg.Server.Address,
		Handler: server.NewRouter(server.Options{
			Service: cfg.App.Name,
			Version: cfg.App.Version,
			Checkers: map[string]server.Checker{
				"zeebe":    zeebe.HealthCheck,
				"postgres": pg.Ping,
				"redis":    rdb.Ping,
			},
			Logger: log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
