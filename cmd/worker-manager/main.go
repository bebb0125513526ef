// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	awsclient "career-workers/internal/common/aws"
	"career-workers/internal/common/camunda"
	"career-workers/internal/common/config"
	"career-workers/internal/common/database"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/observability"
	"career-workers/internal/datasource"
	"career-workers/internal/scoring/jobmatch"

	// Data Access Workers (2)
	ipc "career-workers/internal/workers/data-access/invalidate-profile-cache"
	sjc "career-workers/internal/workers/data-access/search-job-catalog"

	// Job Matching Workers (4)
	cjm "career-workers/internal/workers/jobs/calculate-job-match"
	gjs "career-workers/internal/workers/jobs/get-job-state"
	rjr "career-workers/internal/workers/jobs/rank-job-recommendations"
	ujs "career-workers/internal/workers/jobs/update-job-state"

	// Gamification Workers (2)
	cxp "career-workers/internal/workers/gamification/calculate-xp-progress"
	spn "career-workers/internal/workers/gamification/send-progress-notification"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, zapLog)
	defer obs.Shutdown(context.Background())

	tracerProvider, err := observability.NewTracerProvider(cfg.App.Name, cfg.Tracing, os.Stdout)
	if err != nil {
		zapLog.Fatal("tracer provider setup failed", zap.Error(err))
	}
	otel.SetTracerProvider(tracerProvider)
	defer observability.ShutdownTracer(context.Background(), tracerProvider)
	zapLog.Info("Tracing configured",
		zap.Bool("export", cfg.Tracing.Enabled),
		zap.String("exporter", cfg.Tracing.Exporter),
		zap.Float64("sampleRatio", cfg.Tracing.SampleRatio),
	)

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.Plaintext,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	redis := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init AWS notification clients ---
	awsCfg, err := awsclient.LoadConfig(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("aws config load failed", zap.Error(err))
	}
	sesClient := awsclient.NewSESClient(awsCfg)
	snsClient := awsclient.NewSNSClient(awsCfg, cfg.Notifications.SMS.SenderID)

	// --- Data sources ---
	profiles := datasource.NewProfileStore(
		pg.DB, redis.Client,
		time.Duration(cfg.Scoring.ProfileCacheTTL)*time.Second,
		log,
	)
	activities := datasource.NewActivityStore(pg.DB, log)
	contacts := datasource.NewContactStore(pg.DB)
	jobStates := datasource.NewJobStateStore(redis.Client)
	levels := datasource.NewLevelStore(redis.Client, time.Duration(cfg.Progression.LevelMemoryTTL)*time.Hour)
	catalog := datasource.NewJobCatalog(
		esClient.Client,
		cfg.Database.Elasticsearch.JobsIndex,
		config.GetDuration(cfg.Camunda.RequestTimeout),
	)

	scorer := jobmatch.NewScorer(cfg.Scoring.Weights)

	// --- Register Workers ---
	registry := camunda.NewRegistry(zeebe.GetClient(), obs, zapLog)

	// --- 1. Job Matching Workers (4) ---
	{
		wcfg := config.GetWorkerConfig(cfg, cjm.TaskType)
		registry.Start(cjm.TaskType, wcfg, cjm.NewHandler(cjm.LoadConfig(wcfg), scorer, profiles, log))
	}
	{
		wcfg := config.GetWorkerConfig(cfg, rjr.TaskType)
		registry.Start(rjr.TaskType, wcfg, rjr.NewHandler(
			rjr.LoadConfig(wcfg, cfg.Scoring),
			rjr.Dependencies{
				Scorer:   scorer,
				Profiles: profiles,
				Catalog:  catalog,
				States:   jobStates,
				Obs:      obs,
			},
			log,
		))
	}
	{
		wcfg := config.GetWorkerConfig(cfg, ujs.TaskType)
		registry.Start(ujs.TaskType, wcfg, ujs.NewHandler(ujs.LoadConfig(wcfg), jobStates, log))
	}
	{
		wcfg := config.GetWorkerConfig(cfg, gjs.TaskType)
		registry.Start(gjs.TaskType, wcfg, gjs.NewHandler(gjs.LoadConfig(wcfg), jobStates, log))
	}

	// --- 2. Data Access Workers (2) ---
	{
		wcfg := config.GetWorkerConfig(cfg, sjc.TaskType)
		registry.Start(sjc.TaskType, wcfg, sjc.NewHandler(sjc.LoadConfig(wcfg), catalog, log))
	}
	{
		wcfg := config.GetWorkerConfig(cfg, ipc.TaskType)
		registry.Start(ipc.TaskType, wcfg, ipc.NewHandler(ipc.LoadConfig(wcfg), profiles, log))
	}

	// --- 3. Gamification Workers (2) ---
	{
		wcfg := config.GetWorkerConfig(cfg, cxp.TaskType)
		registry.Start(cxp.TaskType, wcfg, cxp.NewHandler(cxp.LoadConfig(wcfg, cfg.Progression), activities, levels, log))
	}
	{
		wcfg := config.GetWorkerConfig(cfg, spn.TaskType)
		registry.Start(spn.TaskType, wcfg, spn.NewHandler(
			spn.LoadConfig(wcfg, cfg.Notifications),
			contacts, sesClient, snsClient, log,
		))
	}

	started := registry.Started()
	zapLog.Info("Workers registered", zap.Strings("taskTypes", started), zap.Int("count", len(started)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true
		for name, ping := range map[string]func(context.Context) error{
			"zeebe":         zeebe.HealthCheck,
			"postgres":      pg.Ping,
			"elasticsearch": esClient.Ping,
			"redis":         redis.Ping,
		} {
			if err := ping(checkCtx); err != nil {
				checks[name] = err.Error()
				ready = false
				continue
			}
			checks[name] = "ok"
		}

		if !ready {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", checks)
			return
		}
		writeStatus(w, http.StatusOK, "ready", checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	registry.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string, checks map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body := map[string]interface{}{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if checks != nil {
		body["checks"] = checks
	}
	json.NewEncoder(w).Encode(body)
}
