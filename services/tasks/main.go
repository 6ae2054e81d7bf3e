package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"task-tracker/services/tasks/adapters/db"
	taskgraphql "task-tracker/services/tasks/adapters/graphql"
	"task-tracker/services/tasks/config"
	"task-tracker/services/tasks/core"
)

func main() {
	// config
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "tasks-service server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	// logger
	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	log.Info("starting tasks-service server")

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// database adapter
	storage, err := db.New(log, cfg.DBAddress)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %v", err)
	}
	defer func(storage *db.DB) {
		if err := storage.Close(); err != nil {
			log.Error("failed to close db connection", "error", err)
		}
	}(storage)

	if err := storage.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate db: %v", err)
	}

	// service
	tasksService := core.NewService(storage)

	// graphql handler
	gqlServer, err := taskgraphql.NewServer(log, tasksService)
	if err != nil {
		return fmt.Errorf("failed to build graphql server: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", countRequests(gqlServer.Handler()))
	mux.Handle("GET /healthz", newHealthHandler(log, tasksService))
	mux.Handle("GET /metrics", promhttp.Handler())

	server := http.Server{
		Addr:              cfg.Address,
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("tasks-service graphql server is running", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Debug("shutting down tasks-service server")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tasks_http_requests_total",
	Help: "GraphQL endpoint requests by status code.",
}, []string{"code"})

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		httpRequests.WithLabelValues(strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func newHealthHandler(log *slog.Logger, svc *core.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := svc.Ping(ctx); err != nil {
			log.Warn("ping failed", "error", err)
			http.Error(w, "db down", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
