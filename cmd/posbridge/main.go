package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"posbridge/internal/audit"
	"posbridge/internal/config"
	"posbridge/internal/database"
	"posbridge/internal/metrics"
	"posbridge/internal/service"
	"posbridge/internal/toast"
	"posbridge/internal/tool"
	"posbridge/internal/worker"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	baseURL, _ := cfg.APIBaseURL()
	metrics.Register()

	// Audit log is optional
	var db *sql.DB
	if cfg.DatabaseURI != "" {
		db, err = database.NewDB(context.Background(), cfg.DatabaseURI)
		if err != nil {
			slog.Error("failed to connect to DB", "error", err)
			os.Exit(1)
		}
		defer database.CloseDB(db)

		if err := database.InitSchema(context.Background(), db); err != nil {
			slog.Error("failed to init DB schema", "error", err)
			os.Exit(1)
		}
	}
	store := audit.NewStore(db)
	queue := audit.NewQueue(0)

	// Services
	tokens := toast.NewTokenManager(baseURL, cfg.ClientID, cfg.ClientSecret, cfg.Timeout)
	client := toast.NewClient(baseURL, cfg.RestaurantGUID, tokens, cfg.Timeout)
	services := tool.NewServices(client, cfg.BulkConcurrency)
	authSvc := service.NewAuthService(cfg.APIKeyHash, cfg.JWTSecret, service.DefaultTokenTTL)

	var recorder tool.Recorder
	if store.Enabled() {
		recorder = queue
	}
	registry := tool.NewRegistry(recorder)
	registry.Register(tool.Catalog(services)...)

	srv := &http.Server{
		Addr: cfg.RunAddress,
		Handler: newRouter(deps{
			jwtSecret: cfg.JWTSecret,
			auth:      authSvc,
			registry:  registry,
			services:  services,
			store:     store,
		}),
		ReadTimeout: 10 * time.Second,
		// Reports walk every order page of a day.
		WriteTimeout: 2 * time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	if store.Enabled() {
		auditWorker := worker.NewAuditWorker(queue, store, 5*time.Second, 100)
		go func() {
			auditWorker.Start(ctx)
			close(workerDone)
		}()
	} else {
		close(workerDone)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress, "api", baseURL, "tools", len(registry.List()), "audit", store.Enabled())

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	cancel() // stop worker after the last request has been recorded
	<-workerDone

	slog.Info("server stopped")
}
