// cmd/server/main.go is the application entry point. It wires together
// all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pec-events/portal/internal/auth"
	"github.com/pec-events/portal/internal/config"
	"github.com/pec-events/portal/internal/handler"
	"github.com/pec-events/portal/internal/logger"
	"github.com/pec-events/portal/internal/messaging"
	"github.com/pec-events/portal/internal/service"
	"github.com/pec-events/portal/internal/store"
	"github.com/pec-events/portal/internal/store/memory"
	"github.com/pec-events/portal/internal/store/postgres"
)

func main() {
	// Load .env if present; ignore the error when it is not.
	_ = godotenv.Load()

	slogLogger := logger.NewWithServiceContext("arts-sports-portal", "1.0.0")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env, "store", cfg.Store.Driver)

	ctx := context.Background()

	var st store.Store
	switch cfg.Store.Driver {
	case "memory", "":
		mem := memory.New()
		if err := memory.Seed(mem, cfg.Auth.SeedPassword); err != nil {
			log.Fatalf("seed store: %v", err)
		}
		st = mem
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("schema: %v", err)
		}
		if err := postgres.Seed(ctx, pool, cfg.Auth.SeedPassword); err != nil {
			log.Fatalf("seed store: %v", err)
		}
		st = postgres.New(pool)
		slogLogger.Info("connected to postgres", "host", cfg.Database.Host, "db", cfg.Database.DBName)
	default:
		log.Fatalf("unknown store driver %q", cfg.Store.Driver)
	}

	var publisher messaging.Publisher = messaging.Noop{}
	if cfg.NATS.URL != "" {
		pub, err := messaging.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, slogLogger)
		if err != nil {
			slogLogger.Warn("NATS unavailable, domain events disabled", "error", err)
		} else {
			publisher = pub
			defer pub.Close()
		}
	}

	tokens := auth.NewTokens(cfg.Auth)
	portal := service.NewPortal(st, tokens, publisher, slogLogger)
	h := handler.New(portal, slogLogger)
	router := handler.NewRouter(h, tokens, slogLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		slogLogger.Info("server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogLogger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	slogLogger.Info("server stopped")
}
