// Package main starts an HTTP server that provides endpoints for health checks,
// vessel branch analysis and EVAR tube mesh generation. It uses the internal
// handlers package to process incoming requests and return JSON responses.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/evarsim/core/cmd/api/middleware"
	"github.com/evarsim/core/internal/config"
	"github.com/evarsim/core/internal/device"
	"github.com/evarsim/core/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	device.SetLogger(logger.With("component", "device"))

	opts, _ := cfg.DeviceOptions()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg, opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	slog.Info("server starting", "addr", addr, "spline", string(opts.Spline), "refine_points", opts.RefineCount)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newRouter(cfg *config.Config, opts device.Options) *mux.Router {
	devices := handlers.NewDeviceHandler(opts)

	r := mux.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Cors(cfg.AllowedOrigin))
	r.Use(middleware.LimitBody(cfg.MaxBodyBytes))

	r.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/branches", handlers.BranchesHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/devices", devices.Build).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/placements", devices.Place).Methods(http.MethodPost, http.MethodOptions)

	return r
}
