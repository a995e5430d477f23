package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/ballot-box/audit"
	"github.com/danielhkuo/ballot-box/cliparse"
	"github.com/danielhkuo/ballot-box/metrics"
	"github.com/danielhkuo/ballot-box/registration"
	"github.com/danielhkuo/ballot-box/router"
	"github.com/danielhkuo/ballot-box/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect and verify
	s, err := store.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL, store.Options{
		TxTimeout:    cfg.TxTimeout,
		MaxOpenConns: cfg.MaxOpenConns,
	})
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer s.Close()

	// Create schema (tables) and record it in the audit trail
	setup := registration.NewManager(s, audit.NewRecorder(s, nil), nil)
	if err := setup.Setup(ctx); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	// Create router
	handler := router.NewRouter(s, cfg, metrics.New())

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		// Wait for Ctrl-C signal, then let in-flight votes finish
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.TxTimeout+time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "database", cfg.DatabaseType)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		return
	}
	<-drained
	slog.Info("Server closed")
}
