package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lysyi3m/rumor-comb/app/api"
	"github.com/lysyi3m/rumor-comb/app/cfg"
	"github.com/lysyi3m/rumor-comb/app/rumors"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	slog.SetLogLoggerLevel(appCfg.LogLevel())
	slog.Info("Starting Rumor Comb server", "version", appCfg.Version, "port", appCfg.Port, "debug", appCfg.Debug)

	service, err := rumors.NewServiceFromCfg(appCfg)
	if err != nil {
		log.Fatalf("Failed to initialize rumor service: %v", err)
	}
	slog.Info("Rumor service ready", "strategies", service.Strategies(), "window", appCfg.Window, "max_items", appCfg.MaxItems)

	handler := api.NewHandler(service, appCfg.Version, appCfg.SiteURL)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	// Lookups hydrate articles one by one, so the write timeout leaves room for
	// several upstream requests.
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Rumor Comb server shutdown complete")
}
